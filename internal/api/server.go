// Package api bridges remote display layers to workflow actors over HTTP.
// It exposes exactly the inbound contract the dashboard needs: submit, reset
// and a state snapshot, plus best-effort backend health.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/justinas/alice"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"advisor-dash/internal/client"
	wfactor "advisor-dash/internal/workflow/actor"
	"advisor-dash/internal/workflow/handler"
	"advisor-dash/internal/workflow/sim"
	"advisor-dash/pkg/logger"
	"advisor-dash/pkg/messages"
	"advisor-dash/pkg/models"
)

const stateTimeout = 10 * time.Second

type submitRequest struct {
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id"`
	AccountID string `json:"account_id"`
	Query     string `json:"query"`
}

type submitResponse struct {
	SessionID string `json:"session_id"`
}

type healthResponse struct {
	Service string `json:"service"`
	Backend string `json:"backend"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	ac       *actor.RootContext
	server   *http.Server
	sessions *sessionCache
}

func New(ac *actor.RootContext, coordinator *client.Client, port string) *Server {
	r := chi.NewRouter()
	r.Use(logMiddleware())
	sessions := newSessionCache()

	h := handler.New(coordinator)
	props := newWorkflowProps(h)

	r.Post("/submit", func(w http.ResponseWriter, r *http.Request) {
		req := submitRequest{}
		if err := unmarshalRequestBody(r, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			log.Debug().Msg("cannot parse body")
			render.JSON(w, r, errorResponse{Error: "unable to parse body"})
			return
		}

		query := models.QueryRequest{UserID: req.UserID, AccountID: req.AccountID, Query: req.Query}
		if err := query.Validate(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Error: err.Error()})
			return
		}

		id, pid, err := resolveSession(ac, sessions, props, req.SessionID)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Error: err.Error()})
			return
		}

		ac.Send(pid, messages.SubmitQuery{RequestID: uuid.New(), Request: query})

		log.Debug().Str(logger.SessionField, id.String()).Msg("analysis submitted")
		render.JSON(w, r, submitResponse{SessionID: id.String()})
	})

	r.Post("/reset/{id}", func(w http.ResponseWriter, r *http.Request) {
		pid, ok := lookupSession(sessions, chi.URLParam(r, "id"), w, r)
		if !ok {
			return
		}
		ac.Send(pid, messages.Reset{})
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/state/{id}", func(w http.ResponseWriter, r *http.Request) {
		pid, ok := lookupSession(sessions, chi.URLParam(r, "id"), w, r)
		if !ok {
			return
		}

		future := ac.RequestFuture(pid, messages.GetState{}, stateTimeout) // blocking
		res, err := future.Result()
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			log.Error().Err(err).Msg("unable to get state from workflow actor")
			return
		}

		state, ok := res.(models.WorkflowState)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			log.Error().Msg("unexpected state response from workflow actor")
			return
		}
		render.JSON(w, r, state)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		backend := "unreachable"
		if coordinator.Health(r.Context()).Healthy() {
			backend = "healthy"
		}
		render.JSON(w, r, healthResponse{Service: "advisor-dash", Backend: backend})
	})

	r.Get("/agents/status", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, coordinator.AgentsStatus(r.Context()))
	})

	return &Server{
		ac: ac,
		server: &http.Server{
			Addr:    fmt.Sprint(":", port),
			Handler: r,
		},
		sessions: sessions,
	}
}

func newWorkflowProps(h *handler.Handler) *actor.Props {
	decider := func(reason interface{}) actor.Directive {
		log.Error().Msgf("handling failure for workflow actor. reason: %v", reason)
		return actor.RestartDirective
	}
	strategy := actor.NewOneForOneStrategy(3, 10000, decider)

	return actor.PropsFromProducer(wfactor.Producer(h, sim.Default()), actor.WithSupervisor(strategy))
}

func resolveSession(ac *actor.RootContext, sessions *sessionCache, props *actor.Props, raw string) (uuid.UUID, *actor.PID, error) {
	if raw == "" {
		id := uuid.New()
		pid := ac.Spawn(props)
		sessions.add(id, pid)
		return id, pid, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, nil, errors.New("unable to parse session_id")
	}
	if pid, ok := sessions.get(id); ok {
		return id, pid, nil
	}

	pid := ac.Spawn(props)
	sessions.add(id, pid)
	return id, pid, nil
}

func lookupSession(sessions *sessionCache, raw string, w http.ResponseWriter, r *http.Request) (*actor.PID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "unable to parse id"})
		return nil, false
	}
	pid, ok := sessions.get(id)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		log.Debug().Str(logger.SessionField, raw).Msg("cannot find session")
		return nil, false
	}
	return pid, true
}

func (s *Server) Start() error {
	err := s.server.ListenAndServe()
	if err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}

	log.Info().Msg("http server started")
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	return nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func logMiddleware() func(http.Handler) http.Handler {
	c := alice.New()
	c = c.Append(hlog.NewHandler(log.Logger))
	c = c.Append(hlog.RemoteAddrHandler("ip"))
	c = c.Append(hlog.UserAgentHandler("agent"))
	c = c.Append(hlog.RequestIDHandler("req_id", "Request-Id"))
	c = c.Append(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("verb", r.Method).
			Stringer("url", r.URL).
			Int("size", size).
			Int("status", status).
			Int64("duration", duration.Milliseconds()).
			Msg("REQ")
	}))

	return c.Then
}

func unmarshalRequestBody(req *http.Request, output interface{}) error {
	if req.Body == nil {
		return errors.New("invalid body in request")
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	if err = req.Body.Close(); err != nil {
		return err
	}
	if err = json.Unmarshal(body, &output); err != nil {
		return err
	}

	return nil
}
