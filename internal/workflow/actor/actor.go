package actor

import (
	"context"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/rs/zerolog/log"

	"advisor-dash/internal/workflow/handler"
	"advisor-dash/internal/workflow/sim"
	"advisor-dash/pkg/logger"
	"advisor-dash/pkg/messages"
	"advisor-dash/pkg/models"
)

// Workflow coordinates one analyze operation at a time: the cosmetic status
// schedule and the single network call run independently and both write state
// only through this actor's mailbox. A run generation stamps every scheduled
// message so nothing from run N can touch run N+1.
type Workflow struct {
	handler  *handler.Handler
	schedule sim.Schedule

	state  models.WorkflowState
	gen    uint64
	timers []*time.Timer
}

// simStep and analyzeOutcome are self-sent; nothing outside this package can
// forge a state mutation.
type simStep struct {
	gen  uint64
	step sim.Step
}

type analyzeOutcome struct {
	gen      uint64
	analysis *models.AnalysisResult
	errorMsg string
}

func Producer(h *handler.Handler, schedule sim.Schedule) actor.Producer {
	return func() actor.Actor {
		return &Workflow{
			handler:  h,
			schedule: schedule,
			state:    models.NewWorkflowState(),
		}
	}
}

func (w *Workflow) Receive(ac actor.Context) {
	l := log.With().Fields(map[string]interface{}{logger.ActorIDField: ac.Self().GetId(), logger.AgentNameField: "query-workflow"}).Logger()
	switch msg := ac.Message().(type) {
	case *actor.Started:
		l.Debug().Msg("starting workflow actor")
	case *actor.Stopping:
		// disposal must not leak scheduled callbacks
		w.cancelTimers()
		l.Debug().Msg("stopping workflow actor")
	case *actor.Restarting:
		w.cancelTimers()
		l.Debug().Msg("restarting workflow actor")
	case *actor.Stopped:
		l.Debug().Msg("workflow actor stopped")
	case messages.SubmitQuery:
		l.Debug().Str(logger.RequestIDField, msg.RequestID.String()).Msg("SubmitQuery received")
		w.beginRun()
		w.state.Phase = models.PhaseSubmitting
		w.state.IsLoading = true

		root := ac.ActorSystem().Root
		self := ac.Self()
		gen := w.gen

		for _, step := range w.schedule {
			step := step
			t := time.AfterFunc(step.Offset, func() {
				root.Send(self, simStep{gen: gen, step: step})
			})
			w.timers = append(w.timers, t)
		}

		req := msg.Request
		h := w.handler
		go func() {
			res := h.Analyze(context.Background(), req)
			root.Send(self, analyzeOutcome{gen: gen, analysis: res.Analysis, errorMsg: res.ErrorMsg})
		}()
	case simStep:
		if msg.gen != w.gen {
			l.Debug().Msg("dropping stale simulation step")
			return
		}
		msg.step.Apply(w.state.AgentStatuses)
	case analyzeOutcome:
		if msg.gen != w.gen {
			l.Debug().Msg("dropping stale analyze outcome")
			return
		}
		w.state.Result = msg.analysis
		w.state.Error = msg.errorMsg
		w.state.IsLoading = false
		if msg.errorMsg == "" {
			w.state.Phase = models.PhaseCompleted
			l.Info().Msg("analysis completed")
		} else {
			w.state.Phase = models.PhaseFailed
			l.Info().Str("error", msg.errorMsg).Msg("analysis settled with fallback")
		}
	case messages.Reset:
		l.Debug().Msg("Reset received")
		w.beginRun()
	case messages.GetState:
		ac.Respond(w.state.Clone())
	default:
		l.Warn().Msgf("unknown message: %v", msg)
	}
}

// beginRun cancels everything scheduled by the previous run and restores the
// four-entry ready state.
func (w *Workflow) beginRun() {
	w.cancelTimers()
	w.gen++
	w.state = models.NewWorkflowState()
}

func (w *Workflow) cancelTimers() {
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = nil
}
