// Package client talks to the backend coordinator over its HTTP JSON API.
// Analyze is a single bounded attempt; the auxiliary health and status calls
// are best-effort and never surface errors to callers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"advisor-dash/pkg/models"
)

const auxTimeout = 5 * time.Second

type Client struct {
	baseURL        string
	authURL        string
	analyzeTimeout time.Duration
	http           *http.Client
	token          string
	breaker        *gobreaker.CircuitBreaker
}

type Option func(*Client)

func WithAnalyzeTimeout(d time.Duration) Option {
	return func(c *Client) { c.analyzeTimeout = d }
}

func WithAuthURL(url string) Option {
	return func(c *Client) { c.authURL = url }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        baseURL,
		analyzeTimeout: 60 * time.Second,
		http:           &http.Client{},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "coordinator-aux",
			Timeout: 15 * time.Second,
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type HealthInfo struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (h *HealthInfo) Healthy() bool {
	return h != nil && h.Status == "healthy"
}

// Analyze issues the one analyze call for a submission. No retries: the user
// resubmits manually. Field names on the wire are fixed by the coordinator
// contract.
func (c *Client) Analyze(ctx context.Context, req models.QueryRequest) (*models.AnalysisResult, error) {
	payload, err := json.Marshal(struct {
		UserID    string `json:"user_id"`
		AccountID string `json:"account_id"`
		Query     string `json:"query"`
	}{req.UserID, req.AccountID, req.Query})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.analyzeTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token := c.requestToken(req); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("analyze call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("analyze status %d", resp.StatusCode)
	}

	result, err := models.DecodeAnalysisResult(body)
	if err != nil {
		log.Debug().Err(err).Msg("rejected analyze response body")
		return nil, err
	}
	return result, nil
}

// Health reports the coordinator health endpoint. Best-effort: nil means
// unknown or unhealthy, never an error to handle.
func (c *Client) Health(ctx context.Context) *HealthInfo {
	res, err := c.breaker.Execute(func() (interface{}, error) {
		var info HealthInfo
		if err := c.getJSON(ctx, "/health", &info); err != nil {
			return nil, err
		}
		return &info, nil
	})
	if err != nil {
		log.Debug().Err(err).Msg("health check failed")
		return nil
	}
	return res.(*HealthInfo)
}

// AgentsStatus fetches the coordinator's view of its sub-agents. Best-effort;
// an empty map on any failure.
func (c *Client) AgentsStatus(ctx context.Context) map[string]any {
	res, err := c.breaker.Execute(func() (interface{}, error) {
		var status map[string]any
		if err := c.getJSON(ctx, "/agents/status", &status); err != nil {
			return nil, err
		}
		return status, nil
	})
	if err != nil {
		log.Debug().Err(err).Msg("agents status failed")
		return map[string]any{}
	}
	return res.(map[string]any)
}

// WaitReady polls the health endpoint with exponential backoff until the
// coordinator answers healthy or the deadline passes. Used at startup so the
// first paint can show real backend state; failure is not fatal.
func (c *Client) WaitReady(ctx context.Context, maxWait time.Duration) bool {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if !c.Health(ctx).Healthy() {
			return struct{}{}, fmt.Errorf("coordinator not ready")
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxElapsedTime(maxWait))
	return err == nil
}

// Login posts the fixed demo credentials and keeps the opaque token for later
// analyze calls. Not a security mechanism; the demo backend expects it.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if c.authURL == "" {
		return fmt.Errorf("no auth url configured")
	}

	payload, _ := json.Marshal(map[string]string{"username": username, "password": password})

	ctx, cancel := context.WithTimeout(ctx, auxTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL+"/login", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("login call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("login status %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	c.token = body.Token
	return nil
}

func (c *Client) requestToken(req models.QueryRequest) string {
	if req.AuthToken != "" {
		return req.AuthToken
	}
	return c.token
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, auxTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("get %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
