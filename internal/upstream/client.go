package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"onboarding/pkg/platform/sentinel"
)

// TokenSource supplies the bearer tokens attached to every outbound call.
// The sidecar package provides the production implementation.
type TokenSource interface {
	AuthnToken(ctx context.Context) (string, error)
	AuthzToken(ctx context.Context) (string, error)
}

// Client is the live upstream caller. All feature endpoints sit behind the
// same gateway, so one circuit breaker guards them collectively: once the
// gateway misbehaves, further calls fail fast instead of stacking timeouts.
type Client struct {
	http    *http.Client
	tokens  TokenSource
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewClient builds a live upstream caller.
func NewClient(tokens TokenSource, logger *slog.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "upstream-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("upstream circuit state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
		breaker: breaker,
		logger:  logger,
	}
}

// Post sends the payload as JSON with both sidecar tokens attached.
//
// Errors: transport faults and an open breaker surface as
// sentinel.ErrUnavailable wrapped with detail. Non-2xx statuses are not
// errors here; executors decide what a status means for their feature.
func (c *Client) Post(ctx context.Context, url string, payload map[string]any) (Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("marshal upstream payload: %w", err)
	}

	authn, err := c.tokens.AuthnToken(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("fetch authn token: %w", err)
	}
	authz, err := c.tokens.AuthzToken(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("fetch authz token: %w", err)
	}

	result, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+authn)
		req.Header.Set("X-Authorization", "Bearer "+authz)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return Response{StatusCode: resp.StatusCode, Body: string(raw)}, nil
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "upstream call failed", "url", url, "error", err)
		return Response{}, fmt.Errorf("%w: post %s: %v", sentinel.ErrUnavailable, url, err)
	}
	return result.(Response), nil
}
