// Package sidecar fetches the authentication and authorization tokens that
// outbound upstream calls must carry. Tokens are issued by a sidecar
// container colocated with the service.
package sidecar

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expirySkew is subtracted from a token's exp claim so a token is refreshed
// before the upstream gateway would reject it.
const expirySkew = 30 * time.Second

// TokenService fetches and caches the sidecar-issued bearer tokens. One
// onboarding request makes up to four feature calls; caching until the JWT
// expiry avoids a sidecar round trip per call.
type TokenService struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger

	mu    sync.Mutex
	authn cachedToken
	authz cachedToken
}

type cachedToken struct {
	value     string
	expiresAt time.Time
}

func (t cachedToken) valid(now time.Time) bool {
	return t.value != "" && now.Before(t.expiresAt)
}

// NewTokenService builds a token service against the sidecar base URL
// (e.g. "http://localhost:8082/sidecar").
func NewTokenService(baseURL string, logger *slog.Logger) *TokenService {
	return &TokenService{
		http:    &http.Client{Timeout: 5 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// AuthnToken returns the authentication (JWT R) token.
func (s *TokenService) AuthnToken(ctx context.Context) (string, error) {
	return s.token(ctx, &s.authn, "authn-token")
}

// AuthzToken returns the authorization (JWT G) token.
func (s *TokenService) AuthzToken(ctx context.Context) (string, error) {
	return s.token(ctx, &s.authz, "authz-token")
}

func (s *TokenService) token(ctx context.Context, cache *cachedToken, endpoint string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if cache.valid(now) {
		return cache.value, nil
	}

	value, err := s.fetch(ctx, endpoint)
	if err != nil {
		return "", err
	}
	cache.value = value
	cache.expiresAt = tokenExpiry(value, now)
	return value, nil
}

func (s *TokenService) fetch(ctx context.Context, endpoint string) (string, error) {
	url := s.baseURL + "/" + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build sidecar request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: sidecar returned status %d", endpoint, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s response: %w", endpoint, err)
	}
	token := strings.TrimSpace(string(body))
	if token == "" {
		return "", fmt.Errorf("fetch %s: sidecar returned an empty token", endpoint)
	}

	s.logger.DebugContext(ctx, "fetched sidecar token", "endpoint", endpoint)
	return token, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// sidecar is trusted and only the lifetime matters here. Tokens without a
// readable exp are not cached beyond the skew window.
func tokenExpiry(token string, now time.Time) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return now.Add(expirySkew)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return now.Add(expirySkew)
	}
	return exp.Time.Add(-expirySkew)
}
