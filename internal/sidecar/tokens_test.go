package sidecar

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "onboarding-service",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestTokenServiceCachesUntilExpiry(t *testing.T) {
	var hits atomic.Int32
	token := signedToken(t, time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(token))
	}))
	defer srv.Close()

	svc := NewTokenService(srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))

	for i := 0; i < 3; i++ {
		got, err := svc.AuthnToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, token, got)
	}
	assert.Equal(t, int32(1), hits.Load(), "cached token must not refetch")
}

func TestTokenServiceRefetchesExpiredToken(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		// Already inside the skew window, so never cacheable.
		_, _ = w.Write([]byte(signedToken(t, time.Now().Add(5*time.Second))))
	}))
	defer srv.Close()

	svc := NewTokenService(srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.AuthzToken(context.Background())
	require.NoError(t, err)
	_, err = svc.AuthzToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestTokenServiceErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		svc := NewTokenService(srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
		_, err := svc.AuthnToken(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("empty body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer srv.Close()

		svc := NewTokenService(srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
		_, err := svc.AuthnToken(context.Background())
		require.Error(t, err)
	})
}

func TestAuthnAndAuthzAreCachedIndependently(t *testing.T) {
	var authn, authz atomic.Int32
	token := signedToken(t, time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/authn-token":
			authn.Add(1)
		case "/authz-token":
			authz.Add(1)
		}
		_, _ = w.Write([]byte(token))
	}))
	defer srv.Close()

	svc := NewTokenService(srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := svc.AuthnToken(context.Background())
	require.NoError(t, err)
	_, err = svc.AuthzToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), authn.Load())
	assert.Equal(t, int32(1), authz.Load())
}
