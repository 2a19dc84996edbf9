package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"onboarding/internal/audit"
	auditHandler "onboarding/internal/audit/handler"
	auditmem "onboarding/internal/audit/store/memory"
	auditpg "onboarding/internal/audit/store/postgres"
	"onboarding/internal/catalog"
	"onboarding/internal/escalation"
	"onboarding/internal/onboarding"
	onboardingMetrics "onboarding/internal/onboarding/metrics"
	"onboarding/internal/onboarding/store/idempotency"
	"onboarding/internal/platform/config"
	"onboarding/internal/platform/httpserver"
	"onboarding/internal/platform/logger"
	platformMetrics "onboarding/internal/platform/metrics"
	"onboarding/internal/platform/middleware"
	platformRedis "onboarding/internal/platform/redis"
	"onboarding/internal/sidecar"
	"onboarding/internal/upstream"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("failed to load product catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}

	auditStore, closeAudit, err := buildAuditStore(cfg)
	if err != nil {
		log.Error("failed to open call-log store", "error", err)
		os.Exit(1)
	}
	defer closeAudit()
	auditor := audit.NewService(auditStore, log)

	guard, closeGuard, err := buildGuard(cfg)
	if err != nil {
		log.Error("failed to connect idempotency guard", "error", err)
		os.Exit(1)
	}
	defer closeGuard()

	var caller upstream.Caller
	if cfg.SimulateUpstream {
		log.Info("using in-process upstream simulator")
		caller = upstream.NewSimulator(log)
	} else {
		tokens := sidecar.NewTokenService(cfg.SidecarBaseURL, log)
		caller = upstream.NewClient(tokens, log)
	}

	notifier := escalation.NewOrinocoClient(caller, cfg.CaseBaseURL, log)
	escalator := escalation.NewBuilder(notifier, log)

	obMetrics := onboardingMetrics.New()
	httpMetrics := platformMetrics.New()

	svc := onboarding.NewService(cat, caller, auditor, escalator, guard, obMetrics, cfg.UpstreamBaseURL, log)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Latency(httpMetrics))

	onboarding.NewHandler(svc, cat, auditor, log).Register(router)
	auditHandler.New(auditor, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting onboarding service", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// buildAuditStore selects postgres when a DSN is configured, falling back to
// the in-memory store for local runs.
func buildAuditStore(cfg config.Config) (audit.Store, func(), error) {
	if cfg.PostgresDSN == "" {
		return auditmem.New(), func() {}, nil
	}
	db, err := auditpg.Open(cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	return auditpg.New(db), func() { db.Close() }, nil
}

// buildGuard selects the shared redis guard when configured, falling back to
// the in-process one.
func buildGuard(cfg config.Config) (idempotency.Guard, func(), error) {
	if cfg.RedisURL == "" {
		return idempotency.NewMemoryGuard(), func() {}, nil
	}
	client, err := platformRedis.New(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return idempotency.NewRedisGuard(client.Client), func() { client.Close() }, nil
}
