// Package onboarding orchestrates product onboarding runs end to end:
// order building, feature dispatch, customer-type policies, and the HTTP
// surface.
package onboarding

import (
	"log/slog"

	"onboarding/internal/audit"
	"onboarding/internal/catalog"
	"onboarding/internal/escalation"
	"onboarding/internal/onboarding/features"
	"onboarding/internal/onboarding/handler"
	"onboarding/internal/onboarding/metrics"
	"onboarding/internal/onboarding/service"
	"onboarding/internal/onboarding/store/idempotency"
	"onboarding/internal/upstream"
)

// Service exposes the onboarding orchestrator.
type Service = service.Service

// Handler wires HTTP endpoints to the onboarding service.
type Handler = handler.Handler

// Metrics provides observability for the onboarding module.
type Metrics = metrics.Metrics

// NewService constructs the orchestrator with both customer-type policies
// and all four feature executors wired in.
func NewService(
	cat *catalog.Catalog,
	caller upstream.Caller,
	auditor *audit.Service,
	esc *escalation.Builder,
	guard idempotency.Guard,
	m *Metrics,
	upstreamBaseURL string,
	logger *slog.Logger,
) *Service {
	registry := features.NewRegistry(
		features.NewSchufaExecutor(caller, auditor, upstreamBaseURL, logger),
		features.NewAccountOpeningExecutor(caller, auditor, upstreamBaseURL, logger),
		features.NewPINActivationExecutor(caller, auditor, upstreamBaseURL, logger),
		features.NewOnlineBankingExecutor(caller, auditor, upstreamBaseURL, logger),
	)

	return service.New(cat, guard, m, logger,
		service.NewNaturalPersonPolicy(registry, esc, m, logger),
		service.NewLegalEntityPolicy(registry, esc, m, logger),
	)
}

// NewHandler constructs the HTTP handler for the onboarding routes.
func NewHandler(s *Service, cat *catalog.Catalog, auditor *audit.Service, logger *slog.Logger) *Handler {
	return handler.New(s, cat, auditor, logger)
}
