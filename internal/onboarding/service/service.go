// Package service orchestrates one onboarding run: resolve the product,
// select the customer-type policy, and let the policy drive the feature
// sequence.
package service

import (
	"context"
	"log/slog"
	"time"

	"onboarding/internal/catalog"
	"onboarding/internal/onboarding/metrics"
	"onboarding/internal/onboarding/models"
	"onboarding/internal/onboarding/store/idempotency"
	id "onboarding/pkg/domain"
	dErrors "onboarding/pkg/domain-errors"
)

// Service is the onboarding orchestrator.
type Service struct {
	catalog  *catalog.Catalog
	policies map[id.CustomerType]Policy
	guard    idempotency.Guard
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// New creates the orchestrator. Every supported customer type must have a
// policy; requests for types without one fail as invariant violations.
func New(cat *catalog.Catalog, guard idempotency.Guard, m *metrics.Metrics, logger *slog.Logger, policies ...Policy) *Service {
	byType := make(map[id.CustomerType]Policy, len(policies))
	for _, p := range policies {
		byType[p.CustomerType()] = p
	}
	return &Service{
		catalog:  cat,
		policies: byType,
		guard:    guard,
		metrics:  m,
		logger:   logger,
	}
}

// Onboard runs one onboarding request to its terminal state.
//
// Errors: CodeNotFound for unknown brand or product, CodeConflict for a
// replayed transaction ID, CodeUnavailable when a failed run could not be
// escalated. Configuration rejections never open a case.
func (s *Service) Onboard(ctx context.Context, reqCtx models.RequestContext) (Result, error) {
	start := time.Now()
	s.metrics.IncrementStarted()
	defer func() { s.metrics.ObserveOnboardLatency(time.Since(start)) }()

	s.logger.InfoContext(ctx, "onboarding request accepted",
		"transaction_id", reqCtx.TransactionID,
		"brand", reqCtx.Brand,
		"product_code", reqCtx.ProductCode,
		"status", models.StatusPending.String(),
	)

	if err := s.checkReplay(ctx, reqCtx.TransactionID); err != nil {
		return Result{}, err
	}

	product, err := s.catalog.Product(reqCtx.ProductKey())
	if err != nil {
		s.metrics.IncrementConfigRejection()
		return Result{}, err
	}

	policy, ok := s.policies[reqCtx.CustomerType]
	if !ok {
		s.metrics.IncrementConfigRejection()
		return Result{}, dErrors.Newf(dErrors.CodeInvariantViolation, "no policy for customer type %s", reqCtx.CustomerType)
	}

	result, err := policy.Process(ctx, reqCtx, product)
	if err != nil {
		s.metrics.IncrementOutcome("failed", reqCtx.CustomerType.String())
		return Result{}, err
	}

	switch result.Status {
	case models.StatusEscalated:
		s.metrics.IncrementOutcome("escalated", reqCtx.CustomerType.String())
	default:
		s.metrics.IncrementOutcome("completed", reqCtx.CustomerType.String())
	}
	return result, nil
}

// checkReplay consults the idempotency guard. Guard faults fail open: a
// broken store must not block onboarding, so only a confirmed duplicate is
// rejected.
func (s *Service) checkReplay(ctx context.Context, transactionID string) error {
	seen, err := s.guard.MarkSeen(ctx, transactionID)
	if err != nil {
		s.logger.WarnContext(ctx, "idempotency guard unavailable, proceeding",
			"transaction_id", transactionID,
			"error", err,
		)
		return nil
	}
	if seen {
		return dErrors.Newf(dErrors.CodeConflict, "transaction %s was already processed", transactionID)
	}
	return nil
}
