package service

import (
	"context"
	"errors"
	"log/slog"

	"onboarding/internal/catalog"
	"onboarding/internal/escalation"
	"onboarding/internal/onboarding/features"
	"onboarding/internal/onboarding/metrics"
	"onboarding/internal/onboarding/models"
	id "onboarding/pkg/domain"
)

// Result is the terminal state of one onboarding run.
type Result struct {
	Status   models.Status
	CaseID   string
	Executed []id.FeatureKind
}

// Policy runs the feature sequence appropriate for one customer type.
// Implementations differ only in which features they schedule; execution
// mechanics are shared.
type Policy interface {
	CustomerType() id.CustomerType
	Process(ctx context.Context, reqCtx models.RequestContext, product *catalog.Product) (Result, error)
}

// enginePolicy is the shared execution engine. Both customer-type policies
// are thin configurations of it: they differ in the schufa gate only.
type enginePolicy struct {
	customerType  id.CustomerType
	includeSchufa bool

	registry   *features.Registry
	escalation *escalation.Builder
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewNaturalPersonPolicy builds the policy for private customers. Natural
// persons require the credit-agency check before any account is opened.
func NewNaturalPersonPolicy(registry *features.Registry, esc *escalation.Builder, m *metrics.Metrics, logger *slog.Logger) Policy {
	return &enginePolicy{
		customerType:  id.CustomerTypeNaturalPerson,
		includeSchufa: true,
		registry:      registry,
		escalation:    esc,
		metrics:       m,
		logger:        logger,
	}
}

// NewLegalEntityPolicy builds the policy for business customers. Legal
// entities are vetted through a separate commercial register process, so the
// credit-agency check never runs for them regardless of product
// configuration.
func NewLegalEntityPolicy(registry *features.Registry, esc *escalation.Builder, m *metrics.Metrics, logger *slog.Logger) Policy {
	return &enginePolicy{
		customerType:  id.CustomerTypeLegalEntity,
		includeSchufa: false,
		registry:      registry,
		escalation:    esc,
		metrics:       m,
		logger:        logger,
	}
}

func (p *enginePolicy) CustomerType() id.CustomerType { return p.customerType }

// Process executes the ordered feature sequence fail-fast: the first failing
// feature stops the run and escalates. Exactly one case record exists per
// failed run; completed runs create none.
func (p *enginePolicy) Process(ctx context.Context, reqCtx models.RequestContext, product *catalog.Product) (Result, error) {
	order := features.BuildOrder(product, features.Gates{
		IncludeSchufa:      p.includeSchufa,
		PINSet:             reqCtx.PINSet,
		OnlineBankingOptIn: reqCtx.OnlineBankingOptIn,
	})

	p.logger.InfoContext(ctx, "onboarding run started",
		"transaction_id", reqCtx.TransactionID,
		"customer_type", p.customerType.String(),
		"status", models.StatusRunning.String(),
		"features", len(order),
	)

	executed := make([]id.FeatureKind, 0, len(order))
	for _, kind := range order {
		if err := p.registry.Dispatch(ctx, kind, reqCtx, product); err != nil {
			p.metrics.IncrementFeature(kind.String(), "failure")

			var failure *features.UpstreamFailure
			if !errors.As(err, &failure) {
				// Not an upstream outcome but broken wiring; surface it
				// instead of opening a case.
				return Result{}, err
			}

			caseID, escErr := p.escalation.Escalate(ctx, reqCtx, failure.Error())
			if escErr != nil {
				return Result{}, escErr
			}

			p.logger.WarnContext(ctx, "onboarding run escalated",
				"transaction_id", reqCtx.TransactionID,
				"failed_feature", kind.String(),
				"case_id", caseID,
				"status", models.StatusEscalated.String(),
			)
			return Result{Status: models.StatusEscalated, CaseID: caseID, Executed: executed}, nil
		}

		p.metrics.IncrementFeature(kind.String(), "success")
		executed = append(executed, kind)
	}

	p.logger.InfoContext(ctx, "onboarding run completed",
		"transaction_id", reqCtx.TransactionID,
		"status", models.StatusCompleted.String(),
		"features_executed", len(executed),
	)
	return Result{Status: models.StatusCompleted, Executed: executed}, nil
}
