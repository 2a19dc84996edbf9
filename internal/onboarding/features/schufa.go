package features

import (
	"context"
	"log/slog"

	"onboarding/internal/audit"
	"onboarding/internal/catalog"
	"onboarding/internal/onboarding/models"
	"onboarding/internal/upstream"
	id "onboarding/pkg/domain"
)

// DigitalBankingChannel tags feature calls originating from this service.
const DigitalBankingChannel = "digital-banking"

// SchufaExecutor runs the credit-agency identity check. Only natural persons
// reach this executor; the legal-entity policy never schedules it.
type SchufaExecutor struct {
	gateway
}

// NewSchufaExecutor builds the identity check executor.
func NewSchufaExecutor(caller upstream.Caller, auditor *audit.Service, baseURL string, logger *slog.Logger) *SchufaExecutor {
	return &SchufaExecutor{gateway: newGateway(caller, auditor, baseURL, logger)}
}

func (e *SchufaExecutor) Kind() id.FeatureKind { return id.FeatureSchufaCheck }

func (e *SchufaExecutor) Execute(ctx context.Context, reqCtx models.RequestContext, _ *catalog.Product) error {
	return e.call(ctx, reqCtx, id.FeatureSchufaCheck, map[string]any{
		"transactionId": reqCtx.TransactionID,
		"fkn":           reqCtx.FKN,
		"productCode":   reqCtx.ProductCode,
		"customerType":  reqCtx.CustomerType.String(),
		"channel":       DigitalBankingChannel,
	})
}
