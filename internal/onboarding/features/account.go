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

// AccountOpeningExecutor opens the product account at the core banking
// system.
type AccountOpeningExecutor struct {
	gateway
}

// NewAccountOpeningExecutor builds the account opening executor.
func NewAccountOpeningExecutor(caller upstream.Caller, auditor *audit.Service, baseURL string, logger *slog.Logger) *AccountOpeningExecutor {
	return &AccountOpeningExecutor{gateway: newGateway(caller, auditor, baseURL, logger)}
}

func (e *AccountOpeningExecutor) Kind() id.FeatureKind { return id.FeatureAccountOpen }

func (e *AccountOpeningExecutor) Execute(ctx context.Context, reqCtx models.RequestContext, _ *catalog.Product) error {
	return e.call(ctx, reqCtx, id.FeatureAccountOpen, map[string]any{
		"transactionId": reqCtx.TransactionID,
		"fkn":           reqCtx.FKN,
		"productCode":   reqCtx.ProductCode,
		"customerType":  reqCtx.CustomerType.String(),
		"channel":       DigitalBankingChannel,
	})
}
