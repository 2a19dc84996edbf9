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

// OnlineBankingExecutor activates online banking access together with the
// sub-features the product bundles. Sub-feature flags come from the catalog,
// not the request; a product without declared sub-features sends all flags as
// false.
type OnlineBankingExecutor struct {
	gateway
}

// NewOnlineBankingExecutor builds the online banking activation executor.
func NewOnlineBankingExecutor(caller upstream.Caller, auditor *audit.Service, baseURL string, logger *slog.Logger) *OnlineBankingExecutor {
	return &OnlineBankingExecutor{gateway: newGateway(caller, auditor, baseURL, logger)}
}

func (e *OnlineBankingExecutor) Kind() id.FeatureKind { return id.FeatureOnlineBanking }

func (e *OnlineBankingExecutor) Execute(ctx context.Context, reqCtx models.RequestContext, product *catalog.Product) error {
	sub := product.OnlineBankingSubFeatures()
	return e.call(ctx, reqCtx, id.FeatureOnlineBanking, map[string]any{
		"transactionId":    reqCtx.TransactionID,
		"fkn":              reqCtx.FKN,
		"productCode":      reqCtx.ProductCode,
		"channel":          DigitalBankingChannel,
		"telephoneBanking": sub.TelephoneBanking,
		"smsNotifications": sub.SMSNotifications,
		"emailAlerts":      sub.EmailAlerts,
	})
}
