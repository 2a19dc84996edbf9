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

// PINActivationChannel is the channel on which customers set their PIN.
const PINActivationChannel = "mobile"

// PINActivationExecutor activates the card PIN. Scheduled only when the
// customer confirmed a PIN at request time.
type PINActivationExecutor struct {
	gateway
}

// NewPINActivationExecutor builds the PIN activation executor.
func NewPINActivationExecutor(caller upstream.Caller, auditor *audit.Service, baseURL string, logger *slog.Logger) *PINActivationExecutor {
	return &PINActivationExecutor{gateway: newGateway(caller, auditor, baseURL, logger)}
}

func (e *PINActivationExecutor) Kind() id.FeatureKind { return id.FeaturePINActivation }

func (e *PINActivationExecutor) Execute(ctx context.Context, reqCtx models.RequestContext, _ *catalog.Product) error {
	return e.call(ctx, reqCtx, id.FeaturePINActivation, map[string]any{
		"transactionId":     reqCtx.TransactionID,
		"fkn":               reqCtx.FKN,
		"productCode":       reqCtx.ProductCode,
		"pinSet":            reqCtx.PINSet,
		"activationChannel": PINActivationChannel,
	})
}
