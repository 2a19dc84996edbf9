package handler

import (
	"strings"

	"onboarding/internal/onboarding/models"
	id "onboarding/pkg/domain"
	dErrors "onboarding/pkg/domain-errors"
)

// OnboardRequest is the wire format of one onboarding request. ProductCode
// carries the composite brand-product form ("BrandA-BCA") and CustomerType
// the numeric code assigned by the channel systems.
type OnboardRequest struct {
	TransactionID      string `json:"transactionId"`
	FKN                string `json:"fkn"`
	ProductCode        string `json:"productCode"`
	CustomerType       int    `json:"customerType"`
	SimulateFailure    string `json:"simulateFailure,omitempty"`
	FailureTarget      string `json:"failureTarget,omitempty"`
	PINSet             bool   `json:"pinSet"`
	OnlineBankingOptIn bool   `json:"onlineBankingOptIn"`
}

// ToRequestContext validates the request and builds the orchestration
// context with boundary defaults applied.
func (r OnboardRequest) ToRequestContext() (models.RequestContext, error) {
	if strings.TrimSpace(r.TransactionID) == "" {
		return models.RequestContext{}, dErrors.New(dErrors.CodeBadRequest, "transactionId is required")
	}
	if strings.TrimSpace(r.FKN) == "" {
		return models.RequestContext{}, dErrors.New(dErrors.CodeBadRequest, "fkn is required")
	}

	key, err := id.ParseProductKey(r.ProductCode)
	if err != nil {
		return models.RequestContext{}, err
	}

	customerType, err := id.ParseCustomerTypeCode(r.CustomerType)
	if err != nil {
		return models.RequestContext{}, err
	}

	reqCtx := models.NewRequestContext(r.TransactionID, r.FKN, key.Brand, key.ProductCode, customerType)
	if r.SimulateFailure != "" {
		reqCtx.SimulateFailure = r.SimulateFailure
	}
	if r.FailureTarget != "" {
		reqCtx.FailureTarget = r.FailureTarget
	}
	reqCtx.PINSet = r.PINSet
	reqCtx.OnlineBankingOptIn = r.OnlineBankingOptIn
	return reqCtx, nil
}

// OnboardResponse is the wire format of the onboarding outcome.
type OnboardResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	TransactionID string `json:"transactionId"`
	CaseID        string `json:"caseId,omitempty"`
}
