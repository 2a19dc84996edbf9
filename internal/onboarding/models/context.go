package models

import id "onboarding/pkg/domain"

// RequestContext carries one onboarding request through the whole pipeline.
//
// Invariants:
//   - Built exactly once at the entry boundary with defaults resolved
//     (absent failure-injection tokens become "NONE")
//   - Treated as read-only by executors and policies; derived payload fields
//     stay local to the executor that computes them
//   - One context per request; never shared across requests
type RequestContext struct {
	TransactionID string
	FKN           string
	Brand         string
	ProductCode   string
	CustomerType  id.CustomerType

	// Failure injection for testing against the upstream simulator.
	SimulateFailure string
	FailureTarget   string

	// Customer opt-ins supplied at request time.
	PINSet             bool
	OnlineBankingOptIn bool
}

// NewRequestContext builds a context with boundary defaults applied.
func NewRequestContext(transactionID, fkn, brand, productCode string, customerType id.CustomerType) RequestContext {
	return RequestContext{
		TransactionID:   transactionID,
		FKN:             fkn,
		Brand:           brand,
		ProductCode:     productCode,
		CustomerType:    customerType,
		SimulateFailure: id.FailureNone,
		FailureTarget:   id.FailureNone,
	}
}

// ProductKey returns the catalog key for this request.
func (c RequestContext) ProductKey() id.ProductKey {
	return id.ProductKey{Brand: c.Brand, ProductCode: c.ProductCode}
}

// Snapshot renders the context as a flat map for case-record diagnostics.
func (c RequestContext) Snapshot() map[string]any {
	return map[string]any{
		"transactionId":      c.TransactionID,
		"fkn":                c.FKN,
		"brand":              c.Brand,
		"productCode":        c.ProductCode,
		"customerType":       c.CustomerType.String(),
		"simulateFailure":    c.SimulateFailure,
		"failureTarget":      c.FailureTarget,
		"pinSet":             c.PINSet,
		"onlineBankingOptIn": c.OnlineBankingOptIn,
	}
}
