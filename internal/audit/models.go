// Package audit keeps the per-call audit trail of the onboarding service.
// Every upstream attempt is recorded, success or failure, before the outcome
// is interpreted, so a failed feature call is still traceable.
package audit

import "time"

// Record is one row of the API call log.
//
// Invariants:
//   - Append-only; records are never updated or deleted by the service
//   - RequestPayload and ResponseBody hold serialized JSON as sent/received
type Record struct {
	ID             int64     `json:"id"`
	TransactionID  string    `json:"transactionId"`
	FeatureName    string    `json:"featureName"`
	FKN            string    `json:"fkn"`
	ProductCode    string    `json:"productCode"`
	HTTPStatus     string    `json:"httpStatus"`
	RequestPayload string    `json:"requestPayload"`
	ResponseBody   string    `json:"responseBody"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Filter narrows audit log queries. Zero-valued fields match everything,
// mirroring the optional query parameters of the call-logs endpoint.
type Filter struct {
	TransactionID string
	FeatureName   string
	FKN           string
	ProductCode   string
	From          time.Time
	To            time.Time
}

// Matches reports whether the record satisfies every set filter field.
func (f Filter) Matches(r Record) bool {
	if f.TransactionID != "" && r.TransactionID != f.TransactionID {
		return false
	}
	if f.FeatureName != "" && r.FeatureName != f.FeatureName {
		return false
	}
	if f.FKN != "" && r.FKN != f.FKN {
		return false
	}
	if f.ProductCode != "" && r.ProductCode != f.ProductCode {
		return false
	}
	if !f.From.IsZero() && r.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && r.CreatedAt.After(f.To) {
		return false
	}
	return true
}
