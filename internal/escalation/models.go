// Package escalation turns a failed onboarding into a back-office case.
package escalation

import (
	"time"

	id "onboarding/pkg/domain"
)

// CaseChannel is the constant channel tag carried by every case record.
const CaseChannel = "DIGITAL_BANKING"

// CaseRecord is the escalation payload handed to the Orinoco case-management
// system. Created exactly once per failed orchestration and never mutated
// afterwards; ownership passes to the collaborator on notify.
type CaseRecord struct {
	TransactionID string          `json:"transactionId"`
	FKN           string          `json:"fkn"`
	ProductCode   string          `json:"productCode"`
	CustomerType  id.CustomerType `json:"customerType"`

	CaseID       string    `json:"caseId"`
	CreatedAt    time.Time `json:"caseCreationTimestamp"`
	ErrorMessage string    `json:"errorMessage"`

	Channel  string      `json:"channel"`
	Severity id.Severity `json:"severity"`

	// Snapshot of the full request context for back-office diagnostics.
	AdditionalContext map[string]any `json:"additionalContext"`
}
