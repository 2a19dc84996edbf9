package domain

import "strings"

// Severity classifies an escalation case for back-office triage.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Failure-injection tokens accepted in the simulateFailure request field.
// They drive both the upstream simulator and the case severity mapping.
const (
	FailureNone               = "NONE"
	FailureNetworkError       = "NETWORK_ERROR"
	FailureServiceUnavailable = "SERVICE_UNAVAILABLE"
	FailureBadRequest         = "BAD_REQUEST"
)

// SeverityForFailure maps a simulateFailure token to a case severity.
// Transport faults rank HIGH, caller faults MEDIUM, everything else
// (including an absent token) LOW. Matching is case-insensitive.
func SeverityForFailure(simulateFailure string) Severity {
	switch strings.ToUpper(simulateFailure) {
	case FailureNetworkError, FailureServiceUnavailable:
		return SeverityHigh
	case FailureBadRequest:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}
