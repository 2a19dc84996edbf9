package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Clients return these (optionally
// wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures.
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	// ErrUnavailable: collaborator temporarily unreachable.
	ErrUnavailable = errors.New("unavailable")
)
