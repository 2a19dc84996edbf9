// Package idempotency guards against replayed onboarding requests. The guard
// is advisory: a storage fault must never block onboarding, so callers treat
// guard errors as "not seen" and proceed (fail-open).
package idempotency

import (
	"context"
	"time"
)

// DefaultTTL bounds how long a transaction ID is remembered. Channel systems
// retry within minutes; remembering longer only grows the store.
const DefaultTTL = 24 * time.Hour

// Guard remembers transaction IDs that already started onboarding.
type Guard interface {
	// MarkSeen records the transaction ID and reports whether it was already
	// present. The first caller for an ID gets false, every later caller true.
	MarkSeen(ctx context.Context, transactionID string) (bool, error)
}
