package idempotency

import (
	"context"
	"sync"
	"time"
)

// MemoryGuard is the in-process guard used in local deployments and tests.
// Safe for concurrent use.
type MemoryGuard struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryGuard creates an empty in-memory guard with the default TTL.
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{
		seen: make(map[string]time.Time),
		ttl:  DefaultTTL,
		now:  time.Now,
	}
}

// MarkSeen implements Guard. Expired entries are pruned lazily on access.
func (g *MemoryGuard) MarkSeen(_ context.Context, transactionID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if expiry, ok := g.seen[transactionID]; ok {
		if now.Before(expiry) {
			return true, nil
		}
		delete(g.seen, transactionID)
	}
	g.seen[transactionID] = now.Add(g.ttl)
	return false, nil
}
