package memory

import (
	"context"
	"sync"

	"onboarding/internal/audit"
)

// Store is the in-memory audit store used in local deployments and tests.
// Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records []audit.Record
	nextID  int64
}

// New creates an empty in-memory audit store.
func New() *Store {
	return &Store{nextID: 1}
}

// Append adds a record, assigning it the next sequential ID.
func (s *Store) Append(_ context.Context, record audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = s.nextID
	s.nextID++
	s.records = append(s.records, record)
	return nil
}

// List returns records matching the filter in insertion order.
func (s *Store) List(_ context.Context, filter audit.Filter) ([]audit.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Record
	for _, r := range s.records {
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}
