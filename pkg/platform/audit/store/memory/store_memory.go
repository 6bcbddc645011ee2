// Package memory provides an in-memory audit store for tests and single
// process deployments.
package memory

import (
	"context"
	"sync"

	audit "member-gateway/pkg/platform/audit"
)

// Store keeps audit events in memory.
type Store struct {
	mu     sync.RWMutex
	events []audit.Event
}

// NewStore constructs an empty in-memory audit store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *Store) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]audit.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}
