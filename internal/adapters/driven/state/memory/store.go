// Package memory provides an in-memory UserStateStore for testing.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/tgarchive/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.UserStateStore = (*Store)(nil)

// Store is an in-memory implementation of driven.UserStateStore for testing.
type Store struct {
	mu     sync.RWMutex
	topics map[int64]string

	// SetErr, when non-nil, is returned by Set to simulate a failed
	// durable write.
	SetErr error
}

// NewStore creates an in-memory user state store.
func NewStore() *Store {
	return &Store{topics: make(map[int64]string)}
}

// Get implements driven.UserStateStore.
func (s *Store) Get(_ context.Context, userID int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topics[userID], nil
}

// Set implements driven.UserStateStore.
func (s *Store) Set(_ context.Context, userID int64, topic string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics[userID] = topic
	return nil
}

// Clear implements driven.UserStateStore.
func (s *Store) Clear(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.topics, userID)
	return nil
}

// Close implements driven.UserStateStore.
func (s *Store) Close() error { return nil }
