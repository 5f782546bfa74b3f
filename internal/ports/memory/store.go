// Package memory is an in-process SessionStore, used by the CLI by default and in tests.
package memory

import (
	"context"
	"sync"

	"bisca/internal/domain"
)

// Store keeps deep copies of snapshots keyed by slot.
type Store struct {
	mu    sync.RWMutex
	slots map[string]*domain.GameState
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{slots: make(map[string]*domain.GameState)}
}

func (s *Store) Load(_ context.Context, slot string) (*domain.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.slots[slot]
	if !ok {
		return nil, nil
	}
	return state.Clone(), nil
}

func (s *Store) Save(_ context.Context, slot string, state *domain.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = state.Clone()
	return nil
}
