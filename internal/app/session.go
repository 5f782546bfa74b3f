package app

import (
	"context"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"bisca/internal/domain"
	"bisca/internal/ports"
)

// Session owns the single shared game state of one assistant user and mirrors it to a
// store after every successful action. Actions must not be dispatched concurrently.
type Session struct {
	svc    *Service
	store  ports.SessionStore
	slot   string
	logger runtime.Logger
	state  *domain.GameState
}

// OpenSession restores the snapshot in slot, or starts from a fresh setup state when the
// slot is empty.
func OpenSession(ctx context.Context, svc *Service, store ports.SessionStore, slot string, logger runtime.Logger) (*Session, error) {
	if svc == nil {
		svc = NewService(nil, logger)
	}
	if logger == nil {
		logger = svc.logger
	}
	state, err := store.Load(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("load session %q: %w", slot, err)
	}
	if state == nil {
		logger.Debug("Session: slot %s empty, starting fresh.", slot)
		state = domain.NewGameState()
	}
	return &Session{svc: svc, store: store, slot: slot, logger: logger, state: state}, nil
}

// State returns the current game state. Callers must treat it as read-only.
func (s *Session) State() *domain.GameState {
	return s.state
}

// Service returns the service applying actions for this session.
func (s *Session) Service() *Service {
	return s.svc
}

// Dispatch applies an action. A failed action leaves the state as it was. Persisting the new
// state is best-effort: a save failure is logged and reported without undoing the transition.
func (s *Session) Dispatch(ctx context.Context, action Action) Result {
	next, res := s.svc.Apply(s.state, action)
	if !res.Success {
		return res
	}
	s.state = next
	if err := s.store.Save(ctx, s.slot, next); err != nil {
		s.logger.Error("Session: failed to save slot %s: %v", s.slot, err)
		res.PersistError = err.Error()
	}
	return res
}
