package ports

import (
	"context"

	"bisca/internal/domain"
)

// SessionStore persists game state snapshots under a named slot.
type SessionStore interface {
	// Load returns the snapshot in slot, or nil with no error when the slot is empty.
	Load(ctx context.Context, slot string) (*domain.GameState, error)
	// Save replaces the snapshot in slot.
	Save(ctx context.Context, slot string, state *domain.GameState) error
}
