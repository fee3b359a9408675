package gamestate

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines CAS-based access to per-player game state.
type Repository interface {
	// Get retrieves a player's state, creating and persisting the default
	// base-mode state on first access.
	Get(ctx context.Context, playerID uuid.UUID) (*PlayerState, error)

	// Put writes s back under optimistic concurrency control: the update
	// only applies if the stored version still matches s.Version, and the
	// stored version is incremented on success. Returns
	// ErrVersionConflict if another writer won the race.
	Put(ctx context.Context, s *PlayerState) error
}
