package spin

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for spin audit-record access.
type Repository interface {
	// Create persists a new spin record
	Create(ctx context.Context, s *Spin) error

	// GetByID retrieves a spin by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Spin, error)

	// GetByClientRequestID retrieves a spin by its idempotency key, used to
	// replay a response for a duplicate client_request_id without
	// re-executing the spin
	GetByClientRequestID(ctx context.Context, playerID uuid.UUID, clientRequestID string) (*Spin, error)

	// GetByPlayer retrieves spins for a player (paginated, newest first)
	GetByPlayer(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]*Spin, error)

	// Count counts total spins for a player
	Count(ctx context.Context, playerID uuid.UUID) (int64, error)
}
