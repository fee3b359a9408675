package wallet

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines access to the wallet ledger.
type Repository interface {
	// Append writes a new ledger entry. Implementations must reject an
	// entry whose (player_id, reference_id, kind) tuple already exists,
	// returning ErrDuplicateEntry, so debit/credit operations keyed by
	// spin_id are idempotent.
	Append(ctx context.Context, e *Entry) error

	// GetByReference retrieves every ledger entry recorded against a
	// given reference_id (typically a spin_id), in write order.
	GetByReference(ctx context.Context, playerID uuid.UUID, referenceID string) ([]*Entry, error)

	// GetByPlayer retrieves ledger entries for a player, newest first.
	GetByPlayer(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]*Entry, error)
}
