package player

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for player balance/statistics access.
type Repository interface {
	// Create creates a new player
	Create(ctx context.Context, player *Player) error

	// GetByID retrieves a player by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Player, error)

	// Update updates a player's information
	Update(ctx context.Context, player *Player) error

	// UpdateBalance updates a player's balance
	UpdateBalance(ctx context.Context, id uuid.UUID, newBalance float64) error
	UpdateBalanceWithLock(ctx context.Context, id uuid.UUID, newBalance float64, lockVersion int) error

	// UpdateBalanceWithTx updates a player's balance within a transaction.
	// The tx parameter should be passed via context using TxKey.
	UpdateBalanceWithTx(ctx context.Context, id uuid.UUID, amount float64) error
	UpdateBalanceWithLockAndTx(ctx context.Context, id uuid.UUID, amount float64, lockVersion int) error

	// UpdateStatistics updates player statistics
	UpdateStatistics(ctx context.Context, id uuid.UUID, spins int, wagered, won float64) error

	// Delete deletes a player
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves a list of players with filters and pagination
	List(ctx context.Context, filters ListFilters) ([]*Player, int64, error)
}

// ListFilters represents filters for listing players
type ListFilters struct {
	IsActive *bool
	Page     int
	Limit    int
	SortBy   string
	SortDesc bool
}
