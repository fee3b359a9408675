package player

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for player balance business logic.
type Service interface {
	// GetProfile retrieves a player's profile
	GetProfile(ctx context.Context, playerID uuid.UUID) (*Player, error)

	// GetBalance retrieves a player's current balance
	GetBalance(ctx context.Context, playerID uuid.UUID) (float64, error)

	// DeductBet deducts bet amount from player balance
	DeductBet(ctx context.Context, playerID uuid.UUID, betAmount float64) error

	// CreditWin credits win amount to player balance
	CreditWin(ctx context.Context, playerID uuid.UUID, winAmount float64) error
}
