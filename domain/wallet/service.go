package wallet

import (
	"context"

	"github.com/google/uuid"
)

// Ledger defines the Wallet Ledger (C10) operations: balance-affecting
// actions performed within a transactional boundary, each posting exactly
// one append-only entry keyed by reference_id (the spin_id).
type Ledger interface {
	// DebitBet deducts amount from the player's balance and appends a
	// bet entry against referenceID. Fails with wallet.ErrInsufficientBalance
	// if the player's balance is below amount.
	DebitBet(ctx context.Context, playerID uuid.UUID, amount float64, referenceID string) (*DebitCreditResult, error)

	// CreditWin adds amount to the player's balance and appends a win
	// entry against referenceID.
	CreditWin(ctx context.Context, playerID uuid.UUID, amount float64, referenceID string) (*DebitCreditResult, error)

	// AdjustBalance posts an administrative adjustment entry. There is no
	// HTTP route for this operation; it exists so the "adjust" ledger kind
	// is reachable from trusted internal callers only.
	AdjustBalance(ctx context.Context, playerID uuid.UUID, amount float64, referenceID, note string) (*DebitCreditResult, error)

	// Balance returns the player's current balance.
	Balance(ctx context.Context, playerID uuid.UUID) (float64, error)
}

// DebitCreditResult is the outcome of one ledger operation.
type DebitCreditResult struct {
	BalanceAfter float64
	EntryID      uuid.UUID
}
