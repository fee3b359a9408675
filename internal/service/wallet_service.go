package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/slotmachine/backend/domain/player"
	"github.com/slotmachine/backend/domain/wallet"
	"github.com/slotmachine/backend/internal/pkg/logger"
)

// WalletService implements wallet.Ledger (C10): it composes the player
// balance column (domain/player, CAS-guarded) with the append-only
// wallet.Repository ledger, the same debit-then-credit pattern the
// teacher's PlayerService used for DeductBet/CreditWin, generalized to
// post a ledger entry alongside every balance change.
type WalletService struct {
	playerRepo player.Repository
	walletRepo wallet.Repository
	logger     *logger.Logger
}

// NewWalletService constructs a WalletService.
func NewWalletService(playerRepo player.Repository, walletRepo wallet.Repository, log *logger.Logger) wallet.Ledger {
	return &WalletService{playerRepo: playerRepo, walletRepo: walletRepo, logger: log}
}

// DebitBet implements wallet.Ledger. It does not check bet limits; it
// rejects a non-positive amount and a debit larger than the balance.
func (s *WalletService) DebitBet(ctx context.Context, playerID uuid.UUID, amount float64, referenceID string) (*wallet.DebitCreditResult, error) {
	if amount <= 0 {
		return nil, wallet.ErrInvalidAmount
	}

	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("wallet: load player for debit: %w", err)
	}
	if p.Balance < amount {
		return nil, wallet.ErrInsufficientBalance
	}
	balanceAfter := p.Balance - amount

	if err := s.playerRepo.UpdateBalanceWithLockAndTx(ctx, playerID, -amount, p.LockVersion); err != nil {
		return nil, fmt.Errorf("wallet: debit balance: %w", err)
	}

	entry := &wallet.Entry{
		ID:            uuid.New(),
		PlayerID:      playerID,
		Kind:          wallet.EntryBet,
		Amount:        -amount,
		BalanceBefore: p.Balance,
		BalanceAfter:  balanceAfter,
		ReferenceID:   referenceID,
	}
	if err := s.walletRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("wallet: append bet entry: %w", err)
	}

	s.logger.WithTraceContext(ctx).Debug().
		Str("player_id", playerID.String()).
		Float64("amount", amount).
		Msg("wallet: bet debited")

	return &wallet.DebitCreditResult{BalanceAfter: balanceAfter, EntryID: entry.ID}, nil
}

// CreditWin implements wallet.Ledger.
func (s *WalletService) CreditWin(ctx context.Context, playerID uuid.UUID, amount float64, referenceID string) (*wallet.DebitCreditResult, error) {
	if amount < 0 {
		return nil, wallet.ErrInvalidAmount
	}
	if amount == 0 {
		bal, err := s.Balance(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return &wallet.DebitCreditResult{BalanceAfter: bal}, nil
	}

	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("wallet: load player for credit: %w", err)
	}
	balanceAfter := p.Balance + amount

	if err := s.playerRepo.UpdateBalanceWithLockAndTx(ctx, playerID, amount, p.LockVersion); err != nil {
		return nil, fmt.Errorf("wallet: credit balance: %w", err)
	}

	entry := &wallet.Entry{
		ID:            uuid.New(),
		PlayerID:      playerID,
		Kind:          wallet.EntryWin,
		Amount:        amount,
		BalanceBefore: p.Balance,
		BalanceAfter:  balanceAfter,
		ReferenceID:   referenceID,
	}
	if err := s.walletRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("wallet: append win entry: %w", err)
	}

	s.logger.WithTraceContext(ctx).Debug().
		Str("player_id", playerID.String()).
		Float64("amount", amount).
		Msg("wallet: win credited")

	return &wallet.DebitCreditResult{BalanceAfter: balanceAfter, EntryID: entry.ID}, nil
}

// AdjustBalance implements wallet.Ledger. There is no HTTP route exposing
// this; only trusted in-process callers (e.g. a support tool) use it.
func (s *WalletService) AdjustBalance(ctx context.Context, playerID uuid.UUID, amount float64, referenceID, note string) (*wallet.DebitCreditResult, error) {
	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("wallet: load player for adjustment: %w", err)
	}
	balanceAfter := p.Balance + amount
	if balanceAfter < 0 {
		return nil, wallet.ErrInsufficientBalance
	}

	if err := s.playerRepo.UpdateBalanceWithLockAndTx(ctx, playerID, amount, p.LockVersion); err != nil {
		return nil, fmt.Errorf("wallet: apply adjustment: %w", err)
	}

	entry := &wallet.Entry{
		ID:            uuid.New(),
		PlayerID:      playerID,
		Kind:          wallet.EntryAdjust,
		Amount:        amount,
		BalanceBefore: p.Balance,
		BalanceAfter:  balanceAfter,
		ReferenceID:   referenceID,
		Note:          note,
	}
	if err := s.walletRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("wallet: append adjustment entry: %w", err)
	}

	return &wallet.DebitCreditResult{BalanceAfter: balanceAfter, EntryID: entry.ID}, nil
}

// Balance implements wallet.Ledger.
func (s *WalletService) Balance(ctx context.Context, playerID uuid.UUID) (float64, error) {
	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("wallet: load player for balance: %w", err)
	}
	return p.Balance, nil
}
