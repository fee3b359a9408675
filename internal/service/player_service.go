package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/slotmachine/backend/domain/player"
	"github.com/slotmachine/backend/internal/pkg/logger"
)

// PlayerService implements player.Service, grounded on the teacher's
// PlayerService of the same name, trimmed to the balance/profile surface
// this domain still needs - authentication and session concerns are
// owned by a boundary outside this service.
type PlayerService struct {
	repo   player.Repository
	logger *logger.Logger
}

// NewPlayerService constructs a PlayerService.
func NewPlayerService(repo player.Repository, log *logger.Logger) player.Service {
	return &PlayerService{repo: repo, logger: log}
}

// GetProfile implements player.Service.
func (s *PlayerService) GetProfile(ctx context.Context, playerID uuid.UUID) (*player.Player, error) {
	p, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("player: get profile: %w", err)
	}
	return p, nil
}

// GetBalance implements player.Service.
func (s *PlayerService) GetBalance(ctx context.Context, playerID uuid.UUID) (float64, error) {
	p, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("player: get balance: %w", err)
	}
	return p.Balance, nil
}

// DeductBet implements player.Service. The Spin Controller uses
// wallet.Ledger.DebitBet directly for spin-time debits (it needs the
// ledger entry); this method exists for callers that only need the
// balance effect without an audit trail, matching the teacher's original
// interface shape.
func (s *PlayerService) DeductBet(ctx context.Context, playerID uuid.UUID, betAmount float64) error {
	if betAmount <= 0 {
		return player.ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("player: deduct bet: %w", err)
	}
	if p.Balance < betAmount {
		return player.ErrInsufficientBalance
	}
	if err := s.repo.UpdateBalanceWithLock(ctx, playerID, -betAmount, p.LockVersion); err != nil {
		return fmt.Errorf("player: deduct bet: %w", err)
	}
	return nil
}

// CreditWin implements player.Service.
func (s *PlayerService) CreditWin(ctx context.Context, playerID uuid.UUID, winAmount float64) error {
	if winAmount < 0 {
		return player.ErrInvalidInput
	}
	if winAmount == 0 {
		return nil
	}
	p, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("player: credit win: %w", err)
	}
	if err := s.repo.UpdateBalanceWithLock(ctx, playerID, winAmount, p.LockVersion); err != nil {
		return fmt.Errorf("player: credit win: %w", err)
	}
	return nil
}
