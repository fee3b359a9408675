package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/slotmachine/backend/domain/player"
	"github.com/slotmachine/backend/domain/wallet"
	"github.com/slotmachine/backend/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// MOCKS
// ============================================================================

// MockPlayerRepository is a mock implementation of player.Repository.
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) Create(ctx context.Context, p *player.Player) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*player.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*player.Player), args.Error(1)
}

func (m *MockPlayerRepository) Update(ctx context.Context, p *player.Player) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlayerRepository) UpdateBalance(ctx context.Context, id uuid.UUID, newBalance float64) error {
	args := m.Called(ctx, id, newBalance)
	return args.Error(0)
}

func (m *MockPlayerRepository) UpdateBalanceWithLock(ctx context.Context, id uuid.UUID, newBalance float64, lockVersion int) error {
	args := m.Called(ctx, id, newBalance, lockVersion)
	return args.Error(0)
}

func (m *MockPlayerRepository) UpdateBalanceWithTx(ctx context.Context, id uuid.UUID, amount float64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockPlayerRepository) UpdateBalanceWithLockAndTx(ctx context.Context, id uuid.UUID, amount float64, lockVersion int) error {
	args := m.Called(ctx, id, amount, lockVersion)
	return args.Error(0)
}

func (m *MockPlayerRepository) UpdateStatistics(ctx context.Context, id uuid.UUID, spins int, wagered, won float64) error {
	args := m.Called(ctx, id, spins, wagered, won)
	return args.Error(0)
}

func (m *MockPlayerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlayerRepository) List(ctx context.Context, filters player.ListFilters) ([]*player.Player, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*player.Player), args.Get(1).(int64), args.Error(2)
}

// MockWalletRepository is a mock implementation of wallet.Repository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Append(ctx context.Context, e *wallet.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockWalletRepository) GetByReference(ctx context.Context, playerID uuid.UUID, referenceID string) ([]*wallet.Entry, error) {
	args := m.Called(ctx, playerID, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*wallet.Entry), args.Error(1)
}

func (m *MockWalletRepository) GetByPlayer(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]*wallet.Entry, error) {
	args := m.Called(ctx, playerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*wallet.Entry), args.Error(1)
}

func setupWalletService() (wallet.Ledger, *MockPlayerRepository, *MockWalletRepository) {
	mockPlayerRepo := new(MockPlayerRepository)
	mockWalletRepo := new(MockWalletRepository)
	log := logger.New("info", "json")
	svc := NewWalletService(mockPlayerRepo, mockWalletRepo, log)
	return svc, mockPlayerRepo, mockWalletRepo
}

// ============================================================================
// DebitBet TESTS
// ============================================================================

func TestWalletServiceDebitBet(t *testing.T) {
	ctx := context.Background()

	t.Run("debits balance and appends a bet entry", func(t *testing.T) {
		svc, mockPlayerRepo, mockWalletRepo := setupWalletService()
		playerID := uuid.New()

		mockPlayerRepo.On("GetByID", ctx, playerID).Return(&player.Player{
			ID: playerID, Balance: 100, LockVersion: 3,
		}, nil)
		mockPlayerRepo.On("UpdateBalanceWithLockAndTx", ctx, playerID, -10.0, 3).Return(nil)
		mockWalletRepo.On("Append", ctx, mock.MatchedBy(func(e *wallet.Entry) bool {
			return e.Kind == wallet.EntryBet && e.Amount == -10.0 && e.BalanceAfter == 90.0
		})).Return(nil)

		result, err := svc.DebitBet(ctx, playerID, 10, "spin-1")

		require.NoError(t, err)
		assert.Equal(t, 90.0, result.BalanceAfter)

		mockPlayerRepo.AssertExpectations(t)
		mockWalletRepo.AssertExpectations(t)
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		svc, _, _ := setupWalletService()

		result, err := svc.DebitBet(ctx, uuid.New(), 0, "spin-1")

		assert.ErrorIs(t, err, wallet.ErrInvalidAmount)
		assert.Nil(t, result)
	})

	t.Run("rejects a debit that would drive balance negative", func(t *testing.T) {
		svc, mockPlayerRepo, _ := setupWalletService()
		playerID := uuid.New()

		mockPlayerRepo.On("GetByID", ctx, playerID).Return(&player.Player{
			ID: playerID, Balance: 5, LockVersion: 0,
		}, nil)

		result, err := svc.DebitBet(ctx, playerID, 10, "spin-1")

		assert.ErrorIs(t, err, wallet.ErrInsufficientBalance)
		assert.Nil(t, result)

		mockPlayerRepo.AssertExpectations(t)
	})
}

// ============================================================================
// CreditWin TESTS
// ============================================================================

func TestWalletServiceCreditWin(t *testing.T) {
	ctx := context.Background()

	t.Run("credits balance and appends a win entry", func(t *testing.T) {
		svc, mockPlayerRepo, mockWalletRepo := setupWalletService()
		playerID := uuid.New()

		mockPlayerRepo.On("GetByID", ctx, playerID).Return(&player.Player{
			ID: playerID, Balance: 90, LockVersion: 4,
		}, nil)
		mockPlayerRepo.On("UpdateBalanceWithLockAndTx", ctx, playerID, 50.0, 4).Return(nil)
		mockWalletRepo.On("Append", ctx, mock.MatchedBy(func(e *wallet.Entry) bool {
			return e.Kind == wallet.EntryWin && e.Amount == 50.0 && e.BalanceAfter == 140.0
		})).Return(nil)

		result, err := svc.CreditWin(ctx, playerID, 50, "spin-1")

		require.NoError(t, err)
		assert.Equal(t, 140.0, result.BalanceAfter)

		mockPlayerRepo.AssertExpectations(t)
		mockWalletRepo.AssertExpectations(t)
	})

	t.Run("zero win is a no-op balance lookup, no ledger entry", func(t *testing.T) {
		svc, mockPlayerRepo, mockWalletRepo := setupWalletService()
		playerID := uuid.New()

		mockPlayerRepo.On("GetByID", ctx, playerID).Return(&player.Player{
			ID: playerID, Balance: 90,
		}, nil)

		result, err := svc.CreditWin(ctx, playerID, 0, "spin-1")

		require.NoError(t, err)
		assert.Equal(t, 90.0, result.BalanceAfter)

		mockWalletRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("rejects a negative amount", func(t *testing.T) {
		svc, _, _ := setupWalletService()

		result, err := svc.CreditWin(ctx, uuid.New(), -1, "spin-1")

		assert.ErrorIs(t, err, wallet.ErrInvalidAmount)
		assert.Nil(t, result)
	})
}

// ============================================================================
// Balance / AdjustBalance TESTS
// ============================================================================

func TestWalletServiceBalance(t *testing.T) {
	ctx := context.Background()
	svc, mockPlayerRepo, _ := setupWalletService()
	playerID := uuid.New()

	mockPlayerRepo.On("GetByID", ctx, playerID).Return(&player.Player{
		ID: playerID, Balance: 250,
	}, nil)

	bal, err := svc.Balance(ctx, playerID)

	require.NoError(t, err)
	assert.Equal(t, 250.0, bal)
}

func TestWalletServiceAdjustBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an adjustment that would drive balance negative", func(t *testing.T) {
		svc, mockPlayerRepo, _ := setupWalletService()
		playerID := uuid.New()

		mockPlayerRepo.On("GetByID", ctx, playerID).Return(&player.Player{
			ID: playerID, Balance: 5,
		}, nil)

		result, err := svc.AdjustBalance(ctx, playerID, -10, "adj-1", "correction")

		assert.ErrorIs(t, err, wallet.ErrInsufficientBalance)
		assert.Nil(t, result)
	})
}
