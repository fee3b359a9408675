// Package controller implements the Spin Controller (C11): the single
// entrypoint that binds the pipeline (C8), state store (C9), and wallet
// ledger (C10) into one transactional spin() operation, plus the
// narrower get_state/buy_free_spins/get_replay/get_pending_result
// operations spec.md §6 lists alongside it.
package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/slotmachine/backend/domain/gamestate"
	"github.com/slotmachine/backend/domain/player"
	"github.com/slotmachine/backend/domain/spin"
	"github.com/slotmachine/backend/domain/wallet"
	"github.com/slotmachine/backend/internal/game/pipeline"
	"github.com/slotmachine/backend/internal/game/rng"
	"github.com/slotmachine/backend/internal/infra/repository"
	"github.com/slotmachine/backend/internal/lock"
	"github.com/slotmachine/backend/internal/pkg/cache"
	"github.com/slotmachine/backend/internal/pkg/logger"
)

// idempotencyTTL is the retention window a (client_request_id -> Spin)
// mapping is held for, per spec.md §4.11 step 1/9.
const idempotencyTTL = 5 * time.Minute

// lockTimeout bounds how long a caller waits to acquire the per-player
// exclusive lock before spin() surfaces a timeout error.
const lockTimeout = 5 * time.Second

// Errors surfaced to the operation's caller, matching spec.md §6's error
// enum for the `spin` operation.
var (
	ErrInvalidBet          = fmt.Errorf("controller: bet outside configured bounds")
	ErrInsufficientCredits = fmt.Errorf("controller: insufficient credits")
	ErrInactiveAccount     = fmt.Errorf("controller: player account is inactive")
	ErrConflict            = fmt.Errorf("controller: state update lost a concurrency race twice")
	ErrTimeout             = fmt.Errorf("controller: timed out acquiring player lock")
	ErrAlreadyInFreeSpins  = fmt.Errorf("controller: player is already in a free-spins session")
)

// SpinController implements C11.
type SpinController struct {
	pipelineCfg pipeline.Config

	stateStore gamestate.Repository
	wallet     wallet.Ledger
	playerRepo player.Repository
	spinRepo   spin.Repository
	txManager  *repository.TxManager

	playerLock lock.Locker
	idempotent *cache.Cache

	minBet, maxBet  float64
	buyFeatureCost  float64
	buyFeatureSpins int

	logger *logger.Logger
}

// Params bundles SpinController's dependencies.
type Params struct {
	PipelineConfig pipeline.Config

	StateStore gamestate.Repository
	Wallet     wallet.Ledger
	PlayerRepo player.Repository
	SpinRepo   spin.Repository
	TxManager  *repository.TxManager

	PlayerLock      lock.Locker
	Idempotent      *cache.Cache
	MinBet, MaxBet  float64
	BuyFeatureCost  float64
	BuyFeatureSpins int

	Logger *logger.Logger
}

// New constructs a SpinController.
func New(p Params) *SpinController {
	return &SpinController{
		pipelineCfg:     p.PipelineConfig,
		stateStore:      p.StateStore,
		wallet:          p.Wallet,
		playerRepo:      p.PlayerRepo,
		spinRepo:        p.SpinRepo,
		txManager:       p.TxManager,
		playerLock:      p.PlayerLock,
		idempotent:      p.Idempotent,
		minBet:          p.MinBet,
		maxBet:          p.MaxBet,
		buyFeatureCost:  p.BuyFeatureCost,
		buyFeatureSpins: p.BuyFeatureSpins,
		logger:          p.Logger,
	}
}

// Spin implements spec.md §4.11/§6's `spin` operation.
func (c *SpinController) Spin(ctx context.Context, playerID uuid.UUID, bet float64, clientRequestID string) (*spin.Spin, error) {
	// 1. idempotency fast path: no side effects on a replayed request.
	if clientRequestID != "" {
		if cached, ok := c.lookupIdempotent(ctx, playerID, clientRequestID); ok {
			return cached, nil
		}
	}

	if bet < c.minBet || bet > c.maxBet {
		return nil, ErrInvalidBet
	}

	// 2. per-player exclusive lock for the full operation.
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	release, err := c.playerLock.Acquire(lockCtx, playerID)
	if err != nil {
		return nil, ErrTimeout
	}
	defer release()

	var result *spin.Spin

	err = c.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		p, err := c.playerRepo.GetByID(txCtx, playerID)
		if err != nil {
			return fmt.Errorf("controller: load player: %w", err)
		}
		if !p.IsActive {
			return ErrInactiveAccount
		}

		state, err := c.stateStore.Get(txCtx, playerID)
		if err != nil {
			return fmt.Errorf("controller: load player state: %w", err)
		}

		spinID := uuid.New()
		balanceBefore := p.Balance

		// 4. debit only in base mode.
		if state.Mode == gamestate.ModeBase {
			debitResult, err := c.wallet.DebitBet(txCtx, playerID, bet, spinID.String())
			if err != nil {
				return err
			}
			balanceBefore = debitResult.BalanceAfter + bet
		}

		// 5. run the pipeline with a freshly minted root seed.
		seed, err := rng.GenerateSeed()
		if err != nil {
			return fmt.Errorf("controller: generate seed: %w", err)
		}
		pipelineResult, err := pipeline.Execute(seed, bet, state, c.pipelineCfg)
		if err != nil {
			return fmt.Errorf("controller: %w", err)
		}

		// 6. credit any win.
		balanceAfter := balanceBefore
		if state.Mode == gamestate.ModeBase {
			balanceAfter -= bet
		}
		if pipelineResult.FinalWin > 0 {
			creditResult, err := c.wallet.CreditWin(txCtx, playerID, pipelineResult.FinalWin, spinID.String())
			if err != nil {
				return err
			}
			balanceAfter = creditResult.BalanceAfter
		}

		// 7. CAS-update PlayerState, retrying once on a lost race.
		pipelineResult.NextState.LastSpinID = &spinID
		if err := c.casUpdateState(txCtx, playerID, pipelineResult.NextState); err != nil {
			return err
		}

		// 8. persist the audit record.
		sp := buildSpinRecord(spinID, playerID, clientRequestID, bet, balanceBefore, balanceAfter, seed, state, pipelineResult)
		if err := c.spinRepo.Create(txCtx, sp); err != nil {
			return fmt.Errorf("controller: persist spin: %w", err)
		}
		if err := c.playerRepo.UpdateStatistics(txCtx, playerID, 1, bet, pipelineResult.FinalWin); err != nil {
			return fmt.Errorf("controller: update player statistics: %w", err)
		}

		result = sp
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 9. cache the result for the idempotency retention window.
	if clientRequestID != "" {
		_ = c.idempotent.Set(ctx, c.idempotent.IdempotencyKey(playerID, clientRequestID), result, idempotencyTTL)
	}

	return result, nil
}

// casUpdateState applies spec.md §4.11's "a failed CAS retries at most
// once; a second failure is a fatal error" rule, wired onto
// cenkalti/backoff's bounded-retry policy.
func (c *SpinController) casUpdateState(ctx context.Context, playerID uuid.UUID, next *gamestate.PlayerState) error {
	attempt := 0
	operation := func() error {
		err := c.stateStore.Put(ctx, next)
		if err == nil {
			return nil
		}
		if err != gamestate.ErrVersionConflict {
			return backoff.Permanent(err)
		}
		attempt++
		fresh, getErr := c.stateStore.Get(ctx, playerID)
		if getErr != nil {
			return backoff.Permanent(getErr)
		}
		next.Version = fresh.Version
		return err
	}

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(0), 1)
	if err := backoff.Retry(operation, policy); err != nil {
		if attempt >= 2 {
			return ErrConflict
		}
		return fmt.Errorf("controller: cas update player state: %w", err)
	}
	return nil
}

// GetState implements spec.md §6's `get_state` operation.
func (c *SpinController) GetState(ctx context.Context, playerID uuid.UUID) (*gamestate.PlayerState, error) {
	return c.stateStore.Get(ctx, playerID)
}

// BuyFreeSpins implements spec.md §4.7/§6's `buy_free_spins` operation: a
// pure state/wallet transition with no pipeline run.
func (c *SpinController) BuyFreeSpins(ctx context.Context, playerID uuid.UUID, bet float64) (*BuyFreeSpinsResult, error) {
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	release, err := c.playerLock.Acquire(lockCtx, playerID)
	if err != nil {
		return nil, ErrTimeout
	}
	defer release()

	var out *BuyFreeSpinsResult
	err = c.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		state, err := c.stateStore.Get(txCtx, playerID)
		if err != nil {
			return fmt.Errorf("controller: load player state: %w", err)
		}
		if state.Mode == gamestate.ModeFreeSpins {
			return ErrAlreadyInFreeSpins
		}

		cost := c.buyFeatureCost * bet
		debitResult, err := c.wallet.DebitBet(txCtx, playerID, cost, uuid.NewString())
		if err != nil {
			if err == wallet.ErrInsufficientBalance {
				return ErrInsufficientCredits
			}
			return err
		}

		state.EnterFreeSpins(c.buyFeatureSpins)
		if err := c.stateStore.Put(txCtx, state); err != nil {
			return fmt.Errorf("controller: cas update player state: %w", err)
		}

		out = &BuyFreeSpinsResult{BalanceAfter: debitResult.BalanceAfter, State: state}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BuyFreeSpinsResult is the output of spec.md §6's `buy_free_spins`
// operation.
type BuyFreeSpinsResult struct {
	BalanceAfter float64
	State        *gamestate.PlayerState
}

// GetReplay implements spec.md §6's `get_replay` operation: it returns the
// exact persisted SpinResult, byte-for-byte identical to what `spin`
// originally returned for that spin_id.
func (c *SpinController) GetReplay(ctx context.Context, spinID uuid.UUID) (*spin.Spin, error) {
	return c.spinRepo.GetByID(ctx, spinID)
}

// GetPendingResult implements spec.md §6's `get_pending_result`
// operation: a read of the idempotency cache that falls back to the
// persisted spin record (see lookupIdempotent), used by a caller that
// sent a spin request, lost the response, and is polling for the outcome
// without re-submitting. It moves no money and changes no player state.
func (c *SpinController) GetPendingResult(ctx context.Context, playerID uuid.UUID, clientRequestID string) (*spin.Spin, bool) {
	return c.lookupIdempotent(ctx, playerID, clientRequestID)
}

// lookupIdempotent first checks the in-memory cache, then falls back to
// the persisted spin record once the cache entry has aged out of the
// retention window, per spec.md §5's "reconstruct from persisted data if
// a client_request_id row exists" rule. This is what makes a retry that
// arrives after idempotencyTTL has elapsed return the original result
// instead of tripping the spin table's unique constraint on a re-run.
func (c *SpinController) lookupIdempotent(ctx context.Context, playerID uuid.UUID, clientRequestID string) (*spin.Spin, bool) {
	val, found := c.idempotent.Get(ctx, c.idempotent.IdempotencyKey(playerID, clientRequestID))
	if found {
		if sp, ok := val.(*spin.Spin); ok {
			return sp, true
		}
	}

	sp, err := c.spinRepo.GetByClientRequestID(ctx, playerID, clientRequestID)
	if err != nil || sp == nil {
		return nil, false
	}
	_ = c.idempotent.Set(ctx, c.idempotent.IdempotencyKey(playerID, clientRequestID), sp, idempotencyTTL)
	return sp, true
}
