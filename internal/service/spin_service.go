package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/slotmachine/backend/domain/gamestate"
	"github.com/slotmachine/backend/domain/spin"
	"github.com/slotmachine/backend/internal/game/pipeline"
	"github.com/slotmachine/backend/internal/pkg/logger"
)

// SpinService implements spin.Service: read-back of persisted spin
// records plus independent replay verification. Spin execution itself
// belongs to internal/controller, grounded on the teacher's
// SpinService's read-path methods (GetSpinDetails/GetSpinHistory) while
// replacing its execution path with a pure pipeline re-run.
type SpinService struct {
	repo        spin.Repository
	pipelineCfg pipeline.Config
	logger      *logger.Logger
}

// NewSpinService constructs a SpinService.
func NewSpinService(repo spin.Repository, cfg pipeline.Config, log *logger.Logger) spin.Service {
	return &SpinService{repo: repo, pipelineCfg: cfg, logger: log}
}

// GetSpinDetails implements spin.Service.
func (s *SpinService) GetSpinDetails(ctx context.Context, spinID uuid.UUID) (*spin.Spin, error) {
	sp, err := s.repo.GetByID(ctx, spinID)
	if err != nil {
		return nil, fmt.Errorf("spin: get details: %w", err)
	}
	return sp, nil
}

// GetSpinHistory implements spin.Service.
func (s *SpinService) GetSpinHistory(ctx context.Context, playerID uuid.UUID, page, limit int) (*spin.SpinHistoryResult, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	spins, err := s.repo.GetByPlayer(ctx, playerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("spin: get history: %w", err)
	}
	total, err := s.repo.Count(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("spin: count history: %w", err)
	}

	return &spin.SpinHistoryResult{Page: page, Limit: limit, Total: total, Spins: spins}, nil
}

// VerifyReplay implements spin.Service: it re-runs the pipeline from the
// persisted rng_seed, mode, and accumulated multiplier - the only inputs
// that affect the pipeline's grid/cascade/multiplier output - and
// compares the recomputed grid hashes and win total against what was
// recorded. free_spins_remaining is irrelevant to replay: it only feeds
// next-state bookkeeping, never the win calculation, so a dummy value is
// used here.
func (s *SpinService) VerifyReplay(ctx context.Context, spinID uuid.UUID) (*spin.ReplayVerification, error) {
	sp, err := s.repo.GetByID(ctx, spinID)
	if err != nil {
		return nil, fmt.Errorf("spin: verify replay: %w", err)
	}

	state := &gamestate.PlayerState{
		PlayerID:              sp.PlayerID,
		Mode:                  gamestate.Mode(sp.Mode),
		FreeSpinsRemaining:    0,
		AccumulatedMultiplier: sp.AccumulatedMultiplier,
	}

	result, err := pipeline.Execute(sp.RNGSeed, sp.BetAmount, state, s.pipelineCfg)
	if err != nil {
		return nil, fmt.Errorf("spin: replay execution: %w", err)
	}

	verification := &spin.ReplayVerification{SpinID: spinID, Matches: true, RecomputedAt: time.Now().UTC().Format(time.RFC3339)}

	recordedInitialHash, err := hashCanonicalGrid(sp.InitialGrid)
	if err != nil {
		return nil, err
	}
	recordedFinalHash, err := hashCanonicalGrid(sp.FinalGrid)
	if err != nil {
		return nil, err
	}

	switch {
	case result.InitialGridHash != recordedInitialHash:
		verification.Matches = false
		verification.Mismatch = "initial grid hash"
	case result.FinalGridHash != recordedFinalHash:
		verification.Matches = false
		verification.Mismatch = "final grid hash"
	case result.FinalWin != sp.TotalWin:
		verification.Matches = false
		verification.Mismatch = "total win"
	}

	return verification, nil
}

// hashCanonicalGrid hashes a persisted spin.Grid exactly as
// internal/game/grid.Grid.Hash does: SHA-256 over the JSON-marshaled
// nested-array serialization, which is the same shape a spin.Grid is
// already stored in.
func hashCanonicalGrid(g spin.Grid) (string, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("hash canonical grid: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
