package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/slotmachine/backend/domain/gamestate"
	"gorm.io/gorm"
)

// GameStateGormRepository implements gamestate.Repository using GORM.
type GameStateGormRepository struct {
	db *gorm.DB
}

// NewGameStateGormRepository creates a new GORM player-game-state repository.
func NewGameStateGormRepository(db *gorm.DB) gamestate.Repository {
	return &GameStateGormRepository{db: db}
}

// Get retrieves a player's state, lazily creating the base-mode default
// on first access.
func (r *GameStateGormRepository) Get(ctx context.Context, playerID uuid.UUID) (*gamestate.PlayerState, error) {
	db := GetDBOrTx(ctx, r.db)

	var s gamestate.PlayerState
	err := db.Where("player_id = ?", playerID).First(&s).Error
	if err == nil {
		return &s, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to get player game state: %w", err)
	}

	fresh := gamestate.NewPlayerState(playerID)
	if createErr := db.Create(fresh).Error; createErr != nil {
		return nil, fmt.Errorf("failed to create default player game state: %w", createErr)
	}
	return fresh, nil
}

// Put writes s back under a lock_version-style CAS, mirroring the
// player balance update pattern: the update only applies if the stored
// version still matches s.Version.
func (r *GameStateGormRepository) Put(ctx context.Context, s *gamestate.PlayerState) error {
	if !s.Valid() {
		return gamestate.ErrInvalidState
	}

	db := GetDBOrTx(ctx, r.db)
	result := db.Model(&gamestate.PlayerState{}).
		Where("player_id = ? AND version = ?", s.PlayerID, s.Version).
		Updates(map[string]any{
			"mode":                   s.Mode,
			"free_spins_remaining":   s.FreeSpinsRemaining,
			"accumulated_multiplier": s.AccumulatedMultiplier,
			"last_spin_id":           s.LastSpinID,
			"version":                gorm.Expr("version + 1"),
			"updated_at":             time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update player game state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gamestate.ErrVersionConflict
	}
	s.Version++
	return nil
}
