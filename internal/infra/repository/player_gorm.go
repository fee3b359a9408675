package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/slotmachine/backend/domain/player"
	"gorm.io/gorm"
)

// PlayerGormRepository implements player.Repository using GORM
type PlayerGormRepository struct {
	db *gorm.DB
}

// NewPlayerGormRepository creates a new GORM player repository
func NewPlayerGormRepository(db *gorm.DB) player.Repository {
	return &PlayerGormRepository{
		db: db,
	}
}

// Create creates a new player
func (r *PlayerGormRepository) Create(ctx context.Context, p *player.Player) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// GetByID retrieves a player by ID
func (r *PlayerGormRepository) GetByID(ctx context.Context, id uuid.UUID) (*player.Player, error) {
	var p player.Player
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, player.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}
	return &p, nil
}

// Update updates a player's information
func (r *PlayerGormRepository) Update(ctx context.Context, p *player.Player) error {
	result := r.db.WithContext(ctx).Save(p)
	if result.Error != nil {
		return fmt.Errorf("failed to update player: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return player.ErrPlayerNotFound
	}
	return nil
}

// UpdateBalanceWithLock updates a player's balance under optimistic concurrency control
func (r *PlayerGormRepository) UpdateBalanceWithLock(ctx context.Context, id uuid.UUID, amount float64, lockVersion int) error {
	result := r.db.WithContext(ctx).
		Model(&player.Player{}).
		Where("id = ? and lock_version = ?", id, lockVersion).
		Updates(map[string]any{
			"balance":      gorm.Expr("balance + ?", amount),
			"lock_version": gorm.Expr("lock_version + 1"),
			"updated_at":   time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return player.ErrNotFoundOrLockChanged
	}
	return nil
}

// UpdateBalance updates a player's balance
func (r *PlayerGormRepository) UpdateBalance(ctx context.Context, id uuid.UUID, amount float64) error {
	result := r.db.WithContext(ctx).
		Model(&player.Player{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return player.ErrPlayerNotFound
	}
	return nil
}

// UpdateBalanceWithTx updates a player's balance using transaction from context
func (r *PlayerGormRepository) UpdateBalanceWithTx(ctx context.Context, id uuid.UUID, amount float64) error {
	db := GetDBOrTx(ctx, r.db)
	result := db.
		Model(&player.Player{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return player.ErrPlayerNotFound
	}
	return nil
}

// UpdateBalanceWithLockAndTx updates a player's balance with optimistic locking using transaction from context
func (r *PlayerGormRepository) UpdateBalanceWithLockAndTx(ctx context.Context, id uuid.UUID, amount float64, lockVersion int) error {
	db := GetDBOrTx(ctx, r.db)
	result := db.
		Model(&player.Player{}).
		Where("id = ? AND lock_version = ?", id, lockVersion).
		Updates(map[string]any{
			"balance":      gorm.Expr("balance + ?", amount),
			"lock_version": gorm.Expr("lock_version + 1"),
			"updated_at":   time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return player.ErrNotFoundOrLockChanged
	}
	return nil
}

// UpdateStatistics updates player statistics, participating in the
// caller's transaction when one is present in ctx.
func (r *PlayerGormRepository) UpdateStatistics(ctx context.Context, id uuid.UUID, spins int, wagered, won float64) error {
	result := GetDBOrTx(ctx, r.db).
		Model(&player.Player{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_spins":   gorm.Expr("total_spins + ?", spins),
			"total_wagered": gorm.Expr("total_wagered + ?", wagered),
			"total_won":     gorm.Expr("total_won + ?", won),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update statistics: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return player.ErrPlayerNotFound
	}
	return nil
}

// Delete deletes a player (hard delete)
func (r *PlayerGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&player.Player{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete player: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return player.ErrPlayerNotFound
	}
	return nil
}

// List retrieves a list of players with filters and pagination
func (r *PlayerGormRepository) List(ctx context.Context, filters player.ListFilters) ([]*player.Player, int64, error) {
	var players []*player.Player
	var total int64

	query := r.db.WithContext(ctx).Model(&player.Player{})

	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count players: %w", err)
	}

	sortBy := "created_at"
	if filters.SortBy != "" {
		sortBy = filters.SortBy
	}
	sortOrder := "DESC"
	if !filters.SortDesc {
		sortOrder = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	} else {
		query = query.Limit(20)
	}
	if filters.Page > 0 {
		offset := (filters.Page - 1) * filters.Limit
		query = query.Offset(offset)
	}

	if err := query.Find(&players).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list players: %w", err)
	}

	return players, total, nil
}
