package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/slotmachine/backend/domain/spin"
	"gorm.io/gorm"
)

// SpinGormRepository implements spin.Repository using GORM
type SpinGormRepository struct {
	db *gorm.DB
}

// NewSpinGormRepository creates a new GORM spin repository
func NewSpinGormRepository(db *gorm.DB) spin.Repository {
	return &SpinGormRepository{
		db: db,
	}
}

// Create creates a new spin record, participating in the caller's
// transaction (e.g. the Spin Controller's debit/run/credit/CAS sequence)
// when one is present in ctx.
func (r *SpinGormRepository) Create(ctx context.Context, s *spin.Spin) error {
	if err := GetDBOrTx(ctx, r.db).Create(s).Error; err != nil {
		return fmt.Errorf("failed to create spin: %w", err)
	}
	return nil
}

// GetByID retrieves a spin by ID
func (r *SpinGormRepository) GetByID(ctx context.Context, id uuid.UUID) (*spin.Spin, error) {
	var s spin.Spin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, spin.ErrSpinNotFound
		}
		return nil, fmt.Errorf("failed to get spin by ID: %w", err)
	}
	return &s, nil
}

// GetByClientRequestID retrieves a spin by its idempotency key, scoped to
// the owning player.
func (r *SpinGormRepository) GetByClientRequestID(ctx context.Context, playerID uuid.UUID, clientRequestID string) (*spin.Spin, error) {
	var s spin.Spin
	err := r.db.WithContext(ctx).
		Where("player_id = ? AND client_request_id = ?", playerID, clientRequestID).
		First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, spin.ErrSpinNotFound
		}
		return nil, fmt.Errorf("failed to get spin by client request id: %w", err)
	}
	return &s, nil
}

// GetByPlayer retrieves spins for a player (paginated, newest first)
func (r *SpinGormRepository) GetByPlayer(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]*spin.Spin, error) {
	var spins []*spin.Spin
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&spins).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get spins by player: %w", err)
	}
	return spins, nil
}

// Count counts total spins for a player
func (r *SpinGormRepository) Count(ctx context.Context, playerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&spin.Spin{}).
		Where("player_id = ?", playerID).
		Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("failed to count spins: %w", err)
	}
	return count, nil
}
