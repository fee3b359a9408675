package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/slotmachine/backend/domain/wallet"
	"gorm.io/gorm"
)

// WalletGormRepository implements wallet.Repository using GORM.
type WalletGormRepository struct {
	db *gorm.DB
}

// NewWalletGormRepository creates a new GORM wallet ledger repository.
func NewWalletGormRepository(db *gorm.DB) wallet.Repository {
	return &WalletGormRepository{db: db}
}

// Append writes e, rejecting a duplicate (player_id, reference_id, kind).
func (r *WalletGormRepository) Append(ctx context.Context, e *wallet.Entry) error {
	db := GetDBOrTx(ctx, r.db)

	var existing int64
	err := db.Model(&wallet.Entry{}).
		Where("player_id = ? AND reference_id = ? AND kind = ?", e.PlayerID, e.ReferenceID, e.Kind).
		Count(&existing).Error
	if err != nil {
		return fmt.Errorf("failed to check for duplicate ledger entry: %w", err)
	}
	if existing > 0 {
		return wallet.ErrDuplicateEntry
	}

	if err := db.Create(e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return wallet.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to append wallet ledger entry: %w", err)
	}
	return nil
}

// GetByReference retrieves every ledger entry recorded for a reference id.
func (r *WalletGormRepository) GetByReference(ctx context.Context, playerID uuid.UUID, referenceID string) ([]*wallet.Entry, error) {
	var entries []*wallet.Entry
	err := r.db.WithContext(ctx).
		Where("player_id = ? AND reference_id = ?", playerID, referenceID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries by reference: %w", err)
	}
	return entries, nil
}

// GetByPlayer retrieves ledger entries for a player, newest first.
func (r *WalletGormRepository) GetByPlayer(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]*wallet.Entry, error) {
	var entries []*wallet.Entry
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries by player: %w", err)
	}
	return entries, nil
}
