// Package wallet holds the append-only ledger of balance-affecting
// events (bets, wins, administrative adjustments) backing each player's
// balance on the player record.
package wallet

import (
	"time"

	"github.com/google/uuid"
)

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	EntryBet    EntryKind = "bet"
	EntryWin    EntryKind = "win"
	EntryAdjust EntryKind = "adjust"
)

// Entry is one append-only ledger row. balance_after is always
// non-negative; amount is signed (negative for bet debits).
type Entry struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	PlayerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind          EntryKind `gorm:"type:varchar(16);not null"`
	Amount        float64   `gorm:"type:decimal(15,2);not null"`
	BalanceBefore float64   `gorm:"type:decimal(15,2);not null"`
	BalanceAfter  float64   `gorm:"type:decimal(15,2);not null"`
	ReferenceID   string    `gorm:"type:varchar(128);not null;index"` // spin_id, or an admin adjustment id
	Note          string    `gorm:"type:varchar(255)"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP;index"`
}

// TableName specifies the table name for GORM.
func (Entry) TableName() string {
	return "wallet_ledger_entries"
}
