package player

import (
	"time"

	"github.com/google/uuid"
)

// Player represents a player's account balance and lifetime statistics.
// Authentication and identity are owned by a boundary outside this
// service; this record exists purely to hold the wallet balance and the
// optimistic-concurrency version the Spin Controller CASes against.
type Player struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Balance float64   `gorm:"type:decimal(15,2);default:100000.00;not null"`

	// Statistics
	TotalSpins   int     `gorm:"default:0"`
	TotalWagered float64 `gorm:"type:decimal(15,2);default:0.00"`
	TotalWon     float64 `gorm:"type:decimal(15,2);default:0.00"`

	IsActive bool `gorm:"default:true"`

	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	LockVersion int       `gorm:"default:0"`
}

// TableName specifies the table name for GORM
func (Player) TableName() string {
	return "players"
}
