// Package gamestate holds the per-player mode/free-spins/multiplier
// state that the spin pipeline reads before a spin and writes back after
// one, under optimistic concurrency control.
package gamestate

import (
	"time"

	"github.com/google/uuid"
)

// Mode is the player's current game mode.
type Mode string

const (
	ModeBase      Mode = "base"
	ModeFreeSpins Mode = "free_spins"
)

// PlayerState is the durable record of one player's mode/free-spins/
// multiplier progress, per spec.md §3's PlayerState entity.
type PlayerState struct {
	PlayerID              uuid.UUID  `gorm:"type:uuid;primary_key"`
	Mode                  Mode       `gorm:"type:varchar(16);not null;default:'base'"`
	FreeSpinsRemaining    int        `gorm:"default:0"`
	AccumulatedMultiplier int        `gorm:"default:1"`
	LastSpinID            *uuid.UUID `gorm:"type:uuid"`
	Version               int        `gorm:"default:0"`
	UpdatedAt             time.Time  `gorm:"default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for GORM.
func (PlayerState) TableName() string {
	return "player_game_states"
}

// NewPlayerState returns the zero-value state for a player entering base
// mode for the first time, satisfying the invariant
// mode=base => free_spins_remaining=0 && accumulated_multiplier=1.
func NewPlayerState(playerID uuid.UUID) *PlayerState {
	return &PlayerState{
		PlayerID:              playerID,
		Mode:                  ModeBase,
		FreeSpinsRemaining:    0,
		AccumulatedMultiplier: 1,
		Version:               0,
	}
}

// Valid reports whether s satisfies the mode/free-spins/multiplier
// invariant from spec.md §3: base mode always carries zero remaining
// spins and a reset multiplier.
func (s *PlayerState) Valid() bool {
	if s.Mode == ModeBase {
		return s.FreeSpinsRemaining == 0 && s.AccumulatedMultiplier == 1
	}
	return true
}

// EnterFreeSpins transitions s into free-spins mode with the given spin
// count, resetting the accumulated multiplier to 1 for the new session.
func (s *PlayerState) EnterFreeSpins(spins int) {
	s.Mode = ModeFreeSpins
	s.FreeSpinsRemaining = spins
	s.AccumulatedMultiplier = 1
}

// ExtendFreeSpins adds spins to an already-active free-spins session
// (a retrigger); it does not reset the accumulated multiplier.
func (s *PlayerState) ExtendFreeSpins(spins int) {
	s.FreeSpinsRemaining += spins
}

// ConsumeFreeSpin decrements the remaining free-spins count and, if it
// reaches zero, transitions back to base mode - the only point at which
// accumulated_multiplier resets to 1, per spec.md §4.7.
func (s *PlayerState) ConsumeFreeSpin() {
	if s.FreeSpinsRemaining > 0 {
		s.FreeSpinsRemaining--
	}
	if s.FreeSpinsRemaining == 0 {
		s.Mode = ModeBase
		s.AccumulatedMultiplier = 1
	}
}

// AddMultiplier accumulates an additive multiplier total onto the
// player's free-spins running multiplier. Callers must only invoke this
// while in free-spins mode.
func (s *PlayerState) AddMultiplier(delta int) {
	s.AccumulatedMultiplier += delta
}
