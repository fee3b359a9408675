package gamestate

import "errors"

var (
	// ErrNotFound is returned when no state row exists for a player
	ErrNotFound = errors.New("player game state not found")

	// ErrVersionConflict is returned when a CAS-guarded Put loses a race
	// with a concurrent writer
	ErrVersionConflict = errors.New("player game state updated by another writer")

	// ErrInvalidState is returned when a PlayerState fails its mode/
	// free-spins/multiplier invariant before being persisted
	ErrInvalidState = errors.New("player game state violates mode invariant")
)
