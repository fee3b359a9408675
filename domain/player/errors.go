package player

import "errors"

var (
	// ErrNotFound is returned when a player is not found
	ErrNotFound = errors.New("player not found")

	// ErrPlayerNotFound is an alias for ErrNotFound
	ErrPlayerNotFound = ErrNotFound

	// ErrPlayerAlreadyExists is returned when a player already exists
	ErrPlayerAlreadyExists = errors.New("player already exists")

	// ErrInsufficientBalance is returned when balance is insufficient for operation
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFoundOrLockChanged is returned when a CAS-guarded update loses
	// a race with a concurrent writer
	ErrNotFoundOrLockChanged = errors.New("player not found or updated by another session")
)
