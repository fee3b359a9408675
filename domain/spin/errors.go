package spin

import "errors"

var (
	// ErrNotFound is returned when a spin is not found
	ErrNotFound = errors.New("spin not found")

	// ErrSpinNotFound is an alias for ErrNotFound
	ErrSpinNotFound = ErrNotFound

	// ErrInsufficientBalance is returned when player has insufficient balance
	ErrInsufficientBalance = errors.New("insufficient balance for bet")

	// ErrInvalidBetAmount is returned when bet amount is invalid
	ErrInvalidBetAmount = errors.New("invalid bet amount")

	// ErrGameEngineFailure is returned when game engine fails
	ErrGameEngineFailure = errors.New("game engine failure")

	// ErrDuplicateRequest is returned when a client_request_id has already
	// been used for a different bet amount, which the idempotency layer
	// cannot safely reconcile
	ErrDuplicateRequest = errors.New("client request id already used with different parameters")

	// ErrReplayMismatch is returned when re-running a persisted spin's
	// rng_seed does not reproduce its recorded grids/totals
	ErrReplayMismatch = errors.New("replay does not match recorded spin")
)
