package spin

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for spin retrieval and replay
// verification. Spin execution itself is owned by the game pipeline and
// the spin controller, not this package - this service only reads back
// what they persisted.
type Service interface {
	// GetSpinDetails retrieves details of a specific spin
	GetSpinDetails(ctx context.Context, spinID uuid.UUID) (*Spin, error)

	// GetSpinHistory retrieves spin history for a player
	GetSpinHistory(ctx context.Context, playerID uuid.UUID, page, limit int) (*SpinHistoryResult, error)

	// VerifyReplay re-executes a persisted spin from its rng_seed and
	// reports whether the replay reproduces the recorded grids and totals
	VerifyReplay(ctx context.Context, spinID uuid.UUID) (*ReplayVerification, error)
}

// SpinHistoryResult represents paginated spin history
type SpinHistoryResult struct {
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
	Total int64   `json:"total"`
	Spins []*Spin `json:"spins"`
}

// ReplayVerification is the outcome of independently re-running a
// persisted spin's seed and comparing against what was recorded.
type ReplayVerification struct {
	SpinID       uuid.UUID `json:"spin_id"`
	Matches      bool      `json:"matches"`
	Mismatch     string    `json:"mismatch,omitempty"`
	RecomputedAt string    `json:"recomputed_at"`
}
