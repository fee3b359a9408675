// Package dto holds the request/response envelopes the handler layer
// marshals for the five operations spec.md §6 exposes to callers.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/slotmachine/backend/domain/gamestate"
	"github.com/slotmachine/backend/domain/spin"
)

// ErrorResponse is the JSON body written for any non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SpinRequest is the body of POST .../spins.
type SpinRequest struct {
	BetAmount       float64 `json:"bet_amount"`
	ClientRequestID string  `json:"client_request_id,omitempty"`
}

// BuyFreeSpinsRequest is the body of POST .../free-spins/buy.
type BuyFreeSpinsRequest struct {
	BetAmount float64 `json:"bet_amount"`
}

// PlayerStateResponse mirrors PlayerState for the get_state operation.
type PlayerStateResponse struct {
	PlayerID              uuid.UUID  `json:"player_id"`
	Mode                  string     `json:"mode"`
	FreeSpinsRemaining    int        `json:"free_spins_remaining"`
	AccumulatedMultiplier int        `json:"accumulated_multiplier"`
	LastSpinID            *uuid.UUID `json:"last_spin_id,omitempty"`
	Version               int        `json:"version"`
}

// NewPlayerStateResponse converts a gamestate.PlayerState.
func NewPlayerStateResponse(s *gamestate.PlayerState) PlayerStateResponse {
	return PlayerStateResponse{
		PlayerID:              s.PlayerID,
		Mode:                  string(s.Mode),
		FreeSpinsRemaining:    s.FreeSpinsRemaining,
		AccumulatedMultiplier: s.AccumulatedMultiplier,
		LastSpinID:            s.LastSpinID,
		Version:               s.Version,
	}
}

// BuyFreeSpinsResponse is the output of buy_free_spins.
type BuyFreeSpinsResponse struct {
	BalanceAfter float64              `json:"balance_after"`
	State        PlayerStateResponse  `json:"state"`
}

// SpinResponse mirrors SpinResult (spec.md §3) for the spin and
// get_replay operations, which share one immutable record shape.
type SpinResponse struct {
	SpinID                uuid.UUID              `json:"spin_id"`
	PlayerID              uuid.UUID              `json:"player_id"`
	ClientRequestID       string                 `json:"client_request_id"`
	BetAmount             float64                `json:"bet_amount"`
	BalanceBefore         float64                `json:"balance_before"`
	BalanceAfter          float64                `json:"balance_after"`
	RNGSeed               string                 `json:"rng_seed"`
	Mode                  string                 `json:"mode"`
	AccumulatedMultiplier int                    `json:"accumulated_multiplier"`
	InitialGrid           spin.Grid              `json:"initial_grid"`
	FinalGrid             spin.Grid              `json:"final_grid"`
	CascadeSteps          spin.CascadeSteps      `json:"cascade_steps"`
	MultiplierEvents      spin.MultiplierEvents  `json:"multiplier_events"`
	BaseWin               float64                `json:"base_win"`
	TotalWin              float64                `json:"total_win"`
	MaxWinCapped          bool                   `json:"max_win_capped"`
	ScatterCount          int                    `json:"scatter_count"`
	ScatterPayout         float64                `json:"scatter_payout"`
	FreeSpinInfo          spin.FreeSpinInfo      `json:"free_spin_info"`
	CreatedAt             time.Time              `json:"created_at"`
}

// NewSpinResponse converts a persisted spin.Spin.
func NewSpinResponse(s *spin.Spin) SpinResponse {
	return SpinResponse{
		SpinID:                s.ID,
		PlayerID:              s.PlayerID,
		ClientRequestID:       s.ClientRequestID,
		BetAmount:             s.BetAmount,
		BalanceBefore:         s.BalanceBefore,
		BalanceAfter:          s.BalanceAfter,
		RNGSeed:               s.RNGSeed,
		Mode:                  s.Mode,
		AccumulatedMultiplier: s.AccumulatedMultiplier,
		InitialGrid:           s.InitialGrid,
		FinalGrid:             s.FinalGrid,
		CascadeSteps:          s.CascadeSteps,
		MultiplierEvents:      s.MultiplierEvents,
		BaseWin:               s.BaseWin,
		TotalWin:              s.TotalWin,
		MaxWinCapped:          s.MaxWinCapped,
		ScatterCount:          s.ScatterCount,
		ScatterPayout:         s.ScatterPayout,
		FreeSpinInfo:          s.FreeSpinInfo,
		CreatedAt:             s.CreatedAt,
	}
}

// PendingResultResponse is the output of get_pending_result.
type PendingResultResponse struct {
	Pending bool          `json:"pending"`
	Spin    *SpinResponse `json:"spin,omitempty"`
}
