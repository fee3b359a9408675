// Package handler implements the HTTP surface over the Spin Controller
// (C11): one thin adapter per operation in spec.md §6's narrow table,
// with no business logic of its own.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/slotmachine/backend/domain/gamestate"
	"github.com/slotmachine/backend/domain/player"
	"github.com/slotmachine/backend/domain/spin"
	"github.com/slotmachine/backend/domain/wallet"
	"github.com/slotmachine/backend/internal/api/dto"
	"github.com/slotmachine/backend/internal/controller"
	"github.com/slotmachine/backend/internal/pkg/logger"
)

// SpinHandler wraps controller.SpinController for the fiber router. It
// also exposes the Supplemented replay-verification endpoint backed by
// domain/spin.Service, a read-only neighbor of the controller rather
// than a second execution path.
type SpinHandler struct {
	ctrl    *controller.SpinController
	spinSvc spin.Service
	logger  *logger.Logger
}

// NewSpinHandler creates a new spin handler.
func NewSpinHandler(ctrl *controller.SpinController, spinSvc spin.Service, log *logger.Logger) *SpinHandler {
	return &SpinHandler{ctrl: ctrl, spinSvc: spinSvc, logger: log}
}

func playerIDFromParam(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("playerID"))
}

// Spin implements the `spin` operation.
func (h *SpinHandler) Spin(c *fiber.Ctx) error {
	log := h.logger.WithTrace(c)

	playerID, err := playerIDFromParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid_player_id", Message: "player id must be a UUID"})
	}

	var req dto.SpinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid_request", Message: "invalid request body"})
	}

	sp, err := h.ctrl.Spin(c.Context(), playerID, req.BetAmount, req.ClientRequestID)
	if err != nil {
		log.Error().Err(err).Str("player_id", playerID.String()).Msg("spin failed")
		return spinErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewSpinResponse(sp))
}

// GetState implements the `get_state` operation.
func (h *SpinHandler) GetState(c *fiber.Ctx) error {
	playerID, err := playerIDFromParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid_player_id", Message: "player id must be a UUID"})
	}

	state, err := h.ctrl.GetState(c.Context(), playerID)
	if err != nil {
		if errors.Is(err, gamestate.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "not_found", Message: "no state for this player"})
		}
		h.logger.WithTrace(c).Error().Err(err).Str("player_id", playerID.String()).Msg("get_state failed")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal_error", Message: "failed to load player state"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewPlayerStateResponse(state))
}

// BuyFreeSpins implements the `buy_free_spins` operation.
func (h *SpinHandler) BuyFreeSpins(c *fiber.Ctx) error {
	log := h.logger.WithTrace(c)

	playerID, err := playerIDFromParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid_player_id", Message: "player id must be a UUID"})
	}

	var req dto.BuyFreeSpinsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid_request", Message: "invalid request body"})
	}

	result, err := h.ctrl.BuyFreeSpins(c.Context(), playerID, req.BetAmount)
	if err != nil {
		log.Error().Err(err).Str("player_id", playerID.String()).Msg("buy_free_spins failed")
		return spinErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.BuyFreeSpinsResponse{
		BalanceAfter: result.BalanceAfter,
		State:        dto.NewPlayerStateResponse(result.State),
	})
}

// GetReplay implements the `get_replay` operation.
func (h *SpinHandler) GetReplay(c *fiber.Ctx) error {
	spinID, err := uuid.Parse(c.Params("spinID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid_spin_id", Message: "spin id must be a UUID"})
	}

	sp, err := h.ctrl.GetReplay(c.Context(), spinID)
	if err != nil {
		h.logger.WithTrace(c).Error().Err(err).Str("spin_id", spinID.String()).Msg("get_replay failed")
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "not_found", Message: "no spin with this id"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewSpinResponse(sp))
}

// VerifyReplay implements the Supplemented replay-verification endpoint:
// it re-runs the persisted spin's rng_seed through the pipeline and
// reports whether the recomputed grid hashes and total win match what
// was originally stored, surfacing result_validation_failed on a
// mismatch instead of silently trusting the audit record.
func (h *SpinHandler) VerifyReplay(c *fiber.Ctx) error {
	spinID, err := uuid.Parse(c.Params("spinID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid_spin_id", Message: "spin id must be a UUID"})
	}

	verification, err := h.spinSvc.VerifyReplay(c.Context(), spinID)
	if err != nil {
		h.logger.WithTrace(c).Error().Err(err).Str("spin_id", spinID.String()).Msg("verify_replay failed")
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "not_found", Message: "no spin with this id"})
	}

	if !verification.Matches {
		h.logger.WithTrace(c).Error().Str("spin_id", spinID.String()).Str("mismatch", verification.Mismatch).Msg("result_validation_failed")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":         "result_validation_failed",
			"message":       "replay did not reproduce the recorded result",
			"spin_id":       verification.SpinID,
			"mismatch":      verification.Mismatch,
			"recomputed_at": verification.RecomputedAt,
		})
	}

	return c.Status(fiber.StatusOK).JSON(verification)
}

// GetPendingResult implements the `get_pending_result` operation.
func (h *SpinHandler) GetPendingResult(c *fiber.Ctx) error {
	playerID, err := playerIDFromParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid_player_id", Message: "player id must be a UUID"})
	}
	clientRequestID := c.Query("client_request_id")
	if clientRequestID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid_request", Message: "client_request_id is required"})
	}

	sp, found := h.ctrl.GetPendingResult(c.Context(), playerID, clientRequestID)
	if !found {
		return c.Status(fiber.StatusOK).JSON(dto.PendingResultResponse{Pending: true})
	}
	resp := dto.NewSpinResponse(sp)
	return c.Status(fiber.StatusOK).JSON(dto.PendingResultResponse{Pending: false, Spin: &resp})
}

// spinErrorResponse maps the Spin Controller's sentinel errors onto the
// status/code pairs spec.md §6 lists for `spin` and `buy_free_spins`.
func spinErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, controller.ErrInvalidBet):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid_bet", Message: "bet is outside the configured min/max bounds"})
	case errors.Is(err, controller.ErrInsufficientCredits), errors.Is(err, wallet.ErrInsufficientBalance):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "insufficient_credits", Message: "balance is too low for this bet"})
	case errors.Is(err, controller.ErrInactiveAccount), errors.Is(err, player.ErrPlayerNotFound):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "inactive_account", Message: "player account is not active"})
	case errors.Is(err, controller.ErrAlreadyInFreeSpins):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "already_in_free_spins", Message: "player already has an active free-spins session"})
	case errors.Is(err, controller.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "conflict", Message: "state update lost a concurrency race"})
	case errors.Is(err, controller.ErrTimeout):
		return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{Error: "timeout", Message: "timed out acquiring the player lock"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal_error", Message: "spin could not be completed"})
	}
}
