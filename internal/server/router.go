package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slotmachine/backend/internal/api/handler"
	"github.com/slotmachine/backend/internal/config"
	"github.com/slotmachine/backend/internal/pkg/logger"
)

// SetupRoutes wires the five operations spec.md §6 exposes onto HTTP,
// plus the Supplemented verify-replay endpoint. player_id is carried as
// a path segment: the core receives an already-resolved player_id, so
// no auth middleware runs here.
func SetupRoutes(app *fiber.App, cfg *config.Config, log *logger.Logger, spinHandler *handler.SpinHandler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	players := v1.Group("/players/:playerID")
	players.Post("/spins", spinHandler.Spin)
	players.Get("/state", spinHandler.GetState)
	players.Post("/free-spins/buy", spinHandler.BuyFreeSpins)
	players.Get("/pending-result", spinHandler.GetPendingResult)

	v1.Get("/spins/:spinID/replay", spinHandler.GetReplay)
	v1.Get("/spins/:spinID/verify-replay", spinHandler.VerifyReplay)
}
