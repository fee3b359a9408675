//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build wireinject
// +build wireinject

package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/slotmachine/backend/domain/gamestate"
	"github.com/slotmachine/backend/domain/player"
	"github.com/slotmachine/backend/domain/spin"
	"github.com/slotmachine/backend/domain/wallet"
	"github.com/slotmachine/backend/internal/api/handler"
	"github.com/slotmachine/backend/internal/config"
	"github.com/slotmachine/backend/internal/controller"
	"github.com/slotmachine/backend/internal/db"
	"github.com/slotmachine/backend/internal/game/pipeline"
	"github.com/slotmachine/backend/internal/infra/repository"
	"github.com/slotmachine/backend/internal/lock"
	"github.com/slotmachine/backend/internal/pkg/cache"
	"github.com/slotmachine/backend/internal/pkg/logger"
	"github.com/slotmachine/backend/internal/server"
	"github.com/slotmachine/backend/internal/service"
	"github.com/slotmachine/backend/internal/statestore"
)

// Application holds the application's top-level dependencies: the
// things main() starts, the one handler it routes to, and the
// resources Shutdown releases.
type Application struct {
	Config *config.Config
	Logger *logger.Logger
	DB     *gorm.DB
	Cache  *cache.Cache

	App         *fiber.App
	SpinHandler *handler.SpinHandler
}

// provideControllerParams assembles controller.Params from the
// individually wired pieces plus the betting/feature-buy knobs in
// config.Config - Params isn't a flat field-for-field match of provider
// types, so it needs an explicit binding rather than wire.Struct.
func provideControllerParams(
	cfg *config.Config,
	pipelineCfg pipeline.Config,
	stateStore gamestate.Repository,
	ledger wallet.Ledger,
	playerRepo player.Repository,
	spinRepo spin.Repository,
	txManager *repository.TxManager,
	playerLock lock.Locker,
	idempotent *cache.Cache,
	log *logger.Logger,
) controller.Params {
	return controller.Params{
		PipelineConfig:  pipelineCfg,
		StateStore:      stateStore,
		Wallet:          ledger,
		PlayerRepo:      playerRepo,
		SpinRepo:        spinRepo,
		TxManager:       txManager,
		PlayerLock:      playerLock,
		Idempotent:      idempotent,
		MinBet:          cfg.Game.MinBet,
		MaxBet:          cfg.Game.MaxBet,
		BuyFeatureCost:  cfg.Game.FreeSpins.BuyFeatureCost,
		BuyFeatureSpins: cfg.Game.FreeSpins.BuyFeatureSpins,
		Logger:          log,
	}
}

// InitializeApplication wires the full dependency graph: config and
// logging at the bottom; the database, cache, and repositories above
// that; the pipeline config, state store, and wallet ledger above
// those; the spin controller and spin service above those; and the
// HTTP handler/router at the top.
func InitializeApplication() (*Application, error) {
	wire.Build(
		config.ProviderSet,
		logger.ProviderSet,
		db.ProviderSet,
		cache.ProviderSet,
		server.ProviderSet,
		pipeline.ProviderSet,

		repository.NewPlayerGormRepository,
		repository.NewGameStateGormRepository,
		repository.NewWalletGormRepository,
		repository.NewSpinGormRepository,
		repository.NewTxManager,

		statestore.New,
		lock.ProviderSet,

		service.NewWalletService,
		service.NewSpinService,

		provideControllerParams,
		controller.New,

		handler.NewSpinHandler,

		wire.Struct(new(Application), "*"),
	)

	return &Application{}, nil
}

// Shutdown releases resources InitializeApplication acquired, in
// reverse order: the HTTP listener first so in-flight requests drain,
// then the cache's Redis pub/sub subscription, then the database pool.
func (a *Application) Shutdown() error {
	a.Logger.Info().Msg("starting graceful shutdown")

	if err := a.App.Shutdown(); err != nil {
		a.Logger.Error().Err(err).Msg("failed to shut down fiber server")
	}

	if a.Cache != nil {
		a.Cache.Close()
	}

	if a.DB != nil {
		if err := db.Close(a.DB, a.Logger); err != nil {
			a.Logger.Error().Err(err).Msg("failed to close database")
			return err
		}
	}

	a.Logger.Info().Msg("graceful shutdown complete")
	return nil
}
