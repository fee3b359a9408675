package lock

import (
	"github.com/google/wire"

	infraCache "github.com/slotmachine/backend/internal/infra/cache"
	"github.com/slotmachine/backend/internal/config"
	"github.com/slotmachine/backend/internal/pkg/logger"
)

// ProviderSet is the Wire provider set for the player lock.
var ProviderSet = wire.NewSet(
	ProvideLocker,
)

// ProvideLocker picks the Redis-backed distributed lock when Redis is
// enabled and reachable, falling back to the in-process PlayerLock
// otherwise - the single-process-vs-distributed duality spec.md §9's
// Design Notes call out for the per-player lock.
func ProvideLocker(cfg *config.Config, log *logger.Logger) Locker {
	if !cfg.Redis.Enabled {
		return NewPlayerLock()
	}

	redisClient, err := infraCache.NewRedisClient(cfg, log)
	if err != nil || redisClient == nil || redisClient.GetClient() == nil {
		log.Warn().Err(err).Msg("redis unavailable, falling back to in-process player lock")
		return NewPlayerLock()
	}

	return NewRedisLock(redisClient.GetClient(), log)
}
