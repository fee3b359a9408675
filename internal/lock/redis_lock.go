package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/slotmachine/backend/internal/pkg/logger"
)

// lockTTL bounds how long a held lock survives a crashed holder: long
// enough for one spin's transaction plus its CAS retry, short enough
// that a dead instance doesn't wedge a player out indefinitely.
const lockTTL = 10 * time.Second

// pollInterval is how often a blocked Acquire retries the SETNX while
// waiting for ctx to expire or the lock to free up.
const pollInterval = 25 * time.Millisecond

// releaseScript only deletes the key if it still holds this holder's
// token, so a lock that already expired and was re-acquired by another
// instance is never released out from under it.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// RedisLock implements Locker with a Redis SETNX+TTL mutual-exclusion
// lock, so the per-player exclusive lock of spec.md §5 holds across
// every instance sharing one Redis deployment, not just within one
// process.
type RedisLock struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisLock constructs a RedisLock over an already-connected client.
func NewRedisLock(client *redis.Client, log *logger.Logger) *RedisLock {
	return &RedisLock{client: client, logger: log}
}

func lockKey(playerID uuid.UUID) string {
	return fmt.Sprintf("lock:player:%s", playerID)
}

// Acquire polls SETNX until it wins the key or ctx is done; a Redis error
// also ends the wait. The returned release func runs the
// compare-and-delete script so only the holder that set the key can
// clear it.
func (l *RedisLock) Acquire(ctx context.Context, playerID uuid.UUID) (release func(), err error) {
	key := lockKey(playerID)
	token := uuid.NewString()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("lock: redis setnx: %w", err)
		}
		if ok {
			return func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
					l.logger.Warn().Err(err).Str("player_id", playerID.String()).Msg("failed to release redis player lock")
				}
			}, nil
		}

		select {
		case <-ticker.C:
			continue
		case <-ctx.Done():
			return nil, ErrTimeout
		}
	}
}
