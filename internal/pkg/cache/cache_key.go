package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// PlayerStateKey namespaces the cached gamestate.PlayerState for a
// player, the C9 State Store's two-tier cache entry.
func (c *Cache) PlayerStateKey(playerID uuid.UUID) string {
	return c.setKey("playerState:%s", playerID.String())
}

// IdempotencyKey namespaces the cached spin result for a player's
// client_request_id, backing the Spin Controller's (C11) retention-window
// idempotency cache.
func (c *Cache) IdempotencyKey(playerID uuid.UUID, clientRequestID string) string {
	return c.setKey("idempotency:%s:%s", playerID.String(), clientRequestID)
}

func (c *Cache) setKey(format string, a ...any) string {
	originKey := fmt.Sprintf(format, a...)

	return fmt.Sprintf("%s:%s:%s", c.config.App.Name, c.config.App.Env, originKey)
}
