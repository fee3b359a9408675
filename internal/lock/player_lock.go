// Package lock provides the per-player exclusive lock the Spin
// Controller (C11) holds for the full duration of one spin, serializing
// every spin operation against a single player_id per spec.md §5.
package lock

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrTimeout is returned when a lock acquisition does not complete before
// ctx is done.
var ErrTimeout = fmt.Errorf("lock: timed out waiting for player lock")

// Locker acquires the exclusive per-player lock spec.md §5 requires for
// the duration of one spin operation. Implementations may be
// single-process (PlayerLock) or distributed across instances
// (RedisLock); the Spin Controller depends only on this interface.
type Locker interface {
	Acquire(ctx context.Context, playerID uuid.UUID) (release func(), err error)
}

// PlayerLock is a keyed mutex: one token channel per player_id, created
// lazily and reused across acquisitions. It is the single-process
// fallback used when Redis is unavailable or disabled.
type PlayerLock struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]chan struct{}
}

// NewPlayerLock constructs an empty PlayerLock registry.
func NewPlayerLock() *PlayerLock {
	return &PlayerLock{tokens: make(map[uuid.UUID]chan struct{})}
}

// Acquire blocks until the exclusive lock for playerID is held or ctx is
// done, whichever comes first. The returned release func must be called
// exactly once to release the lock.
func (l *PlayerLock) Acquire(ctx context.Context, playerID uuid.UUID) (release func(), err error) {
	token := l.tokenFor(playerID)

	select {
	case token <- struct{}{}:
		return func() { <-token }, nil
	case <-ctx.Done():
		return nil, ErrTimeout
	}
}

func (l *PlayerLock) tokenFor(playerID uuid.UUID) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	token, ok := l.tokens[playerID]
	if !ok {
		token = make(chan struct{}, 1)
		l.tokens[playerID] = token
	}
	return token
}
