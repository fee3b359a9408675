// Package statestore implements the State Store (C9): a two-tier cache
// (in-memory, optionally fanned out over a Redis pub/sub invalidation
// bus) sitting in front of the durable gamestate.Repository. It
// implements gamestate.Repository itself, so callers depend on the same
// interface whether or not caching is in front of it, per spec.md §4.9.
package statestore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/slotmachine/backend/domain/gamestate"
	"github.com/slotmachine/backend/internal/pkg/cache"
)

// ttl bounds how long a cached PlayerState may be served before it is
// forced to re-read from durable storage even absent an invalidation.
const ttl = 2 * time.Minute

// Store decorates a gamestate.Repository with a Cache front.
type Store struct {
	repo  gamestate.Repository
	cache *cache.Cache
}

// New constructs a Store wrapping repo with cache.
func New(repo gamestate.Repository, c *cache.Cache) gamestate.Repository {
	return &Store{repo: repo, cache: c}
}

// Get implements gamestate.Repository, serving from cache with
// singleflight-protected fallthrough to the durable store on a miss.
func (s *Store) Get(ctx context.Context, playerID uuid.UUID) (*gamestate.PlayerState, error) {
	key := s.cache.PlayerStateKey(playerID)

	val, err := s.cache.GetWithSingleflight(ctx, key, nil, func() (interface{}, error) {
		return s.repo.Get(ctx, playerID)
	}, ptr(ttl))
	if err != nil {
		return nil, err
	}

	state, err := asPlayerState(val)
	if err != nil {
		// A value crossed a Redis pub/sub boundary and lost its concrete
		// type; re-read durably rather than serve a corrupt cache entry.
		return s.repo.Get(ctx, playerID)
	}
	return state, nil
}

// Put implements gamestate.Repository: writes through to the durable
// store under CAS, then invalidates the cache entry on success so every
// instance re-reads fresh state on its next Get, per spec.md §4.9's
// "cache invalidation on every successful put".
func (s *Store) Put(ctx context.Context, state *gamestate.PlayerState) error {
	if err := s.repo.Put(ctx, state); err != nil {
		return err
	}
	return s.cache.Expire(ctx, s.cache.PlayerStateKey(state.PlayerID))
}

func asPlayerState(val any) (*gamestate.PlayerState, error) {
	if state, ok := val.(*gamestate.PlayerState); ok {
		return state, nil
	}
	// ristretto holds whatever Go value was stored locally, so the
	// common path is the type assertion above; this fallback only
	// matters if a value ever round-trips through JSON.
	data, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}
	var state gamestate.PlayerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func ptr(d time.Duration) *time.Duration { return &d }
