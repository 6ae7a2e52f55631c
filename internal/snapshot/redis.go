package snapshot

import (
	"context"

	"github.com/boersenspiel/leaderboard/internal/contracts"
	"github.com/boersenspiel/leaderboard/pkg/redis"
)

// RedisStore persists snapshots in Redis so the last good data survives
// process restarts.
type RedisStore struct {
	cache *redis.Cache
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		cache: redis.NewCache(client, "boersenspiel"),
	}
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context) (*contracts.Snapshot, bool, error) {
	var snap contracts.Snapshot
	found, err := s.cache.Get(ctx, redis.SnapshotKey(), &snap)
	if err != nil || !found {
		return nil, false, err
	}
	return &snap, true, nil
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, snap *contracts.Snapshot) error {
	return s.cache.Set(ctx, redis.SnapshotKey(), snap, redis.TTLSnapshot)
}
