// Package snapshot persists the last good data snapshot so a restart
// can render immediately from stale-but-available data while the first
// refresh is in flight.
package snapshot

import (
	"context"
	"sync"

	"github.com/boersenspiel/leaderboard/internal/contracts"
)

// Store loads and saves data snapshots.
type Store interface {
	// Load returns the stored snapshot; the boolean reports whether one exists.
	Load(ctx context.Context) (*contracts.Snapshot, bool, error)
	// Save stores a snapshot, replacing any previous one.
	Save(ctx context.Context, snap *contracts.Snapshot) error
}

// MemoryStore is an in-process Store. It backs tests and deployments
// without Redis.
type MemoryStore struct {
	mu   sync.RWMutex
	snap *contracts.Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context) (*contracts.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snap == nil {
		return nil, false, nil
	}
	snap := *s.snap
	return &snap, true, nil
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, snap *contracts.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *snap
	s.snap = &copied
	return nil
}
