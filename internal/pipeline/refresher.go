package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/boersenspiel/leaderboard/internal/contracts"
	"github.com/boersenspiel/leaderboard/internal/snapshot"
	"github.com/boersenspiel/leaderboard/pkg/logger"
)

// Fetcher is the upstream surface the refresher depends on; the boerse
// client implements it.
type Fetcher interface {
	Players(ctx context.Context) (map[string][]contracts.Position, error)
	Prices(ctx context.Context) (map[string]contracts.PriceSeries, error)
	ExchangeRates(ctx context.Context) (contracts.RateSet, error)
	History(ctx context.Context) (map[string][]contracts.HistoryEntry, error)
}

// ErrNoData is returned when a refresh cannot assemble a complete
// snapshot and no previous one exists to fall back on.
var ErrNoData = errors.New("no complete data snapshot available")

// Refresher drives refresh cycles: it fetches players, prices and rates
// concurrently, joins all of them, and only then runs the pipeline, so
// a partial cycle never yields an incomplete ranking. Failed fetches
// fall back to the previous snapshot's data (stale-while-revalidate).
type Refresher struct {
	fetcher  Fetcher
	pipeline *Pipeline
	store    snapshot.Store
	logger   *logger.Logger

	// refreshing guards against overlapping refresh cycles.
	refreshing atomic.Bool

	mu            sync.RWMutex
	snap          *contracts.Snapshot
	ranking       []contracts.RankingEntry
	lastRefreshed time.Time

	subscribers []func([]contracts.RankingEntry)
}

// NewRefresher creates a refresher.
func NewRefresher(fetcher Fetcher, p *Pipeline, store snapshot.Store, log *logger.Logger) *Refresher {
	return &Refresher{
		fetcher:  fetcher,
		pipeline: p,
		store:    store,
		logger:   log,
	}
}

// OnUpdate registers a callback invoked with the fresh ranking after
// every successful refresh. Not safe to call after refreshes started.
func (r *Refresher) OnUpdate(fn func([]contracts.RankingEntry)) {
	r.subscribers = append(r.subscribers, fn)
}

// Seed loads the stored snapshot, if any, and computes an initial
// ranking from it so the service can answer before the first refresh.
func (r *Refresher) Seed(ctx context.Context) {
	snap, found, err := r.store.Load(ctx)
	if err != nil {
		r.logger.WithError(err).Warn("Failed to load stored snapshot")
		return
	}
	if !found {
		return
	}

	r.publish(snap, false)
	r.logger.WithField("fetched_at", snap.FetchedAt).Info("Seeded from stored snapshot")
}

// Refresh runs one full cycle: players, prices, exchange rates and the
// optional history are fetched concurrently; the pipeline runs once all
// have settled. An overlapping call is skipped.
func (r *Refresher) Refresh(ctx context.Context) error {
	if !r.refreshing.CompareAndSwap(false, true) {
		r.logger.Debug("Refresh already in progress, skipping")
		return nil
	}
	defer r.refreshing.Store(false)

	prev := r.Snapshot()

	var (
		wg      sync.WaitGroup
		players map[string][]contracts.Position
		prices  map[string]contracts.PriceSeries
		rates   contracts.RateSet
		history map[string][]contracts.HistoryEntry

		playersErr, pricesErr, ratesErr, historyErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		players, playersErr = r.fetcher.Players(ctx)
	}()
	go func() {
		defer wg.Done()
		prices, pricesErr = r.fetcher.Prices(ctx)
	}()
	go func() {
		defer wg.Done()
		rates, ratesErr = r.fetcher.ExchangeRates(ctx)
	}()
	go func() {
		defer wg.Done()
		history, historyErr = r.fetcher.History(ctx)
	}()
	wg.Wait()

	next := &contracts.Snapshot{FetchedAt: time.Now()}

	next.Players = fallback(players, playersErr, prev, r.logger, "players",
		func(s *contracts.Snapshot) map[string][]contracts.Position { return s.Players })
	next.Prices = fallback(prices, pricesErr, prev, r.logger, "prices",
		func(s *contracts.Snapshot) map[string]contracts.PriceSeries { return s.Prices })
	next.History = fallback(history, historyErr, prev, r.logger, "history",
		func(s *contracts.Snapshot) map[string][]contracts.HistoryEntry { return s.History })

	if ratesErr != nil {
		r.logger.WithError(ratesErr).Error("Fetch failed, reusing stale exchange rates")
		if prev == nil {
			return fmt.Errorf("%w: exchange rates", ErrNoData)
		}
		rates = prev.Rates
	}
	next.Rates = rates

	if next.Players == nil || next.Prices == nil {
		return ErrNoData
	}

	r.publish(next, true)
	return nil
}

// RefreshRates refreshes only the spot exchange rates and recomputes the
// ranking on the existing snapshot. Runs on the slower hourly cadence.
func (r *Refresher) RefreshRates(ctx context.Context) error {
	if !r.refreshing.CompareAndSwap(false, true) {
		r.logger.Debug("Refresh already in progress, skipping")
		return nil
	}
	defer r.refreshing.Store(false)

	prev := r.Snapshot()
	if prev == nil {
		return ErrNoData
	}

	rates, err := r.fetcher.ExchangeRates(ctx)
	if err != nil {
		return fmt.Errorf("refresh exchange rates: %w", err)
	}

	next := *prev
	next.Rates = rates
	next.FetchedAt = time.Now()

	r.publish(&next, true)
	return nil
}

// publish computes the ranking for snap, swaps it in and notifies
// subscribers. When persist is set the snapshot is also saved.
func (r *Refresher) publish(snap *contracts.Snapshot, persist bool) {
	entries := r.pipeline.Compute(snap)

	r.mu.Lock()
	r.snap = snap
	r.ranking = entries
	r.lastRefreshed = time.Now()
	r.mu.Unlock()

	if persist {
		if err := r.store.Save(context.Background(), snap); err != nil {
			r.logger.WithError(err).Warn("Failed to persist snapshot")
		}
	}

	for _, fn := range r.subscribers {
		fn(entries)
	}

	r.logger.WithFields(map[string]interface{}{
		"players": len(entries),
	}).Info("Ranking updated")
}

// Snapshot returns the current snapshot, or nil before the first load.
func (r *Refresher) Snapshot() *contracts.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// Ranking returns the latest ranked leaderboard.
func (r *Refresher) Ranking() []contracts.RankingEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ranking
}

// PlayerEntry returns the leaderboard entry for one player.
func (r *Refresher) PlayerEntry(name string) (contracts.RankingEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.ranking {
		if entry.Player == name {
			return entry, true
		}
	}
	return contracts.RankingEntry{}, false
}

// LastRefreshed returns when data was last loaded; zero before any load.
func (r *Refresher) LastRefreshed() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastRefreshed
}

// fallback picks fresh data when the fetch succeeded, otherwise the
// matching field of the previous snapshot.
func fallback[T any](fresh T, err error, prev *contracts.Snapshot, log *logger.Logger, name string, pick func(*contracts.Snapshot) T) T {
	if err == nil {
		return fresh
	}

	log.WithFields(map[string]interface{}{
		"feed":  name,
		"error": err.Error(),
	}).Error("Fetch failed, reusing stale data")

	if prev == nil {
		var zero T
		return zero
	}
	return pick(prev)
}
