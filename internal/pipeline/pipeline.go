// Package pipeline joins one data snapshot into the ranked leaderboard
// and drives the periodic refresh cycle that produces fresh snapshots.
package pipeline

import (
	"sort"

	"github.com/boersenspiel/leaderboard/internal/contracts"
	"github.com/boersenspiel/leaderboard/internal/marketdata"
	"github.com/boersenspiel/leaderboard/internal/ranking"
	"github.com/boersenspiel/leaderboard/pkg/logger"
)

// Pipeline computes rankings from snapshots. Compute is pure: identical
// snapshots always produce identical rankings.
type Pipeline struct {
	aggregator *ranking.Aggregator
	logger     *logger.Logger
}

// New creates a new pipeline.
func New(log *logger.Logger) *Pipeline {
	return &Pipeline{
		aggregator: ranking.NewAggregator(log),
		logger:     log,
	}
}

// Compute normalizes the snapshot's market data, aggregates every valid
// player roster and returns the ranked leaderboard. Players are
// processed in lexicographic name order so that tie-breaks are
// deterministic across runs; malformed rosters are skipped.
func (p *Pipeline) Compute(snap *contracts.Snapshot) []contracts.RankingEntry {
	if snap == nil {
		return nil
	}

	prices := marketdata.Normalize(snap.Prices)

	names := make([]string, 0, len(snap.Players))
	for name := range snap.Players {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]contracts.RankingEntry, 0, len(names))
	for _, name := range names {
		entry, err := p.aggregator.Aggregate(name, snap.Players[name], prices, snap.Rates, snap.History)
		if err != nil {
			p.logger.WithFields(map[string]interface{}{
				"player": name,
				"error":  err.Error(),
			}).Warn("Excluding player from ranking")
			continue
		}
		entries = append(entries, entry)
	}

	return ranking.Rank(entries)
}
