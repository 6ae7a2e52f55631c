// Package ranking turns player rosters and normalized market data into
// the ranked leaderboard.
package ranking

import (
	"errors"
	"sort"

	"github.com/boersenspiel/leaderboard/internal/contracts"
	"github.com/boersenspiel/leaderboard/internal/fx"
	"github.com/boersenspiel/leaderboard/internal/performance"
	"github.com/boersenspiel/leaderboard/pkg/logger"
)

// ErrInvalidRoster marks a player whose roster does not hold exactly two
// positions. Such entries are excluded from ranking, never indexed blindly.
var ErrInvalidRoster = errors.New("roster must hold exactly two positions")

// Aggregator computes one leaderboard entry per player.
type Aggregator struct {
	logger *logger.Logger
}

// NewAggregator creates a new aggregator.
func NewAggregator(log *logger.Logger) *Aggregator {
	return &Aggregator{logger: log}
}

// Aggregate computes a player's entry: both positions ordered long
// first, per-stock performance, and the total as the average of the two
// game performances. Rank is assigned later by Rank.
func (a *Aggregator) Aggregate(
	player string,
	positions []contracts.Position,
	prices map[string]contracts.PriceSeries,
	rates contracts.RateSet,
	history map[string][]contracts.HistoryEntry,
) (contracts.RankingEntry, error) {
	if len(positions) != 2 {
		return contracts.RankingEntry{}, ErrInvalidRoster
	}

	ordered := append([]contracts.Position(nil), positions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return directionKey(ordered[i].Direction) < directionKey(ordered[j].Direction)
	})

	entry := contracts.RankingEntry{
		Player: player,
		Stocks: make([]contracts.StockPerformance, 0, len(ordered)),
	}

	var totalGame float64
	for _, pos := range ordered {
		stock := a.computeStock(pos, prices, rates, history)
		totalGame += float64(stock.PerformanceForGame)
		entry.Stocks = append(entry.Stocks, stock)
	}
	entry.TotalPerformanceForGame = contracts.Percent(totalGame / float64(len(ordered)))

	return entry, nil
}

// computeStock derives the performance record for one position.
func (a *Aggregator) computeStock(
	pos contracts.Position,
	prices map[string]contracts.PriceSeries,
	rates contracts.RateSet,
	history map[string][]contracts.HistoryEntry,
) contracts.StockPerformance {
	series, ok := prices[pos.Ticker]
	if !ok {
		a.logger.WithField("ticker", pos.Ticker).Warn("No price data for ticker")
	}

	currency := pos.CurrencyOrDefault()
	start := series.StartPrice()
	current := series.LatestPrice()
	soyRate := fx.SOYRate(currency, rates, history[pos.Ticker])
	currentRate := fx.CurrentRate(currency, rates)

	result := performance.Compute(start, current, pos.Direction, soyRate, currentRate)

	return contracts.StockPerformance{
		Ticker:              pos.Ticker,
		Direction:           pos.Direction,
		Currency:            currency,
		StartPrice:          start,
		CurrentPrice:        current,
		StartExchangeRate:   soyRate,
		CurrentExchangeRate: currentRate,
		Performance:         result.Stock,
		PerformanceInCHF:    result.CHF,
		PerformanceForGame:  result.Game,
		PriceHistory:        series.ChartPoints(),
	}
}

func directionKey(d contracts.Direction) int {
	if d == contracts.DirectionLong {
		return -1
	}
	return 1
}
