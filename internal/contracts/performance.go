package contracts

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Percent is a percentage value. Full precision is kept internally;
// marshalling rounds to 2 decimals, so sums and averages never
// accumulate rounding error.
type Percent float64

// MarshalJSON renders the percentage as a 2-decimal JSON number.
func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(decimal.NewFromFloat(float64(p)).StringFixed(2)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Percent) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Percent(v)
	return nil
}

// StockPerformance is the computed performance of one position.
type StockPerformance struct {
	Ticker              string       `json:"ticker"`
	Direction           Direction    `json:"direction"`
	Currency            string       `json:"currency"`
	StartPrice          Price        `json:"startPrice"`
	CurrentPrice        Price        `json:"currentPrice"`
	StartExchangeRate   Rate         `json:"startExchangeRate"`
	CurrentExchangeRate Rate         `json:"currentExchangeRate"`
	Performance         Percent      `json:"performance"`
	PerformanceInCHF    Percent      `json:"performanceInCHF"`
	PerformanceForGame  Percent      `json:"performanceForGame"`
	PriceHistory        []PricePoint `json:"priceHistory,omitempty"`
}

// RankingEntry is one row of the leaderboard: a player, their two stocks
// (long first) and the direction-adjusted total used for ranking.
type RankingEntry struct {
	Player                  string             `json:"player"`
	Stocks                  []StockPerformance `json:"stocks"`
	TotalPerformanceForGame Percent            `json:"totalPerformanceForGame"`
	Rank                    int                `json:"rank"`
}

// Medal returns the conventional highlight for the top three ranks
// ("gold", "silver", "bronze") and an empty string otherwise. It is a
// pure function of the rank.
func (e RankingEntry) Medal() string {
	switch e.Rank {
	case 1:
		return "gold"
	case 2:
		return "silver"
	case 3:
		return "bronze"
	default:
		return ""
	}
}
