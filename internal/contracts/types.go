package contracts

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// GameStartDate anchors the start-of-year baseline for prices and rates.
const GameStartDate = "2024-12-30"

// DefaultCurrency is assumed for positions that do not declare one.
// CHF is the settlement currency, so the default converts at par.
const DefaultCurrency = "CHF"

// NA is the wire sentinel for values that cannot be computed.
const NA = "N/A"

// Direction is the side of a bet: long profits from rising prices,
// short from falling ones.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Sign returns +1 for long and -1 for short.
func (d Direction) Sign() float64 {
	if d == DirectionShort {
		return -1
	}
	return 1
}

// Position is a player's bet on one ticker.
type Position struct {
	Ticker    string    `json:"ticker"`
	Direction Direction `json:"direction"`
	Currency  string    `json:"currency,omitempty"`
}

// CurrencyOrDefault returns the position currency, falling back to CHF.
func (p Position) CurrencyOrDefault() string {
	if p.Currency == "" {
		return DefaultCurrency
	}
	return p.Currency
}

// Price is an optional price value. It marshals as a 2-decimal string,
// or "N/A" when no value is available.
type Price struct {
	Value float64
	Valid bool
}

// PriceOf returns a valid Price, unless v is not a finite number.
func PriceOf(v float64) Price {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Price{}
	}
	return Price{Value: v, Valid: true}
}

// String formats the price to 2 decimals, or "N/A".
func (p Price) String() string {
	if !p.Valid {
		return NA
	}
	return decimal.NewFromFloat(p.Value).StringFixed(2)
}

// MarshalJSON implements json.Marshaler.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts a number, a numeric string, "N/A" or null.
func (p *Price) UnmarshalJSON(data []byte) error {
	*p = Price{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*p = PriceOf(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str == NA || str == "" {
			return nil
		}
		if v, err := strconv.ParseFloat(str, 64); err == nil {
			*p = PriceOf(v)
		}
		return nil
	}

	// Unknown shape: treat as missing rather than failing the payload.
	return nil
}

// Rate is an optional reciprocal exchange rate (CHF per unit of foreign
// currency). It marshals as a 4-decimal string, or "N/A".
type Rate struct {
	Value float64
	Valid bool
}

// RateOf returns a valid Rate, unless v is not a finite number.
func RateOf(v float64) Rate {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Rate{}
	}
	return Rate{Value: v, Valid: true}
}

// String formats the rate to 4 decimals, or "N/A".
func (r Rate) String() string {
	if !r.Valid {
		return NA
	}
	return decimal.NewFromFloat(r.Value).StringFixed(4)
}

// MarshalJSON implements json.Marshaler.
func (r Rate) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// PricePoint is one dated closing price.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// PriceSeries is the per-ticker time series. History is kept sorted
// ascending by date; the normalizer guarantees the ordering.
type PriceSeries struct {
	CurrentPrice Price        `json:"current_price"`
	CurrentDate  string       `json:"current_date,omitempty"`
	History      []PricePoint `json:"history"`
}

// StartPrice returns the chronologically first historical price.
func (s PriceSeries) StartPrice() Price {
	if len(s.History) == 0 {
		return Price{}
	}
	return PriceOf(s.History[0].Price)
}

// LatestPrice returns the current price if one is available, otherwise
// the most recent historical price, otherwise an invalid Price.
func (s PriceSeries) LatestPrice() Price {
	if s.CurrentPrice.Valid {
		return s.CurrentPrice
	}
	if len(s.History) > 0 {
		return PriceOf(s.History[len(s.History)-1].Price)
	}
	return Price{}
}

// ChartPoints projects the series onto the game period for charting:
// history entries from the game start onward, with the current price
// appended as the final point when available.
func (s PriceSeries) ChartPoints() []PricePoint {
	points := make([]PricePoint, 0, len(s.History)+1)
	for _, p := range s.History {
		if p.Date >= GameStartDate {
			points = append(points, p)
		}
	}

	if s.CurrentPrice.Valid {
		date := s.CurrentDate
		if date == "" && len(s.History) > 0 {
			date = s.History[len(s.History)-1].Date
		}
		if date != "" {
			points = append(points, PricePoint{Date: date, Price: s.CurrentPrice.Value})
		}
	}

	return points
}

// SortHistory orders the history ascending by date. ISO dates sort
// correctly as strings.
func (s *PriceSeries) SortHistory() {
	sort.Slice(s.History, func(i, j int) bool {
		return s.History[i].Date < s.History[j].Date
	})
}

// RateSet maps currency codes to stored rates (foreign per CHF), with a
// nested start-of-year snapshot of the same shape. Consumers use the
// reciprocal; the resolver owns that conversion.
type RateSet struct {
	Current map[string]float64 `json:"current"`
	SOY     map[string]float64 `json:"soy"`
}

// HistoryEntry is one row of the richer per-ticker series exposed by the
// optional /history endpoint.
type HistoryEntry struct {
	Date                string  `json:"Date"`
	ClosePrice          float64 `json:"close_price"`
	Currency            string  `json:"currency"`
	ExchangeRateStart   float64 `json:"exchange_rate_start"`
	ExchangeRateCurrent float64 `json:"exchange_rate_current"`
}

// Snapshot is one immutable set of upstream data. Each pipeline pass
// consumes exactly one snapshot; refreshes produce fresh ones.
type Snapshot struct {
	Players   map[string][]Position     `json:"players"`
	Prices    map[string]PriceSeries    `json:"prices"`
	Rates     RateSet                   `json:"exchange_rates"`
	History   map[string][]HistoryEntry `json:"history,omitempty"`
	FetchedAt time.Time                 `json:"fetched_at"`
}
