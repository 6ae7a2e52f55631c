// Package fx resolves start-of-year and current exchange rates for the
// performance pipeline. Stored rates quote foreign currency per CHF; the
// pipeline needs CHF per unit of foreign currency, so every resolved
// rate is the reciprocal of a stored one, rounded to 4 decimals.
package fx

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/boersenspiel/leaderboard/internal/contracts"
)

// eurSOYStored is the hard-coded EUR/CHF start-of-year quote used when
// no per-ticker history carries an explicit start rate.
const eurSOYStored = 1.06435599

// SOYRate resolves the reciprocal start-of-year rate for a currency.
// Priority: CHF is always at par; an explicit exchange_rate_start from
// the ticker history (anchor date first, then the first 2025 entry)
// beats every fallback; EUR falls back to the hard-coded constant;
// other currencies fall back to the SOY rate set. A currency absent
// from the set converts at par, a zero rate resolves to N/A.
func SOYRate(currency string, rates contracts.RateSet, history []contracts.HistoryEntry) contracts.Rate {
	if currency == contracts.DefaultCurrency {
		return contracts.RateOf(1)
	}

	for _, entry := range history {
		if entry.Date == contracts.GameStartDate && entry.ExchangeRateStart != 0 {
			return reciprocal(entry.ExchangeRateStart)
		}
	}
	for _, entry := range history {
		if strings.HasPrefix(entry.Date, "2025") && entry.ExchangeRateStart != 0 {
			return reciprocal(entry.ExchangeRateStart)
		}
	}

	if currency == "EUR" {
		return reciprocal(eurSOYStored)
	}

	if stored, ok := rates.SOY[currency]; ok {
		return reciprocal(stored)
	}

	// Unknown currency: par with CHF.
	return contracts.RateOf(1)
}

// CurrentRate resolves the reciprocal current rate for a currency from
// the latest rate set. A zero rate resolves to N/A, an unknown currency
// to par.
func CurrentRate(currency string, rates contracts.RateSet) contracts.Rate {
	if currency == contracts.DefaultCurrency {
		return contracts.RateOf(1)
	}

	if stored, ok := rates.Current[currency]; ok {
		return reciprocal(stored)
	}

	return contracts.RateOf(1)
}

// reciprocal inverts a stored rate and rounds to the 4-decimal display
// precision, so computation and presentation use the same value. A zero
// stored rate is invalid data and yields N/A; it is never divided by.
func reciprocal(stored float64) contracts.Rate {
	if stored == 0 {
		return contracts.Rate{}
	}
	inverted, _ := decimal.NewFromFloat(1).Div(decimal.NewFromFloat(stored)).Round(4).Float64()
	return contracts.RateOf(inverted)
}
