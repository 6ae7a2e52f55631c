// Package marketdata normalizes raw per-ticker market data into the
// canonical form the pipeline consumes: display ticker symbols and
// chronologically sorted price histories.
package marketdata

import (
	"strings"

	"github.com/boersenspiel/leaderboard/internal/contracts"
)

// suffixTable maps backend exchange suffixes to the display suffixes the
// roster uses. Unknown suffixes pass through unchanged.
var suffixTable = []struct {
	backend string
	display string
}{
	{".XETRA", ".DE"},
	{".XSWX", ".SW"},
	{".XBRU", ".BR"},
}

// NormalizeTicker rewrites a backend ticker symbol to its display form.
// A ticker already in display form is returned unchanged.
func NormalizeTicker(ticker string) string {
	for _, s := range suffixTable {
		if strings.HasSuffix(ticker, s.backend) {
			return strings.TrimSuffix(ticker, s.backend) + s.display
		}
	}
	return ticker
}

// Normalize rewrites ticker keys to display form and sorts each history
// ascending by date. Tickers without any usable data are kept so that
// downstream stages see them and null-check; they are never dropped.
func Normalize(prices map[string]contracts.PriceSeries) map[string]contracts.PriceSeries {
	normalized := make(map[string]contracts.PriceSeries, len(prices))
	for ticker, series := range prices {
		sorted := series
		sorted.History = append([]contracts.PricePoint(nil), series.History...)
		sorted.SortHistory()
		normalized[NormalizeTicker(ticker)] = sorted
	}
	return normalized
}
