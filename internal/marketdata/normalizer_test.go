package marketdata

import (
	"testing"

	"github.com/boersenspiel/leaderboard/internal/contracts"
)

func TestNormalizeTicker(t *testing.T) {
	cases := []struct {
		backend string
		display string
	}{
		{"SAP.XETRA", "SAP.DE"},
		{"NOVN.XSWX", "NOVN.SW"},
		{"ABI.XBRU", "ABI.BR"},
		{"AAPL.US", "AAPL.US"}, // unknown suffix passes through
		{"NOVN.SW", "NOVN.SW"}, // already display form: round-trip
	}

	for _, tc := range cases {
		if got := NormalizeTicker(tc.backend); got != tc.display {
			t.Errorf("NormalizeTicker(%s) = %s, want %s", tc.backend, got, tc.display)
		}
	}
}

func TestNormalizeSortsHistory(t *testing.T) {
	prices := map[string]contracts.PriceSeries{
		"NOVN.XSWX": {
			History: []contracts.PricePoint{
				{Date: "2025-02-03", Price: 95},
				{Date: "2024-12-30", Price: 90},
				{Date: "2025-01-15", Price: 92},
			},
		},
	}

	normalized := Normalize(prices)

	series, ok := normalized["NOVN.SW"]
	if !ok {
		t.Fatal("expected ticker NOVN.SW after normalization")
	}

	want := []string{"2024-12-30", "2025-01-15", "2025-02-03"}
	for i, date := range want {
		if series.History[i].Date != date {
			t.Errorf("history[%d].Date = %s, want %s", i, series.History[i].Date, date)
		}
	}

	// Input must stay untouched.
	if prices["NOVN.XSWX"].History[0].Date != "2025-02-03" {
		t.Error("Normalize mutated its input")
	}
}

func TestNormalizeKeepsEmptyTickers(t *testing.T) {
	prices := map[string]contracts.PriceSeries{
		"DEAD.XETRA": {},
	}

	normalized := Normalize(prices)

	series, ok := normalized["DEAD.DE"]
	if !ok {
		t.Fatal("ticker without data must not be dropped")
	}
	if series.LatestPrice().Valid {
		t.Error("latest price of empty series should be invalid")
	}
	if series.LatestPrice().String() != contracts.NA {
		t.Errorf("latest price = %s, want %s", series.LatestPrice().String(), contracts.NA)
	}
}
