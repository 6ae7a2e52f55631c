package fx

import (
	"testing"

	"github.com/boersenspiel/leaderboard/internal/contracts"
)

func TestSOYRateCHFAlwaysPar(t *testing.T) {
	rate := SOYRate("CHF", contracts.RateSet{SOY: map[string]float64{"CHF": 0.5}}, nil)
	if !rate.Valid || rate.Value != 1 {
		t.Errorf("CHF SOY rate = %+v, want par 1", rate)
	}
}

func TestSOYRateEURConstant(t *testing.T) {
	rate := SOYRate("EUR", contracts.RateSet{}, nil)
	if !rate.Valid {
		t.Fatal("EUR SOY rate should be valid")
	}
	if rate.String() != "0.9395" {
		t.Errorf("EUR SOY rate = %s, want 0.9395", rate.String())
	}
}

func TestSOYRatePrefersAnchorHistory(t *testing.T) {
	history := []contracts.HistoryEntry{
		{Date: "2025-01-03", ExchangeRateStart: 0.8},
		{Date: "2024-12-30", ExchangeRateStart: 2},
	}

	rate := SOYRate("EUR", contracts.RateSet{}, history)
	if !rate.Valid || rate.Value != 0.5 {
		t.Errorf("rate = %+v, want reciprocal of anchor entry (0.5)", rate)
	}
}

func TestSOYRateFallsBackToFirst2025Entry(t *testing.T) {
	history := []contracts.HistoryEntry{
		{Date: "2024-11-01", ExchangeRateStart: 3},
		{Date: "2025-01-02", ExchangeRateStart: 0.8},
	}

	rate := SOYRate("USD", contracts.RateSet{}, history)
	if !rate.Valid || rate.Value != 1.25 {
		t.Errorf("rate = %+v, want 1.25 from first 2025 entry", rate)
	}
}

func TestSOYRateFromRateSet(t *testing.T) {
	rates := contracts.RateSet{SOY: map[string]float64{"USD": 0.88}}

	rate := SOYRate("USD", rates, nil)
	if rate.String() != "1.1364" {
		t.Errorf("rate = %s, want 1.1364", rate.String())
	}
}

func TestZeroRateIsNeverDividedBy(t *testing.T) {
	rates := contracts.RateSet{
		SOY:     map[string]float64{"USD": 0},
		Current: map[string]float64{"USD": 0},
	}

	soy := SOYRate("USD", rates, nil)
	if soy.Valid {
		t.Errorf("zero SOY rate resolved to %+v, want N/A", soy)
	}
	if soy.String() != contracts.NA {
		t.Errorf("zero SOY rate string = %s, want %s", soy.String(), contracts.NA)
	}

	current := CurrentRate("USD", rates)
	if current.Valid {
		t.Errorf("zero current rate resolved to %+v, want N/A", current)
	}
}

func TestUnknownCurrencyFallsBackToPar(t *testing.T) {
	rates := contracts.RateSet{Current: map[string]float64{"USD": 0.88}}

	soy := SOYRate("SEK", rates, nil)
	if !soy.Valid || soy.Value != 1 {
		t.Errorf("unknown currency SOY rate = %+v, want par", soy)
	}

	current := CurrentRate("SEK", rates)
	if !current.Valid || current.Value != 1 {
		t.Errorf("unknown currency current rate = %+v, want par", current)
	}
}

func TestCurrentRateReciprocal(t *testing.T) {
	rates := contracts.RateSet{Current: map[string]float64{"USD": 0.88}}

	rate := CurrentRate("USD", rates)
	if rate.String() != "1.1364" {
		t.Errorf("rate = %s, want 1.1364", rate.String())
	}
}
