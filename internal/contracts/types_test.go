package contracts

import (
	"encoding/json"
	"testing"
)

func TestPriceString(t *testing.T) {
	if got := PriceOf(120).String(); got != "120.00" {
		t.Errorf("String() = %s, want 120.00", got)
	}

	if got := (Price{}).String(); got != NA {
		t.Errorf("String() = %s, want %s", got, NA)
	}
}

func TestPriceUnmarshalShapes(t *testing.T) {
	cases := []struct {
		name  string
		input string
		valid bool
		value float64
	}{
		{"number", `120.5`, true, 120.5},
		{"numeric string", `"88.25"`, true, 88.25},
		{"na sentinel", `"N/A"`, false, 0},
		{"null", `null`, false, 0},
	}

	for _, tc := range cases {
		var p Price
		if err := json.Unmarshal([]byte(tc.input), &p); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if p.Valid != tc.valid {
			t.Errorf("%s: Valid = %v, want %v", tc.name, p.Valid, tc.valid)
		}
		if tc.valid && p.Value != tc.value {
			t.Errorf("%s: Value = %v, want %v", tc.name, p.Value, tc.value)
		}
	}
}

func TestRateString(t *testing.T) {
	if got := RateOf(0.9395).String(); got != "0.9395" {
		t.Errorf("String() = %s, want 0.9395", got)
	}

	if got := (Rate{}).String(); got != NA {
		t.Errorf("String() = %s, want %s", got, NA)
	}
}

func TestLatestPricePrefersCurrent(t *testing.T) {
	series := PriceSeries{
		CurrentPrice: PriceOf(105),
		History: []PricePoint{
			{Date: "2025-01-02", Price: 100},
			{Date: "2025-01-03", Price: 102},
		},
	}

	latest := series.LatestPrice()
	if !latest.Valid || latest.Value != 105 {
		t.Errorf("LatestPrice() = %+v, want valid 105", latest)
	}
}

func TestLatestPriceFallsBackToHistory(t *testing.T) {
	series := PriceSeries{
		History: []PricePoint{
			{Date: "2025-01-02", Price: 100},
			{Date: "2025-01-03", Price: 102},
		},
	}

	latest := series.LatestPrice()
	if !latest.Valid || latest.Value != 102 {
		t.Errorf("LatestPrice() = %+v, want valid 102", latest)
	}
}

func TestLatestPriceEmptySeries(t *testing.T) {
	var series PriceSeries
	if series.LatestPrice().Valid {
		t.Error("LatestPrice() on empty series should be invalid")
	}
	if series.StartPrice().Valid {
		t.Error("StartPrice() on empty series should be invalid")
	}
}

func TestChartPointsRestrictsToGamePeriod(t *testing.T) {
	series := PriceSeries{
		CurrentPrice: PriceOf(110),
		CurrentDate:  "2025-03-01",
		History: []PricePoint{
			{Date: "2024-11-15", Price: 90},
			{Date: "2024-12-30", Price: 95},
			{Date: "2025-01-10", Price: 100},
		},
	}

	points := series.ChartPoints()
	if len(points) != 3 {
		t.Fatalf("ChartPoints() returned %d points, want 3", len(points))
	}
	if points[0].Date != GameStartDate {
		t.Errorf("first point date = %s, want %s", points[0].Date, GameStartDate)
	}
	last := points[len(points)-1]
	if last.Date != "2025-03-01" || last.Price != 110 {
		t.Errorf("last point = %+v, want current price appended", last)
	}
}

func TestCurrencyOrDefault(t *testing.T) {
	if got := (Position{Currency: "USD"}).CurrencyOrDefault(); got != "USD" {
		t.Errorf("CurrencyOrDefault() = %s, want USD", got)
	}
	if got := (Position{}).CurrencyOrDefault(); got != DefaultCurrency {
		t.Errorf("CurrencyOrDefault() = %s, want %s", got, DefaultCurrency)
	}
}

func TestDirectionSign(t *testing.T) {
	if DirectionLong.Sign() != 1 {
		t.Error("long sign should be +1")
	}
	if DirectionShort.Sign() != -1 {
		t.Error("short sign should be -1")
	}
}
