package boerse

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/boersenspiel/leaderboard/internal/contracts"
)

// The upstream payloads are loosely typed: prices arrive as numbers,
// numeric strings or date-keyed objects, exchange rates as numbers or
// strings. Everything is normalized here, on ingress; no shape branching
// leaks past this package.

type playersResponse struct {
	Players map[string][]contracts.Position `json:"players"`
}

type pricesResponse struct {
	Prices map[string]wireSeries `json:"prices"`
}

type ratesResponse struct {
	ExchangeRates wireRateSet `json:"exchange_rates"`
}

// wireSeries is the raw per-ticker payload from /prices.
type wireSeries struct {
	CurrentPrice flexPrice          `json:"current_price"`
	History      map[string]float64 `json:"history"`
}

// toSeries converts the wire shape to the canonical series. History
// ordering is left to the normalizer.
func (w wireSeries) toSeries() contracts.PriceSeries {
	series := contracts.PriceSeries{
		CurrentPrice: w.CurrentPrice.price(),
		CurrentDate:  w.CurrentPrice.date,
		History:      make([]contracts.PricePoint, 0, len(w.History)),
	}
	for date, price := range w.History {
		series.History = append(series.History, contracts.PricePoint{Date: date, Price: price})
	}
	return series
}

// flexPrice accepts the three shapes current_price has been observed in:
// a plain number, a numeric string, or an object mapping dates to prices
// (the most recent date wins). Anything else means no current price.
type flexPrice struct {
	value float64
	date  string
	valid bool
}

func (f *flexPrice) price() contracts.Price {
	if !f.valid {
		return contracts.Price{}
	}
	return contracts.PriceOf(f.value)
}

func (f *flexPrice) UnmarshalJSON(data []byte) error {
	*f = flexPrice{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		f.value = num
		f.valid = true
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if v, err := strconv.ParseFloat(str, 64); err == nil {
			f.value = v
			f.valid = true
		}
		return nil
	}

	var dated map[string]float64
	if err := json.Unmarshal(data, &dated); err == nil {
		for date, price := range dated {
			if date > f.date {
				f.date = date
				f.value = price
				f.valid = true
			}
		}
		return nil
	}

	// Unknown shape is missing data, not a failed fetch.
	return nil
}

// wireRateSet parses the /exchange_rates payload: a flat currency map
// with one nested SOY_EXCHANGE_RATES object of the same shape.
type wireRateSet contracts.RateSet

func (w *wireRateSet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	w.Current = make(map[string]float64, len(raw))
	w.SOY = make(map[string]float64)

	for key, msg := range raw {
		if key == "SOY_EXCHANGE_RATES" {
			var soy map[string]flexNumber
			if err := json.Unmarshal(msg, &soy); err != nil {
				return err
			}
			for currency, rate := range soy {
				w.SOY[currency] = float64(rate)
			}
			continue
		}

		var rate flexNumber
		if err := json.Unmarshal(msg, &rate); err != nil {
			// Skip malformed entries; a missing currency falls back
			// to par downstream.
			continue
		}
		w.Current[key] = float64(rate)
	}

	return nil
}

// flexNumber accepts a JSON number or a numeric string.
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexNumber(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return err
	}
	*f = flexNumber(v)
	return nil
}
