// Package performance computes the per-stock performance figures: raw
// price change, currency-adjusted change in CHF, and the direction-signed
// value that counts for the game.
package performance

import "github.com/boersenspiel/leaderboard/internal/contracts"

// Result holds the three performance percentages for one position.
// Values carry full precision; rounding happens at the wire.
type Result struct {
	Stock contracts.Percent // price change in the stock's own currency
	CHF   contracts.Percent // currency-adjusted change in CHF
	Game  contracts.Percent // CHF change, sign-flipped for shorts
}

// Compute calculates the performance of one position. If any input is
// missing, or the start price is zero, all three results are 0 — not
// N/A. A dead ticker must not poison a player's average, so missing
// performance is "no gain", while missing prices and rates stay N/A on
// the wire.
func Compute(start, current contracts.Price, direction contracts.Direction, soyRate, currentRate contracts.Rate) Result {
	if !start.Valid || !current.Valid || !soyRate.Valid || !currentRate.Valid {
		return Result{}
	}
	if start.Value == 0 || soyRate.Value == 0 {
		return Result{}
	}

	stockPct := (current.Value - start.Value) / start.Value * 100
	currencyPct := (currentRate.Value/soyRate.Value - 1) * 100

	// Compounded rather than additive: the asset return is earned in the
	// foreign currency, then the whole position converts to CHF.
	chfPct := ((1+stockPct/100)*(1+currencyPct/100) - 1) * 100

	return Result{
		Stock: contracts.Percent(stockPct),
		CHF:   contracts.Percent(chfPct),
		Game:  contracts.Percent(direction.Sign() * chfPct),
	}
}
