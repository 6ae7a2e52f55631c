package boerse

import (
	"context"
	"fmt"

	"github.com/boersenspiel/leaderboard/internal/contracts"
	"github.com/boersenspiel/leaderboard/pkg/config"
	"github.com/boersenspiel/leaderboard/pkg/httputil"
	"github.com/boersenspiel/leaderboard/pkg/logger"
)

// Client talks to the Börsenspiel game backend. All upstream calls of
// the service go through this client.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new game backend client.
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.Boerse.BaseURL,
	}
}

// Players fetches the player roster: player name to their positions.
func (c *Client) Players(ctx context.Context) (map[string][]contracts.Position, error) {
	var resp playersResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+"/players", &resp); err != nil {
		return nil, fmt.Errorf("fetch players: %w", err)
	}

	c.logger.WithField("players", len(resp.Players)).Debug("Fetched players")
	return resp.Players, nil
}

// Prices fetches per-ticker price series, keyed by backend ticker symbol.
func (c *Client) Prices(ctx context.Context) (map[string]contracts.PriceSeries, error) {
	var resp pricesResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+"/prices", &resp); err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}

	prices := make(map[string]contracts.PriceSeries, len(resp.Prices))
	for ticker, raw := range resp.Prices {
		prices[ticker] = raw.toSeries()
	}

	c.logger.WithField("tickers", len(prices)).Debug("Fetched prices")
	return prices, nil
}

// ExchangeRates fetches the current rate set including the nested
// start-of-year snapshot.
func (c *Client) ExchangeRates(ctx context.Context) (contracts.RateSet, error) {
	var resp ratesResponse
	if err := c.httpClient.GetJSON(ctx, c.baseURL+"/exchange_rates", &resp); err != nil {
		return contracts.RateSet{}, fmt.Errorf("fetch exchange rates: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"currencies":     len(resp.ExchangeRates.Current),
		"soy_currencies": len(resp.ExchangeRates.SOY),
	}).Debug("Fetched exchange rates")
	return contracts.RateSet(resp.ExchangeRates), nil
}

// History fetches the richer per-ticker series. The endpoint is optional
// upstream; a 404 yields no history and no error.
func (c *Client) History(ctx context.Context) (map[string][]contracts.HistoryEntry, error) {
	var resp map[string][]contracts.HistoryEntry
	if err := c.httpClient.GetJSON(ctx, c.baseURL+"/history", &resp); err != nil {
		if httputil.IsNotFound(err) {
			c.logger.Debug("History endpoint not available")
			return nil, nil
		}
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	c.logger.WithField("tickers", len(resp)).Debug("Fetched history")
	return resp, nil
}
