// Package marketcap feeds the decorative particle background on the
// dashboard. It proxies a public markets API and degrades to synthesized
// placeholder data on any upstream failure: the widget keeps animating, the
// journal core never depends on it.
package marketcap

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.coingecko.com/api/v3"
	fetchTimeout   = 10 * time.Second
)

// Asset is one entry in the market-cap feed.
type Asset struct {
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	MarketCap float64 `json:"market_cap"`
	Change24h float64 `json:"price_change_24h"`
	Synthetic bool    `json:"synthetic"`
}

// Client fetches top assets by market cap.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *log.Logger
}

// NewClient creates a market-cap client against the public API.
func NewClient(logger *log.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: fetchTimeout},
		baseURL:    defaultBaseURL,
		logger:     logger,
	}
}

// WithBaseURL overrides the upstream API base URL. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// TopAssets returns the top count assets by market cap. It never fails: when
// the upstream fetch or decode errors, it logs the cause and returns
// synthesized placeholder assets flagged as such. The second return value
// reports whether the data is synthetic.
func (c *Client) TopAssets(ctx context.Context, count int) ([]Asset, bool) {
	if count <= 0 {
		count = 50
	}

	assets, err := c.fetch(ctx, count)
	if err != nil {
		c.logger.Printf("market-cap fetch failed, using synthetic data: %v", err)
		return synthesize(count), true
	}
	return assets, false
}

func (c *Client) fetch(ctx context.Context, count int) ([]Asset, error) {
	url := fmt.Sprintf(
		"%s/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1&sparkline=false&price_change_percentage=24h",
		c.baseURL, count,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch markets: unexpected status %d", resp.StatusCode)
	}

	var raw []struct {
		Name                     string  `json:"name"`
		Symbol                   string  `json:"symbol"`
		MarketCap                float64 `json:"market_cap"`
		PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode markets response: %w", err)
	}

	assets := make([]Asset, 0, len(raw))
	for _, coin := range raw {
		mc := coin.MarketCap
		if mc == 0 {
			mc = 1_000_000
		}
		assets = append(assets, Asset{
			Name:      coin.Name,
			Symbol:    coin.Symbol,
			MarketCap: mc,
			Change24h: coin.PriceChangePercentage24h,
		})
	}
	return assets, nil
}

// synthesize produces random placeholder assets shaped like the real feed.
func synthesize(count int) []Asset {
	assets := make([]Asset, count)
	for i := range assets {
		assets[i] = Asset{
			Name:      fmt.Sprintf("Asset %d", i+1),
			Symbol:    fmt.Sprintf("ast%d", i+1),
			MarketCap: rand.Float64()*10_000_000_000 + 100_000_000,
			Change24h: rand.Float64()*20 - 10,
			Synthetic: true,
		}
	}
	return assets
}
