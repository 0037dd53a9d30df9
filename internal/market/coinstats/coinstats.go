package coinstats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/molinju/send-price-bot/internal/market"
)

// DefaultBaseURL is the public Send coin stats API root.
const DefaultBaseURL = "https://api.sendcoin.markets"

// Fetcher performs a GET with retries and decodes the JSON body.
//
//go:generate mockgen -package=coinstats_test -destination=mock_fetcher_test.go -source=coinstats.go Fetcher
type Fetcher interface {
	GetJSON(ctx context.Context, url string, v any) error
}

// Client is a client for the Send coin stats API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// fetcher performs the HTTP requests.
	fetcher Fetcher
}

// ClientOption is a configuration option for the coin stats client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a new coin stats API client.
func NewClient(fetcher Fetcher, options ...ClientOption) *Client {
	var client = &Client{
		baseURL: DefaultBaseURL,
		fetcher: fetcher,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// apiResponse is the flat stats payload served by the API.
type apiResponse struct {
	Price                  float64            `json:"price"`
	Symbol                 string             `json:"symbol"`
	Timestamp              int64              `json:"timestamp"`
	TotalCirculatingSupply *float64           `json:"total_circulating_supply"`
	MarketMakerPrices      map[string]float64 `json:"market_maker_prices"`
}

// Latest returns the current coin snapshot. Maker quotes come back
// sorted by maker name so rendering is stable.
func (c *Client) Latest(ctx context.Context) (*market.CoinPrice, error) {
	u := fmt.Sprintf("%s/price", c.baseURL)
	var body apiResponse
	if err := c.fetcher.GetJSON(ctx, u, &body); err != nil {
		return nil, fmt.Errorf("coinstats: %w", err)
	}

	makers := make([]market.MakerPrice, 0, len(body.MarketMakerPrices))
	for maker, price := range body.MarketMakerPrices {
		makers = append(makers, market.MakerPrice{Maker: maker, PriceUSD: price})
	}
	sort.Slice(makers, func(i, j int) bool { return makers[i].Maker < makers[j].Maker })

	return &market.CoinPrice{
		Symbol:      body.Symbol,
		PriceUSD:    body.Price,
		Supply:      body.TotalCirculatingSupply,
		UpdatedAt:   parseEpochMaybeMillis(body.Timestamp, time.Now().UTC()),
		MakerPrices: makers,
	}, nil
}

func parseEpochMaybeMillis(v int64, fallback time.Time) time.Time {
	if v <= 0 {
		return fallback
	}
	if v > 1_000_000_000_000 { // ms
		return time.UnixMilli(v).UTC()
	}
	return time.Unix(v, 0).UTC()
}
