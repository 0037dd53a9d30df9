package dexscreener

import (
	"context"
)

// DefaultBaseURL is the public DexScreener API root.
const DefaultBaseURL = "https://api.dexscreener.com/latest/dex"

// Fetcher performs a GET with retries and decodes the JSON body.
//
//go:generate mockgen -package=dexscreener_test -destination=mock_fetcher_test.go -source=client.go Fetcher
type Fetcher interface {
	GetJSON(ctx context.Context, url string, v any) error
}

// Client is a client for the DexScreener token pairs API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// fetcher performs the HTTP requests.
	fetcher Fetcher
}

// ClientOption is a configuration option for the DexScreener client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a new DexScreener API client.
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
