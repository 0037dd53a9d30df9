package dexscreener

import (
	"context"
	"fmt"
	"net/url"

	"github.com/molinju/send-price-bot/internal/market"
)

// Pair is one trading pair as reported by DexScreener.
type Pair struct {
	ChainID     string      `json:"chainId"`
	DexID       string      `json:"dexId"`
	BaseToken   Token       `json:"baseToken"`
	QuoteToken  Token       `json:"quoteToken"`
	PriceUsd    string      `json:"priceUsd"`
	PriceChange PriceChange `json:"priceChange"`
	Volume      Volume      `json:"volume"`
	Liquidity   *Liquidity  `json:"liquidity"`
}

// Token identifies one side of a pair.
type Token struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// PriceChange holds percentage moves over fixed windows.
type PriceChange struct {
	H24 *float64 `json:"h24"`
}

// Volume holds traded volume over fixed windows.
type Volume struct {
	H24 *float64 `json:"h24"`
}

// Liquidity holds pool depth figures.
type Liquidity struct {
	USD   *float64 `json:"usd"`
	Base  float64  `json:"base"`
	Quote float64  `json:"quote"`
}

type tokenPairsResponse struct {
	SchemaVersion string `json:"schemaVersion"`
	Pairs         []Pair `json:"pairs"`
}

// TokenPairs returns every pair DexScreener lists for a token contract.
// A token without pairs yields an empty slice, not an error.
func (c *Client) TokenPairs(ctx context.Context, contract string) ([]Pair, error) {
	u := fmt.Sprintf("%s/tokens/%s", c.baseURL, url.PathEscape(contract))
	var body tokenPairsResponse
	if err := c.fetcher.GetJSON(ctx, u, &body); err != nil {
		return nil, fmt.Errorf("dexscreener: %w", err)
	}
	return body.Pairs, nil
}

// BestPair fetches the contract's pairs and projects the strongest match
// for the chain. It returns nil when nothing matches.
func (c *Client) BestPair(ctx context.Context, chain, contract string) (*market.PairInfo, error) {
	pairs, err := c.TokenPairs(ctx, contract)
	if err != nil {
		return nil, err
	}
	return Select(pairs, chain)
}
