package market

import (
	"fmt"
	"strings"
	"time"
)

// PairInfo is the normalized shape of the best trading pair for a token.
// Nullable fields stay nil when the upstream omits them so the message
// layer can tell "missing" apart from zero.
type PairInfo struct {
	ChainID      string   `json:"chain_id"`
	DexID        string   `json:"dex_id"`
	BaseSymbol   string   `json:"base_symbol"`
	QuoteSymbol  string   `json:"quote_symbol"`
	PriceUSD     float64  `json:"price_usd"`
	Change24h    *float64 `json:"change_24h"`
	Volume24h    *float64 `json:"volume_24h"`
	LiquidityUSD *float64 `json:"liquidity_usd"`
}

// CoinPrice is the normalized shape of a coin stats snapshot.
type CoinPrice struct {
	Symbol      string       `json:"symbol"`
	PriceUSD    float64      `json:"price_usd"`
	Supply      *float64     `json:"supply"`
	UpdatedAt   time.Time    `json:"updated_at"`
	MakerPrices []MakerPrice `json:"maker_prices"`
}

// MakerPrice is one market maker's quote within a CoinPrice snapshot.
type MakerPrice struct {
	Maker    string  `json:"maker"`
	PriceUSD float64 `json:"price_usd"`
}

// Key identifies one upstream lookup for caching purposes.
// Contract addresses are case-insensitive on every chain we query,
// so the constructor lower-cases them.
type Key struct {
	Provider string
	Chain    string
	Contract string
}

func NewKey(provider, chain, contract string) Key {
	return Key{
		Provider: provider,
		Chain:    chain,
		Contract: strings.ToLower(strings.TrimSpace(contract)),
	}
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Provider, k.Chain, k.Contract)
}
