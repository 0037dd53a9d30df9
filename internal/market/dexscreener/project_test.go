package dexscreener

import (
	"testing"
)

func TestSelect_FiltersByChain(t *testing.T) {
	pairs := []Pair{
		{ChainID: "base", DexID: "uniswap", PriceUsd: "1.5"},
		{ChainID: "solana", DexID: "raydium", PriceUsd: "2.0"},
	}
	got, err := Select(pairs, "solana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.DexID != "raydium" {
		t.Fatalf("unexpected selection: %+v", got)
	}
}

func TestSelect_EmptyChainMatchesEverything(t *testing.T) {
	pairs := []Pair{
		{ChainID: "base", DexID: "uniswap", PriceUsd: "1", Liquidity: &Liquidity{USD: toPtr(10.0)}},
		{ChainID: "solana", DexID: "raydium", PriceUsd: "2", Liquidity: &Liquidity{USD: toPtr(20.0)}},
	}
	got, err := Select(pairs, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ChainID != "solana" {
		t.Fatalf("want deepest pair across chains, got %+v", got)
	}
}

func TestSelect_PicksDeepestLiquidity_MissingCountsAsZero(t *testing.T) {
	pairs := []Pair{
		{ChainID: "base", DexID: "a", PriceUsd: "1"},
		{ChainID: "base", DexID: "b", PriceUsd: "1", Liquidity: &Liquidity{}},
		{ChainID: "base", DexID: "c", PriceUsd: "1", Liquidity: &Liquidity{USD: toPtr(5.0)}},
	}
	got, err := Select(pairs, "base")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.DexID != "c" {
		t.Fatalf("want the only pair with liquidity, got %+v", got)
	}
}

func TestSelect_FirstOfTiedPairsWins(t *testing.T) {
	pairs := []Pair{
		{ChainID: "base", DexID: "first", PriceUsd: "1", Liquidity: &Liquidity{USD: toPtr(5.0)}},
		{ChainID: "base", DexID: "second", PriceUsd: "1", Liquidity: &Liquidity{USD: toPtr(5.0)}},
	}
	got, err := Select(pairs, "base")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.DexID != "first" {
		t.Fatalf("ties must keep the first pair, got %+v", got)
	}
}

func TestSelect_NoCandidates(t *testing.T) {
	got, err := Select(nil, "base")
	if err != nil || got != nil {
		t.Fatalf("empty input: want (nil, nil), got (%+v, %v)", got, err)
	}

	got, err = Select([]Pair{{ChainID: "solana", PriceUsd: "1"}}, "base")
	if err != nil || got != nil {
		t.Fatalf("filtered out: want (nil, nil), got (%+v, %v)", got, err)
	}
}

func TestSelect_PriceHandling(t *testing.T) {
	// An absent price quotes as zero.
	got, err := Select([]Pair{{ChainID: "base"}}, "base")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.PriceUSD != 0 {
		t.Fatalf("missing priceUsd should quote 0, got %+v", got)
	}

	// A malformed price is a hard error, not a silent zero.
	_, err = Select([]Pair{{ChainID: "base", PriceUsd: "abc"}}, "base")
	if err == nil {
		t.Fatal("want error for malformed priceUsd")
	}
}

func TestSelect_KeepsNullableFields(t *testing.T) {
	chg := 12.5
	pairs := []Pair{{
		ChainID:     "base",
		DexID:       "uniswap",
		BaseToken:   Token{Symbol: "SEND"},
		QuoteToken:  Token{Symbol: "WETH"},
		PriceUsd:    "0.5",
		PriceChange: PriceChange{H24: &chg},
	}}
	got, err := Select(pairs, "base")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Change24h == nil || *got.Change24h != chg {
		t.Fatalf("change lost: %+v", got)
	}
	if got.Volume24h != nil || got.LiquidityUSD != nil {
		t.Fatalf("absent volume and liquidity must stay nil: %+v", got)
	}
	if got.BaseSymbol != "SEND" || got.QuoteSymbol != "WETH" {
		t.Fatalf("symbols lost: %+v", got)
	}
}

// toPtr is a small local helper to create pointers to literal values in tests.
func toPtr[T any](v T) *T { return &v }
