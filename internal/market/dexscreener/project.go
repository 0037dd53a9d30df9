package dexscreener

import (
	"fmt"
	"strconv"

	"github.com/molinju/send-price-bot/internal/market"
)

// Select picks the pair to quote: filter by chain when one is given,
// then take the deepest liquidity. Missing liquidity counts as zero and
// the first of tied pairs wins, so repeated calls pick the same pair.
// A nil result with a nil error means no pair matched.
func Select(pairs []Pair, chain string) (*market.PairInfo, error) {
	var candidates []Pair
	for _, p := range pairs {
		if chain != "" && p.ChainID != chain {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	best := candidates[0]
	for _, p := range candidates[1:] {
		if liquidityUSD(p) > liquidityUSD(best) {
			best = p
		}
	}

	price, err := parsePriceUSD(best.PriceUsd)
	if err != nil {
		return nil, err
	}

	info := &market.PairInfo{
		ChainID:     best.ChainID,
		DexID:       best.DexID,
		BaseSymbol:  best.BaseToken.Symbol,
		QuoteSymbol: best.QuoteToken.Symbol,
		PriceUSD:    price,
		Change24h:   best.PriceChange.H24,
		Volume24h:   best.Volume.H24,
	}
	if best.Liquidity != nil {
		info.LiquidityUSD = best.Liquidity.USD
	}
	return info, nil
}

func liquidityUSD(p Pair) float64 {
	if p.Liquidity == nil || p.Liquidity.USD == nil {
		return 0
	}
	return *p.Liquidity.USD
}

// parsePriceUSD follows the upstream contract: priceUsd arrives as a
// string, an empty one meaning "no price".
func parsePriceUSD(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing priceUsd %q: %w", s, err)
	}
	return v, nil
}
