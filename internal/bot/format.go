package bot

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/molinju/send-price-bot/internal/market"
)

// IndicatorCircle maps a 24h change to the headline indicator. Nil and
// near-zero changes are neutral.
func IndicatorCircle(chg *float64) string {
	if chg == nil || math.Abs(*chg) < 1e-9 {
		return "⚪"
	}
	if *chg > 0 {
		return "🟢"
	}
	return "🔴"
}

// TrendEmoji maps a 24h change to its tier. Boundaries are inclusive
// on the side closer to zero: +50 is still the plane, -50 still the
// ambulance. A change of exactly zero has no tier.
func TrendEmoji(chg *float64) string {
	if chg == nil {
		return ""
	}
	c := *chg
	switch {
	case c > 50:
		return "🚀"
	case c > 25:
		return "✈️"
	case c > 10:
		return "🚁"
	case c > 0:
		return "🚚"
	case c < -50:
		return "🏥"
	case c < -25:
		return "🚑"
	case c < -10:
		return "🤕"
	case c < 0:
		return "🩹"
	}
	return ""
}

// FormatPair renders the Markdown reply for a selected trading pair.
func FormatPair(info *market.PairInfo, now time.Time) string {
	circle := IndicatorCircle(info.Change24h)
	tier := TrendEmoji(info.Change24h)

	chgTxt := "N/D"
	if info.Change24h != nil {
		chgTxt = fmt.Sprintf("%.2f%%", *info.Change24h)
	}
	volLine := "• Vol 24h: N/D"
	if info.Volume24h != nil {
		volLine = "• Vol 24h: $" + formatAmount(*info.Volume24h)
	}
	// sic: the label switches language when the value is missing.
	liqLine := "• Liquidez: N/D"
	if info.LiquidityUSD != nil {
		liqLine = "• Liquidity: $" + formatAmount(*info.LiquidityUSD)
	}

	lines := []string{
		fmt.Sprintf("*%s/%s* — %s • %s — %s",
			info.BaseSymbol, info.QuoteSymbol, info.ChainID, info.DexID, formatStamp(now)),
		fmt.Sprintf("%s $%.8f", circle, info.PriceUSD),
		fmt.Sprintf("• 24h: %s %s", tier, chgTxt),
		volLine,
		liqLine,
		"_DexScreener_",
	}
	return strings.Join(lines, "\n")
}

// FormatCoin renders the Markdown reply for the flat coin stats feed,
// stamped with the feed's own update time.
func FormatCoin(price *market.CoinPrice) string {
	supplyLine := "• Supply: N/D"
	if price.Supply != nil {
		supplyLine = "• Supply: " + formatAmount(*price.Supply)
	}

	lines := []string{
		fmt.Sprintf("*%s* — %s", price.Symbol, formatStamp(price.UpdatedAt)),
		fmt.Sprintf("$%.8f", price.PriceUSD),
		supplyLine,
	}
	for _, mp := range price.MakerPrices {
		lines = append(lines, fmt.Sprintf("• %s: $%.8f", mp.Maker, mp.PriceUSD))
	}
	lines = append(lines, "_CoinStats_")
	return strings.Join(lines, "\n")
}

func formatStamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04") + " UTC"
}

var numberPrinter = message.NewPrinter(language.English)

// formatAmount groups thousands with commas, keeping at most two
// decimals.
func formatAmount(v float64) string {
	return numberPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}
