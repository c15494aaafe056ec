package domain

import "strings"

// ReferenceCoin is the default unit used to express a holding's value
// for cross-coin comparison.
const ReferenceCoin = "btc"

// DefaultWatchlist lists the coins shown on the watchlist screen.
// Identifiers are CoinGecko slugs.
var DefaultWatchlist = []string{
	"bitcoin",
	"ethereum",
	"solana",
	"cardano",
	"tether",
	"dogecoin",
	"tron",
}

// TickerSymbols maps pricing-API slugs to exchange ticker bases, for
// pricers that speak exchange symbols ("BTCEUR") instead of slugs.
var TickerSymbols = map[string]string{
	"bitcoin":  "BTC",
	"ethereum": "ETH",
	"solana":   "SOL",
	"cardano":  "ADA",
	"tether":   "USDT",
	"dogecoin": "DOGE",
	"tron":     "TRX",
	"ripple":   "XRP",
	"polkadot": "DOT",
}

// NormalizeSlug lowercases a coin or currency identifier.
// The pricing API expects lowercase slugs ("bitcoin", "eur", "btc").
func NormalizeSlug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TickerSymbol returns the exchange ticker base for a slug, or ok=false for
// coins the exchange pricers do not know.
func TickerSymbol(slug string) (string, bool) {
	sym, ok := TickerSymbols[NormalizeSlug(slug)]
	return sym, ok
}
