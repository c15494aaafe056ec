package internal

import (
	"fmt"
	"os"

	"github.com/dripfolio/dripfolio/config"
	"github.com/dripfolio/dripfolio/internal/clients"
	"github.com/dripfolio/dripfolio/internal/services/pricer"
)

// NewPricer is the single point of truth for dispatching to the
// platform-specific price source.
//
// Exchange platforms read their credentials from the environment:
// BINANCE_API_KEY / BINANCE_API_SECRET and BYBIT_API_KEY / BYBIT_API_SECRET.
// Bybit serves current prices only, so its historical side is routed to
// CoinGecko through a Split.
func NewPricer(cfg config.Config) (pricer.Pricer, error) {
	switch cfg.Platform {
	case "coingecko":
		return pricer.NewCoinGeckoPricer(cfg.CoinGeckoAPIKey, cfg.Currency), nil

	case "binance":
		client := clients.NewBinanceClient(os.Getenv("BINANCE_API_KEY"), os.Getenv("BINANCE_API_SECRET"))
		return pricer.NewBinancePricer(client, cfg.Currency), nil

	case "bybit":
		client := clients.NewBybitClient(os.Getenv("BYBIT_API_KEY"), os.Getenv("BYBIT_API_SECRET"))
		return pricer.NewSplit(
			pricer.NewBybitPricer(client),
			pricer.NewCoinGeckoPricer(cfg.CoinGeckoAPIKey, cfg.Currency),
		), nil

	case "simulate":
		return pricer.NewSimulatePricer(), nil

	default:
		return nil, fmt.Errorf("unsupported platform: %s", cfg.Platform)
	}
}
