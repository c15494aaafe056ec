// Command dripfolio runs the recurring crypto investment simulator. It
// replays a monthly investment plan against historical prices and serves
// the results over HTTP.
//
// Usage:
//
//	dripfolio --config config.yaml
//	dripfolio --setup (launches the configuration wizard)
//	dripfolio (uses CLI arguments)
//
// Optional environment variables:
//
//	COINGECKO_API_KEY for the CoinGecko price source
//	For Binance: BINANCE_API_KEY, BINANCE_API_SECRET
//	For Bybit: BYBIT_API_KEY, BYBIT_API_SECRET
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dripfolio/dripfolio/config"
	"github.com/dripfolio/dripfolio/internal"
	"github.com/dripfolio/dripfolio/internal/setup"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--setup" || os.Args[1] == "-setup") {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		os.Args = []string{os.Args[0], "-config", "config.gen.yaml"}
	}

	conf, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	app, err := internal.NewApp(conf, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		logger.Fatal("simulator stopped", zap.Error(err))
	}
}
