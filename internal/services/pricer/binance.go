package pricer

import (
	"context"
	"strings"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/dripfolio/dripfolio/internal/domain"
)

// BinancePricer resolves prices from Binance public spot endpoints. Current
// prices come from the ticker, historical prices from the close of the
// day's 1d kline. Coins without an exchange symbol mapping are absent.
type BinancePricer struct {
	client *binance.Client
	// currency quotes historical lookups, which carry no currency of their
	// own in the contract (same approach as the CoinGecko pricer).
	currency string
}

func NewBinancePricer(client *binance.Client, currency string) *BinancePricer {
	return &BinancePricer{client: client, currency: domain.NormalizeSlug(currency)}
}

func (p *BinancePricer) GetCurrentPrice(ctx context.Context, coin, currency string) (decimal.Decimal, bool, error) {
	symbol, ok := binanceSymbol(coin, currency)
	if !ok {
		return decimal.Zero, false, nil
	}

	prices, err := p.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Zero, false, errors.Wrapf(err, "binance ticker for %s", symbol)
	}
	if len(prices) == 0 {
		return decimal.Zero, false, nil
	}

	price, err := decimal.NewFromString(prices[0].Price)
	if err != nil {
		return decimal.Zero, false, errors.Wrapf(err, "parse binance price for %s", symbol)
	}
	return price, true, nil
}

func (p *BinancePricer) GetHistoricalPrice(ctx context.Context, coin string, date time.Time) (decimal.Decimal, error) {
	symbol, ok := binanceSymbol(coin, p.currency)
	if !ok {
		return decimal.Zero, errors.Errorf("no binance symbol for coin %s", coin)
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	start := day.UnixMilli()
	end := day.Add(24 * time.Hour).UnixMilli()

	klines, err := p.client.NewKlinesService().
		Symbol(symbol).
		Interval("1d").
		StartTime(start).
		EndTime(end).
		Limit(1).
		Do(ctx)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "binance klines for %s", symbol)
	}
	if len(klines) == 0 {
		return decimal.Zero, errors.Errorf("binance has no kline for %s on %s", symbol, day.Format("2006-01-02"))
	}

	return decimal.NewFromString(klines[0].Close)
}

// binanceSymbol builds an exchange symbol like "BTCEUR" from slugs.
func binanceSymbol(coin, currency string) (string, bool) {
	base, ok := domain.TickerSymbol(coin)
	if !ok {
		return "", false
	}
	return base + strings.ToUpper(domain.NormalizeSlug(currency)), true
}
