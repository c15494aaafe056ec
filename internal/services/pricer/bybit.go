package pricer

import (
	"context"
	"strings"
	"time"

	bybit "github.com/hirokisan/bybit/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/dripfolio/dripfolio/internal/domain"
)

// BybitPricer resolves current prices from Bybit spot tickers. Bybit is a
// current-price source only; wrap it in a Split with a historical source
// for simulation use.
type BybitPricer struct {
	client *bybit.Client
}

func NewBybitPricer(client *bybit.Client) *BybitPricer {
	return &BybitPricer{client: client}
}

func (p *BybitPricer) GetCurrentPrice(ctx context.Context, coin, currency string) (decimal.Decimal, bool, error) {
	base, ok := domain.TickerSymbol(coin)
	if !ok {
		return decimal.Zero, false, nil
	}
	symbol := bybit.SymbolV5(base + strings.ToUpper(domain.NormalizeSlug(currency)))

	result, err := p.client.V5().Market().GetTickers(bybit.V5GetTickersParam{
		Category: "spot",
		Symbol:   &symbol,
	})
	if err != nil {
		return decimal.Zero, false, errors.Wrapf(err, "bybit ticker for %s", symbol)
	}
	if len(result.Result.Spot.List) == 0 {
		return decimal.Zero, false, nil
	}

	price, err := decimal.NewFromString(result.Result.Spot.List[0].LastPrice)
	if err != nil {
		return decimal.Zero, false, errors.Wrapf(err, "parse bybit price for %s", symbol)
	}
	return price, true, nil
}

// GetHistoricalPrice is not served by Bybit here; day-precision history
// comes from the CoinGecko side of a Split.
func (p *BybitPricer) GetHistoricalPrice(_ context.Context, coin string, date time.Time) (decimal.Decimal, error) {
	return decimal.Zero, errors.Errorf("bybit pricer has no historical prices (%s at %s)", coin, date.Format("2006-01-02"))
}
