package pricer

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/dripfolio/dripfolio/internal/domain"
)

// SimulatePricer serves prices from an in-memory table. Used for offline
// runs and as the deterministic pricer in tests.
type SimulatePricer struct {
	mu         sync.RWMutex
	current    map[string]decimal.Decimal // "coin/currency" -> price
	historical map[string]decimal.Decimal // "coin@2006-01-02" -> price
}

func NewSimulatePricer() *SimulatePricer {
	return &SimulatePricer{
		current:    make(map[string]decimal.Decimal),
		historical: make(map[string]decimal.Decimal),
	}
}

// SetCurrentPrice registers today's price of coin in currency.
func (p *SimulatePricer) SetCurrentPrice(coin, currency string, price decimal.Decimal) *SimulatePricer {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current[currentKey(coin, currency)] = price
	return p
}

// SetHistoricalPrice registers the price of coin on a calendar day.
func (p *SimulatePricer) SetHistoricalPrice(coin string, date time.Time, price decimal.Decimal) *SimulatePricer {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.historical[historicalKey(coin, date)] = price
	return p
}

func (p *SimulatePricer) GetCurrentPrice(_ context.Context, coin, currency string) (decimal.Decimal, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	price, ok := p.current[currentKey(coin, currency)]
	return price, ok, nil
}

func (p *SimulatePricer) GetHistoricalPrice(_ context.Context, coin string, date time.Time) (decimal.Decimal, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	price, ok := p.historical[historicalKey(coin, date)]
	if !ok {
		return decimal.Zero, errors.Errorf("no simulated price for %s on %s", coin, date.Format("2006-01-02"))
	}
	return price, nil
}

func currentKey(coin, currency string) string {
	return domain.NormalizeSlug(coin) + "/" + domain.NormalizeSlug(currency)
}

func historicalKey(coin string, date time.Time) string {
	return domain.NormalizeSlug(coin) + "@" + date.Format("2006-01-02")
}
