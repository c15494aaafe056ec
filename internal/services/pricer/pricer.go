package pricer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Pricer resolves coin prices. Coin and currency identifiers are lowercase
// slugs ("bitcoin", "eur", "btc").
type Pricer interface {
	// GetCurrentPrice returns today's price of coin in currency. ok=false
	// means the price is absent (unsupported coin, upstream failure); absence
	// is an expected outcome, not an error, and degrades to zero value
	// downstream.
	GetCurrentPrice(ctx context.Context, coin, currency string) (price decimal.Decimal, ok bool, err error)

	// GetHistoricalPrice returns the price of coin on the given calendar day.
	// An error means the period has no resolvable price; the caller degrades
	// that period to quantity zero instead of aborting the simulation.
	GetHistoricalPrice(ctx context.Context, coin string, date time.Time) (decimal.Decimal, error)
}

// Split combines a current-price source (e.g. an exchange ticker) with a
// separate historical source. Exchange pricers serve spot prices only, so
// historical lookups are routed to a source that has day-level history.
type Split struct {
	current    Pricer
	historical Pricer
}

// NewSplit returns a Pricer routing current lookups to current and
// historical lookups to historical.
func NewSplit(current, historical Pricer) *Split {
	return &Split{current: current, historical: historical}
}

func (s *Split) GetCurrentPrice(ctx context.Context, coin, currency string) (decimal.Decimal, bool, error) {
	return s.current.GetCurrentPrice(ctx, coin, currency)
}

func (s *Split) GetHistoricalPrice(ctx context.Context, coin string, date time.Time) (decimal.Decimal, error) {
	return s.historical.GetHistoricalPrice(ctx, coin, date)
}
