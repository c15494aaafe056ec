// Package watchlist serves current prices for the tracked coin list.
package watchlist

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dripfolio/dripfolio/internal/domain"
	"github.com/dripfolio/dripfolio/internal/services/pricer"
)

// Service snapshots current prices for a fixed coin list. Unlike the
// simulation walk, the watchlist fans out one lookup per coin and joins on
// all of them before returning.
type Service struct {
	pricer   pricer.Pricer
	coins    []string
	currency string
	l        *zap.Logger
}

// NewService builds a watchlist over the given coins (domain.DefaultWatchlist
// when empty), quoted in currency.
func NewService(p pricer.Pricer, coins []string, currency string, l *zap.Logger) *Service {
	if len(coins) == 0 {
		coins = domain.DefaultWatchlist
	}
	normalized := make([]string, len(coins))
	for i, c := range coins {
		normalized[i] = domain.NormalizeSlug(c)
	}
	return &Service{
		pricer:   p,
		coins:    normalized,
		currency: domain.NormalizeSlug(currency),
		l:        l,
	}
}

// Snapshot fetches every coin's current price concurrently. A coin whose
// price is absent keeps its row with Available=false; the snapshot itself
// never fails on price absence.
func (s *Service) Snapshot(ctx context.Context) []domain.WatchItem {
	items := make([]domain.WatchItem, len(s.coins))

	g, ctx := errgroup.WithContext(ctx)
	for i, coin := range s.coins {
		g.Go(func() error {
			item := domain.WatchItem{Coin: coin, Currency: s.currency}

			price, ok, err := s.pricer.GetCurrentPrice(ctx, coin, s.currency)
			if err != nil {
				s.l.Warn("watchlist price lookup failed", zap.String("coin", coin), zap.Error(err))
			} else if ok {
				item.Price = price
				item.Available = true
			}

			items[i] = item
			return nil
		})
	}
	// workers only ever return nil; the join is what matters
	_ = g.Wait()

	return items
}
