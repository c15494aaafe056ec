package watchlist

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dripfolio/dripfolio/internal/services/pricer"
)

func TestSnapshot_ReturnsAllCoinsInOrder(t *testing.T) {
	p := pricer.NewSimulatePricer().
		SetCurrentPrice("bitcoin", "eur", decimal.NewFromInt(50000)).
		SetCurrentPrice("ethereum", "eur", decimal.NewFromInt(3000)).
		SetCurrentPrice("solana", "eur", decimal.NewFromInt(140))

	svc := NewService(p, []string{"Bitcoin", "Ethereum", "Solana"}, "EUR", zap.NewNop())

	items := svc.Snapshot(context.Background())
	require.Len(t, items, 3)
	require.Equal(t, "bitcoin", items[0].Coin)
	require.Equal(t, "ethereum", items[1].Coin)
	require.Equal(t, "solana", items[2].Coin)
	for _, item := range items {
		require.True(t, item.Available)
		require.False(t, item.Price.IsZero())
	}
}

func TestSnapshot_AbsentPriceKeepsRow(t *testing.T) {
	p := pricer.NewSimulatePricer().
		SetCurrentPrice("bitcoin", "eur", decimal.NewFromInt(50000))

	svc := NewService(p, []string{"bitcoin", "nocoin"}, "eur", zap.NewNop())

	items := svc.Snapshot(context.Background())
	require.Len(t, items, 2)

	require.True(t, items[0].Available)

	// the unknown coin stays in the list at zero value, never dropped
	require.Equal(t, "nocoin", items[1].Coin)
	require.False(t, items[1].Available)
	require.True(t, items[1].Price.IsZero())
}

func TestNewService_DefaultWatchlist(t *testing.T) {
	svc := NewService(pricer.NewSimulatePricer(), nil, "eur", zap.NewNop())
	items := svc.Snapshot(context.Background())
	require.Len(t, items, 7)
	require.Equal(t, "bitcoin", items[0].Coin)
}
