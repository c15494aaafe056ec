package simulator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dripfolio/dripfolio/internal/domain"
)

func rawRecord(coin string, d time.Time, amount, histPrice int64) domain.InvestmentRecord {
	return domain.NewInvestmentRecord(d, coin,
		decimal.NewFromInt(amount), decimal.NewFromInt(histPrice), decimal.NewFromInt(50000))
}

func TestAggregate_RunningTotalsArePrefixSums(t *testing.T) {
	records := []domain.InvestmentRecord{
		rawRecord("bitcoin", date(2024, time.January, 15), 100, 40000),
		rawRecord("bitcoin", date(2024, time.February, 15), 100, 42000),
		rawRecord("bitcoin", date(2024, time.March, 15), 100, 38000),
	}

	processed := Aggregate(records)
	require.Len(t, processed, 3)

	wantInvested := decimal.Zero
	wantQuantity := decimal.Zero
	for i, rec := range processed {
		wantInvested = wantInvested.Add(records[i].InvestedAmount)
		wantQuantity = wantQuantity.Add(records[i].Quantity)
		require.True(t, rec.AccumulatedInvested.Equal(wantInvested), "record %d invested", i)
		require.True(t, rec.AccumulatedQuantity.Equal(wantQuantity), "record %d quantity", i)
	}
}

func TestAggregate_ROIValuedAtPeriodOwnPrice(t *testing.T) {
	records := []domain.InvestmentRecord{
		rawRecord("bitcoin", date(2024, time.January, 15), 100, 40000),
		rawRecord("bitcoin", date(2024, time.February, 15), 100, 42000),
	}

	processed := Aggregate(records)

	// first period: 0.0025 BTC valued at 40000 is exactly the invested 100
	require.True(t, processed[0].ROIPercent.IsZero())

	// second period: (qty * 42000 - 200) / 200 * 100, not today's 50000
	qty := records[0].Quantity.Add(records[1].Quantity)
	want := qty.Mul(decimal.NewFromInt(42000)).
		Sub(decimal.NewFromInt(200)).
		Div(decimal.NewFromInt(200)).
		Mul(decimal.NewFromInt(100))
	require.True(t, processed[1].ROIPercent.Equal(want))
}

func TestAggregate_GroupsByCoinPreservingOrder(t *testing.T) {
	records := []domain.InvestmentRecord{
		rawRecord("ethereum", date(2024, time.January, 10), 50, 2000),
		rawRecord("ethereum", date(2024, time.February, 10), 50, 2500),
		rawRecord("bitcoin", date(2024, time.January, 10), 50, 40000),
	}

	processed := Aggregate(records)
	require.Len(t, processed, 3)
	require.Equal(t, "ethereum", processed[0].Coin)
	require.Equal(t, "ethereum", processed[1].Coin)
	require.Equal(t, "bitcoin", processed[2].Coin)

	// ethereum's totals never leak into bitcoin's group
	require.True(t, processed[2].AccumulatedInvested.Equal(decimal.NewFromInt(50)))
}

func TestAggregate_Idempotent(t *testing.T) {
	records := []domain.InvestmentRecord{
		rawRecord("bitcoin", date(2024, time.January, 15), 100, 40000),
		rawRecord("bitcoin", date(2024, time.February, 15), 100, 42000),
	}

	first := Aggregate(records)
	second := Aggregate(records)
	require.Equal(t, first, second)
}

func TestAggregate_Empty(t *testing.T) {
	require.Empty(t, Aggregate(nil))
	require.Empty(t, Aggregate([]domain.InvestmentRecord{}))
}

func TestAggregate_ZeroQuantityPeriodStillAccumulatesInvested(t *testing.T) {
	records := []domain.InvestmentRecord{
		rawRecord("bitcoin", date(2024, time.January, 15), 100, 40000),
		// missing price period: quantity zero by the degradation policy
		rawRecord("bitcoin", date(2024, time.February, 15), 100, 0),
	}
	require.True(t, records[1].Quantity.IsZero())

	processed := Aggregate(records)
	require.True(t, processed[1].AccumulatedInvested.Equal(decimal.NewFromInt(200)))
	require.True(t, processed[1].AccumulatedQuantity.Equal(records[0].Quantity))
}
