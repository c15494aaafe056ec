// Package simulator implements the DCA simulation core: the calendar-month
// period walk, cumulative aggregation and portfolio summaries.
package simulator

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dripfolio/dripfolio/internal/domain"
	"github.com/dripfolio/dripfolio/internal/services/pricer"
)

// Result is everything one plan submission produces. All collections are
// derived from scratch per run; nothing is shared between submissions.
type Result struct {
	Records    []domain.InvestmentRecord          `json:"records"`
	Processed  []domain.ProcessedInvestmentRecord `json:"processed"`
	Summaries  []domain.CoinSummary               `json:"summaries"`
	Portfolio  domain.PortfolioStats              `json:"portfolio"`
	HasRecords bool                               `json:"has_records"`
}

// Comparison holds two independently simulated results sharing plotting
// parameters. The alternative run never touches the base run's totals.
type Comparison struct {
	Base        *Result `json:"base"`
	Alternative *Result `json:"alternative"`
}

// Simulator turns investment plans into record sequences and summaries.
type Simulator struct {
	pricer  pricer.Pricer
	refCoin string
	l       *zap.Logger

	// now is the walk's end boundary; overridable for tests.
	now func() time.Time
}

// NewSimulator returns a simulator valuing cross-rates against refCoin
// (domain.ReferenceCoin when empty).
func NewSimulator(p pricer.Pricer, refCoin string, l *zap.Logger) *Simulator {
	if refCoin == "" {
		refCoin = domain.ReferenceCoin
	}
	return &Simulator{
		pricer:  p,
		refCoin: domain.NormalizeSlug(refCoin),
		l:       l,
		now:     time.Now,
	}
}

// Run validates the plan, walks every elapsed period for every coin and
// derives cumulative records, per-coin summaries and the portfolio total.
func (s *Simulator) Run(ctx context.Context, plan domain.InvestmentPlan) (*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid plan")
	}

	perCoin := plan.PerCoinAmount()
	today := s.today()

	records := make([]domain.InvestmentRecord, 0)
	for i, coin := range plan.Coins {
		coin = domain.NormalizeSlug(coin)
		currentPrice := s.resolveCurrentPrice(ctx, plan, i, coin)
		records = append(records, s.walkCoin(ctx, coin, plan, perCoin, currentPrice, today)...)
	}

	processed := Aggregate(records)
	summaries := s.buildSummaries(ctx, plan, processed)

	return &Result{
		Records:    records,
		Processed:  processed,
		Summaries:  summaries,
		Portfolio:  domain.NewPortfolioStats(summaries),
		HasRecords: len(records) > 0,
	}, nil
}

// Compare runs the pipeline independently for a second coin selection.
func (s *Simulator) Compare(ctx context.Context, base, alternative domain.InvestmentPlan) (*Comparison, error) {
	baseResult, err := s.Run(ctx, base)
	if err != nil {
		return nil, errors.Wrap(err, "base plan")
	}
	altResult, err := s.Run(ctx, alternative)
	if err != nil {
		return nil, errors.Wrap(err, "alternative plan")
	}
	return &Comparison{Base: baseResult, Alternative: altResult}, nil
}

// walkCoin emits one record per elapsed calendar month for one coin.
// Lookups are sequential: one call per period, awaited before the next.
func (s *Simulator) walkCoin(ctx context.Context, coin string, plan domain.InvestmentPlan,
	amount, currentPrice decimal.Decimal, today time.Time) []domain.InvestmentRecord {

	records := make([]domain.InvestmentRecord, 0)

	year, month := plan.StartDate.Year(), plan.StartDate.Month()
	for {
		cursor := domain.ClampedDate(year, month, plan.DayOfMonth)
		if cursor.After(today) {
			break
		}

		historical, err := s.pricer.GetHistoricalPrice(ctx, coin, cursor)
		if err != nil {
			// degrade this one period to quantity zero and keep walking
			s.l.Warn("historical price unavailable",
				zap.String("coin", coin),
				zap.Time("date", cursor),
				zap.Error(err))
			historical = decimal.Zero
		}

		records = append(records, domain.NewInvestmentRecord(cursor, coin, amount, historical, currentPrice))

		month++
		if month > time.December {
			month = time.January
			year++
		}
	}

	return records
}

// resolveCurrentPrice uses the plan's pre-resolved price for the primary
// coin when the caller supplied one, otherwise asks the pricer. Absence
// degrades to zero.
func (s *Simulator) resolveCurrentPrice(ctx context.Context, plan domain.InvestmentPlan, idx int, coin string) decimal.Decimal {
	if idx == 0 && plan.CurrentPrice.GreaterThan(decimal.Zero) {
		return plan.CurrentPrice
	}

	price, ok, err := s.pricer.GetCurrentPrice(ctx, coin, plan.Currency)
	if err != nil {
		s.l.Warn("current price lookup failed", zap.String("coin", coin), zap.Error(err))
		return decimal.Zero
	}
	if !ok {
		s.l.Warn("current price absent", zap.String("coin", coin))
		return decimal.Zero
	}
	return price
}

// buildSummaries reduces processed records to one row per coin (its latest
// record) and enriches each row with a reference-coin cross-rate. Coins
// whose prices never resolved keep their row at zero value.
func (s *Simulator) buildSummaries(ctx context.Context, plan domain.InvestmentPlan,
	processed []domain.ProcessedInvestmentRecord) []domain.CoinSummary {

	latest := make(map[string]domain.ProcessedInvestmentRecord, len(plan.Coins))
	for _, rec := range processed {
		// per-coin groups are chronological, the last one wins
		latest[rec.Coin] = rec
	}

	summaries := make([]domain.CoinSummary, 0, len(plan.Coins))
	for _, coin := range plan.Coins {
		coin = domain.NormalizeSlug(coin)
		last, ok := latest[coin]
		if !ok {
			continue
		}

		currentPrice := decimal.Zero
		if price, ok, err := s.pricer.GetCurrentPrice(ctx, coin, plan.Currency); err == nil && ok {
			currentPrice = price
		}

		crossRate := decimal.Zero
		if coin == s.refCoin {
			crossRate = decimal.NewFromInt(1)
		} else if rate, ok, err := s.pricer.GetCurrentPrice(ctx, coin, s.refCoin); err == nil && ok {
			crossRate = rate
		}

		summaries = append(summaries, domain.CoinSummary{
			Coin:           coin,
			Quantity:       last.AccumulatedQuantity,
			Invested:       last.AccumulatedInvested,
			CurrentPrice:   currentPrice,
			ValueToday:     last.AccumulatedQuantity.Mul(currentPrice),
			ReferenceValue: last.AccumulatedQuantity.Mul(crossRate),
		})
	}
	return summaries
}

// today truncates the walk boundary to the calendar day, so a plan whose
// next period is later today still counts today as elapsed.
func (s *Simulator) today() time.Time {
	n := s.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}
