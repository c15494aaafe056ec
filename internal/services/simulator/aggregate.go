package simulator

import (
	"github.com/shopspring/decimal"

	"github.com/dripfolio/dripfolio/internal/domain"
)

// Aggregate converts raw records into cumulative ones: per coin, in source
// order (already chronological from the walk), running sums of invested
// amount and quantity, with ROI valued at each period's own historical
// price. Pure function: same input, same output, recomputed from scratch.
func Aggregate(records []domain.InvestmentRecord) []domain.ProcessedInvestmentRecord {
	type running struct {
		invested decimal.Decimal
		quantity decimal.Decimal
	}

	totals := make(map[string]*running)
	order := make([]string, 0)
	grouped := make(map[string][]domain.InvestmentRecord)

	for _, rec := range records {
		if _, ok := grouped[rec.Coin]; !ok {
			order = append(order, rec.Coin)
			totals[rec.Coin] = &running{invested: decimal.Zero, quantity: decimal.Zero}
		}
		grouped[rec.Coin] = append(grouped[rec.Coin], rec)
	}

	processed := make([]domain.ProcessedInvestmentRecord, 0, len(records))
	for _, coin := range order {
		tot := totals[coin]
		for _, rec := range grouped[coin] {
			tot.invested = tot.invested.Add(rec.InvestedAmount)
			tot.quantity = tot.quantity.Add(rec.Quantity)

			processed = append(processed, domain.ProcessedInvestmentRecord{
				Date:                rec.Date,
				Coin:                coin,
				AccumulatedInvested: tot.invested,
				AccumulatedQuantity: tot.quantity,
				HistoricalPrice:     rec.HistoricalPrice,
				ROIPercent:          domain.ROI(tot.quantity.Mul(rec.HistoricalPrice), tot.invested),
			})
		}
	}

	return processed
}
