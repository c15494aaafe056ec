package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const percentageMultiplier = 100

// InvestmentRecord is one raw investment period for one coin: what was
// bought on that date and what that single purchase is worth today.
type InvestmentRecord struct {
	Date            time.Time       `json:"date"`
	Coin            string          `json:"coin"`
	InvestedAmount  decimal.Decimal `json:"invested_amount"`
	HistoricalPrice decimal.Decimal `json:"historical_price"`
	// Quantity is InvestedAmount / HistoricalPrice, or zero when no price
	// was available for the period.
	Quantity     decimal.Decimal `json:"quantity"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	// ROIPercent values this period's own purchase at today's price.
	ROIPercent decimal.Decimal `json:"roi_percent"`
}

// ProcessedInvestmentRecord carries running totals up through its period.
// Its ROI is valued at the period's own historical price, producing a
// point-in-time progress curve rather than a "sold today" snapshot.
type ProcessedInvestmentRecord struct {
	Date                time.Time       `json:"date"`
	Coin                string          `json:"coin"`
	AccumulatedInvested decimal.Decimal `json:"accumulated_invested"`
	AccumulatedQuantity decimal.Decimal `json:"accumulated_quantity"`
	HistoricalPrice     decimal.Decimal `json:"historical_price"`
	ROIPercent          decimal.Decimal `json:"roi_percent"`
}

// NewInvestmentRecord derives quantity and per-period ROI from the period's
// inputs. A missing historical price (zero) degrades to quantity zero
// instead of failing the whole walk.
func NewInvestmentRecord(date time.Time, coin string, amount, historicalPrice, currentPrice decimal.Decimal) InvestmentRecord {
	quantity := PurchasedQuantity(amount, historicalPrice)
	return InvestmentRecord{
		Date:            date,
		Coin:            coin,
		InvestedAmount:  amount,
		HistoricalPrice: historicalPrice,
		Quantity:        quantity,
		CurrentPrice:    currentPrice,
		ROIPercent:      ROI(quantity.Mul(currentPrice), amount),
	}
}

// PurchasedQuantity returns amount/price, or zero when the price is not
// positive. The zero-price case is the documented degradation for periods
// whose price could not be resolved.
func PurchasedQuantity(amount, price decimal.Decimal) decimal.Decimal {
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return amount.Div(price)
}

// ROI returns (currentValue - invested) / invested * 100, or zero when
// nothing was invested.
func ROI(currentValue, invested decimal.Decimal) decimal.Decimal {
	if invested.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return currentValue.Sub(invested).Div(invested).Mul(decimal.NewFromInt(percentageMultiplier))
}
