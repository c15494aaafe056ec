package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentPlan describes a recurring monthly investment. It is immutable
// once submitted: the simulator never mutates it and derives all state from
// its own walk.
type InvestmentPlan struct {
	// Coins holds one or more lowercase coin slugs. For multi-coin plans the
	// monthly amount is split evenly across them.
	Coins []string
	// StartDate anchors the first period: the walk starts at
	// (StartDate.Year, StartDate.Month, DayOfMonth).
	StartDate time.Time
	// DayOfMonth is the target investment day, 1-31. Days beyond a month's
	// length are clamped to that month's last day for that period only.
	DayOfMonth int
	// MonthlyAmount is the total amount invested per period, in Currency.
	MonthlyAmount decimal.Decimal
	// Currency is the fiat reference currency slug, e.g. "eur".
	Currency string
	// CurrentPrice optionally carries a price the caller already resolved for
	// the first coin, so the simulator can skip one lookup. Zero means
	// "resolve it".
	CurrentPrice decimal.Decimal
}

// Validate rejects degenerate plans before any price lookup happens.
func (p *InvestmentPlan) Validate() error {
	if len(p.Coins) == 0 {
		return fmt.Errorf("plan must select at least one coin")
	}
	for _, coin := range p.Coins {
		if NormalizeSlug(coin) == "" {
			return fmt.Errorf("plan contains an empty coin identifier")
		}
	}
	if p.DayOfMonth < 1 || p.DayOfMonth > 31 {
		return fmt.Errorf("day of month must be between 1 and 31, got %d", p.DayOfMonth)
	}
	if p.MonthlyAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("monthly amount must be positive, got %s", p.MonthlyAmount.String())
	}
	if NormalizeSlug(p.Currency) == "" {
		return fmt.Errorf("plan currency is required")
	}
	if p.StartDate.IsZero() {
		return fmt.Errorf("plan start date is required")
	}
	return nil
}

// PerCoinAmount returns the monthly amount allocated to each coin.
// Call only after Validate: an empty coin set would divide by zero.
func (p *InvestmentPlan) PerCoinAmount() decimal.Decimal {
	return p.MonthlyAmount.Div(decimal.NewFromInt(int64(len(p.Coins))))
}

// ClampedDate builds the investment date for a given month, pulling the plan
// day back to the month's last day when the month is shorter. The clamp
// applies per month: day 30 lands on Feb 29 in a leap year and back on
// Mar 30 the month after.
func ClampedDate(year int, month time.Month, day int) time.Time {
	if last := DaysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
