package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CoinSummary is one row per coin, taken from the coin's latest processed
// record and valued at today's prices.
type CoinSummary struct {
	Coin         string          `json:"coin"`
	Quantity     decimal.Decimal `json:"quantity"`
	Invested     decimal.Decimal `json:"invested"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	ValueToday   decimal.Decimal `json:"value_today"`
	// ReferenceValue expresses the holding in the reference coin (e.g. BTC),
	// via a cross-rate lookup. Zero when the rate is unavailable.
	ReferenceValue decimal.Decimal `json:"reference_value"`
}

// PortfolioStats aggregates the per-coin summaries into one portfolio row.
type PortfolioStats struct {
	TotalInvested decimal.Decimal `json:"total_invested"`
	TotalValue    decimal.Decimal `json:"total_value"`
	ROIPercent    decimal.Decimal `json:"roi_percent"`
}

// NewPortfolioStats sums the summaries and derives portfolio-level ROI.
func NewPortfolioStats(summaries []CoinSummary) PortfolioStats {
	totalInvested := decimal.Zero
	totalValue := decimal.Zero
	for _, s := range summaries {
		totalInvested = totalInvested.Add(s.Invested)
		totalValue = totalValue.Add(s.ValueToday)
	}
	return PortfolioStats{
		TotalInvested: totalInvested,
		TotalValue:    totalValue,
		ROIPercent:    ROI(totalValue, totalInvested),
	}
}

// WatchItem is one watchlist row. Coins whose price is unavailable keep
// their row with Available=false and a zero price instead of being dropped.
type WatchItem struct {
	Coin      string          `json:"coin"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Available bool            `json:"available"`
}

// SimulationRun is the journal entry written after a completed simulation.
type SimulationRun struct {
	ID            string          `json:"id"`
	Time          time.Time       `json:"time"`
	Coins         []string        `json:"coins"`
	Currency      string          `json:"currency"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	Periods       int             `json:"periods"`
	TotalInvested decimal.Decimal `json:"total_invested"`
	TotalValue    decimal.Decimal `json:"total_value"`
	ROIPercent    decimal.Decimal `json:"roi_percent"`
}

// SimulationRunRecord pairs a journal entry with its WAL index so readers
// can resume from where they left off.
type SimulationRunRecord struct {
	Index uint64        `json:"index"`
	Run   SimulationRun `json:"run"`
}
