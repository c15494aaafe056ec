// Package analytics reduces processed investment records to the numeric
// series a chart needs: dated portfolio values, ROI percentages and a
// smoothed overlay. No pixels are produced here.
package analytics

import (
	"time"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
	"github.com/shopspring/decimal"

	"github.com/dripfolio/dripfolio/internal/domain"
)

const (
	labelLayout = "Jan 02, 2006"

	// smaPeriod is the window of the smoothed overlay.
	smaPeriod = 3
)

// Point is one chart entry: the portfolio's value and ROI on one period
// date, valued at that date's own historical prices.
type Point struct {
	Date       time.Time       `json:"date"`
	Label      string          `json:"label"`
	Value      decimal.Decimal `json:"value"`
	Invested   decimal.Decimal `json:"invested"`
	ROIPercent decimal.Decimal `json:"roi_percent"`
}

// Series is the chart-ready view of one simulation.
type Series struct {
	Points []Point `json:"points"`
	// SMA is the smoothed value overlay. It is shorter than Points by
	// smaPeriod-1 entries and aligns with the series tail; empty when the
	// series has too few points.
	SMA []decimal.Decimal `json:"sma,omitempty"`
}

// BuildSeries folds processed records into per-date portfolio points. Dates
// keep first-appearance order, which is chronological because each coin
// group is chronological and all coins of one plan share the same walk.
func BuildSeries(processed []domain.ProcessedInvestmentRecord) Series {
	type bucket struct {
		date     time.Time
		value    decimal.Decimal
		invested decimal.Decimal
	}

	order := make([]string, 0)
	buckets := make(map[string]*bucket)

	for _, rec := range processed {
		key := rec.Date.Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{date: rec.Date, value: decimal.Zero, invested: decimal.Zero}
			buckets[key] = b
			order = append(order, key)
		}
		b.value = b.value.Add(rec.AccumulatedQuantity.Mul(rec.HistoricalPrice))
		b.invested = b.invested.Add(rec.AccumulatedInvested)
	}

	points := make([]Point, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		points = append(points, Point{
			Date:       b.date,
			Label:      b.date.Format(labelLayout),
			Value:      b.value,
			Invested:   b.invested,
			ROIPercent: domain.ROI(b.value, b.invested),
		})
	}

	return Series{
		Points: points,
		SMA:    smoothedValues(points),
	}
}

// smoothedValues computes the SMA overlay of the value series.
func smoothedValues(points []Point) []decimal.Decimal {
	if len(points) < smaPeriod {
		return nil
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i], _ = p.Value.Float64()
	}

	sma := trend.NewSmaWithPeriod[float64](smaPeriod)
	smoothed := helper.ChanToSlice(sma.Compute(helper.SliceToChan(values)))

	out := make([]decimal.Decimal, len(smoothed))
	for i, v := range smoothed {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}
