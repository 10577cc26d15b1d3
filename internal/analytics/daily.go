package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/revtradingpros/backend/internal/contracts"
)

// AggregateDaily buckets closed trades by exit date, summing pnl and
// pnl percent per date and threading running cumulative totals through
// the ascending date sequence. The final cumulative pnl equals the sum
// of pnl over all input trades.
func AggregateDaily(trades []contracts.TradeRecord) []DailyPnL {
	type bucket struct {
		pnl        float64
		pnlPercent float64
		count      int64
	}

	buckets := make(map[time.Time]*bucket)
	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		day := *t.ExitDate
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.pnl += t.PnLValue()
		b.pnlPercent += t.PnLPercentValue()
		b.count++
	}

	dates := make([]time.Time, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var cumulativePnL, cumulativePnLPercent float64
	daily := make([]DailyPnL, 0, len(dates))

	for _, d := range dates {
		b := buckets[d]
		cumulativePnL += b.pnl
		cumulativePnLPercent += b.pnlPercent

		daily = append(daily, DailyPnL{
			Date:                 d,
			PnL:                  b.pnl,
			PnLPercent:           b.pnlPercent,
			CumulativePnL:        cumulativePnL,
			CumulativePnLPercent: cumulativePnLPercent,
			TradeCount:           b.count,
		})
	}

	return daily
}

// BuildEquityCurve maps daily buckets onto the normalized equity curve:
// equity = startingEquity + cumulative pnl, with a never-decreasing peak
// and a non-negative drawdown against that peak.
func BuildEquityCurve(daily []DailyPnL) []EquityPoint {
	curve := make([]EquityPoint, 0, len(daily))
	peakEquity := 0.0

	for _, day := range daily {
		equity := startingEquity + day.CumulativePnL
		equityPercent := (day.CumulativePnL / startingEquity) * 100.0

		peakEquity = math.Max(peakEquity, equity)
		drawdown := peakEquity - equity
		drawdownPercent := 0.0
		if peakEquity > 0 {
			drawdownPercent = (drawdown / peakEquity) * 100.0
		}

		curve = append(curve, EquityPoint{
			Date:            day.Date,
			Equity:          equity,
			EquityPercent:   equityPercent,
			Drawdown:        drawdown,
			DrawdownPercent: drawdownPercent,
		})
	}

	return curve
}

// SharpeRatio computes the annualized Sharpe ratio from the daily pnl
// percent series. Returns 0 for fewer than two days or a flat series.
// Population variance; annualized by sqrt of trading days per year.
func SharpeRatio(daily []DailyPnL) float64 {
	if len(daily) < 2 {
		return 0
	}

	var sum float64
	for _, d := range daily {
		sum += d.PnLPercent
	}
	mean := sum / float64(len(daily))

	var variance float64
	for _, d := range daily {
		diff := d.PnLPercent - mean
		variance += diff * diff
	}
	variance /= float64(len(daily))

	stdDev := math.Sqrt(variance)
	if stdDev <= 0 {
		return 0
	}

	return (mean / stdDev) * math.Sqrt(tradingDaysPerYear)
}

// MaxDrawdown replays the equity curve once and returns the deepest
// drawdown observed, in dollars and percent. (0, 0) for an empty series.
func MaxDrawdown(daily []DailyPnL) (float64, float64) {
	if len(daily) == 0 {
		return 0, 0
	}

	peakEquity := startingEquity
	maxDrawdown := 0.0
	maxDrawdownPercent := 0.0

	for _, day := range daily {
		equity := startingEquity + day.CumulativePnL
		peakEquity = math.Max(peakEquity, equity)

		drawdown := peakEquity - equity
		drawdownPercent := 0.0
		if peakEquity > 0 {
			drawdownPercent = (drawdown / peakEquity) * 100.0
		}

		maxDrawdown = math.Max(maxDrawdown, drawdown)
		maxDrawdownPercent = math.Max(maxDrawdownPercent, drawdownPercent)
	}

	return maxDrawdown, maxDrawdownPercent
}
