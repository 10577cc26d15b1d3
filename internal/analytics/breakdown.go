package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/revtradingpros/backend/internal/contracts"
)

// tickerAccum collects one linear pass of per-ticker sums
type tickerAccum struct {
	trades             int64
	wins               int64
	losses             int64
	totalPnL           float64
	totalPnLPercent    float64
	holdingDays        float64
	largestWinPercent  float64
	largestLossPercent float64
}

// TickerBreakdown aggregates closed trades by ticker symbol, descending
// by total pnl.
func TickerBreakdown(trades []contracts.TradeRecord) []TickerPerformance {
	accum := make(map[string]*tickerAccum)

	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}

		a, ok := accum[t.Ticker]
		if !ok {
			a = &tickerAccum{}
			accum[t.Ticker] = a
		}

		a.trades++
		if t.IsWin() {
			a.wins++
		} else if t.IsLoss() {
			a.losses++
		}
		a.totalPnL += t.PnLValue()
		a.totalPnLPercent += t.PnLPercentValue()
		a.holdingDays += float64(t.HoldingDaysValue())

		pct := t.PnLPercentValue()
		if pct > 0 && pct > a.largestWinPercent {
			a.largestWinPercent = pct
		}
		if pct < 0 && math.Abs(pct) > a.largestLossPercent {
			a.largestLossPercent = math.Abs(pct)
		}
	}

	out := make([]TickerPerformance, 0, len(accum))
	for ticker, a := range accum {
		out = append(out, TickerPerformance{
			Ticker:             ticker,
			TotalTrades:        a.trades,
			Wins:               a.wins,
			Losses:             a.losses,
			WinRate:            ratePercent(a.wins, a.trades),
			TotalPnL:           a.totalPnL,
			TotalPnLPercent:    a.totalPnLPercent,
			AvgPnL:             a.totalPnL / float64(a.trades),
			AvgPnLPercent:      a.totalPnLPercent / float64(a.trades),
			AvgHoldingDays:     a.holdingDays / float64(a.trades),
			LargestWinPercent:  a.largestWinPercent,
			LargestLossPercent: a.largestLossPercent,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].TotalPnL > out[j].TotalPnL })
	return out
}

// SetupBreakdown aggregates closed trades by setup label, descending by
// trade count. Trades without a setup fall into "Unknown".
//
// The per-setup profit factor is back-derived from the aggregated avg
// pnl rather than accumulated per trade, preserving the numbers the
// existing dashboards were built against. Infinity is reported as the
// documented cap.
func SetupBreakdown(trades []contracts.TradeRecord) []SetupPerformance {
	type setupAccum struct {
		trades   int64
		wins     int64
		losses   int64
		totalPnL float64
	}

	accum := make(map[string]*setupAccum)

	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}

		label := t.SetupLabel()
		a, ok := accum[label]
		if !ok {
			a = &setupAccum{}
			accum[label] = a
		}

		a.trades++
		if t.IsWin() {
			a.wins++
		} else if t.IsLoss() {
			a.losses++
		}
		a.totalPnL += t.PnLValue()
	}

	out := make([]SetupPerformance, 0, len(accum))
	for setup, a := range accum {
		avgPnL := a.totalPnL / float64(a.trades)

		grossProfit := 0.0
		if avgPnL > 0 {
			grossProfit = avgPnL * float64(a.wins)
		}
		var grossLoss float64
		if avgPnL < 0 {
			grossLoss = math.Abs(avgPnL) * float64(a.losses)
		} else {
			grossLoss = math.Abs(a.totalPnL) - math.Abs(grossProfit)
		}

		profitFactor := 0.0
		switch {
		case grossLoss > 0:
			profitFactor = grossProfit / grossLoss
		case grossProfit > 0:
			profitFactor = math.Inf(1)
		}
		if math.IsInf(profitFactor, 1) {
			profitFactor = setupProfitFactorCap
		}

		out = append(out, SetupPerformance{
			Setup:        setup,
			TotalTrades:  a.trades,
			Wins:         a.wins,
			Losses:       a.losses,
			WinRate:      ratePercent(a.wins, a.trades),
			TotalPnL:     a.totalPnL,
			AvgPnL:       avgPnL,
			ProfitFactor: profitFactor,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].TotalTrades > out[j].TotalTrades })
	return out
}

// MonthlyBreakdown aggregates closed trades by (year, month) of exit
// date, newest month first.
func MonthlyBreakdown(trades []contracts.TradeRecord) []MonthlyPerformance {
	type monthKey struct {
		year  int
		month time.Month
	}
	type monthAccum struct {
		trades     int64
		wins       int64
		losses     int64
		pnl        float64
		pnlPercent float64
	}

	accum := make(map[monthKey]*monthAccum)

	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}

		key := monthKey{year: t.ExitDate.Year(), month: t.ExitDate.Month()}
		a, ok := accum[key]
		if !ok {
			a = &monthAccum{}
			accum[key] = a
		}

		a.trades++
		if t.IsWin() {
			a.wins++
		} else if t.IsLoss() {
			a.losses++
		}
		a.pnl += t.PnLValue()
		a.pnlPercent += t.PnLPercentValue()
	}

	out := make([]MonthlyPerformance, 0, len(accum))
	for key, a := range accum {
		out = append(out, MonthlyPerformance{
			Year:        key.year,
			Month:       int(key.month),
			MonthName:   key.month.String(),
			TotalTrades: a.trades,
			Wins:        a.wins,
			Losses:      a.losses,
			WinRate:     ratePercent(a.wins, a.trades),
			PnL:         a.pnl,
			PnLPercent:  a.pnlPercent,
			IsPositive:  a.pnl > 0,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out
}

// ratePercent returns 100*part/total, 0 when total is 0
func ratePercent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100.0
}
