package analytics

import (
	"math"

	"github.com/revtradingpros/backend/internal/contracts"
)

// Summarize computes the high-level performance metrics over a room's
// closed trades. totalAlerts is carried through so an empty trade set
// still reports how many alerts were published.
func Summarize(trades []contracts.TradeRecord, totalAlerts int64) AnalyticsSummary {
	closed := closedTrades(trades)
	if len(closed) == 0 {
		return AnalyticsSummary{TotalAlerts: totalAlerts}
	}

	totalTrades := int64(len(closed))

	var wins, losses []contracts.TradeRecord
	for _, t := range closed {
		switch {
		case t.IsWin():
			wins = append(wins, t)
		case t.IsLoss():
			losses = append(losses, t)
		}
	}

	winRate := float64(len(wins)) / float64(totalTrades) * 100.0

	var totalPnL, totalPnLPercent float64
	for _, t := range closed {
		totalPnL += t.PnLValue()
		totalPnLPercent += t.PnLPercentValue()
	}

	var grossProfit, grossLoss float64
	for _, t := range wins {
		if pnl := t.PnLValue(); pnl > 0 {
			grossProfit += pnl
		}
	}
	for _, t := range losses {
		if pnl := t.PnLValue(); pnl < 0 {
			grossLoss += math.Abs(pnl)
		}
	}

	profitFactor := 0.0
	switch {
	case grossLoss > 0:
		profitFactor = grossProfit / grossLoss
	case grossProfit > 0:
		profitFactor = math.Inf(1)
	}

	avgWinPercent := 0.0
	if len(wins) > 0 {
		var sum float64
		for _, t := range wins {
			sum += t.PnLPercentValue()
		}
		avgWinPercent = sum / float64(len(wins))
	}

	avgLossPercent := 0.0
	if len(losses) > 0 {
		var sum float64
		for _, t := range losses {
			sum += math.Abs(t.PnLPercentValue())
		}
		avgLossPercent = sum / float64(len(losses))
	}

	var largestWinPercent, largestLossPercent float64
	for _, t := range closed {
		pct := t.PnLPercentValue()
		if pct > 0 && pct > largestWinPercent {
			largestWinPercent = pct
		}
		if pct < 0 && math.Abs(pct) > largestLossPercent {
			largestLossPercent = math.Abs(pct)
		}
	}

	riskRewardRatio := 0.0
	if avgLossPercent > 0 {
		riskRewardRatio = avgWinPercent / avgLossPercent
	}

	expectancy := (winRate/100.0)*avgWinPercent - ((100.0-winRate)/100.0)*avgLossPercent

	var holdingSum float64
	for _, t := range closed {
		holdingSum += float64(t.HoldingDaysValue())
	}
	avgHoldingDays := holdingSum / float64(totalTrades)

	daily := AggregateDaily(closed)
	sharpeRatio := SharpeRatio(daily)
	maxDrawdown, maxDrawdownPercent := MaxDrawdown(daily)

	return AnalyticsSummary{
		TotalAlerts:        totalAlerts,
		TotalTrades:        totalTrades,
		WinRate:            winRate,
		ProfitFactor:       ProfitFactor(profitFactor),
		SharpeRatio:        sharpeRatio,
		MaxDrawdown:        maxDrawdown,
		MaxDrawdownPercent: maxDrawdownPercent,
		AvgHoldingDays:     avgHoldingDays,
		TotalPnL:           totalPnL,
		TotalPnLPercent:    totalPnLPercent,
		AvgWinPercent:      avgWinPercent,
		AvgLossPercent:     avgLossPercent,
		LargestWinPercent:  largestWinPercent,
		LargestLossPercent: largestLossPercent,
		RiskRewardRatio:    riskRewardRatio,
		Expectancy:         expectancy,
	}
}
