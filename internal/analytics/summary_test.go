package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revtradingpros/backend/internal/contracts"
)

func TestSummarize_WinRate(t *testing.T) {
	// 7 wins, 3 losses
	var trades []contracts.TradeRecord
	base := day(2026, 4, 1)
	for i := 0; i < 7; i++ {
		trades = append(trades, closedTrade("AAPL", base.AddDate(0, 0, i), 10, 2))
	}
	for i := 0; i < 3; i++ {
		trades = append(trades, closedTrade("AAPL", base.AddDate(0, 0, 7+i), -5, -1))
	}

	summary := Summarize(trades, 0)

	assert.Equal(t, int64(10), summary.TotalTrades)
	assert.InDelta(t, 70.0, summary.WinRate, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, 12)

	assert.Equal(t, int64(12), summary.TotalAlerts)
	assert.Equal(t, int64(0), summary.TotalTrades)
	assert.Zero(t, summary.WinRate)
	assert.Zero(t, float64(summary.ProfitFactor))
	assert.Zero(t, summary.SharpeRatio)
	assert.Zero(t, summary.MaxDrawdown)
	assert.Zero(t, summary.Expectancy)
}

func TestSummarize_AllWinsProfitFactorIsInfinite(t *testing.T) {
	var trades []contracts.TradeRecord
	base := day(2026, 4, 1)
	for i := 0; i < 5; i++ {
		trades = append(trades, closedTrade("NVDA", base.AddDate(0, 0, i), 20, 4))
	}

	summary := Summarize(trades, 0)

	assert.True(t, summary.ProfitFactor.IsInf())
	assert.InDelta(t, 100.0, summary.WinRate, 1e-9)
}

func TestSummarize_NoWinsProfitFactorIsZero(t *testing.T) {
	trades := []contracts.TradeRecord{
		closedTrade("AAPL", day(2026, 4, 1), -10, -2),
		closedTrade("AAPL", day(2026, 4, 2), -15, -3),
	}

	summary := Summarize(trades, 0)

	assert.Zero(t, float64(summary.ProfitFactor))
}

func TestSummarize_ProfitFactor(t *testing.T) {
	trades := []contracts.TradeRecord{
		closedTrade("AAPL", day(2026, 4, 1), 30, 3),
		closedTrade("AAPL", day(2026, 4, 2), -10, -1),
	}

	summary := Summarize(trades, 0)

	assert.InDelta(t, 3.0, float64(summary.ProfitFactor), 1e-9)
}

func TestSummarize_WinRateBounds(t *testing.T) {
	cases := [][]contracts.TradeRecord{
		nil,
		{closedTrade("A", day(2026, 1, 5), 1, 1)},
		{closedTrade("A", day(2026, 1, 5), -1, -1)},
		{
			closedTrade("A", day(2026, 1, 5), 1, 1),
			closedTrade("A", day(2026, 1, 6), -1, -1),
			closedTrade("A", day(2026, 1, 7), 0, 0),
		},
	}

	for _, trades := range cases {
		summary := Summarize(trades, 0)
		assert.GreaterOrEqual(t, summary.WinRate, 0.0)
		assert.LessOrEqual(t, summary.WinRate, 100.0)
	}
}

func TestSummarize_BreakevenIsLoss(t *testing.T) {
	trades := []contracts.TradeRecord{
		closedTrade("AAPL", day(2026, 4, 1), 0, 0),
	}

	summary := Summarize(trades, 0)

	assert.Zero(t, summary.WinRate)
	assert.Equal(t, int64(1), summary.TotalTrades)
}

func TestSummarize_AveragesAndExtremes(t *testing.T) {
	trades := []contracts.TradeRecord{
		closedTrade("AAPL", day(2026, 4, 1), 10, 4),
		closedTrade("AAPL", day(2026, 4, 2), 20, 8),
		closedTrade("AAPL", day(2026, 4, 3), -5, -2),
		closedTrade("AAPL", day(2026, 4, 4), -15, -6),
	}

	summary := Summarize(trades, 0)

	assert.InDelta(t, 6.0, summary.AvgWinPercent, 1e-9)
	assert.InDelta(t, 4.0, summary.AvgLossPercent, 1e-9)
	assert.InDelta(t, 8.0, summary.LargestWinPercent, 1e-9)
	assert.InDelta(t, 6.0, summary.LargestLossPercent, 1e-9)
	assert.InDelta(t, 1.5, summary.RiskRewardRatio, 1e-9)

	// expectancy = 0.5*6 - 0.5*4 = 1
	assert.InDelta(t, 1.0, summary.Expectancy, 1e-9)
}

func TestSummarize_AvgHoldingDays(t *testing.T) {
	trades := []contracts.TradeRecord{
		closedTrade("AAPL", day(2026, 4, 1), 10, 2, withHoldingDays(2)),
		closedTrade("AAPL", day(2026, 4, 2), 10, 2, withHoldingDays(4)),
		closedTrade("AAPL", day(2026, 4, 3), 10, 2, withHoldingDays(6)),
	}

	summary := Summarize(trades, 0)

	assert.InDelta(t, 4.0, summary.AvgHoldingDays, 1e-9)
}

func TestSummarize_IgnoresOpenTrades(t *testing.T) {
	trades := []contracts.TradeRecord{
		closedTrade("AAPL", day(2026, 4, 1), 10, 2),
		openTrade("TSLA", day(2026, 4, 2)),
	}

	summary := Summarize(trades, 0)

	require.Equal(t, int64(1), summary.TotalTrades)
	assert.InDelta(t, 100.0, summary.WinRate, 1e-9)
}

func TestSummarize_TotalPnLConservation(t *testing.T) {
	trades := []contracts.TradeRecord{
		closedTrade("AAPL", day(2026, 4, 1), 12.5, 2),
		closedTrade("TSLA", day(2026, 4, 1), -7.25, -1),
		closedTrade("NVDA", day(2026, 4, 3), 3.75, 1),
	}

	summary := Summarize(trades, 0)

	assert.InDelta(t, 9.0, summary.TotalPnL, 1e-9)

	// Aggregated daily pnl must conserve the same total
	daily := AggregateDaily(trades)
	var dailySum float64
	for _, d := range daily {
		dailySum += d.PnL
	}
	assert.InDelta(t, summary.TotalPnL, dailySum, 1e-9)
}

func TestDateRange_Resolve(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)

	from, to := DateRange{}.Resolve(now)
	assert.Equal(t, day(2026, 8, 29), to)
	assert.Equal(t, day(2026, 8, 29).AddDate(0, 0, -365), from)

	customFrom := day(2026, 1, 1)
	customTo := day(2026, 6, 30)
	from, to = DateRange{From: &customFrom, To: &customTo}.Resolve(now)
	assert.Equal(t, customFrom, from)
	assert.Equal(t, customTo, to)
}
