package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revtradingpros/backend/internal/contracts"
)

func TestTickerBreakdown(t *testing.T) {
	trades := []contracts.TradeRecord{
		closedTrade("AAPL", day(2026, 5, 1), 100, 2),
		closedTrade("AAPL", day(2026, 5, 2), -40, -1),
		closedTrade("TSLA", day(2026, 5, 3), 300, 6),
		openTrade("NVDA", day(2026, 5, 4)),
	}

	out := TickerBreakdown(trades)

	require.Len(t, out, 2)

	// Sorted by total pnl descending
	assert.Equal(t, "TSLA", out[0].Ticker)
	assert.Equal(t, "AAPL", out[1].Ticker)

	aapl := out[1]
	assert.Equal(t, int64(2), aapl.TotalTrades)
	assert.Equal(t, int64(1), aapl.Wins)
	assert.Equal(t, int64(1), aapl.Losses)
	assert.InDelta(t, 50.0, aapl.WinRate, 1e-9)
	assert.InDelta(t, 60.0, aapl.TotalPnL, 1e-9)
	assert.InDelta(t, 30.0, aapl.AvgPnL, 1e-9)
	assert.InDelta(t, 2.0, aapl.LargestWinPercent, 1e-9)
	assert.InDelta(t, 1.0, aapl.LargestLossPercent, 1e-9)
}

func TestSetupBreakdown_UnknownBucket(t *testing.T) {
	trades := []contracts.TradeRecord{
		closedTrade("AAPL", day(2026, 5, 1), 100, 2, withSetup("Breakout")),
		closedTrade("TSLA", day(2026, 5, 2), 50, 1),
	}

	out := SetupBreakdown(trades)

	require.Len(t, out, 2)
	labels := []string{out[0].Setup, out[1].Setup}
	assert.Contains(t, labels, "Breakout")
	assert.Contains(t, labels, "Unknown")
}

func TestSetupBreakdown_ProfitFactorCapped(t *testing.T) {
	// All wins: gross loss back-derives to zero, so the factor caps
	trades := []contracts.TradeRecord{
		closedTrade("AAPL", day(2026, 5, 1), 100, 2, withSetup("Breakout")),
		closedTrade("AAPL", day(2026, 5, 2), 200, 4, withSetup("Breakout")),
	}

	out := SetupBreakdown(trades)

	require.Len(t, out, 1)
	assert.InDelta(t, setupProfitFactorCap, out[0].ProfitFactor, 1e-9)
}

func TestSetupBreakdown_AllLosses(t *testing.T) {
	trades := []contracts.TradeRecord{
		closedTrade("AAPL", day(2026, 5, 1), -100, -2, withSetup("Reversal")),
		closedTrade("AAPL", day(2026, 5, 2), -50, -1, withSetup("Reversal")),
	}

	out := SetupBreakdown(trades)

	require.Len(t, out, 1)
	assert.Zero(t, out[0].ProfitFactor)
	assert.InDelta(t, -150.0, out[0].TotalPnL, 1e-9)
}

func TestSetupBreakdown_SortedByTradeCount(t *testing.T) {
	trades := []contracts.TradeRecord{
		closedTrade("AAPL", day(2026, 5, 1), 10, 1, withSetup("Breakout")),
		closedTrade("AAPL", day(2026, 5, 2), 10, 1, withSetup("Breakout")),
		closedTrade("AAPL", day(2026, 5, 3), 10, 1, withSetup("Breakout")),
		closedTrade("TSLA", day(2026, 5, 4), 500, 10, withSetup("Earnings")),
	}

	out := SetupBreakdown(trades)

	require.Len(t, out, 2)
	assert.Equal(t, "Breakout", out[0].Setup)
	assert.Equal(t, "Earnings", out[1].Setup)
}

func TestMonthlyBreakdown(t *testing.T) {
	trades := []contracts.TradeRecord{
		closedTrade("AAPL", day(2026, 1, 15), 100, 2),
		closedTrade("AAPL", day(2026, 1, 20), -30, -1),
		closedTrade("TSLA", day(2025, 12, 10), -80, -2),
	}

	out := MonthlyBreakdown(trades)

	require.Len(t, out, 2)

	// Newest month first
	jan := out[0]
	assert.Equal(t, 2026, jan.Year)
	assert.Equal(t, 1, jan.Month)
	assert.Equal(t, "January", jan.MonthName)
	assert.Equal(t, int64(2), jan.TotalTrades)
	assert.InDelta(t, 70.0, jan.PnL, 1e-9)
	assert.True(t, jan.IsPositive)

	dec := out[1]
	assert.Equal(t, 2025, dec.Year)
	assert.Equal(t, 12, dec.Month)
	assert.False(t, dec.IsPositive)
}

func TestRatePercent(t *testing.T) {
	assert.Zero(t, ratePercent(3, 0))
	assert.InDelta(t, 75.0, ratePercent(3, 4), 1e-9)
}
