package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/revtradingpros/backend/internal/contracts"
)

func streakTrades(pnls ...float64) []contracts.TradeRecord {
	trades := make([]contracts.TradeRecord, 0, len(pnls))
	for i, pnl := range pnls {
		trades = append(trades, closedTrade("AAPL", day(2026, 6, i+1), pnl, pnl/100))
	}
	return trades
}

func TestAnalyzeStreaks(t *testing.T) {
	// W W W L L W
	out := AnalyzeStreaks(streakTrades(10, 20, 5, -3, -7, 12))

	assert.Equal(t, 1, out.CurrentStreak)
	assert.Equal(t, contracts.ResultWin, out.CurrentStreakType)
	assert.Equal(t, 3, out.MaxWinStreak)
	assert.Equal(t, 2, out.MaxLossStreak)
	assert.InDelta(t, 2.0, out.AvgWinStreak, 1e-9) // runs of 3 and 1
	assert.InDelta(t, 2.0, out.AvgLossStreak, 1e-9)
}

func TestAnalyzeStreaks_CurrentLossRun(t *testing.T) {
	out := AnalyzeStreaks(streakTrades(10, -3, -7, -2))

	assert.Equal(t, 3, out.CurrentStreak)
	assert.Equal(t, contracts.ResultLoss, out.CurrentStreakType)
	assert.Equal(t, 1, out.MaxWinStreak)
	assert.Equal(t, 3, out.MaxLossStreak)
}

func TestAnalyzeStreaks_Empty(t *testing.T) {
	out := AnalyzeStreaks(nil)

	assert.Zero(t, out.CurrentStreak)
	assert.Empty(t, out.CurrentStreakType)
	assert.Zero(t, out.MaxWinStreak)
	assert.Zero(t, out.MaxLossStreak)
}

func TestAnalyzeStreaks_BreakevenCountsAsLoss(t *testing.T) {
	out := AnalyzeStreaks(streakTrades(10, 0))

	assert.Equal(t, contracts.ResultLoss, out.CurrentStreakType)
	assert.Equal(t, 1, out.MaxLossStreak)
}

func TestAnalyzeStreaks_LengthConservation(t *testing.T) {
	pnls := []float64{5, -1, -2, 8, 8, -4, 3, 3, 3, -9}
	out := AnalyzeStreaks(streakTrades(pnls...))

	// Sum of mean*count per side recovers the closed-trade count:
	// avg streak length times streak count equals trades on that side.
	// Here: win runs 1,2,3 and loss runs 2,1,1.
	assert.InDelta(t, 2.0, out.AvgWinStreak, 1e-9)
	assert.InDelta(t, 4.0/3.0, out.AvgLossStreak, 1e-9)
	assert.Equal(t, 3, out.MaxWinStreak)
	assert.Equal(t, 2, out.MaxLossStreak)
	assert.Equal(t, 1, out.CurrentStreak)
	assert.Equal(t, contracts.ResultLoss, out.CurrentStreakType)
}
