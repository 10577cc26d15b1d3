package analytics

import (
	"github.com/revtradingpros/backend/internal/contracts"
)

// AnalyzeStreaks walks closed trades in exit-date order, measuring
// maximal runs of consecutive same-result trades. Completed runs are
// recorded on every result change; the final run becomes the current
// streak and is recorded as well, so the recorded streak lengths always
// sum to the number of closed trades.
func AnalyzeStreaks(trades []contracts.TradeRecord) StreakAnalysis {
	closed := closedTrades(trades)
	if len(closed) == 0 {
		return StreakAnalysis{}
	}

	var winStreaks, lossStreaks []int
	runLength := 0
	runType := ""
	maxWinStreak := 0
	maxLossStreak := 0

	record := func(length int, result string) {
		if result == contracts.ResultWin {
			winStreaks = append(winStreaks, length)
			if length > maxWinStreak {
				maxWinStreak = length
			}
		} else {
			lossStreaks = append(lossStreaks, length)
			if length > maxLossStreak {
				maxLossStreak = length
			}
		}
	}

	for _, t := range closed {
		result := contracts.ResultLoss
		if t.IsWin() {
			result = contracts.ResultWin
		}

		if result == runType {
			runLength++
			continue
		}

		if runLength > 0 {
			record(runLength, runType)
		}
		runType = result
		runLength = 1
	}

	// The still-open run is the current streak
	record(runLength, runType)

	return StreakAnalysis{
		CurrentStreak:     runLength,
		CurrentStreakType: runType,
		MaxWinStreak:      maxWinStreak,
		MaxLossStreak:     maxLossStreak,
		AvgWinStreak:      meanInt(winStreaks),
		AvgLossStreak:     meanInt(lossStreaks),
	}
}

// meanInt returns the mean of an int slice, 0 when empty
func meanInt(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
