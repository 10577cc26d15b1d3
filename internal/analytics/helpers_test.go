package analytics

import (
	"time"

	"github.com/revtradingpros/backend/internal/contracts"
)

var nextTradeID int64

// closedTrade builds a closed trade exiting on the given date
func closedTrade(ticker string, exitDate time.Time, pnl, pnlPercent float64, opts ...func(*contracts.TradeRecord)) contracts.TradeRecord {
	nextTradeID++
	result := contracts.ClassifyResult(pnl)
	holding := 3

	t := contracts.TradeRecord{
		ID:          nextTradeID,
		Ticker:      ticker,
		Direction:   contracts.DirectionLong,
		Quantity:    1,
		EntryDate:   exitDate.AddDate(0, 0, -holding),
		EntryPrice:  100,
		ExitDate:    &exitDate,
		PnL:         &pnl,
		PnLPercent:  &pnlPercent,
		Result:      &result,
		HoldingDays: &holding,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func withSetup(setup string) func(*contracts.TradeRecord) {
	return func(t *contracts.TradeRecord) {
		t.Setup = &setup
	}
}

func withHoldingDays(days int) func(*contracts.TradeRecord) {
	return func(t *contracts.TradeRecord) {
		t.HoldingDays = &days
	}
}

func openTrade(ticker string, entryDate time.Time) contracts.TradeRecord {
	nextTradeID++
	return contracts.TradeRecord{
		ID:         nextTradeID,
		Ticker:     ticker,
		Direction:  contracts.DirectionLong,
		Quantity:   1,
		EntryDate:  entryDate,
		EntryPrice: 100,
	}
}

func alert(alertType, ticker string, publishedAt time.Time) contracts.AlertRecord {
	nextTradeID++
	return contracts.AlertRecord{
		ID:          nextTradeID,
		AlertType:   alertType,
		Ticker:      ticker,
		PublishedAt: publishedAt,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
