package contracts

import (
	"fmt"
	"time"
)

// Trade result values recorded for closed trades.
// A breakeven trade (pnl exactly 0) classifies as LOSS, never WIN.
const (
	ResultWin  = "WIN"
	ResultLoss = "LOSS"
)

// Trade directions
const (
	DirectionLong  = "long"
	DirectionShort = "short"
)

// TradeRecord is a typed, immutable view over an externally fetched room
// trade row. Pointer fields are nil while the trade is still open.
type TradeRecord struct {
	ID          int64      `json:"id"`
	Ticker      string     `json:"ticker"`
	Direction   string     `json:"direction"`
	Quantity    float64    `json:"quantity"`
	EntryDate   time.Time  `json:"entry_date"`
	EntryPrice  float64    `json:"entry_price"`
	ExitDate    *time.Time `json:"exit_date,omitempty"`
	ExitPrice   *float64   `json:"exit_price,omitempty"`
	PnL         *float64   `json:"pnl,omitempty"`
	PnLPercent  *float64   `json:"pnl_percent,omitempty"`
	Result      *string    `json:"result,omitempty"`
	Setup       *string    `json:"setup,omitempty"`
	HoldingDays *int       `json:"holding_days,omitempty"`
}

// IsClosed reports whether the trade has been exited.
// A trade is closed iff exit date and pnl are both present.
func (t *TradeRecord) IsClosed() bool {
	return t.ExitDate != nil && t.PnL != nil
}

// IsWin reports whether the trade closed as a WIN
func (t *TradeRecord) IsWin() bool {
	return t.Result != nil && *t.Result == ResultWin
}

// IsLoss reports whether the trade closed as a LOSS
func (t *TradeRecord) IsLoss() bool {
	return t.Result != nil && *t.Result == ResultLoss
}

// PnLValue returns the realized P&L, 0 if the trade is open
func (t *TradeRecord) PnLValue() float64 {
	if t.PnL == nil {
		return 0
	}
	return *t.PnL
}

// PnLPercentValue returns the realized P&L percent, 0 if the trade is open
func (t *TradeRecord) PnLPercentValue() float64 {
	if t.PnLPercent == nil {
		return 0
	}
	return *t.PnLPercent
}

// SetupLabel returns the setup name, or "Unknown" when none was recorded
func (t *TradeRecord) SetupLabel() string {
	if t.Setup == nil || *t.Setup == "" {
		return "Unknown"
	}
	return *t.Setup
}

// HoldingDaysValue returns the holding period in days, 0 if unrecorded
func (t *TradeRecord) HoldingDaysValue() int {
	if t.HoldingDays == nil {
		return 0
	}
	return *t.HoldingDays
}

// ClassifyResult maps a realized pnl to its result label.
// pnl <= 0, including exactly 0, is LOSS.
func ClassifyResult(pnl float64) string {
	if pnl > 0 {
		return ResultWin
	}
	return ResultLoss
}

// Close fills the exit-side fields of an open trade: realized pnl
// (direction-aware), pnl percent relative to entry price, holding days,
// and the WIN/LOSS result.
func (t *TradeRecord) Close(exitDate time.Time, exitPrice float64) {
	pnl := (exitPrice - t.EntryPrice) * t.Quantity
	if t.Direction == DirectionShort {
		pnl = (t.EntryPrice - exitPrice) * t.Quantity
	}

	pnlPercent := 0.0
	if t.EntryPrice != 0 {
		pnlPercent = ((exitPrice - t.EntryPrice) / t.EntryPrice) * 100.0
	}

	holdingDays := int(exitDate.Sub(t.EntryDate).Hours() / 24)
	result := ClassifyResult(pnl)

	t.ExitDate = &exitDate
	t.ExitPrice = &exitPrice
	t.PnL = &pnl
	t.PnLPercent = &pnlPercent
	t.HoldingDays = &holdingDays
	t.Result = &result
}

// Validate checks the record invariants
func (t *TradeRecord) Validate() error {
	if t.Ticker == "" {
		return fmt.Errorf("trade %d: ticker is required", t.ID)
	}

	// Result present iff the trade is closed
	if (t.Result == nil) != (t.ExitDate == nil) {
		return fmt.Errorf("trade %d: result must be set exactly when exit_date is set", t.ID)
	}

	if t.ExitDate != nil && t.ExitDate.Before(t.EntryDate) {
		return fmt.Errorf("trade %d: exit_date before entry_date", t.ID)
	}

	if t.PnL != nil && t.Result != nil && *t.PnL <= 0 && *t.Result != ResultLoss {
		return fmt.Errorf("trade %d: non-positive pnl must classify as LOSS", t.ID)
	}

	return nil
}
