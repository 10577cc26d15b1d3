package analytics

import (
	"encoding/json"
	"math"
	"time"

	"github.com/revtradingpros/backend/internal/contracts"
)

// Engine constants.
const (
	// startingEquity is the normalized reference notional the equity curve
	// is expressed against. It is a documented design constant, not a real
	// account balance.
	startingEquity = 10000.0

	// tradingDaysPerYear annualizes the Sharpe ratio.
	tradingDaysPerYear = 252.0

	// drawdownNoiseThreshold drops drawdown periods shallower than this
	// percent from the detector output.
	drawdownNoiseThreshold = 1.0

	// setupProfitFactorCap stands in for +Inf on per-setup profit factors,
	// which are plain numbers on the wire.
	setupProfitFactorCap = 999.99
)

// DateRange filters analytics by calendar date, inclusive on both ends.
// Nil bounds default to the trailing 365 days.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// Resolve returns the concrete [from, to] range, filling defaults
// relative to now.
func (r DateRange) Resolve(now time.Time) (time.Time, time.Time) {
	today := now.UTC().Truncate(24 * time.Hour)

	from := today.AddDate(0, 0, -365)
	if r.From != nil {
		from = *r.From
	}

	to := today
	if r.To != nil {
		to = *r.To
	}

	return from, to
}

// ProfitFactor is a float64 that survives JSON encoding when infinite.
// An all-win trade population has no gross loss, so its profit factor is
// +Inf; that encodes as null, which is what the dashboards expect.
type ProfitFactor float64

// IsInf reports whether the profit factor is positive infinity
func (p ProfitFactor) IsInf() bool {
	return math.IsInf(float64(p), 1)
}

// MarshalJSON encodes +Inf as null
func (p ProfitFactor) MarshalJSON() ([]byte, error) {
	if p.IsInf() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}

// UnmarshalJSON decodes null back to +Inf
func (p *ProfitFactor) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = ProfitFactor(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = ProfitFactor(f)
	return nil
}

// RoomAnalytics is the complete analytics response for one room and range.
// It is owned solely by the caller; the engine keeps no state across calls.
type RoomAnalytics struct {
	Summary             AnalyticsSummary     `json:"summary"`
	PerformanceByTicker []TickerPerformance  `json:"performance_by_ticker"`
	PerformanceBySetup  []SetupPerformance   `json:"performance_by_setup"`
	MonthlyPerformance  []MonthlyPerformance `json:"monthly_performance"`
	DailyPnL            []DailyPnL           `json:"daily_pnl"`
	AlertEffectiveness  AlertEffectiveness   `json:"alert_effectiveness"`
	StreakAnalysis      StreakAnalysis       `json:"streak_analysis"`
}

// AnalyticsSummary holds the high-level performance metrics
type AnalyticsSummary struct {
	TotalAlerts        int64               `json:"total_alerts"`
	TotalTrades        int64               `json:"total_trades"`
	WinRate            float64             `json:"win_rate"`
	ProfitFactor       ProfitFactor        `json:"profit_factor"`
	SharpeRatio        float64             `json:"sharpe_ratio"`
	MaxDrawdown        float64             `json:"max_drawdown"`
	MaxDrawdownPercent float64             `json:"max_drawdown_percent"`
	AvgHoldingDays     float64             `json:"avg_holding_days"`
	TotalPnL           float64             `json:"total_pnl"`
	TotalPnLPercent    float64             `json:"total_pnl_percent"`
	BestMonth          *MonthlyPerformance `json:"best_month,omitempty"`
	WorstMonth         *MonthlyPerformance `json:"worst_month,omitempty"`
	AvgWinPercent      float64             `json:"avg_win_percent"`
	AvgLossPercent     float64             `json:"avg_loss_percent"`
	LargestWinPercent  float64             `json:"largest_win_percent"`
	LargestLossPercent float64             `json:"largest_loss_percent"`
	RiskRewardRatio    float64             `json:"risk_reward_ratio"`
	Expectancy         float64             `json:"expectancy"`
}

// TickerPerformance holds per-ticker aggregated metrics
type TickerPerformance struct {
	Ticker             string  `json:"ticker"`
	TotalTrades        int64   `json:"total_trades"`
	Wins               int64   `json:"wins"`
	Losses             int64   `json:"losses"`
	WinRate            float64 `json:"win_rate"`
	TotalPnL           float64 `json:"total_pnl"`
	TotalPnLPercent    float64 `json:"total_pnl_percent"`
	AvgPnL             float64 `json:"avg_pnl"`
	AvgPnLPercent      float64 `json:"avg_pnl_percent"`
	AvgHoldingDays     float64 `json:"avg_holding_days"`
	LargestWinPercent  float64 `json:"largest_win_percent"`
	LargestLossPercent float64 `json:"largest_loss_percent"`
}

// SetupPerformance holds per-setup aggregated metrics
type SetupPerformance struct {
	Setup        string  `json:"setup"`
	TotalTrades  int64   `json:"total_trades"`
	Wins         int64   `json:"wins"`
	Losses       int64   `json:"losses"`
	WinRate      float64 `json:"win_rate"`
	TotalPnL     float64 `json:"total_pnl"`
	AvgPnL       float64 `json:"avg_pnl"`
	ProfitFactor float64 `json:"profit_factor"` // capped at setupProfitFactorCap
}

// MonthlyPerformance holds one calendar month of results
type MonthlyPerformance struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	MonthName   string  `json:"month_name"`
	TotalTrades int64   `json:"total_trades"`
	Wins        int64   `json:"wins"`
	Losses      int64   `json:"losses"`
	WinRate     float64 `json:"win_rate"`
	PnL         float64 `json:"pnl"`
	PnLPercent  float64 `json:"pnl_percent"`
	IsPositive  bool    `json:"is_positive"`
}

// DailyPnL is one exit-date bucket of realized results
type DailyPnL struct {
	Date                 time.Time `json:"date"`
	PnL                  float64   `json:"pnl"`
	PnLPercent           float64   `json:"pnl_percent"`
	CumulativePnL        float64   `json:"cumulative_pnl"`
	CumulativePnLPercent float64   `json:"cumulative_pnl_percent"`
	TradeCount           int64     `json:"trade_count"`
}

// AlertEffectiveness holds alert-to-trade conversion metrics
type AlertEffectiveness struct {
	TotalAlerts              int64   `json:"total_alerts"`
	AlertsWithTrades         int64   `json:"alerts_with_trades"`
	AlertsWithoutTrades      int64   `json:"alerts_without_trades"`
	ConversionRate           float64 `json:"conversion_rate"`
	ProfitableConversionRate float64 `json:"profitable_conversion_rate"`
	AvgTimeToTradeHours      float64 `json:"avg_time_to_trade_hours"`
	EntryAlerts              int64   `json:"entry_alerts"`
	UpdateAlerts             int64   `json:"update_alerts"`
	ExitAlerts               int64   `json:"exit_alerts"`
}

// StreakAnalysis holds win/loss run-length metrics
type StreakAnalysis struct {
	CurrentStreak     int     `json:"current_streak"`
	CurrentStreakType string  `json:"current_streak_type"`
	MaxWinStreak      int     `json:"max_win_streak"`
	MaxLossStreak     int     `json:"max_loss_streak"`
	AvgWinStreak      float64 `json:"avg_win_streak"`
	AvgLossStreak     float64 `json:"avg_loss_streak"`
}

// EquityPoint is one point on the normalized equity curve
type EquityPoint struct {
	Date            time.Time `json:"date"`
	Equity          float64   `json:"equity"`
	EquityPercent   float64   `json:"equity_percent"`
	Drawdown        float64   `json:"drawdown"`
	DrawdownPercent float64   `json:"drawdown_percent"`
}

// DrawdownPeriod is one detected peak-to-trough-to-recovery cycle
type DrawdownPeriod struct {
	StartDate          time.Time  `json:"start_date"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	RecoveryDate       *time.Time `json:"recovery_date,omitempty"`
	MaxDrawdown        float64    `json:"max_drawdown"`
	MaxDrawdownPercent float64    `json:"max_drawdown_percent"`
	DurationDays       int64      `json:"duration_days"`
	RecoveryDays       *int64     `json:"recovery_days,omitempty"`
	IsRecovered        bool       `json:"is_recovered"`
}

// closedTrades filters to trades the engine can score
func closedTrades(trades []contracts.TradeRecord) []contracts.TradeRecord {
	out := make([]contracts.TradeRecord, 0, len(trades))
	for _, t := range trades {
		if t.IsClosed() {
			out = append(out, t)
		}
	}
	return out
}
