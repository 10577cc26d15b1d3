package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/revtradingpros/backend/internal/contracts"
	"github.com/revtradingpros/backend/pkg/logger"
)

// Store supplies a room's trade and alert records. Implementations
// return only closed, non-deleted trades with exit dates in range
// (ascending) and only published alerts (ascending by publish time).
type Store interface {
	FetchTrades(ctx context.Context, roomSlug string, from, to time.Time) ([]contracts.TradeRecord, error)
	FetchAlerts(ctx context.Context, roomSlug string, from, to time.Time) ([]contracts.AlertRecord, error)
}

// Service computes room performance analytics. Each call fetches fresh
// records and builds everything from local accumulators, so a single
// Service is safe to share across concurrent requests.
type Service struct {
	store  Store
	logger *logger.Logger
	now    func() time.Time
}

// NewService creates a new analytics service
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
		now:    time.Now,
	}
}

// GetRoomAnalytics computes the complete analytics answer for a room
// over the given range. The only failure mode is the record fetch; no
// partial result is returned on that path.
func (s *Service) GetRoomAnalytics(ctx context.Context, roomSlug string, dateRange DateRange) (*RoomAnalytics, error) {
	from, to := dateRange.Resolve(s.now())

	s.logger.WithFields(map[string]interface{}{
		"room": roomSlug,
		"from": from.Format("2006-01-02"),
		"to":   to.Format("2006-01-02"),
	}).Debug("Calculating room analytics")

	trades, err := s.store.FetchTrades(ctx, roomSlug, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch trades: %w", err)
	}

	alerts, err := s.store.FetchAlerts(ctx, roomSlug, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch alerts: %w", err)
	}

	summary := Summarize(trades, int64(len(alerts)))
	monthly := MonthlyBreakdown(trades)
	summary.BestMonth, summary.WorstMonth = bestWorstMonths(monthly)

	return &RoomAnalytics{
		Summary:             summary,
		PerformanceByTicker: TickerBreakdown(trades),
		PerformanceBySetup:  SetupBreakdown(trades),
		MonthlyPerformance:  monthly,
		DailyPnL:            AggregateDaily(trades),
		AlertEffectiveness:  AlertConversion(alerts, trades),
		StreakAnalysis:      AnalyzeStreaks(trades),
	}, nil
}

// GetEquityCurve computes just the normalized equity curve for charting
func (s *Service) GetEquityCurve(ctx context.Context, roomSlug string, dateRange DateRange) ([]EquityPoint, error) {
	from, to := dateRange.Resolve(s.now())

	trades, err := s.store.FetchTrades(ctx, roomSlug, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch trades: %w", err)
	}

	return BuildEquityCurve(AggregateDaily(trades)), nil
}

// GetDrawdownPeriods computes the detected drawdown cycles for a room
func (s *Service) GetDrawdownPeriods(ctx context.Context, roomSlug string, dateRange DateRange) ([]DrawdownPeriod, error) {
	curve, err := s.GetEquityCurve(ctx, roomSlug, dateRange)
	if err != nil {
		return nil, err
	}

	return DetectDrawdownPeriods(curve), nil
}

// bestWorstMonths picks the highest and lowest pnl months
func bestWorstMonths(monthly []MonthlyPerformance) (*MonthlyPerformance, *MonthlyPerformance) {
	if len(monthly) == 0 {
		return nil, nil
	}

	best, worst := monthly[0], monthly[0]
	for _, m := range monthly[1:] {
		if m.PnL > best.PnL {
			best = m
		}
		if m.PnL < worst.PnL {
			worst = m
		}
	}

	return &best, &worst
}
