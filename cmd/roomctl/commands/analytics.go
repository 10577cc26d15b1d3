package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/revtradingpros/backend/internal/analytics"
	"github.com/revtradingpros/backend/pkg/config"
	"github.com/revtradingpros/backend/pkg/database"
	"github.com/revtradingpros/backend/pkg/logger"
)

// analyticsCmd represents the analytics command
var analyticsCmd = &cobra.Command{
	Use:   "analytics [room-slug]",
	Short: "Compute a one-shot analytics report for a room",
	Long: `Computes the full analytics report for a room and prints it to stdout.

Defaults to the trailing 365 days when no range is given.

Example:
  go run ./cmd/roomctl analytics momentum-room
  go run ./cmd/roomctl analytics momentum-room --from 2026-01-01 --to 2026-06-30 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyticsReport,
}

var (
	analyticsFrom string
	analyticsTo   string
	analyticsJSON bool
)

func init() {
	rootCmd.AddCommand(analyticsCmd)

	analyticsCmd.Flags().StringVar(&analyticsFrom, "from", "", "range start (YYYY-MM-DD)")
	analyticsCmd.Flags().StringVar(&analyticsTo, "to", "", "range end (YYYY-MM-DD)")
	analyticsCmd.Flags().BoolVar(&analyticsJSON, "json", false, "print the full report as JSON")
}

func runAnalyticsReport(cmd *cobra.Command, args []string) error {
	roomSlug := args[0]

	dateRange, err := parseRangeFlags(analyticsFrom, analyticsTo)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	service := analytics.NewService(analytics.NewRepository(db.Pool), log)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	report, err := service.GetRoomAnalytics(ctx, roomSlug, dateRange)
	if err != nil {
		return fmt.Errorf("compute analytics for %s: %w", roomSlug, err)
	}

	if analyticsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printReport(roomSlug, report)
	return nil
}

// parseRangeFlags converts the --from/--to flags into a date range
func parseRangeFlags(fromStr, toStr string) (analytics.DateRange, error) {
	var dateRange analytics.DateRange

	if fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return dateRange, fmt.Errorf("invalid --from date %q (expected YYYY-MM-DD)", fromStr)
		}
		dateRange.From = &from
	}

	if toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return dateRange, fmt.Errorf("invalid --to date %q (expected YYYY-MM-DD)", toStr)
		}
		dateRange.To = &to
	}

	return dateRange, nil
}

func printReport(roomSlug string, report *analytics.RoomAnalytics) {
	s := report.Summary

	fmt.Printf("=== Room Analytics: %s ===\n\n", roomSlug)
	fmt.Printf("Trades:            %d closed (%d alerts)\n", s.TotalTrades, s.TotalAlerts)
	fmt.Printf("Win rate:          %.2f%%\n", s.WinRate)
	if s.ProfitFactor.IsInf() {
		fmt.Printf("Profit factor:     inf (no losing trades)\n")
	} else {
		fmt.Printf("Profit factor:     %.2f\n", float64(s.ProfitFactor))
	}
	fmt.Printf("Sharpe ratio:      %.2f\n", s.SharpeRatio)
	fmt.Printf("Max drawdown:      $%.2f (%.2f%%)\n", s.MaxDrawdown, s.MaxDrawdownPercent)
	fmt.Printf("Total P&L:         $%.2f (%.2f%%)\n", s.TotalPnL, s.TotalPnLPercent)
	fmt.Printf("Expectancy:        %.2f%%\n", s.Expectancy)
	fmt.Printf("Avg holding days:  %.1f\n", s.AvgHoldingDays)

	if s.BestMonth != nil {
		fmt.Printf("Best month:        %s %d ($%.2f)\n", s.BestMonth.MonthName, s.BestMonth.Year, s.BestMonth.PnL)
	}
	if s.WorstMonth != nil {
		fmt.Printf("Worst month:       %s %d ($%.2f)\n", s.WorstMonth.MonthName, s.WorstMonth.Year, s.WorstMonth.PnL)
	}

	streaks := report.StreakAnalysis
	fmt.Printf("\nCurrent streak:    %d %s\n", streaks.CurrentStreak, streaks.CurrentStreakType)
	fmt.Printf("Max win streak:    %d\n", streaks.MaxWinStreak)
	fmt.Printf("Max loss streak:   %d\n", streaks.MaxLossStreak)

	if len(report.PerformanceByTicker) > 0 {
		fmt.Println("\nTop tickers by P&L:")
		limit := len(report.PerformanceByTicker)
		if limit > 5 {
			limit = 5
		}
		for _, t := range report.PerformanceByTicker[:limit] {
			fmt.Printf("  %-8s %3d trades  %6.2f%% win  $%.2f\n", t.Ticker, t.TotalTrades, t.WinRate, t.TotalPnL)
		}
	}
}
