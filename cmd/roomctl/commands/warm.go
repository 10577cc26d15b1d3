package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/revtradingpros/backend/internal/analytics"
	"github.com/revtradingpros/backend/internal/scheduler"
	"github.com/revtradingpros/backend/internal/scheduler/jobs"
	"github.com/revtradingpros/backend/pkg/config"
	"github.com/revtradingpros/backend/pkg/database"
	"github.com/revtradingpros/backend/pkg/logger"
	pkgredis "github.com/revtradingpros/backend/pkg/redis"
)

// warmCmd represents the warm command
var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Run the analytics cache warm-up scheduler",
	Long: `Starts the scheduler that periodically recomputes and caches analytics
for the rooms listed in ANALYTICS_WARM_ROOMS.

With --once the warm-up job runs a single time and exits instead of
staying resident.

Example:
  go run ./cmd/roomctl warm
  go run ./cmd/roomctl warm --once`,
	RunE: runWarm,
}

var warmOnce bool

func init() {
	rootCmd.AddCommand(warmCmd)

	warmCmd.Flags().BoolVar(&warmOnce, "once", false, "run the warm-up once and exit")
}

func runWarm(cmd *cobra.Command, args []string) error {
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

	redisClient, err := pkgredis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	if !redisClient.Enabled() {
		log.Warn("Redis is disabled; warm-up results will not be cached")
	}

	cache := pkgredis.NewCache(redisClient, "rooms")
	service := analytics.NewService(analytics.NewRepository(db.Pool), log)

	warmJob := jobs.NewAnalyticsWarmJob(
		service,
		cache,
		cfg.Analytics.WarmRooms,
		cfg.Analytics.WarmSchedule,
		cfg.Analytics.CacheTTL,
		log,
	)

	sched := scheduler.New(log)
	if err := sched.AddJob(warmJob); err != nil {
		return fmt.Errorf("register warm job: %w", err)
	}

	if warmOnce {
		return sched.RunJob(warmJob.Name())
	}

	sched.Start()
	defer sched.Stop()

	fmt.Println("Analytics warm-up scheduler running. Press Ctrl+C to stop.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	for name, stats := range sched.GetJobStats() {
		log.WithFields(map[string]interface{}{
			"job":       name,
			"runs":      stats.TotalRuns,
			"successes": stats.SuccessCount,
			"failures":  stats.FailureCount,
		}).Info("Job stats at shutdown")
	}

	return nil
}
