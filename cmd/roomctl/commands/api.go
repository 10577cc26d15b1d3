package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/revtradingpros/backend/internal/analytics"
	"github.com/revtradingpros/backend/internal/api"
	"github.com/revtradingpros/backend/internal/api/handlers"
	"github.com/revtradingpros/backend/pkg/config"
	"github.com/revtradingpros/backend/pkg/database"
	"github.com/revtradingpros/backend/pkg/logger"
	pkgredis "github.com/revtradingpros/backend/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the analytics API server",
	Long: `Starts the REST API server.

Endpoints:
  GET /health
  GET /api/rooms/{slug}/analytics
  GET /api/rooms/{slug}/analytics/equity-curve
  GET /api/rooms/{slug}/analytics/drawdowns

Example:
  go run ./cmd/roomctl api
  go run ./cmd/roomctl api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Connected to database")

	// 4. Connect to Redis (no-op client when disabled)
	redisClient, err := pkgredis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	cache := pkgredis.NewCache(redisClient, "rooms")
	limiter := pkgredis.NewRateLimiter(redisClient, "rooms")

	// 5. Create analytics service
	repo := analytics.NewRepository(db.Pool)
	service := analytics.NewService(repo, log)

	// 6. Create handler and router
	analyticsHandler := handlers.NewAnalyticsHandler(service, cache, cfg.Analytics.CacheTTL, log)
	router := api.NewRouter(analyticsHandler, db, limiter, log)

	// 7. Start server with graceful shutdown
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\nServer running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET /health")
	fmt.Println("  GET /api/rooms/{slug}/analytics")
	fmt.Println("  GET /api/rooms/{slug}/analytics/equity-curve")
	fmt.Println("  GET /api/rooms/{slug}/analytics/drawdowns")
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
