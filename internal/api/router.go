package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/revtradingpros/backend/internal/api/handlers"
	"github.com/revtradingpros/backend/pkg/database"
	"github.com/revtradingpros/backend/pkg/logger"
	pkgredis "github.com/revtradingpros/backend/pkg/redis"
)

// NewRouter creates and configures the HTTP router.
// All route registration happens in this function.
func NewRouter(analyticsHandler *handlers.AnalyticsHandler, db *database.DB, limiter *pkgredis.RateLimiter, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler(db)).Methods("GET")

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Room analytics endpoints
	api.HandleFunc("/rooms/{slug}/analytics", analyticsHandler.GetRoomAnalytics).Methods("GET")
	api.HandleFunc("/rooms/{slug}/analytics/equity-curve", analyticsHandler.GetEquityCurve).Methods("GET")
	api.HandleFunc("/rooms/{slug}/analytics/drawdowns", analyticsHandler.GetDrawdownPeriods).Methods("GET")

	// Apply middleware
	api.Use(rateLimitMiddleware(limiter, log))
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status, including DB reachability
func healthCheckHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		dbStatus := "ok"
		code := http.StatusOK

		if db != nil {
			if _, err := db.HealthCheck(r.Context()); err != nil {
				status = "degraded"
				dbStatus = "unreachable"
				code = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":   status,
			"database": dbStatus,
			"service":  "room-analytics-api",
		})
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
