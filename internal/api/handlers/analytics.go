package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/revtradingpros/backend/internal/analytics"
	"github.com/revtradingpros/backend/pkg/logger"
	pkgredis "github.com/revtradingpros/backend/pkg/redis"
)

// AnalyticsHandler handles room analytics API endpoints
type AnalyticsHandler struct {
	service  *analytics.Service
	cache    *pkgredis.Cache
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service *analytics.Service, cache *pkgredis.Cache, cacheTTL time.Duration, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:  service,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

// GetRoomAnalytics returns the complete analytics report for a room
// GET /api/rooms/{slug}/analytics?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *AnalyticsHandler) GetRoomAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]

	dateRange, fromStr, toStr, ok := parseDateRange(w, r)
	if !ok {
		return
	}

	var result analytics.RoomAnalytics
	err := h.cached(ctx, pkgredis.RoomAnalyticsKey(slug, fromStr, toStr), &result, func() (interface{}, error) {
		out, err := h.service.GetRoomAnalytics(ctx, slug, dateRange)
		if err != nil {
			return nil, err
		}
		return *out, nil
	})
	if err != nil {
		h.logger.WithError(err).WithField("room", slug).Error("Failed to compute room analytics")
		respondError(w, http.StatusInternalServerError, "Failed to compute room analytics")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetEquityCurve returns the normalized equity curve for a room
// GET /api/rooms/{slug}/analytics/equity-curve?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *AnalyticsHandler) GetEquityCurve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]

	dateRange, fromStr, toStr, ok := parseDateRange(w, r)
	if !ok {
		return
	}

	var curve []analytics.EquityPoint
	err := h.cached(ctx, pkgredis.EquityCurveKey(slug, fromStr, toStr), &curve, func() (interface{}, error) {
		return h.service.GetEquityCurve(ctx, slug, dateRange)
	})
	if err != nil {
		h.logger.WithError(err).WithField("room", slug).Error("Failed to compute equity curve")
		respondError(w, http.StatusInternalServerError, "Failed to compute equity curve")
		return
	}

	respondJSON(w, http.StatusOK, curve)
}

// GetDrawdownPeriods returns the detected drawdown cycles for a room
// GET /api/rooms/{slug}/analytics/drawdowns?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *AnalyticsHandler) GetDrawdownPeriods(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]

	dateRange, fromStr, toStr, ok := parseDateRange(w, r)
	if !ok {
		return
	}

	var periods []analytics.DrawdownPeriod
	err := h.cached(ctx, pkgredis.DrawdownPeriodsKey(slug, fromStr, toStr), &periods, func() (interface{}, error) {
		return h.service.GetDrawdownPeriods(ctx, slug, dateRange)
	})
	if err != nil {
		h.logger.WithError(err).WithField("room", slug).Error("Failed to compute drawdown periods")
		respondError(w, http.StatusInternalServerError, "Failed to compute drawdown periods")
		return
	}

	respondJSON(w, http.StatusOK, periods)
}

// cached runs fn through the result cache when one is configured
func (h *AnalyticsHandler) cached(ctx context.Context, key string, dest interface{}, fn func() (interface{}, error)) error {
	if h.cache == nil {
		value, err := fn()
		if err != nil {
			return err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, dest)
	}

	return h.cache.GetOrSet(ctx, key, dest, h.cacheTTL, fn)
}

// parseDateRange reads optional from/to query params. On a malformed
// date it writes the 400 response itself and returns ok=false.
func parseDateRange(w http.ResponseWriter, r *http.Request) (analytics.DateRange, string, string, bool) {
	var dateRange analytics.DateRange

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	if fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'from' date format (expected YYYY-MM-DD)")
			return dateRange, "", "", false
		}
		dateRange.From = &from
	}

	if toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'to' date format (expected YYYY-MM-DD)")
			return dateRange, "", "", false
		}
		dateRange.To = &to
	}

	return dateRange, fromStr, toStr, true
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
