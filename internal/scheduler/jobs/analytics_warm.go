package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/revtradingpros/backend/internal/analytics"
	"github.com/revtradingpros/backend/pkg/logger"
	pkgredis "github.com/revtradingpros/backend/pkg/redis"
)

// AnalyticsWarmJob recomputes and caches analytics for a configured
// set of rooms so the first dashboard request of the day is a cache
// hit. Each room is recomputed whole; a failed room does not stop the
// others.
type AnalyticsWarmJob struct {
	service  *analytics.Service
	cache    *pkgredis.Cache
	rooms    []string
	schedule string
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewAnalyticsWarmJob creates a new analytics warm-up job
func NewAnalyticsWarmJob(service *analytics.Service, cache *pkgredis.Cache, rooms []string, schedule string, cacheTTL time.Duration, log *logger.Logger) *AnalyticsWarmJob {
	return &AnalyticsWarmJob{
		service:  service,
		cache:    cache,
		rooms:    rooms,
		schedule: schedule,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

// Name returns the job name
func (j *AnalyticsWarmJob) Name() string {
	return "analytics_warm"
}

// Schedule returns the cron schedule
func (j *AnalyticsWarmJob) Schedule() string {
	return j.schedule
}

// Run recomputes analytics for every configured room
func (j *AnalyticsWarmJob) Run(ctx context.Context) error {
	if len(j.rooms) == 0 {
		j.logger.Debug("No rooms configured for analytics warm-up")
		return nil
	}

	var failed int
	for _, room := range j.rooms {
		if err := j.warmRoom(ctx, room); err != nil {
			failed++
			j.logger.WithError(err).WithField("room", room).Error("Failed to warm room analytics")
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"rooms":  len(j.rooms),
		"failed": failed,
	}).Info("Analytics warm-up completed")

	if failed == len(j.rooms) {
		return fmt.Errorf("analytics warm-up failed for all %d rooms", failed)
	}

	return nil
}

// warmRoom recomputes one room over the default trailing range and
// stores the result under the same key the API reads.
func (j *AnalyticsWarmJob) warmRoom(ctx context.Context, room string) error {
	result, err := j.service.GetRoomAnalytics(ctx, room, analytics.DateRange{})
	if err != nil {
		return err
	}

	key := pkgredis.RoomAnalyticsKey(room, "", "")
	if err := j.cache.Set(ctx, key, result, j.cacheTTL); err != nil {
		return fmt.Errorf("cache analytics for %s: %w", room, err)
	}

	return nil
}
