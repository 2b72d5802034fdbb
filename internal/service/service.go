// Package service is the tool layer: each exported method backs one
// chat tool. Methods fetch runs through the activity cache, hand plain
// slices to the analysis core, and return tagged result structs.
package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"runcoach/internal/cache"
	"runcoach/internal/strava"
)

// ActivitySource is the slice of the Strava client the tool layer uses.
type ActivitySource interface {
	GetAllActivities(ctx context.Context, after time.Time) ([]strava.Activity, error)
	GetActivity(ctx context.Context, id int64) (*strava.Activity, error)
	UploadRoute(ctx context.Context, name, gpx string) (*strava.Upload, error)
	WaitForUpload(ctx context.Context, id int64, attempts int, delay time.Duration) (*strava.Upload, error)
}

// Service answers coaching tool calls.
type Service struct {
	source ActivitySource
	cache  *cache.Activities
	logger *slog.Logger
	now    func() time.Time
}

// New creates the tool service. The cache is owned by this layer; the
// analysis core below it stays cache-free.
func New(source ActivitySource, activityCache *cache.Activities, logger *slog.Logger) *Service {
	return &Service{
		source: source,
		cache:  activityCache,
		logger: logger,
		now:    time.Now,
	}
}

// fetchRuns returns the athlete's runs from the trailing window,
// serving from the cache when fresh. Non-run activities are dropped
// here so everything downstream only ever sees runs.
func (s *Service) fetchRuns(ctx context.Context, days int) ([]strava.Activity, error) {
	key := cache.Key("runs", strconv.Itoa(days))
	if runs, ok := s.cache.Get(key); ok {
		return runs, nil
	}

	after := s.now().AddDate(0, 0, -days)
	activities, err := s.source.GetAllActivities(ctx, after)
	if err != nil {
		return nil, err
	}

	runs := make([]strava.Activity, 0, len(activities))
	for _, a := range activities {
		if a.Type == "Run" {
			runs = append(runs, a)
		}
	}

	s.cache.Put(key, runs)
	s.logger.Debug("fetched runs", "days", days, "total", len(activities), "runs", len(runs))
	return runs, nil
}
