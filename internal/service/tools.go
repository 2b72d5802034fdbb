package service

import (
	"context"
	"fmt"

	"runcoach/internal/analysis"
	"runcoach/internal/strava"
)

// RecentRunsResult lists a window of runs with aggregate stats.
type RecentRunsResult struct {
	Days            int                `json:"days"`
	Runs            []analysis.Summary `json:"runs"`
	TotalDistanceKm float64            `json:"total_distance_km"`
	AveragePace     string             `json:"average_pace"`
}

// RecentRuns returns the athlete's runs from the trailing window.
func (s *Service) RecentRuns(ctx context.Context, days int) (*RecentRunsResult, error) {
	runs, err := s.fetchRuns(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("fetching recent runs: %w", err)
	}

	agg := analysis.AggregatePeriod(runs)
	return &RecentRunsResult{
		Days:            days,
		Runs:            analysis.SummarizeAll(runs),
		TotalDistanceKm: agg.TotalDistanceKm,
		AveragePace:     analysis.AveragePace(runs),
	}, nil
}

// TrainingLoadResult is the acute:chronic assessment plus streak and
// overall state.
type TrainingLoadResult struct {
	analysis.LoadAssessment
	ConsecutiveDays int    `json:"consecutive_days"`
	TrainingState   string `json:"training_state"`
}

// TrainingLoad assesses current training load over the conventional
// 7/28-day windows.
func (s *Service) TrainingLoad(ctx context.Context) (*TrainingLoadResult, error) {
	runs, err := s.fetchRuns(ctx, analysis.ChronicWindowDays)
	if err != nil {
		return nil, fmt.Errorf("fetching runs for load assessment: %w", err)
	}

	now := s.now()
	acute := analysis.WindowLoad(analysis.WithinDays(runs, now, analysis.AcuteWindowDays), analysis.AcuteWindowDays)
	chronic := analysis.WindowLoad(runs, analysis.ChronicWindowDays)

	return &TrainingLoadResult{
		LoadAssessment:  analysis.Assess(acute, chronic),
		ConsecutiveDays: analysis.ConsecutiveDays(runs),
		TrainingState:   analysis.TrainingState(runs, now),
	}, nil
}

// CompareWeeks compares the trailing 7 days against the 7 days before.
func (s *Service) CompareWeeks(ctx context.Context) (*analysis.Comparison, error) {
	runs, err := s.fetchRuns(ctx, 2*analysis.AcuteWindowDays)
	if err != nil {
		return nil, fmt.Errorf("fetching runs for week comparison: %w", err)
	}

	now := s.now()
	current := analysis.WithinDays(runs, now, analysis.AcuteWindowDays)
	previous := analysis.WithinDays(runs, now.AddDate(0, 0, -analysis.AcuteWindowDays), analysis.AcuteWindowDays)

	c := analysis.ComparePeriods(analysis.AggregatePeriod(previous), analysis.AggregatePeriod(current))
	return &c, nil
}

// CompareRuns compares two individual runs fetched by ID.
func (s *Service) CompareRuns(ctx context.Context, baselineID, currentID int64) (*analysis.Comparison, error) {
	baseline, err := s.source.GetActivity(ctx, baselineID)
	if err != nil {
		return nil, fmt.Errorf("fetching baseline run %d: %w", baselineID, err)
	}
	current, err := s.source.GetActivity(ctx, currentID)
	if err != nil {
		return nil, fmt.Errorf("fetching current run %d: %w", currentID, err)
	}

	c := analysis.CompareRuns(*baseline, *current)
	return &c, nil
}

// ElevationResult carries per-run adjustments plus the hilliest runs.
type ElevationResult struct {
	analysis.ElevationSummary
	TopHillyRuns []analysis.ElevationAdjustment `json:"top_hilly_runs"`
}

// Elevation computes flat-equivalent paces over the trailing window.
func (s *Service) Elevation(ctx context.Context, days int) (*ElevationResult, error) {
	runs, err := s.fetchRuns(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("fetching runs for elevation analysis: %w", err)
	}

	return &ElevationResult{
		ElevationSummary: analysis.SummarizeElevation(runs),
		TopHillyRuns:     analysis.TopHillyRuns(runs, TopHillyRunCount),
	}, nil
}

// PaceTrendsResult is the pace distribution over a grouping.
type PaceTrendsResult struct {
	Days    int                  `json:"days"`
	GroupBy string               `json:"group_by"`
	Groups  []analysis.PaceGroup `json:"groups"`
}

// PaceTrends groups the window's runs and reports pace statistics per
// group. groupBy is "distance" (bucketed run length, the default) or
// "weekday".
func (s *Service) PaceTrends(ctx context.Context, days int, groupBy string) (*PaceTrendsResult, error) {
	runs, err := s.fetchRuns(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("fetching runs for pace trends: %w", err)
	}

	keyFn := distanceBucket
	if groupBy == "weekday" {
		keyFn = weekday
	} else {
		groupBy = "distance"
	}

	return &PaceTrendsResult{
		Days:    days,
		GroupBy: groupBy,
		Groups:  analysis.GroupPaces(runs, keyFn),
	}, nil
}

// distanceBucket labels a run by its length range.
func distanceBucket(a strava.Activity) string {
	km := a.Distance / 1000
	switch {
	case km < 5:
		return "under 5 km"
	case km < 10:
		return "5-10 km"
	case km < 15:
		return "10-15 km"
	default:
		return "15+ km"
	}
}

func weekday(a strava.Activity) string {
	return a.StartDateLocal.Weekday().String()
}
