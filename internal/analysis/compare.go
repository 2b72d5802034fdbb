package analysis

import (
	"math"

	"runcoach/internal/strava"
)

// Trend labels.
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// Trend thresholds. Pace changes dominate volume changes unless the
// volume change is large; the asymmetry is deliberate. Tunable, not
// physically derived.
const (
	trendPaceSeconds     = 10.0
	trendDistancePercent = 15.0
	trendPaceGuard       = 5.0
)

// PeriodAggregate summarizes one comparison side: a week, or any other
// set of runs treated as a unit.
type PeriodAggregate struct {
	TotalDistanceKm float64 `json:"total_distance_km"`
	Runs            int     `json:"runs"`
	AvgPaceSeconds  float64 `json:"avg_pace_seconds"`
	AvgPace         string  `json:"avg_pace"`
}

// Comparison pairs two aggregates and their deltas. Negative pace delta
// means the current side is faster.
type Comparison struct {
	Baseline             PeriodAggregate `json:"baseline"`
	Current              PeriodAggregate `json:"current"`
	DistanceDeltaKm      float64         `json:"distance_delta_km"`
	DistanceDeltaPercent float64         `json:"distance_delta_percent"`
	PaceDeltaSeconds     float64         `json:"pace_delta_seconds"`
	RunsDelta            int             `json:"runs_delta"`
	Trend                string          `json:"trend"`
}

// AggregatePeriod builds a comparison side from a set of runs. The pace
// is aggregate distance over aggregate time, consistent with AveragePace.
func AggregatePeriod(activities []strava.Activity) PeriodAggregate {
	var totalMeters float64
	var totalSeconds int
	for _, a := range activities {
		totalMeters += a.Distance
		totalSeconds += a.MovingTime
	}

	agg := PeriodAggregate{
		TotalDistanceKm: totalMeters / metersPerKm,
		Runs:            len(activities),
	}
	agg.AvgPaceSeconds = PaceSeconds(totalMeters, totalSeconds)
	agg.AvgPace = FormatPaceSeconds(agg.AvgPaceSeconds)
	return agg
}

// ComparePeriods computes deltas and trend between a baseline and a
// current aggregate.
func ComparePeriods(baseline, current PeriodAggregate) Comparison {
	c := Comparison{
		Baseline:         baseline,
		Current:          current,
		DistanceDeltaKm:  current.TotalDistanceKm - baseline.TotalDistanceKm,
		PaceDeltaSeconds: current.AvgPaceSeconds - baseline.AvgPaceSeconds,
		RunsDelta:        current.Runs - baseline.Runs,
	}
	if baseline.TotalDistanceKm > 0 {
		c.DistanceDeltaPercent = math.Round(c.DistanceDeltaKm / baseline.TotalDistanceKm * 100)
	}
	c.Trend = Trend(c.PaceDeltaSeconds, c.DistanceDeltaPercent)
	return c
}

// CompareRuns applies the same comparison to two individual runs, with
// pace taken from each run's own distance and moving time.
func CompareRuns(baseline, current strava.Activity) Comparison {
	return ComparePeriods(
		AggregatePeriod([]strava.Activity{baseline}),
		AggregatePeriod([]strava.Activity{current}),
	)
}

// Trend classifies a pace delta (seconds per km) and distance delta
// (percent) into improving/stable/declining. Improving is checked
// before declining; both use OR conditions, so a big pace change wins
// regardless of volume, and a big volume change wins only when pace did
// not move much the other way.
func Trend(paceDeltaSeconds, distanceDeltaPercent float64) string {
	improving := paceDeltaSeconds < -trendPaceSeconds ||
		(distanceDeltaPercent > trendDistancePercent && paceDeltaSeconds < trendPaceGuard)
	if improving {
		return TrendImproving
	}

	declining := paceDeltaSeconds > trendPaceSeconds ||
		(distanceDeltaPercent < -trendDistancePercent && paceDeltaSeconds > -trendPaceGuard)
	if declining {
		return TrendDeclining
	}

	return TrendStable
}
