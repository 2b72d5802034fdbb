// Package analysis turns raw Strava activity records into coaching
// metrics: pace, training load, elevation-adjusted pace, week-over-week
// trends, and pace distributions. Every function is pure and total over
// well-typed input; degenerate cases (zero distance, empty slices)
// resolve to sentinel values instead of errors.
package analysis

import (
	"fmt"
	"math"

	"runcoach/internal/strava"
)

const metersPerKm = 1000.0

// PaceFromSpeed formats a speed in m/s as a "M:SS" per-kilometer pace.
// Zero speed means "no movement" and formats as the "0:00" sentinel.
//
// Seconds are rounded, so inputs just under a minute boundary can format
// as "M:60". That matches the display contract the coaching tools were
// built against; see TestPaceFromSpeed before changing it.
func PaceFromSpeed(mps float64) string {
	if mps <= 0 {
		return "0:00"
	}
	secondsPerKm := metersPerKm / mps
	minutes := int(math.Floor(secondsPerKm / 60))
	seconds := int(math.Round(math.Mod(secondsPerKm, 60)))
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// PaceSeconds returns pace in seconds per kilometer, or 0 when the
// distance or time makes pace undefined.
func PaceSeconds(distanceMeters float64, movingTimeSeconds int) float64 {
	if distanceMeters <= 0 || movingTimeSeconds <= 0 {
		return 0
	}
	return float64(movingTimeSeconds) / (distanceMeters / metersPerKm)
}

// FormatPaceSeconds formats a seconds-per-kilometer pace as "M:SS",
// with the same rounding behavior as PaceFromSpeed.
func FormatPaceSeconds(secondsPerKm float64) string {
	if secondsPerKm <= 0 {
		return "0:00"
	}
	return PaceFromSpeed(metersPerKm / secondsPerKm)
}

// AveragePace computes the aggregate pace across a set of activities:
// total distance over total moving time, not the mean of per-run paces.
// A mean of paces would bias toward short slow runs.
func AveragePace(activities []strava.Activity) string {
	var totalMeters float64
	var totalSeconds int
	for _, a := range activities {
		totalMeters += a.Distance
		totalSeconds += a.MovingTime
	}
	if totalMeters <= 0 || totalSeconds <= 0 {
		return "0:00"
	}
	return PaceFromSpeed(totalMeters / float64(totalSeconds))
}

// Summary is the per-run display unit derived from an activity.
type Summary struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Date            string  `json:"date"`
	DistanceKm      float64 `json:"distance_km"`
	Pace            string  `json:"pace"`
	DurationMinutes int     `json:"duration_minutes"`
}

// Summarize derives the display summary for one activity. DistanceKm is
// rounded to one decimal and the date is the local calendar day.
func Summarize(a strava.Activity) Summary {
	return Summary{
		ID:              a.ID,
		Name:            a.Name,
		Date:            a.StartDateLocal.Format("2006-01-02"),
		DistanceKm:      math.Round(a.Distance/metersPerKm*10) / 10,
		Pace:            PaceFromSpeed(a.AverageSpeed),
		DurationMinutes: int(math.Round(float64(a.MovingTime) / 60)),
	}
}

// SummarizeAll summarizes a set of activities, preserving order.
func SummarizeAll(activities []strava.Activity) []Summary {
	summaries := make([]Summary, len(activities))
	for i, a := range activities {
		summaries[i] = Summarize(a)
	}
	return summaries
}
