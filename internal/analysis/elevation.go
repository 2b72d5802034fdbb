package analysis

import (
	"math"
	"sort"

	"runcoach/internal/strava"
)

// SecondsPer100mClimb is the pace penalty attributed to every 100 m of
// cumulative climb. An empirical coaching heuristic, not physics.
const SecondsPer100mClimb = 12.0

// ElevationAdjustment holds a run's actual pace next to its
// flat-equivalent pace. The adjusted pace is always <= the actual one.
type ElevationAdjustment struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	ActualPaceSeconds   float64 `json:"actual_pace_seconds"`
	AdjustedPaceSeconds float64 `json:"adjusted_pace_seconds"`
	ActualPace          string  `json:"actual_pace"`
	AdjustedPace        string  `json:"adjusted_pace"`
	AdjustmentSeconds   float64 `json:"adjustment_seconds_per_km"`
	ElevationGain       float64 `json:"elevation_gain_m"`
	ElevationPerKm      int     `json:"elevation_per_km"`
}

// ElevationSummary aggregates adjustments across a set of runs.
type ElevationSummary struct {
	Runs                  []ElevationAdjustment `json:"runs"`
	AverageElevationGain  float64               `json:"average_elevation_gain_m"`
	AveragePaceAdjustment float64               `json:"average_pace_adjustment_seconds"`
	Method                string                `json:"method"`
}

// The aggregate carries a description of the heuristic so the chat host
// can explain where the numbers come from.
const adjustmentMethod = "flat-equivalent pace assumes 12 seconds of pace cost per 100 m of climb, spread over the run's distance"

// PaceAdjustment returns the per-kilometer pace penalty for a run with
// the given climb and distance. Zero distance yields zero adjustment.
func PaceAdjustment(elevationGainM, distanceKm float64) float64 {
	if distanceKm <= 0 {
		return 0
	}
	return (elevationGainM / 100) * SecondsPer100mClimb / distanceKm
}

// AdjustForElevation computes a run's flat-equivalent pace.
func AdjustForElevation(a strava.Activity) ElevationAdjustment {
	distanceKm := a.Distance / metersPerKm
	actual := PaceSeconds(a.Distance, a.MovingTime)
	adjustment := PaceAdjustment(a.TotalElevationGain, distanceKm)
	adjusted := actual - adjustment

	perKm := 0
	if distanceKm > 0 {
		perKm = int(math.Round(a.TotalElevationGain / distanceKm))
	}

	return ElevationAdjustment{
		ID:                  a.ID,
		Name:                a.Name,
		ActualPaceSeconds:   actual,
		AdjustedPaceSeconds: adjusted,
		ActualPace:          FormatPaceSeconds(actual),
		AdjustedPace:        FormatPaceSeconds(adjusted),
		AdjustmentSeconds:   adjustment,
		ElevationGain:       a.TotalElevationGain,
		ElevationPerKm:      perKm,
	}
}

// SummarizeElevation adjusts every run and averages gain and penalty.
func SummarizeElevation(activities []strava.Activity) ElevationSummary {
	summary := ElevationSummary{Method: adjustmentMethod}
	if len(activities) == 0 {
		return summary
	}

	var totalGain, totalAdjustment float64
	for _, a := range activities {
		adj := AdjustForElevation(a)
		summary.Runs = append(summary.Runs, adj)
		totalGain += adj.ElevationGain
		totalAdjustment += adj.AdjustmentSeconds
	}
	n := float64(len(activities))
	summary.AverageElevationGain = totalGain / n
	summary.AveragePaceAdjustment = totalAdjustment / n
	return summary
}

// TopHillyRuns returns the n runs with the most climb, sorted by gain
// descending.
func TopHillyRuns(activities []strava.Activity, n int) []ElevationAdjustment {
	adjusted := make([]ElevationAdjustment, 0, len(activities))
	for _, a := range activities {
		adjusted = append(adjusted, AdjustForElevation(a))
	}
	sort.SliceStable(adjusted, func(i, j int) bool {
		return adjusted[i].ElevationGain > adjusted[j].ElevationGain
	})
	if n > 0 && len(adjusted) > n {
		adjusted = adjusted[:n]
	}
	return adjusted
}
