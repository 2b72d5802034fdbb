package analysis

import (
	"math"
	"sort"

	"runcoach/internal/strava"
)

// maxGroupExamples caps the example runs attached to each pace group.
const maxGroupExamples = 3

// PaceGroup holds the pace statistics for one category of runs.
type PaceGroup struct {
	Label             string    `json:"label"`
	Count             int       `json:"count"`
	MeanPaceSeconds   float64   `json:"mean_pace_seconds"`
	MedianPaceSeconds float64   `json:"median_pace_seconds"`
	StdDevSeconds     float64   `json:"std_dev_seconds"`
	MeanPace          string    `json:"mean_pace"`
	Examples          []Summary `json:"examples"`
}

// GroupPaces buckets activities by the caller-supplied key and computes
// mean, median, and population standard deviation of pace within each
// group. Runs with undefined pace are skipped. Groups come back sorted
// by label for stable output.
func GroupPaces(activities []strava.Activity, keyFn func(strava.Activity) string) []PaceGroup {
	byLabel := make(map[string][]strava.Activity)
	for _, a := range activities {
		if PaceSeconds(a.Distance, a.MovingTime) <= 0 {
			continue
		}
		label := keyFn(a)
		byLabel[label] = append(byLabel[label], a)
	}

	groups := make([]PaceGroup, 0, len(byLabel))
	for label, members := range byLabel {
		paces := make([]float64, len(members))
		for i, a := range members {
			paces[i] = PaceSeconds(a.Distance, a.MovingTime)
		}

		g := PaceGroup{
			Label:             label,
			Count:             len(members),
			MeanPaceSeconds:   mean(paces),
			MedianPaceSeconds: median(paces),
			StdDevSeconds:     stdDev(paces),
		}
		g.MeanPace = FormatPaceSeconds(g.MeanPaceSeconds)

		sort.SliceStable(members, func(i, j int) bool {
			return members[i].StartDateLocal.After(members[j].StartDateLocal)
		})
		for i := 0; i < len(members) && i < maxGroupExamples; i++ {
			g.Examples = append(g.Examples, Summarize(members[i]))
		}

		groups = append(groups, g)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Label < groups[j].Label })
	return groups
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median returns the exact middle for odd counts and the midpoint
// average for even counts.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// stdDev is the population standard deviation. A single value has a
// deviation of 0, not NaN.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sumSquaredDiff float64
	for _, v := range values {
		diff := v - m
		sumSquaredDiff += diff * diff
	}
	return math.Sqrt(sumSquaredDiff / float64(len(values)))
}
