package analysis

import (
	"math"
	"sort"
	"time"

	"runcoach/internal/strava"
)

// Conventional window sizes for the acute:chronic model.
const (
	AcuteWindowDays   = 7
	ChronicWindowDays = 28
)

// Training-state thresholds. Product-tunable coaching heuristics, not
// physically derived.
const (
	fatiguedStreakDays   = 4
	fatiguedThreeDayKm   = 30.0
	buildingSevenDayKm   = 40.0
	recoveringThreeDayKm = 10.0
	recoveringSevenDayKm = 20.0
)

// Risk bands for the acute:chronic ratio.
const (
	RiskHigh          = "high injury risk"
	RiskOptimal       = "optimal"
	RiskUndertraining = "undertraining"
	RiskBuilding      = "building"
)

// Training states.
const (
	StateFatigued   = "fatigued"
	StateBuilding   = "building"
	StateRecovering = "recovering"
	StateFresh      = "fresh"
)

// LoadWindow aggregates intensity-weighted load over a trailing window.
type LoadWindow struct {
	Days            int     `json:"days"`
	Runs            int     `json:"runs"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	Load            float64 `json:"load"`
}

// LoadAssessment combines an acute and a chronic window into the
// ratio-based injury-risk read. Recomputed fresh on every call.
type LoadAssessment struct {
	Acute    LoadWindow `json:"acute"`
	Chronic  LoadWindow `json:"chronic"`
	Ratio    float64    `json:"ratio"`
	RiskBand string     `json:"risk_band"`
	Score    int        `json:"score"`
}

// WindowLoad computes the load for one window. Each run contributes its
// distance weighted by its speed relative to the window's own average
// speed, so a window of hard runs scores higher than the same mileage
// run easy. The baseline is per-window: acute and chronic windows each
// use their own average, never a shared one.
func WindowLoad(activities []strava.Activity, days int) LoadWindow {
	w := LoadWindow{Days: days, Runs: len(activities)}

	var totalMeters float64
	var totalSeconds int
	for _, a := range activities {
		totalMeters += a.Distance
		totalSeconds += a.MovingTime
	}
	w.TotalDistanceKm = totalMeters / metersPerKm

	if totalMeters <= 0 || totalSeconds <= 0 {
		return w
	}
	windowAvgSpeed := totalMeters / float64(totalSeconds)

	for _, a := range activities {
		speed := a.AverageSpeed
		if speed <= 0 && a.MovingTime > 0 {
			speed = a.Distance / float64(a.MovingTime)
		}
		w.Load += (a.Distance / metersPerKm) * (speed / windowAvgSpeed)
	}
	return w
}

// Assess computes the acute:chronic ratio and its risk band.
// A zero chronic load yields ratio 0, not NaN.
func Assess(acute, chronic LoadWindow) LoadAssessment {
	ratio := 0.0
	if chronic.Load > 0 {
		ratio = acute.Load / chronic.Load
	}
	return LoadAssessment{
		Acute:    acute,
		Chronic:  chronic,
		Ratio:    ratio,
		RiskBand: riskBand(ratio),
		Score:    loadScore(acute.Load),
	}
}

// riskBand buckets the ratio. The bands do not overlap; order matters
// only in that the high check runs first.
func riskBand(ratio float64) string {
	switch {
	case ratio > 1.5:
		return RiskHigh
	case ratio >= 0.8 && ratio <= 1.3:
		return RiskOptimal
	case ratio < 0.8:
		return RiskUndertraining
	default:
		return RiskBuilding
	}
}

// loadScore is a cosmetic 0-100 display scale, saturating at 100.
func loadScore(acuteLoad float64) int {
	score := int(math.Round(acuteLoad * 2))
	if score > 100 {
		return 100
	}
	return score
}

// ConsecutiveDays counts the current run streak in calendar days.
// Multiple runs on the same local day count once. The walk stops at the
// first gap; it never skips one.
func ConsecutiveDays(activities []strava.Activity) int {
	if len(activities) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(activities))
	var days []time.Time
	for _, a := range activities {
		day := a.StartDateLocal.Format("2006-01-02")
		if seen[day] {
			continue
		}
		seen[day] = true
		t, _ := time.Parse("2006-01-02", day)
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 1
	for i := 1; i < len(days); i++ {
		if !days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
			break
		}
		streak++
	}
	return streak
}

// TrainingState classifies overall state from recent volume and the run
// streak. Evaluated in order; the first match wins.
func TrainingState(activities []strava.Activity, now time.Time) string {
	lastThree := distanceKmWithin(activities, now, 3)
	lastSeven := distanceKmWithin(activities, now, 7)
	streak := ConsecutiveDays(activities)

	switch {
	case streak >= fatiguedStreakDays || lastThree > fatiguedThreeDayKm:
		return StateFatigued
	case lastSeven > buildingSevenDayKm:
		return StateBuilding
	case lastThree < recoveringThreeDayKm && lastSeven < recoveringSevenDayKm:
		return StateRecovering
	default:
		return StateFresh
	}
}

// distanceKmWithin sums distance over the trailing window ending at now.
func distanceKmWithin(activities []strava.Activity, now time.Time, days int) float64 {
	cutoff := now.AddDate(0, 0, -days)
	var meters float64
	for _, a := range activities {
		if a.StartDate.After(cutoff) && !a.StartDate.After(now) {
			meters += a.Distance
		}
	}
	return meters / metersPerKm
}

// WithinDays filters activities to those starting in the trailing window.
func WithinDays(activities []strava.Activity, now time.Time, days int) []strava.Activity {
	cutoff := now.AddDate(0, 0, -days)
	var out []strava.Activity
	for _, a := range activities {
		if a.StartDate.After(cutoff) && !a.StartDate.After(now) {
			out = append(out, a)
		}
	}
	return out
}
