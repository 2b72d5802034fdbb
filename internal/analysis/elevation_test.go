package analysis

import (
	"math"
	"testing"
	"time"

	"runcoach/internal/strava"
)

func TestPaceAdjustment(t *testing.T) {
	tests := []struct {
		name       string
		gainMeters float64
		distanceKm float64
		expected   float64
	}{
		{name: "200m over 10km", gainMeters: 200, distanceKm: 10, expected: 2.4},
		{name: "flat run", gainMeters: 0, distanceKm: 10, expected: 0},
		{name: "zero distance guard", gainMeters: 200, distanceKm: 0, expected: 0},
		{name: "steep short run", gainMeters: 300, distanceKm: 5, expected: 7.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaceAdjustment(tt.gainMeters, tt.distanceKm)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("PaceAdjustment(%v, %v) = %v, want %v", tt.gainMeters, tt.distanceKm, got, tt.expected)
			}
		})
	}
}

func TestAdjustForElevation(t *testing.T) {
	start := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	run := makeRun(7, 10000, 3000, start)
	run.TotalElevationGain = 200

	adj := AdjustForElevation(run)

	if math.Abs(adj.ActualPaceSeconds-300) > 1e-9 {
		t.Errorf("ActualPaceSeconds = %v, want 300", adj.ActualPaceSeconds)
	}
	if math.Abs(adj.AdjustedPaceSeconds-297.6) > 1e-9 {
		t.Errorf("AdjustedPaceSeconds = %v, want 297.6", adj.AdjustedPaceSeconds)
	}
	if adj.AdjustedPaceSeconds > adj.ActualPaceSeconds {
		t.Errorf("adjusted pace %v should never exceed actual pace %v", adj.AdjustedPaceSeconds, adj.ActualPaceSeconds)
	}
	if adj.ElevationPerKm != 20 {
		t.Errorf("ElevationPerKm = %v, want 20", adj.ElevationPerKm)
	}
	if adj.ActualPace != "5:00" {
		t.Errorf("ActualPace = %q, want %q", adj.ActualPace, "5:00")
	}
}

func TestAdjustForElevationZeroDistance(t *testing.T) {
	run := strava.Activity{ID: 1, TotalElevationGain: 100}

	adj := AdjustForElevation(run)

	if adj.AdjustmentSeconds != 0 {
		t.Errorf("AdjustmentSeconds = %v, want 0 for zero distance", adj.AdjustmentSeconds)
	}
	if adj.ActualPace != "0:00" {
		t.Errorf("ActualPace = %q, want sentinel %q", adj.ActualPace, "0:00")
	}
	if adj.ElevationPerKm != 0 {
		t.Errorf("ElevationPerKm = %v, want 0", adj.ElevationPerKm)
	}
}

func TestSummarizeElevation(t *testing.T) {
	start := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)

	t.Run("empty set", func(t *testing.T) {
		s := SummarizeElevation(nil)
		if len(s.Runs) != 0 || s.AverageElevationGain != 0 || s.AveragePaceAdjustment != 0 {
			t.Errorf("SummarizeElevation(nil) = %+v, want zero summary", s)
		}
		if s.Method == "" {
			t.Error("SummarizeElevation(nil).Method should still describe the heuristic")
		}
	})

	t.Run("averages across runs", func(t *testing.T) {
		hilly := makeRun(1, 10000, 3000, start)
		hilly.TotalElevationGain = 200
		flat := makeRun(2, 10000, 3000, start.AddDate(0, 0, 1))

		s := SummarizeElevation([]strava.Activity{hilly, flat})

		if math.Abs(s.AverageElevationGain-100) > 1e-9 {
			t.Errorf("AverageElevationGain = %v, want 100", s.AverageElevationGain)
		}
		if math.Abs(s.AveragePaceAdjustment-1.2) > 1e-9 {
			t.Errorf("AveragePaceAdjustment = %v, want 1.2", s.AveragePaceAdjustment)
		}
	})
}

func TestTopHillyRuns(t *testing.T) {
	start := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	gains := []float64{50, 400, 120, 300}
	var runs []strava.Activity
	for i, gain := range gains {
		r := makeRun(int64(i+1), 10000, 3000, start.AddDate(0, 0, i))
		r.TotalElevationGain = gain
		runs = append(runs, r)
	}

	top := TopHillyRuns(runs, 3)

	if len(top) != 3 {
		t.Fatalf("TopHillyRuns(3) returned %v runs, want 3", len(top))
	}
	for i, wantGain := range []float64{400, 300, 120} {
		if top[i].ElevationGain != wantGain {
			t.Errorf("TopHillyRuns()[%d].ElevationGain = %v, want %v", i, top[i].ElevationGain, wantGain)
		}
	}
}
