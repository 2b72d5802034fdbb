package analysis

import (
	"time"

	"runcoach/internal/strava"
)

// makeRun builds a run with a consistent average speed for tests.
func makeRun(id int64, distanceMeters float64, movingSeconds int, start time.Time) strava.Activity {
	a := strava.Activity{
		ID:             id,
		Name:           "Test Run",
		Type:           "Run",
		Distance:       distanceMeters,
		MovingTime:     movingSeconds,
		ElapsedTime:    movingSeconds,
		StartDate:      start,
		StartDateLocal: start,
	}
	if movingSeconds > 0 {
		a.AverageSpeed = distanceMeters / float64(movingSeconds)
	}
	return a
}
