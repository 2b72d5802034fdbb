package service

import "time"

const (
	// DefaultRecentDays is the window for run listings when the caller
	// does not ask for one.
	DefaultRecentDays = 14

	// MaxWindowDays caps caller-supplied windows so one tool call
	// cannot page through an athlete's whole history.
	MaxWindowDays = 365

	// TopHillyRunCount is how many hilly runs the elevation tool lists.
	TopHillyRunCount = 5

	// Upload polling is bounded and fixed-interval: Strava processes a
	// small GPX in a few seconds, so adaptive backoff buys nothing.
	UploadPollAttempts = 5
	UploadPollDelay    = 2 * time.Second
)
