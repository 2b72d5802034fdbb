package strava

import "time"

// Activity represents a Strava activity from the API.
// Distances are meters, times are seconds, speeds are m/s.
type Activity struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	SportType          string    `json:"sport_type"`
	StartDate          time.Time `json:"start_date"`
	StartDateLocal     time.Time `json:"start_date_local"`
	Timezone           string    `json:"timezone"`
	Distance           float64   `json:"distance"`
	MovingTime         int       `json:"moving_time"`
	ElapsedTime        int       `json:"elapsed_time"`
	TotalElevationGain float64   `json:"total_elevation_gain"`
	AverageSpeed       float64   `json:"average_speed"`
	MaxSpeed           float64   `json:"max_speed"`
	AverageHeartrate   *float64  `json:"average_heartrate,omitempty"`
	MaxHeartrate       *float64  `json:"max_heartrate,omitempty"`
	SplitsMetric       []Split   `json:"splits_metric,omitempty"`
	Map                *Map      `json:"map,omitempty"`
}

// Split is one metric (per-kilometer) split of a detailed activity.
type Split struct {
	Split               int     `json:"split"`
	Distance            float64 `json:"distance"`
	MovingTime          int     `json:"moving_time"`
	ElapsedTime         int     `json:"elapsed_time"`
	ElevationDifference float64 `json:"elevation_difference"`
	AverageSpeed        float64 `json:"average_speed"`
}

// Map holds the encoded polylines Strava returns with an activity.
// They are opaque strings here; decoding is Strava's side of the contract.
type Map struct {
	ID              string `json:"id"`
	Polyline        string `json:"polyline,omitempty"`
	SummaryPolyline string `json:"summary_polyline,omitempty"`
}

// Upload is the response shape of the /uploads endpoints.
// ActivityID stays nil until Strava finishes processing the file.
type Upload struct {
	ID         int64  `json:"id"`
	IDStr      string `json:"id_str"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
	Error      string `json:"error"`
	ActivityID *int64 `json:"activity_id"`
}

// Ready reports whether processing finished and produced an activity.
func (u *Upload) Ready() bool {
	return u.ActivityID != nil && *u.ActivityID != 0
}
