package strava

import (
	"time"

	"github.com/spf13/cast"

	"rundash/internal/models"
)

var runSportTypes = map[string]bool{
	"Run":        true,
	"TrailRun":   true,
	"VirtualRun": true,
}

type ActivityMap struct {
	SummaryPolyline string `json:"summary_polyline"`
}

// SummaryActivity is the subset of the athlete activity listing we read.
type SummaryActivity struct {
	Name               string      `json:"name"`
	Type               string      `json:"type"`
	SportType          string      `json:"sport_type"`
	Distance           float64     `json:"distance"`
	MovingTime         float64     `json:"moving_time"`
	TotalElevationGain float64     `json:"total_elevation_gain"`
	StartDateLocal     string      `json:"start_date_local"`
	Map                ActivityMap `json:"map"`
}

// IsRun matches either classification field; older payloads only carry type.
func (a SummaryActivity) IsRun() bool {
	return a.Type == "Run" || runSportTypes[a.SportType]
}

func (a SummaryActivity) HasRoute() bool {
	return a.Map.SummaryPolyline != ""
}

// ToActivity normalizes units (meters to km, seconds to minutes) and decodes
// the route.
func (a SummaryActivity) ToActivity() (*models.Activity, error) {
	coords, err := DecodePolyline(a.Map.SummaryPolyline)
	if err != nil {
		return nil, &DecodeError{Activity: a.Name, Field: "summary_polyline", Err: err}
	}
	date, err := cast.ToTimeInDefaultLocationE(a.StartDateLocal, time.UTC)
	if err != nil {
		return nil, &DecodeError{Activity: a.Name, Field: "start_date_local", Err: err}
	}
	return models.NewActivity(a.Name, a.Distance/1000, a.MovingTime/60, a.TotalElevationGain, date, coords), nil
}

type tokenResponse struct {
	TokenType    string `json:"token_type"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	Message      string `json:"message"`
}
