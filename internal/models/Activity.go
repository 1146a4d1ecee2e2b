package models

import (
	"sort"
	"time"
)

// Coordinate is a (latitude, longitude) pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Activity is one run. Values are normalized at ingestion: distance in
// kilometres, moving time in minutes, elevation gain in metres.
// Activities are shared read-only once loaded.
type Activity struct {
	Name          string       `json:"name"`
	DistanceKm    float64      `json:"distance_km"`
	MovingTime    float64      `json:"moving_time"`
	ElevationGain float64      `json:"elevation_gain"`
	Date          time.Time    `json:"date"`
	Coordinates   []Coordinate `json:"coordinates"`
	Pace          float64      `json:"pace"`
}

func NewActivity(name string, distanceKm, movingTime, elevationGain float64, date time.Time, coordinates []Coordinate) *Activity {
	return &Activity{
		Name:          name,
		DistanceKm:    distanceKm,
		MovingTime:    movingTime,
		ElevationGain: elevationGain,
		Date:          date,
		Coordinates:   coordinates,
		Pace:          PaceOf(movingTime, distanceKm),
	}
}

// HasPace reports whether Pace is meaningful (distance is non-zero).
func (a *Activity) HasPace() bool {
	return a.DistanceKm > 0
}

// PaceOf returns minutes per kilometre, or 0 for a zero distance.
func PaceOf(movingTime, distanceKm float64) float64 {
	if distanceKm <= 0 {
		return 0
	}
	return movingTime / distanceKm
}

// SortedByDate returns a copy ordered by ascending date. Ties keep input order.
func SortedByDate(activities []*Activity) []*Activity {
	sorted := make([]*Activity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// MostRecent returns up to n activities, newest first.
func MostRecent(activities []*Activity, n int) []*Activity {
	sorted := SortedByDate(activities)
	if n > len(sorted) || n < 0 {
		n = len(sorted)
	}
	recent := make([]*Activity, 0, n)
	for i := len(sorted) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, sorted[i])
	}
	return recent
}

// civilDay drops the clock and zone, keeping the calendar date as reported.
func civilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
