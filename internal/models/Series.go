package models

import "time"

type MonthlyPoint struct {
	Month      time.Time `json:"month"`
	Label      string    `json:"label"`
	DistanceKm float64   `json:"distance_km"`
}

type CumulativePoint struct {
	Date         time.Time `json:"date"`
	Name         string    `json:"name"`
	DistanceKm   float64   `json:"distance_km"`
	CumulativeKm float64   `json:"cumulative_km"`
}

type PacePoint struct {
	Date          time.Time `json:"date"`
	Name          string    `json:"name"`
	Pace          float64   `json:"pace"`
	PaceFormatted string    `json:"pace_formatted"`
}

// MonthlyDistance sums distance per calendar month in chronological order.
// With zeroFill every month between the first and last one is present.
func MonthlyDistance(activities []*Activity, zeroFill bool) []MonthlyPoint {
	buckets := make(map[time.Time]float64)
	for _, a := range SortedByDate(activities) {
		buckets[monthStart(a.Date)] += a.DistanceKm
	}

	points := make([]MonthlyPoint, 0, len(buckets))
	for _, month := range monthRange(buckets) {
		distance, ok := buckets[month]
		if !ok && !zeroFill {
			continue
		}
		points = append(points, MonthlyPoint{
			Month:      month,
			Label:      month.Format("Jan 2006"),
			DistanceKm: distance,
		})
	}
	return points
}

// CumulativeDistance returns one point per activity, ordered by date, with
// the running distance total.
func CumulativeDistance(activities []*Activity) []CumulativePoint {
	points := make([]CumulativePoint, 0, len(activities))
	var total float64
	for _, a := range SortedByDate(activities) {
		total += a.DistanceKm
		points = append(points, CumulativePoint{
			Date:         a.Date,
			Name:         a.Name,
			DistanceKm:   a.DistanceKm,
			CumulativeKm: total,
		})
	}
	return points
}

// PaceSeries skips activities without a defined pace.
func PaceSeries(activities []*Activity) []PacePoint {
	points := make([]PacePoint, 0, len(activities))
	for _, a := range SortedByDate(activities) {
		if !a.HasPace() {
			continue
		}
		points = append(points, PacePoint{
			Date:          a.Date,
			Name:          a.Name,
			Pace:          a.Pace,
			PaceFormatted: FormatPace(a.Pace),
		})
	}
	return points
}

// RecentRun is a card-ready summary of one activity.
type RecentRun struct {
	Date          time.Time `json:"date"`
	DateLabel     string    `json:"date_label"`
	Name          string    `json:"name"`
	DistanceKm    float64   `json:"distance_km"`
	Time          string    `json:"time"`
	Pace          string    `json:"pace"`
	ElevationGain float64   `json:"elevation_gain"`
}

func RecentRuns(activities []*Activity, n int) []RecentRun {
	recent := MostRecent(activities, n)
	runs := make([]RecentRun, 0, len(recent))
	for _, a := range recent {
		runs = append(runs, RecentRun{
			Date:          a.Date,
			DateLabel:     a.Date.Format("Jan 02, 2006"),
			Name:          a.Name,
			DistanceKm:    a.DistanceKm,
			Time:          FormatTime(a.MovingTime),
			Pace:          FormatPace(a.Pace),
			ElevationGain: a.ElevationGain,
		})
	}
	return runs
}
