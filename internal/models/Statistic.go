package models

import (
	"time"

	"github.com/montanaflynn/stats"
)

// PBDistance is one of the fixed personal best thresholds.
type PBDistance int

const (
	PB5K PBDistance = iota
	PB10K
	PBHalfMarathon
	PBMarathon
)

var AllPBDistances = []PBDistance{PB5K, PB10K, PBHalfMarathon, PBMarathon}

func (d PBDistance) Km() float64 {
	switch d {
	case PB5K:
		return 5
	case PB10K:
		return 10
	case PBHalfMarathon:
		return 21.0975
	case PBMarathon:
		return 42.195
	}
	return 0
}

func (d PBDistance) Key() string {
	switch d {
	case PB5K:
		return "pb_5km"
	case PB10K:
		return "pb_10km"
	case PBHalfMarathon:
		return "pb_half_marathon"
	case PBMarathon:
		return "pb_marathon"
	}
	return "unknown"
}

func (d PBDistance) Label() string {
	switch d {
	case PB5K:
		return "5 km"
	case PB10K:
		return "10 km"
	case PBHalfMarathon:
		return "Half Marathon"
	case PBMarathon:
		return "Marathon"
	}
	return "Unknown"
}

type PersonalBest struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	ThresholdKm float64  `json:"threshold_km"`
	MovingTime  *float64 `json:"moving_time"`
	Formatted   string   `json:"formatted"`
}

func (pb PersonalBest) Available() bool {
	return pb.MovingTime != nil
}

// BusiestMonthPolicy picks the winner when several months share the top count.
type BusiestMonthPolicy string

const (
	BusiestMonthEarliest BusiestMonthPolicy = "earliest"
	BusiestMonthLatest   BusiestMonthPolicy = "latest"
)

func ParseBusiestMonthPolicy(s string) BusiestMonthPolicy {
	if BusiestMonthPolicy(s) == BusiestMonthLatest {
		return BusiestMonthLatest
	}
	return BusiestMonthEarliest
}

type MonthCount struct {
	Month time.Time `json:"month"`
	Label string    `json:"label"`
	Count int       `json:"count"`
}

type StatsRecord struct {
	TotalDistanceKm      float64        `json:"total_distance_km"`
	TotalRuns            int            `json:"total_runs"`
	TotalElevation       float64        `json:"total_elevation"`
	LongestRunKm         float64        `json:"longest_run_km"`
	HighestElevation     float64        `json:"highest_elevation"`
	AveragePace          float64        `json:"average_pace"`
	AveragePaceFormatted string         `json:"average_pace_formatted"`
	PersonalBests        []PersonalBest `json:"personal_bests"`
	BusiestMonth         *MonthCount    `json:"busiest_month"`
}

// PersonalBest returns the entry for d. The zero value is returned for an
// unknown distance.
func (s *StatsRecord) PersonalBest(d PBDistance) PersonalBest {
	for _, pb := range s.PersonalBests {
		if pb.Key == d.Key() {
			return pb
		}
	}
	return PersonalBest{}
}

func ComputeStatistics(activities []*Activity, policy BusiestMonthPolicy) *StatsRecord {
	distances := column(activities, func(a *Activity) float64 { return a.DistanceKm })
	elevations := column(activities, func(a *Activity) float64 { return a.ElevationGain })

	record := &StatsRecord{
		TotalDistanceKm:  sumOf(distances),
		TotalRuns:        len(activities),
		TotalElevation:   sumOf(elevations),
		LongestRunKm:     maxOf(distances),
		HighestElevation: maxOf(elevations),
		AveragePace:      AveragePace(activities),
		BusiestMonth:     BusiestMonth(activities, policy),
	}
	record.AveragePaceFormatted = FormatPace(record.AveragePace)

	record.PersonalBests = make([]PersonalBest, 0, len(AllPBDistances))
	for _, d := range AllPBDistances {
		best := PersonalBestFor(activities, d)
		record.PersonalBests = append(record.PersonalBests, PersonalBest{
			Key:         d.Key(),
			Label:       d.Label(),
			ThresholdKm: d.Km(),
			MovingTime:  best,
			Formatted:   FormatTimePtr(best),
		})
	}
	return record
}

// AveragePace is total moving time over total distance, 0 without distance.
func AveragePace(activities []*Activity) float64 {
	distance := sumOf(column(activities, func(a *Activity) float64 { return a.DistanceKm }))
	if distance == 0 {
		return 0
	}
	return sumOf(column(activities, func(a *Activity) float64 { return a.MovingTime })) / distance
}

// PersonalBestFor returns the fastest moving time among activities at least
// as long as the threshold, or nil when none qualifies.
func PersonalBestFor(activities []*Activity, d PBDistance) *float64 {
	threshold := d.Km()
	var qualifying stats.Float64Data
	for _, a := range activities {
		if a.DistanceKm >= threshold {
			qualifying = append(qualifying, a.MovingTime)
		}
	}
	best, err := qualifying.Min()
	if err != nil {
		return nil
	}
	return &best
}

// BusiestMonth walks every month between the first and last activity in
// order, zero months included, and returns the one with the most runs.
func BusiestMonth(activities []*Activity, policy BusiestMonthPolicy) *MonthCount {
	if len(activities) == 0 {
		return nil
	}
	counts := make(map[time.Time]int)
	for _, a := range activities {
		counts[monthStart(a.Date)]++
	}

	var best *MonthCount
	for _, month := range monthRange(counts) {
		count := counts[month]
		if best == nil || count > best.Count || (count == best.Count && policy == BusiestMonthLatest) {
			best = &MonthCount{Month: month, Count: count}
		}
	}
	best.Label = best.Month.Format("January 2006")
	return best
}

// monthRange lists every month from the earliest to the latest key.
func monthRange[V any](buckets map[time.Time]V) []time.Time {
	if len(buckets) == 0 {
		return nil
	}
	var first, last time.Time
	for m := range buckets {
		if first.IsZero() || m.Before(first) {
			first = m
		}
		if last.IsZero() || m.After(last) {
			last = m
		}
	}
	var months []time.Time
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

func column(activities []*Activity, field func(*Activity) float64) stats.Float64Data {
	data := make(stats.Float64Data, 0, len(activities))
	for _, a := range activities {
		data = append(data, field(a))
	}
	return data
}

func sumOf(data stats.Float64Data) float64 {
	v, err := data.Sum()
	if err != nil {
		return 0
	}
	return v
}

func maxOf(data stats.Float64Data) float64 {
	v, err := data.Max()
	if err != nil {
		return 0
	}
	return v
}
