package models

import (
	"fmt"
	"time"
)

var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type CalendarCell struct {
	Date       time.Time `json:"date"`
	DistanceKm *float64  `json:"distance_km"`
	Text       string    `json:"text"`
}

type CalendarTick struct {
	Week  int    `json:"week"`
	Label string `json:"label"`
}

// CalendarGrid is a heatmap of 7 weekday rows by N week columns.
// Cells[row][week] where row 0 is Monday.
type CalendarGrid struct {
	Weekdays []string         `json:"weekdays"`
	Weeks    []time.Time      `json:"weeks"`
	Cells    [][]CalendarCell `json:"cells"`
	Ticks    []CalendarTick   `json:"ticks"`
}

func (g *CalendarGrid) WeekCount() int {
	return len(g.Weeks)
}

// Cell returns the cell for a civil date, false when the date is off grid.
func (g *CalendarGrid) Cell(day time.Time) (CalendarCell, bool) {
	day = civilDay(day)
	for w, start := range g.Weeks {
		offset := int(day.Sub(start).Hours() / 24)
		if offset >= 0 && offset < 7 {
			return g.Cells[offset][w], true
		}
	}
	return CalendarCell{}, false
}

// BuildCalendar buckets distance by day. The grid starts on the Monday of the
// earliest activity's week and ends on the Sunday of the week containing now.
// Days summing to zero carry no value.
func BuildCalendar(activities []*Activity, now time.Time) *CalendarGrid {
	grid := &CalendarGrid{
		Weekdays: Weekdays,
		Weeks:    []time.Time{},
		Cells:    make([][]CalendarCell, len(Weekdays)),
		Ticks:    []CalendarTick{},
	}
	for i := range grid.Cells {
		grid.Cells[i] = []CalendarCell{}
	}
	if len(activities) == 0 {
		return grid
	}

	daily := make(map[time.Time]float64)
	var first time.Time
	for _, a := range activities {
		day := civilDay(a.Date)
		daily[day] += a.DistanceKm
		if first.IsZero() || day.Before(first) {
			first = day
		}
	}

	start := weekStart(first)
	end := weekStart(civilDay(now)).AddDate(0, 0, 6)

	seenMonths := make(map[time.Time]bool)
	for week := start; !week.After(end); week = week.AddDate(0, 0, 7) {
		index := len(grid.Weeks)
		grid.Weeks = append(grid.Weeks, week)
		if month := monthStart(week); !seenMonths[month] {
			seenMonths[month] = true
			grid.Ticks = append(grid.Ticks, CalendarTick{Week: index, Label: week.Format("Jan '06")})
		}
		for row := range Weekdays {
			day := week.AddDate(0, 0, row)
			grid.Cells[row] = append(grid.Cells[row], newCalendarCell(day, daily[day]))
		}
	}
	return grid
}

func newCalendarCell(day time.Time, distance float64) CalendarCell {
	cell := CalendarCell{Date: day, Text: day.Format("Jan 02, 2006")}
	if distance > 0 {
		d := distance
		cell.DistanceKm = &d
		cell.Text += fmt.Sprintf("<br>%.1f km", distance)
	}
	return cell
}

// weekStart returns the Monday on or before day.
func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
