package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"

	"rundash/internal/models"
)

var tableHeader = []string{"name", "distance_km", "moving_time", "elevation_gain", "date", "coordinates"}

var ErrMalformedTable = errors.New("malformed activity table")

func WriteTable(w io.Writer, activities []*models.Activity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tableHeader); err != nil {
		return err
	}
	for _, a := range activities {
		row := []string{
			a.Name,
			formatFloat(a.DistanceKm),
			formatFloat(a.MovingTime),
			formatFloat(a.ElevationGain),
			a.Date.Format(time.RFC3339),
			FormatCoordinates(a.Coordinates),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadTable(r io.Reader) ([]*models.Activity, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrMalformedTable)
	}
	if err != nil {
		return nil, err
	}
	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var activities []*models.Activity
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		activity, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", ErrMalformedTable, line, err)
		}
		activities = append(activities, activity)
	}
	return activities, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range tableHeader {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedTable, name)
		}
	}
	return index, nil
}

func parseRow(row []string, index map[string]int) (*models.Activity, error) {
	field := func(name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	distance, err := cast.ToFloat64E(field("distance_km"))
	if err != nil {
		return nil, fmt.Errorf("distance_km: %w", err)
	}
	movingTime, err := cast.ToFloat64E(field("moving_time"))
	if err != nil {
		return nil, fmt.Errorf("moving_time: %w", err)
	}
	elevation, err := cast.ToFloat64E(field("elevation_gain"))
	if err != nil {
		return nil, fmt.Errorf("elevation_gain: %w", err)
	}
	date, err := cast.ToTimeInDefaultLocationE(field("date"), time.UTC)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	coords, err := ParseCoordinates(field("coordinates"))
	if err != nil {
		return nil, fmt.Errorf("coordinates: %w", err)
	}

	return models.NewActivity(field("name"), distance, movingTime, elevation, date, coords), nil
}

// FormatCoordinates writes the literal form "[(lat, lng), (lat, lng)]".
func FormatCoordinates(coords []models.Coordinate) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range coords {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		b.WriteString(formatFloat(c.Lat))
		b.WriteString(", ")
		b.WriteString(formatFloat(c.Lng))
		b.WriteByte(')')
	}
	b.WriteByte(']')
	return b.String()
}

// ParseCoordinates accepts both "[(lat, lng), ...]" and "[[lat, lng], ...]".
// An empty field is an empty route.
func ParseCoordinates(s string) ([]models.Coordinate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	normalized := strings.NewReplacer("(", "[", ")", "]").Replace(s)

	var pairs [][]float64
	if err := json.Unmarshal([]byte(normalized), &pairs); err != nil {
		return nil, err
	}
	coords := make([]models.Coordinate, 0, len(pairs))
	for _, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("expected (lat, lng) pair, got %d values", len(p))
		}
		coords = append(coords, models.Coordinate{Lat: p[0], Lng: p[1]})
	}
	return coords, nil
}

// formatFloat keeps a decimal point on whole numbers.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
