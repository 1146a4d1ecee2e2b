package strava

import (
	"errors"
	"fmt"

	"github.com/twpayne/go-polyline"

	"rundash/internal/models"
)

var errTrailingData = errors.New("trailing data after polyline")

// DecodePolyline turns an encoded polyline (5 decimal precision) into
// (lat, lng) pairs.
func DecodePolyline(encoded string) ([]models.Coordinate, error) {
	if encoded == "" {
		return nil, nil
	}
	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: %d bytes", errTrailingData, len(rest))
	}
	out := make([]models.Coordinate, 0, len(coords))
	for _, c := range coords {
		out = append(out, models.Coordinate{Lat: c[0], Lng: c[1]})
	}
	return out, nil
}

func EncodePolyline(coords []models.Coordinate) string {
	raw := make([][]float64, 0, len(coords))
	for _, c := range coords {
		raw = append(raw, []float64{c.Lat, c.Lng})
	}
	return string(polyline.EncodeCoords(raw))
}
