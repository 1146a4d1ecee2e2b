package models

import (
	"fmt"
	"html"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RouteBand groups routes by distance for coloring.
type RouteBand int

const (
	BandShort RouteBand = iota
	BandMedium
	BandLong
)

var AllRouteBands = []RouteBand{BandShort, BandMedium, BandLong}

const (
	shortBandLimitKm  = 5
	mediumBandLimitKm = 15
)

var DefaultMapCenter = [2]float64{60.192059, 24.945831}

// ClassifyDistance maps a distance to its band: below 5 km short, below 15 km
// medium, anything else long.
func ClassifyDistance(km float64) RouteBand {
	switch {
	case km < shortBandLimitKm:
		return BandShort
	case km < mediumBandLimitKm:
		return BandMedium
	default:
		return BandLong
	}
}

func (b RouteBand) Color() string {
	switch b {
	case BandShort:
		return "#60a5fa"
	case BandMedium:
		return "#FC4C02"
	default:
		return "#ef4444"
	}
}

func (b RouteBand) Label() string {
	switch b {
	case BandShort:
		return "< 5 km"
	case BandMedium:
		return "5-15 km"
	default:
		return "> 15 km"
	}
}

func (b RouteBand) String() string {
	switch b {
	case BandShort:
		return "short"
	case BandMedium:
		return "medium"
	default:
		return "long"
	}
}

type RouteLayer struct {
	Name       string
	DistanceKm float64
	Band       RouteBand
	Color      string
	Label      string
	Tooltip    string
	Popup      string
	Geometry   orb.LineString
}

// BuildRouteLayers keeps activities at least minDistance long that carry a
// route, in input order.
func BuildRouteLayers(activities []*Activity, minDistance float64) []RouteLayer {
	layers := make([]RouteLayer, 0, len(activities))
	for _, a := range activities {
		if a.DistanceKm < minDistance || len(a.Coordinates) == 0 {
			continue
		}
		band := ClassifyDistance(a.DistanceKm)
		layers = append(layers, RouteLayer{
			Name:       a.Name,
			DistanceKm: a.DistanceKm,
			Band:       band,
			Color:      band.Color(),
			Label:      band.Label(),
			Tooltip:    html.EscapeString(a.Name),
			Popup:      RoutePopup(a),
			Geometry:   lineString(a.Coordinates),
		})
	}
	return layers
}

// RoutePopup is HTML-safe markup; the map inserts it as HTML.
func RoutePopup(a *Activity) string {
	return fmt.Sprintf("%s · %.2f km · %s · %s · +%.0f m",
		html.EscapeString(a.Name), a.DistanceKm, FormatTime(a.MovingTime), FormatPace(a.Pace), a.ElevationGain)
}

// RouteLayersGeoJSON renders layers as line features with their styling in
// the properties. name is plain text, tooltip and popup are escaped markup.
func RouteLayersGeoJSON(layers []RouteLayer) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, layer := range layers {
		f := geojson.NewFeature(layer.Geometry)
		f.Properties["name"] = layer.Name
		f.Properties["distance_km"] = layer.DistanceKm
		f.Properties["band"] = layer.Band.String()
		f.Properties["color"] = layer.Color
		f.Properties["label"] = layer.Label
		f.Properties["tooltip"] = layer.Tooltip
		f.Properties["popup"] = layer.Popup
		fc.Append(f)
	}
	return fc
}

// MapView is the initial map position in (lat, lng) order.
type MapView struct {
	Center [2]float64     `json:"center"`
	Bounds *[2][2]float64 `json:"bounds"`
}

// ComputeMapView centers on the mean of every coordinate and bounds the map
// to all routes. Without coordinates it falls back to the given center.
func ComputeMapView(activities []*Activity, fallback [2]float64) MapView {
	var latSum, lngSum float64
	var count int
	var bound orb.Bound
	for _, a := range activities {
		if len(a.Coordinates) == 0 {
			continue
		}
		for _, c := range a.Coordinates {
			latSum += c.Lat
			lngSum += c.Lng
		}
		routeBound := lineString(a.Coordinates).Bound()
		if count == 0 {
			bound = routeBound
		} else {
			bound = bound.Union(routeBound)
		}
		count += len(a.Coordinates)
	}
	if count == 0 {
		return MapView{Center: fallback}
	}
	n := float64(count)
	return MapView{
		Center: [2]float64{latSum / n, lngSum / n},
		Bounds: &[2][2]float64{
			{bound.Min.Lat(), bound.Min.Lon()},
			{bound.Max.Lat(), bound.Max.Lon()},
		},
	}
}

// lineString converts (lat, lng) pairs into an orb line, which is (lng, lat).
func lineString(coords []Coordinate) orb.LineString {
	ls := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		ls = append(ls, orb.Point{c.Lng, c.Lat})
	}
	return ls
}
