package models

import (
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDistance(t *testing.T) {
	tests := []struct {
		km    float64
		band  RouteBand
		color string
	}{
		{0, BandShort, "#60a5fa"},
		{4.99, BandShort, "#60a5fa"},
		{5, BandMedium, "#FC4C02"},
		{14.99, BandMedium, "#FC4C02"},
		{15, BandLong, "#ef4444"},
		{42.2, BandLong, "#ef4444"},
	}
	for _, tt := range tests {
		band := ClassifyDistance(tt.km)
		assert.Equal(t, tt.band, band, "km=%v", tt.km)
		assert.Equal(t, tt.color, band.Color())
	}
}

func routeActivities() []*Activity {
	return []*Activity{
		NewActivity("Park loop", 3.2, 16, 12, day(2024, time.April, 1), []Coordinate{{60.1, 24.9}, {60.2, 25.0}}),
		NewActivity("River", 8, 40, 55, day(2024, time.April, 2), []Coordinate{{60.3, 24.7}, {60.4, 24.8}}),
		NewActivity("No GPS", 10, 50, 0, day(2024, time.April, 3), nil),
		NewActivity("Long", 21.1, 110, 150.4, day(2024, time.April, 4), []Coordinate{{59.9, 24.6}}),
	}
}

func TestBuildRouteLayers_FilterAndStyle(t *testing.T) {
	layers := BuildRouteLayers(routeActivities(), 5)

	require.Len(t, layers, 2)
	assert.Equal(t, "River", layers[0].Name)
	assert.Equal(t, BandMedium, layers[0].Band)
	assert.Equal(t, "#FC4C02", layers[0].Color)
	assert.Equal(t, orb.LineString{{24.7, 60.3}, {24.8, 60.4}}, layers[0].Geometry)
	assert.Equal(t, "Long", layers[1].Name)
	assert.Equal(t, "#ef4444", layers[1].Color)
}

func TestBuildRouteLayers_ZeroThresholdKeepsRoutes(t *testing.T) {
	layers := BuildRouteLayers(routeActivities(), 0)
	assert.Len(t, layers, 3)
}

func TestBuildRouteLayers_HighThreshold(t *testing.T) {
	assert.Empty(t, BuildRouteLayers(routeActivities(), 100))
}

func TestRoutePopup(t *testing.T) {
	a := NewActivity("Long", 21.1, 110, 150.4, day(2024, time.April, 4), nil)
	assert.Equal(t, "Long · 21.10 km · 1h 50m 00s · 5:12 /km · +150 m", RoutePopup(a))
}

func TestRoutePopup_EscapesName(t *testing.T) {
	a := NewActivity("<img src=x onerror=alert(1)>", 5, 25, 10, day(2024, time.April, 4), nil)
	popup := RoutePopup(a)

	assert.NotContains(t, popup, "<img")
	assert.True(t, strings.HasPrefix(popup, "&lt;img src=x onerror=alert(1)&gt; · 5.00 km"))
}

func TestRouteLayersGeoJSON_MarkupPropertiesEscaped(t *testing.T) {
	route := []Coordinate{{Lat: 60.1, Lng: 24.9}, {Lat: 60.2, Lng: 25.0}}
	name := `<script>alert("x")</script> & friends`
	acts := []*Activity{NewActivity(name, 6, 33, 40, day(2024, time.May, 1), route)}

	fc := RouteLayersGeoJSON(BuildRouteLayers(acts, 0))
	require.Len(t, fc.Features, 1)
	props := fc.Features[0].Properties

	assert.Equal(t, name, props["name"])
	assert.Equal(t, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt; &amp; friends", props["tooltip"])
	assert.NotContains(t, props["popup"], "<script>")
	assert.Contains(t, props["popup"], "&lt;script&gt;")
}

func TestRouteLayersGeoJSON(t *testing.T) {
	fc := RouteLayersGeoJSON(BuildRouteLayers(routeActivities(), 0))

	require.Len(t, fc.Features, 3)
	f := fc.Features[0]
	assert.Equal(t, "Park loop", f.Properties["name"])
	assert.Equal(t, "Park loop", f.Properties["tooltip"])
	assert.Equal(t, "#60a5fa", f.Properties["color"])
	assert.Equal(t, "short", f.Properties["band"])
	_, ok := f.Geometry.(orb.LineString)
	assert.True(t, ok)
}

func TestComputeMapView(t *testing.T) {
	view := ComputeMapView(routeActivities(), DefaultMapCenter)

	assert.InDelta(t, (60.1+60.2+60.3+60.4+59.9)/5, view.Center[0], 1e-9)
	assert.InDelta(t, (24.9+25.0+24.7+24.8+24.6)/5, view.Center[1], 1e-9)
	require.NotNil(t, view.Bounds)
	assert.InDelta(t, 59.9, view.Bounds[0][0], 1e-9)
	assert.InDelta(t, 24.6, view.Bounds[0][1], 1e-9)
	assert.InDelta(t, 60.4, view.Bounds[1][0], 1e-9)
	assert.InDelta(t, 25.0, view.Bounds[1][1], 1e-9)
}

func TestComputeMapView_Fallback(t *testing.T) {
	view := ComputeMapView([]*Activity{run("indoor", 5, 25, day(2024, time.April, 1))}, DefaultMapCenter)
	assert.Equal(t, DefaultMapCenter, view.Center)
	assert.Nil(t, view.Bounds)
}
