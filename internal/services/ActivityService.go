package services

import (
	"sync"
	"time"

	"rundash/internal/models"
	"rundash/internal/structures"
)

type ActivityServiceInterface interface {
	PutActivities(activities []*models.Activity)
	GetActivities() []*models.Activity
	GetActivityCount() int
	GetStatistics() *models.StatsRecord
	GetMonthlyDistance() []models.MonthlyPoint
	GetCumulativeDistance() []models.CumulativePoint
	GetPaceSeries() []models.PacePoint
	GetCalendar(now time.Time) *models.CalendarGrid
	GetRecent() []models.RecentRun
	GetRouteLayers(minDistance float64) []models.RouteLayer
	GetMapView() models.MapView
	GetMaxDistance() float64
}

// ActivityService holds the loaded table and everything derived from it.
// Derived values are computed once in PutActivities.
type ActivityService struct {
	mu   sync.RWMutex
	conf structures.DashboardConfig

	activities []*models.Activity
	stats      *models.StatsRecord
	monthly    []models.MonthlyPoint
	cumulative []models.CumulativePoint
	pace       []models.PacePoint
	recent     []models.RecentRun
	mapView    models.MapView
}

func NewActivityService(conf *structures.Config) ActivityServiceInterface {
	s := &ActivityService{conf: conf.Dashboard}
	s.PutActivities(nil)
	return s
}

func (s *ActivityService) PutActivities(activities []*models.Activity) {
	policy := models.ParseBusiestMonthPolicy(s.conf.BusiestMonth)
	center := s.conf.DefaultCenter
	if center == [2]float64{} {
		center = models.DefaultMapCenter
	}

	stats := models.ComputeStatistics(activities, policy)
	monthly := models.MonthlyDistance(activities, s.conf.MonthlyZeroFill)
	cumulative := models.CumulativeDistance(activities)
	pace := models.PaceSeries(activities)
	recent := models.RecentRuns(activities, s.conf.RecentCount)
	mapView := models.ComputeMapView(activities, center)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = activities
	s.stats = stats
	s.monthly = monthly
	s.cumulative = cumulative
	s.pace = pace
	s.recent = recent
	s.mapView = mapView
}

func (s *ActivityService) GetActivities() []*models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activities
}

func (s *ActivityService) GetActivityCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

func (s *ActivityService) GetStatistics() *models.StatsRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *ActivityService) GetMonthlyDistance() []models.MonthlyPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.monthly
}

func (s *ActivityService) GetCumulativeDistance() []models.CumulativePoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cumulative
}

func (s *ActivityService) GetPaceSeries() []models.PacePoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pace
}

// GetCalendar depends on the current date, so it is built per call.
func (s *ActivityService) GetCalendar(now time.Time) *models.CalendarGrid {
	return models.BuildCalendar(s.GetActivities(), now)
}

func (s *ActivityService) GetRecent() []models.RecentRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recent
}

func (s *ActivityService) GetRouteLayers(minDistance float64) []models.RouteLayer {
	return models.BuildRouteLayers(s.GetActivities(), minDistance)
}

func (s *ActivityService) GetMapView() models.MapView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mapView
}

// GetMaxDistance bounds the distance filter control.
func (s *ActivityService) GetMaxDistance() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats.LongestRunKm
}
