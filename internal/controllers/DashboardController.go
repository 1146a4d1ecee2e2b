package controllers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"

	"rundash/internal/models"
	"rundash/internal/providers"
	"rundash/internal/services"
	"rundash/internal/structures"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

const pageCacheKey = "page"

type kpi struct {
	Label string
	Value string
}

type band struct {
	Color string
	Label string
}

type dashboardView struct {
	Title     string
	KPIs      []kpi
	Stats     *models.StatsRecord
	Recent    []models.RecentRun
	MapView   models.MapView
	Bands     []band
	SliderMax float64
}

// DashboardController renders the single dashboard page. The page pulls its
// charts and routes from the JSON endpoints.
type DashboardController struct {
	logger  providers.Logger
	service services.ActivityServiceInterface
	cache   providers.CacheProviderInterface
	title   string
	page    *template.Template
}

func NewDashboardController(conf *structures.Config, logger providers.Logger, service services.ActivityServiceInterface, cache providers.CacheProviderInterface) (*DashboardController, error) {
	page, err := template.ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}
	return &DashboardController{
		logger:  logger,
		service: service,
		cache:   cache,
		title:   conf.Dashboard.Title,
		page:    page,
	}, nil
}

func (dc *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	body, ok := dc.cache.Get(pageCacheKey)
	if !ok {
		var buf bytes.Buffer
		if err := dc.page.Execute(&buf, dc.view()); err != nil {
			dc.logger.Errorf(providers.TypeHttp, "render dashboard: %s", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		body = buf.Bytes()
		dc.cache.Set(pageCacheKey, body)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}

func (dc *DashboardController) view() dashboardView {
	stats := dc.service.GetStatistics()
	bands := make([]band, 0, len(models.AllRouteBands))
	for _, b := range models.AllRouteBands {
		bands = append(bands, band{Color: b.Color(), Label: b.Label()})
	}
	return dashboardView{
		Title: dc.title,
		KPIs: []kpi{
			{"Total Distance", fmt.Sprintf("%.1f km", stats.TotalDistanceKm)},
			{"Runs", strconv.Itoa(stats.TotalRuns)},
			{"Total Elevation", fmt.Sprintf("%.0f m", stats.TotalElevation)},
			{"Avg Pace", stats.AveragePaceFormatted},
			{"Longest Run", fmt.Sprintf("%.2f km", stats.LongestRunKm)},
		},
		Stats:     stats,
		Recent:    dc.service.GetRecent(),
		MapView:   dc.service.GetMapView(),
		Bands:     bands,
		SliderMax: math.Ceil(dc.service.GetMaxDistance()),
	}
}
