package controllers

import (
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cast"

	"rundash/internal/models"
	"rundash/internal/providers"
	"rundash/internal/services"
)

type ApiController struct {
	logger  providers.Logger
	service services.ActivityServiceInterface
	cache   providers.CacheProviderInterface
	now     func() time.Time
}

func NewApiController(logger providers.Logger, service services.ActivityServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
		now:     time.Now,
	}
}

type layersResponse struct {
	MinDistance float64                    `json:"min_distance"`
	Count       int                        `json:"count"`
	Layers      *geojson.FeatureCollection `json:"layers"`
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.logger.Errorf(providers.TypeHttp, "compute %s: %s", cacheKey, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		ac.logger.Errorf(providers.TypeHttp, "encode %s: %s", cacheKey, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) GetStats(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "stats", func() (any, error) {
		return ac.service.GetStatistics(), nil
	})
}

// GetLayers answers the map's distance filter. min_distance defaults to 0.
func (ac *ApiController) GetLayers(w http.ResponseWriter, r *http.Request) {
	minDistance, err := parseMinDistance(r.URL.Query().Get("min_distance"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.serveFromCacheOrCompute(w, fmt.Sprintf("layers:%g", minDistance), func() (any, error) {
		layers := ac.service.GetRouteLayers(minDistance)
		return layersResponse{
			MinDistance: minDistance,
			Count:       len(layers),
			Layers:      models.RouteLayersGeoJSON(layers),
		}, nil
	})
}

func (ac *ApiController) GetMonthly(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "monthly", func() (any, error) {
		return ac.service.GetMonthlyDistance(), nil
	})
}

func (ac *ApiController) GetCumulative(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "cumulative", func() (any, error) {
		return ac.service.GetCumulativeDistance(), nil
	})
}

func (ac *ApiController) GetPace(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "pace", func() (any, error) {
		return ac.service.GetPaceSeries(), nil
	})
}

// GetCalendar is keyed by day since the grid ends with the current week.
func (ac *ApiController) GetCalendar(w http.ResponseWriter, r *http.Request) {
	now := ac.now()
	ac.serveFromCacheOrCompute(w, "calendar:"+now.Format(time.DateOnly), func() (any, error) {
		return ac.service.GetCalendar(now), nil
	})
}

func (ac *ApiController) GetRecent(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "recent", func() (any, error) {
		return ac.service.GetRecent(), nil
	})
}

func parseMinDistance(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("min_distance out of range: %q", raw)
	}
	return v, nil
}
