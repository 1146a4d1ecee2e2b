package controllers

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"rundash/internal/services"
	"rundash/internal/structures"
)

const (
	healthOK    = "ok"
	healthEmpty = "empty"
)

type HealthController struct {
	service   services.ActivityServiceInterface
	table     string
	startedAt time.Time
}

// healthResponse reports "empty" while the dashboard has no runs to show,
// e.g. when fetch wrote a table with zero activities.
type healthResponse struct {
	Status     string `json:"status"`
	Table      string `json:"table"`
	Activities int    `json:"activities"`
	StartedAt  string `json:"started_at"`
	Uptime     string `json:"uptime"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	activities := hc.service.GetActivityCount()
	status := healthOK
	if activities == 0 {
		status = healthEmpty
	}

	body, err := json.Marshal(healthResponse{
		Status:     status,
		Table:      hc.table,
		Activities: activities,
		StartedAt:  hc.startedAt.UTC().Format(time.RFC3339),
		Uptime:     time.Since(hc.startedAt).Truncate(time.Second).String(),
	})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func NewHealthController(conf *structures.Config, service services.ActivityServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		table:     conf.Persistence.FilePath,
		startedAt: time.Now(),
	}
}
