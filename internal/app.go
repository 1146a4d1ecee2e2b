package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rundash/internal/controllers"
	"rundash/internal/providers"
	"rundash/internal/services"
	"rundash/internal/storage/interfaces"
	"rundash/internal/structures"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	WebServer *http.Server
	conf      *structures.Config
	logger    providers.Logger
	store     interfaces.TableStoreInterface
	service   services.ActivityServiceInterface
	metrics   providers.MetricsProviderInterface
	cache     providers.CacheProviderInterface
}

func NewApp(healthController *controllers.HealthController, store interfaces.TableStoreInterface, service services.ActivityServiceInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface, cache providers.CacheProviderInterface) *App {
	// Inner mux: dashboard routes
	dashboardMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		dashboardMux.Handle(route.Url, route.Handler)
	}

	instrumented := providers.AccessLogMiddleware(logger, providers.MetricsMiddleware(metrics, dashboardMux))

	// Outer mux: infrastructure + instrumented dashboard
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumented)

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:    conf,
		logger:  logger,
		store:   store,
		service: service,
		metrics: metrics,
		cache:   cache,
	}
}

// Load reads the table once and derives every statistic from it. A missing
// table means fetch has not run yet.
func (a *App) Load() error {
	started := time.Now()
	activities, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("load activities (run fetch first): %w", err)
	}
	a.service.PutActivities(activities)
	a.cache.Clear()
	a.metrics.ObserveLoadDuration(time.Since(started))
	a.logger.Infof(providers.TypeApp, "Loaded %d activities from %s", len(activities), a.store.Path())
	return nil
}

// Run loads the table, serves until SIGINT/SIGTERM or ctx is done, then
// drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)
	if err := a.Load(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.WebServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}

func (a *App) Close() {
	a.store.Close()
	a.logger.Close()
}
