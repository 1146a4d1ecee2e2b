package internal

import (
	"net/http"

	"rundash/internal/controllers"
	"rundash/internal/providers"
)

func InitRoutes(dashboardController *controllers.DashboardController, apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Page("/", http.HandlerFunc(dashboardController.Index))
	routers.Get("/api/stats", http.HandlerFunc(apiController.GetStats))
	routers.Get("/api/layers", http.HandlerFunc(apiController.GetLayers))
	routers.Get("/api/monthly", http.HandlerFunc(apiController.GetMonthly))
	routers.Get("/api/cumulative", http.HandlerFunc(apiController.GetCumulative))
	routers.Get("/api/pace", http.HandlerFunc(apiController.GetPace))
	routers.Get("/api/calendar", http.HandlerFunc(apiController.GetCalendar))
	routers.Get("/api/recent", http.HandlerFunc(apiController.GetRecent))
	return routers
}
