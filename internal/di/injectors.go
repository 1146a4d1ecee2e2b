//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"rundash/internal"
	"rundash/internal/controllers"
	"rundash/internal/providers"
	"rundash/internal/services"
	"rundash/internal/storage"
	"rundash/internal/storage/interfaces"
	"rundash/internal/strava"
	"rundash/internal/structures"
)

var storageSet = wire.NewSet(
	storage.NewCompressorProvider,
	storage.NewFileManager,
	wire.Bind(new(interfaces.TableStoreInterface), new(*storage.FileManager)),
)

func InitServer(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		services.NewActivityService,
		wire.Bind(new(providers.ActivityCounter), new(services.ActivityServiceInterface)),
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storageSet,
		controllers.NewDashboardController,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitFetcher(cfg *structures.CliFlags) (*internal.Fetcher, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,

		storageSet,
		strava.NewClient,
		wire.Bind(new(strava.ClientInterface), new(*strava.Client)),
		services.NewFetchService,
		internal.NewFetcher,
	)

	return nil, nil
}
