package internal

import (
	"context"

	"rundash/internal/providers"
	"rundash/internal/services"
	"rundash/internal/storage/interfaces"
)

// Fetcher is the batch side: one authenticated pass over the activity
// history that rewrites the table.
type Fetcher struct {
	service services.FetchServiceInterface
	store   interfaces.TableStoreInterface
	logger  providers.Logger
}

func NewFetcher(service services.FetchServiceInterface, store interfaces.TableStoreInterface, logger providers.Logger) *Fetcher {
	return &Fetcher{service: service, store: store, logger: logger}
}

func (f *Fetcher) Run(ctx context.Context) (*services.FetchReport, error) {
	report, err := f.service.Run(ctx)
	if err != nil {
		f.logger.Errorf(providers.TypeFetch, "Fetch failed: %s", err)
		return nil, err
	}
	return report, nil
}

func (f *Fetcher) Close() {
	f.store.Close()
	f.logger.Close()
}
