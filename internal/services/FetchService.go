package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rundash/internal/models"
	"rundash/internal/providers"
	"rundash/internal/storage/interfaces"
	"rundash/internal/strava"
)

type FetchReport struct {
	Pages          int           `json:"pages"`
	Seen           int           `json:"seen"`
	Kept           int           `json:"kept"`
	SkippedNotRun  int           `json:"skipped_not_run"`
	SkippedNoRoute int           `json:"skipped_no_route"`
	SkippedDecode  int           `json:"skipped_decode"`
	Path           string        `json:"path"`
	Duration       time.Duration `json:"duration"`
}

type FetchServiceInterface interface {
	Run(ctx context.Context) (*FetchReport, error)
}

// FetchService pulls every run from Strava and replaces the stored table.
type FetchService struct {
	client strava.ClientInterface
	store  interfaces.TableStoreInterface
	logger providers.Logger
}

func NewFetchService(client strava.ClientInterface, store interfaces.TableStoreInterface, logger providers.Logger) FetchServiceInterface {
	return &FetchService{client: client, store: store, logger: logger}
}

func (fs *FetchService) Run(ctx context.Context) (*FetchReport, error) {
	started := time.Now()
	report := &FetchReport{Path: fs.store.Path()}

	if _, err := fs.client.Authenticate(ctx); err != nil {
		return nil, err
	}

	var activities []*models.Activity
	for page := 1; ; page++ {
		items, more, err := fs.client.ListActivities(ctx, page)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		report.Pages++
		fs.logger.Debugf(providers.TypeFetch, "Page %d: %d activities", page, len(items))

		for _, item := range items {
			report.Seen++
			activity, ok := fs.convert(item, report)
			if ok {
				activities = append(activities, activity)
			}
		}
	}
	report.Kept = len(activities)

	if err := fs.store.Save(activities); err != nil {
		return nil, fmt.Errorf("save table: %w", err)
	}
	report.Duration = time.Since(started)
	fs.logger.Infof(providers.TypeFetch, "Fetched %d pages, kept %d of %d activities (no route: %d, undecodable: %d)",
		report.Pages, report.Kept, report.Seen, report.SkippedNoRoute, report.SkippedDecode)
	return report, nil
}

func (fs *FetchService) convert(item strava.SummaryActivity, report *FetchReport) (*models.Activity, bool) {
	if !item.IsRun() {
		report.SkippedNotRun++
		return nil, false
	}
	if !item.HasRoute() {
		report.SkippedNoRoute++
		return nil, false
	}
	activity, err := item.ToActivity()
	if err != nil {
		var decodeErr *strava.DecodeError
		if errors.As(err, &decodeErr) {
			report.SkippedDecode++
			fs.logger.Warnf(providers.TypeFetch, "Skipping activity: %s", err)
			return nil, false
		}
		fs.logger.Errorf(providers.TypeFetch, "Skipping activity %q: %s", item.Name, err)
		return nil, false
	}
	return activity, true
}
