package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rivalradar/rivalradar/internal/core"
	"github.com/rivalradar/rivalradar/internal/domain/run"
)

// scrapeSpec parametrizes one remote scrape: which actor, which URLs, the
// actor options, and the poll budget.
type scrapeSpec struct {
	actor       string
	urls        []string
	options     map[string]any
	interval    time.Duration
	maxAttempts int
}

// scrapeItems submits the run, polls it to a terminal state, and fetches the
// dataset. It is the single path every analysis takes to the scraping service.
func scrapeItems(
	ctx context.Context,
	client core.ScrapeClient,
	logger *slog.Logger,
	wait func(ctx context.Context, d time.Duration) error,
	spec scrapeSpec,
) ([]map[string]any, error) {
	out, err := run.Do(ctx, run.Spec[[]map[string]any]{
		Submit: func(ctx context.Context) (string, error) {
			return client.StartRun(ctx, core.StartRunInput{
				Actor:     spec.actor,
				StartURLs: spec.urls,
				Options:   spec.options,
			})
		},
		Status: client.RunStatus,
		Fetch: func(ctx context.Context, state core.RunState) ([]map[string]any, error) {
			return client.DatasetItems(ctx, state.DatasetID)
		},
		Interval:    spec.interval,
		MaxAttempts: spec.maxAttempts,
		Logger:      logger,
		Wait:        wait,
	})
	if err != nil {
		return nil, err
	}
	return out.Result, nil
}

// firstItem returns the first dataset item, or nil for an empty dataset.
func firstItem(items []map[string]any) map[string]any {
	if len(items) == 0 {
		return nil
	}
	return items[0]
}
