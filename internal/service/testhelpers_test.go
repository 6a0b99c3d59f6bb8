package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rivalradar/rivalradar/config"
	"github.com/rivalradar/rivalradar/internal/core"
	"github.com/rivalradar/rivalradar/internal/data"
	"github.com/rivalradar/rivalradar/internal/domain/model"
	"github.com/rivalradar/rivalradar/internal/mocks"
)

// noWait removes the inter-poll delay so poll loops run instantly in tests.
func noWait(context.Context, time.Duration) error { return nil }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testScraperConfig() config.ScraperConfig {
	return config.ScraperConfig{
		PageActor:           "acme~page-crawler",
		ProductActor:        "acme~product-scraper",
		ProductPollInterval: time.Millisecond,
		ProductMaxAttempts:  5,
		PagePollInterval:    time.Millisecond,
		PageMaxAttempts:     5,
	}
}

// testDeps bundles the mocked ports and a memory-backed report service.
type testDeps struct {
	scraper   *mocks.MockScrapeClient
	generator *mocks.MockTextGenerator
	store     *data.MemoryStore
	reports   *ReportService
}

func newTestDeps(t *testing.T) testDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	store := data.NewMemoryStore()
	return testDeps{
		scraper:   mocks.NewMockScrapeClient(ctrl),
		generator: mocks.NewMockTextGenerator(ctrl),
		store:     store,
		reports:   NewReportService(ReportServiceOptions{Store: store}),
	}
}

// newRunningReport persists the running placeholder the dispatcher would
// have written before the pipeline starts.
func newRunningReport(t *testing.T, reports *ReportService, kind model.ReportKind, targetURL string) *model.Report {
	t.Helper()
	report := model.NewReport(kind, targetURL)
	require.NoError(t, reports.Save(context.Background(), report))
	return report
}

// expectRun wires the scrape mocks for one run: submission, the given status
// sequence, and a dataset fetch returning items once SUCCEEDED is observed.
func expectRun(d testDeps, runID, datasetID string, statuses []model.RunStatus, items []map[string]any) {
	d.scraper.EXPECT().
		StartRun(gomock.Any(), gomock.Any()).
		Return(runID, nil)

	calls := make([]any, 0, len(statuses))
	for _, status := range statuses {
		state := core.RunState{Status: status}
		if status == model.RunStatusSucceeded {
			state.DatasetID = datasetID
		}
		calls = append(calls, d.scraper.EXPECT().
			RunStatus(gomock.Any(), runID).
			Return(state, nil))
	}
	gomock.InOrder(calls...)

	if len(statuses) > 0 && statuses[len(statuses)-1] == model.RunStatusSucceeded {
		d.scraper.EXPECT().
			DatasetItems(gomock.Any(), datasetID).
			Return(items, nil)
	}
}

// loadReport reads the persisted record back from the store.
func loadReport(t *testing.T, reports *ReportService, kind model.ReportKind, id string) *model.Report {
	t.Helper()
	report, err := reports.Get(context.Background(), kind, id)
	require.NoError(t, err)
	return report
}

func decodePayload[T any](t *testing.T, payload json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(payload, &out))
	return out
}
