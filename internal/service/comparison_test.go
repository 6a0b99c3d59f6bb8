package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rivalradar/rivalradar/internal/core"
	"github.com/rivalradar/rivalradar/internal/domain/model"
	"github.com/rivalradar/rivalradar/internal/domain/run"
	apperrors "github.com/rivalradar/rivalradar/internal/errors"
)

func newComparisonService(d testDeps, fallback run.FallbackPolicy) *ComparisonService {
	return NewComparisonService(ComparisonServiceOptions{
		Scraper:   d.scraper,
		Generator: d.generator,
		Reports:   d.reports,
		Config:    testScraperConfig(),
		Logger:    quietLogger(),
		Fallback:  fallback,
		Wait:      noWait,
	})
}

// expectConcurrentRuns wires the scrape mocks so any of the given URLs can be
// submitted in any order; failURLs finish FAILED, the rest succeed with a
// one-item dataset carrying the site title.
func expectConcurrentRuns(d testDeps, urls []string, failURLs map[string]bool) {
	runs := make(map[string]string, len(urls)) // runID -> url

	d.scraper.EXPECT().
		StartRun(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input core.StartRunInput) (string, error) {
			url := input.StartURLs[0]
			runID := "run-" + url
			runs[runID] = url
			return runID, nil
		}).
		Times(len(urls))

	d.scraper.EXPECT().
		RunStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, runID string) (core.RunState, error) {
			url, ok := runs[runID]
			if !ok {
				return core.RunState{}, fmt.Errorf("unknown run %s", runID)
			}
			if failURLs[url] {
				return core.RunState{Status: model.RunStatusFailed}, nil
			}
			return core.RunState{Status: model.RunStatusSucceeded, DatasetID: "ds-" + url}, nil
		}).
		AnyTimes()

	d.scraper.EXPECT().
		DatasetItems(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, datasetID string) ([]map[string]any, error) {
			url := datasetID[len("ds-"):]
			return []map[string]any{{"title": "Title of " + url}}, nil
		}).
		AnyTimes()
}

func newComparisonReport(t *testing.T, d testDeps, competitors ...string) *model.Report {
	t.Helper()
	report := model.NewReport(model.ReportKindComparison, "https://example.com")
	report.Competitors = competitors
	require.NoError(t, d.reports.Save(context.Background(), report))
	return report
}

func TestComparisonService_ExtractsVerdict(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t)
	svc := newComparisonService(d, run.FallbackRaw)

	report := newComparisonReport(t, d, "https://rival.io")
	expectConcurrentRuns(d, []string{"https://example.com", "https://rival.io"}, nil)

	d.generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "Title of https://example.com")
			return "```json\n{\"strengths\":[\"clear pricing\"],\"weaknesses\":[],\"verdict\":\"ahead\"}\n```", nil
		})

	require.NoError(t, svc.Analyze(context.Background(), report))

	saved := loadReport(t, d.reports, model.ReportKindComparison, report.ID)
	assert.Equal(t, model.ReportStatusCompleted, saved.Status)

	comparison := decodePayload[model.Comparison](t, saved.Payload)
	assert.Equal(t, "https://example.com", comparison.Primary.URL)
	assert.Equal(t, "Title of https://example.com", comparison.Primary.Profile.Title)
	require.Len(t, comparison.Competitors, 1)
	assert.Equal(t, "Title of https://rival.io", comparison.Competitors[0].Profile.Title)

	var verdict struct {
		Verdict string `json:"verdict"`
	}
	require.NoError(t, json.Unmarshal(comparison.Verdict, &verdict))
	assert.Equal(t, "ahead", verdict.Verdict)
	assert.Empty(t, comparison.RawVerdict)
}

func TestComparisonService_ProseVerdictKeepsRawText(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t)
	svc := newComparisonService(d, run.FallbackRaw)

	report := newComparisonReport(t, d, "https://rival.io")
	expectConcurrentRuns(d, []string{"https://example.com", "https://rival.io"}, nil)
	d.generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return("Overall the primary site is stronger on content.", nil)

	require.NoError(t, svc.Analyze(context.Background(), report))

	comparison := decodePayload[model.Comparison](t, loadReport(t, d.reports, model.ReportKindComparison, report.ID).Payload)
	assert.Empty(t, comparison.Verdict)
	assert.Equal(t, "Overall the primary site is stronger on content.", comparison.RawVerdict)
}

func TestComparisonService_GenerationFailureKeepsSummaries(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t)
	svc := newComparisonService(d, run.FallbackRaw)

	report := newComparisonReport(t, d, "https://rival.io")
	expectConcurrentRuns(d, []string{"https://example.com", "https://rival.io"}, nil)
	d.generator.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		Return("", apperrors.Transport(fmt.Errorf("connection refused"), "generation request failed"))

	require.NoError(t, svc.Analyze(context.Background(), report))

	saved := loadReport(t, d.reports, model.ReportKindComparison, report.ID)
	assert.Equal(t, model.ReportStatusCompleted, saved.Status)

	comparison := decodePayload[model.Comparison](t, saved.Payload)
	assert.Equal(t, "Title of https://example.com", comparison.Primary.Profile.Title)
	assert.Empty(t, comparison.Verdict)
	assert.Empty(t, comparison.RawVerdict)
}

func TestComparisonService_CompetitorFailureDegradesToDefaults(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t)
	svc := newComparisonService(d, run.FallbackRaw)

	report := newComparisonReport(t, d, "https://rival.io")
	expectConcurrentRuns(d,
		[]string{"https://example.com", "https://rival.io"},
		map[string]bool{"https://rival.io": true})
	d.generator.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("prose", nil)

	require.NoError(t, svc.Analyze(context.Background(), report))

	comparison := decodePayload[model.Comparison](t, loadReport(t, d.reports, model.ReportKindComparison, report.ID).Payload)
	require.Len(t, comparison.Competitors, 1)
	// Defaults-only profile: the page URL stands in for the title.
	assert.Equal(t, "https://rival.io", comparison.Competitors[0].Profile.Title)
}

func TestComparisonService_PrimaryFailureFailsReport(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t)
	svc := newComparisonService(d, run.FallbackRaw)

	report := newComparisonReport(t, d, "https://rival.io")
	expectConcurrentRuns(d,
		[]string{"https://example.com", "https://rival.io"},
		map[string]bool{"https://example.com": true})

	err := svc.Analyze(context.Background(), report)
	require.Error(t, err)
	assert.True(t, apperrors.IsRemoteFailed(err))

	saved := loadReport(t, d.reports, model.ReportKindComparison, report.ID)
	assert.Equal(t, model.ReportStatusFailed, saved.Status)
	assert.Contains(t, saved.Error, "https://example.com")
}
