package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/rivalradar/rivalradar/config"
	"github.com/rivalradar/rivalradar/internal/core"
	"github.com/rivalradar/rivalradar/internal/domain/model"
	"github.com/rivalradar/rivalradar/internal/domain/run"
	"github.com/rivalradar/rivalradar/internal/extract"
	"github.com/rivalradar/rivalradar/internal/normalize"
)

// SEOAuditServiceOptions groups dependencies for SEOAuditService.
type SEOAuditServiceOptions struct {
	Scraper   core.ScrapeClient
	Generator core.TextGenerator
	Reports   *ReportService
	Config    config.ScraperConfig
	Logger    *slog.Logger

	// Fallback names what to substitute when the scrape or generation run
	// fails. Extraction failures are always absorbed into the raw response
	// regardless of this policy.
	Fallback run.FallbackPolicy

	// Wait overrides the inter-poll delay, used by tests.
	Wait func(ctx context.Context, d time.Duration) error
}

// SEOAuditService feeds scraped page content to the text model and extracts
// a structured issue list from its answer.
type SEOAuditService struct {
	scraper   core.ScrapeClient
	generator core.TextGenerator
	reports   *ReportService
	cfg       config.ScraperConfig
	logger    *slog.Logger
	fallback  run.FallbackPolicy
	wait      func(ctx context.Context, d time.Duration) error
}

// NewSEOAuditService constructs a new SEOAuditService.
func NewSEOAuditService(opts SEOAuditServiceOptions) *SEOAuditService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fallback := opts.Fallback
	if fallback == "" {
		fallback = run.FallbackPropagate
	}
	return &SEOAuditService{
		scraper:   opts.Scraper,
		generator: opts.Generator,
		reports:   opts.Reports,
		cfg:       opts.Config,
		logger:    logger,
		fallback:  fallback,
		wait:      opts.Wait,
	}
}

// Analyze runs the SEO audit pipeline for an already persisted running report
// and writes the final record.
func (s *SEOAuditService) Analyze(ctx context.Context, report *model.Report) error {
	items, err := scrapeItems(ctx, s.scraper, s.logger, s.wait, scrapeSpec{
		actor:       s.cfg.PageActor,
		urls:        []string{report.TargetURL},
		options:     map[string]any{"maxCrawlPages": 1},
		interval:    s.cfg.PagePollInterval,
		maxAttempts: s.cfg.PageMaxAttempts,
	})
	if err != nil {
		return failReport(ctx, s.reports, report, err)
	}

	pageText := normalize.PageText(firstItem(items))
	response, err := s.generator.Generate(ctx, seoAuditPrompt(report.TargetURL, pageText))
	if err != nil {
		return failReport(ctx, s.reports, report, err)
	}

	audit := model.SEOAudit{SourceURL: report.TargetURL}
	if issues, ok := parseSEOIssues(response); ok {
		audit.Issues = issues
	} else {
		// Extraction never surfaces to the user: keep the raw answer.
		s.logger.WarnContext(ctx, "no structured issues in model response, keeping raw text",
			"report_id", report.ID)
		audit.Issues = []model.SEOIssue{}
		audit.RawResponse = response
	}
	return completeReport(ctx, s.reports, report, audit)
}

// parseSEOIssues extracts the issue list from a model response. The model is
// asked for a bare JSON array, but an object wrapping an "issues" array is
// accepted too.
func parseSEOIssues(response string) ([]model.SEOIssue, bool) {
	raw, err := extract.JSON(response)
	if err != nil {
		return nil, false
	}

	var issues []model.SEOIssue
	if err := json.Unmarshal(raw, &issues); err == nil && len(issues) > 0 {
		return issues, true
	}

	var wrapped struct {
		Issues []model.SEOIssue `json:"issues"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Issues) > 0 {
		return wrapped.Issues, true
	}
	return nil, false
}
