package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rivalradar/rivalradar/config"
	"github.com/rivalradar/rivalradar/internal/core"
	"github.com/rivalradar/rivalradar/internal/domain/model"
	"github.com/rivalradar/rivalradar/internal/domain/run"
	"github.com/rivalradar/rivalradar/internal/normalize"
)

// SiteProfileServiceOptions groups dependencies for SiteProfileService.
type SiteProfileServiceOptions struct {
	Scraper core.ScrapeClient
	Reports *ReportService
	Config  config.ScraperConfig
	Logger  *slog.Logger

	// Fallback names what to substitute when the run fails. Defaults to
	// propagating the failure into the persisted record.
	Fallback run.FallbackPolicy

	// Wait overrides the inter-poll delay, used by tests.
	Wait func(ctx context.Context, d time.Duration) error
}

// SiteProfileService scrapes a site's landing page and normalizes its
// metadata into a SiteProfile record.
type SiteProfileService struct {
	scraper  core.ScrapeClient
	reports  *ReportService
	cfg      config.ScraperConfig
	logger   *slog.Logger
	fallback run.FallbackPolicy
	wait     func(ctx context.Context, d time.Duration) error
}

// NewSiteProfileService constructs a new SiteProfileService.
func NewSiteProfileService(opts SiteProfileServiceOptions) *SiteProfileService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fallback := opts.Fallback
	if fallback == "" {
		fallback = run.FallbackPropagate
	}
	return &SiteProfileService{
		scraper:  opts.Scraper,
		reports:  opts.Reports,
		cfg:      opts.Config,
		logger:   logger,
		fallback: fallback,
		wait:     opts.Wait,
	}
}

// Analyze runs the site profile pipeline for an already persisted running
// report and writes the final record. The returned error is the pipeline
// cause for logging; the persisted record always reflects the outcome.
func (s *SiteProfileService) Analyze(ctx context.Context, report *model.Report) error {
	items, err := scrapeItems(ctx, s.scraper, s.logger, s.wait, scrapeSpec{
		actor:       s.cfg.PageActor,
		urls:        []string{report.TargetURL},
		options:     map[string]any{"maxCrawlPages": 1},
		interval:    s.cfg.PagePollInterval,
		maxAttempts: s.cfg.PageMaxAttempts,
	})
	if err != nil {
		if s.fallback == run.FallbackPropagate {
			return failReport(ctx, s.reports, report, err)
		}
		s.logger.WarnContext(ctx, "site profile scrape failed, substituting defaults",
			"report_id", report.ID, "error", err)
		items = nil
	}

	profile := normalize.SiteProfile(firstItem(items), report.TargetURL)
	return completeReport(ctx, s.reports, report, profile)
}
