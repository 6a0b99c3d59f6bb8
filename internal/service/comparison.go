package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rivalradar/rivalradar/config"
	"github.com/rivalradar/rivalradar/internal/core"
	"github.com/rivalradar/rivalradar/internal/domain/model"
	"github.com/rivalradar/rivalradar/internal/domain/run"
	"github.com/rivalradar/rivalradar/internal/extract"
	"github.com/rivalradar/rivalradar/internal/normalize"
)

// ComparisonServiceOptions groups dependencies for ComparisonService.
type ComparisonServiceOptions struct {
	Scraper   core.ScrapeClient
	Generator core.TextGenerator
	Reports   *ReportService
	Config    config.ScraperConfig
	Logger    *slog.Logger

	// Fallback names what to substitute when a competitor scrape or the
	// verdict generation fails. Defaults to keeping the raw scraped
	// summaries. The primary site failing always fails the report.
	Fallback run.FallbackPolicy

	// Wait overrides the inter-poll delay, used by tests.
	Wait func(ctx context.Context, d time.Duration) error
}

// ComparisonService scrapes the primary site and its competitors
// concurrently, then asks the text model for a comparison verdict.
type ComparisonService struct {
	scraper   core.ScrapeClient
	generator core.TextGenerator
	reports   *ReportService
	cfg       config.ScraperConfig
	logger    *slog.Logger
	fallback  run.FallbackPolicy
	wait      func(ctx context.Context, d time.Duration) error
}

// NewComparisonService constructs a new ComparisonService.
func NewComparisonService(opts ComparisonServiceOptions) *ComparisonService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fallback := opts.Fallback
	if fallback == "" {
		fallback = run.FallbackRaw
	}
	return &ComparisonService{
		scraper:   opts.Scraper,
		generator: opts.Generator,
		reports:   opts.Reports,
		cfg:       opts.Config,
		logger:    logger,
		fallback:  fallback,
		wait:      opts.Wait,
	}
}

// Analyze runs the comparison pipeline for an already persisted running
// report and writes the final record.
func (s *ComparisonService) Analyze(ctx context.Context, report *model.Report) error {
	primary, competitors, err := s.scrapeAll(ctx, report)
	if err != nil {
		return failReport(ctx, s.reports, report, err)
	}

	comparison := model.Comparison{Primary: primary, Competitors: competitors}

	summariesJSON, err := json.Marshal(comparison)
	if err != nil {
		return failReport(ctx, s.reports, report, fmt.Errorf("marshal summaries: %w", err))
	}

	response, genErr := s.generator.Generate(ctx, comparisonPrompt(string(summariesJSON)))
	switch {
	case genErr != nil && s.fallback == run.FallbackPropagate:
		return failReport(ctx, s.reports, report, genErr)
	case genErr != nil:
		// Keep the raw scraped summaries as the whole payload.
		s.logger.WarnContext(ctx, "comparison verdict generation failed, keeping raw summaries",
			"report_id", report.ID, "error", genErr)
	default:
		if verdict, verr := extract.JSON(response); verr == nil {
			comparison.Verdict = verdict
		} else {
			// Extraction never surfaces to the user.
			s.logger.WarnContext(ctx, "no structured verdict in model response, keeping raw text",
				"report_id", report.ID)
			comparison.RawVerdict = response
		}
	}

	return completeReport(ctx, s.reports, report, comparison)
}

// scrapeAll fetches the primary and competitor profiles concurrently, each
// with its own independent poll loop. A competitor failure degrades to a
// defaults-only profile; a primary failure aborts the whole comparison.
func (s *ComparisonService) scrapeAll(
	ctx context.Context,
	report *model.Report,
) (model.SiteSummary, []model.SiteSummary, error) {
	var primary model.SiteSummary
	competitors := make([]model.SiteSummary, len(report.Competitors))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := s.scrapeProfile(gctx, report.TargetURL)
		if err != nil {
			return fmt.Errorf("primary site %s: %w", report.TargetURL, err)
		}
		primary = model.SiteSummary{URL: report.TargetURL, Profile: profile}
		return nil
	})
	for i, compURL := range report.Competitors {
		g.Go(func() error {
			profile, err := s.scrapeProfile(gctx, compURL)
			if err != nil {
				if s.fallback == run.FallbackPropagate {
					return fmt.Errorf("competitor %s: %w", compURL, err)
				}
				s.logger.WarnContext(gctx, "competitor scrape failed, using defaults",
					"report_id", report.ID, "url", compURL, "error", err)
				profile = normalize.SiteProfile(nil, compURL)
			}
			competitors[i] = model.SiteSummary{URL: compURL, Profile: profile}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.SiteSummary{}, nil, err
	}
	return primary, competitors, nil
}

func (s *ComparisonService) scrapeProfile(ctx context.Context, pageURL string) (model.SiteProfile, error) {
	items, err := scrapeItems(ctx, s.scraper, s.logger, s.wait, scrapeSpec{
		actor:       s.cfg.PageActor,
		urls:        []string{pageURL},
		options:     map[string]any{"maxCrawlPages": 1},
		interval:    s.cfg.PagePollInterval,
		maxAttempts: s.cfg.PageMaxAttempts,
	})
	if err != nil {
		return model.SiteProfile{}, err
	}
	return normalize.SiteProfile(firstItem(items), pageURL), nil
}
