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

// ProductServiceOptions groups dependencies for ProductService.
type ProductServiceOptions struct {
	Scraper core.ScrapeClient
	Reports *ReportService
	Config  config.ScraperConfig
	Logger  *slog.Logger

	// Fallback names what to substitute when the run fails. Defaults to
	// substituting a deterministic sample catalog.
	Fallback run.FallbackPolicy

	// Wait overrides the inter-poll delay, used by tests.
	Wait func(ctx context.Context, d time.Duration) error
}

// ProductService scrapes product listings and normalizes them into a product
// catalog record.
type ProductService struct {
	scraper  core.ScrapeClient
	reports  *ReportService
	cfg      config.ScraperConfig
	logger   *slog.Logger
	fallback run.FallbackPolicy
	wait     func(ctx context.Context, d time.Duration) error
}

// NewProductService constructs a new ProductService.
func NewProductService(opts ProductServiceOptions) *ProductService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fallback := opts.Fallback
	if fallback == "" {
		fallback = run.FallbackMock
	}
	return &ProductService{
		scraper:  opts.Scraper,
		reports:  opts.Reports,
		cfg:      opts.Config,
		logger:   logger,
		fallback: fallback,
		wait:     opts.Wait,
	}
}

// Analyze runs the product catalog pipeline for an already persisted running
// report and writes the final record.
func (s *ProductService) Analyze(ctx context.Context, report *model.Report) error {
	items, err := scrapeItems(ctx, s.scraper, s.logger, s.wait, scrapeSpec{
		actor:       s.cfg.ProductActor,
		urls:        []string{report.TargetURL},
		interval:    s.cfg.ProductPollInterval,
		maxAttempts: s.cfg.ProductMaxAttempts,
	})
	if err != nil {
		if s.fallback != run.FallbackMock {
			return failReport(ctx, s.reports, report, err)
		}
		s.logger.WarnContext(ctx, "product scrape failed, substituting sample catalog",
			"report_id", report.ID, "error", err)
		return completeReport(ctx, s.reports, report, model.ProductCatalog{
			SourceURL: report.TargetURL,
			Products:  sampleProducts(report.TargetURL),
		})
	}

	catalog := model.ProductCatalog{
		SourceURL: report.TargetURL,
		Products:  normalize.Products(items, report.TargetURL),
	}
	return completeReport(ctx, s.reports, report, catalog)
}
