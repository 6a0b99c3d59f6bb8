package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rivalradar/rivalradar/config"
	"github.com/rivalradar/rivalradar/internal/adapters/apify"
	"github.com/rivalradar/rivalradar/internal/adapters/gemini"
	"github.com/rivalradar/rivalradar/internal/core"
	"github.com/rivalradar/rivalradar/internal/observability/notify"
	"github.com/rivalradar/rivalradar/internal/observability/notify/slack"
	"github.com/rivalradar/rivalradar/internal/observability/statsd"
	"github.com/rivalradar/rivalradar/internal/service"
)

// ServiceContainer holds the constructed application services.
type ServiceContainer struct {
	Reports  *service.ReportService
	Analyses *service.AnalysisService

	Metrics *statsd.Client
}

// ServiceDeps contains everything NewServices needs.
type ServiceDeps struct {
	Config *config.AppConfig
	Store  core.ReportStore
	Logger *slog.Logger
}

// NewServices constructs the full service graph: outbound adapters,
// observability sinks, the five analysis pipelines, and the dispatcher.
func NewServices(ctx context.Context, deps *ServiceDeps) (*ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	scraper, err := apify.NewClient(apify.Options{Config: cfg.Scraper, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("build scrape client: %w", err)
	}
	generator, err := gemini.NewClient(gemini.Options{Config: cfg.AI, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("build text generation client: %w", err)
	}

	metrics, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.Metrics.IsEnabled(),
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  "rivalradar",
		Logger:  logger,
	})
	if err != nil {
		// Metrics are best effort; a dead sink must not stop startup.
		logger.WarnContext(ctx, "statsd sink unavailable, metrics disabled", "error", err)
		metrics, _ = statsd.NewClient(statsd.Config{Enabled: false, Logger: logger})
	}

	var notifier notify.Sink
	if cfg.Observability.Slack.IsEnabled() {
		slackClient, serr := slack.NewClient(slack.Config{
			WebhookURL: cfg.Observability.Slack.WebhookURL,
			Channel:    cfg.Observability.Slack.Channel,
			Username:   cfg.Observability.Slack.Username,
		})
		if serr != nil {
			return nil, fmt.Errorf("build slack notifier: %w", serr)
		}
		notifier = slackClient
		logger.InfoContext(ctx, "slack failure notifications enabled",
			"channel", cfg.Observability.Slack.Channel)
	}

	reports := service.NewReportService(service.ReportServiceOptions{Store: deps.Store})

	analyses := service.NewAnalysisService(service.AnalysisServiceOptions{
		Reports: reports,
		SiteProfile: service.NewSiteProfileService(service.SiteProfileServiceOptions{
			Scraper: scraper, Reports: reports, Config: cfg.Scraper, Logger: logger,
		}),
		Products: service.NewProductService(service.ProductServiceOptions{
			Scraper: scraper, Reports: reports, Config: cfg.Scraper, Logger: logger,
		}),
		SEO: service.NewSEOAuditService(service.SEOAuditServiceOptions{
			Scraper: scraper, Generator: generator, Reports: reports,
			Config: cfg.Scraper, Logger: logger,
		}),
		Keywords: service.NewKeywordService(service.KeywordServiceOptions{
			Scraper: scraper, Generator: generator, Reports: reports,
			Config: cfg.Scraper, Logger: logger,
		}),
		Comparison: service.NewComparisonService(service.ComparisonServiceOptions{
			Scraper: scraper, Generator: generator, Reports: reports,
			Config: cfg.Scraper, Logger: logger,
		}),
		Metrics:  metrics,
		Notifier: notifier,
		Logger:   logger,
	})

	return &ServiceContainer{
		Reports:  reports,
		Analyses: analyses,
		Metrics:  metrics,
	}, nil
}
