package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rivalradar/rivalradar/config"
	"github.com/rivalradar/rivalradar/internal/core"
	"github.com/rivalradar/rivalradar/internal/domain/model"
	"github.com/rivalradar/rivalradar/internal/domain/run"
	"github.com/rivalradar/rivalradar/internal/extract"
	"github.com/rivalradar/rivalradar/internal/normalize"
)

// keywordColumns is the expected column count of the model's markdown table:
// keyword, intent, difficulty, rationale.
const keywordColumns = 4

// KeywordServiceOptions groups dependencies for KeywordService.
type KeywordServiceOptions struct {
	Scraper   core.ScrapeClient
	Generator core.TextGenerator
	Reports   *ReportService
	Config    config.ScraperConfig
	Logger    *slog.Logger

	// Fallback names what to substitute when the run or generation fails.
	// Defaults to the deterministic rule-based keyword list.
	Fallback run.FallbackPolicy

	// Wait overrides the inter-poll delay, used by tests.
	Wait func(ctx context.Context, d time.Duration) error
}

// KeywordService feeds site context to the text model and extracts a keyword
// opportunity table from its answer.
type KeywordService struct {
	scraper   core.ScrapeClient
	generator core.TextGenerator
	reports   *ReportService
	cfg       config.ScraperConfig
	logger    *slog.Logger
	fallback  run.FallbackPolicy
	wait      func(ctx context.Context, d time.Duration) error
}

// NewKeywordService constructs a new KeywordService.
func NewKeywordService(opts KeywordServiceOptions) *KeywordService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fallback := opts.Fallback
	if fallback == "" {
		fallback = run.FallbackMock
	}
	return &KeywordService{
		scraper:   opts.Scraper,
		generator: opts.Generator,
		reports:   opts.Reports,
		cfg:       opts.Config,
		logger:    logger,
		fallback:  fallback,
		wait:      opts.Wait,
	}
}

// Analyze runs the keyword opportunity pipeline for an already persisted
// running report and writes the final record.
func (s *KeywordService) Analyze(ctx context.Context, report *model.Report) error {
	items, err := scrapeItems(ctx, s.scraper, s.logger, s.wait, scrapeSpec{
		actor:       s.cfg.PageActor,
		urls:        []string{report.TargetURL},
		options:     map[string]any{"maxCrawlPages": 1},
		interval:    s.cfg.PagePollInterval,
		maxAttempts: s.cfg.PageMaxAttempts,
	})
	if err != nil {
		return s.substituteOrFail(ctx, report, err)
	}

	pageText := normalize.PageText(firstItem(items))
	response, err := s.generator.Generate(ctx, keywordPrompt(report.TargetURL, report.Competitors, pageText))
	if err != nil {
		return s.substituteOrFail(ctx, report, err)
	}

	opportunities := keywordRows(response)
	if len(opportunities) == 0 {
		// Extraction never surfaces to the user.
		s.logger.WarnContext(ctx, "no keyword table in model response, substituting rule-based list",
			"report_id", report.ID)
		return s.completeRuleBased(ctx, report)
	}

	return completeReport(ctx, s.reports, report, model.KeywordReport{
		SourceURL:     report.TargetURL,
		Opportunities: opportunities,
	})
}

func (s *KeywordService) substituteOrFail(ctx context.Context, report *model.Report, cause error) error {
	if s.fallback != run.FallbackMock {
		return failReport(ctx, s.reports, report, cause)
	}
	s.logger.WarnContext(ctx, "keyword analysis failed, substituting rule-based list",
		"report_id", report.ID, "error", cause)
	return s.completeRuleBased(ctx, report)
}

func (s *KeywordService) completeRuleBased(ctx context.Context, report *model.Report) error {
	return completeReport(ctx, s.reports, report, model.KeywordReport{
		SourceURL:     report.TargetURL,
		Opportunities: ruleBasedKeywords(report.TargetURL, report.Competitors),
		RuleBased:     true,
	})
}

// keywordRows maps extracted table rows onto opportunities positionally.
// Short rows are padded with empty cells rather than dropped.
func keywordRows(response string) []model.KeywordOpportunity {
	rows := extract.Table(response, keywordTableHeader)

	opportunities := make([]model.KeywordOpportunity, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, keywordColumns)
		copy(cells, row)
		if cells[0] == "" {
			continue
		}
		opportunities = append(opportunities, model.KeywordOpportunity{
			Keyword:    cells[0],
			Intent:     cells[1],
			Difficulty: cells[2],
			Rationale:  cells[3],
		})
	}
	return opportunities
}
