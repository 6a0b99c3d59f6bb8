package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rivalradar/rivalradar/internal/adapters/apify"
	"github.com/rivalradar/rivalradar/internal/domain/model"
	apperrors "github.com/rivalradar/rivalradar/internal/errors"
	obserrors "github.com/rivalradar/rivalradar/internal/observability/errors"
	"github.com/rivalradar/rivalradar/internal/observability/metrics"
	"github.com/rivalradar/rivalradar/internal/observability/notify"
	"github.com/rivalradar/rivalradar/internal/observability/statsd"
)

// AnalyzeRequest describes one analysis submission.
type AnalyzeRequest struct {
	Kind        model.ReportKind
	TargetURL   string
	Competitors []string
}

// AnalysisServiceOptions groups dependencies for AnalysisService.
type AnalysisServiceOptions struct {
	Reports     *ReportService
	SiteProfile *SiteProfileService
	Products    *ProductService
	SEO         *SEOAuditService
	Keywords    *KeywordService
	Comparison  *ComparisonService

	Metrics  statsd.Sink
	Notifier notify.Sink
	Logger   *slog.Logger

	// Synchronous makes Submit run the pipeline inline instead of in a
	// background goroutine. Used by tests.
	Synchronous bool
}

// AnalysisService validates submissions, writes the running placeholder
// record, and dispatches each report kind to its pipeline in the background.
type AnalysisService struct {
	reports     *ReportService
	siteProfile *SiteProfileService
	products    *ProductService
	seo         *SEOAuditService
	keywords    *KeywordService
	comparison  *ComparisonService

	metrics  statsd.Sink
	notifier notify.Sink
	logger   *slog.Logger
	sync     bool
}

// NewAnalysisService constructs a new AnalysisService.
func NewAnalysisService(opts AnalysisServiceOptions) *AnalysisService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		reports:     opts.Reports,
		siteProfile: opts.SiteProfile,
		products:    opts.Products,
		seo:         opts.SEO,
		keywords:    opts.Keywords,
		comparison:  opts.Comparison,
		metrics:     opts.Metrics,
		notifier:    opts.Notifier,
		logger:      logger,
		sync:        opts.Synchronous,
	}
}

// Submit validates the request, persists the running placeholder so pages can
// poll immediately, and starts the analysis. The returned report is the
// placeholder; callers poll it by ID.
func (s *AnalysisService) Submit(ctx context.Context, req AnalyzeRequest) (*model.Report, error) {
	if !req.Kind.Valid() {
		return nil, apperrors.Validationf("unknown analysis kind %q", req.Kind)
	}

	targetURL, err := apify.NormalizeStartURL(req.TargetURL)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeValidation, "invalid target url %q", req.TargetURL)
	}

	competitors := make([]string, 0, len(req.Competitors))
	for _, raw := range req.Competitors {
		compURL, cerr := apify.NormalizeStartURL(raw)
		if cerr != nil {
			return nil, apperrors.Wrapf(cerr, apperrors.ErrCodeValidation, "invalid competitor url %q", raw)
		}
		competitors = append(competitors, compURL)
	}
	if req.Kind == model.ReportKindComparison && len(competitors) == 0 {
		return nil, apperrors.Validation("comparison requires at least one competitor url")
	}

	report := model.NewReport(req.Kind, targetURL)
	report.Competitors = competitors
	if err := s.reports.Save(ctx, report); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "analysis submitted",
		"report_id", report.ID, "kind", report.Kind, "target_url", targetURL)

	if s.sync {
		s.execute(ctx, report)
	} else {
		// The analysis outlives the submitting request.
		go s.execute(context.WithoutCancel(ctx), report)
	}
	return report, nil
}

func (s *AnalysisService) execute(ctx context.Context, report *model.Report) {
	start := time.Now()
	var err error

	// The deferred block handles metrics, logging, and notification for every
	// exit path, including a panicking pipeline.
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "analysis panicked",
				"report_id", report.ID, "kind", report.Kind, "panic", r)
			report.Fail(fmt.Sprintf("internal error: %v", r))
			if serr := s.reports.Save(ctx, report); serr != nil {
				s.logger.ErrorContext(ctx, "failed to persist panicked report",
					"report_id", report.ID, "error", serr)
			}
			err = apperrors.Internal(fmt.Sprintf("analysis panicked: %v", r))
		}
		duration := time.Since(start)

		result := metrics.ResultSuccess
		if err != nil || report.Status == model.ReportStatusFailed {
			result = metrics.ResultError
		}
		metrics.EmitRunLifecycle(s.metrics, metrics.RunMetric{
			Kind:     string(report.Kind),
			Result:   result,
			Duration: duration,
			Err:      err,
		})

		if err != nil {
			s.logger.ErrorContext(ctx, "analysis failed",
				"report_id", report.ID, "kind", report.Kind, "duration", duration, "error", err)
			s.notifyFailure(ctx, report, err)
			return
		}
		s.logger.InfoContext(ctx, "analysis finished",
			"report_id", report.ID, "kind", report.Kind, "status", report.Status, "duration", duration)
	}()

	err = s.dispatch(ctx, report)
}

func (s *AnalysisService) dispatch(ctx context.Context, report *model.Report) error {
	switch report.Kind {
	case model.ReportKindSiteProfile:
		return s.siteProfile.Analyze(ctx, report)
	case model.ReportKindProducts:
		return s.products.Analyze(ctx, report)
	case model.ReportKindSEOAudit:
		return s.seo.Analyze(ctx, report)
	case model.ReportKindKeywords:
		return s.keywords.Analyze(ctx, report)
	case model.ReportKindComparison:
		return s.comparison.Analyze(ctx, report)
	default:
		return apperrors.Internal(fmt.Sprintf("no pipeline for kind %q", report.Kind))
	}
}

func (s *AnalysisService) notifyFailure(ctx context.Context, report *model.Report, cause error) {
	if s.notifier == nil {
		return
	}
	payload := notify.AnalysisFailurePayload{
		ReportID:   report.ID,
		Kind:       string(report.Kind),
		TargetURL:  report.TargetURL,
		Error:      report.Error,
		ErrorClass: obserrors.Classify(cause),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.notifier.SendAnalysisFailure(ctx, payload); err != nil {
		s.logger.ErrorContext(ctx, "failure notification delivery error",
			"report_id", report.ID, "error", err)
	}
}
