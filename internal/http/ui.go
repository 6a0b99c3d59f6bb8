package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/rivalradar/rivalradar/internal/domain/model"
	apperrors "github.com/rivalradar/rivalradar/internal/errors"
	"github.com/rivalradar/rivalradar/internal/service"
)

const recentReportLimit = 10

// UIHandlers serves the server-rendered HTML pages.
type UIHandlers struct {
	Renderer *TemplateRenderer
	Analyses *service.AnalysisService
	Reports  *service.ReportService
	Logger   *slog.Logger
}

// Dashboard renders the landing page with the submission form and recent reports.
// GET /
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	h.renderDashboard(w, r, "")
}

func (h *UIHandlers) renderDashboard(w http.ResponseWriter, r *http.Request, errMsg string) {
	reports, err := h.Reports.ListAll(r.Context())
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "Could not load reports.")
		return
	}
	if len(reports) > recentReportLimit {
		reports = reports[:recentReportLimit]
	}

	builder := NewTemplateData(r, PageMeta{Title: "Dashboard", Active: "dashboard"}).
		With("Reports", reports)
	if errMsg != "" {
		builder.WithError(errMsg)
		w.WriteHeader(http.StatusBadRequest)
	}
	h.render(w, r, "dashboard", builder.Build())
}

// SubmitForm handles the dashboard's analysis form and redirects to the new
// report's detail page, which polls until the analysis finishes.
// POST /analyses
func (h *UIHandlers) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderDashboard(w, r, "Could not read the submitted form.")
		return
	}

	report, err := h.Analyses.Submit(r.Context(), service.AnalyzeRequest{
		Kind:        model.ReportKind(r.PostFormValue("kind")),
		TargetURL:   r.PostFormValue("target_url"),
		Competitors: splitCompetitors(r.PostFormValue("competitors")),
	})
	if err != nil {
		if apperrors.IsValidation(err) {
			h.renderDashboard(w, r, err.Error())
			return
		}
		h.renderError(w, r, http.StatusInternalServerError, "Could not start the analysis.")
		return
	}

	http.Redirect(w, r, reportPath(report.Kind, report.ID), http.StatusSeeOther)
}

// ReportList renders all reports, optionally filtered by kind.
// GET /reports
func (h *UIHandlers) ReportList(w http.ResponseWriter, r *http.Request) {
	var (
		reports []*model.Report
		err     error
	)
	kindFilter := r.URL.Query().Get("kind")
	if kindFilter != "" {
		kind := model.ReportKind(kindFilter)
		if !kind.Valid() {
			h.renderError(w, r, http.StatusNotFound, "Unknown report kind.")
			return
		}
		reports, err = h.Reports.List(r.Context(), kind)
	} else {
		reports, err = h.Reports.ListAll(r.Context())
	}
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "Could not load reports.")
		return
	}

	data := NewTemplateData(r, PageMeta{Title: "Reports", Active: "reports"}).
		With("Reports", reports).
		With("KindFilter", kindFilter).
		Build()
	h.render(w, r, "reports", data)
}

// ReportDetail renders one report. Running reports render a polling
// placeholder; the page refreshes itself until the record is terminal.
// GET /reports/{kind}/{id}
func (h *UIHandlers) ReportDetail(w http.ResponseWriter, r *http.Request) {
	kind := model.ReportKind(r.PathValue("kind"))
	if !kind.Valid() {
		h.NotFound(w, r)
		return
	}

	report, err := h.Reports.Get(r.Context(), kind, r.PathValue("id"))
	if err != nil {
		if apperrors.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.renderError(w, r, http.StatusInternalServerError, "Could not load the report.")
		return
	}

	builder := NewTemplateData(r, PageMeta{Title: kindLabel(string(kind)), Active: "reports"}).
		With("Report", report).
		With("Polling", report.Status == model.ReportStatusRunning)

	if payload, perr := decodeReportPayload(report); perr == nil && payload != nil {
		builder.With("Payload", payload)
	} else if perr != nil && h.Logger != nil {
		h.Logger.Warn("report payload did not decode",
			slog.String("report_id", report.ID),
			slog.Any("error", perr),
		)
	}
	h.render(w, r, "report_detail", builder.Build())
}

// NotFound renders the HTML 404 page.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
}

func (h *UIHandlers) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.WriteHeader(status)
	data := NewTemplateData(r, PageMeta{Title: http.StatusText(status)}).
		With("Status", status).
		With("Message", msg).
		Build()
	if err := h.Renderer.Render(w, "error", data); err != nil {
		// The status line is already written; the body stays short.
		_, _ = w.Write([]byte(msg))
	}
}

func (h *UIHandlers) render(w http.ResponseWriter, r *http.Request, page string, data map[string]any) {
	if err := h.Renderer.Render(w, page, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// decodeReportPayload decodes the stored payload into its kind-specific record
// for typed template rendering. Running reports have no payload yet.
func decodeReportPayload(report *model.Report) (any, error) {
	if len(report.Payload) == 0 {
		return nil, nil
	}
	switch report.Kind {
	case model.ReportKindSiteProfile:
		return decodeAs[model.SiteProfile](report.Payload)
	case model.ReportKindProducts:
		return decodeAs[model.ProductCatalog](report.Payload)
	case model.ReportKindSEOAudit:
		return decodeAs[model.SEOAudit](report.Payload)
	case model.ReportKindKeywords:
		return decodeAs[model.KeywordReport](report.Payload)
	case model.ReportKindComparison:
		return decodeAs[model.Comparison](report.Payload)
	default:
		return nil, nil
	}
}

func decodeAs[T any](raw json.RawMessage) (*T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// splitCompetitors parses the one-URL-per-line competitors textarea.
func splitCompetitors(raw string) []string {
	var urls []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			urls = append(urls, line)
		}
	}
	return urls
}

func reportPath(kind model.ReportKind, id string) string {
	return "/reports/" + url.PathEscape(string(kind)) + "/" + url.PathEscape(id)
}
