package httpx

import (
	"log/slog"
	"net/http"

	"github.com/rivalradar/rivalradar/internal/domain/model"
	apperrors "github.com/rivalradar/rivalradar/internal/errors"
	"github.com/rivalradar/rivalradar/internal/service"
)

// AnalysisHandlers serves the JSON API the UI polls for report state.
type AnalysisHandlers struct {
	Analyses *service.AnalysisService
	Reports  *service.ReportService
	Logger   *slog.Logger
}

type analysisRequest struct {
	Kind        string   `json:"kind"`
	TargetURL   string   `json:"target_url"`
	Competitors []string `json:"competitors,omitempty"`
}

// Create submits a new analysis and returns the running placeholder record.
// POST /api/analyses
func (h *AnalysisHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	report, err := h.Analyses.Submit(r.Context(), service.AnalyzeRequest{
		Kind:        model.ReportKind(req.Kind),
		TargetURL:   req.TargetURL,
		Competitors: req.Competitors,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusAccepted, report)
}

// Get returns one report by kind and id.
// GET /api/analyses/{kind}/{id}
func (h *AnalysisHandlers) Get(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}

	report, err := h.Reports.Get(r.Context(), kind, r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// List returns all reports of one kind, newest first.
// GET /api/analyses/{kind}
func (h *AnalysisHandlers) List(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}

	reports, err := h.Reports.List(r.Context(), kind)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

// Delete removes one report.
// DELETE /api/analyses/{kind}/{id}
func (h *AnalysisHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	existed, err := h.Reports.Delete(r.Context(), kind, id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !existed {
		WriteAppError(w, apperrors.NotFoundf("report %s not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathKind parses the {kind} path segment, writing a validation error on failure.
func pathKind(w http.ResponseWriter, r *http.Request) (model.ReportKind, bool) {
	kind := model.ReportKind(r.PathValue("kind"))
	if !kind.Valid() {
		WriteAppError(w, apperrors.Validationf("unknown analysis kind %q", kind))
		return "", false
	}
	return kind, true
}
