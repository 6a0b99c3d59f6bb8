// Package httpx wires the HTTP surface: a small JSON API the UI polls for
// report state and the server-rendered HTML pages.
package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	rivalradar "github.com/rivalradar/rivalradar"
	"github.com/rivalradar/rivalradar/internal/service"
)

// templatePathFromRoot is where page templates live on disk, used for hot
// reloading in dev mode.
const templatePathFromRoot = "web/templates"

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Analyses *service.AnalysisService
	Reports  *service.ReportService

	IsDev  bool         // Development mode flag for template hot reloading
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS(services.IsDev),
		DevMode:    services.IsDev,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	apiHandlers := &AnalysisHandlers{
		Analyses: services.Analyses,
		Reports:  services.Reports,
		Logger:   logger,
	}
	uiHandlers := &UIHandlers{
		Renderer: renderer,
		Analyses: services.Analyses,
		Reports:  services.Reports,
		Logger:   logger,
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	mux.HandleFunc("POST /api/analyses", apiHandlers.Create)
	mux.HandleFunc("GET /api/analyses/{kind}", apiHandlers.List)
	mux.HandleFunc("GET /api/analyses/{kind}/{id}", apiHandlers.Get)
	mux.HandleFunc("DELETE /api/analyses/{kind}/{id}", apiHandlers.Delete)

	mux.HandleFunc("GET /", uiHandlers.Dashboard)
	mux.HandleFunc("POST /analyses", uiHandlers.SubmitForm)
	mux.HandleFunc("GET /reports", uiHandlers.ReportList)
	mux.HandleFunc("GET /reports/{kind}/{id}", uiHandlers.ReportDetail)

	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler, nil
}

// templateFS picks the template source: disk in dev mode for hot reloading,
// the embedded filesystem in production.
func templateFS(isDev bool) fs.FS {
	if isDev {
		return os.DirFS(templatePathFromRoot)
	}
	sub, err := fs.Sub(rivalradar.TemplateFS, templatePathFromRoot)
	if err != nil {
		// The embed directive guarantees the directory exists.
		return rivalradar.TemplateFS
	}
	return sub
}
