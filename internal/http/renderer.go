package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// TemplateRenderer renders HTML pages. Each page template is parsed together
// with the shared layout into its own template set so every page can define
// its own "content" block.
type TemplateRenderer struct {
	mu      sync.RWMutex
	pages   map[string]*template.Template
	fsys    fs.FS
	devMode bool // reparse templates on every render
	logger  *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Filesystem containing layout.tmpl and pages/*.tmpl (required)
	DevMode    bool         // Enable template hot reloading
	Logger     *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer constructs a renderer by parsing templates from the provided config.
// In dev mode TemplateFS should be os.DirFS("web/templates") so edits are picked up
// on the next request; in production it is the embedded filesystem.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}

	r := &TemplateRenderer{
		fsys:    cfg.TemplateFS,
		devMode: cfg.DevMode,
		logger:  cfg.Logger,
	}
	pages, err := parsePages(cfg.TemplateFS)
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Error("template parsing failed",
				slog.Any("error", err),
				slog.String("phase", "initialization"),
			)
		}
		return nil, err
	}
	r.pages = pages
	return r, nil
}

func parsePages(fsys fs.FS) (map[string]*template.Template, error) {
	base, err := template.New("layout").Funcs(templateFuncs()).ParseFS(fsys, "layout.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pageFiles, err := fs.Glob(fsys, "pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	if len(pageFiles) == 0 {
		return nil, errors.New("no page templates under pages/")
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		t, err = t.ParseFS(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(file, "pages/"), ".tmpl")
		pages[name] = t
	}
	return pages, nil
}

// Render renders the named page inside the shared layout.
func (r *TemplateRenderer) Render(w http.ResponseWriter, page string, data any) error {
	t, err := r.page(page)
	if err != nil {
		r.logTemplateError(page, err)
		return err
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.logTemplateError(page, err)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		// Client disconnects surface here; nothing left to do.
		return err
	}
	return nil
}

func (r *TemplateRenderer) page(name string) (*template.Template, error) {
	if r.devMode {
		// Dev mode: reparse from disk on each request for hot reloading.
		pages, err := parsePages(r.fsys)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.pages = pages
		r.mu.Unlock()
	}

	r.mu.RLock()
	t, ok := r.pages[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown page template %q", name)
	}
	return t, nil
}

func (r *TemplateRenderer) logTemplateError(page string, err error) {
	if r.logger == nil || err == nil {
		return
	}
	r.logger.Error("template execution failed",
		slog.String("page", page),
		slog.Any("error", err),
	)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"statusLabel": func(status string) string {
			switch status {
			case "running":
				return "Running"
			case "completed":
				return "Completed"
			case "failed":
				return "Failed"
			default:
				return status
			}
		},
		"kindLabel":  kindLabel,
		"formatTime": formatTime,
	}
}

func kindLabel(kind string) string {
	switch kind {
	case "site_profile":
		return "Site Profile"
	case "products":
		return "Product Catalog"
	case "seo_audit":
		return "SEO Audit"
	case "keywords":
		return "Keyword Opportunities"
	case "comparison":
		return "Comparison"
	default:
		return kind
	}
}

// formatTime accepts both time.Time and *time.Time so templates can pass
// CompletedAt without dereferencing.
func formatTime(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("2006-01-02 15:04 MST")
	case *time.Time:
		if t == nil {
			return ""
		}
		return formatTime(*t)
	default:
		return ""
	}
}
