package ui

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"

	"hrdash/app"
	"hrdash/domain/employee"
	"hrdash/internal"
	"hrdash/internal/charts"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// Dashboard is what the shell needs from the render-cycle service
type Dashboard interface {
	Render(ctx context.Context, sel employee.Selection) (*app.Dashboard, error)
	Chart(ctx context.Context, sel employee.Selection, id string) (charts.Spec, error)
	DefaultSelection(ctx context.Context) (employee.Selection, error)
}

// App is the browser-facing dashboard
type App struct {
	router            *chi.Mux
	dashboard         Dashboard
	templates         *template.Template
	logger            *internal.Logger
	stylesheet        template.CSS
	stylesheetWarning string
	about             template.HTML
}

// Config holds UI application configuration
type Config struct {
	StylesheetPath string
}

// NewApp creates the UI application. A missing stylesheet is logged and
// noted on the page; the embedded default styling still applies.
func NewApp(config Config, dashboard Dashboard, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	logger = logger.With("UI")

	templates, err := template.New("").Funcs(funcMap()).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	aboutMD, err := embeddedFiles.ReadFile("static/about.md")
	if err != nil {
		return nil, fmt.Errorf("failed to read about panel: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		dashboard: dashboard,
		templates: templates,
		logger:    logger,
		about:     template.HTML(markdown.ToHTML(aboutMD, nil, nil)),
	}
	a.stylesheet, a.stylesheetWarning = loadStylesheet(config.StylesheetPath, logger)

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// loadStylesheet inlines an optional CSS file. A missing file yields the
// warning text for the page instead.
func loadStylesheet(path string, logger *internal.Logger) (template.CSS, string) {
	if path == "" {
		return "", ""
	}
	content, err := os.ReadFile(path)
	if err != nil {
		warning := fmt.Sprintf("CSS file not found: %s", path)
		logger.Warn("%s", warning)
		return "", warning
	}
	return template.CSS(content), ""
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/healthz", a.handleHealth)

	a.router.Get("/api/dashboard", a.handleDashboardJSON)
	a.router.Get("/charts/{chart}.svg", a.handleChartSVG)

	staticFS, _ := fs.Sub(embeddedFiles, "static")
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
}

// Handler exposes the router, for http.Server and tests
func (a *App) Handler() http.Handler {
	return a.router
}

// renderTemplate renders into a buffer first so a template error never
// leaves a half-written page
func (a *App) renderTemplate(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, name, data); err != nil {
		a.logger.Error("template %s: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Warn("write response: %v", err)
	}
}
