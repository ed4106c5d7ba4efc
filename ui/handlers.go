package ui

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"hrdash/app"
	"hrdash/domain/core"
	"hrdash/domain/employee"
	"hrdash/internal/charts"
	"hrdash/internal/errors"
	"hrdash/internal/render"
)

// chartView is one chart prepared for the page
type chartView struct {
	Spec   charts.Spec
	Figure template.JS
	SVG    bool
	Link   template.URL
}

type sectionView struct {
	Title  string
	Charts []chartView
}

type pageData struct {
	Title             string
	Stylesheet        template.CSS
	StylesheetWarning string
	About             template.HTML
	Dashboard         *app.Dashboard
	Controls          []control
	Sections          []sectionView
}

// handleIndex renders the full dashboard page for the query selection
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	sel, err := a.selection(r)
	if err != nil {
		a.renderError(w, err)
		return
	}

	d, err := a.dashboard.Render(r.Context(), sel)
	if err != nil {
		a.renderError(w, err)
		return
	}

	sections, err := groupSections(d.Charts, EncodeSelection(d.Selection).Encode())
	if err != nil {
		a.renderError(w, err)
		return
	}

	a.renderTemplate(w, http.StatusOK, "index.html", pageData{
		Title:             "Executive HR Attrition Analysis",
		Stylesheet:        a.stylesheet,
		StylesheetWarning: a.stylesheetWarning,
		About:             a.about,
		Dashboard:         d,
		Controls:          controls(d.Options, d.Selection),
		Sections:          sections,
	})
}

// handleDashboardJSON returns the render cycle as JSON
func (a *App) handleDashboardJSON(w http.ResponseWriter, r *http.Request) {
	sel, err := a.selection(r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	d, err := a.dashboard.Render(r.Context(), sel)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handleChartSVG draws one chart server-side
func (a *App) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	sel, err := a.selection(r)
	if err != nil {
		a.writeError(w, err)
		return
	}

	spec, err := a.dashboard.Chart(r.Context(), sel, chi.URLParam(r, "chart"))
	if core.IsEmptySelection(err) {
		// no image exists for an empty selection
		a.writeErrorStatus(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		a.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := render.SVG(&buf, spec); err != nil {
		a.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) selection(r *http.Request) (employee.Selection, error) {
	defaults, err := a.dashboard.DefaultSelection(r.Context())
	if err != nil {
		return employee.Selection{}, err
	}
	return ParseSelection(r.URL.Query(), defaults), nil
}

func groupSections(specs []charts.Spec, query string) ([]sectionView, error) {
	var sections []sectionView
	index := make(map[string]int)
	for _, s := range specs {
		fig, err := s.Plotly().JSON()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode chart %s", s.ID)
		}
		pos, ok := index[s.Section]
		if !ok {
			pos = len(sections)
			index[s.Section] = pos
			sections = append(sections, sectionView{Title: s.Section})
		}
		sections[pos].Charts = append(sections[pos].Charts, chartView{
			Spec:   s,
			Figure: template.JS(fig),
			SVG:    render.Supported(s.Kind) && !s.Empty(),
			Link:   template.URL("/charts/" + url.PathEscape(s.ID) + ".svg?" + query),
		})
	}
	return sections, nil
}

// StatusFor maps error codes onto HTTP statuses
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeDataUnavailable:
		return http.StatusServiceUnavailable
	case errors.CodeEmptySelection:
		return http.StatusOK
	case errors.CodeUnsupportedChart:
		return http.StatusUnsupportedMediaType
	case errors.CodeInvalidInput:
		if errors.Is(err, core.ErrUnknownChart) {
			return http.StatusNotFound
		}
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (a *App) renderError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	a.logger.Error("request failed (%d): %v", status, err)
	a.renderTemplate(w, status, "error.html", map[string]interface{}{
		"Title":      "Executive HR Attrition Analysis",
		"Stylesheet": a.stylesheet,
		"Status":     status,
		"Code":       errors.GetCode(err),
		"Message":    err.Error(),
	})
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	a.writeErrorStatus(w, StatusFor(err), err)
}

func (a *App) writeErrorStatus(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed (%d): %v", status, err)
	} else {
		a.logger.Debug("request rejected (%d): %v", status, err)
	}
	body := map[string]string{"code": errors.GetCode(err), "error": err.Error()}
	if core.IsEmptySelection(err) {
		body["advisory"] = app.AdvisoryNoData
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
