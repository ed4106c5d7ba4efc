package render

import (
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"hrdash/internal/charts"
	"hrdash/internal/errors"
)

const (
	pieSize     = 512
	barHeight   = 420
	barWidthPx  = 48
	barSpacing  = 24
	minBarWidth = 480
)

// Supported reports whether a chart kind can be drawn as SVG
func Supported(kind charts.Kind) bool {
	switch kind {
	case charts.KindPie, charts.KindBar, charts.KindHistogram:
		return true
	}
	return false
}

// SVG draws a pie, bar or histogram spec. Treemaps, violins and box plots
// have no go-chart equivalent and yield UNSUPPORTED_CHART.
func SVG(w io.Writer, spec charts.Spec) error {
	if !Supported(spec.Kind) {
		return errors.UnsupportedChart(string(spec.Kind))
	}
	if spec.Empty() {
		return errors.InvalidInput(fmt.Sprintf("chart %s has no data for this selection", spec.ID))
	}

	var err error
	switch spec.Kind {
	case charts.KindPie:
		err = renderPie(w, spec)
	case charts.KindBar:
		err = renderBar(w, spec.Title, barValues(spec.Bar))
	case charts.KindHistogram:
		err = renderBar(w, spec.Title, histogramValues(spec.Histogram))
	}
	if err != nil {
		return errors.Wrapf(err, "failed to render %s", spec.ID)
	}
	return nil
}

func renderPie(w io.Writer, spec charts.Spec) error {
	var total float64
	values := make([]chart.Value, 0, len(spec.Pie.Slices))
	for _, s := range spec.Pie.Slices {
		total += s.Value
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.0f)", s.Label, s.Value),
			Value: s.Value,
			Style: chart.Style{FillColor: color(s.Color), StrokeColor: drawing.ColorWhite, StrokeWidth: 2},
		})
	}
	if total == 0 {
		return errors.InvalidInput("pie has no non-zero slices")
	}

	pie := chart.PieChart{
		Title:  spec.Title,
		Width:  pieSize,
		Height: pieSize,
		Values: values,
	}
	return pie.Render(chart.SVG, w)
}

func renderBar(w io.Writer, title string, values []chart.Value) error {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		if v.Value > hi {
			hi = v.Value
		}
		if v.Value < lo {
			lo = v.Value
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	width := len(values) * (barWidthPx + barSpacing)
	if width < minBarWidth {
		width = minBarWidth
	}

	bar := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Width:      width,
		Height:     barHeight,
		BarWidth:   barWidthPx,
		BarSpacing: barSpacing,
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: lo, Max: hi * 1.1}},
		Bars:       values,
	}
	return bar.Render(chart.SVG, w)
}

// barValues lists bars largest first; horizontal specs store them ascending
func barValues(data *charts.BarData) []chart.Value {
	values := make([]chart.Value, 0, len(data.Bars))
	for _, b := range data.Bars {
		values = append(values, chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{FillColor: color(b.Color), StrokeColor: color(b.Color)},
		})
	}
	if data.Horizontal {
		for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
			values[i], values[j] = values[j], values[i]
		}
	}
	return values
}

func histogramValues(data *charts.HistogramData) []chart.Value {
	values := make([]chart.Value, 0, len(data.Bins))
	for _, b := range data.Bins {
		values = append(values, chart.Value{
			Label: b.Label,
			Value: float64(b.Count),
			Style: chart.Style{FillColor: color(data.Color), StrokeColor: color(data.Color)},
		})
	}
	return values
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
