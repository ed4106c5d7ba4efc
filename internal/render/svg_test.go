package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdash/domain/core"
	"hrdash/domain/employee"
	"hrdash/internal/charts"
	"hrdash/internal/dataset"
	"hrdash/internal/errors"
	"hrdash/internal/testkit"
)

func specs(t *testing.T) []charts.Spec {
	t.Helper()
	table, err := dataset.NewTable(testkit.SmallEmployees(), "small")
	require.NoError(t, err)
	ranking := employee.Ranking{{Feature: "OverTime", Score: 0.4}, {Feature: "Age", Score: 0.2}}
	return charts.BuildAll(table.All(), ranking)
}

func TestSVG_SupportedKinds(t *testing.T) {
	for _, spec := range specs(t) {
		if !Supported(spec.Kind) {
			continue
		}
		t.Run(spec.ID, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, SVG(&buf, spec))
			assert.Contains(t, buf.String(), "<svg")
		})
	}
}

func TestSVG_UnsupportedKinds(t *testing.T) {
	for _, id := range []string{charts.IDLeaverTreemap, charts.IDIncomeByAttrition, charts.IDAgeByOvertime} {
		spec, ok := charts.Find(specs(t), id)
		require.True(t, ok)

		var buf bytes.Buffer
		err := SVG(&buf, spec)
		require.Error(t, err)
		assert.Equal(t, errors.CodeUnsupportedChart, errors.GetCode(err))
		assert.True(t, errors.Is(err, core.ErrUnsupportedChart))
		assert.Zero(t, buf.Len())
	}
}

func TestSVG_EmptyChart(t *testing.T) {
	spec := charts.Spec{ID: "empty", Kind: charts.KindPie, Pie: &charts.PieData{}}
	err := SVG(&bytes.Buffer{}, spec)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestSVG_AllZeroBars(t *testing.T) {
	spec := charts.Spec{ID: "zeros", Kind: charts.KindBar, Bar: &charts.BarData{Bars: []charts.Bar{
		{Label: "Sales", Value: 0, Color: charts.ColorLeaver},
		{Label: "HR", Value: 0, Color: charts.ColorLeaver},
	}}}
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, spec))
	assert.Contains(t, buf.String(), "<svg")
}

func TestBarValues_HorizontalReversed(t *testing.T) {
	values := barValues(&charts.BarData{Horizontal: true, Bars: []charts.Bar{
		{Label: "small", Value: 1, Color: "#000000"},
		{Label: "big", Value: 3, Color: "#000000"},
	}})
	assert.Equal(t, "big", values[0].Label)
	assert.Equal(t, "small", values[1].Label)
}
