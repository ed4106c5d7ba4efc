package metrics

import (
	"math"

	"github.com/montanaflynn/stats"

	"hrdash/domain/employee"
	"hrdash/internal/dataset"
)

// Aggregate computes the headline numbers for a view.
// AttritionRate is a percentage rounded to one decimal and is 0 for an empty
// view. AvgMonthlyIncome is rounded to the nearest unit and NaN when empty.
func Aggregate(view dataset.View) employee.Metrics {
	m := employee.Metrics{
		Total:            view.Len(),
		AttritionCount:   view.Count(employee.ColAttrition, employee.AttritionYes),
		AvgMonthlyIncome: math.NaN(),
	}

	if m.Total > 0 {
		m.AttritionRate = Rate(m.AttritionCount, m.Total)
	}

	if mean, err := stats.Mean(view.Floats(employee.ColMonthlyIncome)); err == nil {
		m.AvgMonthlyIncome = math.Round(mean)
	}

	return m
}

// Rate returns part/total as a percentage rounded to one decimal
func Rate(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
