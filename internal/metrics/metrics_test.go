package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdash/domain/employee"
	"hrdash/internal/dataset"
	"hrdash/internal/testkit"
)

func TestAggregate_FullGeneratedTable(t *testing.T) {
	table, err := dataset.NewTable(testkit.NewEmployeeDataGenerator(testkit.DefaultEmployeeConfig()).Generate(), "generated")
	require.NoError(t, err)

	m := Aggregate(table.All())
	assert.Equal(t, 1470, m.Total)
	assert.Equal(t, 237, m.AttritionCount)
	assert.Equal(t, 16.1, m.AttritionRate)
	assert.False(t, math.IsNaN(m.AvgMonthlyIncome))
	assert.Equal(t, m.AvgMonthlyIncome, math.Round(m.AvgMonthlyIncome))
}

func TestAggregate_SmallTable(t *testing.T) {
	table, err := dataset.NewTable(testkit.SmallEmployees(), "small")
	require.NoError(t, err)

	m := Aggregate(table.All())
	assert.Equal(t, 8, m.Total)
	assert.Equal(t, 3, m.AttritionCount)
	assert.Equal(t, 37.5, m.AttritionRate)
	// (5993+5130+2090+2909+3468+3068+2670+2693)/8 = 3502.625
	assert.Equal(t, 3503.0, m.AvgMonthlyIncome)
}

func TestAggregate_EmptyView(t *testing.T) {
	table, err := dataset.NewTable(testkit.SmallEmployees(), "small")
	require.NoError(t, err)

	m := Aggregate(table.All().Where(employee.ColDepartment, "Legal"))
	assert.Equal(t, 0, m.Total)
	assert.Equal(t, 0, m.AttritionCount)
	assert.Equal(t, 0.0, m.AttritionRate)
	assert.True(t, math.IsNaN(m.AvgMonthlyIncome))
}

func TestRate_Bounds(t *testing.T) {
	tests := []struct {
		part, total int
		expected    float64
	}{
		{0, 0, 0},
		{0, 10, 0},
		{10, 10, 100},
		{237, 1470, 16.1},
		{1, 3, 33.3},
		{2, 3, 66.7},
	}

	for _, tt := range tests {
		got := Rate(tt.part, tt.total)
		assert.Equal(t, tt.expected, got)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}
