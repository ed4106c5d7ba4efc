package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdash/domain/employee"
)

func TestEmployeeDataGenerator_DefaultShape(t *testing.T) {
	data := NewEmployeeDataGenerator(DefaultEmployeeConfig()).Generate()

	require.Len(t, data.Rows, 1470)
	attrition := data.ColumnIndex(employee.ColAttrition)
	leavers := 0
	for _, row := range data.Rows {
		require.Len(t, row, len(EmployeeHeaders))
		if row[attrition] == employee.AttritionYes {
			leavers++
		}
	}
	assert.Equal(t, 237, leavers)
}

func TestEmployeeDataGenerator_Deterministic(t *testing.T) {
	cfg := EmployeeGeneratorConfig{EmployeeCount: 50, LeaverCount: 10, Seed: 7}
	a := NewEmployeeDataGenerator(cfg).Generate()
	b := NewEmployeeDataGenerator(cfg).Generate()
	assert.Equal(t, a.Rows, b.Rows)
}

func TestSmallEmployees_HasRequiredColumns(t *testing.T) {
	data := SmallEmployees()
	for _, col := range employee.RequiredColumns() {
		assert.GreaterOrEqual(t, data.ColumnIndex(col), 0, col)
	}
}
