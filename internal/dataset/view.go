package dataset

import (
	"math"

	"github.com/go-gota/gota/dataframe"

	"hrdash/domain/core"
)

// View is an ordered subset of table rows. It holds row indices into the
// parent table, so building one never copies record data.
type View struct {
	table *Table
	rows  []int
}

// NewView creates a view over explicit table row indices.
// Indices must be valid for the table; order is preserved.
func NewView(t *Table, rows []int) View {
	return View{table: t, rows: rows}
}

// Table returns the parent table
func (v View) Table() *Table { return v.table }

// Len returns the number of rows in the view
func (v View) Len() int { return len(v.rows) }

// Empty reports whether the view has no rows
func (v View) Empty() bool { return len(v.rows) == 0 }

// Rows returns a copy of the table row indices in view order
func (v View) Rows() []int {
	out := make([]int, len(v.rows))
	copy(out, v.rows)
	return out
}

// Value returns the textual cell of the i-th view row
func (v View) Value(i int, column string) string {
	return v.table.value(v.rows[i], column)
}

// Strings returns a column's textual cells for the view rows
func (v View) Strings(column string) []string {
	src := v.table.text[column]
	out := make([]string, len(v.rows))
	for i, r := range v.rows {
		out[i] = src[r]
	}
	return out
}

// Floats returns a numeric column's values for the view rows.
// Categorical columns yield NaN.
func (v View) Floats(column string) []float64 {
	src, ok := v.table.nums[column]
	out := make([]float64, len(v.rows))
	for i, r := range v.rows {
		if ok {
			out[i] = src[r]
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// Where narrows the view to rows whose column equals value
func (v View) Where(column, value string) View {
	src := v.table.text[column]
	rows := make([]int, 0, len(v.rows))
	for _, r := range v.rows {
		if src[r] == value {
			rows = append(rows, r)
		}
	}
	return View{table: v.table, rows: rows}
}

// Count returns how many view rows have column == value
func (v View) Count(column, value string) int {
	src := v.table.text[column]
	n := 0
	for _, r := range v.rows {
		if src[r] == value {
			n++
		}
	}
	return n
}

// Hash fingerprints the row set within its table
func (v View) Hash() core.ViewHash {
	return core.ComputeViewHash(v.table.hash, v.rows)
}

// Frame materializes the view as a dataframe copy. Callers own the result.
func (v View) Frame() dataframe.DataFrame {
	if len(v.rows) == v.table.Len() && isIdentity(v.rows) {
		return v.table.frame.Copy()
	}
	return v.table.frame.Subset(v.Rows())
}

func isIdentity(rows []int) bool {
	for i, r := range rows {
		if i != r {
			return false
		}
	}
	return true
}
