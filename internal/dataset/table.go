package dataset

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"hrdash/adapters/excel"
	"hrdash/domain/core"
	"hrdash/domain/employee"
	"hrdash/internal/errors"
)

// ColumnKind separates label-encodable columns from numeric ones
type ColumnKind int

const (
	Categorical ColumnKind = iota
	Numeric
)

func (k ColumnKind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "categorical"
}

// Table is the immutable employee table. It is built once per process and
// shared by every render cycle; nothing mutates it after NewTable returns.
type Table struct {
	frame    dataframe.DataFrame
	names    []string
	kinds    map[string]ColumnKind
	text     map[string][]string
	nums     map[string][]float64
	hash     core.DatasetHash
	source   string
	loadedAt core.Timestamp
}

// NewTable validates the raw header, types the columns and drops the
// non-informative ones
func NewTable(raw *excel.ExcelData, source string) (*Table, error) {
	if raw == nil || len(raw.Rows) == 0 {
		return nil, errors.DataUnavailable("employee table is empty", core.ErrNoRows)
	}

	seen := make(map[string]bool, len(raw.Headers))
	for _, h := range raw.Headers {
		if seen[h] {
			return nil, errors.DataUnavailable(fmt.Sprintf("duplicate column %q in %s", h, source), nil)
		}
		seen[h] = true
	}
	for i, row := range raw.Rows {
		if len(row) != len(raw.Headers) {
			return nil, errors.DataUnavailable(fmt.Sprintf("row %d of %s has %d cells, header has %d", i+1, source, len(row), len(raw.Headers)), nil)
		}
	}
	for _, col := range employee.RequiredColumns() {
		if !seen[col] {
			return nil, errors.DataUnavailable("schema check failed for "+source, core.NewMissingColumnError(col))
		}
	}
	for _, col := range employee.NumericColumns {
		idx := raw.ColumnIndex(col)
		for i, row := range raw.Rows {
			if _, err := strconv.ParseFloat(row[idx], 64); err != nil {
				return nil, errors.DataUnavailable("schema check failed for "+source, core.NewNonNumericError(col, i+1, row[idx]))
			}
		}
	}

	types := map[string]series.Type{
		employee.ColAge:           series.Float,
		employee.ColMonthlyIncome: series.Float,
	}
	for _, col := range []string{employee.ColDepartment, employee.ColJobRole, employee.ColGender, employee.ColOverTime, employee.ColAttrition} {
		types[col] = series.String
	}

	frame := dataframe.LoadRecords(raw.Records(),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithTypes(types),
	)
	if frame.Err != nil {
		return nil, errors.DataUnavailable("failed to build dataframe from "+source, frame.Err)
	}

	frame = frame.Drop(employee.DroppedColumns)
	if frame.Err != nil {
		return nil, errors.DataUnavailable("failed to drop constant columns from "+source, frame.Err)
	}

	t := &Table{
		frame:    frame,
		names:    frame.Names(),
		kinds:    make(map[string]ColumnKind),
		text:     make(map[string][]string),
		nums:     make(map[string][]float64),
		hash:     core.ComputeDatasetHash(raw.Headers, raw.Rows),
		source:   source,
		loadedAt: core.Now(),
	}

	for i, typ := range frame.Types() {
		name := t.names[i]
		t.text[name] = rawColumn(raw, name)
		t.kinds[name] = Categorical
		if typ == series.Int || typ == series.Float {
			values := frame.Col(name).Float()
			if !hasNaN(values) {
				t.kinds[name] = Numeric
				t.nums[name] = values
			}
		}
	}

	return t, nil
}

// Len returns the number of employee records
func (t *Table) Len() int { return t.frame.Nrow() }

// Columns returns the column names in source order, after dropping
func (t *Table) Columns() []string {
	return append([]string(nil), t.names...)
}

// HasColumn reports whether a column survived the load
func (t *Table) HasColumn(name string) bool {
	_, ok := t.kinds[name]
	return ok
}

// Kind reports whether a column is categorical or numeric
func (t *Table) Kind(name string) ColumnKind { return t.kinds[name] }

// Hash fingerprints the source content
func (t *Table) Hash() core.DatasetHash { return t.hash }

// Source describes where the table was read from
func (t *Table) Source() string { return t.source }

// LoadedAt is when the table was built
func (t *Table) LoadedAt() core.Timestamp { return t.loadedAt }

// Distinct returns a column's distinct values in order of first appearance
func (t *Table) Distinct(name string) []string {
	values := t.text[name]
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Options lists the filter control values, computed from the full table
func (t *Table) Options() employee.FilterOptions {
	return employee.FilterOptions{
		Departments: t.Distinct(employee.ColDepartment),
		JobRoles:    t.Distinct(employee.ColJobRole),
		Genders:     t.Distinct(employee.ColGender),
	}
}

// All returns a view over every row in original order
func (t *Table) All() View {
	rows := make([]int, t.Len())
	for i := range rows {
		rows[i] = i
	}
	return View{table: t, rows: rows}
}

// rawColumn keeps source formatting; gota renders floats with fixed precision
func rawColumn(raw *excel.ExcelData, name string) []string {
	idx := raw.ColumnIndex(name)
	out := make([]string, len(raw.Rows))
	for i, row := range raw.Rows {
		out[i] = row[idx]
	}
	return out
}

func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// value returns the textual cell at (row, column)
func (t *Table) value(row int, name string) string {
	return t.text[name][row]
}
