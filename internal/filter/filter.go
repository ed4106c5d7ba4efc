package filter

import (
	"hrdash/domain/employee"
	"hrdash/internal/dataset"
)

// Apply keeps the rows whose Department, JobRole and Gender are all selected.
// Values within a dimension are OR-ed; dimensions are AND-ed. Row order is
// preserved. An empty dimension (or a value absent from the table) simply
// yields fewer rows; an empty view is not an error here.
func Apply(table *dataset.Table, sel employee.Selection) dataset.View {
	sets := make([]map[string]struct{}, len(employee.FilterColumns))
	columns := make([][]string, len(employee.FilterColumns))
	for i, col := range employee.FilterColumns {
		sets[i] = toSet(sel.Dimension(col))
		if len(sets[i]) == 0 {
			return dataset.NewView(table, []int{})
		}
		columns[i] = table.All().Strings(col)
	}

	rows := make([]int, 0, table.Len())
	for r := 0; r < table.Len(); r++ {
		if matches(r, columns, sets) {
			rows = append(rows, r)
		}
	}
	return dataset.NewView(table, rows)
}

// DefaultSelection selects every distinct value of every dimension
func DefaultSelection(table *dataset.Table) employee.Selection {
	return Options(table).All()
}

// Options lists the control values, always computed from the full table
func Options(table *dataset.Table) employee.FilterOptions {
	return table.Options()
}

func matches(row int, columns [][]string, sets []map[string]struct{}) bool {
	for i := range columns {
		if _, ok := sets[i][columns[i][row]]; !ok {
			return false
		}
	}
	return true
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
