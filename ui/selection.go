package ui

import (
	"net/url"

	"hrdash/domain/employee"
)

// NoneSentinel keeps a dimension present in the query string when the user
// deselects every value. A dimension absent from the query means "all".
const NoneSentinel = "__none__"

// Query parameter per filter column
var queryParams = map[string]string{
	employee.ColDepartment: "department",
	employee.ColJobRole:    "job_role",
	employee.ColGender:     "gender",
}

// ParseSelection reads department, job_role and gender from the query.
// Absent parameters take the default; present ones are taken literally,
// minus the sentinel, so "?gender=__none__" selects no gender.
func ParseSelection(q url.Values, defaults employee.Selection) employee.Selection {
	return employee.Selection{
		Departments: dimension(q, queryParams[employee.ColDepartment], defaults.Departments),
		JobRoles:    dimension(q, queryParams[employee.ColJobRole], defaults.JobRoles),
		Genders:     dimension(q, queryParams[employee.ColGender], defaults.Genders),
	}
}

// EncodeSelection is the inverse of ParseSelection
func EncodeSelection(sel employee.Selection) url.Values {
	q := url.Values{}
	for _, col := range employee.FilterColumns {
		key := queryParams[col]
		q.Add(key, NoneSentinel)
		for _, v := range sel.Dimension(col) {
			q.Add(key, v)
		}
	}
	return q
}

func dimension(q url.Values, key string, defaults []string) []string {
	values, present := q[key]
	if !present {
		return append([]string{}, defaults...)
	}
	out := []string{}
	seen := make(map[string]bool)
	for _, v := range values {
		if v == NoneSentinel || v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// option is one entry of a multi-select control
type option struct {
	Value    string
	Selected bool
}

// control is one sidebar multi-select
type control struct {
	Label   string
	Param   string
	Options []option
}

func controls(opts employee.FilterOptions, sel employee.Selection) []control {
	build := func(label, column string, values []string) control {
		chosen := make(map[string]bool)
		for _, v := range sel.Dimension(column) {
			chosen[v] = true
		}
		c := control{Label: label, Param: queryParams[column]}
		for _, v := range values {
			c.Options = append(c.Options, option{Value: v, Selected: chosen[v]})
		}
		return c
	}
	return []control{
		build("Select Department:", employee.ColDepartment, opts.Departments),
		build("Select Job Role:", employee.ColJobRole, opts.JobRoles),
		build("Select Gender:", employee.ColGender, opts.Genders),
	}
}
