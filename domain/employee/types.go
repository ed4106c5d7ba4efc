package employee

import "sort"

// Column names of the HR attrition dataset used by the dashboard
const (
	ColDepartment    = "Department"
	ColJobRole       = "JobRole"
	ColGender        = "Gender"
	ColOverTime      = "OverTime"
	ColAttrition     = "Attrition"
	ColAge           = "Age"
	ColMonthlyIncome = "MonthlyIncome"

	ColEmployeeCount  = "EmployeeCount"
	ColStandardHours  = "StandardHours"
	ColEmployeeNumber = "EmployeeNumber"
	ColOver18         = "Over18"
)

// Attrition labels
const (
	AttritionYes = "Yes"
	AttritionNo  = "No"
)

// DroppedColumns carry no analytical signal (row count, constant hours,
// identifier, constant flag) and are removed at load time.
var DroppedColumns = []string{ColEmployeeCount, ColStandardHours, ColEmployeeNumber, ColOver18}

// AnalysisColumns must survive the load
var AnalysisColumns = []string{
	ColDepartment, ColJobRole, ColGender, ColOverTime, ColAttrition, ColAge, ColMonthlyIncome,
}

// NumericColumns must parse as numbers
var NumericColumns = []string{ColAge, ColMonthlyIncome}

// RequiredColumns returns every column the source header must contain
func RequiredColumns() []string {
	cols := make([]string, 0, len(AnalysisColumns)+len(DroppedColumns))
	cols = append(cols, AnalysisColumns...)
	return append(cols, DroppedColumns...)
}

// Selection is the set of chosen values per filter dimension.
// Within a dimension values are OR-ed, across dimensions AND-ed.
// An empty slice selects nothing.
type Selection struct {
	Departments []string `json:"departments"`
	JobRoles    []string `json:"job_roles"`
	Genders     []string `json:"genders"`
}

// Dimension returns the selected values for a filter column
func (s Selection) Dimension(column string) []string {
	switch column {
	case ColDepartment:
		return s.Departments
	case ColJobRole:
		return s.JobRoles
	case ColGender:
		return s.Genders
	}
	return nil
}

// FilterColumns are the dimensions exposed as multi-select controls, in display order
var FilterColumns = []string{ColDepartment, ColJobRole, ColGender}

// FilterOptions lists the distinct values of each filter dimension in the full table
type FilterOptions struct {
	Departments []string `json:"departments"`
	JobRoles    []string `json:"job_roles"`
	Genders     []string `json:"genders"`
}

// All returns a selection with every option chosen
func (o FilterOptions) All() Selection {
	return Selection{
		Departments: append([]string(nil), o.Departments...),
		JobRoles:    append([]string(nil), o.JobRoles...),
		Genders:     append([]string(nil), o.Genders...),
	}
}

// Metrics are the headline numbers for a filtered view
type Metrics struct {
	Total            int     `json:"total"`
	AttritionCount   int     `json:"attrition_count"`
	AttritionRate    float64 `json:"attrition_rate"`
	AvgMonthlyIncome float64 `json:"avg_monthly_income"`
}

// FeatureScore pairs a column with its importance for predicting attrition
type FeatureScore struct {
	Feature string  `json:"feature"`
	Score   float64 `json:"score"`
}

// Ranking is ordered by descending score
type Ranking []FeatureScore

// Sort orders by score descending, ties broken by feature name
func (r Ranking) Sort() {
	sort.SliceStable(r, func(i, j int) bool {
		if r[i].Score != r[j].Score {
			return r[i].Score > r[j].Score
		}
		return r[i].Feature < r[j].Feature
	})
}

// Top returns at most n leading entries
func (r Ranking) Top(n int) Ranking {
	if n < 0 || len(r) <= n {
		return r
	}
	return r[:n]
}

// Total sums all scores
func (r Ranking) Total() float64 {
	var sum float64
	for _, fs := range r {
		sum += fs.Score
	}
	return sum
}
