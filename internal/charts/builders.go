package charts

import (
	"fmt"
	"math"
	"strings"

	"hrdash/domain/employee"
	"hrdash/internal/dataset"
	"hrdash/internal/metrics"
)

var (
	pastel = []string{"#66C5CC", "#F6CF71", "#F89C74", "#DCB0F2", "#87C55F", "#9EB9F3", "#FE88B1", "#C9DB74", "#8BE0A4", "#B497E7"}
	set2   = []string{"#66C2A5", "#FC8D62", "#8DA0CB", "#E78AC3", "#A6D854", "#FFD92F", "#E5C494", "#B3B3B3"}
	// plasma_r, light to dark
	plasma = []string{"#F0F921", "#FDCA26", "#FB9F3A", "#ED7953", "#D8576B", "#BD3786", "#9C179E", "#7201A8", "#46039F", "#0D0887"}
)

// TreemapRoot labels the treemap's single root node
const TreemapRoot = "All Employees"

// BuildAll returns every chart in display order
func BuildAll(view dataset.View, ranking employee.Ranking) []Spec {
	return []Spec{
		GenderOfLeavers(view),
		OvertimeOfLeavers(view),
		TopFactors(ranking),
		LeaverTreemap(view),
		IncomeByAttrition(view),
		AgeByOvertime(view),
		AttritionRateByDepartment(view),
		AgeBandsOfLeavers(view),
	}
}

// GenderOfLeavers is a donut of Gender among Attrition == Yes rows
func GenderOfLeavers(view dataset.View) Spec {
	return Spec{
		ID:        IDGenderOfLeavers,
		Kind:      KindPie,
		Section:   SectionDemographics,
		Subheader: "Gender Distribution of Leavers",
		Title:     "Gender of Employees Who Left",
		Pie:       countPie(leavers(view), employee.ColGender, pastel),
	}
}

// OvertimeOfLeavers is a donut of OverTime among Attrition == Yes rows
func OvertimeOfLeavers(view dataset.View) Spec {
	return Spec{
		ID:        IDOvertimeOfLeavers,
		Kind:      KindPie,
		Section:   SectionDemographics,
		Subheader: "Overtime Status of Leavers",
		Title:     "Overtime Status of Employees Who Left",
		Pie:       countPie(leavers(view), employee.ColOverTime, set2),
	}
}

// TopFactors draws the ranking as horizontal bars, largest on top
func TopFactors(ranking employee.Ranking) Spec {
	data := &BarData{Horizontal: true, ValueTitle: "importance", LabelTitle: "feature"}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, fs := range ranking {
		lo = math.Min(lo, fs.Score)
		hi = math.Max(hi, fs.Score)
	}
	for i := len(ranking) - 1; i >= 0; i-- {
		fs := ranking[i]
		data.Bars = append(data.Bars, Bar{
			Label: fs.Feature,
			Value: fs.Score,
			Text:  fmt.Sprintf("%.2f", fs.Score),
			Color: ramp(plasma, fs.Score, lo, hi),
		})
	}

	return Spec{
		ID:        IDTopFactors,
		Kind:      KindBar,
		Section:   SectionDrivers,
		Subheader: "Top Predictive Factors of Attrition",
		Title:     "Top 10 Most Important Features",
		Bar:       data,
	}
}

// LeaverTreemap counts leavers under All Employees / Department / JobRole
func LeaverTreemap(view dataset.View) Spec {
	left := leavers(view)
	depts := left.Strings(employee.ColDepartment)
	roles := left.Strings(employee.ColJobRole)

	data := &TreemapData{
		IDs:       []string{TreemapRoot},
		Labels:    []string{TreemapRoot},
		Parents:   []string{""},
		Values:    []float64{float64(left.Len())},
		RootColor: "lightgrey",
	}

	deptOrder := firstAppearance(depts)
	index := make(map[string]int)
	for _, d := range deptOrder {
		id := TreemapRoot + "/" + treemapSegment(d)
		index[id] = len(data.IDs)
		data.IDs = append(data.IDs, id)
		data.Labels = append(data.Labels, d)
		data.Parents = append(data.Parents, TreemapRoot)
		data.Values = append(data.Values, 0)
	}
	for i := range depts {
		deptID := TreemapRoot + "/" + treemapSegment(depts[i])
		data.Values[index[deptID]]++

		roleID := deptID + "/" + treemapSegment(roles[i])
		pos, ok := index[roleID]
		if !ok {
			pos = len(data.IDs)
			index[roleID] = pos
			data.IDs = append(data.IDs, roleID)
			data.Labels = append(data.Labels, roles[i])
			data.Parents = append(data.Parents, deptID)
			data.Values = append(data.Values, 0)
		}
		data.Values[pos]++
	}

	return Spec{
		ID:        IDLeaverTreemap,
		Kind:      KindTreemap,
		Section:   SectionDrivers,
		Subheader: "Attrition Count by Department & Job Role",
		Title:     "Treemap of Employees Who Left",
		Treemap:   data,
	}
}

// IncomeByAttrition is a violin of MonthlyIncome per Attrition group with an
// inner box summary
func IncomeByAttrition(view dataset.View) Spec {
	data := &ViolinData{ValueTitle: employee.ColMonthlyIncome, GroupTitle: employee.ColAttrition}
	for _, group := range firstAppearance(view.Strings(employee.ColAttrition)) {
		values := view.Where(employee.ColAttrition, group).Floats(employee.ColMonthlyIncome)
		summary := summarize(values)
		h := silvermanBandwidth(values, summary)
		data.Groups = append(data.Groups, ViolinGroup{
			Name:      group,
			Color:     attritionColor(group),
			Values:    values,
			Summary:   summary,
			Density:   gaussianKDE(values, summary, h),
			Bandwidth: h,
		})
	}

	return Spec{
		ID:        IDIncomeByAttrition,
		Kind:      KindViolin,
		Section:   SectionCompensation,
		Subheader: "Does Income Make a Difference?",
		Title:     "Income Distribution: Leavers vs. Stayers",
		Violin:    data,
	}
}

// AgeByOvertime boxes Age by OverTime, one colored trace per Attrition value
func AgeByOvertime(view dataset.View) Spec {
	data := &BoxData{
		CategoryTitle: employee.ColOverTime,
		ValueTitle:    employee.ColAge,
		Categories:    firstAppearance(view.Strings(employee.ColOverTime)),
	}

	for _, group := range firstAppearance(view.Strings(employee.ColAttrition)) {
		sub := view.Where(employee.ColAttrition, group)
		trace := BoxTrace{Name: group, Color: attritionColor(group)}
		for _, cat := range data.Categories {
			values := sub.Where(employee.ColOverTime, cat).Floats(employee.ColAge)
			if len(values) == 0 {
				continue
			}
			trace.Boxes = append(trace.Boxes, BoxGroup{Category: cat, Values: values, Summary: summarize(values)})
		}
		data.Traces = append(data.Traces, trace)
	}

	return Spec{
		ID:        IDAgeByOvertime,
		Kind:      KindBox,
		Section:   SectionCompensation,
		Subheader: "How Does Overtime Affect Different Ages?",
		Title:     "Age Distribution by Overtime & Attrition",
		Box:       data,
	}
}

// AttritionRateByDepartment bars the attrition percentage of each department
func AttritionRateByDepartment(view dataset.View) Spec {
	data := &BarData{ValueTitle: "attrition rate (%)", LabelTitle: employee.ColDepartment}
	for _, dept := range firstAppearance(view.Strings(employee.ColDepartment)) {
		sub := view.Where(employee.ColDepartment, dept)
		rate := metrics.Rate(sub.Count(employee.ColAttrition, employee.AttritionYes), sub.Len())
		data.Bars = append(data.Bars, Bar{
			Label: dept,
			Value: rate,
			Text:  fmt.Sprintf("%.1f%%", rate),
			Color: ColorLeaver,
		})
	}

	return Spec{
		ID:        IDAttritionRateByDepartment,
		Kind:      KindBar,
		Section:   SectionSupplementary,
		Subheader: "Which Departments Lose the Most People?",
		Title:     "Attrition Rate by Department",
		Bar:       data,
	}
}

// AgeBandsOfLeavers histograms leaver ages in contiguous 10-year bands
func AgeBandsOfLeavers(view dataset.View) Spec {
	data := &HistogramData{Color: ColorLeaver, ValueTitle: "leavers"}
	ages := leavers(view).Floats(employee.ColAge)

	if len(ages) > 0 {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, a := range ages {
			lo = math.Min(lo, a)
			hi = math.Max(hi, a)
		}
		first := math.Floor(lo/10) * 10
		last := math.Floor(hi/10) * 10
		for start := first; start <= last; start += 10 {
			data.Bins = append(data.Bins, Bin{
				Label: fmt.Sprintf("%.0f-%.0f", start, start+9),
				Lower: start,
				Upper: start + 10,
			})
		}
		for _, a := range ages {
			data.Bins[int((math.Floor(a/10)*10-first)/10)].Count++
		}
	}

	return Spec{
		ID:        IDAgeBandsOfLeavers,
		Kind:      KindHistogram,
		Section:   SectionSupplementary,
		Subheader: "How Old Are the People Who Leave?",
		Title:     "Leavers by Age Band",
		Histogram: data,
	}
}

func leavers(view dataset.View) dataset.View {
	return view.Where(employee.ColAttrition, employee.AttritionYes)
}

func countPie(view dataset.View, column string, palette []string) *PieData {
	values := view.Strings(column)
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}

	pie := &PieData{Hole: 0.4}
	for i, label := range firstAppearance(values) {
		pie.Slices = append(pie.Slices, Slice{
			Label: label,
			Value: float64(counts[label]),
			Color: palette[i%len(palette)],
		})
	}
	return pie
}

func firstAppearance(values []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func attritionColor(value string) string {
	if value == employee.AttritionYes {
		return ColorLeaver
	}
	return ColorStayer
}

// ramp maps v in [lo, hi] onto a palette
func ramp(palette []string, v, lo, hi float64) string {
	if hi <= lo {
		return palette[0]
	}
	pos := int(math.Round((v - lo) / (hi - lo) * float64(len(palette)-1)))
	if pos < 0 {
		pos = 0
	}
	if pos >= len(palette) {
		pos = len(palette) - 1
	}
	return palette[pos]
}

var segmentEscaper = strings.NewReplacer("%", "%25", "/", "%2F")

// treemapSegment escapes a name for use as one path segment of a node id
func treemapSegment(name string) string {
	return segmentEscaper.Replace(name)
}
