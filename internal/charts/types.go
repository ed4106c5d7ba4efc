package charts

// Kind identifies how a chart is drawn
type Kind string

const (
	KindPie       Kind = "pie"
	KindBar       Kind = "bar"
	KindTreemap   Kind = "treemap"
	KindViolin    Kind = "violin"
	KindBox       Kind = "box"
	KindHistogram Kind = "histogram"
)

// Chart identifiers, stable across renders and used in URLs
const (
	IDGenderOfLeavers           = "gender-of-leavers"
	IDOvertimeOfLeavers         = "overtime-of-leavers"
	IDTopFactors                = "top-factors"
	IDLeaverTreemap             = "leaver-treemap"
	IDIncomeByAttrition         = "income-by-attrition"
	IDAgeByOvertime             = "age-by-overtime"
	IDAttritionRateByDepartment = "attrition-rate-by-department"
	IDAgeBandsOfLeavers         = "age-bands-of-leavers"
)

// Page sections in display order
const (
	SectionDemographics  = "Attrition Proportions by Demographics"
	SectionDrivers       = "Key Drivers & Hierarchical Breakdown"
	SectionCompensation  = "Compensation and Demographic Insights"
	SectionSupplementary = "Department and Age Breakdown"
)

// Fixed attrition colors
const (
	ColorLeaver = "#e63946"
	ColorStayer = "#457b9d"
)

// Spec is a declarative chart description. Exactly one payload is set,
// matching Kind.
type Spec struct {
	ID        string `json:"id"`
	Kind      Kind   `json:"kind"`
	Section   string `json:"section"`
	Subheader string `json:"subheader"`
	Title     string `json:"title"`

	Pie       *PieData       `json:"pie,omitempty"`
	Bar       *BarData       `json:"bar,omitempty"`
	Treemap   *TreemapData   `json:"treemap,omitempty"`
	Violin    *ViolinData    `json:"violin,omitempty"`
	Box       *BoxData       `json:"box,omitempty"`
	Histogram *HistogramData `json:"histogram,omitempty"`
}

// Slice is one pie wedge
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type PieData struct {
	Slices []Slice `json:"slices"`
	Hole   float64 `json:"hole"`
}

// Bar is one bar; Text is the label drawn next to it
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
	Color string  `json:"color"`
}

// BarData holds bars in axis order. Horizontal charts list the smallest first
// so the largest bar ends up on top.
type BarData struct {
	Horizontal bool   `json:"horizontal"`
	Bars       []Bar  `json:"bars"`
	ValueTitle string `json:"value_title"`
	LabelTitle string `json:"label_title"`
}

// TreemapData uses the ids/labels/parents/values layout with branch totals
type TreemapData struct {
	IDs       []string  `json:"ids"`
	Labels    []string  `json:"labels"`
	Parents   []string  `json:"parents"`
	Values    []float64 `json:"values"`
	RootColor string    `json:"root_color"`
}

// Summary is a five-number summary plus mean
type Summary struct {
	N      int     `json:"n"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

// DensityPoint is one sample of a kernel density estimate
type DensityPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ViolinGroup struct {
	Name      string         `json:"name"`
	Color     string         `json:"color"`
	Values    []float64      `json:"values"`
	Summary   Summary        `json:"summary"`
	Density   []DensityPoint `json:"density"`
	Bandwidth float64        `json:"bandwidth"`
}

type ViolinData struct {
	ValueTitle string        `json:"value_title"`
	GroupTitle string        `json:"group_title"`
	Groups     []ViolinGroup `json:"groups"`
}

// BoxGroup is one box: the values of a trace within one category
type BoxGroup struct {
	Category string    `json:"category"`
	Values   []float64 `json:"values"`
	Summary  Summary   `json:"summary"`
}

// BoxTrace is one colored series of boxes
type BoxTrace struct {
	Name  string     `json:"name"`
	Color string     `json:"color"`
	Boxes []BoxGroup `json:"boxes"`
}

type BoxData struct {
	CategoryTitle string     `json:"category_title"`
	ValueTitle    string     `json:"value_title"`
	Categories    []string   `json:"categories"`
	Traces        []BoxTrace `json:"traces"`
}

// Bin is a half-open interval [Lower, Upper)
type Bin struct {
	Label string  `json:"label"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type HistogramData struct {
	Bins       []Bin  `json:"bins"`
	Color      string `json:"color"`
	ValueTitle string `json:"value_title"`
}

// Empty reports whether the chart has nothing to draw
func (s Spec) Empty() bool {
	switch s.Kind {
	case KindPie:
		return s.Pie == nil || len(s.Pie.Slices) == 0
	case KindBar:
		return s.Bar == nil || len(s.Bar.Bars) == 0
	case KindTreemap:
		return s.Treemap == nil || len(s.Treemap.IDs) <= 1
	case KindViolin:
		return s.Violin == nil || len(s.Violin.Groups) == 0
	case KindBox:
		return s.Box == nil || len(s.Box.Traces) == 0
	case KindHistogram:
		return s.Histogram == nil || len(s.Histogram.Bins) == 0
	}
	return true
}

// Find returns the spec with the given id
func Find(specs []Spec, id string) (Spec, bool) {
	for _, s := range specs {
		if s.ID == id {
			return s, true
		}
	}
	return Spec{}, false
}
