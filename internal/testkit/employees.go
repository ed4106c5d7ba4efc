package testkit

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"sync/atomic"

	"hrdash/adapters/excel"
	"hrdash/domain/employee"
)

// EmployeeGeneratorConfig configures the synthetic HR dataset
type EmployeeGeneratorConfig struct {
	EmployeeCount int   `json:"employee_count"`
	LeaverCount   int   `json:"leaver_count"`
	Seed          int64 `json:"seed"`
}

// DefaultEmployeeConfig mirrors the shape of the public IBM attrition sample
func DefaultEmployeeConfig() EmployeeGeneratorConfig {
	return EmployeeGeneratorConfig{
		EmployeeCount: 1470,
		LeaverCount:   237,
		Seed:          42,
	}
}

// EmployeeHeaders is the generated column order
var EmployeeHeaders = []string{
	employee.ColAge,
	employee.ColAttrition,
	"BusinessTravel",
	employee.ColDepartment,
	"DistanceFromHome",
	employee.ColEmployeeCount,
	employee.ColEmployeeNumber,
	"EnvironmentSatisfaction",
	employee.ColGender,
	"JobLevel",
	employee.ColJobRole,
	"JobSatisfaction",
	"MaritalStatus",
	employee.ColMonthlyIncome,
	employee.ColOver18,
	employee.ColOverTime,
	employee.ColStandardHours,
	"StockOptionLevel",
	"TotalWorkingYears",
	"YearsAtCompany",
}

type departmentProfile struct {
	name   string
	weight float64
	roles  []string
}

var departments = []departmentProfile{
	{"Sales", 0.30, []string{"Sales Executive", "Sales Representative", "Manager"}},
	{"Research & Development", 0.65, []string{
		"Research Scientist", "Laboratory Technician", "Manufacturing Director",
		"Healthcare Representative", "Research Director", "Manager",
	}},
	{"Human Resources", 0.05, []string{"Human Resources", "Manager"}},
}

// EmployeeDataGenerator produces deterministic employee tables
type EmployeeDataGenerator struct {
	config EmployeeGeneratorConfig
	rng    *rand.Rand
}

// NewEmployeeDataGenerator creates a generator
func NewEmployeeDataGenerator(config EmployeeGeneratorConfig) *EmployeeDataGenerator {
	return &EmployeeDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate returns a raw table with exactly LeaverCount "Yes" attrition rows.
// Leavers skew young, low paid and overtime-heavy so importance has signal.
func (g *EmployeeDataGenerator) Generate() *excel.ExcelData {
	n := g.config.EmployeeCount
	leaver := make([]bool, n)
	for _, idx := range g.rng.Perm(n)[:clamp(g.config.LeaverCount, 0, n)] {
		leaver[idx] = true
	}

	data := &excel.ExcelData{Headers: append([]string(nil), EmployeeHeaders...)}
	for i := 0; i < n; i++ {
		data.Rows = append(data.Rows, g.generateEmployee(i, leaver[i]))
	}
	return data
}

func (g *EmployeeDataGenerator) generateEmployee(i int, left bool) []string {
	dept := g.pickDepartment()
	role := dept.roles[g.rng.Intn(len(dept.roles))]

	age := 37 + g.rng.NormFloat64()*9
	if left {
		age -= 5
	}
	age = math.Round(math.Max(18, math.Min(60, age)))

	level := clamp(int(math.Round((age-18)/10+g.rng.Float64())), 1, 5)
	if left && level > 1 && g.rng.Float64() < 0.5 {
		level--
	}
	income := float64(level)*2800 + g.rng.Float64()*2500
	if role == "Manager" || role == "Research Director" {
		income += 6000
	}

	overtime := g.rng.Float64() < 0.22
	if left {
		overtime = g.rng.Float64() < 0.54
	}

	gender := "Male"
	if g.rng.Float64() < 0.4 {
		gender = "Female"
	}

	attrition := employee.AttritionNo
	if left {
		attrition = employee.AttritionYes
	}

	totalYears := clamp(int(age)-18-g.rng.Intn(6), 0, 40)
	atCompany := clamp(g.rng.Intn(totalYears+1), 0, 40)
	if left && atCompany > 3 {
		atCompany /= 2
	}

	return []string{
		strconv.Itoa(int(age)),
		attrition,
		pick(g.rng, "Travel_Rarely", "Travel_Frequently", "Non-Travel"),
		dept.name,
		strconv.Itoa(1 + g.rng.Intn(29)),
		"1",
		strconv.Itoa(i + 1),
		strconv.Itoa(1 + g.rng.Intn(4)),
		gender,
		strconv.Itoa(level),
		role,
		strconv.Itoa(1 + g.rng.Intn(4)),
		pick(g.rng, "Single", "Married", "Divorced"),
		strconv.Itoa(int(income)),
		"Y",
		yesNo(overtime),
		"80",
		strconv.Itoa(g.rng.Intn(4)),
		strconv.Itoa(totalYears),
		strconv.Itoa(atCompany),
	}
}

func (g *EmployeeDataGenerator) pickDepartment() departmentProfile {
	r := g.rng.Float64()
	for _, d := range departments {
		if r < d.weight {
			return d
		}
		r -= d.weight
	}
	return departments[len(departments)-1]
}

// CSV renders the table as a CSV document
func CSV(data *excel.ExcelData) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(data.Headers)
	_ = w.WriteAll(data.Rows)
	return buf.Bytes()
}

// SmallEmployees is a hand-written table for exact assertions
func SmallEmployees() *excel.ExcelData {
	rows := [][]string{
		{"41", "Yes", "Sales", "Female", "Sales Executive", "5993", "Yes"},
		{"49", "No", "Research & Development", "Male", "Research Scientist", "5130", "No"},
		{"37", "Yes", "Research & Development", "Male", "Laboratory Technician", "2090", "Yes"},
		{"33", "No", "Research & Development", "Female", "Research Scientist", "2909", "Yes"},
		{"27", "No", "Research & Development", "Male", "Laboratory Technician", "3468", "No"},
		{"32", "No", "Sales", "Male", "Sales Representative", "3068", "No"},
		{"59", "No", "Human Resources", "Female", "Human Resources", "2670", "Yes"},
		{"30", "Yes", "Sales", "Male", "Sales Representative", "2693", "No"},
	}

	data := &excel.ExcelData{Headers: []string{
		employee.ColAge, employee.ColAttrition, employee.ColDepartment, employee.ColGender,
		employee.ColJobRole, employee.ColMonthlyIncome, employee.ColOverTime,
		employee.ColEmployeeCount, employee.ColEmployeeNumber, employee.ColOver18, employee.ColStandardHours,
	}}
	for i, r := range rows {
		data.Rows = append(data.Rows, append(r, "1", strconv.Itoa(i+1), "Y", "80"))
	}
	return data
}

// StaticSource serves a fixed table and counts reads
type StaticSource struct {
	Data  *excel.ExcelData
	Err   error
	reads atomic.Int32
}

// ReadTable implements ports.TableSourcePort
func (s *StaticSource) ReadTable(ctx context.Context) (*excel.ExcelData, error) {
	s.reads.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Data, nil
}

// Describe implements ports.TableSourcePort
func (s *StaticSource) Describe() string {
	return fmt.Sprintf("static table (%d rows)", s.rowCount())
}

// Reads returns how many times ReadTable was called
func (s *StaticSource) Reads() int { return int(s.reads.Load()) }

func (s *StaticSource) rowCount() int {
	if s.Data == nil {
		return 0
	}
	return len(s.Data.Rows)
}

func pick(rng *rand.Rand, options ...string) string {
	return options[rng.Intn(len(options))]
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
