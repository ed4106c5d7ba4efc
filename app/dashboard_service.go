package app

import (
	"context"
	"time"

	"hrdash/domain/core"
	"hrdash/domain/employee"
	"hrdash/internal"
	"hrdash/internal/charts"
	"hrdash/internal/dataset"
	"hrdash/internal/errors"
	"hrdash/internal/filter"
	"hrdash/internal/metrics"
)

// AdvisoryNoData is shown instead of the dashboard body when a selection matches nothing
const AdvisoryNoData = "No data available based on the current filter settings!"

// TableLoader yields the process-wide employee table
type TableLoader interface {
	Load(ctx context.Context) (*dataset.Table, error)
}

// FeatureRanker scores attrition predictors for a view
type FeatureRanker interface {
	Rank(ctx context.Context, view dataset.View) (employee.Ranking, error)
}

// Dashboard is the output of one render cycle
type Dashboard struct {
	RenderID   core.RenderID          `json:"render_id"`
	Source     string                 `json:"source"`
	Selection  employee.Selection     `json:"selection"`
	Options    employee.FilterOptions `json:"options"`
	Empty      bool                   `json:"empty"`
	Advisory   string                 `json:"advisory,omitempty"`
	Metrics    *employee.Metrics      `json:"metrics,omitempty"`
	Ranking    employee.Ranking       `json:"ranking,omitempty"`
	Charts     []charts.Spec          `json:"charts,omitempty"`
	RenderedAt core.Timestamp         `json:"rendered_at"`
	RuntimeMs  int64                  `json:"runtime_ms"`
}

// DashboardService runs filter → aggregate → rank → chart for a selection
type DashboardService struct {
	loader TableLoader
	ranker FeatureRanker
	logger *internal.Logger
}

// NewDashboardService creates a dashboard service
func NewDashboardService(loader TableLoader, ranker FeatureRanker, logger *internal.Logger) *DashboardService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DashboardService{
		loader: loader,
		ranker: ranker,
		logger: logger.With("Dashboard"),
	}
}

// Options returns the filter control values of the full table
func (s *DashboardService) Options(ctx context.Context) (employee.FilterOptions, error) {
	table, err := s.loader.Load(ctx)
	if err != nil {
		return employee.FilterOptions{}, err
	}
	return filter.Options(table), nil
}

// DefaultSelection selects every value of every dimension
func (s *DashboardService) DefaultSelection(ctx context.Context) (employee.Selection, error) {
	table, err := s.loader.Load(ctx)
	if err != nil {
		return employee.Selection{}, err
	}
	return filter.DefaultSelection(table), nil
}

// Render runs one full cycle. An empty view is not an error: the dashboard
// comes back with Empty set and the advisory text, and neither metrics nor
// the ranker are computed.
func (s *DashboardService) Render(ctx context.Context, sel employee.Selection) (*Dashboard, error) {
	start := time.Now()
	renderID := core.NewRenderID()

	table, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	view := filter.Apply(table, sel)
	d := &Dashboard{
		RenderID:   renderID,
		Source:     table.Source(),
		Selection:  sel,
		Options:    filter.Options(table),
		RenderedAt: core.Now(),
	}

	if view.Empty() {
		d.Empty = true
		d.Advisory = AdvisoryNoData
		d.RuntimeMs = time.Since(start).Milliseconds()
		s.logger.Info("render %s: selection matched no rows", renderID)
		return d, nil
	}

	m := metrics.Aggregate(view)
	d.Metrics = &m

	ranking, err := s.ranker.Rank(ctx, view)
	if err != nil {
		return nil, errors.Wrapf(err, "render %s: ranking failed", renderID)
	}
	d.Ranking = ranking
	d.Charts = charts.BuildAll(view, ranking)
	d.RuntimeMs = time.Since(start).Milliseconds()

	s.logger.Info("render %s: %d rows, %d leavers, %d charts in %dms",
		renderID, m.Total, m.AttritionCount, len(d.Charts), d.RuntimeMs)
	return d, nil
}

// Chart builds a single chart for a selection. Only the top-factors chart
// needs the ranker.
func (s *DashboardService) Chart(ctx context.Context, sel employee.Selection, id string) (charts.Spec, error) {
	table, err := s.loader.Load(ctx)
	if err != nil {
		return charts.Spec{}, err
	}

	view := filter.Apply(table, sel)
	if view.Empty() {
		return charts.Spec{}, errors.EmptySelection()
	}

	switch id {
	case charts.IDTopFactors:
		ranking, err := s.ranker.Rank(ctx, view)
		if err != nil {
			return charts.Spec{}, err
		}
		return charts.TopFactors(ranking), nil
	case charts.IDGenderOfLeavers:
		return charts.GenderOfLeavers(view), nil
	case charts.IDOvertimeOfLeavers:
		return charts.OvertimeOfLeavers(view), nil
	case charts.IDLeaverTreemap:
		return charts.LeaverTreemap(view), nil
	case charts.IDIncomeByAttrition:
		return charts.IncomeByAttrition(view), nil
	case charts.IDAgeByOvertime:
		return charts.AgeByOvertime(view), nil
	case charts.IDAttritionRateByDepartment:
		return charts.AttritionRateByDepartment(view), nil
	case charts.IDAgeBandsOfLeavers:
		return charts.AgeBandsOfLeavers(view), nil
	}
	return charts.Spec{}, errors.WithCode(errors.CodeInvalidInput, core.NewUnknownChartError(id))
}
