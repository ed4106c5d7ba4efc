package app

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hrdash/domain/core"
	"hrdash/domain/employee"
	"hrdash/internal"
	"hrdash/internal/charts"
	"hrdash/internal/dataset"
	"hrdash/internal/errors"
	"hrdash/internal/importance"
	"hrdash/internal/testkit"
)

// countingRanker records calls and returns a fixed ranking
type countingRanker struct {
	calls int
}

func (r *countingRanker) Rank(ctx context.Context, view dataset.View) (employee.Ranking, error) {
	r.calls++
	return employee.Ranking{{Feature: "OverTime", Score: 0.3}, {Feature: "Age", Score: 0.1}}, nil
}

// MockRanker is a testify mock of FeatureRanker
type MockRanker struct {
	mock.Mock
}

func (m *MockRanker) Rank(ctx context.Context, view dataset.View) (employee.Ranking, error) {
	args := m.Called(ctx, view)
	ranking, _ := args.Get(0).(employee.Ranking)
	return ranking, args.Error(1)
}

func quietLogger() *internal.Logger {
	return internal.NewLoggerTo(&bytes.Buffer{}, internal.LogLevelError)
}

func newService(t *testing.T, data func() *testkit.StaticSource, ranker FeatureRanker) *DashboardService {
	t.Helper()
	loader := dataset.NewLoader(data(), quietLogger())
	return NewDashboardService(loader, ranker, quietLogger())
}

func generated() *testkit.StaticSource {
	return &testkit.StaticSource{Data: testkit.NewEmployeeDataGenerator(testkit.DefaultEmployeeConfig()).Generate()}
}

func TestRender_FullSelection(t *testing.T) {
	ranker := importance.NewRanker(importance.DefaultConfig(), quietLogger())
	svc := newService(t, generated, ranker)

	sel, err := svc.DefaultSelection(context.Background())
	require.NoError(t, err)

	d, err := svc.Render(context.Background(), sel)
	require.NoError(t, err)

	assert.False(t, d.Empty)
	assert.Empty(t, d.Advisory)
	require.NotNil(t, d.Metrics)
	assert.Equal(t, 1470, d.Metrics.Total)
	assert.Equal(t, 237, d.Metrics.AttritionCount)
	assert.Equal(t, 16.1, d.Metrics.AttritionRate)
	assert.Len(t, d.Ranking, 10)
	assert.Len(t, d.Charts, 8)
	assert.False(t, d.RenderID.String() == "")
}

func TestRender_UnknownDepartmentIsAdvisory(t *testing.T) {
	ranker := &countingRanker{}
	svc := newService(t, generated, ranker)

	sel, err := svc.DefaultSelection(context.Background())
	require.NoError(t, err)
	sel.Departments = []string{"Legal"}

	d, err := svc.Render(context.Background(), sel)
	require.NoError(t, err)

	assert.True(t, d.Empty)
	assert.Equal(t, AdvisoryNoData, d.Advisory)
	assert.Nil(t, d.Metrics)
	assert.Nil(t, d.Ranking)
	assert.Nil(t, d.Charts)
	assert.Equal(t, 0, ranker.calls)
	assert.NotEmpty(t, d.Options.Departments)
}

func TestRender_OptionsIgnoreSelection(t *testing.T) {
	svc := newService(t, func() *testkit.StaticSource { return &testkit.StaticSource{Data: testkit.SmallEmployees()} }, &countingRanker{})

	d, err := svc.Render(context.Background(), employee.Selection{
		Departments: []string{"Sales"},
		JobRoles:    []string{"Sales Executive"},
		Genders:     []string{"Female"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, d.Metrics.Total)
	assert.Equal(t, []string{"Sales", "Research & Development", "Human Resources"}, d.Options.Departments)
}

func TestRender_LoadFailure(t *testing.T) {
	svc := newService(t, func() *testkit.StaticSource {
		return &testkit.StaticSource{Err: stderrors.New("open WA_Fn-UseC_-HR-Employee-Attrition.csv: no such file")}
	}, &countingRanker{})

	_, err := svc.Render(context.Background(), employee.Selection{})
	require.Error(t, err)
	assert.True(t, core.IsDataUnavailable(err))
	assert.Equal(t, errors.CodeDataUnavailable, errors.GetCode(err))
}

func TestChart_SingleChart(t *testing.T) {
	ranker := &countingRanker{}
	svc := newService(t, func() *testkit.StaticSource { return &testkit.StaticSource{Data: testkit.SmallEmployees()} }, ranker)
	sel, err := svc.DefaultSelection(context.Background())
	require.NoError(t, err)

	spec, err := svc.Chart(context.Background(), sel, charts.IDGenderOfLeavers)
	require.NoError(t, err)
	assert.Equal(t, charts.KindPie, spec.Kind)
	assert.Equal(t, 0, ranker.calls)

	spec, err = svc.Chart(context.Background(), sel, charts.IDTopFactors)
	require.NoError(t, err)
	assert.Equal(t, charts.KindBar, spec.Kind)
	assert.Equal(t, 1, ranker.calls)
}

func TestChart_Errors(t *testing.T) {
	svc := newService(t, func() *testkit.StaticSource { return &testkit.StaticSource{Data: testkit.SmallEmployees()} }, &countingRanker{})
	sel, err := svc.DefaultSelection(context.Background())
	require.NoError(t, err)

	_, err = svc.Chart(context.Background(), sel, "pie-of-everything")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.True(t, errors.Is(err, core.ErrUnknownChart))

	sel.Genders = nil
	_, err = svc.Chart(context.Background(), sel, charts.IDGenderOfLeavers)
	require.Error(t, err)
	assert.True(t, core.IsEmptySelection(err))
}

func TestRender_RankerSeesFilteredView(t *testing.T) {
	ranker := new(MockRanker)
	ranker.On("Rank", mock.Anything, mock.MatchedBy(func(v dataset.View) bool {
		return v.Len() == 3
	})).Return(employee.Ranking{{Feature: "Age", Score: 0.5}}, nil).Once()

	svc := newService(t, func() *testkit.StaticSource {
		return &testkit.StaticSource{Data: testkit.SmallEmployees()}
	}, ranker)

	sel, err := svc.DefaultSelection(context.Background())
	require.NoError(t, err)
	sel.Departments = []string{"Sales"}

	d, err := svc.Render(context.Background(), sel)
	require.NoError(t, err)
	assert.Equal(t, employee.Ranking{{Feature: "Age", Score: 0.5}}, d.Ranking)
	ranker.AssertExpectations(t)
}

func TestRender_RankerFailure(t *testing.T) {
	ranker := new(MockRanker)
	ranker.On("Rank", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)

	svc := newService(t, generated, ranker)
	sel, err := svc.DefaultSelection(context.Background())
	require.NoError(t, err)

	_, err = svc.Render(context.Background(), sel)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	ranker.AssertNumberOfCalls(t, "Rank", 1)
}
