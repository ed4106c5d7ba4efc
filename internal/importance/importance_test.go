package importance

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdash/adapters/excel"
	"hrdash/domain/core"
	"hrdash/domain/employee"
	"hrdash/internal"
	"hrdash/internal/dataset"
	"hrdash/internal/errors"
	"hrdash/internal/testkit"
)

func quietLogger() *internal.Logger {
	return internal.NewLoggerTo(&bytes.Buffer{}, internal.LogLevelError)
}

func generatedTable(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.NewTable(testkit.NewEmployeeDataGenerator(testkit.DefaultEmployeeConfig()).Generate(), "generated")
	require.NoError(t, err)
	return table
}

func TestLabelEncoder_SortedCodes(t *testing.T) {
	enc := fitLabelEncoder([]string{"Sales", "Human Resources", "Sales", "Research & Development"})
	assert.Equal(t, []string{"Human Resources", "Research & Development", "Sales"}, enc.classes)
	assert.Equal(t, []int{2, 0, 2, 1}, enc.transform([]string{"Sales", "Human Resources", "Sales", "Research & Development"}))
}

func TestLabelEncoder_FreshPerCall(t *testing.T) {
	a := fitLabelEncoder([]string{"No", "Yes"})
	b := fitLabelEncoder([]string{"Yes"})
	assert.Equal(t, 1, a.codes["Yes"])
	assert.Equal(t, 0, b.codes["Yes"])
}

func TestRank_FullTable(t *testing.T) {
	table := generatedTable(t)
	ranker := NewRanker(DefaultConfig(), quietLogger())

	ranking, err := ranker.Rank(context.Background(), table.All())
	require.NoError(t, err)

	require.Len(t, ranking, 10)
	for i, fs := range ranking {
		assert.GreaterOrEqual(t, fs.Score, 0.0, fs.Feature)
		assert.NotEqual(t, employee.ColAttrition, fs.Feature)
		if i > 0 {
			assert.GreaterOrEqual(t, ranking[i-1].Score, fs.Score)
		}
	}
	assert.LessOrEqual(t, ranking.Total(), 1.0+1e-9)
	assert.Greater(t, ranking.Total(), 0.0)
}

func TestRank_Deterministic(t *testing.T) {
	table := generatedTable(t)
	view := table.All().Where(employee.ColDepartment, "Sales")

	a, err := NewRanker(DefaultConfig(), quietLogger()).Rank(context.Background(), view)
	require.NoError(t, err)
	b, err := NewRanker(DefaultConfig(), quietLogger()).Rank(context.Background(), view)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRank_SingleClassScoresZero(t *testing.T) {
	table := generatedTable(t)
	stayers := table.All().Where(employee.ColAttrition, employee.AttritionNo)

	ranking, err := NewRanker(DefaultConfig(), quietLogger()).Rank(context.Background(), stayers)
	require.NoError(t, err)

	require.NotEmpty(t, ranking)
	for _, fs := range ranking {
		assert.Equal(t, 0.0, fs.Score)
	}
	assert.Equal(t, 0.0, ranking.Total())
}

func TestRank_FewerFeaturesThanTopN(t *testing.T) {
	table, err := dataset.NewTable(testkit.SmallEmployees(), "small")
	require.NoError(t, err)

	ranking, err := NewRanker(DefaultConfig(), quietLogger()).Rank(context.Background(), table.All())
	require.NoError(t, err)
	assert.Len(t, ranking, 6)
}

func TestRank_EmptyView(t *testing.T) {
	table := generatedTable(t)
	_, err := NewRanker(DefaultConfig(), quietLogger()).Rank(context.Background(), table.All().Where(employee.ColGender, "Unknown"))

	require.Error(t, err)
	assert.True(t, core.IsEmptySelection(err))
	assert.Equal(t, errors.CodeEmptySelection, errors.GetCode(err))
}

func TestRank_MemoizedPerView(t *testing.T) {
	table := generatedTable(t)
	cfg := DefaultConfig()
	cfg.Trees = 10
	ranker := NewRanker(cfg, quietLogger())

	all := table.All()
	first, err := ranker.Rank(context.Background(), all)
	require.NoError(t, err)
	second, err := ranker.Rank(context.Background(), all)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), ranker.Fits())

	first[0].Score = 42
	third, err := ranker.Rank(context.Background(), all)
	require.NoError(t, err)
	assert.NotEqual(t, 42.0, third[0].Score)

	_, err = ranker.Rank(context.Background(), all.Where(employee.ColDepartment, "Sales"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), ranker.Fits())
}

func TestRank_ConcurrentIdenticalRequestsShareOneFit(t *testing.T) {
	table := generatedTable(t)
	cfg := DefaultConfig()
	cfg.Trees = 20
	ranker := NewRanker(cfg, quietLogger())

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ranker.Rank(context.Background(), table.All())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), ranker.Fits())
}

func TestRank_CacheEviction(t *testing.T) {
	table := generatedTable(t)
	cfg := DefaultConfig()
	cfg.Trees = 5
	cfg.CacheSize = 1
	ranker := NewRanker(cfg, quietLogger())

	all := table.All()
	sales := all.Where(employee.ColDepartment, "Sales")
	for _, v := range []dataset.View{all, sales, all} {
		_, err := ranker.Rank(context.Background(), v)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), ranker.Fits())
}

func TestRank_CancelledContext(t *testing.T) {
	table := generatedTable(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRanker(DefaultConfig(), quietLogger()).Rank(ctx, table.All())
	require.ErrorIs(t, err, context.Canceled)
}

func TestRank_CancelledCallerDoesNotFailWaiters(t *testing.T) {
	table := generatedTable(t)
	cfg := DefaultConfig()
	cfg.Trees = 5
	cfg.MaxConcurrentFits = 1
	ranker := NewRanker(cfg, quietLogger())

	// Hold the only fit slot so the first caller's fit is still pending when it gives up.
	require.NoError(t, ranker.fitSem.Acquire(context.Background(), 1))

	ctx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := ranker.Rank(ctx, table.All())
		leaderErr <- err
	}()
	time.Sleep(20 * time.Millisecond)

	type result struct {
		ranking employee.Ranking
		err     error
	}
	waiter := make(chan result, 1)
	go func() {
		ranking, err := ranker.Rank(context.Background(), table.All())
		waiter <- result{ranking, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	require.ErrorIs(t, <-leaderErr, context.Canceled)

	time.Sleep(20 * time.Millisecond)
	ranker.fitSem.Release(1)

	select {
	case res := <-waiter:
		require.NoError(t, res.err)
		assert.Len(t, res.ranking, cfg.TopN)
	case <-time.After(10 * time.Second):
		t.Fatal("live caller never received a ranking")
	}
	assert.Equal(t, int64(1), ranker.Fits())
}

func TestFitForest_SignalFeatureDominates(t *testing.T) {
	n := 200
	m := &featureMatrix{names: []string{"signal", "noise"}, nClasses: 2}
	signal := make([]float64, n)
	noise := make([]float64, n)
	m.y = make([]int, n)
	for i := 0; i < n; i++ {
		signal[i] = float64(i)
		noise[i] = float64((i * 7) % 3)
		if i >= n/2 {
			m.y[i] = 1
		}
	}
	m.x = [][]float64{signal, noise}

	scores, err := fitForest(context.Background(), m, forestParams{trees: 20, seed: 42, minSplit: 2})
	require.NoError(t, err)
	assert.Greater(t, scores[0], scores[1])
	assert.InDelta(t, 1.0, scores[0]+scores[1], 1e-9)
}

func TestBuildMatrix_EncodesCategoricals(t *testing.T) {
	raw := testkit.SmallEmployees()
	table, err := dataset.NewTable(&excel.ExcelData{Headers: raw.Headers, Rows: raw.Rows}, "small")
	require.NoError(t, err)

	m, err := buildMatrix(table.All())
	require.NoError(t, err)

	assert.Equal(t, 2, m.nClasses)
	assert.Equal(t, []int{1, 0, 1, 0, 0, 0, 0, 1}, m.y)
	assert.NotContains(t, m.names, employee.ColAttrition)
	assert.Len(t, m.x, len(m.names))

	for i, name := range m.names {
		if name == employee.ColGender {
			assert.Equal(t, []float64{0, 1, 1, 0, 1, 1, 0, 1}, m.x[i])
		}
	}
}
