package importance

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"hrdash/domain/core"
	"hrdash/domain/employee"
	"hrdash/internal"
	"hrdash/internal/dataset"
	"hrdash/internal/errors"
)

// Config tunes the forest and the ranking memo
type Config struct {
	Trees     int
	Seed      int64
	TopN      int
	CacheSize int
	// MaxConcurrentFits bounds how many distinct views are fitted at once
	MaxConcurrentFits int64
}

// DefaultConfig returns 100 trees, seed 42, top 10
func DefaultConfig() Config {
	return Config{
		Trees:             100,
		Seed:              42,
		TopN:              10,
		CacheSize:         64,
		MaxConcurrentFits: 2,
	}
}

// Ranker scores how strongly each column predicts Attrition.
// Results are memoized per distinct view; the fitted model is always discarded.
type Ranker struct {
	config Config
	logger *internal.Logger

	group  singleflight.Group
	fitSem *semaphore.Weighted

	mu    sync.Mutex
	cache map[core.ViewHash]employee.Ranking
	order []core.ViewHash

	fits atomic.Int64
}

// NewRanker creates a ranker
func NewRanker(config Config, logger *internal.Logger) *Ranker {
	if config.Trees <= 0 {
		config.Trees = DefaultConfig().Trees
	}
	if config.TopN <= 0 {
		config.TopN = DefaultConfig().TopN
	}
	if config.MaxConcurrentFits <= 0 {
		config.MaxConcurrentFits = DefaultConfig().MaxConcurrentFits
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Ranker{
		config: config,
		logger: logger.With("Ranker"),
		fitSem: semaphore.NewWeighted(config.MaxConcurrentFits),
		cache:  make(map[core.ViewHash]employee.Ranking),
	}
}

// Fits returns how many forests have been trained
func (r *Ranker) Fits() int64 {
	return r.fits.Load()
}

// Rank returns at most TopN features ordered by descending importance.
// A single-class view is not an error: every score is 0.
func (r *Ranker) Rank(ctx context.Context, view dataset.View) (employee.Ranking, error) {
	if view.Empty() {
		return nil, errors.EmptySelection()
	}

	key := view.Hash()
	if ranking, ok := r.cached(key); ok {
		r.logger.Debug("memo hit for view %s", key.Short())
		return ranking, nil
	}

	for {
		ch := r.group.DoChan(key.String(), func() (interface{}, error) {
			if ranking, ok := r.cached(key); ok {
				return ranking, nil
			}
			ranking, err := r.fit(ctx, view)
			if err != nil {
				return nil, err
			}
			r.store(key, ranking)
			return ranking, nil
		})

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-ch:
			if res.Err != nil && ctx.Err() == nil && isCancellation(res.Err) {
				// The caller that started this fit went away. singleflight has
				// already dropped the key, so the next DoChan starts a fresh fit.
				r.logger.Debug("shared fit for view %s was cancelled, refitting", key.Short())
				continue
			}
			if res.Err != nil {
				return nil, res.Err
			}
			if res.Shared {
				r.logger.Debug("shared in-flight fit for view %s", key.Short())
			}
			return clone(res.Val.(employee.Ranking)), nil
		}
	}
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (r *Ranker) fit(ctx context.Context, view dataset.View) (employee.Ranking, error) {
	if err := r.fitSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer r.fitSem.Release(1)

	start := time.Now()
	matrix, err := buildMatrix(view)
	if err != nil {
		return nil, err
	}

	scores, err := fitForest(ctx, matrix, forestParams{
		trees:    r.config.Trees,
		seed:     r.config.Seed,
		minSplit: 2,
	})
	if err != nil {
		return nil, err
	}
	r.fits.Add(1)

	ranking := make(employee.Ranking, len(scores))
	for i, s := range scores {
		ranking[i] = employee.FeatureScore{Feature: matrix.names[i], Score: s}
	}
	ranking.Sort()
	ranking = ranking.Top(r.config.TopN)

	r.logger.Info("fitted %d trees on %d rows x %d features in %.2fms",
		r.config.Trees, matrix.nSamples(), len(matrix.names), float64(time.Since(start).Nanoseconds())/1e6)
	return ranking, nil
}

// buildMatrix label-encodes a working copy of the view. Attrition is the
// label; every other column is a feature.
func buildMatrix(view dataset.View) (*featureMatrix, error) {
	frame := view.Frame()
	if frame.Err != nil {
		return nil, errors.Wrap(frame.Err, "failed to copy view")
	}
	table := view.Table()

	labels := fitLabelEncoder(frame.Col(employee.ColAttrition).Records())
	m := &featureMatrix{
		y:        labels.transform(frame.Col(employee.ColAttrition).Records()),
		nClasses: len(labels.classes),
	}

	for _, name := range frame.Names() {
		if name == employee.ColAttrition {
			continue
		}
		col := frame.Col(name)
		var values []float64
		if table.Kind(name) == dataset.Numeric {
			values = col.Float()
		} else {
			records := col.Records()
			values = fitLabelEncoder(records).transformFloat(records)
		}
		if len(values) != len(m.y) {
			return nil, errors.InternalError(fmt.Sprintf("column %s has %d values, expected %d", name, len(values), len(m.y)))
		}
		m.names = append(m.names, name)
		m.x = append(m.x, values)
	}
	return m, nil
}

func (r *Ranker) cached(key core.ViewHash) (employee.Ranking, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ranking, ok := r.cache[key]
	if !ok {
		return nil, false
	}
	return clone(ranking), true
}

// store keeps at most CacheSize rankings, evicting the oldest first
func (r *Ranker) store(key core.ViewHash, ranking employee.Ranking) {
	if r.config.CacheSize <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cache[key]; ok {
		return
	}
	for len(r.order) >= r.config.CacheSize {
		delete(r.cache, r.order[0])
		r.order = r.order[1:]
	}
	r.cache[key] = ranking
	r.order = append(r.order, key)
}

func clone(r employee.Ranking) employee.Ranking {
	return append(employee.Ranking(nil), r...)
}
