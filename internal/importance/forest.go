package importance

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// forestParams configures a random forest classifier
type forestParams struct {
	trees    int
	seed     int64
	minSplit int
}

// featureMatrix is column-major: x[feature][sample]
type featureMatrix struct {
	names    []string
	x        [][]float64
	y        []int
	nClasses int
}

func (m *featureMatrix) nSamples() int { return len(m.y) }

// fitForest grows params.trees fully grown CART trees on bootstrap samples and
// returns mean-decrease-in-impurity importances. Each tree's importances are
// normalized to sum to 1 before averaging; a tree that never splits contributes
// zeros. The context is checked between trees.
func fitForest(ctx context.Context, m *featureMatrix, params forestParams) ([]float64, error) {
	nFeatures := len(m.x)
	total := make([]float64, nFeatures)
	if nFeatures == 0 || m.nSamples() == 0 || params.trees <= 0 {
		return total, nil
	}

	mtry := int(math.Sqrt(float64(nFeatures)))
	if mtry < 1 {
		mtry = 1
	}

	seeds := rand.New(rand.NewSource(params.seed))
	for t := 0; t < params.trees; t++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rng := rand.New(rand.NewSource(seeds.Int63()))
		g := &treeGrower{m: m, rng: rng, mtry: mtry, minSplit: params.minSplit, importance: make([]float64, nFeatures)}
		g.grow(bootstrap(rng, m.nSamples()))

		if sum := floats.Sum(g.importance); sum > 0 {
			floats.Scale(1/sum, g.importance)
			floats.Add(total, g.importance)
		}
	}

	floats.Scale(1/float64(params.trees), total)
	return total, nil
}

func bootstrap(rng *rand.Rand, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.Intn(n)
	}
	return idx
}

// treeGrower builds one tree. Only the impurity bookkeeping is kept; the tree
// structure itself is not needed once importances are known.
type treeGrower struct {
	m          *featureMatrix
	rng        *rand.Rand
	mtry       int
	minSplit   int
	importance []float64
}

// split sends samples with value <= threshold left
type split struct {
	feature   int
	threshold float64
	decrease  float64
	left      []int
	right     []int
}

func (g *treeGrower) grow(root []int) {
	stack := [][]int{root}
	for len(stack) > 0 {
		samples := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(samples) < g.minSplit {
			continue
		}
		counts := g.classCounts(samples)
		impurity := gini(counts, len(samples))
		if impurity == 0 {
			continue
		}

		best, ok := g.bestSplit(samples, impurity)
		if !ok {
			continue
		}
		g.importance[best.feature] += best.decrease
		stack = append(stack, best.right, best.left)
	}
}

// bestSplit evaluates random candidate features until mtry non-constant ones
// have been tried, or every feature has been seen
func (g *treeGrower) bestSplit(samples []int, impurity float64) (split, bool) {
	var best split
	found := false
	bestScore := math.Inf(1)

	visited := 0
	for _, f := range g.rng.Perm(len(g.m.x)) {
		if visited >= g.mtry {
			break
		}
		col := g.m.x[f]
		order := append([]int(nil), samples...)
		sort.SliceStable(order, func(a, b int) bool { return col[order[a]] < col[order[b]] })
		if col[order[0]] == col[order[len(order)-1]] {
			continue
		}
		visited++

		left := make([]int, g.m.nClasses)
		right := g.classCounts(order)
		n := len(order)
		for i := 0; i < n-1; i++ {
			c := g.m.y[order[i]]
			left[c]++
			right[c]--
			if col[order[i]] == col[order[i+1]] {
				continue
			}
			nl, nr := i+1, n-i-1
			score := float64(nl)*gini(left, nl) + float64(nr)*gini(right, nr)
			if score < bestScore {
				bestScore = score
				found = true
				best = split{feature: f, threshold: col[order[i]]}
			}
		}
	}

	if !found {
		return split{}, false
	}

	col := g.m.x[best.feature]
	for _, s := range samples {
		if col[s] <= best.threshold {
			best.left = append(best.left, s)
		} else {
			best.right = append(best.right, s)
		}
	}
	best.decrease = float64(len(samples))*impurity - bestScore
	if best.decrease < 0 {
		best.decrease = 0
	}
	return best, true
}

func (g *treeGrower) classCounts(samples []int) []int {
	counts := make([]int, g.m.nClasses)
	for _, s := range samples {
		counts[g.m.y[s]]++
	}
	return counts
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		sum += p * p
	}
	return 1 - sum
}
