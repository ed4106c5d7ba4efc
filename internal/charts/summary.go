package charts

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// densityPoints is the KDE resolution per violin
const densityPoints = 64

// summarize computes the box statistics of a sample. An empty sample yields N=0.
// Quartiles interpolate linearly so samples of one to three values still get
// finite box edges.
func summarize(data []float64) Summary {
	s := Summary{N: len(data)}
	if len(data) == 0 {
		return s
	}
	s.Min, _ = stats.Min(data)
	s.Max, _ = stats.Max(data)
	s.Mean, _ = stats.Mean(data)
	s.Median, _ = stats.Median(data)

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	s.Q1 = stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	s.Q3 = stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	return s
}

// silvermanBandwidth applies Silverman's rule of thumb,
// 0.9 * min(sd, IQR/1.34) * n^-1/5, falling back to sd or 1 when degenerate.
func silvermanBandwidth(data []float64, s Summary) float64 {
	if len(data) < 2 {
		return 1
	}
	sd := stat.StdDev(data, nil)
	spread := sd
	if iqr := (s.Q3 - s.Q1) / 1.34; iqr > 0 && iqr < spread {
		spread = iqr
	}
	h := 0.9 * spread * math.Pow(float64(len(data)), -0.2)
	if h <= 0 || math.IsNaN(h) {
		return 1
	}
	return h
}

// gaussianKDE evaluates a Gaussian kernel density estimate on an even grid
// spanning two bandwidths beyond the data range
func gaussianKDE(data []float64, s Summary, h float64) []DensityPoint {
	if len(data) == 0 {
		return nil
	}
	kernels := make([]distuv.Normal, len(data))
	for i, x := range data {
		kernels[i] = distuv.Normal{Mu: x, Sigma: h}
	}

	lo, hi := s.Min-2*h, s.Max+2*h
	step := (hi - lo) / float64(densityPoints-1)
	points := make([]DensityPoint, densityPoints)
	for i := range points {
		x := lo + float64(i)*step
		var sum float64
		for _, k := range kernels {
			sum += k.Prob(x)
		}
		points[i] = DensityPoint{X: x, Y: sum / float64(len(data))}
	}
	return points
}
