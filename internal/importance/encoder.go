package importance

import "sort"

// labelEncoder maps sorted distinct values to 0..k-1.
// One is built per column per ranking call and discarded with the model.
type labelEncoder struct {
	classes []string
	codes   map[string]int
}

func fitLabelEncoder(values []string) *labelEncoder {
	codes := make(map[string]int)
	for _, v := range values {
		codes[v] = 0
	}
	classes := make([]string, 0, len(codes))
	for v := range codes {
		classes = append(classes, v)
	}
	sort.Strings(classes)
	for i, v := range classes {
		codes[v] = i
	}
	return &labelEncoder{classes: classes, codes: codes}
}

func (e *labelEncoder) transform(values []string) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = e.codes[v]
	}
	return out
}

func (e *labelEncoder) transformFloat(values []string) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(e.codes[v])
	}
	return out
}
