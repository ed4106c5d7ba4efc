package charts

import "encoding/json"

// Figure is a Plotly figure: traces plus layout
type Figure struct {
	Data   []map[string]interface{} `json:"data"`
	Layout map[string]interface{}   `json:"layout"`
}

// JSON encodes the figure for embedding in a page script
func (f Figure) JSON() (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Plotly converts a spec to a Plotly figure
func (s Spec) Plotly() Figure {
	fig := Figure{Layout: baseLayout(s.Title)}

	switch s.Kind {
	case KindPie:
		labels, values, colors := []string{}, []float64{}, []string{}
		for _, sl := range s.Pie.Slices {
			labels = append(labels, sl.Label)
			values = append(values, sl.Value)
			colors = append(colors, sl.Color)
		}
		fig.Data = append(fig.Data, map[string]interface{}{
			"type":   "pie",
			"labels": labels,
			"values": values,
			"hole":   s.Pie.Hole,
			"marker": map[string]interface{}{"colors": colors},
		})

	case KindBar:
		labels, values, texts, colors := []string{}, []float64{}, []string{}, []string{}
		for _, b := range s.Bar.Bars {
			labels = append(labels, b.Label)
			values = append(values, b.Value)
			texts = append(texts, b.Text)
			colors = append(colors, b.Color)
		}
		trace := map[string]interface{}{
			"type":         "bar",
			"text":         texts,
			"textposition": "outside",
			"marker":       map[string]interface{}{"color": colors},
		}
		if s.Bar.Horizontal {
			trace["orientation"] = "h"
			trace["x"], trace["y"] = values, labels
			fig.Layout["xaxis"] = map[string]interface{}{"title": s.Bar.ValueTitle}
			fig.Layout["yaxis"] = map[string]interface{}{"title": s.Bar.LabelTitle, "categoryorder": "array", "categoryarray": labels}
		} else {
			trace["x"], trace["y"] = labels, values
			fig.Layout["xaxis"] = map[string]interface{}{"title": s.Bar.LabelTitle}
			fig.Layout["yaxis"] = map[string]interface{}{"title": s.Bar.ValueTitle}
		}
		fig.Data = append(fig.Data, trace)

	case KindTreemap:
		fig.Data = append(fig.Data, map[string]interface{}{
			"type":         "treemap",
			"ids":          s.Treemap.IDs,
			"labels":       s.Treemap.Labels,
			"parents":      s.Treemap.Parents,
			"values":       s.Treemap.Values,
			"branchvalues": "total",
			"root":         map[string]interface{}{"color": s.Treemap.RootColor},
		})

	case KindViolin:
		for _, g := range s.Violin.Groups {
			xs := make([]string, len(g.Values))
			for i := range xs {
				xs[i] = g.Name
			}
			fig.Data = append(fig.Data, map[string]interface{}{
				"type":      "violin",
				"name":      g.Name,
				"x":         xs,
				"y":         g.Values,
				"bandwidth": g.Bandwidth,
				"box":       map[string]interface{}{"visible": true},
				"line":      map[string]interface{}{"color": g.Color},
			})
		}
		fig.Layout["xaxis"] = map[string]interface{}{"title": s.Violin.GroupTitle}
		fig.Layout["yaxis"] = map[string]interface{}{"title": s.Violin.ValueTitle}

	case KindBox:
		for _, tr := range s.Box.Traces {
			var xs []string
			var ys []float64
			for _, b := range tr.Boxes {
				for _, v := range b.Values {
					xs = append(xs, b.Category)
					ys = append(ys, v)
				}
			}
			fig.Data = append(fig.Data, map[string]interface{}{
				"type":   "box",
				"name":   tr.Name,
				"x":      xs,
				"y":      ys,
				"marker": map[string]interface{}{"color": tr.Color},
			})
		}
		fig.Layout["boxmode"] = "group"
		fig.Layout["xaxis"] = map[string]interface{}{"title": s.Box.CategoryTitle}
		fig.Layout["yaxis"] = map[string]interface{}{"title": s.Box.ValueTitle}

	case KindHistogram:
		labels, counts := []string{}, []int{}
		for _, b := range s.Histogram.Bins {
			labels = append(labels, b.Label)
			counts = append(counts, b.Count)
		}
		fig.Data = append(fig.Data, map[string]interface{}{
			"type":   "bar",
			"x":      labels,
			"y":      counts,
			"marker": map[string]interface{}{"color": s.Histogram.Color},
		})
		fig.Layout["bargap"] = 0.05
		fig.Layout["yaxis"] = map[string]interface{}{"title": s.Histogram.ValueTitle}
	}

	return fig
}

func baseLayout(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":         map[string]interface{}{"text": "<b>" + title + "</b>"},
		"plot_bgcolor":  "#ffffff",
		"paper_bgcolor": "#ffffff",
		"font":          map[string]interface{}{"color": "black"},
	}
}
