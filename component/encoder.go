package component

import (
	"fmt"
	"sort"

	"github.com/kbukum/automl/frame"
)

// OneHotEncoder expands each column into one indicator column per observed
// category. Values are treated as discrete levels; unknown values at
// transform time produce all-zero indicators.
type OneHotEncoder struct {
	topN       int
	categories map[string][]float64
	fitted     bool
}

// NewOneHotEncoder creates a OneHotEncoder.
// Parameters: "top_n" caps the number of categories per column (default 10).
func NewOneHotEncoder(params Parameters) (Component, error) {
	topN, err := paramInt(params, "top_n", 10)
	if err != nil {
		return nil, invalidParams("OneHotEncoder", err)
	}
	if topN < 1 {
		return nil, invalidParams("OneHotEncoder", fmt.Errorf("top_n must be positive (got %d)", topN))
	}
	return &OneHotEncoder{topN: topN}, nil
}

func (c *OneHotEncoder) Name() string { return "OneHotEncoder" }

// Fit learns up to top_n most frequent categories per column. Ties break by
// ascending value so the encoding is reproducible.
func (c *OneHotEncoder) Fit(X frame.Frame, _ frame.Target) error {
	c.categories = make(map[string][]float64, X.NumCols())
	for _, col := range X.Columns() {
		counts := make(map[float64]int)
		for _, v := range col.Data {
			if !frame.IsNaN(v) {
				counts[v]++
			}
		}
		levels := make([]float64, 0, len(counts))
		for v := range counts {
			levels = append(levels, v)
		}
		sort.Slice(levels, func(i, j int) bool {
			if counts[levels[i]] != counts[levels[j]] {
				return counts[levels[i]] > counts[levels[j]]
			}
			return levels[i] < levels[j]
		})
		if len(levels) > c.topN {
			levels = levels[:c.topN]
		}
		sort.Float64s(levels)
		c.categories[col.Name] = levels
	}
	c.fitted = true
	return nil
}

// Transform emits one indicator column per learned category.
func (c *OneHotEncoder) Transform(X frame.Frame, y frame.Target) (frame.Frame, frame.Target, error) {
	if !c.fitted {
		return frame.Frame{}, nil, notFitted("OneHotEncoder", "transform")
	}
	var cols []frame.Column
	for _, col := range X.Columns() {
		for _, level := range c.categories[col.Name] {
			data := make([]float64, len(col.Data))
			for i, v := range col.Data {
				if v == level {
					data[i] = 1
				}
			}
			cols = append(cols, frame.Column{
				Name: fmt.Sprintf("%s_%g", col.Name, level),
				Data: data,
			})
		}
	}
	out, err := frame.New(cols...)
	if err != nil {
		return frame.Frame{}, nil, err
	}
	return out, y, nil
}
