package component

import (
	"fmt"
	"sort"

	"github.com/kbukum/automl/frame"
	"github.com/kbukum/automl/util"
)

// SimpleImputer replaces missing values (NaN) using a per-column statistic.
type SimpleImputer struct {
	strategy  string
	fillValue float64

	statistics map[string]float64
	fitted     bool
}

// NewSimpleImputer creates a SimpleImputer from parameters.
// Parameters: "impute_strategy" (mean|median|constant), "fill_value" (constant only).
func NewSimpleImputer(params Parameters) (Component, error) {
	strategy, err := paramString(params, "impute_strategy", "mean")
	if err != nil {
		return nil, invalidParams("SimpleImputer", err)
	}
	if !util.Contains([]string{"mean", "median", "constant"}, strategy) {
		return nil, invalidParams("SimpleImputer",
			fmt.Errorf("impute_strategy must be mean, median or constant (got %q)", strategy))
	}
	fill, err := paramFloat(params, "fill_value", 0)
	if err != nil {
		return nil, invalidParams("SimpleImputer", err)
	}
	return &SimpleImputer{strategy: strategy, fillValue: fill}, nil
}

func (c *SimpleImputer) Name() string { return "SimpleImputer" }

// Fit learns the per-column fill statistic from non-missing values.
func (c *SimpleImputer) Fit(X frame.Frame, _ frame.Target) error {
	c.statistics = make(map[string]float64, X.NumCols())
	for _, col := range X.Columns() {
		switch c.strategy {
		case "constant":
			c.statistics[col.Name] = c.fillValue
		case "median":
			c.statistics[col.Name] = median(present(col.Data))
		default:
			c.statistics[col.Name] = mean(present(col.Data))
		}
	}
	c.fitted = true
	return nil
}

// Transform fills missing values with the learned statistics.
func (c *SimpleImputer) Transform(X frame.Frame, y frame.Target) (frame.Frame, frame.Target, error) {
	if !c.fitted {
		return frame.Frame{}, nil, notFitted("SimpleImputer", "transform")
	}
	cols := make([]frame.Column, 0, X.NumCols())
	for _, col := range X.Columns() {
		fill, ok := c.statistics[col.Name]
		if !ok {
			fill = c.fillValue
		}
		data := make([]float64, len(col.Data))
		for i, v := range col.Data {
			if frame.IsNaN(v) {
				data[i] = fill
			} else {
				data[i] = v
			}
		}
		cols = append(cols, frame.Column{Name: col.Name, Data: data})
	}
	out, err := frame.New(cols...)
	if err != nil {
		return frame.Frame{}, nil, err
	}
	return out, y, nil
}

func present(data []float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if !frame.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

func median(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
