package component

import (
	"math"

	"github.com/kbukum/automl/frame"
)

// StandardScaler standardizes columns to zero mean and unit variance.
type StandardScaler struct {
	means  map[string]float64
	stds   map[string]float64
	fitted bool
}

// NewStandardScaler creates a StandardScaler. It takes no parameters.
func NewStandardScaler(_ Parameters) (Component, error) {
	return &StandardScaler{}, nil
}

func (c *StandardScaler) Name() string { return "StandardScaler" }

// Fit learns per-column mean and standard deviation.
func (c *StandardScaler) Fit(X frame.Frame, _ frame.Target) error {
	c.means = make(map[string]float64, X.NumCols())
	c.stds = make(map[string]float64, X.NumCols())
	for _, col := range X.Columns() {
		m := mean(col.Data)
		c.means[col.Name] = m
		variance := 0.0
		for _, v := range col.Data {
			variance += (v - m) * (v - m)
		}
		if len(col.Data) > 0 {
			variance /= float64(len(col.Data))
		}
		c.stds[col.Name] = math.Sqrt(variance)
	}
	c.fitted = true
	return nil
}

// Transform standardizes each column. Zero-variance columns map to zero.
func (c *StandardScaler) Transform(X frame.Frame, y frame.Target) (frame.Frame, frame.Target, error) {
	if !c.fitted {
		return frame.Frame{}, nil, notFitted("StandardScaler", "transform")
	}
	cols := make([]frame.Column, 0, X.NumCols())
	for _, col := range X.Columns() {
		m := c.means[col.Name]
		s := c.stds[col.Name]
		data := make([]float64, len(col.Data))
		for i, v := range col.Data {
			if s == 0 {
				data[i] = 0
			} else {
				data[i] = (v - m) / s
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
