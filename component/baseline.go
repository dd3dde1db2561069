package component

import (
	"fmt"

	"github.com/kbukum/automl/frame"
)

// BaselineClassifier predicts the most frequent class seen during fit.
type BaselineClassifier struct {
	mode   float64
	fitted bool
}

// NewBaselineClassifier creates a BaselineClassifier. It takes no parameters.
func NewBaselineClassifier(_ Parameters) (Component, error) {
	return &BaselineClassifier{}, nil
}

func (c *BaselineClassifier) Name() string { return "BaselineClassifier" }

// Fit records the modal class. Ties break by ascending value.
func (c *BaselineClassifier) Fit(_ frame.Frame, y frame.Target) error {
	if len(y) == 0 {
		return fmt.Errorf("baseline classifier: empty target")
	}
	counts := make(map[float64]int)
	for _, v := range y {
		counts[v]++
	}
	best := y[0]
	for v, n := range counts {
		if n > counts[best] || (n == counts[best] && v < best) {
			best = v
		}
	}
	c.mode = best
	c.fitted = true
	return nil
}

// Predict returns the modal class for every row.
func (c *BaselineClassifier) Predict(X frame.Frame) (frame.Target, error) {
	if !c.fitted {
		return nil, notFitted("BaselineClassifier", "predict")
	}
	out := make(frame.Target, X.NumRows())
	for i := range out {
		out[i] = c.mode
	}
	return out, nil
}

// BaselineRegressor predicts the mean target seen during fit.
type BaselineRegressor struct {
	mean   float64
	fitted bool
}

// NewBaselineRegressor creates a BaselineRegressor. It takes no parameters.
func NewBaselineRegressor(_ Parameters) (Component, error) {
	return &BaselineRegressor{}, nil
}

func (c *BaselineRegressor) Name() string { return "BaselineRegressor" }

// Fit records the mean target value.
func (c *BaselineRegressor) Fit(_ frame.Frame, y frame.Target) error {
	if len(y) == 0 {
		return fmt.Errorf("baseline regressor: empty target")
	}
	c.mean = mean(y)
	c.fitted = true
	return nil
}

// Predict returns the mean for every row.
func (c *BaselineRegressor) Predict(X frame.Frame) (frame.Target, error) {
	if !c.fitted {
		return nil, notFitted("BaselineRegressor", "predict")
	}
	out := make(frame.Target, X.NumRows())
	for i := range out {
		out[i] = c.mean
	}
	return out, nil
}
