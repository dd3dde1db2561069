package component

import (
	"fmt"
	"math"

	"github.com/kbukum/automl/frame"
)

// Undersampler drops majority-class rows so the majority class has at most
// minority*1/sampling_ratio rows. It emits a re-aligned target, so it is the
// canonical target-producing transformer: downstream consumers reference
// both "<name>.x" and "<name>.y".
//
// Selection is deterministic: the first qualifying rows in input order are
// kept, preserving reproducibility across runs.
type Undersampler struct {
	ratio  float64
	fitted bool
}

// NewUndersampler creates an Undersampler.
// Parameters: "sampling_ratio" is the desired minority/majority ratio after
// sampling, in (0, 1] (default 1.0, i.e. fully balanced).
func NewUndersampler(params Parameters) (Component, error) {
	ratio, err := paramFloat(params, "sampling_ratio", 1.0)
	if err != nil {
		return nil, invalidParams("Undersampler", err)
	}
	if ratio <= 0 || ratio > 1 {
		return nil, invalidParams("Undersampler",
			fmt.Errorf("sampling_ratio must be in (0, 1] (got %g)", ratio))
	}
	return &Undersampler{ratio: ratio}, nil
}

func (c *Undersampler) Name() string { return "Undersampler" }

// ProducesTarget reports that this transformer emits a modified target stream.
func (c *Undersampler) ProducesTarget() bool { return true }

// Fit is stateless; sampling is decided per Transform input.
func (c *Undersampler) Fit(_ frame.Frame, _ frame.Target) error {
	c.fitted = true
	return nil
}

// Transform drops majority-class rows beyond the configured ratio, returning
// row-aligned features and target.
func (c *Undersampler) Transform(X frame.Frame, y frame.Target) (frame.Frame, frame.Target, error) {
	if !c.fitted {
		return frame.Frame{}, nil, notFitted("Undersampler", "transform")
	}
	if y == nil {
		// Inference has no target to balance against; rows pass through.
		return X, y, nil
	}
	if len(y) != X.NumRows() {
		return frame.Frame{}, nil, fmt.Errorf("undersampler: %d rows of features vs %d target values", X.NumRows(), len(y))
	}

	counts := make(map[float64]int)
	for _, v := range y {
		counts[v]++
	}
	if len(counts) < 2 {
		return X, y, nil
	}

	// Map iteration order is random; tie-break by value for reproducibility.
	var majority float64
	majCount := -1
	minCount := math.MaxInt
	for v, n := range counts {
		if n > majCount || (n == majCount && v < majority) {
			majority, majCount = v, n
		}
		if n < minCount {
			minCount = n
		}
	}

	// Compare before converting: a tiny ratio makes the quota overflow
	// int, and an out-of-range conversion is implementation-defined.
	quota := float64(minCount) / c.ratio
	if quota >= float64(majCount) {
		return X, y, nil
	}
	keepMajority := int(quota)

	idx := make([]int, 0, len(y))
	kept := 0
	for i, v := range y {
		if v == majority {
			if kept >= keepMajority {
				continue
			}
			kept++
		}
		idx = append(idx, i)
	}

	sampledX, err := X.Rows(idx)
	if err != nil {
		return frame.Frame{}, nil, err
	}
	sampledY, err := y.Rows(idx)
	if err != nil {
		return frame.Frame{}, nil, err
	}
	return sampledX, sampledY, nil
}
