package frame

import "fmt"

// Target is the target-stream vector routed alongside a Frame.
type Target []float64

// Rows returns a new target containing the values at the given indices.
func (t Target) Rows(idx []int) (Target, error) {
	out := make(Target, len(idx))
	for j, r := range idx {
		if r < 0 || r >= len(t) {
			return nil, fmt.Errorf("frame: target index %d out of range [0,%d)", r, len(t))
		}
		out[j] = t[r]
	}
	return out, nil
}

// Clone returns a copy of the target.
func (t Target) Clone() Target {
	out := make(Target, len(t))
	copy(out, t)
	return out
}
