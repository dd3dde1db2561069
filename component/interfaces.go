package component

import (
	"github.com/kbukum/automl/frame"
)

// Parameters is a bundle of named configuration values for one component.
// Bound once at construction; components must not mutate it afterwards.
type Parameters map[string]any

// Clone returns a shallow copy of the parameters.
func (p Parameters) Clone() Parameters {
	out := make(Parameters, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns defaults overlaid with overrides. Neither input is mutated.
func Merge(defaults, overrides Parameters) Parameters {
	out := defaults.Clone()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Component is the minimal contract every graph node satisfies.
type Component interface {
	// Name returns the component's registered name.
	Name() string

	// Fit learns internal state from the given features and target.
	Fit(X frame.Frame, y frame.Target) error
}

// FeatureTransformer is implemented by components that produce a feature
// output. Transform returns the transformed features and the (possibly
// re-aligned) target. Components that drop or add rows must return a target
// of matching length.
type FeatureTransformer interface {
	Component
	Transform(X frame.Frame, y frame.Target) (frame.Frame, frame.Target, error)
}

// Predictor is implemented by estimator components. Estimators produce no
// feature output and may only sit at a graph's terminus.
type Predictor interface {
	Component
	Predict(X frame.Frame) (frame.Target, error)
}

// TargetProducer is implemented by transformers that emit a modified target
// stream (e.g. resamplers). Consumers opt in by referencing "<name>.y".
type TargetProducer interface {
	ProducesTarget() bool
}

// ProducesTarget reports whether c emits a target-stream output.
func ProducesTarget(c Component) bool {
	if tp, ok := c.(TargetProducer); ok {
		return tp.ProducesTarget()
	}
	return false
}

// IsTransformer reports whether c produces a feature output.
func IsTransformer(c Component) bool {
	_, ok := c.(FeatureTransformer)
	return ok
}

// IsEstimator reports whether c produces predictions.
func IsEstimator(c Component) bool {
	_, ok := c.(Predictor)
	return ok
}
