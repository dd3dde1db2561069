package graph

import (
	"context"
	"time"

	"github.com/kbukum/automl/component"
	"github.com/kbukum/automl/errors"
	"github.com/kbukum/automl/frame"
	"github.com/kbukum/automl/logger"
)

// nodeOutput holds the memoized outputs of an evaluated node for the
// duration of a single engine call. hasY is set only for target producers.
type nodeOutput struct {
	x    frame.Frame
	y    frame.Target
	hasY bool
}

// Fit learns every node in compute order. Each transformer is fitted and
// then transformed so downstream nodes consume its fitted output; the
// terminal component is only fitted. Any node error aborts the walk and the
// graph stays unfitted.
func (g *Graph) Fit(X frame.Frame, y frame.Target) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.instantiated {
		return errors.NotInstantiated("fit")
	}

	start := time.Now()
	g.fitted = false
	if _, _, err := g.walk(X, y, true, false, -1); err != nil {
		g.record("fit", "error", start)
		return err
	}
	g.fitted = true
	g.record("fit", "ok", start)
	g.log.Debug("graph fitted", logger.Fields(
		logger.FieldGraph, g.name,
		logger.FieldNumRows, X.NumRows(),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return nil
}

// Transform runs every fitted node in compute order and returns the
// terminus output. The terminus must be a feature transformer.
func (g *Graph) Transform(X frame.Frame, y frame.Target) (frame.Frame, frame.Target, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.instantiated {
		return frame.Frame{}, nil, errors.NotInstantiated("transform")
	}
	if !g.fitted {
		return frame.Frame{}, nil, errors.NotFitted("transform")
	}
	term := g.nodes[g.terminus]
	if _, ok := term.comp.(component.FeatureTransformer); !ok {
		return frame.Frame{}, nil, errors.MethodNotSupported("transform", term.name, "transformer")
	}

	start := time.Now()
	outX, outY, err := g.walk(X, y, false, false, -1)
	if err != nil {
		g.record("transform", "error", start)
		return frame.Frame{}, nil, err
	}
	g.record("transform", "ok", start)
	return outX, outY, nil
}

// Predict runs every upstream transformer on X and asks the terminal
// estimator for predictions. The terminus must be a predictor.
func (g *Graph) Predict(X frame.Frame) (frame.Target, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.instantiated {
		return nil, errors.NotInstantiated("predict")
	}
	if !g.fitted {
		return nil, errors.NotFitted("predict")
	}
	term := g.nodes[g.terminus]
	if _, ok := term.comp.(component.Predictor); !ok {
		return nil, errors.MethodNotSupported("predict", term.name, "predictor")
	}

	start := time.Now()
	_, y, err := g.walk(X, nil, false, true, -1)
	if err != nil {
		g.record("predict", "error", start)
		return nil, err
	}
	g.record("predict", "ok", start)
	return y, nil
}

// FitFeatures fits and transforms every node except the terminus and
// returns the feature frame and target that would feed the terminal
// component. The terminus itself stays unfitted, so the graph does not
// become fitted.
func (g *Graph) FitFeatures(X frame.Frame, y frame.Target) (frame.Frame, frame.Target, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.instantiated {
		return frame.Frame{}, nil, errors.NotInstantiated("fit_features")
	}

	start := time.Now()
	outX, outY, err := g.walk(X, y, true, false, g.terminus)
	if err != nil {
		g.record("fit_features", "error", start)
		return frame.Frame{}, nil, err
	}
	g.record("fit_features", "ok", start)
	return outX, outY, nil
}

// walk evaluates the graph in compute order against the root inputs.
// When fit is set each node is fitted before it transforms. When predict is
// set the terminus produces predictions instead of transforming, which
// matters for components carrying both capabilities. skip names a node index
// whose component is not invoked; its resolved inputs become the walk result
// instead of the terminus output. Outputs are memoized per call, so shared
// upstream nodes run exactly once however many consumers they have.
func (g *Graph) walk(rootX frame.Frame, rootY frame.Target, fit, predict bool, skip int) (frame.Frame, frame.Target, error) {
	memo := make([]nodeOutput, len(g.nodes))
	have := make([]bool, len(g.nodes))

	var lastX frame.Frame
	var lastY frame.Target

	for _, idx := range g.order {
		n := g.nodes[idx]
		inX, inY, err := g.resolveInputs(n, memo, have, rootX, rootY)
		if err != nil {
			return frame.Frame{}, nil, err
		}
		if idx == skip {
			return inX, inY, nil
		}

		op := "transform"
		if fit {
			op = "fit"
		}
		nodeStart := time.Now()

		if fit {
			if err := n.comp.Fit(inX, inY); err != nil {
				g.recordNode(n.name, op, "error", nodeStart)
				return frame.Frame{}, nil, err
			}
		}

		// The terminus is always scheduled last, so predictions are the
		// walk result. Dispatch on the requested operation, not the
		// component's capability set: a terminus implementing both
		// Transform and Predict must predict here.
		if idx == g.terminus && predict {
			preds, err := n.comp.(component.Predictor).Predict(inX)
			if err != nil {
				g.recordNode(n.name, "predict", "error", nodeStart)
				return frame.Frame{}, nil, err
			}
			g.recordNode(n.name, "predict", "ok", nodeStart)
			return inX, preds, nil
		}

		out := nodeOutput{x: inX, y: inY}
		if c, ok := n.comp.(component.FeatureTransformer); ok {
			outX, outY, err := c.Transform(inX, inY)
			if err != nil {
				g.recordNode(n.name, op, "error", nodeStart)
				return frame.Frame{}, nil, err
			}
			out.x = outX
			if component.ProducesTarget(n.comp) {
				out.y = outY
				out.hasY = true
			}
			lastX, lastY = outX, outY
		} else {
			lastX, lastY = inX, inY
		}
		memo[idx] = out
		have[idx] = true
		g.recordNode(n.name, op, "ok", nodeStart)
	}
	return lastX, lastY, nil
}

// resolveInputs assembles a node's feature frame and target from the root
// inputs and memoized upstream outputs. Feature frames concatenate
// column-wise in declaration order. The target comes from the node's
// resolved target source: a producing ancestor, or the root target.
func (g *Graph) resolveInputs(n *node, memo []nodeOutput, have []bool, rootX frame.Frame, rootY frame.Target) (frame.Frame, frame.Target, error) {
	frames := make([]frame.Frame, 0, len(n.featureInputs))
	for _, ref := range n.featureInputs {
		switch ref.Kind {
		case RefRootX:
			frames = append(frames, rootX)
		case RefNodeX:
			idx := g.index[ref.Node]
			if !have[idx] {
				return frame.Frame{}, nil, errors.UnknownNode(n.name, ref.String())
			}
			frames = append(frames, memo[idx].x)
		}
	}
	inX, err := frame.Concat(frames...)
	if err != nil {
		return frame.Frame{}, nil, err
	}

	inY := rootY
	if src := g.targetSource[g.index[n.name]]; src != -1 {
		if !have[src] || !memo[src].hasY {
			return frame.Frame{}, nil, errors.InvalidTargetRef(n.name, g.nodes[src].name)
		}
		inY = memo[src].y
	}
	return inX, inY, nil
}

func (g *Graph) record(op, status string, start time.Time) {
	if g.metrics == nil {
		return
	}
	g.metrics.RecordPipeline(context.Background(), g.name, op, status, time.Since(start))
}

func (g *Graph) recordNode(name, op, status string, start time.Time) {
	if g.metrics == nil {
		return
	}
	g.metrics.RecordNode(context.Background(), name, op, status, time.Since(start))
}
