package graph

import (
	"context"
	"time"

	"github.com/kbukum/automl/component"
	"github.com/kbukum/automl/frame"
	"github.com/kbukum/automl/logger"
	"github.com/kbukum/automl/observability"
)

// Wrapper decorates a component while preserving its capabilities. Wrappers
// are applied at instantiation time via WithWrappers.
type Wrapper func(component.Component) component.Component

// hook observes one component operation. It runs op and may surround it
// with spans, metrics, or log lines.
type hook func(op string, c component.Component, run func() error)

// wrap returns a decorated component whose capability set matches the
// wrapped one, so transformer and predictor dispatch is unaffected.
func wrap(c component.Component, h hook) component.Component {
	base := wrapped{inner: c, h: h}
	t, isTransformer := c.(component.FeatureTransformer)
	p, isPredictor := c.(component.Predictor)
	switch {
	case isTransformer && isPredictor:
		return &wrappedHybrid{
			wrappedTransformer: wrappedTransformer{wrapped: base, transformer: t},
			predictor:          p,
		}
	case isTransformer:
		return &wrappedTransformer{wrapped: base, transformer: t}
	case isPredictor:
		return &wrappedPredictor{wrapped: base, predictor: p}
	default:
		return &base
	}
}

type wrapped struct {
	inner component.Component
	h     hook
}

func (w *wrapped) Name() string { return w.inner.Name() }

func (w *wrapped) Fit(X frame.Frame, y frame.Target) error {
	var err error
	w.h("fit", w.inner, func() error {
		err = w.inner.Fit(X, y)
		return err
	})
	return err
}

type wrappedTransformer struct {
	wrapped
	transformer component.FeatureTransformer
}

func (w *wrappedTransformer) Transform(X frame.Frame, y frame.Target) (frame.Frame, frame.Target, error) {
	var (
		outX frame.Frame
		outY frame.Target
		err  error
	)
	w.h("transform", w.inner, func() error {
		outX, outY, err = w.transformer.Transform(X, y)
		return err
	})
	return outX, outY, err
}

// ProducesTarget delegates to the wrapped component.
func (w *wrappedTransformer) ProducesTarget() bool {
	return component.ProducesTarget(w.inner)
}

type wrappedPredictor struct {
	wrapped
	predictor component.Predictor
}

func (w *wrappedPredictor) Predict(X frame.Frame) (frame.Target, error) {
	var (
		preds frame.Target
		err   error
	)
	w.h("predict", w.inner, func() error {
		preds, err = w.predictor.Predict(X)
		return err
	})
	return preds, err
}

// wrappedHybrid covers components that both transform and predict.
type wrappedHybrid struct {
	wrappedTransformer
	predictor component.Predictor
}

func (w *wrappedHybrid) Predict(X frame.Frame) (frame.Target, error) {
	var (
		preds frame.Target
		err   error
	)
	w.h("predict", w.inner, func() error {
		preds, err = w.predictor.Predict(X)
		return err
	})
	return preds, err
}

// TracingWrapper wraps each component operation in an OpenTelemetry span
// named "{prefix}.{component}.{op}".
func TracingWrapper(prefix string) Wrapper {
	return func(c component.Component) component.Component {
		return wrap(c, func(op string, inner component.Component, run func() error) {
			ctx, span := observability.StartSpan(context.Background(), prefix+"."+inner.Name()+"."+op)
			defer span.End()
			observability.SetSpanAttribute(ctx, observability.AttrComponentName, inner.Name())
			observability.SetSpanAttribute(ctx, observability.AttrOperationName, op)
			if err := run(); err != nil {
				observability.SetSpanError(ctx, err)
			}
		})
	}
}

// MetricsWrapper records per-operation counts and durations for each
// component.
func MetricsWrapper(m *observability.Metrics) Wrapper {
	return func(c component.Component) component.Component {
		return wrap(c, func(op string, inner component.Component, run func() error) {
			start := time.Now()
			err := run()
			status := "ok"
			if err != nil {
				status = "error"
				m.RecordError(context.Background(), op, inner.Name())
			}
			m.RecordNode(context.Background(), inner.Name(), op, status, time.Since(start))
		})
	}
}

// LoggingWrapper logs each component operation with its duration and
// outcome.
func LoggingWrapper(log *logger.Logger) Wrapper {
	return func(c component.Component) component.Component {
		return wrap(c, func(op string, inner component.Component, run func() error) {
			start := time.Now()
			err := run()
			fields := map[string]interface{}{
				logger.FieldComponent: inner.Name(),
				logger.FieldOperation: op,
				logger.FieldDuration:  time.Since(start).String(),
			}
			if err != nil {
				fields[logger.FieldError] = err.Error()
				log.Error("component operation failed", fields)
			} else {
				log.Debug("component operation completed", fields)
			}
		})
	}
}
