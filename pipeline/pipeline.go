// Package pipeline wraps a component graph in an identified, parameterized
// unit of work. Each Pipeline carries a unique ID so individual trials of
// the same definition can be told apart in logs, traces, and metrics.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/automl/component"
	"github.com/kbukum/automl/frame"
	"github.com/kbukum/automl/graph"
	"github.com/kbukum/automl/logger"
	"github.com/kbukum/automl/observability"
)

// Pipeline binds a graph definition, a parameter set, and an instantiated
// graph under one trial identity. A Pipeline is not safe for concurrent
// use; derive independent pipelines for parallel trials.
type Pipeline struct {
	// ID uniquely identifies this trial.
	ID string
	// Name is the definition name, which may be empty.
	Name string

	def    graph.Definition
	reg    *component.Registry
	params graph.Parameters
	graph  *graph.Graph

	log     *logger.Logger
	metrics *observability.Metrics
}

// Option adjusts pipeline construction.
type Option func(*Pipeline)

// WithRegistry uses the given component registry instead of the default.
func WithRegistry(reg *component.Registry) Option {
	return func(p *Pipeline) { p.reg = reg }
}

// WithParameters sets per-node parameter overrides applied at
// instantiation.
func WithParameters(params graph.Parameters) Option {
	return func(p *Pipeline) { p.params = params }
}

// WithMetrics attaches a metrics recorder to the pipeline and its graph.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// New builds and instantiates a pipeline from a definition. Parameter
// overrides default to the definition's own parameters block.
func New(def graph.Definition, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		ID:   uuid.New().String(),
		Name: def.Name,
		def:  def,
		log:  logger.Get("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.reg == nil {
		p.reg = component.DefaultRegistry()
	}
	if p.params == nil && def.Parameters != nil {
		p.params = graph.Parameters(def.Parameters)
	}

	g, err := graph.Build(p.def, p.reg)
	if err != nil {
		return nil, err
	}
	if p.metrics != nil {
		g.WithMetrics(p.metrics)
	}
	if err := g.Instantiate(p.params); err != nil {
		return nil, err
	}
	p.graph = g

	p.log.Debug("pipeline created", logger.Fields(
		logger.FieldPipeline, p.ID,
		logger.FieldGraph, p.Name,
		"nodes", g.Len(),
	))
	return p, nil
}

// WithNewParameters derives a fresh, unfitted pipeline over the same
// definition with different parameter overrides. The derived pipeline gets
// its own ID.
func (p *Pipeline) WithNewParameters(params graph.Parameters) (*Pipeline, error) {
	opts := []Option{WithRegistry(p.reg), WithParameters(params)}
	if p.metrics != nil {
		opts = append(opts, WithMetrics(p.metrics))
	}
	return New(p.def, opts...)
}

// Parameters returns the overrides the pipeline was instantiated with.
func (p *Pipeline) Parameters() graph.Parameters { return p.params }

// Graph exposes the underlying graph for introspection.
func (p *Pipeline) Graph() *graph.Graph { return p.graph }

// Describe renders the pipeline's graph in compute order.
func (p *Pipeline) Describe() string { return p.graph.Describe() }

// Fit trains the pipeline on the given features and target.
func (p *Pipeline) Fit(X frame.Frame, y frame.Target) error {
	ctx, span := observability.StartSpan(context.Background(), observability.SpanPipelineFit)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrPipelineID, p.ID)
	observability.SetSpanAttribute(ctx, observability.AttrNumRows, X.NumRows())

	start := time.Now()
	if err := p.graph.Fit(X, y); err != nil {
		observability.SetSpanError(ctx, err)
		p.log.Error("pipeline fit failed", logger.MergeWithError(logger.Fields(
			logger.FieldPipeline, p.ID,
			logger.FieldGraph, p.Name,
		), err))
		return err
	}
	p.log.Info("pipeline fitted", logger.Fields(
		logger.FieldPipeline, p.ID,
		logger.FieldGraph, p.Name,
		logger.FieldNumRows, X.NumRows(),
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return nil
}

// Predict returns the terminal estimator's predictions for X.
func (p *Pipeline) Predict(X frame.Frame) (frame.Target, error) {
	ctx, span := observability.StartSpan(context.Background(), observability.SpanPipelinePredict)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrPipelineID, p.ID)
	observability.SetSpanAttribute(ctx, observability.AttrNumRows, X.NumRows())

	preds, err := p.graph.Predict(X)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	return preds, nil
}

// Transform runs the fitted pipeline as a feature transformer.
func (p *Pipeline) Transform(X frame.Frame, y frame.Target) (frame.Frame, frame.Target, error) {
	return p.graph.Transform(X, y)
}

// FitFeatures fits every node but the terminus and returns the features
// that would feed it.
func (p *Pipeline) FitFeatures(X frame.Frame, y frame.Target) (frame.Frame, frame.Target, error) {
	return p.graph.FitFeatures(X, y)
}

// Fitted reports whether Fit has completed successfully.
func (p *Pipeline) Fitted() bool { return p.graph.Fitted() }
