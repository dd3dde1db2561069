// Package bootstrap wires the library's ambient pieces together for
// embedding applications: configuration loading, logging, telemetry, and
// the component registry. Applications that only need the engine can skip
// it and use the graph and pipeline packages directly.
package bootstrap

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/automl/component"
	"github.com/kbukum/automl/config"
	"github.com/kbukum/automl/graph"
	"github.com/kbukum/automl/logger"
	"github.com/kbukum/automl/observability"
)

// Runtime holds the initialized ambient state for an embedding application.
type Runtime struct {
	Cfg      *config.Config
	Logger   *logger.Logger
	Registry *component.Registry
	Loader   graph.DefinitionLoader
	Metrics  *observability.Metrics

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// Option adjusts runtime initialization.
type Option func(*options)

type options struct {
	registry   *component.Registry
	configOpts []config.LoaderOption
	telemetry  bool
}

// WithRegistry uses the given component registry instead of the default.
func WithRegistry(reg *component.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithConfigOptions forwards options to the configuration loader.
func WithConfigOptions(opts ...config.LoaderOption) Option {
	return func(o *options) { o.configOpts = append(o.configOpts, opts...) }
}

// WithTelemetry enables OTLP trace and metric export. Without it the
// runtime records nothing and needs no collector.
func WithTelemetry() Option {
	return func(o *options) { o.telemetry = true }
}

// Init loads configuration, initializes logging, optionally starts
// telemetry, and returns a ready Runtime. Call Shutdown when done.
func Init(ctx context.Context, opts ...Option) (*Runtime, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := &config.Config{}
	if err := config.Load(cfg, o.configOpts...); err != nil {
		return nil, fmt.Errorf("bootstrap: loading config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("bootstrap: config validation: %w", err)
	}

	logger.Init(cfg.Logging)
	log := logger.WithComponent("bootstrap")

	r := &Runtime{
		Cfg:      cfg,
		Logger:   logger.GetGlobalLogger(),
		Registry: o.registry,
		Loader:   graph.NewFileDefinitionLoader(cfg.Definitions.Dirs...),
	}
	if r.Registry == nil {
		r.Registry = component.DefaultRegistry()
	}

	if o.telemetry {
		tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig(cfg.Name))
		if err != nil {
			return nil, fmt.Errorf("bootstrap: tracer: %w", err)
		}
		r.tracerProvider = tp

		mc := observability.DefaultMeterConfig(cfg.Name)
		mp, err := observability.InitMeter(ctx, &mc)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: meter: %w", err)
		}
		r.meterProvider = mp

		metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
		if err != nil {
			return nil, fmt.Errorf("bootstrap: metrics: %w", err)
		}
		r.Metrics = metrics
	}

	log.Info("runtime initialized", logger.Fields(
		"name", cfg.Name,
		"environment", cfg.Environment,
		"telemetry", o.telemetry,
		"components", len(r.Registry.List()),
	))
	return r, nil
}

// Shutdown flushes and stops any telemetry providers.
func (r *Runtime) Shutdown(ctx context.Context) error {
	var firstErr error
	if r.tracerProvider != nil {
		if err := r.tracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if r.meterProvider != nil {
		if err := r.meterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
