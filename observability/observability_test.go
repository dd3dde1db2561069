package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewMetrics_NoopMeter(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	m, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// All recorders must be safe to call against a noop meter.
	ctx := context.Background()
	m.RecordNode(ctx, "imputer", "fit", "ok", time.Millisecond)
	m.RecordPipeline(ctx, "p1", "fit", "ok", time.Millisecond)
	m.RecordError(ctx, "fit", "imputer")
}

func TestStartSpan_RecordsAttributes(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), SpanNodeFit)
	SetSpanAttribute(ctx, AttrNodeName, "imputer")
	SetSpanAttribute(ctx, AttrNumRows, 100)
	SetSpanError(ctx, errors.New("boom"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name != SpanNodeFit {
		t.Errorf("expected span name %s, got %s", SpanNodeFit, s.Name)
	}

	foundNode := false
	for _, attr := range s.Attributes {
		if string(attr.Key) == AttrNodeName && attr.Value.AsString() == "imputer" {
			foundNode = true
		}
	}
	if !foundNode {
		t.Error("expected node.name attribute on span")
	}
	if len(s.Events) == 0 {
		t.Error("expected recorded error event on span")
	}
}

func TestSetSpanAttribute_NoSpanIsNoop(t *testing.T) {
	// Must not panic without a span in context.
	SetSpanAttribute(context.Background(), AttrNodeName, "x")
	SetSpanError(context.Background(), errors.New("boom"))
}

func TestDefaultConfigs(t *testing.T) {
	tc := DefaultTracerConfig("automl")
	if tc.ServiceName != "automl" || tc.Endpoint == "" {
		t.Errorf("unexpected tracer defaults: %+v", tc)
	}
	mc := DefaultMeterConfig("automl")
	if mc.Interval <= 0 {
		t.Errorf("expected positive export interval, got %v", mc.Interval)
	}
}
