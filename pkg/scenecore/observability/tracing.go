package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the scenecore tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("scenecore")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartLoadSpan starts a span covering a load request from dequeue
	// to callback. Returns the context with span and the span itself.
	StartLoadSpan(ctx context.Context, requestID, assetName string) (context.Context, trace.Span)

	// StartBuildSpan starts a span for the subtree build step.
	// The build span should be a child of the load span.
	StartBuildSpan(ctx context.Context, assetName string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartLoadSpan starts a span for a load request.
func (m *otelSpanManager) StartLoadSpan(ctx context.Context, requestID, assetName string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "scenecore.load",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
			attribute.String("asset.name", assetName),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartBuildSpan starts a span for the subtree build step.
func (m *otelSpanManager) StartBuildSpan(ctx context.Context, assetName string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "scenecore.build",
		trace.WithAttributes(
			attribute.String("asset.name", assetName),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// Convenience functions that operate on the global tracer.
// These are useful for simple cases where you don't need the interface.

// StartLoadSpan starts a span for a load request.
// Uses the global OTel tracer.
func StartLoadSpan(ctx context.Context, requestID, assetName string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "scenecore.load",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
			attribute.String("asset.name", assetName),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartBuildSpan starts a span for the subtree build step.
// Uses the global OTel tracer.
func StartBuildSpan(ctx context.Context, assetName string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "scenecore.build",
		trace.WithAttributes(
			attribute.String("asset.name", assetName),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
