package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records scenecore metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordResourceInit records a device resource initialization with its error status.
	RecordResourceInit(ctx context.Context, handle string, err error)

	// RecordFrame records a completed per-frame update cycle.
	RecordFrame(ctx context.Context, duration time.Duration, updatableCount int)

	// RecordContextTransition records a device context validity change.
	RecordContextTransition(ctx context.Context, acquired bool, epoch uint64)

	// RecordLoad records a load request completion with its duration and error status.
	RecordLoad(ctx context.Context, assetName string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	resourceInits    metric.Int64Counter
	resourceFailures metric.Int64Counter
	frameLatency     metric.Float64Histogram
	transitions      metric.Int64Counter
	loadRequests     metric.Int64Counter
	loadLatency      metric.Float64Histogram
	loadFailures     metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("scenecore")

	resourceInits, err := meter.Int64Counter("scenecore.resource.inits",
		metric.WithDescription("Number of device resource initializations"),
	)
	if err != nil {
		return nil, err
	}

	resourceFailures, err := meter.Int64Counter("scenecore.resource.failures",
		metric.WithDescription("Number of device resource initialization failures"),
	)
	if err != nil {
		return nil, err
	}

	frameLatency, err := meter.Float64Histogram("scenecore.frame.latency_ms",
		metric.WithDescription("Per-frame update cycle latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	transitions, err := meter.Int64Counter("scenecore.context.transitions",
		metric.WithDescription("Number of device context validity transitions"),
	)
	if err != nil {
		return nil, err
	}

	loadRequests, err := meter.Int64Counter("scenecore.load.requests",
		metric.WithDescription("Number of asset load requests processed"),
	)
	if err != nil {
		return nil, err
	}

	loadLatency, err := meter.Float64Histogram("scenecore.load.latency_ms",
		metric.WithDescription("Asset load latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	loadFailures, err := meter.Int64Counter("scenecore.load.failures",
		metric.WithDescription("Number of failed asset loads"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		resourceInits:    resourceInits,
		resourceFailures: resourceFailures,
		frameLatency:     frameLatency,
		transitions:      transitions,
		loadRequests:     loadRequests,
		loadLatency:      loadLatency,
		loadFailures:     loadFailures,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordResourceInit records a device resource initialization.
func (m *otelMetrics) RecordResourceInit(ctx context.Context, handle string, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("handle", handle),
	}

	m.resourceInits.Add(ctx, 1, metric.WithAttributes(attrs...))
	if err != nil {
		m.resourceFailures.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordFrame records a per-frame update cycle.
func (m *otelMetrics) RecordFrame(ctx context.Context, duration time.Duration, updatableCount int) {
	attrs := []attribute.KeyValue{
		attribute.Int("updatables", updatableCount),
	}
	m.frameLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordContextTransition records a device context validity change.
func (m *otelMetrics) RecordContextTransition(ctx context.Context, acquired bool, epoch uint64) {
	attrs := []attribute.KeyValue{
		attribute.Bool("acquired", acquired),
		attribute.Int64("epoch", int64(epoch)),
	}
	m.transitions.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordLoad records an asset load completion.
func (m *otelMetrics) RecordLoad(ctx context.Context, assetName string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("asset", assetName),
	}

	m.loadRequests.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.loadLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.loadFailures.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
