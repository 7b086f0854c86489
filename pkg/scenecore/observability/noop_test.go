package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics_ImplementsInterface(t *testing.T) {
	var _ MetricsRecorder = NoopMetrics{}
}

func TestNoopMetrics_AllMethods(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordResourceInit(context.Background(), "res-1", nil)
			m.RecordFrame(context.Background(), 16*time.Millisecond, 4)
			m.RecordContextTransition(context.Background(), true, 1)
			m.RecordLoad(context.Background(), "a", 10*time.Millisecond, nil)
		})
	})

	t.Run("does not panic with errors", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordResourceInit(context.Background(), "res-1", errors.New("test"))
			m.RecordLoad(context.Background(), "a", 0, errors.New("test"))
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordResourceInit(nil, "", nil)
			m.RecordFrame(nil, 0, 0)
			m.RecordContextTransition(nil, false, 0)
			m.RecordLoad(nil, "", 0, nil)
		})
	})
}

func TestNoopSpanManager_ImplementsInterface(t *testing.T) {
	var _ SpanManager = NoopSpanManager{}
}

func TestNoopSpanManager_StartLoadSpan(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("returns same context", func(t *testing.T) {
		ctx := context.Background()
		newCtx, span := sm.StartLoadSpan(ctx, "load-1", "a")

		assert.Equal(t, ctx, newCtx, "Context should be unchanged")
		assert.NotNil(t, span, "Span should not be nil")
	})

	t.Run("span is valid noop span", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartLoadSpan(ctx, "load-1", "a")

		// Noop spans are not recording
		assert.False(t, span.IsRecording())
	})

	t.Run("does not panic with empty args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.StartLoadSpan(context.Background(), "", "")
		})
	})
}

func TestNoopSpanManager_StartBuildSpan(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("returns same context", func(t *testing.T) {
		ctx := context.Background()
		newCtx, span := sm.StartBuildSpan(ctx, "a")

		assert.Equal(t, ctx, newCtx, "Context should be unchanged")
		assert.NotNil(t, span, "Span should not be nil")
	})

	t.Run("span is valid noop span", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartBuildSpan(ctx, "a")

		assert.False(t, span.IsRecording())
	})
}

func TestNoopSpanManager_EndSpanWithError(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("does not panic with nil span", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, nil)
		})
	})

	t.Run("does not panic with error", func(t *testing.T) {
		_, span := sm.StartLoadSpan(context.Background(), "l", "a")
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(span, errors.New("test error"))
		})
	})
}

func TestNoopSpanManager_AddSpanEvent(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		ctx := context.Background()
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(ctx, "test_event", attribute.String("key", "value"))
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(nil, "test_event")
		})
	})
}

func TestNoopImplementations_NoSideEffects(t *testing.T) {
	// This test verifies that noop implementations can be used
	// in a realistic scenario without any side effects

	metrics := NoopMetrics{}
	spans := NoopSpanManager{}

	ctx := context.Background()

	// Simulate a load request being processed
	ctx, loadSpan := spans.StartLoadSpan(ctx, "load-123", "models/ship.obj")

	_, buildSpan := spans.StartBuildSpan(ctx, "models/ship.obj")
	time.Sleep(1 * time.Millisecond)
	spans.EndSpanWithError(buildSpan, nil)

	spans.AddSpanEvent(ctx, "subtree_grafted", attribute.Int64("children", 3))
	metrics.RecordLoad(ctx, "models/ship.obj", 5*time.Millisecond, nil)

	// Simulate a frame cycle
	metrics.RecordContextTransition(ctx, true, 1)
	metrics.RecordResourceInit(ctx, "res-1", nil)
	metrics.RecordFrame(ctx, 16*time.Millisecond, 1)

	spans.EndSpanWithError(loadSpan, nil)

	// If we get here without panicking, the test passes
}
