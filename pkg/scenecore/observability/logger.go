// Package observability provides production-grade observability features
// for scenecore: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds load-request context to a logger.
// Returns a new logger with request_id and asset fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "load-4f2a91c0", "models/ship.obj")
//	enriched.Info("building subtree") // includes request_id, asset
func EnrichLogger(logger *slog.Logger, requestID, assetName string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("request_id", requestID),
		slog.String("asset", assetName),
	)
}

// LogContextAcquired logs a device context becoming valid.
func LogContextAcquired(logger *slog.Logger, epoch uint64, resourceCount int) {
	if logger == nil {
		return
	}
	logger.Info("device context acquired",
		slog.Uint64("epoch", epoch),
		slog.Int("resources", resourceCount),
	)
}

// LogContextLost logs a device context becoming invalid.
func LogContextLost(logger *slog.Logger, epoch uint64, resourceCount int) {
	if logger == nil {
		return
	}
	logger.Info("device context lost",
		slog.Uint64("epoch", epoch),
		slog.Int("resources", resourceCount),
	)
}

// LogResourceError logs a resource lifecycle failure (non-fatal).
func LogResourceError(logger *slog.Logger, handle string, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("resource operation failed",
		slog.String("handle", handle),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// LogLoadEnqueued logs a load request entering the queue.
func LogLoadEnqueued(logger *slog.Logger, requestID, assetName string, queueDepth int) {
	if logger == nil {
		return
	}
	logger.Debug("load enqueued",
		slog.String("request_id", requestID),
		slog.String("asset", assetName),
		slog.Int("queue_depth", queueDepth),
	)
}

// LogLoadStart logs load processing start on the worker.
func LogLoadStart(logger *slog.Logger, requestID, assetName string) {
	if logger == nil {
		return
	}
	logger.Debug("load starting",
		slog.String("request_id", requestID),
		slog.String("asset", assetName),
	)
}

// LogLoadComplete logs successful load completion.
func LogLoadComplete(logger *slog.Logger, requestID, assetName string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("load completed",
		slog.String("request_id", requestID),
		slog.String("asset", assetName),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogLoadError logs load failure.
func LogLoadError(logger *slog.Logger, requestID, assetName string, err error) {
	if logger == nil {
		return
	}
	logger.Error("load failed",
		slog.String("request_id", requestID),
		slog.String("asset", assetName),
		slog.String("error", err.Error()),
	)
}

// LogFrameOverBudget logs a frame update exceeding its warning budget.
func LogFrameOverBudget(logger *slog.Logger, frame uint64, durationMs float64, budgetMs float64) {
	if logger == nil {
		return
	}
	logger.Warn("frame update over budget",
		slog.Uint64("frame", frame),
		slog.Float64("duration_ms", durationMs),
		slog.Float64("budget_ms", budgetMs),
	)
}

// LogLoaderStopping logs loader shutdown start.
func LogLoaderStopping(logger *slog.Logger, pendingCount int) {
	if logger == nil {
		return
	}
	logger.Info("loader stopping",
		slog.Int("pending", pendingCount),
	)
}

// LogLoaderStopped logs loader shutdown completion.
func LogLoaderStopped(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Info("loader stopped")
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
