package scenecore

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/scenecore/pkg/scenecore/config"
	"github.com/randalmurphal/scenecore/pkg/scenecore/observability"
)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager's logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMetrics enables or disables OpenTelemetry metrics for the
// manager. Default: disabled (no-op recorder).
func WithMetrics(enabled bool) ManagerOption {
	return func(m *Manager) {
		if enabled {
			m.metrics = observability.NewMetricsRecorder()
		} else {
			m.metrics = observability.NoopMetrics{}
		}
	}
}

// WithMetricsRecorder sets an explicit metrics recorder, overriding
// WithMetrics.
func WithMetricsRecorder(recorder observability.MetricsRecorder) ManagerOption {
	return func(m *Manager) {
		if recorder != nil {
			m.metrics = recorder
		}
	}
}

// WithFrameWarnBudget sets the per-frame duration above which
// PerFrameUpdate logs a warning. Zero disables the check. Default: 0.
func WithFrameWarnBudget(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.frameWarnBudget = d
		}
	}
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the loader's logger. Default: slog.Default().
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithLoaderMetrics enables or disables OpenTelemetry metrics for the
// loader. Default: disabled (no-op recorder).
func WithLoaderMetrics(enabled bool) LoaderOption {
	return func(l *Loader) {
		if enabled {
			l.metrics = observability.NewMetricsRecorder()
		} else {
			l.metrics = observability.NoopMetrics{}
		}
	}
}

// WithLoaderTracing enables or disables OpenTelemetry load/build spans.
// Default: disabled (no-op span manager).
func WithLoaderTracing(enabled bool) LoaderOption {
	return func(l *Loader) {
		if enabled {
			l.spans = observability.NewSpanManager()
		} else {
			l.spans = observability.NoopSpanManager{}
		}
	}
}

// WithFlush sets a function StopLoading runs after signaling shutdown,
// before joining the worker. Pass the manager's PerFrameUpdate (or a
// wrapper that calls it) to let an in-flight rendezvous complete its
// graft instead of being cancelled.
func WithFlush(flush func()) LoaderOption {
	return func(l *Loader) {
		l.flush = flush
	}
}

// WithQueueWarnDepth sets the pending-queue depth above which
// EnqueueLoad logs a warning. Zero disables the check. Default: 0.
func WithQueueWarnDepth(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.queueWarnDepth = n
		}
	}
}

// ManagerOptionsFromConfig translates a Config into manager options.
//
// Recognized keys:
//   - metrics (bool)
//   - frame_warn_budget (duration, e.g. "20ms")
func ManagerOptionsFromConfig(cfg config.Config) []ManagerOption {
	var opts []ManagerOption
	if cfg.Has("metrics") {
		opts = append(opts, WithMetrics(cfg.Bool("metrics", false)))
	}
	if cfg.Has("frame_warn_budget") {
		opts = append(opts, WithFrameWarnBudget(cfg.Duration("frame_warn_budget", 0)))
	}
	return opts
}

// LoaderOptionsFromConfig translates a Config into loader options.
//
// Recognized keys:
//   - metrics (bool)
//   - tracing (bool)
//   - queue_warn_depth (int)
func LoaderOptionsFromConfig(cfg config.Config) []LoaderOption {
	var opts []LoaderOption
	if cfg.Has("metrics") {
		opts = append(opts, WithLoaderMetrics(cfg.Bool("metrics", false)))
	}
	if cfg.Has("tracing") {
		opts = append(opts, WithLoaderTracing(cfg.Bool("tracing", false)))
	}
	if cfg.Has("queue_warn_depth") {
		opts = append(opts, WithQueueWarnDepth(cfg.Int("queue_warn_depth", 0)))
	}
	return opts
}
