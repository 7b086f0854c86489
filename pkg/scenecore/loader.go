package scenecore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/randalmurphal/scenecore/pkg/scenecore/asset"
	"github.com/randalmurphal/scenecore/pkg/scenecore/node"
	"github.com/randalmurphal/scenecore/pkg/scenecore/observability"
)

// LoadCallback is the completion callback for a load request. It runs
// on the render thread at the synchronization point, after the built
// subtree has been grafted onto target. err is non-nil when the asset
// read or build failed; the graft is then empty and target unchanged.
type LoadCallback func(target *node.Group, err error)

// Session is a worker-side attachment to the host runtime. It is
// thread-affine: acquired and released on the worker goroutine only.
type Session interface {
	// Assets returns the asset store for this session.
	Assets() asset.Store

	// Detach releases the session. Called once, on the worker, during
	// shutdown.
	Detach()
}

// Runtime is the host-application bridge. Attach runs on the worker
// goroutine when loading starts; a failure aborts StartLoading and the
// loader stays inert.
type Runtime interface {
	Attach() (Session, error)
}

// storeRuntime adapts a plain store factory into a Runtime.
type storeRuntime struct {
	open func() (asset.Store, error)
}

type storeSession struct {
	store asset.Store
}

func (s *storeSession) Assets() asset.Store { return s.store }
func (s *storeSession) Detach()             { s.store.Close() }

func (r *storeRuntime) Attach() (Session, error) {
	store, err := r.open()
	if err != nil {
		return nil, err
	}
	return &storeSession{store: store}, nil
}

// NewStoreRuntime wraps a store factory as a Runtime. The factory runs
// on the worker goroutine and the store is closed when the worker
// detaches.
func NewStoreRuntime(open func() (asset.Store, error)) Runtime {
	return &storeRuntime{open: open}
}

// Builder constructs an asset's object graph under root. Invoked
// entirely on the worker goroutine; it must not touch the device API or
// the live scene.
type Builder interface {
	BuildSubtree(ctx context.Context, data []byte, root *node.Group) error
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(ctx context.Context, data []byte, root *node.Group) error

// BuildSubtree calls f.
func (f BuilderFunc) BuildSubtree(ctx context.Context, data []byte, root *node.Group) error {
	return f(ctx, data, root)
}

// loadRequest is one queued unit of work.
type loadRequest struct {
	id         string
	name       string
	target     *node.Group
	callback   LoadCallback
	enqueuedAt time.Time
}

// Loader owns the background worker that builds scene subtrees off the
// render thread. One worker goroutine per Loader, lifetime bounded by
// StartLoading/StopLoading.
type Loader struct {
	builder Builder
	sync    Synchronizer
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	// flush, when set, runs during StopLoading to give an in-flight
	// rendezvous a chance to complete instead of being cancelled.
	// Typically Manager.PerFrameUpdate.
	flush          func()
	queueWarnDepth int

	mu      sync.Mutex
	pending []*loadRequest
	running bool

	// wake holds at most one token; a token is present whenever the
	// queue may be non-empty and the worker may be parked.
	wake   chan struct{}
	stopCh chan struct{}
	done   chan struct{}
}

// NewLoader creates a Loader. builder runs on the worker goroutine;
// synchronizer is the cross-thread rendezvous, normally
// Manager.Barrier().
func NewLoader(builder Builder, synchronizer Synchronizer, opts ...LoaderOption) *Loader {
	l := &Loader{
		builder: builder,
		sync:    synchronizer,
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// StartLoading attaches to the host runtime on a fresh worker goroutine
// and begins servicing the queue. Returns an AttachError when the
// runtime attach fails; the loader then stays inert. Returns
// ErrLoaderRunning when the worker is already active.
func (l *Loader) StartLoading(rt Runtime) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrLoaderRunning
	}
	l.wake = make(chan struct{}, 1)
	l.stopCh = make(chan struct{})
	l.done = make(chan struct{})
	l.mu.Unlock()

	started := make(chan error, 1)
	go l.run(rt, started)

	if err := <-started; err != nil {
		return &AttachError{Err: err}
	}

	l.mu.Lock()
	l.running = true
	l.mu.Unlock()
	return nil
}

// EnqueueLoad queues a load request and returns immediately. The
// callback fires exactly once, on the render thread, after the built
// content has been grafted under target. Requests enqueued before
// StartLoading are held and serviced once the worker starts; requests
// enqueued after StopLoading are dropped.
func (l *Loader) EnqueueLoad(name string, target *node.Group, cb LoadCallback) {
	req := &loadRequest{
		id:         NewHandle("load"),
		name:       name,
		target:     target,
		callback:   cb,
		enqueuedAt: time.Now(),
	}

	l.mu.Lock()
	if l.stopCh != nil {
		select {
		case <-l.stopCh:
			// Shutdown already initiated; the request is dropped.
			l.mu.Unlock()
			return
		default:
		}
	}
	l.pending = append(l.pending, req)
	depth := len(l.pending)
	wake := l.wake
	l.mu.Unlock()

	observability.LogLoadEnqueued(l.logger, req.id, req.name, depth)
	if l.queueWarnDepth > 0 && depth > l.queueWarnDepth {
		l.logger.Warn("load queue deep",
			slog.Int("queue_depth", depth),
			slog.Int("warn_depth", l.queueWarnDepth),
		)
	}

	select {
	case wake <- struct{}{}:
	default:
	}
}

// StopLoading signals shutdown, wakes the worker, and blocks until the
// worker goroutine has fully exited and detached its session. Pending
// requests that were not dequeued, and an in-flight request parked at
// the barrier if flush cannot complete it, never fire their callbacks.
// Returns ErrLoaderNotRunning when the worker is not active.
func (l *Loader) StopLoading() error {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return ErrLoaderNotRunning
	}
	pendingCount := len(l.pending)
	select {
	case <-l.stopCh:
	default:
		close(l.stopCh)
	}
	l.mu.Unlock()

	observability.LogLoaderStopping(l.logger, pendingCount)

	if l.flush != nil {
		l.flush()
	}

	<-l.done

	l.mu.Lock()
	l.running = false
	l.pending = nil
	l.mu.Unlock()

	observability.LogLoaderStopped(l.logger)
	return nil
}

// run is the worker goroutine body.
func (l *Loader) run(rt Runtime, started chan<- error) {
	defer close(l.done)

	session, err := rt.Attach()
	if err != nil {
		started <- err
		return
	}
	defer session.Detach()
	started <- nil

	for {
		batch, ok := l.takeBatch()
		if !ok {
			return
		}
		for _, req := range batch {
			l.process(session, req)
		}
	}
}

// takeBatch swaps the whole pending queue into a local batch, blocking
// on the wake channel while empty. Returns false once shutdown is
// requested; a batch swapped out at that point is dropped.
func (l *Loader) takeBatch() ([]*loadRequest, bool) {
	for {
		select {
		case <-l.stopCh:
			return nil, false
		default:
		}

		l.mu.Lock()
		if len(l.pending) > 0 {
			batch := l.pending
			l.pending = nil
			l.mu.Unlock()
			return batch, true
		}
		l.mu.Unlock()

		select {
		case <-l.wake:
		case <-l.stopCh:
			return nil, false
		}
	}
}

// process handles one request: read, build, then hand off through the
// synchronization barrier. Build failures still reach the barrier with
// an empty subtree so the callback fires with the error.
func (l *Loader) process(session Session, req *loadRequest) {
	done := observability.TimedOperation()
	ctx, span := l.spans.StartLoadSpan(context.Background(), req.id, req.name)
	observability.LogLoadStart(l.logger, req.id, req.name)

	root := node.NewGroup(req.name)
	var buildErr error

	data, err := session.Assets().Read(req.name)
	if err != nil {
		buildErr = &BuildError{Asset: req.name, Op: "read", Err: err}
	} else {
		buildCtx, buildSpan := l.spans.StartBuildSpan(ctx, req.name)
		err = l.builder.BuildSubtree(buildCtx, data, root)
		l.spans.EndSpanWithError(buildSpan, err)
		if err != nil {
			buildErr = &BuildError{Asset: req.name, Op: "build", Err: err}
		}
	}
	if buildErr != nil {
		// Discard any partially built children; graft nothing.
		root = node.NewGroup(req.name)
		observability.LogLoadError(l.logger, req.id, req.name, buildErr)
	}

	obs := newGraftObserver(root, req.target, req.callback, buildErr)
	l.sync.Register(obs)
	syncErr := l.sync.Synchronize(l.stopCh)
	l.sync.Release(obs)

	elapsed := done()
	recordErr := buildErr
	if recordErr == nil {
		recordErr = syncErr
	}
	l.metrics.RecordLoad(ctx, req.name, time.Duration(elapsed)*time.Millisecond, recordErr)
	l.spans.EndSpanWithError(span, recordErr)

	if buildErr == nil && syncErr == nil {
		observability.LogLoadComplete(l.logger, req.id, req.name, elapsed)
	}
}
