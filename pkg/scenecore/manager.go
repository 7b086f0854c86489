package scenecore

import (
	"context"
	"log/slog"
	"time"

	"github.com/randalmurphal/scenecore/pkg/scenecore/observability"
	"github.com/randalmurphal/scenecore/pkg/scenecore/registry"
)

// Manager is the device-context manager. It owns the Updatable
// registry, the device-resource registry and the staging registry,
// tracks device-context validity, and drives the per-frame cycle.
//
// All Manager methods run on the render thread. Thread safety of
// AddResource/AddUpdatable is the caller's discipline: call them from
// render-thread code or from load completion callbacks, which also run
// on the render thread.
type Manager struct {
	device  Device
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	barrier *RenderBarrier

	resources  *registry.List[Resource]
	staged     *registry.List[Resource]
	updatables *registry.List[Updatable]

	epoch uint64
	frame uint64
	dc    *DeviceContext

	frameWarnBudget time.Duration
	lastFrame       time.Time
}

// NewManager creates a Manager for the given device collaborator.
// The device context starts Invalid.
func NewManager(device Device, opts ...ManagerOption) *Manager {
	m := &Manager{
		device:     device,
		logger:     slog.Default(),
		metrics:    observability.NoopMetrics{},
		barrier:    NewRenderBarrier(),
		resources:  registry.New(Resource.ResourceSlot),
		staged:     registry.New(Resource.ResourceSlot),
		updatables: registry.New(Updatable.UpdatableSlot),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Barrier returns the synchronization barrier serviced by this
// manager's per-frame cycle. Pass it to the Loader as its Synchronizer.
func (m *Manager) Barrier() *RenderBarrier {
	return m.barrier
}

// Epoch returns the current context epoch. Zero means the context was
// never valid.
func (m *Manager) Epoch() uint64 {
	return m.epoch
}

// ContextValid reports whether the device context is currently Valid.
func (m *Manager) ContextValid() bool {
	return m.dc != nil
}

// OnDeviceContextAcquired transitions Invalid to Valid. It confirms a
// current context with the device, advances the epoch, probes
// capabilities once, and initializes every resource in the main
// registry. Re-entry after a context loss re-runs initialization on all
// surviving resources.
//
// Returns ErrDeviceContextInvalid when the device reports no current
// context. Calling while already Valid is a no-op.
func (m *Manager) OnDeviceContextAcquired() error {
	if m.dc != nil {
		return nil
	}

	id, ok := m.device.CurrentContext()
	if !ok {
		return ErrDeviceContextInvalid
	}

	m.epoch++

	caps, err := m.device.Capabilities()
	if err != nil {
		// Probe failure is non-fatal; the epoch runs without caps.
		m.logger.Warn("capability probe failed",
			slog.Uint64("epoch", m.epoch),
			slog.String("error", err.Error()),
		)
		caps = Capabilities{}
	}

	m.dc = &DeviceContext{
		Device: m.device,
		ID:     id,
		Epoch:  m.epoch,
		Caps:   caps,
	}

	m.initializeAll(m.resources)

	m.metrics.RecordContextTransition(context.Background(), true, m.epoch)
	observability.LogContextAcquired(m.logger, m.epoch, m.resources.Len())
	return nil
}

// OnDeviceContextLost transitions Valid to Invalid, tearing down the
// device state of every resource in the main registry. Calling while
// already Invalid is a no-op.
func (m *Manager) OnDeviceContextLost() {
	if m.dc == nil {
		return
	}

	count := m.resources.Len()
	dc := m.dc

	m.resources.Each(func(r Resource) bool {
		if err := r.ShutdownDevice(dc); err != nil {
			resErr := &ResourceError{Handle: r.Handle(), Op: "shutdown", Err: err}
			observability.LogResourceError(m.logger, r.Handle(), "shutdown", resErr)
		}
		if marker, ok := r.(initMarker); ok {
			marker.MarkShutDown()
		}
		return true
	})

	m.dc = nil
	m.metrics.RecordContextTransition(context.Background(), false, m.epoch)
	observability.LogContextLost(m.logger, m.epoch, count)
}

// AddResource attaches a device-bound resource to the staging registry.
// It is promoted into the main registry, and initialized if the context
// is Valid, at the start of the next PerFrameUpdate.
func (m *Manager) AddResource(r Resource) {
	if r == nil {
		return
	}
	m.staged.Attach(r)
	if s, ok := r.(stager); ok {
		s.markStaged()
	}
}

// AddUpdatable attaches an updatable directly to the live registry.
// Updatables are not device-epoch sensitive and need no staging.
func (m *Manager) AddUpdatable(u Updatable) {
	if u == nil {
		return
	}
	m.updatables.Attach(u)
}

// PerFrameUpdate runs one frame cycle: service the synchronization
// barrier, promote staged resources into the main registry, then update
// every updatable. Promotion runs before update so resources added last
// frame are eligible in this one.
func (m *Manager) PerFrameUpdate() {
	m.frame++
	done := observability.TimedOperation()

	now := time.Now()
	var delta time.Duration
	if !m.lastFrame.IsZero() {
		delta = now.Sub(m.lastFrame)
	}
	m.lastFrame = now

	// Complete pending loader rendezvous first so grafts and their
	// callbacks land before this frame's update pass.
	for m.barrier.Service() {
	}

	m.promoteStaged()

	fc := &FrameContext{
		Frame: m.frame,
		Delta: delta,
		Epoch: m.epoch,
	}
	count := 0
	m.updatables.Each(func(u Updatable) bool {
		count++
		if err := u.Update(fc); err != nil {
			resErr := &ResourceError{Handle: u.Handle(), Op: "update", Err: err}
			observability.LogResourceError(m.logger, u.Handle(), "update", resErr)
		}
		return true
	})

	elapsed := done()
	m.metrics.RecordFrame(context.Background(), time.Duration(elapsed)*time.Millisecond, count)
	if m.frameWarnBudget > 0 && elapsed > float64(m.frameWarnBudget.Milliseconds()) {
		observability.LogFrameOverBudget(m.logger, m.frame, elapsed, float64(m.frameWarnBudget.Milliseconds()))
	}
}

// promoteStaged initializes staged resources (when Valid) and splices
// them onto the front of the main registry in O(1).
func (m *Manager) promoteStaged() {
	if m.staged.Empty() {
		return
	}
	if m.dc != nil {
		m.initializeAll(m.staged)
	}
	m.resources.MergeFrom(m.staged)
}

// initializeAll runs the device-initialize hook on every member of the
// list. A failing member is logged and skipped; it stays in the
// registry and is retried on the next Valid entry.
func (m *Manager) initializeAll(list *registry.List[Resource]) {
	dc := m.dc
	list.Each(func(r Resource) bool {
		if marker, ok := r.(initMarker); ok && !marker.NeedsInitialize(dc.Epoch) {
			return true
		}
		err := r.InitializeDevice(dc)
		m.metrics.RecordResourceInit(context.Background(), r.Handle(), err)
		if err != nil {
			resErr := &ResourceError{Handle: r.Handle(), Op: "initialize", Err: err}
			observability.LogResourceError(m.logger, r.Handle(), "initialize", resErr)
			return true
		}
		if marker, ok := r.(initMarker); ok {
			marker.MarkInitialized(dc.Epoch)
		}
		return true
	})
}
