package scenecore

import (
	"time"

	"github.com/google/uuid"
	"github.com/randalmurphal/scenecore/pkg/scenecore/registry"
)

// NewHandle returns a short unique handle with the given prefix,
// e.g. "res-4f2a91c0".
func NewHandle(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// ContextID identifies a concrete device context handle.
// Zero means no context.
type ContextID uint64

// Capabilities describes what the current device context supports.
// Queried once per Valid entry and cached on the DeviceContext.
type Capabilities struct {
	// Extensions lists the device extension names.
	Extensions []string
	// MaxTextureSize is the largest texture dimension the device accepts.
	MaxTextureSize int
}

// Has reports whether the named extension is available.
func (c Capabilities) Has(name string) bool {
	for _, ext := range c.Extensions {
		if ext == name {
			return true
		}
	}
	return false
}

// Device is the graphics-device collaborator. Implementations wrap the
// actual graphics API; this core never touches it directly.
type Device interface {
	// CurrentContext returns the current context handle, or false when
	// no context is current on the calling thread.
	CurrentContext() (ContextID, bool)

	// Capabilities probes the device's extension capabilities.
	// Only called while a context is current.
	Capabilities() (Capabilities, error)
}

// DeviceContext carries the device handle and epoch for one Valid period.
// A new DeviceContext is created on every Invalid-to-Valid transition.
type DeviceContext struct {
	// Device is the owning device collaborator.
	Device Device
	// ID is the context handle confirmed at Valid entry.
	ID ContextID
	// Epoch counts Invalid-to-Valid transitions, starting at 1.
	Epoch uint64
	// Caps is the capability probe result for this epoch.
	Caps Capabilities
}

// FrameContext carries per-frame data to Updatable hooks.
type FrameContext struct {
	// Frame is the per-manager frame counter, starting at 1.
	Frame uint64
	// Delta is the wall time since the previous frame, zero on the first.
	Delta time.Duration
	// Epoch is the current context epoch, zero while Invalid.
	Epoch uint64
}

// Resource is a device-bound unit tracked by the Manager. It receives
// one InitializeDevice call per Valid entry and one ShutdownDevice call
// per Valid exit, and never a device call while the context is Invalid.
type Resource interface {
	// Handle returns the resource's unique handle.
	Handle() string

	// ResourceSlot returns the membership slot linking the resource
	// into at most one registry at a time.
	ResourceSlot() *registry.Slot[Resource]

	// InitializeDevice creates the resource's device-side state.
	InitializeDevice(dc *DeviceContext) error

	// ShutdownDevice releases the resource's device-side state.
	ShutdownDevice(dc *DeviceContext) error
}

// Updatable is a unit with per-frame update logic. Updatables are not
// device-epoch sensitive and skip the staging cycle.
type Updatable interface {
	// Handle returns the updatable's unique handle.
	Handle() string

	// UpdatableSlot returns the membership slot linking the updatable
	// into at most one registry at a time.
	UpdatableSlot() *registry.Slot[Updatable]

	// Update runs once per frame.
	Update(fc *FrameContext) error
}

// ResourceState tracks where a resource is in its lifecycle.
type ResourceState int

const (
	// StateDetached means the resource belongs to no registry.
	StateDetached ResourceState = iota
	// StateStaged means the resource waits in the staging registry for
	// promotion on the next frame.
	StateStaged
	// StateActive means the resource is initialized for the current epoch.
	StateActive
	// StateShutDown means the resource's device state was torn down.
	StateShutDown
)

// String returns the state name.
func (s ResourceState) String() string {
	switch s {
	case StateDetached:
		return "detached"
	case StateStaged:
		return "staged"
	case StateActive:
		return "active"
	case StateShutDown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// ResourceBase supplies the bookkeeping half of the Resource interface.
// Embed it and implement InitializeDevice/ShutdownDevice:
//
//	type Texture struct {
//	    scenecore.ResourceBase
//	    // device state
//	}
//
//	func (t *Texture) InitializeDevice(dc *scenecore.DeviceContext) error { ... }
//	func (t *Texture) ShutdownDevice(dc *scenecore.DeviceContext) error  { ... }
type ResourceBase struct {
	handle        string
	slot          registry.Slot[Resource]
	state         ResourceState
	lastInitEpoch uint64
}

// Handle returns the resource's handle, generating one on first use.
func (b *ResourceBase) Handle() string {
	if b.handle == "" {
		b.handle = NewHandle("res")
	}
	return b.handle
}

// ResourceSlot returns the registry membership slot.
func (b *ResourceBase) ResourceSlot() *registry.Slot[Resource] {
	return &b.slot
}

// State returns the resource's current lifecycle state.
func (b *ResourceBase) State() ResourceState {
	return b.state
}

// NeedsInitialize reports whether the resource was not yet initialized
// for the given epoch. Idempotency per epoch is the resource's own
// responsibility, not the registry's.
func (b *ResourceBase) NeedsInitialize(epoch uint64) bool {
	return b.lastInitEpoch != epoch
}

// MarkInitialized records a successful initialization for the epoch.
func (b *ResourceBase) MarkInitialized(epoch uint64) {
	b.lastInitEpoch = epoch
	b.state = StateActive
}

// MarkShutDown records a completed device teardown.
func (b *ResourceBase) MarkShutDown() {
	b.state = StateShutDown
}

// LastInitEpoch returns the epoch of the last successful initialization,
// zero if never initialized.
func (b *ResourceBase) LastInitEpoch() uint64 {
	return b.lastInitEpoch
}

// markStaged transitions to Staged when the manager attaches the
// resource to its staging registry.
func (b *ResourceBase) markStaged() {
	b.state = StateStaged
}

// stager is implemented by ResourceBase so the manager can record the
// Staged transition without widening the public Resource interface.
type stager interface {
	markStaged()
}

// initMarker is implemented by ResourceBase; the manager uses it to
// record init/shutdown transitions on resources that embed the base.
type initMarker interface {
	NeedsInitialize(epoch uint64) bool
	MarkInitialized(epoch uint64)
	MarkShutDown()
}

// UpdatableBase supplies the bookkeeping half of the Updatable
// interface. Embed it and implement Update.
type UpdatableBase struct {
	handle string
	slot   registry.Slot[Updatable]
}

// Handle returns the updatable's handle, generating one on first use.
func (b *UpdatableBase) Handle() string {
	if b.handle == "" {
		b.handle = NewHandle("upd")
	}
	return b.handle
}

// UpdatableSlot returns the registry membership slot.
func (b *UpdatableBase) UpdatableSlot() *registry.Slot[Updatable] {
	return &b.slot
}
