package scenecore

import (
	"sync/atomic"

	"github.com/randalmurphal/scenecore/pkg/scenecore/node"
)

// graftObserver is the one-shot synchronization observer for a single
// load request. At fire time it moves the worker-built subtree's
// children onto the target anchor and invokes the completion callback,
// then clears its references so a second fire is structurally a no-op.
type graftObserver struct {
	source   *node.Group
	target   *node.Group
	callback LoadCallback
	buildErr error
	fired    atomic.Bool
}

// newGraftObserver arms an observer for one request. buildErr carries a
// failed read/build forward; the callback still fires, with an empty
// graft.
func newGraftObserver(source, target *node.Group, callback LoadCallback, buildErr error) *graftObserver {
	return &graftObserver{
		source:   source,
		target:   target,
		callback: callback,
		buildErr: buildErr,
	}
}

// ContextsSynchronized grafts the built subtree into the target anchor
// and fires the callback. Runs on the render thread with the worker
// parked at the barrier, so the graft is the only scene mutation in
// flight. At most one invocation has any effect.
func (o *graftObserver) ContextsSynchronized() {
	if !o.fired.CompareAndSwap(false, true) {
		return
	}

	source, target, callback, buildErr := o.source, o.target, o.callback, o.buildErr
	o.source = nil
	o.target = nil
	o.callback = nil
	o.buildErr = nil

	if source == nil || target == nil {
		return
	}

	target.TakeChildren(source)

	if callback != nil {
		callback(target, buildErr)
	}
}
