package scenecore

import "sync"

// SyncObserver fires when the render thread and worker thread are
// quiesced together at the synchronization rendezvous.
type SyncObserver interface {
	// ContextsSynchronized runs on the render thread while the worker
	// is parked inside Synchronize. Scene-graph mutation is legal only
	// here.
	ContextsSynchronized()
}

// Synchronizer is the cross-thread rendezvous collaborator. The worker
// registers an observer, then blocks in Synchronize until the render
// thread services the barrier and the observer has fired.
type Synchronizer interface {
	// Register adds an observer to fire at the next rendezvous.
	Register(o SyncObserver)

	// Release removes a previously registered observer.
	Release(o SyncObserver)

	// Synchronize blocks the calling worker until the render thread
	// services the rendezvous. A receive on cancel abandons the wait
	// and returns ErrSyncCancelled; the observer may or may not have
	// fired in that case.
	Synchronize(cancel <-chan struct{}) error
}

// RenderBarrier is the channel-based Synchronizer serviced from the
// render thread. The worker parks on an unbuffered handshake channel;
// Service receives the handshake, fires all registered observers on the
// calling (render) goroutine, then releases the worker. There is no
// polling on either side.
type RenderBarrier struct {
	mu        sync.Mutex
	observers []SyncObserver

	// waiting carries one ack channel per parked worker.
	waiting chan chan struct{}
}

// Compile-time interface check.
var _ Synchronizer = (*RenderBarrier)(nil)

// NewRenderBarrier creates an unserviced barrier.
func NewRenderBarrier() *RenderBarrier {
	return &RenderBarrier{
		waiting: make(chan chan struct{}),
	}
}

// Register adds an observer to fire at the next rendezvous.
func (b *RenderBarrier) Register(o SyncObserver) {
	if o == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, o)
}

// Release removes a previously registered observer. Unknown observers
// are ignored.
func (b *RenderBarrier) Release(o SyncObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, reg := range b.observers {
		if reg == o {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			return
		}
	}
}

// Synchronize blocks until the render thread services the barrier or
// cancel is closed. Called from the worker goroutine.
func (b *RenderBarrier) Synchronize(cancel <-chan struct{}) error {
	ack := make(chan struct{})

	select {
	case b.waiting <- ack:
	case <-cancel:
		return ErrSyncCancelled
	}

	select {
	case <-ack:
		return nil
	case <-cancel:
		return ErrSyncCancelled
	}
}

// Service completes one pending rendezvous: it fires every registered
// observer on the calling goroutine, then releases the parked worker.
// Returns false immediately when no worker is waiting. Called from the
// render thread, once per frame before resource promotion.
func (b *RenderBarrier) Service() bool {
	select {
	case ack := <-b.waiting:
		b.mu.Lock()
		observers := make([]SyncObserver, len(b.observers))
		copy(observers, b.observers)
		b.mu.Unlock()

		for _, o := range observers {
			o.ContextsSynchronized()
		}
		close(ack)
		return true
	default:
		return false
	}
}
