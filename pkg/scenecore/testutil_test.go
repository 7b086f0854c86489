package scenecore

import (
	"errors"
	"sync"
)

// fakeDevice is a controllable Device for tests.
type fakeDevice struct {
	mu      sync.Mutex
	current bool
	id      ContextID
	caps    Capabilities
	capsErr error
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		current: true,
		id:      1,
		caps:    Capabilities{Extensions: []string{"EXT_test"}, MaxTextureSize: 4096},
	}
}

func (d *fakeDevice) CurrentContext() (ContextID, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.current {
		return 0, false
	}
	return d.id, true
}

func (d *fakeDevice) Capabilities() (Capabilities, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.capsErr != nil {
		return Capabilities{}, d.capsErr
	}
	return d.caps, nil
}

func (d *fakeDevice) setCurrent(current bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = current
}

// fakeResource counts lifecycle calls.
type fakeResource struct {
	ResourceBase
	initCalls     int
	shutdownCalls int
	failInit      bool
	lastEpoch     uint64
}

func (r *fakeResource) InitializeDevice(dc *DeviceContext) error {
	r.initCalls++
	r.lastEpoch = dc.Epoch
	if r.failInit {
		return errors.New("init failed")
	}
	return nil
}

func (r *fakeResource) ShutdownDevice(_ *DeviceContext) error {
	r.shutdownCalls++
	return nil
}

// fakeUpdatable counts update calls.
type fakeUpdatable struct {
	UpdatableBase
	updates  int
	err      error
	onUpdate func(fc *FrameContext)
}

func (u *fakeUpdatable) Update(fc *FrameContext) error {
	u.updates++
	if u.onUpdate != nil {
		u.onUpdate(fc)
	}
	return u.err
}
