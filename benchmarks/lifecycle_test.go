package benchmarks

import (
	"fmt"
	"testing"

	"github.com/randalmurphal/scenecore/pkg/scenecore"
	"github.com/randalmurphal/scenecore/pkg/scenecore/registry"
)

// benchResource is a minimal device resource for benchmarks.
type benchResource struct {
	scenecore.ResourceBase
}

func (r *benchResource) InitializeDevice(_ *scenecore.DeviceContext) error { return nil }
func (r *benchResource) ShutdownDevice(_ *scenecore.DeviceContext) error   { return nil }

// benchUpdatable does minimal work to measure traversal overhead.
type benchUpdatable struct {
	scenecore.UpdatableBase
}

func (u *benchUpdatable) Update(_ *scenecore.FrameContext) error { return nil }

// benchDevice always reports a current context.
type benchDevice struct{}

func (benchDevice) CurrentContext() (scenecore.ContextID, bool) { return 1, true }
func (benchDevice) Capabilities() (scenecore.Capabilities, error) {
	return scenecore.Capabilities{}, nil
}

// BenchmarkRegistryAttach measures a single front-link attach.
func BenchmarkRegistryAttach(b *testing.B) {
	list := registry.New(scenecore.Resource.ResourceSlot)
	items := make([]*benchResource, b.N)
	for i := range items {
		items[i] = &benchResource{}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		list.Attach(items[i])
	}
}

// BenchmarkRegistryMergeFrom measures the O(1) staged-to-live splice.
func BenchmarkRegistryMergeFrom(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("staged_%d", size), func(b *testing.B) {
			live := registry.New(scenecore.Resource.ResourceSlot)
			staged := registry.New(scenecore.Resource.ResourceSlot)
			items := make([]*benchResource, size)
			for i := range items {
				items[i] = &benchResource{}
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				for _, item := range items {
					staged.Attach(item)
				}
				b.StartTimer()
				live.MergeFrom(staged)
			}
		})
	}
}

// BenchmarkPerFrameUpdate measures a full frame cycle over populated
// registries.
func BenchmarkPerFrameUpdate(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("updatables_%d", size), func(b *testing.B) {
			m := scenecore.NewManager(benchDevice{})
			if err := m.OnDeviceContextAcquired(); err != nil {
				b.Fatal(err)
			}
			for i := 0; i < size; i++ {
				m.AddUpdatable(&benchUpdatable{})
			}
			m.PerFrameUpdate() // promote
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m.PerFrameUpdate()
			}
		})
	}
}

// BenchmarkContextCycle measures a full lose/reacquire transition over
// an attached resource population.
func BenchmarkContextCycle(b *testing.B) {
	for _, size := range []int{10, 100} {
		b.Run(fmt.Sprintf("resources_%d", size), func(b *testing.B) {
			m := scenecore.NewManager(benchDevice{})
			for i := 0; i < size; i++ {
				m.AddResource(&benchResource{})
			}
			m.PerFrameUpdate() // promote
			if err := m.OnDeviceContextAcquired(); err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m.OnDeviceContextLost()
				if err := m.OnDeviceContextAcquired(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
