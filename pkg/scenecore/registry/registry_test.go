package registry_test

import (
	"testing"

	"github.com/randalmurphal/scenecore/pkg/scenecore/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	slot registry.Slot[*item]
	name string
}

func slotOf(i *item) *registry.Slot[*item] { return &i.slot }

func newList() *registry.List[*item] { return registry.New(slotOf) }

func names(l *registry.List[*item]) []string {
	var out []string
	l.Each(func(i *item) bool {
		out = append(out, i.name)
		return true
	})
	return out
}

func TestAttachOrder(t *testing.T) {
	l := newList()
	l.Attach(&item{name: "a"})
	l.Attach(&item{name: "b"})
	l.Attach(&item{name: "c"})

	// Front insertion: most recent attach is visited first.
	assert.Equal(t, []string{"c", "b", "a"}, names(l))
	assert.Equal(t, 3, l.Len())
}

func TestEachVisitsExactlyOnce(t *testing.T) {
	l := newList()
	members := []*item{{name: "a"}, {name: "b"}, {name: "c"}, {name: "d"}}
	for _, m := range members {
		l.Attach(m)
	}

	seen := map[string]int{}
	l.Each(func(i *item) bool {
		seen[i.name]++
		return true
	})

	require.Len(t, seen, len(members))
	for _, m := range members {
		assert.Equal(t, 1, seen[m.name], "member %s visited once", m.name)
	}
}

func TestEachEarlyStop(t *testing.T) {
	l := newList()
	l.Attach(&item{name: "a"})
	l.Attach(&item{name: "b"})

	var visited []string
	l.Each(func(i *item) bool {
		visited = append(visited, i.name)
		return false
	})
	assert.Equal(t, []string{"b"}, visited)
}

func TestDetach(t *testing.T) {
	l := newList()
	a := &item{name: "a"}
	b := &item{name: "b"}
	l.Attach(a)
	l.Attach(b)

	assert.True(t, a.slot.Attached())
	l.Detach(a)
	assert.False(t, a.slot.Attached())
	assert.Equal(t, []string{"b"}, names(l))

	// Detaching twice is a no-op.
	l.Detach(a)
	assert.Equal(t, 1, l.Len())
}

func TestDetachDuringTraversal(t *testing.T) {
	l := newList()
	for _, n := range []string{"a", "b", "c"} {
		l.Attach(&item{name: n})
	}

	l.Each(func(i *item) bool {
		if i.name == "b" {
			l.Detach(i)
		}
		return true
	})

	assert.Equal(t, []string{"c", "a"}, names(l))
}

func TestAttachMovesBetweenLists(t *testing.T) {
	l1 := newList()
	l2 := newList()
	a := &item{name: "a"}

	l1.Attach(a)
	require.Equal(t, 1, l1.Len())

	// Re-attach is an atomic re-link: the item leaves l1.
	l2.Attach(a)
	assert.Equal(t, 0, l1.Len())
	assert.Equal(t, []string{"a"}, names(l2))
}

func TestReattachSameListMovesToFront(t *testing.T) {
	l := newList()
	a := &item{name: "a"}
	b := &item{name: "b"}
	l.Attach(a)
	l.Attach(b)

	l.Attach(a)
	assert.Equal(t, []string{"a", "b"}, names(l))
	assert.Equal(t, 2, l.Len())
}

func TestMergeFrom(t *testing.T) {
	dst := newList()
	src := newList()
	dst.Attach(&item{name: "old"})
	src.Attach(&item{name: "a"})
	src.Attach(&item{name: "b"})

	dst.MergeFrom(src)

	// Spliced onto the front, relative order preserved.
	assert.Equal(t, []string{"b", "a", "old"}, names(dst))
	assert.True(t, src.Empty())
	assert.Equal(t, 0, src.Len())
}

func TestMergeFromEmptyIsIdempotent(t *testing.T) {
	dst := newList()
	src := newList()
	dst.Attach(&item{name: "a"})
	dst.Attach(&item{name: "b"})

	before := names(dst)
	dst.MergeFrom(src)
	assert.Equal(t, before, names(dst))

	dst.MergeFrom(nil)
	assert.Equal(t, before, names(dst))
}

func TestMergedMembersCanDetach(t *testing.T) {
	dst := newList()
	src := newList()
	a := &item{name: "a"}
	src.Attach(a)
	dst.MergeFrom(src)

	dst.Detach(a)
	assert.True(t, dst.Empty())
	assert.False(t, a.slot.Attached())
}

func TestEmpty(t *testing.T) {
	l := newList()
	assert.True(t, l.Empty())
	a := &item{name: "a"}
	l.Attach(a)
	assert.False(t, l.Empty())
	l.Detach(a)
	assert.True(t, l.Empty())
}
