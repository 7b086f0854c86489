// Package registry provides a generic intrusive membership list for
// bulk lifecycle traversal.
//
// A List tracks membership through a Slot embedded in each item, so an
// item belongs to exactly zero or one list at any instant and moving
// it between lists is an O(1) re-link, never a copy. There is no
// external index to keep in sync.
//
// # Basic Usage
//
// Give your item type a slot and tell the list how to find it:
//
//	type widget struct {
//	    slot registry.Slot[*widget]
//	    name string
//	}
//
//	l := registry.New(func(w *widget) *registry.Slot[*widget] {
//	    return &w.slot
//	})
//	l.Attach(&widget{name: "a"})
//	l.Attach(&widget{name: "b"})
//
//	l.Each(func(w *widget) bool {
//	    fmt.Println(w.name) // "b", then "a" — most recent first
//	    return true
//	})
//
// # Staged Promotion
//
// MergeFrom splices one list's members onto the front of another in
// O(1), which is how staged resources are promoted into a live
// registry once per frame:
//
//	live.MergeFrom(staged) // staged is empty afterwards
//
// # Thread Safety
//
// List is not safe for concurrent use. The surrounding engine keeps
// all list mutation on a single thread (the render thread); traversal
// tolerates detaching the item currently being visited, which is
// enough for skip-and-continue lifecycle sweeps.
package registry
