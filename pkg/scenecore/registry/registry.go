package registry

// Slot is the intrusive link an item contributes to a List. Embed a
// Slot (usually via a base type) in anything that needs membership.
// The zero value is a detached slot.
//
// A slot belongs to at most one list at any instant; attaching an item
// to a second list atomically re-links the slot, it never copies the
// item.
type Slot[T any] struct {
	item       T
	prev, next *Slot[T]
}

// Attached reports whether the slot is currently linked into a list.
func (s *Slot[T]) Attached() bool {
	return s.prev != nil
}

// unlink removes the slot from whatever chain it is in. Safe on a
// detached slot.
func (s *Slot[T]) unlink() {
	if s.prev != nil {
		s.prev.next = s.next
	}
	if s.next != nil {
		s.next.prev = s.prev
	}
	s.prev = nil
	s.next = nil
}

// List is an ordered membership list built from intrusive slots.
// Attach, Detach and MergeFrom are O(1); traversal is front-to-back
// with the most recently attached item first.
//
// List is NOT safe for concurrent use. Callers own the threading
// discipline (the context manager runs all list mutation on the
// render thread).
type List[T any] struct {
	slotOf     func(T) *Slot[T]
	head, tail Slot[T]
}

// New creates an empty list. slotOf extracts an item's membership
// slot; it must return the same slot for the item's entire lifetime.
func New[T any](slotOf func(T) *Slot[T]) *List[T] {
	l := &List[T]{slotOf: slotOf}
	l.head.next = &l.tail
	l.tail.prev = &l.head
	return l
}

// Attach links item at the front of the list, detaching it from any
// list it previously belonged to. O(1).
func (l *List[T]) Attach(item T) {
	s := l.slotOf(item)
	s.item = item
	s.unlink()
	s.prev = &l.head
	s.next = l.head.next
	l.head.next.prev = s
	l.head.next = s
}

// Detach unlinks item from whatever list it is in. No-op if already
// detached.
func (l *List[T]) Detach(item T) {
	l.slotOf(item).unlink()
}

// Empty reports whether the list has no members.
func (l *List[T]) Empty() bool {
	return l.head.next == &l.tail
}

// Len walks the list and returns the member count.
func (l *List[T]) Len() int {
	n := 0
	for s := l.head.next; s != &l.tail; s = s.next {
		n++
	}
	return n
}

// Each visits every member front-to-back. Returning false stops the
// traversal. The current item may be detached (or re-attached to a
// different list) from inside fn; attaching new items to the list
// being traversed is not supported.
func (l *List[T]) Each(fn func(T) bool) {
	for s := l.head.next; s != &l.tail; {
		next := s.next
		if !fn(s.item) {
			return
		}
		s = next
	}
}

// MergeFrom splices all of other's members onto the front of l,
// preserving their relative order, and leaves other empty. O(1).
// Merging an empty list is a no-op.
func (l *List[T]) MergeFrom(other *List[T]) {
	if other == nil || other.Empty() {
		return
	}
	first := other.head.next
	last := other.tail.prev

	other.head.next = &other.tail
	other.tail.prev = &other.head

	last.next = l.head.next
	l.head.next.prev = last
	first.prev = &l.head
	l.head.next = first
}
