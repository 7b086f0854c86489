// Package node provides the minimal scene-graph node the lifecycle
// core operates on: a named group with a local transform and child
// groups.
//
// Groups are not safe for concurrent use. The engine mutates the live
// scene graph only on the render thread; subtrees under construction
// on a loader worker are private to that worker until they are
// grafted at a synchronization point.
package node

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Group is a scene-graph node. A Group owns its children: a child
// belongs to at most one parent, and AddChild reparents.
type Group struct {
	name      string
	transform mgl32.Mat4
	parent    *Group
	children  []*Group
}

// NewGroup creates a group with an identity transform.
func NewGroup(name string) *Group {
	return &Group{
		name:      name,
		transform: mgl32.Ident4(),
	}
}

// Name returns the group's name.
func (g *Group) Name() string { return g.name }

// SetName renames the group.
func (g *Group) SetName(name string) { g.name = name }

// Transform returns the group's local transform.
func (g *Group) Transform() mgl32.Mat4 { return g.transform }

// SetTransform replaces the group's local transform.
func (g *Group) SetTransform(m mgl32.Mat4) { g.transform = m }

// Parent returns the group's parent, or nil for a root.
func (g *Group) Parent() *Group { return g.parent }

// Children returns a copy of the child list in insertion order.
func (g *Group) Children() []*Group {
	out := make([]*Group, len(g.children))
	copy(out, g.children)
	return out
}

// ChildCount returns the number of direct children.
func (g *Group) ChildCount() int { return len(g.children) }

// AddChild appends c to g's children, removing it from its previous
// parent first. Adding a nil child or self is a no-op.
func (g *Group) AddChild(c *Group) {
	if c == nil || c == g {
		return
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = g
	g.children = append(g.children, c)
}

// RemoveChild detaches c from g. No-op if c is not a child of g.
func (g *Group) RemoveChild(c *Group) {
	if c == nil || c.parent != g {
		return
	}
	for i, child := range g.children {
		if child == c {
			g.children = append(g.children[:i], g.children[i+1:]...)
			break
		}
	}
	c.parent = nil
}

// TakeChildren moves all of from's children onto g, preserving their
// order. This is an adopt, not a copy: afterwards from has no
// children and g is the sole parent. Taking from nil or from an empty
// group is a no-op.
func (g *Group) TakeChildren(from *Group) {
	if from == nil || from == g || len(from.children) == 0 {
		return
	}
	for _, c := range from.children {
		c.parent = g
	}
	g.children = append(g.children, from.children...)
	from.children = nil
}

// Find returns the first group named name in a depth-first walk of g's
// subtree (including g itself), or nil.
func (g *Group) Find(name string) *Group {
	if g.name == name {
		return g
	}
	for _, c := range g.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits g and every descendant depth-first. Returning false
// stops the walk.
func (g *Group) Walk(fn func(*Group) bool) bool {
	if !fn(g) {
		return false
	}
	for _, c := range g.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
