package ui

import (
	"fmt"

	"github.com/hubastard/trellis/engine/geom"
)

// Pointer is the pointer state sampled once per frame.
type Pointer struct {
	Position geom.Point
	Pressed  bool
}

type EventKind int

const (
	EventActivate EventKind = iota
	EventHoverEnter
	EventHoverExit
	EventFocusEnter
	EventFocusExit
)

func (k EventKind) String() string {
	switch k {
	case EventActivate:
		return "activate"
	case EventHoverEnter:
		return "hover-enter"
	case EventHoverExit:
		return "hover-exit"
	case EventFocusEnter:
		return "focus-enter"
	case EventFocusExit:
		return "focus-exit"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is an action event for the host. Name and Class are copied from the
// originating node. Index is the selected entry for toggle groups, else 0.
type Event struct {
	Kind  EventKind
	Node  Handle
	Name  string
	Class string
	Index int
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s name=%q class=%q index=%d", e.Kind, e.Node, e.Name, e.Class, e.Index)
}

// HitTest returns the node under p, or the zero Handle. Children are tested
// last-inserted first and before their parent, so the topmost and deepest
// pointer-opaque node wins. Invisible subtrees are skipped.
func HitTest(nodes *NodeStore, root Handle, p geom.Point) Handle {
	n := nodes.node(root)
	if n == nil || !n.Visible {
		return Handle{}
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if h := HitTest(nodes, n.children[i], p); !h.IsZero() {
			return h
		}
	}
	if n.PointerOpaque && n.rect.Contains(p) {
		return root
	}
	return Handle{}
}

// Dispatch runs the input pass for one frame: hit-test, hover and focus
// transitions, then every live behavior. Events from the previous frame are
// dropped first. Handles remembered from earlier frames that have since gone
// stale count as no node and produce no events.
func (g *Gui) Dispatch(p Pointer) {
	g.events = g.events[:0]
	g.collect()

	hit := HitTest(g.nodes, g.nodes.Root(), p.Position)
	f := &Frame{
		gui:      g,
		hit:      hit,
		pointer:  p,
		pressed:  p.Pressed && !g.down,
		released: !p.Pressed && g.down,
	}
	g.down = p.Pressed

	if hit != g.hover {
		if g.nodes.Contains(g.hover) {
			g.emit(EventHoverExit, g.hover, 0)
			g.notify(g.hover, func(b Behavior) {
				if h, ok := b.(Hoverable); ok {
					h.SetHovered(false)
				}
			})
		}
		if !hit.IsZero() {
			g.emit(EventHoverEnter, hit, 0)
			g.notify(hit, func(b Behavior) {
				if h, ok := b.(Hoverable); ok {
					h.SetHovered(true)
				}
			})
		}
		g.hover = hit
	}

	if f.pressed && hit != g.focus {
		if g.nodes.Contains(g.focus) {
			g.emit(EventFocusExit, g.focus, 0)
			g.notify(g.focus, func(b Behavior) {
				if h, ok := b.(Focusable); ok {
					h.SetFocused(false)
				}
			})
		}
		if !hit.IsZero() {
			g.emit(EventFocusEnter, hit, 0)
			g.notify(hit, func(b Behavior) {
				if h, ok := b.(Focusable); ok {
					h.SetFocused(true)
				}
			})
		}
		g.focus = hit
	}

	g.schedule(f)
}

// notify calls fn for every live behavior bound to h.
func (g *Gui) notify(h Handle, fn func(Behavior)) {
	for _, e := range g.behaviors {
		if ref := e.ref.Value(); ref != nil && e.node == h {
			fn(ref.b)
		}
	}
}

// schedule updates the live behaviors in registration order and prunes the
// ones that were collected or whose node was removed.
func (g *Gui) schedule(f *Frame) {
	pending := g.behaviors
	g.behaviors = nil
	live := pending[:0]
	for _, e := range pending {
		ref := e.ref.Value()
		if ref == nil {
			_ = g.nodes.Remove(e.node)
			continue
		}
		if !g.nodes.Contains(e.node) {
			continue
		}
		live = append(live, e)
		ref.b.Update(f)
	}
	clear(pending[len(live):])
	// Behaviors registered during the pass run from the next frame on.
	g.behaviors = append(live, g.behaviors...)
}
