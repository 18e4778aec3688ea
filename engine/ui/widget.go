package ui

import (
	"log"
	"strings"

	"github.com/hubastard/trellis/engine/geom"
)

// Widget is bound to exactly one node. The node itself is owned by the NodeStore.
type Widget interface {
	Node() Handle
}

// ChildHost is implemented by widgets that host nested layout. Children are
// attached under ChildrenContainer, which may differ from the widget's own node.
type ChildHost interface {
	ChildrenContainer() Handle
}

// Behavior is updated once per frame during dispatch.
type Behavior interface {
	Node() Handle
	Update(f *Frame)
}

// Hoverable behaviors are told when their node gains or loses the pointer.
type Hoverable interface {
	SetHovered(bool)
}

// Focusable behaviors are told when their node gains or loses focus.
type Focusable interface {
	SetFocused(bool)
}

// BehaviorRef is the strong handle to a registered behavior. The Gui only
// observes it weakly: once the owner drops its BehaviorRef the behavior stops
// being scheduled and its node leaves the tree.
type BehaviorRef struct {
	b Behavior
}

func (r *BehaviorRef) Behavior() Behavior { return r.b }

// Frame is the per-frame view a behavior gets of input dispatch.
type Frame struct {
	gui      *Gui
	hit      Handle
	pointer  Pointer
	pressed  bool
	released bool
}

func (f *Frame) Nodes() *NodeStore { return f.gui.nodes }

// Hit returns the node under the pointer, or the zero Handle.
func (f *Frame) Hit() Handle { return f.hit }

// Over reports whether the pointer is over h this frame.
func (f *Frame) Over(h Handle) bool { return !f.hit.IsZero() && f.hit == h }

func (f *Frame) Pointer() Pointer { return f.pointer }

// Down reports whether the pointer button is held.
func (f *Frame) Down() bool { return f.pointer.Pressed }

// PressStarted reports a press edge: up last frame, down this frame.
func (f *Frame) PressStarted() bool { return f.pressed }

// Released reports a release edge: down last frame, up this frame.
func (f *Frame) Released() bool { return f.released }

// Emit queues an action event for node h.
func (f *Frame) Emit(kind EventKind, h Handle, index int) {
	f.gui.emit(kind, h, index)
}

// widgetNode allocates the node of a new widget. It fails before touching the
// tree when parent is stale. The style query is typeName followed by classes.
func (g *Gui) widgetNode(parent Handle, typeName string, classes []string) (Handle, *StyleQuery, error) {
	if !g.nodes.Contains(parent) {
		return Handle{}, nil, staleHandle(parent)
	}
	q := g.styles.Query(append([]string{typeName}, classes...)...)
	h, err := g.nodes.Create(parent)
	if err != nil {
		return Handle{}, nil, err
	}
	n := g.nodes.node(h)
	n.Class = strings.Join(classes, " ")
	return h, q, nil
}

// report logs the malformed fields of a finished style query.
func (g *Gui) report(typeName string, q *StyleQuery) {
	for _, err := range q.Malformed() {
		log.Printf("ui: warning: %s: %v", typeName, err)
	}
}

func takeAlign(q *StyleQuery, key string, def Align) Align {
	v, ok := q.Lookup(key)
	if !ok {
		return def
	}
	s := Take(q, key, "")
	if a, ok := ParseAlign(s); ok {
		return a
	}
	if v.Kind() == KindString {
		q.malformed = append(q.malformed, &MalformedStyleError{Key: key, Want: "alignment", Got: KindString})
	}
	return def
}

func takeDirection(q *StyleQuery, key string, def Direction) Direction {
	v, ok := q.Lookup(key)
	if !ok {
		return def
	}
	switch Take(q, key, "") {
	case "horizontal", "row":
		return Horizontal
	case "vertical", "column":
		return Vertical
	}
	if v.Kind() == KindString {
		q.malformed = append(q.malformed, &MalformedStyleError{Key: key, Want: "direction", Got: KindString})
	}
	return def
}

// sizedLayout uses the style size when present and fill otherwise.
func sizedLayout(q *StyleQuery, fill geom.Insets) Layout {
	if sz := Take(q, "size", geom.Size{}); sz != (geom.Size{}) {
		return SizeLayout(sz)
	}
	return FillLayout(fill)
}
