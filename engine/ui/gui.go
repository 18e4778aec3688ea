// Package ui is a retained-mode GUI: a node tree with anchor and sequential
// layout, a class based style cascade, widgets with per-frame behaviors, and
// pointer dispatch producing action events for the host.
//
// A frame runs Layout, then Dispatch, then the renderer reads DrawList and the
// host drains the events. Update performs the first two steps.
package ui

import (
	"weak"

	"github.com/hubastard/trellis/engine/geom"
)

type Gui struct {
	nodes    *NodeStore
	styles   *StyleSheet
	ctx      *Context
	viewport geom.Rect

	behaviors []behaviorEntry
	events    []Event

	hover Handle
	focus Handle
	down  bool
}

// New creates a GUI whose root spans an empty viewport. styles is layered on
// top of DefaultStyles and may be nil, as may ctx.
func New(styles *StyleSheet, ctx *Context) *Gui {
	sheet := DefaultStyles()
	sheet.Merge(styles)
	if ctx == nil {
		ctx = &Context{}
	}
	return &Gui{
		nodes:  NewNodeStore(),
		styles: sheet,
		ctx:    ctx,
	}
}

func (g *Gui) Nodes() *NodeStore       { return g.nodes }
func (g *Gui) Root() Handle            { return g.nodes.Root() }
func (g *Gui) Styles() *StyleSheet     { return g.styles }
func (g *Gui) Context() *Context       { return g.ctx }
func (g *Gui) Viewport() geom.Rect     { return g.viewport }
func (g *Gui) SetViewport(r geom.Rect) { g.viewport = r }

// Node returns the node bound to w.
func (g *Gui) Node(w Widget) (*Node, error) { return g.nodes.Get(w.Node()) }

// Remove deletes the node of w together with its subtree. Behaviors bound to
// those nodes stop being scheduled on the next frame.
func (g *Gui) Remove(w Widget) error { return g.nodes.Remove(w.Node()) }

// behaviorEntry remembers the node a behavior was bound to so the node can be
// removed once the behavior is collected.
type behaviorEntry struct {
	node Handle
	ref  weak.Pointer[BehaviorRef]
}

// RegisterBehavior schedules b every frame for as long as the returned ref is
// reachable or until b's node is removed. Once the ref is collected, b's node
// and its subtree are removed from the tree on the next frame.
func (g *Gui) RegisterBehavior(b Behavior) *BehaviorRef {
	ref := &BehaviorRef{b: b}
	g.behaviors = append(g.behaviors, behaviorEntry{node: b.Node(), ref: weak.Make(ref)})
	return ref
}

// collect removes the nodes of behaviors whose owners were dropped.
func (g *Gui) collect() {
	for _, e := range g.behaviors {
		if e.ref.Value() == nil {
			// Stale when an ancestor went first.
			_ = g.nodes.Remove(e.node)
		}
	}
}

// BehaviorCount returns the number of behaviors kept by the last scheduling
// pass plus any registered since.
func (g *Gui) BehaviorCount() int { return len(g.behaviors) }

// Layout resolves the whole tree against the viewport.
func (g *Gui) Layout() {
	Resolve(g.nodes, g.nodes.Root(), g.viewport)
}

// Update runs Layout followed by Dispatch. Nodes of dropped widgets are
// removed before layout.
func (g *Gui) Update(p Pointer) {
	g.collect()
	g.Layout()
	g.Dispatch(p)
}

// Events returns the events of the current frame. The slice is reused by the
// next Dispatch.
func (g *Gui) Events() []Event { return g.events }

// Drain returns the events of the current frame and empties the queue.
func (g *Gui) Drain() []Event {
	out := g.events
	g.events = nil
	return out
}

func (g *Gui) emit(kind EventKind, h Handle, index int) {
	ev := Event{Kind: kind, Node: h, Index: index}
	if n := g.nodes.node(h); n != nil {
		ev.Name, ev.Class = n.Name, n.Class
	}
	g.events = append(g.events, ev)
}

// DrawList appends the shown nodes that have a draw descriptor to dst in z
// order. Pre-order traversal is z order, so no sorting is needed.
func (g *Gui) DrawList(dst []DrawItem) []DrawItem {
	g.nodes.Walk(g.nodes.Root(), func(h Handle, n *Node) bool {
		if !n.shown {
			return false
		}
		if n.Draw != nil {
			dst = append(dst, DrawItem{Node: h, Rect: n.rect, Z: n.z, Draw: n.Draw})
		}
		return true
	})
	return dst
}
