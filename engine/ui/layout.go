package ui

import (
	"github.com/hubastard/trellis/engine/geom"
)

type AnchorTarget int

const (
	TargetNone AnchorTarget = iota
	TargetParent
	TargetPreviousSibling
)

// AnchorMode selects which edge of the target an anchor attaches to.
type AnchorMode int

const (
	SameSide AnchorMode = iota
	OppositeSide
	CenterOf
)

// Anchor ties one edge of a node to an edge or the center of its parent or
// previous sibling. Offset moves the edge inward: it is added on the left and
// top sides and subtracted on the right and bottom sides.
type Anchor struct {
	Target AnchorTarget
	Mode   AnchorMode
	Offset int
}

func ParentAnchor(offset int) Anchor { return Anchor{Target: TargetParent, Offset: offset} }
func ParentCenter(offset int) Anchor {
	return Anchor{Target: TargetParent, Mode: CenterOf, Offset: offset}
}
func SiblingAnchor(offset int) Anchor {
	return Anchor{Target: TargetPreviousSibling, Offset: offset}
}

// SiblingOpposite anchors to the facing edge of the previous sibling,
// e.g. a left edge to the sibling's right edge.
func SiblingOpposite(offset int) Anchor {
	return Anchor{Target: TargetPreviousSibling, Mode: OppositeSide, Offset: offset}
}

// Layout is the per-node layout description.
type Layout struct {
	// Size is used on any axis with at most one anchor, and as the item size
	// inside sequential containers.
	Size    geom.Size
	Anchors [4]Anchor
	// Grow makes the node take the remaining main-axis space inside a Box.
	Grow bool
}

func SizeLayout(size geom.Size) Layout { return Layout{Size: size} }

// RectLayout places a node at r relative to its parent's origin.
func RectLayout(r geom.Rect) Layout {
	var l Layout
	l.Size = r.Size()
	l.Anchors[geom.Left] = ParentAnchor(r.X)
	l.Anchors[geom.Top] = ParentAnchor(r.Y)
	return l
}

// FillLayout stretches a node over its parent, inset by in.
func FillLayout(in geom.Insets) Layout {
	var l Layout
	l.Anchors[geom.Left] = ParentAnchor(in.Left)
	l.Anchors[geom.Right] = ParentAnchor(in.Right)
	l.Anchors[geom.Top] = ParentAnchor(in.Top)
	l.Anchors[geom.Bottom] = ParentAnchor(in.Bottom)
	return l
}

// CenterLayout centers a node of the given size in its parent.
func CenterLayout(size geom.Size) Layout {
	var l Layout
	l.Size = size
	l.Anchors[geom.Left] = ParentCenter(-size.W / 2)
	l.Anchors[geom.Top] = ParentCenter(-size.H / 2)
	return l
}

func (l *Layout) SetAnchor(side geom.Side, a Anchor) *Layout {
	l.Anchors[side] = a
	return l
}

func (l *Layout) Anchor(side geom.Side) Anchor { return l.Anchors[side] }

// edge resolves the anchored coordinate of side, or false when the side is
// free. A previous-sibling anchor without a sibling counts as free.
func (l *Layout) edge(side geom.Side, parent geom.Rect, prev *geom.Rect) (int, bool) {
	a := l.Anchors[side]
	var target geom.Rect
	switch a.Target {
	case TargetParent:
		target = parent
	case TargetPreviousSibling:
		if prev == nil {
			return 0, false
		}
		target = *prev
	default:
		return 0, false
	}
	var e int
	switch a.Mode {
	case OppositeSide:
		e = target.Edge(side.Opposite())
	case CenterOf:
		e = (target.Edge(side) + target.Edge(side.Opposite())) / 2
	default:
		e = target.Edge(side)
	}
	if side.Far() {
		return e - a.Offset, true
	}
	return e + a.Offset, true
}

// Resolve computes the rectangle of a node laid out against parent, with prev
// being the previous sibling's rectangle (nil for a first child).
func (l *Layout) Resolve(parent geom.Rect, prev *geom.Rect) geom.Rect {
	x, w := l.axis(geom.Left, parent.X, l.Size.W, parent, prev)
	y, h := l.axis(geom.Top, parent.Y, l.Size.H, parent, prev)
	return geom.Rect{X: x, Y: y, W: w, H: h}
}

func (l *Layout) axis(near geom.Side, origin, base int, parent geom.Rect, prev *geom.Rect) (pos, extent int) {
	far := near.Opposite()
	n, nearOK := l.edge(near, parent, prev)
	f, farOK := l.edge(far, parent, prev)
	switch {
	case nearOK && farOK:
		return n, max(0, f-n)
	case nearOK:
		return n, base
	case farOK:
		return f - base, base
	default:
		return origin, base
	}
}

// Resolve lays out the subtree under root, root spanning viewport.
// Traversal is pre-order with children in insertion order; z values are
// assigned in the same order, so every node draws above its ancestors and
// earlier siblings.
func Resolve(nodes *NodeStore, root Handle, viewport geom.Rect) {
	n := nodes.node(root)
	if n == nil {
		return
	}
	r := resolver{nodes: nodes}
	n.rect = viewport
	n.z = 0
	n.shown = n.Visible
	r.children(n)
}

type resolver struct {
	nodes *NodeStore
	z     int
}

func (r *resolver) children(parent *Node) {
	if len(parent.children) == 0 {
		return
	}
	kids := make([]*Node, 0, len(parent.children))
	for _, h := range parent.children {
		if child := r.nodes.node(h); child != nil {
			kids = append(kids, child)
		}
	}

	if parent.Strategy != nil {
		items := make([]*Layout, len(kids))
		for i, k := range kids {
			items[i] = &k.Layout
		}
		for i, rect := range parent.Strategy.arrange(parent.rect, items) {
			kids[i].rect = rect
		}
	} else {
		var prev *geom.Rect
		for _, k := range kids {
			k.rect = k.Layout.Resolve(parent.rect, prev)
			prev = &k.rect
		}
	}

	for _, k := range kids {
		r.z++
		k.z = r.z
		k.shown = parent.shown && k.Visible
		r.children(k)
	}
}
