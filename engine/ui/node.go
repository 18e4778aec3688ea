package ui

import (
	"fmt"

	"github.com/hubastard/trellis/engine/geom"
)

// Handle addresses a node in a NodeStore. The zero Handle never refers to a node.
type Handle struct {
	index uint32
	gen   uint32
}

func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string {
	if h.IsZero() {
		return "Handle(none)"
	}
	return fmt.Sprintf("Handle(%d@%d)", h.index, h.gen)
}

// Node is the unit of the GUI tree.
type Node struct {
	Visible       bool
	PointerOpaque bool
	Layout        Layout
	// Strategy arranges this node's children. Nil means anchor mode.
	Strategy Strategy
	Draw     Draw

	// Name and Class travel with action events emitted for this node.
	Name  string
	Class string

	rect  geom.Rect
	z     int
	shown bool

	parent   Handle
	children []Handle
}

// Rect is the rectangle computed by the most recent layout pass.
func (n *Node) Rect() geom.Rect { return n.rect }

// Z is the draw order assigned by the most recent layout pass.
func (n *Node) Z() int { return n.z }

// Shown reports whether the node and all of its ancestors were visible during the last layout pass.
func (n *Node) Shown() bool { return n.shown }

func (n *Node) Parent() Handle { return n.parent }

type slot struct {
	gen  uint32
	live bool
	node Node
}

// NodeStore is a flat arena of nodes addressed by generational handles.
// Removing a node frees its slot and bumps the slot generation, so handles
// held elsewhere are detected as stale instead of aliasing a new node.
//
// Pointers returned by Get are only valid until the next Create.
type NodeStore struct {
	slots []slot
	free  []uint32
	root  Handle
	count int
}

// NewNodeStore creates a store holding only the root node.
func NewNodeStore() *NodeStore {
	s := &NodeStore{}
	s.root = s.alloc(Handle{})
	return s
}

func (s *NodeStore) Root() Handle { return s.root }

// Len returns the number of live nodes, root included.
func (s *NodeStore) Len() int { return s.count }

func (s *NodeStore) alloc(parent Handle) Handle {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, slot{})
	}
	sl := &s.slots[idx]
	sl.gen++
	if sl.gen == 0 {
		sl.gen = 1
	}
	sl.live = true
	sl.node = Node{Visible: true, parent: parent, shown: true}
	s.count++
	return Handle{index: idx, gen: sl.gen}
}

func (s *NodeStore) slot(h Handle) *slot {
	if h.IsZero() || int(h.index) >= len(s.slots) {
		return nil
	}
	sl := &s.slots[h.index]
	if !sl.live || sl.gen != h.gen {
		return nil
	}
	return sl
}

// Contains reports whether h refers to a live node.
func (s *NodeStore) Contains(h Handle) bool { return s.slot(h) != nil }

// Create appends a new node as the last child of parent.
func (s *NodeStore) Create(parent Handle) (Handle, error) {
	if s.slot(parent) == nil {
		return Handle{}, staleHandle(parent)
	}
	h := s.alloc(parent)
	p := s.slot(parent)
	p.node.children = append(p.node.children, h)
	return h, nil
}

func (s *NodeStore) Get(h Handle) (*Node, error) {
	sl := s.slot(h)
	if sl == nil {
		return nil, staleHandle(h)
	}
	return &sl.node, nil
}

// node is Get without the error, for hot paths that treat stale as absent.
func (s *NodeStore) node(h Handle) *Node {
	if sl := s.slot(h); sl != nil {
		return &sl.node
	}
	return nil
}

// Children returns a copy of the ordered child handles of h.
func (s *NodeStore) Children(h Handle) ([]Handle, error) {
	sl := s.slot(h)
	if sl == nil {
		return nil, staleHandle(h)
	}
	out := make([]Handle, len(sl.node.children))
	copy(out, sl.node.children)
	return out, nil
}

func (s *NodeStore) Parent(h Handle) (Handle, error) {
	sl := s.slot(h)
	if sl == nil {
		return Handle{}, staleHandle(h)
	}
	return sl.node.parent, nil
}

// Remove detaches h from its parent and frees h and every descendant.
func (s *NodeStore) Remove(h Handle) error {
	sl := s.slot(h)
	if sl == nil {
		return staleHandle(h)
	}
	if h == s.root {
		return ErrRootRemoval
	}
	if p := s.slot(sl.node.parent); p != nil {
		kids := p.node.children
		for i, c := range kids {
			if c == h {
				p.node.children = append(kids[:i:i], kids[i+1:]...)
				break
			}
		}
	}
	s.release(h)
	return nil
}

// Clear removes every child of h, keeping h itself.
func (s *NodeStore) Clear(h Handle) error {
	sl := s.slot(h)
	if sl == nil {
		return staleHandle(h)
	}
	kids := sl.node.children
	sl.node.children = nil
	for _, c := range kids {
		s.release(c)
	}
	return nil
}

func (s *NodeStore) release(h Handle) {
	sl := s.slot(h)
	if sl == nil {
		return
	}
	kids := sl.node.children
	sl.live = false
	sl.node = Node{}
	s.free = append(s.free, h.index)
	s.count--
	for _, c := range kids {
		s.release(c)
	}
}

// Walk visits h and its descendants in pre-order. Returning false from fn skips the node's subtree.
func (s *NodeStore) Walk(h Handle, fn func(Handle, *Node) bool) {
	n := s.node(h)
	if n == nil || !fn(h, n) {
		return
	}
	for _, c := range n.children {
		s.Walk(c, fn)
	}
}
