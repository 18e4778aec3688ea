package ui

import (
	"strconv"
	"strings"

	"github.com/hubastard/trellis/engine/geom"
)

// Container hosts children arranged by a sequential strategy taken from
// style: "strategy" is one of flow, table, box, split or anchor.
//
//	flow:  padding, pad-outside
//	table: columns (space separated widths, 0 shares the rest), padding
//	box:   direction, outside, inside
//	split: direction, outside, inside, center
type Container struct {
	gui  *Gui
	node Handle
}

func NewContainer(g *Gui, parent Handle, classes ...string) (*Container, error) {
	h, q, err := g.widgetNode(parent, "container", classes)
	if err != nil {
		return nil, err
	}
	strategy := strategyFromStyle(q)
	layout := sizedLayout(q, Take(q, "margin", geom.Insets{}))
	g.report("container", q)

	n := g.nodes.node(h)
	n.Layout = layout
	n.Strategy = strategy
	return &Container{gui: g, node: h}, nil
}

func (c *Container) Node() Handle              { return c.node }
func (c *Container) ChildrenContainer() Handle { return c.node }

func (c *Container) Strategy() Strategy {
	if n := c.gui.nodes.node(c.node); n != nil {
		return n.Strategy
	}
	return nil
}

// SetStrategy replaces the strategy. Nil switches the children to anchors.
func (c *Container) SetStrategy(s Strategy) {
	if n := c.gui.nodes.node(c.node); n != nil {
		n.Strategy = s
	}
}

func strategyFromStyle(q *StyleQuery) Strategy {
	kind := Take(q, "strategy", "flow")
	switch kind {
	case "anchor", "none":
		return nil
	case "table":
		return Table{
			Columns: takeColumns(q, "columns"),
			Padding: Take(q, "padding", 0),
		}
	case "box":
		return Box{
			Direction: takeDirection(q, "direction", Horizontal),
			Outside:   Take(q, "outside", 0),
			Inside:    Take(q, "inside", 0),
		}
	case "split":
		return Split{
			Direction: takeDirection(q, "direction", Horizontal),
			Outside:   Take(q, "outside", 0),
			Inside:    Take(q, "inside", 0),
			Center:    Take(q, "center", 0),
		}
	case "flow":
	default:
		q.malformed = append(q.malformed, &MalformedStyleError{Key: "strategy", Want: "strategy name", Got: KindString})
	}
	return Flow{
		Padding:    Take(q, "padding", 0),
		PadOutside: Take(q, "pad-outside", false),
	}
}

// takeColumns reads column widths given either as one int or as a space
// separated list of ints.
func takeColumns(q *StyleQuery, key string) []int {
	v, ok := q.Lookup(key)
	if !ok {
		return nil
	}
	if v.Kind() == KindInt {
		return []int{Take(q, key, 0)}
	}
	s := Take(q, key, "")
	var cols []int
	for _, f := range strings.Fields(s) {
		n, err := strconv.Atoi(strings.TrimSuffix(f, "px"))
		if err != nil || n < 0 {
			q.malformed = append(q.malformed, &MalformedStyleError{Key: key, Want: "column widths", Got: v.Kind()})
			return nil
		}
		cols = append(cols, n)
	}
	return cols
}
