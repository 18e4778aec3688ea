package ui

import "github.com/hubastard/trellis/engine/geom"

// Strategy arranges the children of a node in sequence instead of by anchors.
// The set of strategies is closed: Flow, Table, Box and Split.
type Strategy interface {
	isStrategy()
	// arrange returns one rect per item, in item order.
	arrange(bounds geom.Rect, items []*Layout) []geom.Rect
}

type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Flow places items left to right, wrapping to a new line when an item would
// cross the right edge. The line height is the tallest item on the line.
type Flow struct {
	Padding int
	// PadOutside also applies Padding between the items and the container edges.
	PadOutside bool
}

// Table places items into fixed columns, row by row. A zero column width
// shares the width left over by the fixed columns.
type Table struct {
	Columns []int
	Padding int
}

// Box places items along one axis. Items use their base size on the main
// axis, except Grow items which share the remaining space. The cross axis is
// filled.
type Box struct {
	Direction Direction
	Outside   int
	Inside    int
}

// Split divides the container in two halves around a Center reservation.
// The first item takes the leading half. With Center > 0 the second item
// takes the reservation and the third the trailing half; otherwise the second
// item takes the trailing half. Further items get an empty rect.
type Split struct {
	Direction Direction
	Outside   int
	Inside    int
	Center    int
}

func (Flow) isStrategy()  {}
func (Table) isStrategy() {}
func (Box) isStrategy()   {}
func (Split) isStrategy() {}

func (f Flow) arrange(bounds geom.Rect, items []*Layout) []geom.Rect {
	out := make([]geom.Rect, len(items))
	pad := 0
	if f.PadOutside {
		pad = f.Padding
	}
	limit := bounds.W - pad
	x, y, line := pad, pad, 0
	for i, it := range items {
		sz := it.Size
		if x > pad && x+sz.W > limit {
			x = pad
			y += line + f.Padding
			line = 0
		}
		out[i] = geom.Rect{X: bounds.X + x, Y: bounds.Y + y, W: sz.W, H: sz.H}
		x += sz.W + f.Padding
		line = max(line, sz.H)
	}
	return out
}

// widths resolves the column widths for a container of the given width.
func (t Table) widths(width int) []int {
	cols := t.Columns
	if len(cols) == 0 {
		cols = []int{0}
	}
	fixed, zeros := 0, 0
	for _, c := range cols {
		if c > 0 {
			fixed += c
		} else {
			zeros++
		}
	}
	out := make([]int, len(cols))
	rest := max(0, width-fixed-t.Padding*(len(cols)-1))
	share, extra := 0, 0
	if zeros > 0 {
		share, extra = rest/zeros, rest%zeros
	}
	for i, c := range cols {
		switch {
		case c > 0:
			out[i] = c
		case extra > 0:
			out[i] = share + 1
			extra--
		default:
			out[i] = share
		}
	}
	return out
}

func (t Table) arrange(bounds geom.Rect, items []*Layout) []geom.Rect {
	out := make([]geom.Rect, len(items))
	widths := t.widths(bounds.W)
	x, y, row := 0, 0, 0
	for i, it := range items {
		col := i % len(widths)
		if col == 0 && i > 0 {
			x = 0
			y += row + t.Padding
			row = 0
		}
		out[i] = geom.Rect{X: bounds.X + x, Y: bounds.Y + y, W: widths[col], H: it.Size.H}
		x += widths[col] + t.Padding
		row = max(row, it.Size.H)
	}
	return out
}

// rect maps main and cross axis coordinates onto a rect for the direction.
func (d Direction) rect(main, cross, mainLen, crossLen int) geom.Rect {
	if d == Vertical {
		return geom.R(cross, main, crossLen, mainLen)
	}
	return geom.R(main, cross, mainLen, crossLen)
}

func (d Direction) split(r geom.Rect) (main, cross, mainLen, crossLen int) {
	if d == Vertical {
		return r.Y, r.X, r.H, r.W
	}
	return r.X, r.Y, r.W, r.H
}

func (d Direction) extent(s geom.Size) int {
	if d == Vertical {
		return s.H
	}
	return s.W
}

func (b Box) arrange(bounds geom.Rect, items []*Layout) []geom.Rect {
	out := make([]geom.Rect, len(items))
	if len(items) == 0 {
		return out
	}
	main, cross, mainLen, crossLen := b.Direction.split(bounds)
	crossLen = max(0, crossLen-2*b.Outside)
	free := mainLen - 2*b.Outside - b.Inside*(len(items)-1)
	grow := 0
	for _, it := range items {
		if it.Grow {
			grow++
		} else {
			free -= b.Direction.extent(it.Size)
		}
	}
	free = max(0, free)
	share, extra := 0, 0
	if grow > 0 {
		share, extra = free/grow, free%grow
	}
	pos := main + b.Outside
	for i, it := range items {
		n := b.Direction.extent(it.Size)
		if it.Grow {
			n = share
			if extra > 0 {
				n++
				extra--
			}
		}
		out[i] = b.Direction.rect(pos, cross+b.Outside, n, crossLen)
		pos += n + b.Inside
	}
	return out
}

func (s Split) arrange(bounds geom.Rect, items []*Layout) []geom.Rect {
	out := make([]geom.Rect, len(items))
	main, cross, mainLen, crossLen := s.Direction.split(bounds)
	crossLen = max(0, crossLen-2*s.Outside)
	crossPos := cross + s.Outside
	mid := main + mainLen/2
	start := main + s.Outside
	end := main + mainLen - s.Outside

	var leadEnd, trailStart int
	if s.Center > 0 {
		leadEnd = mid - s.Center/2 - s.Inside
		trailStart = mid - s.Center/2 + s.Center + s.Inside
	} else {
		leadEnd = mid - s.Inside/2
		trailStart = leadEnd + s.Inside
	}

	slots := []geom.Rect{s.Direction.rect(start, crossPos, leadEnd-start, crossLen)}
	if s.Center > 0 {
		slots = append(slots, s.Direction.rect(mid-s.Center/2, crossPos, s.Center, crossLen))
	}
	slots = append(slots, s.Direction.rect(trailStart, crossPos, end-trailStart, crossLen))

	for i := range items {
		if i < len(slots) {
			out[i] = slots[i]
		} else {
			out[i] = geom.Rect{X: bounds.X, Y: bounds.Y}
		}
	}
	return out
}
