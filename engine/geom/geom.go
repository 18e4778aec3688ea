// Package geom holds the integer pixel geometry shared by layout and input.
package geom

import "fmt"

type Point struct{ X, Y int }

func Pt(x, y int) Point { return Point{x, y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Size is a non-negative extent. Constructors clamp negative input to zero.
type Size struct{ W, H int }

func Sz(w, h int) Size { return Size{max(0, w), max(0, h)} }

func (s Size) Empty() bool { return s.W == 0 || s.H == 0 }

type Rect struct {
	X, Y int
	W, H int
}

func R(x, y, w, h int) Rect { return Rect{X: x, Y: y, W: max(0, w), H: max(0, h)} }

// FromEdges builds a rect from its four edges, clamping inverted edges to a zero extent.
func FromEdges(left, top, right, bottom int) Rect {
	return Rect{X: left, Y: top, W: max(0, right-left), H: max(0, bottom-top)}
}

func (r Rect) Pos() Point    { return Point{r.X, r.Y} }
func (r Rect) Size() Size    { return Size{r.W, r.H} }
func (r Rect) Right() int    { return r.X + r.W }
func (r Rect) Bottom() int   { return r.Y + r.H }
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

func (r Rect) Translate(p Point) Rect {
	r.X += p.X
	r.Y += p.Y
	return r
}

// Inset shrinks r by in on each side. The result never has a negative extent.
func (r Rect) Inset(in Insets) Rect {
	return FromEdges(r.X+in.Left, r.Y+in.Top, r.Right()-in.Right, r.Bottom()-in.Bottom)
}

// Edge returns the coordinate of side s of r.
func (r Rect) Edge(s Side) int {
	switch s {
	case Left:
		return r.X
	case Right:
		return r.X + r.W
	case Top:
		return r.Y
	default:
		return r.Y + r.H
	}
}

func (r Rect) String() string { return fmt.Sprintf("(%d, %d, %d, %d)", r.X, r.Y, r.W, r.H) }

type Insets struct{ Left, Top, Right, Bottom int }

func Uniform(v int) Insets { return Insets{v, v, v, v} }

func (in Insets) Horizontal() int { return in.Left + in.Right }
func (in Insets) Vertical() int   { return in.Top + in.Bottom }

type Side int

const (
	Left Side = iota
	Right
	Top
	Bottom
)

var sideNames = [...]string{"left", "right", "top", "bottom"}

func (s Side) String() string {
	if s < Left || s > Bottom {
		return "unknown"
	}
	return sideNames[s]
}

func (s Side) Opposite() Side {
	switch s {
	case Left:
		return Right
	case Right:
		return Left
	case Top:
		return Bottom
	default:
		return Top
	}
}

// Far reports whether s is the right or bottom side, where offsets point inward by subtraction.
func (s Side) Far() bool { return s == Right || s == Bottom }

func (s Side) Horizontal() bool { return s == Left || s == Right }

// ParseSide accepts the lowercase side names.
func ParseSide(name string) (Side, bool) {
	for i, n := range sideNames {
		if n == name {
			return Side(i), true
		}
	}
	return 0, false
}
