package ui

import (
	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/geom"
)

// Texture is an opaque texture handle supplied by the asset layer. Zero means none.
type Texture uint32

// FontRef names a font known to the TextMeasurer. The empty ref is the default font.
type FontRef string

type TextMetrics struct {
	Width  float32
	Ascent float32
	// Height is the full line height including descent.
	Height float32
}

// TextMeasurer lays out text for the Text widget.
type TextMeasurer interface {
	Measure(font FontRef, size float32, s string) TextMetrics
}

// TextureResolver turns texture names from style documents into handles.
type TextureResolver interface {
	Texture(name string) (Texture, bool)
}

// Context carries the font and texture collaborators into widget construction.
// Nil fields are allowed; text is then measured as empty.
type Context struct {
	Fonts    TextMeasurer
	Textures TextureResolver
}

func (c *Context) measure(font FontRef, size float32, s string) TextMetrics {
	if c == nil || c.Fonts == nil || s == "" {
		return TextMetrics{}
	}
	return c.Fonts.Measure(font, size, s)
}

// Draw is a node's draw descriptor: RectDraw or TextDraw. A nil Draw draws nothing.
type Draw interface {
	isDraw()
}

// RectDraw fills the node rect with Color, sampling Texture when set.
type RectDraw struct {
	Texture Texture
	Color   colors.Color
}

type Align int

const (
	AlignStart Align = iota
	AlignMiddle
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignMiddle:
		return "middle"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// ParseAlign accepts start/middle/end and the left/center/right/top/bottom aliases.
func ParseAlign(s string) (Align, bool) {
	switch s {
	case "start", "left", "top":
		return AlignStart, true
	case "middle", "center":
		return AlignMiddle, true
	case "end", "right", "bottom":
		return AlignEnd, true
	}
	return AlignStart, false
}

// TextDraw is a measured text run aligned inside the node rect.
type TextDraw struct {
	Text    string
	Font    FontRef
	Size    float32
	Metrics TextMetrics
	Color   colors.Color
	HAlign  Align
	VAlign  Align
}

func (*RectDraw) isDraw() {}
func (*TextDraw) isDraw() {}

// Origin returns the baseline origin of the run inside r. Vertical end
// alignment puts the baseline on the bottom edge; the other modes align the
// full text height.
func (t *TextDraw) Origin(r geom.Rect) (x, y float32) {
	m := t.Metrics
	switch t.HAlign {
	case AlignMiddle:
		x = float32(r.X) + (float32(r.W)-m.Width)/2
	case AlignEnd:
		x = float32(r.Right()) - m.Width
	default:
		x = float32(r.X)
	}
	switch t.VAlign {
	case AlignMiddle:
		y = float32(r.Y) + (float32(r.H)-m.Height)/2 + m.Ascent
	case AlignEnd:
		y = float32(r.Bottom())
	default:
		y = float32(r.Y) + m.Ascent
	}
	return x, y
}

// DrawItem is one entry of the draw list handed to the renderer.
type DrawItem struct {
	Node Handle
	Rect geom.Rect
	Z    int
	Draw Draw
}
