package ui

import (
	"golang.org/x/text/unicode/norm"

	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/geom"
)

// Text is a text run aligned inside its node. Without a style size it fills
// its parent, which is how button labels are laid out.
type Text struct {
	gui  *Gui
	node Handle
	draw *TextDraw
}

func NewText(g *Gui, parent Handle, s string, classes ...string) (*Text, error) {
	h, q, err := g.widgetNode(parent, "text", classes)
	if err != nil {
		return nil, err
	}
	d := &TextDraw{
		Font:   FontRef(Take(q, "font", "")),
		Size:   float32(Take(q, "font-size", 16.0)),
		Color:  Take(q, "text-color", colors.White),
		HAlign: takeAlign(q, "h-align", AlignStart),
		VAlign: takeAlign(q, "v-align", AlignStart),
	}
	layout := sizedLayout(q, geom.Insets{})
	g.report("text", q)

	n := g.nodes.node(h)
	n.Layout = layout
	n.Draw = d
	t := &Text{gui: g, node: h, draw: d}
	t.SetText(s)
	return t, nil
}

func (t *Text) Node() Handle         { return t.node }
func (t *Text) String() string       { return t.draw.Text }
func (t *Text) Metrics() TextMetrics { return t.draw.Metrics }
func (t *Text) Draw() *TextDraw      { return t.draw }

// SetText replaces the string. It is stored in NFC so that measuring and
// comparing labels do not depend on how the input was composed.
func (t *Text) SetText(s string) {
	s = norm.NFC.String(s)
	if s == t.draw.Text && t.draw.Metrics != (TextMetrics{}) {
		return
	}
	t.draw.Text = s
	t.remeasure()
}

func (t *Text) SetColor(c colors.Color) { t.draw.Color = c }

func (t *Text) SetAlign(h, v Align) {
	t.draw.HAlign, t.draw.VAlign = h, v
}

func (t *Text) SetFont(font FontRef, size float32) {
	t.draw.Font, t.draw.Size = font, size
	t.remeasure()
}

func (t *Text) remeasure() {
	t.draw.Metrics = t.gui.ctx.measure(t.draw.Font, t.draw.Size, t.draw.Text)
}
