package ui

import (
	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/geom"
)

// Image is a pointer-opaque textured rect tinted by its color.
type Image struct {
	gui  *Gui
	node Handle
	draw *RectDraw
}

// NewImage creates an image under parent. A zero tex falls back to the style
// "texture" field.
func NewImage(g *Gui, parent Handle, tex Texture, classes ...string) (*Image, error) {
	h, q, err := g.widgetNode(parent, "image", classes)
	if err != nil {
		return nil, err
	}
	styleTex := Take(q, "texture", Texture(0))
	if tex == 0 {
		tex = styleTex
	}
	d := &RectDraw{Texture: tex, Color: Take(q, "color", colors.White)}
	size := Take(q, "size", geom.Sz(64, 64))
	g.report("image", q)

	n := g.nodes.node(h)
	n.PointerOpaque = true
	n.Layout = SizeLayout(size)
	n.Draw = d
	return &Image{gui: g, node: h, draw: d}, nil
}

func (i *Image) Node() Handle            { return i.node }
func (i *Image) Texture() Texture        { return i.draw.Texture }
func (i *Image) SetTexture(t Texture)    { i.draw.Texture = t }
func (i *Image) SetColor(c colors.Color) { i.draw.Color = c }
