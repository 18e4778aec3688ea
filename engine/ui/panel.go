package ui

import (
	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/geom"
)

// Panel is a background rect hosting children in an inner node inset by the
// style padding. A transient panel hides itself at the end of every frame in
// which Show was not called, which suits tooltips and context menus.
type Panel struct {
	gui     *Gui
	node    Handle
	content Handle

	transient bool
	shown     bool
	ref       *BehaviorRef
}

func NewPanel(g *Gui, parent Handle, classes ...string) (*Panel, error) {
	h, q, err := g.widgetNode(parent, "panel", classes)
	if err != nil {
		return nil, err
	}
	bg := Take(q, "background-color", colors.Transparent)
	tex := Take(q, "background-texture", Texture(0))
	padding := Take(q, "padding", geom.Insets{})
	opaque := Take(q, "pointer-opaque", true)
	transient := Take(q, "transient", false)
	layout := sizedLayout(q, Take(q, "margin", geom.Insets{}))
	g.report("panel", q)

	n := g.nodes.node(h)
	n.Layout = layout
	n.PointerOpaque = opaque
	if bg.Visible() || tex != 0 {
		n.Draw = &RectDraw{Texture: tex, Color: bg}
	}

	content, err := g.nodes.Create(h)
	if err != nil {
		return nil, err
	}
	g.nodes.node(content).Layout = FillLayout(padding)

	p := &Panel{gui: g, node: h, content: content}
	p.SetTransient(transient)
	return p, nil
}

func (p *Panel) Node() Handle              { return p.node }
func (p *Panel) ChildrenContainer() Handle { return p.content }
func (p *Panel) Transient() bool           { return p.transient }

// SetTransient switches transient mode. A transient panel starts hidden.
func (p *Panel) SetTransient(transient bool) {
	p.transient = transient
	if !transient {
		p.ref = nil
		return
	}
	if p.ref == nil {
		p.ref = p.gui.RegisterBehavior(p)
	}
	p.setVisible(false)
}

// Show makes the panel visible. A transient panel stays visible until the
// end of the next frame.
func (p *Panel) Show() {
	p.shown = true
	p.setVisible(true)
}

func (p *Panel) Hide() {
	p.shown = false
	p.setVisible(false)
}

func (p *Panel) Visible() bool {
	n := p.gui.nodes.node(p.node)
	return n != nil && n.Visible
}

func (p *Panel) Update(*Frame) {
	if !p.transient {
		return
	}
	if !p.shown {
		p.setVisible(false)
	}
	p.shown = false
}

func (p *Panel) setVisible(v bool) {
	if n := p.gui.nodes.node(p.node); n != nil {
		n.Visible = v
	}
}
