package ui

import (
	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/geom"
)

type ButtonState int

const (
	ButtonDisabled ButtonState = iota
	ButtonNormal
	ButtonHovered
	ButtonPressed
)

func (s ButtonState) String() string {
	switch s {
	case ButtonDisabled:
		return "disabled"
	case ButtonNormal:
		return "normal"
	case ButtonHovered:
		return "hovered"
	default:
		return "pressed"
	}
}

// Button is a pointer-opaque rect with an optional text label. Its color
// follows the state machine driven by Update.
//
// A press only counts when it starts over the button. While held, the button
// stays Pressed even if the pointer leaves. Releasing over the button emits
// an activation event; releasing elsewhere cancels the press.
type Button struct {
	gui   *Gui
	node  Handle
	label *Text

	palette      [4]colors.Color
	toggledColor colors.Color

	state     ButtonState
	enabled   bool
	toggled   bool
	activated bool
	// quiet buttons only report through Activated; their owner emits.
	quiet bool

	ref *BehaviorRef
}

// NewButton creates a button under parent. An empty label creates no label node.
func NewButton(g *Gui, parent Handle, label string, classes ...string) (*Button, error) {
	h, q, err := g.widgetNode(parent, "button", classes)
	if err != nil {
		return nil, err
	}
	b := &Button{
		gui:     g,
		node:    h,
		state:   ButtonNormal,
		enabled: true,
	}
	b.palette[ButtonNormal] = Take(q, "normal-color", colors.Gray)
	b.palette[ButtonHovered] = Take(q, "hovered-color", colors.Gray.Lighten(0.2))
	b.palette[ButtonPressed] = Take(q, "pressed-color", colors.Gray.Darken(0.2))
	b.palette[ButtonDisabled] = Take(q, "disabled-color", colors.Gray.WithAlpha(0.5))
	b.toggledColor = Take(q, "toggled-color", b.palette[ButtonPressed])
	size := Take(q, "size", geom.Sz(128, 32))
	tex := Take(q, "background-texture", Texture(0))
	labelClass := Take(q, "label-class", "")
	g.report("button", q)

	n := g.nodes.node(h)
	n.PointerOpaque = true
	n.Layout = SizeLayout(size)
	n.Draw = &RectDraw{Texture: tex, Color: b.color()}

	if label != "" {
		var lc []string
		if labelClass != "" {
			lc = append(lc, labelClass)
		}
		if err := b.SetLabel(label, lc...); err != nil {
			return nil, err
		}
	}
	b.ref = g.RegisterBehavior(b)
	return b, nil
}

func (b *Button) Node() Handle           { return b.node }
func (b *Button) State() ButtonState     { return b.state }
func (b *Button) Enabled() bool          { return b.enabled }
func (b *Button) Toggled() bool          { return b.toggled }
func (b *Button) Label() *Text           { return b.label }
func (b *Button) Behavior() *BehaviorRef { return b.ref }

// Activated reports whether the button was activated during the last Dispatch.
func (b *Button) Activated() bool { return b.activated }

// SetLabel sets the label text, creating the label node on first use.
func (b *Button) SetLabel(s string, classes ...string) error {
	if b.label != nil {
		b.label.SetText(s)
		return nil
	}
	t, err := NewText(b.gui, b.node, s, classes...)
	if err != nil {
		return err
	}
	b.label = t
	return nil
}

// SetEnabled disables or re-enables the button. A re-enabled button settles
// to Normal or Hovered on the next frame.
func (b *Button) SetEnabled(enabled bool) {
	if b.enabled == enabled {
		return
	}
	b.enabled = enabled
	if enabled {
		b.setState(ButtonNormal)
	} else {
		b.setState(ButtonDisabled)
	}
}

// SetToggled switches the Normal color to the toggled color.
func (b *Button) SetToggled(toggled bool) {
	if b.toggled == toggled {
		return
	}
	b.toggled = toggled
	b.paint()
}

func (b *Button) Update(f *Frame) {
	b.activated = false
	over := f.Over(b.node)
	next := b.state
	switch {
	case !b.enabled:
		next = ButtonDisabled
	case b.state == ButtonPressed:
		if f.Down() {
			break
		}
		if over {
			next = ButtonHovered
			b.activated = true
			if !b.quiet {
				f.Emit(EventActivate, b.node, 0)
			}
		} else {
			next = ButtonNormal
		}
	case over && f.PressStarted():
		next = ButtonPressed
	case over:
		next = ButtonHovered
	default:
		next = ButtonNormal
	}
	b.setState(next)
}

func (b *Button) setState(s ButtonState) {
	if s == b.state {
		return
	}
	b.state = s
	b.paint()
}

func (b *Button) color() colors.Color {
	if b.toggled && b.state == ButtonNormal {
		return b.toggledColor
	}
	return b.palette[b.state]
}

func (b *Button) paint() {
	n := b.gui.nodes.node(b.node)
	if n == nil {
		return
	}
	if rd, ok := n.Draw.(*RectDraw); ok {
		rd.Color = b.color()
	}
}
