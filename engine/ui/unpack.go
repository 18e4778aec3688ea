package ui

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hubastard/trellis/engine/geom"
)

// Packed is the serializable description of a widget subtree.
type Packed struct {
	Widget   string        `yaml:"widget"`
	Name     string        `yaml:"name,omitempty"`
	Class    []string      `yaml:"class,omitempty"`
	Layout   *PackedLayout `yaml:"layout,omitempty"`
	Hidden   bool          `yaml:"hidden,omitempty"`
	Disabled bool          `yaml:"disabled,omitempty"`

	// Label is the button caption, Text the content of a text widget.
	Label string `yaml:"label,omitempty"`
	Text  string `yaml:"text,omitempty"`
	// Texture names an image texture, resolved through Context.Textures.
	Texture string `yaml:"texture,omitempty"`
	// Labels are the entries of a toggle group.
	Labels []string `yaml:"labels,omitempty"`

	Children []Packed `yaml:"children,omitempty"`
}

// PackedLayout overrides the layout a widget derives from its style.
type PackedLayout struct {
	Size   [2]int        `yaml:"size,flow,omitempty"`
	Left   *PackedAnchor `yaml:"left,omitempty"`
	Right  *PackedAnchor `yaml:"right,omitempty"`
	Top    *PackedAnchor `yaml:"top,omitempty"`
	Bottom *PackedAnchor `yaml:"bottom,omitempty"`
	Grow   bool          `yaml:"grow,omitempty"`
}

// PackedAnchor targets "parent" or "previous" with mode "same", "opposite" or
// "center". Empty fields mean parent and same.
type PackedAnchor struct {
	Target string `yaml:"target,omitempty"`
	Mode   string `yaml:"mode,omitempty"`
	Offset int    `yaml:"offset,omitempty"`
}

func (p *PackedLayout) Layout() (Layout, error) {
	l := Layout{Size: geom.Sz(p.Size[0], p.Size[1]), Grow: p.Grow}
	sides := [...]*PackedAnchor{geom.Left: p.Left, geom.Right: p.Right, geom.Top: p.Top, geom.Bottom: p.Bottom}
	for side := geom.Left; side <= geom.Bottom; side++ {
		a := sides[side]
		if a == nil {
			continue
		}
		anchor, err := a.anchor()
		if err != nil {
			return Layout{}, fmt.Errorf("%s anchor: %w", side, err)
		}
		l.Anchors[side] = anchor
	}
	return l, nil
}

func (a *PackedAnchor) anchor() (Anchor, error) {
	out := Anchor{Offset: a.Offset}
	switch a.Target {
	case "", "parent":
		out.Target = TargetParent
	case "previous", "previous-sibling", "sibling":
		out.Target = TargetPreviousSibling
	case "none":
		out.Target = TargetNone
	default:
		return Anchor{}, fmt.Errorf("unknown anchor target %q", a.Target)
	}
	switch a.Mode {
	case "", "same":
		out.Mode = SameSide
	case "opposite":
		out.Mode = OppositeSide
	case "center":
		out.Mode = CenterOf
	default:
		return Anchor{}, fmt.Errorf("unknown anchor mode %q", a.Mode)
	}
	return out, nil
}

// Constructor builds one widget from its packed form under parent.
// Children are attached by the Registry afterwards.
type Constructor func(g *Gui, parent Handle, p *Packed) (Widget, error)

// Registry maps widget kinds to constructors. Kinds added with Register may
// come from outside this package.
type Registry struct {
	ctors map[string]Constructor
}

// NewRegistry returns a registry holding the built-in kinds: panel, button,
// text, image, container and toggle-group.
func NewRegistry() *Registry {
	r := &Registry{ctors: make(map[string]Constructor)}
	r.Register("panel", func(g *Gui, parent Handle, p *Packed) (Widget, error) {
		return NewPanel(g, parent, p.Class...)
	})
	r.Register("button", func(g *Gui, parent Handle, p *Packed) (Widget, error) {
		b, err := NewButton(g, parent, p.Label, p.Class...)
		if err != nil {
			return nil, err
		}
		b.SetEnabled(!p.Disabled)
		return b, nil
	})
	r.Register("text", func(g *Gui, parent Handle, p *Packed) (Widget, error) {
		return NewText(g, parent, p.Text, p.Class...)
	})
	r.Register("image", func(g *Gui, parent Handle, p *Packed) (Widget, error) {
		var tex Texture
		if p.Texture != "" && g.ctx.Textures != nil {
			t, ok := g.ctx.Textures.Texture(p.Texture)
			if !ok {
				return nil, fmt.Errorf("unknown texture %q", p.Texture)
			}
			tex = t
		}
		return NewImage(g, parent, tex, p.Class...)
	})
	r.Register("container", func(g *Gui, parent Handle, p *Packed) (Widget, error) {
		return NewContainer(g, parent, p.Class...)
	})
	r.Register("toggle-group", func(g *Gui, parent Handle, p *Packed) (Widget, error) {
		return NewToggleGroup(g, parent, p.Labels, p.Class...)
	})
	return r
}

func (r *Registry) Register(kind string, c Constructor) { r.ctors[kind] = c }

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	out := make([]string, 0, len(r.ctors))
	for k := range r.ctors {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Unpacked holds the widgets built by Unpack.
type Unpacked struct {
	roots []Widget
	named map[string]Widget
	all   []Widget
}

// Roots returns the widgets built directly under the unpack parent.
func (u *Unpacked) Roots() []Widget { return u.roots }

// All returns every built widget in construction order. Keeping the Unpacked
// alive keeps the behaviors of its widgets scheduled.
func (u *Unpacked) All() []Widget { return u.all }

func (u *Unpacked) Widget(name string) (Widget, bool) {
	w, ok := u.named[name]
	return w, ok
}

// Named returns the widget called name if it has type W.
func Named[W Widget](u *Unpacked, name string) (W, bool) {
	w, ok := u.named[name].(W)
	return w, ok
}

// Unpack builds packed under parent. A subtree that fails to build is skipped
// and its error joined into the result; its siblings are still built. The
// Unpacked is returned even when err is non-nil.
func (r *Registry) Unpack(g *Gui, parent Handle, packed ...Packed) (*Unpacked, error) {
	u := &Unpacked{named: make(map[string]Widget)}
	var errs []error
	for i := range packed {
		w, err := r.build(g, parent, &packed[i], u, &errs)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		u.roots = append(u.roots, w)
	}
	return u, errors.Join(errs...)
}

func (r *Registry) build(g *Gui, parent Handle, p *Packed, u *Unpacked, errs *[]error) (Widget, error) {
	label := p.Widget
	if p.Name != "" {
		label = fmt.Sprintf("%s %q", p.Widget, p.Name)
	}
	ctor, ok := r.ctors[p.Widget]
	if !ok {
		return nil, fmt.Errorf("unpack %s: %w", label, ErrUnknownWidget)
	}
	var layout *Layout
	if p.Layout != nil {
		l, err := p.Layout.Layout()
		if err != nil {
			return nil, fmt.Errorf("unpack %s: %w", label, err)
		}
		layout = &l
	}
	w, err := ctor(g, parent, p)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", label, err)
	}
	if n := g.nodes.node(w.Node()); n != nil {
		n.Name = p.Name
		if layout != nil {
			n.Layout = *layout
		}
		if p.Hidden {
			n.Visible = false
		}
	}
	u.all = append(u.all, w)
	if p.Name != "" {
		u.named[p.Name] = w
	}

	host := w.Node()
	if ch, ok := w.(ChildHost); ok {
		host = ch.ChildrenContainer()
	}
	for i := range p.Children {
		if _, err := r.build(g, host, &p.Children[i], u, errs); err != nil {
			*errs = append(*errs, err)
		}
	}
	return w, nil
}
