package ui

import "github.com/hubastard/trellis/engine/geom"

// ToggleGroup is a row or column of buttons of which exactly one is toggled.
// Activating a button selects it and emits a single activation event for the
// group node carrying the button index; the buttons themselves emit nothing.
type ToggleGroup struct {
	gui      *Gui
	node     Handle
	buttons  []*Button
	selected int
	changed  bool
	ref      *BehaviorRef
}

// NewToggleGroup creates one button per label. The first one starts selected.
// Buttons are styled with the group's "button-class" field.
func NewToggleGroup(g *Gui, parent Handle, labels []string, classes ...string) (*ToggleGroup, error) {
	h, q, err := g.widgetNode(parent, "toggle-group", classes)
	if err != nil {
		return nil, err
	}
	box := Box{
		Direction: takeDirection(q, "direction", Horizontal),
		Outside:   Take(q, "outside", 0),
		Inside:    Take(q, "inside", 0),
	}
	buttonClass := Take(q, "button-class", "")
	layout := sizedLayout(q, Take(q, "margin", geom.Insets{}))
	g.report("toggle-group", q)

	n := g.nodes.node(h)
	n.Layout = layout
	n.Strategy = box

	var bc []string
	if buttonClass != "" {
		bc = append(bc, buttonClass)
	}
	t := &ToggleGroup{gui: g, node: h}
	for _, label := range labels {
		b, err := NewButton(g, h, label, bc...)
		if err != nil {
			return nil, err
		}
		g.nodes.node(b.node).Layout.Grow = true
		b.quiet = true
		t.buttons = append(t.buttons, b)
	}
	if len(t.buttons) > 0 {
		t.buttons[0].SetToggled(true)
	}
	// Registered after the buttons so it sees their activation in the same frame.
	t.ref = g.RegisterBehavior(t)
	return t, nil
}

func (t *ToggleGroup) Node() Handle       { return t.node }
func (t *ToggleGroup) Selected() int      { return t.selected }
func (t *ToggleGroup) Buttons() []*Button { return t.buttons }

// Changed reports whether the selection changed during the last Dispatch.
func (t *ToggleGroup) Changed() bool { return t.changed }

// Select toggles button i and untoggles the others without emitting an event.
func (t *ToggleGroup) Select(i int) {
	if i < 0 || i >= len(t.buttons) {
		return
	}
	t.selected = i
	for j, b := range t.buttons {
		b.SetToggled(j == i)
	}
}

func (t *ToggleGroup) Update(f *Frame) {
	t.changed = false
	for i, b := range t.buttons {
		if !b.Activated() {
			continue
		}
		if i != t.selected {
			t.changed = true
		}
		t.Select(i)
		f.Emit(EventActivate, t.node, i)
	}
}
