package ui

import (
	"runtime"
	"testing"

	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/geom"
)

func newTestGui() *Gui {
	g := New(nil, nil)
	g.SetViewport(geom.R(0, 0, 800, 600))
	return g
}

func placedButton(t *testing.T, g *Gui) *Button {
	t.Helper()
	b, err := NewButton(g, g.Root(), "OK")
	if err != nil {
		t.Fatal(err)
	}
	n, _ := g.Node(b)
	n.Layout = SizeLayout(geom.Sz(128, 32))
	n.Layout.SetAnchor(geom.Top, ParentAnchor(16))
	n.Layout.SetAnchor(geom.Left, ParentAnchor(16))
	return b
}

func countActivations(evs []Event, h Handle) int {
	n := 0
	for _, e := range evs {
		if e.Kind == EventActivate && e.Node == h {
			n++
		}
	}
	return n
}

func TestButtonClick(t *testing.T) {
	g := newTestGui()
	b := placedButton(t, g)

	g.Layout()
	n, _ := g.Node(b)
	if want := geom.R(16, 16, 128, 32); n.Rect() != want {
		t.Fatalf("button rect = %v, want %v", n.Rect(), want)
	}
	if b.State() != ButtonNormal {
		t.Fatalf("initial state = %v", b.State())
	}

	g.Update(Pointer{Position: geom.Pt(50, 30), Pressed: true})
	if b.State() != ButtonPressed {
		t.Errorf("after press state = %v, want pressed", b.State())
	}
	activations := countActivations(g.Drain(), b.Node())

	g.Update(Pointer{Position: geom.Pt(50, 30)})
	if b.State() != ButtonHovered {
		t.Errorf("after release state = %v, want hovered", b.State())
	}
	if !b.Activated() {
		t.Error("Activated() = false after release over the button")
	}
	activations += countActivations(g.Drain(), b.Node())
	if activations != 1 {
		t.Errorf("activations = %d, want 1", activations)
	}
}

func TestButtonReleaseOutsideCancels(t *testing.T) {
	g := newTestGui()
	b := placedButton(t, g)

	g.Update(Pointer{Position: geom.Pt(50, 30), Pressed: true})
	g.Update(Pointer{Position: geom.Pt(400, 400), Pressed: true})
	if b.State() != ButtonPressed {
		t.Errorf("dragging off keeps the press, state = %v", b.State())
	}
	g.Update(Pointer{Position: geom.Pt(400, 400)})
	if b.State() != ButtonNormal {
		t.Errorf("state = %v, want normal", b.State())
	}
	if n := countActivations(g.Events(), b.Node()); n != 0 {
		t.Errorf("release outside activated %d times", n)
	}
}

func TestButtonPressMustStartOver(t *testing.T) {
	g := newTestGui()
	b := placedButton(t, g)

	g.Update(Pointer{Position: geom.Pt(400, 400), Pressed: true})
	g.Update(Pointer{Position: geom.Pt(50, 30), Pressed: true})
	if b.State() != ButtonHovered {
		t.Errorf("state = %v, want hovered", b.State())
	}
	g.Update(Pointer{Position: geom.Pt(50, 30)})
	if b.Activated() {
		t.Error("press that started elsewhere activated the button")
	}
}

func TestButtonDisabled(t *testing.T) {
	g := newTestGui()
	b := placedButton(t, g)
	b.SetEnabled(false)
	if b.State() != ButtonDisabled {
		t.Fatalf("state = %v", b.State())
	}

	g.Update(Pointer{Position: geom.Pt(50, 30), Pressed: true})
	g.Update(Pointer{Position: geom.Pt(50, 30)})
	if b.State() != ButtonDisabled || b.Activated() {
		t.Errorf("disabled button reacted: %v activated=%v", b.State(), b.Activated())
	}

	b.SetEnabled(true)
	g.Update(Pointer{Position: geom.Pt(50, 30)})
	if b.State() != ButtonHovered {
		t.Errorf("re-enabled under pointer = %v, want hovered", b.State())
	}
}

func TestButtonColorWrittenOnChange(t *testing.T) {
	g := newTestGui()
	b := placedButton(t, g)
	n, _ := g.Node(b)
	rd := n.Draw.(*RectDraw)

	g.Update(Pointer{Position: geom.Pt(50, 30)})
	hovered := rd.Color
	if hovered == b.palette[ButtonNormal] {
		t.Fatal("hover did not change the color")
	}

	rd.Color = colors.Magenta
	g.Update(Pointer{Position: geom.Pt(60, 30)})
	if rd.Color != colors.Magenta {
		t.Errorf("unchanged state rewrote color to %v", rd.Color)
	}

	b.SetToggled(true)
	g.Update(Pointer{Position: geom.Pt(400, 400)})
	if rd.Color != b.toggledColor {
		t.Errorf("toggled normal color = %v", rd.Color)
	}
}

func TestBehaviorPrunedOnRemove(t *testing.T) {
	g := newTestGui()
	b := placedButton(t, g)
	keep := placedButton(t, g)
	if g.BehaviorCount() != 2 {
		t.Fatalf("BehaviorCount = %d", g.BehaviorCount())
	}
	if err := g.Remove(b); err != nil {
		t.Fatal(err)
	}
	g.Update(Pointer{})
	if g.BehaviorCount() != 1 {
		t.Errorf("BehaviorCount = %d after removal, want 1", g.BehaviorCount())
	}
	runtime.KeepAlive(b)
	runtime.KeepAlive(keep)
}

func TestBehaviorPrunedWhenUnreferenced(t *testing.T) {
	g := newTestGui()
	keep := placedButton(t, g)
	func() {
		if _, err := NewButton(g, g.Root(), "gone"); err != nil {
			t.Fatal(err)
		}
	}()
	for i := 0; i < 5 && g.BehaviorCount() > 1; i++ {
		runtime.GC()
		g.Update(Pointer{})
	}
	if g.BehaviorCount() != 1 {
		t.Errorf("BehaviorCount = %d, want only the referenced button", g.BehaviorCount())
	}
	runtime.KeepAlive(keep)
}

func TestDroppedButtonLeavesTree(t *testing.T) {
	g := newTestGui()
	under := placedButton(t, g)
	var dropped Handle
	func() {
		over := placedButton(t, g)
		dropped = over.Node()
	}()
	g.Layout()
	if hit := HitTest(g.Nodes(), g.Root(), geom.Pt(50, 30)); hit != dropped {
		t.Fatalf("hit = %v, want the top button %v", hit, dropped)
	}

	for i := 0; i < 5 && g.Nodes().Contains(dropped); i++ {
		runtime.GC()
		g.Update(Pointer{})
	}
	if g.Nodes().Contains(dropped) {
		t.Fatal("node of a dropped button is still in the tree")
	}
	if g.BehaviorCount() != 1 {
		t.Errorf("BehaviorCount = %d, want 1", g.BehaviorCount())
	}

	g.Update(Pointer{Position: geom.Pt(50, 30), Pressed: true})
	g.Update(Pointer{Position: geom.Pt(50, 30)})
	if !under.Activated() {
		t.Errorf("button below the dropped one was not activated, state = %v", under.State())
	}
}

func TestWidgetUnderStaleParent(t *testing.T) {
	g := newTestGui()
	p, _ := NewPanel(g, g.Root())
	if err := g.Remove(p); err != nil {
		t.Fatal(err)
	}
	before := g.Nodes().Len()
	if _, err := NewButton(g, p.ChildrenContainer(), "x"); err == nil {
		t.Fatal("NewButton under removed parent succeeded")
	}
	if g.Nodes().Len() != before {
		t.Error("failed construction left nodes behind")
	}
}
