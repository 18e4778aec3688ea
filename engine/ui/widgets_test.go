package ui

import (
	"testing"

	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/geom"
)

// fixedFont measures every rune as 8 pixels wide with a 12/16 ascent/height.
type fixedFont struct{}

func (fixedFont) Measure(_ FontRef, _ float32, s string) TextMetrics {
	return TextMetrics{Width: float32(8 * len([]rune(s))), Ascent: 12, Height: 16}
}

func TestTextNormalizesAndMeasures(t *testing.T) {
	g := New(nil, &Context{Fonts: fixedFont{}})
	txt, err := NewText(g, g.Root(), "cafe\u0301")
	if err != nil {
		t.Fatal(err)
	}
	if got := txt.String(); got != "caf\u00e9" {
		t.Errorf("text = %q, want NFC form", got)
	}
	if got := txt.Metrics().Width; got != 32 {
		t.Errorf("width = %v, want 32", got)
	}
	txt.SetText("hi")
	if got := txt.Metrics().Width; got != 16 {
		t.Errorf("width after SetText = %v", got)
	}
}

func TestTextOrigin(t *testing.T) {
	d := &TextDraw{Metrics: TextMetrics{Width: 40, Ascent: 12, Height: 16}}
	r := geom.R(0, 0, 100, 40)
	cases := []struct {
		h, v   Align
		wx, wy float32
	}{
		{AlignStart, AlignStart, 0, 12},
		{AlignMiddle, AlignMiddle, 30, 24},
		{AlignEnd, AlignEnd, 60, 40},
	}
	for _, c := range cases {
		d.HAlign, d.VAlign = c.h, c.v
		if x, y := d.Origin(r); x != c.wx || y != c.wy {
			t.Errorf("%v/%v origin = (%v, %v), want (%v, %v)", c.h, c.v, x, y, c.wx, c.wy)
		}
	}
}

func TestTextMalformedAlignFallsBack(t *testing.T) {
	styles := NewStyleSheet()
	styles.Set("odd", Rules{"h-align": StringValue("sideways"), "font-size": StringValue("big")})
	g := New(styles, nil)
	txt, err := NewText(g, g.Root(), "x", "odd")
	if err != nil {
		t.Fatal(err)
	}
	if txt.Draw().HAlign != AlignStart || txt.Draw().Size != 16 {
		t.Errorf("malformed style not replaced by defaults: %+v", txt.Draw())
	}
}

type textureNames map[string]Texture

func (m textureNames) Texture(name string) (Texture, bool) {
	t, ok := m[name]
	return t, ok
}

func TestImage(t *testing.T) {
	styles := NewStyleSheet()
	styles.Set("icon", Rules{"texture": TextureValue(7), "size": Vec2Value(16, 16)})
	g := New(styles, nil)
	img, err := NewImage(g, g.Root(), 0, "icon")
	if err != nil {
		t.Fatal(err)
	}
	if img.Texture() != 7 {
		t.Errorf("texture = %d, want style texture", img.Texture())
	}
	n, _ := g.Node(img)
	if n.Layout.Size != geom.Sz(16, 16) || !n.PointerOpaque {
		t.Errorf("image node = %+v", n)
	}
	img.SetTexture(9)
	if n.Draw.(*RectDraw).Texture != 9 {
		t.Error("SetTexture did not reach the draw descriptor")
	}
}

func TestPanelContent(t *testing.T) {
	g := newTestGui()
	p, err := NewPanel(g, g.Root())
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewButton(g, p.ChildrenContainer(), "")
	if err != nil {
		t.Fatal(err)
	}
	g.Layout()
	n, _ := g.Node(b)
	if got := n.Rect().Pos(); got != geom.Pt(8, 8) {
		t.Errorf("child of padded panel at %v, want (8, 8)", got)
	}
}

func TestPanelTransient(t *testing.T) {
	styles := NewStyleSheet()
	styles.Set("tooltip", Rules{"transient": BoolValue(true)})
	g := New(styles, nil)
	p, err := NewPanel(g, g.Root(), "tooltip")
	if err != nil {
		t.Fatal(err)
	}
	if p.Visible() {
		t.Fatal("transient panel starts visible")
	}
	p.Show()
	g.Update(Pointer{})
	if !p.Visible() {
		t.Error("shown panel hidden in the same frame")
	}
	g.Update(Pointer{})
	if p.Visible() {
		t.Error("panel still visible without Show")
	}
}

func TestContainerFromStyle(t *testing.T) {
	styles := NewStyleSheet()
	styles.Set("grid", Rules{"strategy": StringValue("table"), "columns": StringValue("40 0"), "padding": IntValue(10)})
	styles.Set("row", Rules{"strategy": StringValue("box"), "direction": StringValue("vertical"), "inside": IntValue(2)})
	g := New(styles, nil)

	grid, err := NewContainer(g, g.Root(), "grid")
	if err != nil {
		t.Fatal(err)
	}
	tbl, ok := grid.Strategy().(Table)
	if !ok || len(tbl.Columns) != 2 || tbl.Columns[0] != 40 || tbl.Padding != 10 {
		t.Errorf("grid strategy = %#v", grid.Strategy())
	}

	row, _ := NewContainer(g, g.Root(), "row")
	if box, ok := row.Strategy().(Box); !ok || box.Direction != Vertical || box.Inside != 2 {
		t.Errorf("row strategy = %#v", row.Strategy())
	}

	flow, _ := NewContainer(g, g.Root())
	if f, ok := flow.Strategy().(Flow); !ok || f.Padding != 4 {
		t.Errorf("default strategy = %#v", flow.Strategy())
	}
}

func TestToggleGroup(t *testing.T) {
	styles := NewStyleSheet()
	styles.Set("tabs", Rules{"size": Vec2Value(300, 30)})
	g := newTestGui()
	g.Styles().Merge(styles)

	tg, err := NewToggleGroup(g, g.Root(), []string{"a", "b", "c"}, "tabs")
	if err != nil {
		t.Fatal(err)
	}
	g.Layout()
	second, _ := g.Node(tg.Buttons()[1])
	if second.Rect().W == 0 {
		t.Fatalf("grown button has no width: %v", second.Rect())
	}
	at := second.Rect().Center()

	g.Update(Pointer{Position: at, Pressed: true})
	g.Update(Pointer{Position: at})
	if tg.Selected() != 1 || !tg.Changed() {
		t.Errorf("selected = %d changed = %v", tg.Selected(), tg.Changed())
	}
	var activations []Event
	for _, e := range g.Events() {
		if e.Kind == EventActivate {
			activations = append(activations, e)
		}
	}
	if len(activations) != 1 {
		t.Fatalf("activations = %v, want only the group's", activations)
	}
	if e := activations[0]; e.Node != tg.Node() || e.Index != 1 || e.Class != "tabs" {
		t.Errorf("group activation = %v", e)
	}
	if !tg.Buttons()[1].Activated() {
		t.Error("selected button does not report Activated")
	}
	for i, b := range tg.Buttons() {
		if b.Toggled() != (i == 1) {
			t.Errorf("button %d toggled = %v", i, b.Toggled())
		}
	}
}

func TestDrawList(t *testing.T) {
	g := newTestGui()
	p, _ := NewPanel(g, g.Root())
	b, _ := NewButton(g, p.ChildrenContainer(), "label")
	hidden, _ := NewImage(g, g.Root(), 0)
	hn, _ := g.Node(hidden)
	hn.Visible = false
	g.Layout()

	items := g.DrawList(nil)
	if len(items) != 3 {
		t.Fatalf("draw list = %v, want panel, button, label", items)
	}
	if items[0].Node != p.Node() || items[1].Node != b.Node() || items[2].Node != b.Label().Node() {
		t.Errorf("draw order = %v", items)
	}
	for i := 1; i < len(items); i++ {
		if items[i].Z <= items[i-1].Z {
			t.Errorf("draw list not in z order: %v", items)
		}
	}
	if _, ok := items[2].Draw.(*TextDraw); !ok {
		t.Errorf("label draw = %T", items[2].Draw)
	}
	if items[0].Draw.(*RectDraw).Color == colors.Transparent {
		t.Error("panel background missing")
	}
}
