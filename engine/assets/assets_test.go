package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/geom"
	"github.com/hubastard/trellis/engine/ui"
)

func writeFile(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func hex(t *testing.T, s string) colors.Color {
	t.Helper()
	c, ok := colors.ParseHex(s)
	if !ok {
		t.Fatalf("bad color %q", s)
	}
	return c
}

func checkRules(t *testing.T, sheet *ui.StyleSheet, class string, want ui.Rules) {
	t.Helper()
	got, ok := sheet.Get(class)
	if !ok {
		t.Fatalf("class %q missing", class)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s.%s = %v, want %v", class, k, got[k], v)
		}
	}
	if len(got) != len(want) {
		t.Errorf("%s has %d fields, want %d", class, len(got), len(want))
	}
}

func TestLoadStylesYAML(t *testing.T) {
	tex := NewTextures()
	bg := tex.Add("panel-bg", image.NewRGBA(image.Rect(0, 0, 2, 2)))

	path := writeFile(t, "ui.yaml", `
button:
  size: [140, 32]
  normal-color: "#336699"
  padding: [1, 2, 3, 4]
  font-size: 14.5
  label-class: big
  transient: true
panel:
  background-texture: panel-bg
  margin: 6
  tint: [0.5, 0.25, 1]
`)
	sheet, err := LoadStyles(path, tex)
	if err != nil {
		t.Fatal(err)
	}
	checkRules(t, sheet, "button", ui.Rules{
		"size":         ui.Vec2Value(140, 32),
		"normal-color": ui.ColorValue(hex(t, "#336699")),
		"padding":      ui.InsetsValue(geom.Insets{Top: 1, Right: 2, Bottom: 3, Left: 4}),
		"font-size":    ui.FloatValue(14.5),
		"label-class":  ui.StringValue("big"),
		"transient":    ui.BoolValue(true),
	})
	checkRules(t, sheet, "panel", ui.Rules{
		"background-texture": ui.TextureValue(bg),
		"margin":             ui.IntValue(6),
		"tint":               ui.ColorValue(colors.RGBA(0.5, 0.25, 1, 1)),
	})
}

func TestLoadStylesYAMLErrors(t *testing.T) {
	for name, src := range map[string]string{
		"unknown texture": "panel:\n  background-texture: nope\n",
		"bad color":       "panel:\n  color: \"#12\"\n",
		"not a mapping":   "- panel\n",
		"class scalar":    "panel: 3\n",
		"five numbers":    "panel:\n  padding: [1, 2, 3, 4, 5]\n",
	} {
		path := writeFile(t, "ui.yaml", src)
		_, err := LoadStyles(path, NewTextures())
		if err == nil {
			t.Errorf("%s: no error", name)
			continue
		}
		if !strings.Contains(err.Error(), path) {
			t.Errorf("%s: error %q does not name the file", name, err)
		}
	}
}

func TestLoadStylesCSS(t *testing.T) {
	tex := NewTextures()
	bg := tex.Add("bg", image.NewRGBA(image.Rect(0, 0, 1, 1)))

	path := writeFile(t, "ui.css", `
/* buttons */
.button {
	size: 140px 32px;
	normal-color: #ff0000;
	hovered-color: rgba(0, 255, 0, 0.5);
	offset: 4px 8px;
	background-texture: bg;
}
.title, .label {
	font-size: 18px;
	h-align: middle;
	scale: 1.5;
	pointer-opaque: false;
}
.button {
	size: 100px 20px;
}
`)
	sheet, err := LoadStyles(path, tex)
	if err != nil {
		t.Fatal(err)
	}
	checkRules(t, sheet, "button", ui.Rules{
		"size":               ui.Vec2Value(100, 20),
		"normal-color":       ui.ColorValue(colors.RGBA(1, 0, 0, 1)),
		"hovered-color":      ui.ColorValue(colors.RGBA(0, 1, 0, 0.5)),
		"offset":             ui.Vec2Value(4, 8),
		"background-texture": ui.TextureValue(bg),
	})
	label := ui.Rules{
		"font-size":      ui.IntValue(18),
		"h-align":        ui.StringValue("middle"),
		"scale":          ui.FloatValue(1.5),
		"pointer-opaque": ui.BoolValue(false),
	}
	checkRules(t, sheet, "title", label)
	checkRules(t, sheet, "label", label)
}

func TestParseStylesCSSSelectorGroups(t *testing.T) {
	sheet, err := ParseStylesCSS(".a,.b , .c { size: 10px 20px; }\n.b { size: 1px 2px; }\n", nil)
	if err != nil {
		t.Fatal(err)
	}
	for class, want := range map[string]ui.Value{
		"a": ui.Vec2Value(10, 20),
		"b": ui.Vec2Value(1, 2),
		"c": ui.Vec2Value(10, 20),
	} {
		checkRules(t, sheet, class, ui.Rules{"size": want})
	}
	if _, err := ParseStylesCSS(".a, #b { size: 1px 2px; }", nil); err == nil {
		t.Error("id selector in a group accepted")
	}
}

func TestLoadStylesCSSRejectsSelectors(t *testing.T) {
	path := writeFile(t, "ui.css", "#main { size: 10px 10px; }\n")
	if _, err := LoadStyles(path, nil); err == nil {
		t.Error("id selector accepted")
	}
	path = writeFile(t, "ui.css", ".a { background-texture: missing; }\n")
	if _, err := LoadStyles(path, nil); err == nil {
		t.Error("texture without a registry accepted")
	}
}

func TestStylesApplyToWidgets(t *testing.T) {
	path := writeFile(t, "ui.yaml", "big:\n  size: [200, 50]\n")
	sheet, err := LoadStyles(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	g := ui.New(sheet, nil)
	g.SetViewport(geom.R(0, 0, 800, 600))
	b, err := ui.NewButton(g, g.Root(), "", "big")
	if err != nil {
		t.Fatal(err)
	}
	g.Layout()
	n, _ := g.Nodes().Get(b.Node())
	if n.Rect().Size() != geom.Sz(200, 50) {
		t.Errorf("button size = %v, want 200x50", n.Rect().Size())
	}
}

func TestLoadLayout(t *testing.T) {
	path := writeFile(t, "menu.yaml", `
- widget: panel
  name: menu
  layout:
    size: [300, 200]
    left: {offset: 16}
    top: {offset: 16}
  children:
    - widget: button
      name: play
      label: Play
    - widget: toggle-group
      labels: [Easy, Hard]
      layout:
        top: {target: previous, mode: opposite, offset: 4}
- widget: text
  text: hello
  hidden: true
`)
	packed, err := LoadLayout(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(packed) != 2 {
		t.Fatalf("got %d roots, want 2", len(packed))
	}
	menu := packed[0]
	if menu.Widget != "panel" || menu.Name != "menu" || len(menu.Children) != 2 {
		t.Fatalf("menu = %+v", menu)
	}
	if menu.Layout.Size != [2]int{300, 200} || menu.Layout.Left.Offset != 16 {
		t.Errorf("menu layout = %+v", menu.Layout)
	}
	group := menu.Children[1]
	if len(group.Labels) != 2 || group.Layout.Top.Target != "previous" || group.Layout.Top.Mode != "opposite" {
		t.Errorf("group = %+v", group)
	}
	if !packed[1].Hidden || packed[1].Text != "hello" {
		t.Errorf("text = %+v", packed[1])
	}

	g := ui.New(nil, nil)
	u, err := ui.NewRegistry().Unpack(g, g.Root(), packed...)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ui.Named[*ui.Button](u, "play"); !ok {
		t.Error("play button not built")
	}
}

func TestLoadLayoutSingleWidget(t *testing.T) {
	packed, err := ParseLayout([]byte("widget: button\nlabel: OK\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(packed) != 1 || packed[0].Label != "OK" {
		t.Errorf("packed = %+v", packed)
	}
	if packed, err := ParseLayout(nil); err != nil || packed != nil {
		t.Errorf("empty document = %v, %v", packed, err)
	}
	if _, err := ParseLayout([]byte("3\n")); err == nil {
		t.Error("scalar document accepted")
	}
	if _, err := LoadLayout(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestTextures(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	path := filepath.Join(t.TempDir(), "dot.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tex := NewTextures()
	dot, err := tex.LoadPNG("dot", path)
	if err != nil {
		t.Fatal(err)
	}
	if dot == 0 {
		t.Fatal("zero texture handle")
	}
	w, h, rgba, ok := tex.Pixels(dot)
	if !ok || w != 3 || h != 2 || len(rgba) != 3*2*4 {
		t.Fatalf("pixels = %d x %d (%d bytes), %v", w, h, len(rgba), ok)
	}
	if px := rgba[(1*3+2)*4:][:4]; px[0] != 10 || px[1] != 20 || px[2] != 30 || px[3] != 255 {
		t.Errorf("pixel (2, 1) = %v", px)
	}

	// Re-adding a name keeps its handle.
	again := tex.Add("dot", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if again != dot || tex.Len() != 1 {
		t.Errorf("re-add = %d (len %d), want %d", again, tex.Len(), dot)
	}
	if got, ok := tex.Texture("dot"); !ok || got != dot {
		t.Errorf("Texture(dot) = %d, %v", got, ok)
	}
	if _, _, _, ok := tex.Pixels(0); ok {
		t.Error("zero handle has pixels")
	}
	if _, err := tex.LoadPNG("x", filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing png accepted")
	}
}

func TestPackRGBASubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
	w, h, out := packRGBA(imageToRGBA(sub))
	if w != 2 || h != 2 || len(out) != 16 {
		t.Fatalf("packed %dx%d, %d bytes", w, h, len(out))
	}
	if out[0] != 255 || out[3] != 255 {
		t.Errorf("first pixel = %v", out[:4])
	}
}
