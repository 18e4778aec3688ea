package main

import (
	"image"
	"image/color"
	"log"

	"github.com/hubastard/trellis/engine/assets"
	"github.com/hubastard/trellis/engine/core"
	glbackend "github.com/hubastard/trellis/engine/gfx/gl"
	"github.com/hubastard/trellis/engine/text"
	"github.com/hubastard/trellis/engine/ui"
)

// fallbackLayout is shown when the config names no layout file.
var fallbackLayout = []ui.Packed{{
	Widget: "panel",
	Name:   "menu",
	Layout: &ui.PackedLayout{
		Size: [2]int{320, 240},
		Left: &ui.PackedAnchor{Offset: 16},
		Top:  &ui.PackedAnchor{Offset: 16},
	},
	Children: []ui.Packed{{
		Widget: "container",
		Class:  []string{"menu-list"},
		Children: []ui.Packed{
			{Widget: "button", Name: "play", Label: "Play"},
			{Widget: "button", Name: "options", Label: "Options", Disabled: true},
			{Widget: "toggle-group", Name: "difficulty", Labels: []string{"Easy", "Normal", "Hard"}},
			{Widget: "text", Name: "status", Text: "Ready"},
			{Widget: "image", Texture: "checker"},
		},
	}},
}}

// LayerGUI owns the widget tree. It steps the GUI at the fixed tick and
// hands the draw list to the renderer every frame.
type LayerGUI struct {
	cfg      core.Config
	renderer *glbackend.RendererGL

	gui      *ui.Gui
	fonts    *text.Library
	textures *assets.Textures
	widgets  *ui.Unpacked
	status   *ui.Text

	draw []ui.DrawItem
}

func (l *LayerGUI) OnAttach(e *core.Engine) {
	l.textures = assets.NewTextures()
	l.textures.Add("checker", checker(8, 8))
	if l.renderer != nil {
		l.renderer.SetTextureSource(l.textures)
	}

	var (
		font *text.Font
		err  error
	)
	if l.cfg.FontPath != "" {
		font, err = text.LoadTTF(l.cfg.FontPath, l.cfg.FontSize)
	} else {
		font, err = text.Default(l.cfg.FontSize)
	}
	if err != nil {
		log.Fatal(err)
	}
	l.fonts = text.NewLibrary(font)

	var styles *ui.StyleSheet
	if l.cfg.StylePath != "" {
		if styles, err = assets.LoadStyles(l.cfg.StylePath, l.textures); err != nil {
			log.Fatal(err)
		}
	} else {
		styles = ui.NewStyleSheet()
		styles.Set("menu-list", ui.Rules{"strategy": ui.StringValue("box"), "direction": ui.StringValue("vertical")})
	}
	l.gui = ui.New(styles, &ui.Context{Fonts: l.fonts, Textures: l.textures})

	packed := fallbackLayout
	if l.cfg.LayoutPath != "" {
		if packed, err = assets.LoadLayout(l.cfg.LayoutPath); err != nil {
			log.Fatal(err)
		}
	}
	l.widgets, err = ui.NewRegistry().Unpack(l.gui, l.gui.Root(), packed...)
	if err != nil {
		// Broken subtrees are skipped; show what did build.
		log.Printf("GUI: warning: %v", err)
	}
	l.status, _ = ui.Named[*ui.Text](l.widgets, "status")
	log.Printf("GUI: %d widgets, %d style classes", len(l.widgets.All()), len(l.gui.Styles().Classes()))
}

func (l *LayerGUI) OnDetach(e *core.Engine) {
	l.widgets = nil
	if l.fonts != nil {
		l.fonts.Close()
	}
}

func (l *LayerGUI) OnUpdate(e *core.Engine, dt float64) {
	l.gui.SetViewport(e.Viewport())
	l.gui.Update(e.Input.Pointer())

	for _, ev := range l.gui.Drain() {
		l.handle(ev)
	}
}

func (l *LayerGUI) handle(ev ui.Event) {
	switch ev.Kind {
	case ui.EventActivate:
		switch ev.Name {
		case "play":
			l.setStatus("Playing")
		case "difficulty":
			if g, ok := ui.Named[*ui.ToggleGroup](l.widgets, "difficulty"); ok {
				l.setStatus("Difficulty: " + g.Buttons()[ev.Index].Label().String())
			}
		}
		log.Printf("GUI: %s %q (%s) index %d", ev.Kind, ev.Name, ev.Class, ev.Index)
	case ui.EventFocusEnter:
		log.Printf("GUI: focus %q", ev.Name)
	}
}

func (l *LayerGUI) setStatus(s string) {
	if l.status != nil {
		l.status.SetText(s)
	}
}

func (l *LayerGUI) OnRender(e *core.Engine, alpha float64) {
	l.draw = l.gui.DrawList(l.draw[:0])
	e.Renderer.DrawUI(l.draw)
}

func (l *LayerGUI) OnEvent(e *core.Engine, ev core.Event) bool { return false }

func checker(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{200, 200, 200, 255}
			if (x+y)%2 == 1 {
				c = color.RGBA{90, 90, 90, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
