package main

import (
	"flag"
	"log"

	"github.com/hubastard/trellis/engine/core"
	glbackend "github.com/hubastard/trellis/engine/gfx/gl"
	"github.com/hubastard/trellis/engine/platform"
)

type App struct {
	cfg      core.Config
	renderer *glbackend.RendererGL
	layers   core.LayerStack
	gui      *LayerGUI
	debug    *LayerDebug
}

func (a *App) OnStart(e *core.Engine) {
	a.gui = &LayerGUI{cfg: a.cfg, renderer: a.renderer}
	a.layers.Push(e, a.gui)

	a.debug = &LayerDebug{gui: a.gui, renderer: a.renderer}
	a.layers.Push(e, a.debug)
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	a.layers.ForEach(func(l core.Layer) { l.OnUpdate(e, dt) })
}

func (a *App) OnRender(e *core.Engine, alpha float64) {
	a.layers.ForEach(func(l core.Layer) { l.OnRender(e, alpha) })
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) { a.layers.Dispatch(e, ev) }
func (a *App) OnShutdown(e *core.Engine)             { a.layers.Clear(e) }

func main() {
	cfgPath := flag.String("config", "sandbox.yaml", "path to the sandbox config")
	flag.Parse()

	cfg, err := core.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	app := &App{cfg: cfg}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		r, err := glbackend.NewRendererGL(win, cfg)
		if err != nil {
			return nil, err
		}
		app.renderer = r
		return r, nil
	}

	if err := core.Run(app, cfg, newWindow, newRenderer); err != nil {
		log.Fatal(err)
	}
}
