package core

import (
	"time"

	"github.com/hubastard/trellis/engine/geom"
	"github.com/hubastard/trellis/engine/ui"
)

// App defines the game/application hooks.
type App interface {
	OnStart(e *Engine)                 // called once after window/renderer init
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz by default)
	OnRender(e *Engine, alpha float64) // render with interpolation alpha [0..1]
	OnEvent(e *Engine, ev Event)       // input/window events
	OnShutdown(e *Engine)              // before exit
}

// Engine exposes core services to the App.
type Engine struct {
	Window   Window
	Renderer Renderer
	Input    *Input
	start    time.Time
	viewport geom.Rect
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Viewport is the framebuffer rect in pixels, kept current across resizes.
// GUI layers pass it to ui.Gui.SetViewport.
func (e *Engine) Viewport() geom.Rect { return e.viewport }

// resize tracks a new framebuffer size. Minimized windows report zero and
// keep the last usable viewport.
func (e *Engine) resize(w, h int) bool {
	if w < 1 || h < 1 {
		return false
	}
	e.viewport = geom.R(0, 0, w, h)
	return true
}

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
	// Destroy releases the window once the loop has exited.
	Destroy()
}

// Renderer abstraction.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)
	// DrawUI draws the GUI draw list in order, in framebuffer pixels.
	DrawUI(items []ui.DrawItem)
	Shutdown()
}

// Event model (can expand over time).
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button MouseButton
	Down   bool
	Mods   Mod
}

func (EventMouseButton) isEvent() {}

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyW
	KeyA
	KeyS
	KeyD
	KeyF3
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)
