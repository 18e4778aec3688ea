package core

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// Run wires the platform window + renderer and executes the main loop.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer rend.Shutdown()

	eng := &Engine{Window: win, Renderer: rend, Input: NewInput(), start: time.Now()}
	if eng.resize(win.FramebufferSize()) {
		rend.Resize(eng.viewport.W, eng.viewport.H)
	}
	win.SetEventCallback(func(ev Event) { eng.handle(app, ev) })

	app.OnStart(eng)

	var (
		step  = newStepper(time.Second/60, 10)
		prev  = time.Now()
		clear = cfg.ClearColor
	)
	for !win.ShouldClose() {
		now := time.Now()
		frame := now.Sub(prev)
		prev = now

		// Poll OS events (platform will emit via callbacks)
		win.PollEvents()

		steps, alpha := step.advance(frame)
		for range steps {
			app.OnUpdate(eng, step.dt())
		}

		rend.Clear(clear[0], clear[1], clear[2], clear[3])
		app.OnRender(eng, alpha)
		win.SwapBuffers()
	}

	app.OnShutdown(eng)
	log.Printf("Engine exit after %s", eng.Uptime().Round(time.Millisecond))
	return nil
}

// handle feeds input state and the viewport before the app sees ev, so GUI
// layers read a current pointer and framebuffer size.
func (e *Engine) handle(app App, ev Event) {
	e.Input.Handle(ev)
	if _, ok := ev.(EventResize); ok && e.resize(e.Window.FramebufferSize()) {
		e.Renderer.Resize(e.viewport.W, e.viewport.H)
	}
	app.OnEvent(e, ev)
}

// stepper turns variable frame times into fixed ticks plus an interpolation
// factor. At most maxSteps ticks run per frame; leftover time beyond that is
// dropped so a long stall does not snowball.
type stepper struct {
	tick     time.Duration
	maxSteps int
	accum    time.Duration
}

func newStepper(tick time.Duration, maxSteps int) *stepper {
	return &stepper{tick: tick, maxSteps: maxSteps}
}

func (s *stepper) dt() float64 { return s.tick.Seconds() }

func (s *stepper) advance(frame time.Duration) (steps int, alpha float64) {
	s.accum += frame
	for s.accum >= s.tick && steps < s.maxSteps {
		s.accum -= s.tick
		steps++
	}
	if s.accum >= s.tick {
		s.accum = s.accum % s.tick
	}
	return steps, float64(s.accum) / float64(s.tick)
}
