package main

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/geom"
	glbackend "github.com/hubastard/trellis/engine/gfx/gl"
	"github.com/hubastard/trellis/engine/ui"
)

// LayerDebug shows frame and renderer statistics in a corner text widget
// and logs them once per second.
type LayerDebug struct {
	gui      *LayerGUI
	renderer *glbackend.RendererGL

	label     *ui.Text
	lastFrame time.Time
	frameMs   float32
	lastLog   time.Time
}

func (l *LayerDebug) OnAttach(e *core.Engine) {
	g := l.gui.gui
	var err error
	l.label, err = ui.NewText(g, g.Root(), "", "debug")
	if err != nil {
		log.Printf("Debug: warning: %v", err)
		return
	}
	l.label.SetColor(colors.Yellow)
	l.label.SetAlign(ui.AlignEnd, ui.AlignStart)
	if n, err := g.Node(l.label); err == nil {
		n.Layout = ui.FillLayout(geom.Uniform(8))
	}
}

func (l *LayerDebug) OnDetach(e *core.Engine) {
	if l.label != nil {
		_ = l.gui.gui.Remove(l.label)
	}
}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	now := time.Now()
	if !l.lastFrame.IsZero() {
		l.frameMs = float32(now.Sub(l.lastFrame).Seconds() * 1000.0)
	}
	l.lastFrame = now

	var stats glbackend.Statistics
	if l.renderer != nil {
		stats = l.renderer.Stats()
	}
	if l.label != nil {
		l.label.SetText(fmt.Sprintf("%2.3f ms  quads %d  calls %d", l.frameMs, stats.QuadCount, stats.DrawCalls))
	}
	if now.Sub(l.lastLog) >= time.Second {
		l.lastLog = now
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		log.Printf("Debug: frame %.3f ms, draw calls %d, quads %d, textures %d, skipped text %d, nodes %d, behaviors %d, heap %.2f MB",
			l.frameMs, stats.DrawCalls, stats.QuadCount, stats.TextureCount, stats.SkippedText,
			l.gui.gui.Nodes().Len(), l.gui.gui.BehaviorCount(), float32(mem.HeapAlloc)/(1<<20))
	}
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	if k, ok := ev.(core.EventKey); ok && k.Down && k.Key == core.KeyF3 && l.label != nil {
		if n, err := l.gui.gui.Node(l.label); err == nil {
			n.Visible = !n.Visible
		}
		return true
	}
	return false
}
