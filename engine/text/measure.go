package text

import (
	"github.com/hubastard/trellis/engine/ui"
)

// MeasureText returns the width of the widest line and the total height of s
// laid out with f scaled to size.
func MeasureText(f *Font, s string, size float32) (width, height float32) {
	var lineW float32
	var prev rune = -1
	lineH := f.LineHeight()
	height = lineH

	for _, r := range s {
		if r == '\n' {
			width = max(width, lineW)
			lineW = 0
			height += lineH
			prev = -1
			continue
		}
		if prev >= 0 {
			lineW += float32(f.Face.Kern(prev, r)) / 64.0
		}
		lineW += f.advance(r)
		prev = r
	}
	width = max(width, lineW)

	scale := f.scale(size)
	return width * scale, height * scale
}

func (f *Font) scale(size float32) float32 {
	if size <= 0 || f.SizePx <= 0 {
		return 1
	}
	return size / f.SizePx
}

// Library resolves font references for the GUI. The empty reference and any
// unknown one use the default font.
type Library struct {
	def   *Font
	fonts map[ui.FontRef]*Font
}

func NewLibrary(def *Font) *Library {
	return &Library{def: def, fonts: make(map[ui.FontRef]*Font)}
}

func (l *Library) Add(ref ui.FontRef, f *Font) { l.fonts[ref] = f }

func (l *Library) Font(ref ui.FontRef) *Font {
	if f, ok := l.fonts[ref]; ok {
		return f
	}
	return l.def
}

// Measure implements ui.TextMeasurer.
func (l *Library) Measure(ref ui.FontRef, size float32, s string) ui.TextMetrics {
	f := l.Font(ref)
	if f == nil {
		return ui.TextMetrics{}
	}
	w, h := MeasureText(f, s, size)
	return ui.TextMetrics{Width: w, Ascent: f.Ascent * f.scale(size), Height: h}
}

// Close releases every face, the default included.
func (l *Library) Close() {
	for _, f := range l.fonts {
		f.Close()
	}
	l.def.Close()
}
