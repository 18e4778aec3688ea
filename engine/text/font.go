package text

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Font is a parsed face at a fixed pixel size. Metrics for other sizes are
// scaled linearly from it.
type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Face                     font.Face

	advances  map[rune]float32
	closeFace func()
}

func (f *Font) Close() {
	if f != nil && f.closeFace != nil {
		f.closeFace()
		f.closeFace = nil
	}
}

// Parse builds a Font from TrueType or OpenType data.
func Parse(ttfData []byte, sizePx float32) (*Font, error) {
	ft, err := opentype.Parse(ttfData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	// Metrics in pixels
	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	return &Font{
		SizePx: sizePx,
		Ascent: ascent, Descent: descent, LineGap: lineGap,
		Face:      face,
		advances:  make(map[rune]float32, 128),
		closeFace: func() { _ = face.Close() },
	}, nil
}

// LoadTTF reads and parses a font file.
func LoadTTF(path string, sizePx float32) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return Parse(data, sizePx)
}

// Default returns Go Regular at sizePx.
func Default(sizePx float32) (*Font, error) {
	return Parse(goregular.TTF, sizePx)
}

// advance returns the advance of r in pixels, falling back to the space
// advance for runes the face lacks.
func (f *Font) advance(r rune) float32 {
	if a, ok := f.advances[r]; ok {
		return a
	}
	adv, ok := f.Face.GlyphAdvance(r)
	if !ok && r != ' ' {
		a := f.advance(' ')
		f.advances[r] = a
		return a
	}
	a := float32(adv.Round())
	f.advances[r] = a
	return a
}

func (f *Font) LineHeight() float32 { return f.Ascent - f.Descent + f.LineGap }
