package colors

import (
	"strings"

	"github.com/chewxy/math32"
)

// Color is linear RGBA in [0..1].
type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
	Transparent = Color{}
)

func RGBA(r, g, b, a float32) Color { return Color{r, g, b, a} }

// Luma is a gray with the given lightness and alpha.
func Luma(l, a float32) Color { return Color{l, l, l, a} }

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Darken moves the color toward black by amount in [0..1]. The mix happens
// in sRGB space so equal amounts look like equal steps. Alpha is kept.
func (c Color) Darken(amount float32) Color {
	k := 1 - clamp01(amount)
	return c.mixSRGB(func(v float32) float32 { return v * k })
}

// Lighten moves the color toward white by amount in [0..1], mixing in sRGB
// space like Darken. Alpha is kept.
func (c Color) Lighten(amount float32) Color {
	k := clamp01(amount)
	return c.mixSRGB(func(v float32) float32 { return v + (1-v)*k })
}

func (c Color) mixSRGB(f func(float32) float32) Color {
	for i := 0; i < 3; i++ {
		c[i] = ToLinear(f(ToSRGB(c[i])))
	}
	return c
}

// ToLinear decodes one sRGB-encoded channel.
func ToLinear(v float32) float32 {
	v = clamp01(v)
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

// ToSRGB encodes one linear channel.
func ToSRGB(v float32) float32 {
	v = clamp01(v)
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math32.Pow(v, 1/2.4) - 0.055
}

// SRGB builds a linear color from sRGB-encoded components, such as values
// picked in an image editor.
func SRGB(r, g, b, a float32) Color {
	return Color{ToLinear(r), ToLinear(g), ToLinear(b), a}
}

// Luminance is the relative luminance of the linear channels.
func (c Color) Luminance() float32 {
	return 0.2126*c[0] + 0.7152*c[1] + 0.0722*c[2]
}

// Visible reports whether drawing with c has any effect.
func (c Color) Visible() bool { return c[3] > 0 }

func clamp01(v float32) float32 { return math32.Max(0, math32.Min(1, v)) }

// ParseHex parses #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
func ParseHex(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return Black, false
	}
	hex := s[1:]
	var digits []uint8
	switch len(hex) {
	case 3, 4:
		for i := 0; i < len(hex); i++ {
			v, ok := hexDigit(hex[i])
			if !ok {
				return Black, false
			}
			digits = append(digits, v*17)
		}
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			hi, ok1 := hexDigit(hex[i])
			lo, ok2 := hexDigit(hex[i+1])
			if !ok1 || !ok2 {
				return Black, false
			}
			digits = append(digits, hi<<4|lo)
		}
	default:
		return Black, false
	}
	c := Color{0, 0, 0, 1}
	for i, d := range digits {
		c[i] = float32(d) / 255
	}
	return c, true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
