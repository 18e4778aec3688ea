package assets

import (
	"fmt"
	"image"
	"slices"

	"github.com/hubastard/trellis/engine/ui"
)

type textureEntry struct {
	name string
	w, h int
	rgba []byte
}

// Textures is a named texture registry. Handles start at 1 so the zero
// ui.Texture keeps meaning "no texture". It resolves names for style and
// layout documents and feeds pixels to the renderer.
type Textures struct {
	byName  map[string]ui.Texture
	entries []textureEntry
}

func NewTextures() *Textures {
	return &Textures{byName: make(map[string]ui.Texture)}
}

// Add registers img under name. Adding an existing name replaces its pixels
// and keeps the handle.
func (t *Textures) Add(name string, img image.Image) ui.Texture {
	w, h, rgba := packRGBA(imageToRGBA(img))
	e := textureEntry{name: name, w: w, h: h, rgba: rgba}
	if tex, ok := t.byName[name]; ok {
		t.entries[tex-1] = e
		return tex
	}
	t.entries = append(t.entries, e)
	tex := ui.Texture(len(t.entries))
	t.byName[name] = tex
	return tex
}

// LoadPNG decodes the PNG at path and registers it under name.
func (t *Textures) LoadPNG(name, path string) (ui.Texture, error) {
	img, err := DecodePNG(path)
	if err != nil {
		return 0, fmt.Errorf("texture %q: %w", name, err)
	}
	return t.Add(name, img), nil
}

func (t *Textures) Texture(name string) (ui.Texture, bool) {
	tex, ok := t.byName[name]
	return tex, ok
}

func (t *Textures) Pixels(tex ui.Texture) (w, h int, rgba []byte, ok bool) {
	if tex == 0 || int(tex) > len(t.entries) {
		return 0, 0, nil, false
	}
	e := t.entries[tex-1]
	return e.w, e.h, e.rgba, true
}

func (t *Textures) Len() int { return len(t.entries) }

// Names returns the registered names in sorted order.
func (t *Textures) Names() []string {
	out := make([]string, 0, len(t.byName))
	for n := range t.byName {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
