package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
)

// DecodePNG reads a PNG file as an RGBA image with a top-left origin.
func DecodePNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode png %q: %w", path, err)
	}
	return imageToRGBA(img), nil
}

// packRGBA returns the pixels of img as tightly packed RGBA8 rows.
func packRGBA(img *image.RGBA) (w, h int, out []byte) {
	w, h = img.Bounds().Dx(), img.Bounds().Dy()
	if img.Stride == w*4 && len(img.Pix) == w*h*4 {
		return w, h, img.Pix
	}

	// Repack in tight rows (stride == 4*w)
	out = make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		copy(out[y*w*4:(y+1)*w*4], row[:w*4])
	}
	return w, h, out
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Stride == m.Rect.Dx()*4 && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
