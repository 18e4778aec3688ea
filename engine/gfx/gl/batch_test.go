package glbackend

import (
	"testing"

	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/geom"
)

func TestQuadBatchVertices(t *testing.T) {
	var flushed [][]float32
	b := newQuadBatch(8, 1, func(v []float32, _ []uint32, _ []uint32) {
		flushed = append(flushed, append([]float32(nil), v...))
	})
	b.begin()
	b.quad(geom.R(10, 20, 30, 40), colors.Red, 0)
	b.end()

	if len(flushed) != 1 {
		t.Fatalf("flushes = %d", len(flushed))
	}
	v := flushed[0]
	if len(v) != vertsPerQuad*vStride {
		t.Fatalf("vertex floats = %d", len(v))
	}
	// bottom-right corner is the last vertex
	br := v[3*vStride:]
	if br[0] != 40 || br[1] != 60 || br[2] != 1 || br[8] != 0 {
		t.Errorf("bottom-right vertex = %v", br)
	}
}

func TestQuadBatchTextureSlots(t *testing.T) {
	var calls int
	var lastTextures []uint32
	b := newQuadBatch(100, 1, func(_ []float32, _ []uint32, tex []uint32) {
		calls++
		lastTextures = append([]uint32(nil), tex...)
	})
	b.begin()
	for i := 0; i < maxTexSlots+2; i++ {
		b.quad(geom.R(0, 0, 1, 1), colors.White, uint32(100+i))
	}
	b.quad(geom.R(0, 0, 1, 1), colors.White, 0)
	b.end()

	if calls != 2 {
		t.Errorf("draw calls = %d, want 2", calls)
	}
	if lastTextures[0] != 1 || len(lastTextures) != 3 {
		t.Errorf("second batch textures = %v", lastTextures)
	}
	if s := b.stats; s.QuadCount != maxTexSlots+3 || s.DrawCalls != 2 {
		t.Errorf("stats = %+v", s)
	}
}

func TestQuadBatchCapacity(t *testing.T) {
	var sizes []int
	b := newQuadBatch(2, 1, func(_ []float32, inds []uint32, _ []uint32) {
		sizes = append(sizes, len(inds))
	})
	b.begin()
	for i := 0; i < 5; i++ {
		b.quad(geom.R(0, 0, 1, 1), colors.White, 0)
	}
	b.end()
	if len(sizes) != 3 || sizes[0] != 2*indsPerQuad || sizes[2] != indsPerQuad {
		t.Errorf("batches = %v", sizes)
	}
}
