package glbackend

import (
	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/geom"
)

// Max textures per batch (common GL limit is 16)
const maxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1 => 9 floats
const vStride = 9
const vertsPerQuad = 4
const indsPerQuad = 6

// Statistics captures the counts generated during a frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
	SkippedText  int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// TotalIndexCount reports indices submitted this frame.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }

// quadBatch accumulates axis-aligned quads in pixel space. Slot 0 is always
// the white texture. flush is called whenever the quad or texture capacity is
// reached and once more by end.
type quadBatch struct {
	verts     []float32
	inds      []uint32
	quadCount int
	maxQuads  int

	white  uint32
	texArr [maxTexSlots]uint32
	texCnt int

	stats Statistics
	flush func(verts []float32, inds []uint32, textures []uint32)
}

func newQuadBatch(maxQuads int, white uint32, flush func([]float32, []uint32, []uint32)) *quadBatch {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	b := &quadBatch{
		maxQuads: maxQuads,
		white:    white,
		flush:    flush,
		verts:    make([]float32, 0, maxQuads*vertsPerQuad*vStride),
		inds:     make([]uint32, 0, maxQuads*indsPerQuad),
	}
	b.reset()
	return b
}

func (b *quadBatch) begin() {
	b.stats = Statistics{}
	b.reset()
}

func (b *quadBatch) end() { b.submit() }

// quad adds r with color c. tex 0 draws untextured.
func (b *quadBatch) quad(r geom.Rect, c colors.Color, tex uint32) {
	if b.quadCount >= b.maxQuads {
		b.submit()
	}
	slot := float32(0)
	if tex != 0 {
		slot = b.texSlot(tex)
	}
	x0, y0 := float32(r.X), float32(r.Y)
	x1, y1 := float32(r.Right()), float32(r.Bottom())

	// corners (TL, TR, BL, BR). Positive Y goes down.
	corners := [4][4]float32{
		{x0, y0, 0, 0},
		{x1, y0, 1, 0},
		{x0, y1, 0, 1},
		{x1, y1, 1, 1},
	}
	start := uint32(len(b.verts) / vStride)
	for _, p := range corners {
		b.verts = append(b.verts, p[0], p[1], c[0], c[1], c[2], c[3], p[2], p[3], slot)
	}
	b.inds = append(b.inds,
		start+0, start+2, start+1,
		start+1, start+2, start+3,
	)
	b.quadCount++
	b.stats.QuadCount++
}

func (b *quadBatch) texSlot(t uint32) float32 {
	for i := 0; i < b.texCnt; i++ {
		if b.texArr[i] == t {
			return float32(i)
		}
	}
	if b.texCnt >= maxTexSlots {
		b.submit()
	}
	b.texArr[b.texCnt] = t
	b.texCnt++
	b.stats.TextureCount = max(b.stats.TextureCount, b.texCnt)
	return float32(b.texCnt - 1)
}

func (b *quadBatch) submit() {
	if b.quadCount == 0 {
		return
	}
	if b.flush != nil {
		b.flush(b.verts, b.inds, b.texArr[:b.texCnt])
	}
	b.stats.DrawCalls++
	b.reset()
}

func (b *quadBatch) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	b.quadCount = 0
	b.texArr = [maxTexSlots]uint32{}
	b.texArr[0] = b.white
	b.texCnt = 1
}
