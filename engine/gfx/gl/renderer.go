package glbackend

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/ui"
)

// TextureSource supplies pixels for GUI textures. Pixels are tightly packed
// RGBA8 rows with a top-left origin.
type TextureSource interface {
	Pixels(t ui.Texture) (w, h int, rgba []byte, ok bool)
}

// RendererGL implements core.Renderer. It draws the GUI draw list as batched
// quads in framebuffer pixels. Text runs are counted but not rasterized.
type RendererGL struct {
	win     core.Window
	program uint32
	vao     uint32
	vbo     uint32
	ebo     uint32
	white   uint32

	uViewport int32
	width     int
	height    int

	batch    *quadBatch
	textures map[ui.Texture]uint32
	source   TextureSource
}

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win, textures: make(map[ui.Texture]uint32)}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

// SetTextureSource sets where GUI textures are uploaded from on first use.
func (r *RendererGL) SetTextureSource(src TextureSource) { r.source = src }

func (r *RendererGL) Stats() Statistics { return r.batch.stats }

func (r *RendererGL) Init() error {
	var err error
	r.program, err = makeProgram(vertexSource, fragmentSource)
	if err != nil {
		return err
	}
	r.uViewport = gl.GetUniformLocation(r.program, gl.Str("uViewport\x00"))
	gl.UseProgram(r.program)
	for i := int32(0); i < maxTexSlots; i++ {
		loc := gl.GetUniformLocation(r.program, gl.Str("uTex["+strconv.Itoa(int(i))+"]\x00"))
		gl.Uniform1i(loc, i)
	}
	gl.UseProgram(0)

	const maxQuads = 10000
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, maxQuads*vertsPerQuad*vStride*4, nil, gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, maxQuads*indsPerQuad*4, nil, gl.DYNAMIC_DRAW)

	// pos2, color4, uv2, texIndex1
	const stride = vStride * 4
	attribs := []struct{ loc, size, offset uint32 }{{0, 2, 0}, {1, 4, 2}, {2, 2, 6}, {3, 1, 8}}
	for _, a := range attribs {
		gl.EnableVertexAttribArray(a.loc)
		gl.VertexAttribPointer(a.loc, int32(a.size), gl.FLOAT, false, stride, unsafe.Pointer(uintptr(a.offset*4)))
	}
	gl.BindVertexArray(0)

	r.white = uploadTexture(1, 1, []byte{255, 255, 255, 255})
	r.batch = newQuadBatch(maxQuads, r.white, r.drawBatch)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return nil
}

func (r *RendererGL) Shutdown() {
	for _, t := range r.textures {
		gl.DeleteTextures(1, &t)
	}
	if r.white != 0 {
		gl.DeleteTextures(1, &r.white)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

func (r *RendererGL) Resize(w, h int) {
	r.width, r.height = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (r *RendererGL) DrawUI(items []ui.DrawItem) {
	r.batch.begin()
	for _, it := range items {
		switch d := it.Draw.(type) {
		case *ui.RectDraw:
			if !d.Color.Visible() {
				continue
			}
			r.batch.quad(it.Rect, d.Color, r.texture(d.Texture))
		case *ui.TextDraw:
			r.batch.stats.SkippedText++
		}
	}
	r.batch.end()
}

// texture returns the GL name for t, uploading it on first use. Unknown
// textures draw untextured.
func (r *RendererGL) texture(t ui.Texture) uint32 {
	if t == 0 {
		return 0
	}
	if id, ok := r.textures[t]; ok {
		return id
	}
	var id uint32
	if r.source != nil {
		if w, h, pix, ok := r.source.Pixels(t); ok {
			id = uploadTexture(w, h, pix)
		}
	}
	if id == 0 {
		log.Printf("GL: warning: texture %d has no pixels", t)
	}
	r.textures[t] = id
	return id
}

func (r *RendererGL) drawBatch(verts []float32, inds []uint32, textures []uint32) {
	gl.UseProgram(r.program)
	gl.Uniform2f(r.uViewport, float32(r.width), float32(r.height))
	for i, t := range textures {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, t)
	}
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(inds)*4, gl.Ptr(inds))
	gl.DrawElements(gl.TRIANGLES, int32(len(inds)), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func uploadTexture(w, h int, rgba []byte) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

// --- Shader utilities ---

// Positions are framebuffer pixels with a top-left origin.
const vertexSource = `
#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec4 aColor;
layout(location=2) in vec2 aUV;
layout(location=3) in float aTex;
uniform vec2 uViewport;
out vec4 vColor;
out vec2 vUV;
flat out int vTex;
void main() {
    vColor = aColor;
    vUV = aUV;
    vTex = int(aTex);
    vec2 ndc = aPos / uViewport * 2.0 - 1.0;
    gl_Position = vec4(ndc.x, -ndc.y, 0.0, 1.0);
}
` + "\x00"

const fragmentSource = `
#version 330 core
in vec4 vColor;
in vec2 vUV;
flat in int vTex;
uniform sampler2D uTex[16];
out vec4 FragColor;
void main() {
    vec4 texel = vec4(1.0);
    switch (vTex) {
    case 0: texel = texture(uTex[0], vUV); break;
    case 1: texel = texture(uTex[1], vUV); break;
    case 2: texel = texture(uTex[2], vUV); break;
    case 3: texel = texture(uTex[3], vUV); break;
    case 4: texel = texture(uTex[4], vUV); break;
    case 5: texel = texture(uTex[5], vUV); break;
    case 6: texel = texture(uTex[6], vUV); break;
    case 7: texel = texture(uTex[7], vUV); break;
    case 8: texel = texture(uTex[8], vUV); break;
    case 9: texel = texture(uTex[9], vUV); break;
    case 10: texel = texture(uTex[10], vUV); break;
    case 11: texel = texture(uTex[11], vUV); break;
    case 12: texel = texture(uTex[12], vUV); break;
    case 13: texel = texture(uTex[13], vUV); break;
    case 14: texel = texture(uTex[14], vUV); break;
    case 15: texel = texture(uTex[15], vUV); break;
    }
    FragColor = texel * vColor;
}
` + "\x00"

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
