// pkg/renderer/fake_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"errors"
	"testing"

	"github.com/nightcore/gl2d/pkg/log"

	"golang.org/x/image/font/gofont/goregular"
)

// fakeRenderer is a Renderer that records what it's asked to do rather
// than talking to a GPU.
type fakeRenderer struct {
	vendor, device string
	maxTextureSize int
	// CreateProgram fails for fragment shaders in failFragment.
	failFragment map[string]bool

	nextId   uint32
	programs map[uint32]string // id -> fragment source
	program  uint32
	uniforms map[uint32]map[string]int32

	buffers       map[uint32]int // id -> capacity
	bufferVerts   []Vertex
	bufferAllocs  int
	bufferUploads int

	textures        map[uint32]TextureSpec
	texturesCreated int
	texture         uint32

	blend      BlendFunc
	blendCalls int
	viewport   [4]int
	clears     []RGBA

	draws []fakeDraw
}

type fakeDraw struct {
	topology Topology
	program  uint32
	sdf      bool
	texture  uint32
	useTex   int32
	blend    BlendFunc
	verts    []Vertex
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		vendor:         "NVIDIA Corporation",
		device:         "NVIDIA GeForce RTX 3070/PCIe/SSE2",
		maxTextureSize: 16384,
		failFragment:   make(map[string]bool),
		programs:       make(map[uint32]string),
		uniforms:       make(map[uint32]map[string]int32),
		buffers:        make(map[uint32]int),
		textures:       make(map[uint32]TextureSpec),
	}
}

func (f *fakeRenderer) id() uint32 {
	f.nextId++
	return f.nextId
}

func (f *fakeRenderer) VendorInfo() (string, string) { return f.vendor, f.device }
func (f *fakeRenderer) MaxTextureSize() int          { return f.maxTextureSize }

func (f *fakeRenderer) CreateProgram(vs, fs string) (uint32, error) {
	if f.failFragment[fs] {
		return 0, errors.New("link failed")
	}
	id := f.id()
	f.programs[id] = fs
	f.uniforms[id] = make(map[string]int32)
	return id, nil
}

func (f *fakeRenderer) DeleteProgram(id uint32) { delete(f.programs, id) }
func (f *fakeRenderer) UseProgram(id uint32)    { f.program = id }

func (f *fakeRenderer) SetUniformInt(program uint32, name string, v int32) {
	f.uniforms[program][name] = v
}

func (f *fakeRenderer) CreateVertexBuffer(capacity int) (uint32, error) {
	id := f.id()
	f.buffers[id] = capacity
	return id, nil
}

func (f *fakeRenderer) AllocateVertexBuffer(id uint32, verts []Vertex, capacity int) {
	f.buffers[id] = capacity
	f.bufferAllocs++
	f.bufferVerts = append(f.bufferVerts[:0], verts...)
}

func (f *fakeRenderer) UpdateVertexBuffer(id uint32, verts []Vertex) {
	f.bufferUploads++
	f.bufferVerts = append(f.bufferVerts[:0], verts...)
}

func (f *fakeRenderer) BindVertexBuffer(id uint32)   {}
func (f *fakeRenderer) DeleteVertexBuffer(id uint32) { delete(f.buffers, id) }

func (f *fakeRenderer) CreateTexture(spec TextureSpec) (uint32, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return 0, errors.New("bad texture size")
	}
	id := f.id()
	f.textures[id] = spec
	f.texturesCreated++
	return id, nil
}

func (f *fakeRenderer) DestroyTexture(id uint32) { delete(f.textures, id) }
func (f *fakeRenderer) BindTexture(id uint32)    { f.texture = id }

func (f *fakeRenderer) SetBlend(b BlendFunc) {
	f.blend = b
	f.blendCalls++
}

func (f *fakeRenderer) Viewport(x, y, w, h int) { f.viewport = [4]int{x, y, w, h} }
func (f *fakeRenderer) Clear(c RGBA)            { f.clears = append(f.clears, c) }

func (f *fakeRenderer) DrawArrays(t Topology, first, count int) {
	d := fakeDraw{
		topology: t,
		program:  f.program,
		sdf:      f.programs[f.program] == sdfFragmentShaderSource,
		useTex:   f.uniforms[f.program]["uUseTex"],
		blend:    f.blend,
		verts:    append([]Vertex(nil), f.bufferVerts[first:first+count]...),
	}
	if d.sdf || d.useTex != 0 {
		d.texture = f.texture
	}
	f.draws = append(f.draws, d)
}

func (f *fakeRenderer) Stats() RendererStats {
	rs := RendererStats{nBuffers: len(f.buffers), nTextures: len(f.textures)}
	for _, d := range f.draws {
		rs.accumulate(d.topology, len(d.verts))
	}
	return rs
}

func (f *fakeRenderer) Dispose() {}

func (f *fakeRenderer) reset() {
	f.draws = nil
}

func (f *fakeRenderer) lastDraw(t *testing.T) fakeDraw {
	t.Helper()
	if len(f.draws) == 0 {
		t.Fatalf("no draws were issued")
	}
	return f.draws[len(f.draws)-1]
}

///////////////////////////////////////////////////////////////////////////

// countingFace wraps a FontFace to count rasterizations.
type countingFace struct {
	FontFace
	rasterized map[rune]int
}

func (c *countingFace) Rasterize(r rune) (GlyphBitmap, error) {
	c.rasterized[r]++
	return c.FontFace.Rasterize(r)
}

// countingLoader returns a FontLoader that records the faces it creates.
func countingLoader(faces *[]*countingFace) FontLoader {
	return func(data []byte, size int) (FontFace, error) {
		face, err := LoadOpenTypeFace(data, size)
		if err != nil {
			return nil, err
		}
		cf := &countingFace{FontFace: face, rasterized: make(map[rune]int)}
		*faces = append(*faces, cf)
		return cf, nil
	}
}

// newTestContext returns an initialized 800x600 Context drawing to a
// fakeRenderer.
func newTestContext(t *testing.T, opts Options) (*Context, *fakeRenderer) {
	t.Helper()
	r := newFakeRenderer()
	if opts.Width == 0 {
		opts.Width, opts.Height = 800, 600
	}
	ctx := NewContext(r, opts, log.NewDiscard())
	if err := ctx.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return ctx, r
}

// newTextContext is like newTestContext but also loads Go Regular as
// "regular" at 24 pixels through a counting loader.
func newTextContext(t *testing.T, forceSDF bool) (*Context, *fakeRenderer, *[]*countingFace) {
	t.Helper()
	faces := &[]*countingFace{}
	ctx, r := newTestContext(t, Options{ForceSDF: &forceSDF, FontLoader: countingLoader(faces)})
	if err := ctx.Text().LoadFontBytes("regular", goregular.TTF, 24); err != nil {
		t.Fatalf("LoadFontBytes: %v", err)
	}
	return ctx, r, faces
}

func approxEqual(a, b float32) bool {
	d := a - b
	return d > -1e-3 && d < 1e-3
}
