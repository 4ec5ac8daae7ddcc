// pkg/renderer/renderer.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"
)

var (
	ErrNotInitialized = errors.New("renderer not initialized")
	ErrFontNotFound   = errors.New("font not loaded")
	ErrSDFUnsupported = errors.New("signed distance field unsupported for glyph")
	ErrNoGlyph        = errors.New("font has no glyph for codepoint")
)

// Vertex is the single vertex format used for all drawing: a device-space
// position, a texture coordinate and a color.
type Vertex struct {
	X, Y       float32
	U, V       float32
	R, G, B, A float32
}

// VertexSize is the size of a Vertex in bytes.
const VertexSize = int(unsafe.Sizeof(Vertex{}))

func makeVertex(p [2]float32, u, v float32, c RGBA) Vertex {
	return Vertex{X: p[0], Y: p[1], U: u, V: v, R: c.R, G: c.G, B: c.B, A: c.A}
}

type Topology int

const (
	Triangles Topology = iota
	Lines
	LineLoop
	LineStrip
)

func (t Topology) String() string {
	names := [...]string{"Triangles", "Lines", "LineLoop", "LineStrip"}
	if t < 0 || int(t) >= len(names) {
		return fmt.Sprintf("Topology(%d)", t)
	}
	return names[t]
}

type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstColor
	BlendOneMinusSrcColor
	BlendSrcColor
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendOneMinusDstColor
)

// BlendFunc gives the source and destination factors used when blending
// is enabled.
type BlendFunc struct {
	Src, Dst BlendFactor
}

// StandardBlend is regular "over" compositing. Source colors are
// multiplied by source alpha, so the premultiplied TextureRGBA8 pixels of
// images drawn with BlendNormal have their alpha applied twice, darkening
// partially transparent edges.
var StandardBlend = BlendFunc{Src: BlendSrcAlpha, Dst: BlendOneMinusSrcAlpha}

type TextureFormat int

const (
	// TextureRGBA8 textures hold premultiplied RGBA pixels.
	TextureRGBA8 TextureFormat = iota
	// TextureR8 textures hold a single coverage or distance channel that
	// is sampled as (1, 1, 1, value).
	TextureR8
)

// TextureSpec describes the pixels to upload for a new texture. Pix is
// tightly packed, row by row, with 4 bytes per pixel for TextureRGBA8 and
// one for TextureR8.
type TextureSpec struct {
	Width, Height int
	Format        TextureFormat
	Pix           []byte
}

func (ts TextureSpec) bytes() int {
	if ts.Format == TextureR8 {
		return ts.Width * ts.Height
	}
	return 4 * ts.Width * ts.Height
}

// Renderer defines the interface to the GPU that the rest of the package
// draws through. There is currently a single implementation of it,
// OpenGL3Renderer; having all of the details behind this interface also
// allows the drawing code to be tested without a GPU.
//
// All methods must be called from the thread that owns the graphics
// context.
type Renderer interface {
	// VendorInfo returns the GPU vendor and renderer strings.
	VendorInfo() (vendor, renderer string)

	// MaxTextureSize returns the largest supported texture dimension.
	MaxTextureSize() int

	// CreateProgram compiles and links a shader program with the
	// vertex attribute layout of Vertex.
	CreateProgram(vertexSource, fragmentSource string) (uint32, error)
	DeleteProgram(id uint32)
	UseProgram(id uint32)
	// SetUniformInt sets an integer (or sampler) uniform of the given
	// program, which must be current.
	SetUniformInt(program uint32, name string, v int32)

	// CreateVertexBuffer returns a dynamic vertex buffer with room for
	// capacity bytes.
	CreateVertexBuffer(capacity int) (uint32, error)
	// AllocateVertexBuffer replaces the storage of the bound buffer with
	// a new allocation of capacity bytes holding verts.
	AllocateVertexBuffer(id uint32, verts []Vertex, capacity int)
	// UpdateVertexBuffer writes verts to the start of the buffer's
	// existing storage.
	UpdateVertexBuffer(id uint32, verts []Vertex)
	BindVertexBuffer(id uint32)
	DeleteVertexBuffer(id uint32)

	// CreateTexture returns an identifier for a texture map holding the
	// given pixels with linear filtering and clamp-to-edge wrapping.
	CreateTexture(spec TextureSpec) (uint32, error)
	// DestroyTexture frees the resources associated with the given texture id.
	DestroyTexture(id uint32)
	// BindTexture binds the texture to texture unit 0.
	BindTexture(id uint32)

	// SetBlend enables blending with the given factors.
	SetBlend(f BlendFunc)
	Viewport(x, y, width, height int)
	Clear(c RGBA)
	DrawArrays(t Topology, first, count int)

	// Stats returns the current buffer and texture totals along with the
	// draw counters accumulated since the last call to Stats.
	Stats() RendererStats

	// Dispose releases resources allocated by the renderer.
	Dispose()
}

// RendererStats encapsulates assorted statistics from rendering.
type RendererStats struct {
	nBuffers, bufferBytes    int
	nTextures, textureBytes  int
	nDrawCalls               int
	nVertices                int
	nLines, nTriangles       int
	nBufferAllocs, nUploads  int
	nBlendChanges, nPrograms int
}

func (rs *RendererStats) String() string {
	return fmt.Sprintf("%d buffers (%.2f MB), %d textures (%.2f MB), %d draw calls: %d vertices, %d lines, %d tris",
		rs.nBuffers, float32(rs.bufferBytes)/(1024*1024), rs.nTextures, float32(rs.textureBytes)/(1024*1024),
		rs.nDrawCalls, rs.nVertices, rs.nLines, rs.nTriangles)
}

// DrawCalls returns the number of draw calls issued.
func (rs RendererStats) DrawCalls() int { return rs.nDrawCalls }

// Textures returns the number of live textures.
func (rs RendererStats) Textures() int { return rs.nTextures }

func (rs RendererStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("buffers", rs.nBuffers),
		slog.Int("buffer_memory", rs.bufferBytes),
		slog.Int("textures", rs.nTextures),
		slog.Int("texture_memory", rs.textureBytes),
		slog.Int("draw_calls", rs.nDrawCalls),
		slog.Int("vertices", rs.nVertices),
		slog.Int("lines", rs.nLines),
		slog.Int("tris", rs.nTriangles),
		slog.Int("buffer_allocs", rs.nBufferAllocs),
		slog.Int("uploads", rs.nUploads),
	)
}

// accumulate updates the per-draw counters for a draw of count vertices.
func (rs *RendererStats) accumulate(t Topology, count int) {
	rs.nDrawCalls++
	rs.nVertices += count
	switch t {
	case Triangles:
		rs.nTriangles += count / 3
	case Lines:
		rs.nLines += count / 2
	case LineLoop:
		rs.nLines += count
	case LineStrip:
		rs.nLines += max(0, count-1)
	}
}
