// pkg/renderer/batch.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"

	"github.com/nightcore/gl2d/pkg/log"
)

// DefaultBufferBytes is the initial size of the shared vertex buffer.
const DefaultBufferBytes = 4096

// Batch issues one draw call per request through a single shared vertex
// buffer. It owns two programs: one for flat-colored and textured
// geometry and one for signed distance field glyphs.
type Batch struct {
	r  Renderer
	lg *log.Logger

	program, sdfProgram uint32
	vbuf                uint32
	capacity            int
	initialCapacity     int

	initialized bool
	initErr     error
}

func NewBatch(r Renderer, initialBytes int, lg *log.Logger) *Batch {
	if initialBytes <= 0 {
		initialBytes = DefaultBufferBytes
	}
	return &Batch{r: r, lg: lg, initialCapacity: initialBytes}
}

// Initialize compiles the shader programs and allocates the vertex
// buffer. Calling it again after it has succeeded does nothing; if it
// fails, the error is returned and all draws are no-ops.
func (b *Batch) Initialize() error {
	if b.initialized {
		return nil
	}
	if b.r == nil {
		b.initErr = ErrNotInitialized
		return b.initErr
	}

	prog, err := b.r.CreateProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		b.initErr = fmt.Errorf("batch program: %w", err)
		b.lg.Errorf("%v", b.initErr)
		return b.initErr
	}

	// SDF text is optional; without it glyphs are drawn from coverage
	// bitmaps with the regular program.
	sdfProg, err := b.r.CreateProgram(vertexShaderSource, sdfFragmentShaderSource)
	if err != nil {
		b.lg.Errorf("SDF program: %v", err)
		sdfProg = 0
	}

	vbuf, err := b.r.CreateVertexBuffer(b.initialCapacity)
	if err != nil {
		b.r.DeleteProgram(prog)
		if sdfProg != 0 {
			b.r.DeleteProgram(sdfProg)
		}
		b.initErr = fmt.Errorf("batch vertex buffer: %w", err)
		b.lg.Errorf("%v", b.initErr)
		return b.initErr
	}

	b.r.UseProgram(prog)
	b.r.SetUniformInt(prog, "uTex", 0)
	b.r.SetUniformInt(prog, "uUseTex", 0)
	if sdfProg != 0 {
		b.r.UseProgram(sdfProg)
		b.r.SetUniformInt(sdfProg, "uTex", 0)
	}

	b.program, b.sdfProgram, b.vbuf = prog, sdfProg, vbuf
	b.capacity = b.initialCapacity
	b.initialized, b.initErr = true, nil

	b.lg.Info("Batch renderer initialized", "buffer_bytes", b.capacity, "sdf", sdfProg != 0)
	return nil
}

// Shutdown releases the programs and vertex buffer; the Batch may be
// initialized again afterward.
func (b *Batch) Shutdown() {
	if !b.initialized {
		return
	}
	b.r.DeleteVertexBuffer(b.vbuf)
	b.r.DeleteProgram(b.program)
	if b.sdfProgram != 0 {
		b.r.DeleteProgram(b.sdfProgram)
	}
	b.program, b.sdfProgram, b.vbuf, b.capacity = 0, 0, 0, 0
	b.initialized = false
}

func (b *Batch) Initialized() bool { return b.initialized }

// SDFAvailable reports whether the distance field program linked.
func (b *Batch) SDFAvailable() bool { return b.initialized && b.sdfProgram != 0 }

// Capacity returns the current size of the vertex buffer in bytes.
func (b *Batch) Capacity() int { return b.capacity }

// Draw submits verts with a single draw call. If tex is non-zero, it is
// bound to texture unit 0 and standard alpha blending is enabled; the SDF
// program is used if sdf is set and a texture is given. Program, buffer,
// texture and blend state are left as set.
func (b *Batch) Draw(t Topology, verts []Vertex, tex uint32, sdf bool) {
	b.draw(t, verts, tex, sdf, nil)
}

// DrawBlended is like Draw but always enables blending with the given
// function.
func (b *Batch) DrawBlended(t Topology, verts []Vertex, tex uint32, sdf bool, blend BlendFunc) {
	b.draw(t, verts, tex, sdf, &blend)
}

func (b *Batch) draw(t Topology, verts []Vertex, tex uint32, sdf bool, blend *BlendFunc) {
	if len(verts) == 0 || !b.initialized {
		return
	}

	prog := b.program
	if sdf && tex != 0 && b.sdfProgram != 0 {
		prog = b.sdfProgram
	}
	b.r.UseProgram(prog)
	b.r.BindVertexBuffer(b.vbuf)

	if n := len(verts) * VertexSize; n > b.capacity {
		b.capacity = growFor(b.capacity, n)
		b.r.AllocateVertexBuffer(b.vbuf, verts, b.capacity)
		b.lg.Debugf("Grew vertex buffer to %d bytes", b.capacity)
	} else {
		b.r.UpdateVertexBuffer(b.vbuf, verts)
	}

	if prog == b.program {
		b.r.SetUniformInt(prog, "uUseTex", int32(min(tex, 1)))
	}
	if tex != 0 {
		b.r.BindTexture(tex)
	}

	if blend != nil {
		b.r.SetBlend(*blend)
	} else if tex != 0 {
		b.r.SetBlend(StandardBlend)
	}

	b.r.DrawArrays(t, 0, len(verts))
}

// growFor returns the new capacity for a buffer that must hold n bytes,
// at least doubling the current one.
func growFor(capacity, n int) int {
	sz := max(2*capacity, 1024)
	for sz < n {
		sz *= 2
	}
	return sz
}
