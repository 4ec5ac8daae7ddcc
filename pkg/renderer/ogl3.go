// pkg/renderer/ogl3.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/nightcore/gl2d/pkg/log"
	"github.com/nightcore/gl2d/pkg/util"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Also available as a global for the GL enum translation helpers.
var lg *log.Logger

type OpenGL3Renderer struct {
	lg              *log.Logger
	vendor, device  string
	maxTextureSize  int
	createdTextures map[uint32]int
	buffers         map[uint32]*glBuffer
	nextBuffer      uint32
	programs        map[uint32]map[string]int32
	stats           RendererStats
}

// glBuffer pairs a vertex buffer object with the vertex array object
// that records its attribute layout.
type glBuffer struct {
	vao, vbo uint32
	capacity int
}

// NewOpenGL3Renderer initializes the OpenGL function pointers for the
// current context, which must be a 3.3 core profile context.
func NewOpenGL3Renderer(l *log.Logger) (*OpenGL3Renderer, error) {
	lg = l

	lg.Info("Starting OpenGL3Renderer initialization")
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &OpenGL3Renderer{
		lg:              lg,
		vendor:          gl.GoStr(gl.GetString(gl.VENDOR)),
		device:          gl.GoStr(gl.GetString(gl.RENDERER)),
		createdTextures: make(map[uint32]int),
		buffers:         make(map[uint32]*glBuffer),
		programs:        make(map[uint32]map[string]int32),
	}
	var maxTex int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTex)
	r.maxTextureSize = int(maxTex)

	lg.Infof("OpenGL vendor %s renderer %s version %s, max texture size %d", r.vendor, r.device,
		gl.GoStr(gl.GetString(gl.VERSION)), r.maxTextureSize)
	lg.Info("Finished OpenGL3Renderer initialization")

	return r, nil
}

func (ogl3 *OpenGL3Renderer) VendorInfo() (string, string) {
	return ogl3.vendor, ogl3.device
}

func (ogl3 *OpenGL3Renderer) MaxTextureSize() int {
	return ogl3.maxTextureSize
}

func (ogl3 *OpenGL3Renderer) Dispose() {
	for texid := range ogl3.createdTextures {
		gl.DeleteTextures(1, &texid)
	}
	clear(ogl3.createdTextures)
	for id := range ogl3.buffers {
		ogl3.DeleteVertexBuffer(id)
	}
	for prog := range ogl3.programs {
		gl.DeleteProgram(prog)
	}
	clear(ogl3.programs)
}

///////////////////////////////////////////////////////////////////////////
// Programs

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		info := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(info))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader: %s", strings.TrimRight(info, "\x00"))
	}
	return shader, nil
}

func (ogl3 *OpenGL3Renderer) CreateProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)

		info := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(info))
		gl.DeleteProgram(prog)

		return 0, fmt.Errorf("failed to link program: %s", strings.TrimRight(info, "\x00"))
	}

	ogl3.programs[prog] = make(map[string]int32)
	ogl3.stats.nPrograms++
	ogl3.lg.Debugf("Linked shader program %d", prog)
	return prog, nil
}

func (ogl3 *OpenGL3Renderer) DeleteProgram(id uint32) {
	if _, ok := ogl3.programs[id]; !ok {
		return
	}
	gl.DeleteProgram(id)
	delete(ogl3.programs, id)
	ogl3.stats.nPrograms--
}

func (ogl3 *OpenGL3Renderer) UseProgram(id uint32) {
	gl.UseProgram(id)
}

func (ogl3 *OpenGL3Renderer) SetUniformInt(program uint32, name string, v int32) {
	locs, ok := ogl3.programs[program]
	if !ok {
		ogl3.lg.Errorf("%d: unknown program for uniform %s", program, name)
		return
	}
	loc, ok := locs[name]
	if !ok {
		loc = gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		locs[name] = loc
	}
	if loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

///////////////////////////////////////////////////////////////////////////
// Vertex buffers

func (ogl3 *OpenGL3Renderer) CreateVertexBuffer(capacity int) (uint32, error) {
	b := &glBuffer{capacity: capacity}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	if b.vao == 0 || b.vbo == 0 {
		return 0, fmt.Errorf("unable to allocate vertex buffer")
	}

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, capacity, nil, gl.DYNAMIC_DRAW)

	stride := int32(VertexSize)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, gl.PtrOffset(4*4))

	ogl3.nextBuffer++
	ogl3.buffers[ogl3.nextBuffer] = b
	ogl3.stats.nBuffers++
	ogl3.stats.bufferBytes += capacity

	return ogl3.nextBuffer, nil
}

func (ogl3 *OpenGL3Renderer) BindVertexBuffer(id uint32) {
	if b, ok := ogl3.buffers[id]; ok {
		gl.BindVertexArray(b.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	} else {
		ogl3.lg.Errorf("%d: unknown vertex buffer", id)
	}
}

func (ogl3 *OpenGL3Renderer) AllocateVertexBuffer(id uint32, verts []Vertex, capacity int) {
	b, ok := ogl3.buffers[id]
	if !ok {
		ogl3.lg.Errorf("%d: unknown vertex buffer", id)
		return
	}

	gl.BufferData(gl.ARRAY_BUFFER, capacity, nil, gl.DYNAMIC_DRAW)
	if len(verts) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*VertexSize, unsafe.Pointer(&verts[0]))
	}

	ogl3.stats.bufferBytes += capacity - b.capacity
	ogl3.stats.nBufferAllocs++
	b.capacity = capacity
}

func (ogl3 *OpenGL3Renderer) UpdateVertexBuffer(id uint32, verts []Vertex) {
	if len(verts) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*VertexSize, unsafe.Pointer(&verts[0]))
		ogl3.stats.nUploads++
	}
}

func (ogl3 *OpenGL3Renderer) DeleteVertexBuffer(id uint32) {
	b, ok := ogl3.buffers[id]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	delete(ogl3.buffers, id)
	ogl3.stats.nBuffers--
	ogl3.stats.bufferBytes -= b.capacity
}

///////////////////////////////////////////////////////////////////////////
// Textures

func (ogl3 *OpenGL3Renderer) createdTexture(texid uint32, bytes int) {
	ogl3.createdTextures[texid] = bytes

	reduce := func(id uint32, bytes int, total int) int { return total + bytes }
	total := util.ReduceMap[uint32, int, int](ogl3.createdTextures, reduce, 0)
	ogl3.stats.nTextures = len(ogl3.createdTextures)
	ogl3.stats.textureBytes = total

	ogl3.lg.Debugf("Created tex id %d: %d bytes -> %.2f MiB of textures total", texid, bytes,
		float32(total)/(1024*1024))
}

func (ogl3 *OpenGL3Renderer) CreateTexture(spec TextureSpec) (uint32, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return 0, fmt.Errorf("%dx%d: invalid texture size", spec.Width, spec.Height)
	}
	if len(spec.Pix) < spec.bytes() {
		return 0, fmt.Errorf("%d bytes of pixels provided for %dx%d texture", len(spec.Pix),
			spec.Width, spec.Height)
	}

	var texid uint32
	gl.GenTextures(1, &texid)
	if texid == 0 {
		return 0, fmt.Errorf("unable to allocate texture")
	}

	var lastTexture int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)

	gl.BindTexture(gl.TEXTURE_2D, texid)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	w, h := int32(spec.Width), int32(spec.Height)
	if spec.Format == TextureR8 {
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, w, h, 0, gl.RED, gl.UNSIGNED_BYTE, unsafe.Pointer(&spec.Pix[0]))
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

		swizzle := []int32{gl.ONE, gl.ONE, gl.ONE, gl.RED}
		gl.TexParameteriv(gl.TEXTURE_2D, gl.TEXTURE_SWIZZLE_RGBA, &swizzle[0])
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&spec.Pix[0]))
	}

	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))

	ogl3.createdTexture(texid, spec.bytes())
	return texid, nil
}

func (ogl3 *OpenGL3Renderer) DestroyTexture(texid uint32) {
	if _, ok := ogl3.createdTextures[texid]; !ok {
		ogl3.lg.Warnf("%d: destroying unknown texture", texid)
		return
	}
	gl.DeleteTextures(1, &texid)
	delete(ogl3.createdTextures, texid)

	ogl3.stats.nTextures = len(ogl3.createdTextures)
	ogl3.stats.textureBytes = util.ReduceMap(ogl3.createdTextures,
		func(id uint32, bytes int, total int) int { return total + bytes }, 0)
}

func (ogl3 *OpenGL3Renderer) BindTexture(texid uint32) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texid)
}

///////////////////////////////////////////////////////////////////////////
// State and drawing

func glBlendFactor(f BlendFactor) uint32 {
	switch f {
	case BlendZero:
		return gl.ZERO
	case BlendOne:
		return gl.ONE
	case BlendSrcAlpha:
		return gl.SRC_ALPHA
	case BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case BlendDstColor:
		return gl.DST_COLOR
	case BlendOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case BlendSrcColor:
		return gl.SRC_COLOR
	case BlendDstAlpha:
		return gl.DST_ALPHA
	case BlendOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case BlendOneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	default:
		lg.Errorf("%d: unhandled blend factor", f)
		return gl.ONE
	}
}

func (ogl3 *OpenGL3Renderer) SetBlend(f BlendFunc) {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(glBlendFactor(f.Src), glBlendFactor(f.Dst))
	ogl3.stats.nBlendChanges++
}

func (ogl3 *OpenGL3Renderer) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (ogl3 *OpenGL3Renderer) Clear(c RGBA) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func glTopology(t Topology) uint32 {
	switch t {
	case Triangles:
		return gl.TRIANGLES
	case Lines:
		return gl.LINES
	case LineLoop:
		return gl.LINE_LOOP
	case LineStrip:
		return gl.LINE_STRIP
	default:
		lg.Errorf("%d: unhandled topology", t)
		return gl.TRIANGLES
	}
}

func (ogl3 *OpenGL3Renderer) DrawArrays(t Topology, first, count int) {
	gl.DrawArrays(glTopology(t), int32(first), int32(count))
	ogl3.stats.accumulate(t, count)
}

func (ogl3 *OpenGL3Renderer) Stats() RendererStats {
	s := ogl3.stats
	ogl3.stats.nDrawCalls = 0
	ogl3.stats.nVertices = 0
	ogl3.stats.nLines = 0
	ogl3.stats.nTriangles = 0
	ogl3.stats.nBufferAllocs = 0
	ogl3.stats.nUploads = 0
	ogl3.stats.nBlendChanges = 0
	return s
}
