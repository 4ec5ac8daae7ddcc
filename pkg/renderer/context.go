// pkg/renderer/context.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"io/fs"

	"github.com/nightcore/gl2d/pkg/log"
)

// Options configures a Context.
type Options struct {
	// Width and Height give the logical resolution that pixel coordinates
	// for shapes and images are expressed in.
	Width, Height int
	// VirtualWidth and VirtualHeight give the resolution used to lay out
	// text; if zero, the logical resolution is used.
	VirtualWidth, VirtualHeight int
	// InitialBufferBytes is the starting size of the shared vertex
	// buffer; DefaultBufferBytes is used if it's zero.
	InitialBufferBytes int
	// ForceSDF, if non-nil, overrides the GPU-based choice of whether
	// glyphs are rendered from signed distance fields.
	ForceSDF *bool
	// Assets is the file system that fonts and images are loaded from.
	Assets fs.FS
	// FontLoader creates font faces; LoadOpenTypeFace is used if nil.
	FontLoader        FontLoader
	TextSizeCacheSize int
}

// renderState is shared by a Context and all of the contexts derived
// from it.
type renderState struct {
	r     Renderer
	batch *Batch
	text  *TextEngine
	lg    *log.Logger

	assets             fs.FS
	width, height      int
	virtualW, virtualH int
	viewport           Viewport
	windowW, windowH   int
}

// Context is passed to all drawing calls. It carries the ambient color
// used by shapes and text along with the GPU state shared by every
// context derived from it with WithColor.
type Context struct {
	*renderState
	color RGBA
}

func NewContext(r Renderer, opts Options, lg *log.Logger) *Context {
	if opts.Width <= 0 || opts.Height <= 0 {
		lg.Warnf("%dx%d: invalid logical resolution; using 1024x768", opts.Width, opts.Height)
		opts.Width, opts.Height = 1024, 768
	}
	if opts.VirtualWidth <= 0 || opts.VirtualHeight <= 0 {
		opts.VirtualWidth, opts.VirtualHeight = opts.Width, opts.Height
	}

	batch := NewBatch(r, opts.InitialBufferBytes, lg)
	return &Context{
		renderState: &renderState{
			r:        r,
			batch:    batch,
			text:     NewTextEngine(r, batch, opts, lg),
			lg:       lg,
			assets:   opts.Assets,
			width:    opts.Width,
			height:   opts.Height,
			virtualW: opts.VirtualWidth,
			virtualH: opts.VirtualHeight,
			viewport: Viewport{Width: opts.Width, Height: opts.Height},
			windowW:  opts.Width,
			windowH:  opts.Height,
		},
		color: White,
	}
}

// Initialize prepares the batch renderer; it must be called with the
// graphics context current before anything is drawn.
func (ctx *Context) Initialize() error {
	if err := ctx.batch.Initialize(); err != nil {
		ctx.lg.Errorf("Renderer initialization failed: %v", err)
		return err
	}
	return nil
}

// Shutdown releases all fonts and the batch renderer's GPU objects.
// Images are owned by the caller and must be unloaded separately.
func (ctx *Context) Shutdown() {
	ctx.text.UnloadAll()
	ctx.batch.Shutdown()
	ctx.lg.Info("Renderer shut down", "stats", ctx.r.Stats())
}

func (ctx *Context) Renderer() Renderer     { return ctx.r }
func (ctx *Context) Batch() *Batch          { return ctx.batch }
func (ctx *Context) Text() *TextEngine      { return ctx.text }
func (ctx *Context) Assets() fs.FS          { return ctx.assets }
func (ctx *Context) Logger() *log.Logger    { return ctx.lg }
func (ctx *Context) Viewport() Viewport     { return ctx.viewport }
func (ctx *Context) Stats() RendererStats   { return ctx.r.Stats() }
func (ctx *Context) Resolution() (int, int) { return ctx.width, ctx.height }

func (ctx *Context) VirtualResolution() (int, int) {
	return ctx.virtualW, ctx.virtualH
}

// SetResolution changes the logical resolution used for shapes and
// images.
func (ctx *Context) SetResolution(w, h int) {
	if w <= 0 || h <= 0 {
		ctx.lg.Warnf("%dx%d: ignoring invalid resolution", w, h)
		return
	}
	ctx.width, ctx.height = w, h
}

// SetVirtualResolution changes the resolution used to lay out text.
func (ctx *Context) SetVirtualResolution(w, h int) {
	if w <= 0 || h <= 0 {
		ctx.lg.Warnf("%dx%d: ignoring invalid virtual resolution", w, h)
		return
	}
	ctx.virtualW, ctx.virtualH = w, h
}

// SetViewport sets the region of the window that device coordinates
// map to; windowW and windowH give the full window size.
func (ctx *Context) SetViewport(x, y, w, h, windowW, windowH int) {
	ctx.viewport = Viewport{X: x, Y: y, Width: w, Height: h}
	ctx.windowW, ctx.windowH = windowW, windowH
	ctx.r.Viewport(x, y, w, h)
}

// WithColor returns a context that shares all GPU state with ctx but
// draws with the given color.
func (ctx *Context) WithColor(c RGBA) *Context {
	return &Context{renderState: ctx.renderState, color: c}
}

func (ctx *Context) SetColor(r, g, b, a float32) {
	ctx.color = RGBA{R: r, G: g, B: b, A: a}
}

func (ctx *Context) SetColorRGBA(c RGBA) {
	ctx.color = c
}

func (ctx *Context) Color() RGBA {
	return ctx.color
}

// Print draws text in the current font; see TextEngine.Print.
func (ctx *Context) Print(text string, x, y int) {
	ctx.text.Print(ctx, text, x, y)
}

func (ctx *Context) PrintEx(text string, x, y int, rotation, scaleX, scaleY, originX, originY float32) {
	ctx.text.PrintEx(ctx, text, x, y, rotation, scaleX, scaleY, originX, originY)
}

func (ctx *Context) TextSize(text string) (int, int) {
	return ctx.text.TextSize(text)
}

// BeginFrame clears the window to dark gray, fills the largest region
// with the aspect ratio of the logical resolution with black, and leaves
// the viewport set to that region, which it returns.
func (ctx *Context) BeginFrame(windowW, windowH int) Viewport {
	ctx.SetViewport(0, 0, windowW, windowH, windowW, windowH)
	ctx.r.Clear(RGBA{0.1, 0.1, 0.1, 1})

	vp := CalculateViewport(windowW, windowH, ctx.width, ctx.height)
	ctx.SetViewport(vp.X, vp.Y, vp.Width, vp.Height, windowW, windowH)

	vb := GetVerticesDrawBuilder(ctx.width, ctx.height)
	defer ReturnVerticesDrawBuilder(vb)
	w, h := float32(ctx.width), float32(ctx.height)
	vb.AddQuad([2]float32{0, 0}, [2]float32{w, 0}, [2]float32{w, h}, [2]float32{0, h}, Black)
	vb.Draw(ctx.batch, Triangles)

	return vp
}
