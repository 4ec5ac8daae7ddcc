// pkg/renderer/text.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"io/fs"
	"unicode/utf8"

	"github.com/nightcore/gl2d/pkg/log"
	"github.com/nightcore/gl2d/pkg/math"
	"github.com/nightcore/gl2d/pkg/util"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultTextSizeCacheSize is the number of TextSize results remembered.
const DefaultTextSizeCacheSize = 256

type textSizeKey struct {
	font FontIdentifier
	text string
}

// TextEngine manages the loaded fonts and their glyph caches and lays
// out and draws single lines of text.
type TextEngine struct {
	r      Renderer
	batch  *Batch
	assets fs.FS
	loader FontLoader
	lg     *log.Logger

	fonts   map[string]*Font
	current string

	// The SDF decision is made once, when the first font is loaded.
	sdfDecided bool
	useSDF     bool
	forceSDF   *bool

	rasterizations int
	sizes          *lru.Cache[textSizeKey, [2]int]
}

func NewTextEngine(r Renderer, batch *Batch, opts Options, lg *log.Logger) *TextEngine {
	loader := opts.FontLoader
	if loader == nil {
		loader = LoadOpenTypeFace
	}
	n := opts.TextSizeCacheSize
	if n <= 0 {
		n = DefaultTextSizeCacheSize
	}
	sizes, err := lru.New[textSizeKey, [2]int](n)
	if err != nil {
		// Only possible with a non-positive size.
		lg.Errorf("text size cache: %v", err)
	}

	return &TextEngine{
		r:        r,
		batch:    batch,
		assets:   opts.Assets,
		loader:   loader,
		lg:       lg,
		fonts:    make(map[string]*Font),
		forceSDF: opts.ForceSDF,
		sizes:    sizes,
	}
}

// LoadFont loads the font file at path, resolved in the engine's assets
// file system, at the given pixel size and registers it as name. A font
// already registered under name is replaced, though only once the new
// one has loaded successfully. The first font loaded becomes the current
// font.
func (te *TextEngine) LoadFont(name, path string, size int) error {
	if te.assets == nil {
		err := fmt.Errorf("%s: no assets file system for font %q", path, name)
		te.lg.Errorf("%v", err)
		return err
	}
	data, err := util.LoadResourceBytes(te.assets, path)
	if err != nil {
		err = fmt.Errorf("loading font %q: %w", name, err)
		te.lg.Errorf("%v", err)
		return err
	}
	return te.LoadFontBytes(name, data, size)
}

// LoadFontBytes is like LoadFont but takes the font file contents.
func (te *TextEngine) LoadFontBytes(name string, data []byte, size int) error {
	if size <= 0 {
		err := fmt.Errorf("font %q: invalid pixel size %d", name, size)
		te.lg.Errorf("%v", err)
		return err
	}

	face, err := te.loader(data, size)
	if err != nil {
		err = fmt.Errorf("font %q: %w", name, err)
		te.lg.Errorf("%v", err)
		return err
	}

	if !te.sdfDecided {
		te.decideSDF()
	}

	te.UnloadFont(name)
	id := FontIdentifier{Name: name, Size: size}
	te.fonts[name] = MakeFont(id, face)
	if te.current == "" {
		te.current = name
	}

	te.lg.Info("Loaded font", "font", id.String(), "sdf", te.sdfEnabled())
	return nil
}

func (te *TextEngine) decideSDF() {
	vendor, device := te.r.VendorInfo()
	if te.forceSDF != nil {
		te.useSDF = *te.forceSDF
	} else {
		te.useSDF = UseSDFForGPU(vendor, device)
	}
	te.sdfDecided = true
	te.lg.Info("Text rendering mode", "vendor", vendor, "renderer", device, "sdf", te.useSDF,
		"forced", te.forceSDF != nil)
}

func (te *TextEngine) sdfEnabled() bool {
	return te.useSDF && te.batch.SDFAvailable()
}

// UseSDF reports whether glyphs are rasterized as distance fields. It is
// false until the first font has been loaded.
func (te *TextEngine) UseSDF() bool {
	return te.sdfDecided && te.sdfEnabled()
}

// SetFont makes the named font current for subsequent drawing.
func (te *TextEngine) SetFont(name string) error {
	if _, ok := te.fonts[name]; !ok {
		te.lg.Errorf("%s: font not found", name)
		return fmt.Errorf("%s: %w", name, ErrFontNotFound)
	}
	te.current = name
	return nil
}

// UnloadFont releases the named font along with its glyph textures. The
// current font name is kept; drawing is a no-op until a font with that
// name is loaded again or another font is selected.
func (te *TextEngine) UnloadFont(name string) {
	f, ok := te.fonts[name]
	if !ok {
		return
	}
	for _, id := range f.textures() {
		te.r.DestroyTexture(id)
	}
	if err := f.face.Close(); err != nil {
		te.lg.Warnf("%s: closing font: %v", f.Id, err)
	}
	delete(te.fonts, name)
	te.purgeSizes()
	te.lg.Debugf("Unloaded font %s", f.Id)
}

// UnloadAll releases every font.
func (te *TextEngine) UnloadAll() {
	for _, name := range util.SortedMapKeys(te.fonts) {
		te.UnloadFont(name)
	}
	te.current = ""
}

func (te *TextEngine) purgeSizes() {
	if te.sizes != nil {
		te.sizes.Purge()
	}
}

// CurrentFont returns the current font, or nil if it isn't loaded.
func (te *TextEngine) CurrentFont() *Font {
	return te.fonts[te.current]
}

func (te *TextEngine) Font(name string) *Font {
	return te.fonts[name]
}

// FontNames returns the names of the loaded fonts in sorted order.
func (te *TextEngine) FontNames() []string {
	return util.SortedMapKeys(te.fonts)
}

// RasterizeCount returns the number of glyphs rasterized so far.
func (te *TextEngine) RasterizeCount() int {
	return te.rasterizations
}

// Glyph returns the glyph for r in the current font, rasterizing it if
// needed, or nil if no font is current.
func (te *TextEngine) Glyph(r rune) *Glyph {
	f := te.CurrentFont()
	if f == nil {
		return nil
	}
	return te.loadGlyph(f, r)
}

func (te *TextEngine) loadGlyph(f *Font, ch rune) *Glyph {
	if g := f.LookupGlyph(ch); g != nil {
		return g
	}

	// Missing and failed glyphs are cached as empty placeholders so that
	// they are only attempted once.
	g := &Glyph{}
	defer f.AddGlyph(ch, g)

	if !f.face.HasGlyph(ch) {
		te.lg.Warnf("%s: no glyph for codepoint U+%04X", f.Id, ch)
		return g
	}

	te.rasterizations++
	gb, err := f.face.Rasterize(ch)
	if err != nil {
		te.lg.Warnf("%s: U+%04X: %v", f.Id, ch, err)
		return g
	}

	g.Advance = gb.Advance
	g.Width, g.Height = gb.Width, gb.Height
	g.BearingX, g.BearingY = gb.BearingX, gb.BearingY
	if gb.Width == 0 || gb.Height == 0 {
		return g
	}

	spec := TextureSpec{Width: gb.Width, Height: gb.Height, Format: TextureR8, Pix: gb.Pix}
	if te.sdfEnabled() {
		if pix, w, h, err := GenerateSDF(gb.Pix, gb.Width, gb.Height, SDFSpread); err == nil {
			spec = TextureSpec{Width: w, Height: h, Format: TextureR8, Pix: pix}
			g.Width, g.Height = w, h
			g.BearingX -= SDFSpread
			g.BearingY += SDFSpread
			g.SDF = true
		} else {
			te.lg.Debugf("%s: U+%04X: %v; using coverage bitmap", f.Id, ch, err)
		}
	}

	if id, err := te.r.CreateTexture(spec); err != nil {
		te.lg.Errorf("%s: U+%04X: glyph texture: %v", f.Id, ch, err)
	} else {
		g.TexId = id
	}
	return g
}

// inkHeight returns the height of the glyph's coverage, excluding
// distance field padding.
func (g *Glyph) inkHeight() int {
	if g.SDF {
		return g.Height - 2*SDFSpread
	}
	return g.Height
}

// codepoints decodes UTF-8, skipping each byte that doesn't start a
// valid encoding.
func codepoints(s string) []rune {
	cps := make([]rune, 0, len(s))
	for len(s) > 0 {
		r, n := utf8.DecodeRuneInString(s)
		if r != utf8.RuneError || n > 1 {
			cps = append(cps, r)
		}
		s = s[n:]
	}
	return cps
}

// TextSize returns the width and height in pixels of text in the
// current font: the sum of the glyph advances and the tallest glyph.
// Newlines are not interpreted.
func (te *TextEngine) TextSize(text string) (int, int) {
	f := te.CurrentFont()
	if f == nil {
		return 0, 0
	}

	key := textSizeKey{font: f.Id, text: text}
	if te.sizes != nil {
		if sz, ok := te.sizes.Get(key); ok {
			return sz[0], sz[1]
		}
	}

	w, h := 0, 0
	for _, cp := range codepoints(text) {
		g := te.loadGlyph(f, cp)
		w += g.Advance
		h = max(h, g.inkHeight())
	}

	if te.sizes != nil {
		te.sizes.Add(key, [2]int{w, h})
	}
	return w, h
}

// Print draws text with its baseline starting at (x, y) in the current
// font and the context's color.
func (te *TextEngine) Print(ctx *Context, text string, x, y int) {
	te.PrintEx(ctx, text, x, y, 0, 1, 1, 0, 0)
}

// PrintEx draws text with rotation (in degrees, clockwise) and scale.
// Each glyph quad is rotated about the pivot (x+originX, y+originY);
// the pen itself advances horizontally.
func (te *TextEngine) PrintEx(ctx *Context, text string, x, y int, rotation, scaleX, scaleY, originX, originY float32) {
	f := te.CurrentFont()
	if f == nil || !te.batch.Initialized() {
		return
	}

	vw, vh := ctx.VirtualResolution()
	color := ctx.Color()
	pivot := [2]float32{float32(x) + originX, float32(y) + originY}

	vb := GetVerticesDrawBuilder(vw, vh)
	defer ReturnVerticesDrawBuilder(vb)

	penX, baseline := float32(x), float32(y)
	for _, cp := range codepoints(text) {
		g := te.loadGlyph(f, cp)

		if g.Visible() {
			x0 := penX + float32(g.BearingX)*scaleX
			y0 := baseline - float32(g.BearingY)*scaleY
			x1 := x0 + float32(g.Width)*scaleX
			y1 := y0 + float32(g.Height)*scaleY

			p := [4][2]float32{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
			if rotation != 0 {
				for i := range p {
					p[i] = math.RotateAbout(p[i], pivot, rotation)
				}
			}

			vb.Reset()
			vb.AddTexturedQuad(p, [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, color)
			te.batch.Draw(Triangles, vb.Vertices(), g.TexId, g.SDF)
		}

		penX += float32(g.Advance) * scaleX
	}
}
