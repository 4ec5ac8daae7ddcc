// pkg/renderer/font.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"image"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FontIdentifier is used for looking up fonts; glyphs are cached per
// identifier so reloading a name at a different size never reuses
// glyphs rasterized at the old size.
type FontIdentifier struct {
	Name string
	Size int
}

func (id FontIdentifier) String() string {
	return id.Name + "@" + strconv.Itoa(id.Size)
}

// Glyph holds what's needed to draw one rasterized codepoint. Metrics
// are in pixels; BearingY is the distance from the baseline up to the
// top of the bitmap.
type Glyph struct {
	TexId              uint32
	Width, Height      int
	BearingX, BearingY int
	Advance            int
	// SDF is set if the texture holds a distance field rather than a
	// coverage bitmap.
	SDF bool
}

// Visible reports whether the glyph has a texture to draw; spaces and
// missing glyphs don't.
func (g *Glyph) Visible() bool {
	return g.TexId != 0
}

// Each loaded (font,size) combination is represented by (surprise) a Font.
type Font struct {
	// Glyphs for the commonly-used ASCII range can be looked up using a
	// directly-mapped array, for efficiency.
	lowGlyphs [128]*Glyph
	// The remaining glyphs are stored in a map.
	glyphs map[rune]*Glyph
	Size   int
	Id     FontIdentifier
	face   FontFace
}

func MakeFont(id FontIdentifier, face FontFace) *Font {
	return &Font{
		glyphs: make(map[rune]*Glyph),
		Size:   id.Size,
		Id:     id,
		face:   face,
	}
}

func (f *Font) AddGlyph(ch rune, g *Glyph) {
	if ch >= 0 && int(ch) < len(f.lowGlyphs) {
		f.lowGlyphs[ch] = g
	} else {
		f.glyphs[ch] = g
	}
}

// LookupGlyph returns the cached Glyph for the specified rune or nil if
// it hasn't been rasterized yet.
func (f *Font) LookupGlyph(ch rune) *Glyph {
	if ch >= 0 && int(ch) < len(f.lowGlyphs) {
		return f.lowGlyphs[ch]
	}
	return f.glyphs[ch]
}

// NumGlyphs returns the number of cached glyphs.
func (f *Font) NumGlyphs() int {
	n := len(f.glyphs)
	for _, g := range f.lowGlyphs {
		if g != nil {
			n++
		}
	}
	return n
}

// textures returns the ids of all of the glyph textures.
func (f *Font) textures() []uint32 {
	var ids []uint32
	add := func(g *Glyph) {
		if g != nil && g.TexId != 0 {
			ids = append(ids, g.TexId)
		}
	}
	for _, g := range f.lowGlyphs {
		add(g)
	}
	for _, g := range f.glyphs {
		add(g)
	}
	return ids
}

///////////////////////////////////////////////////////////////////////////
// FontFace

// GlyphBitmap is a rasterized glyph coverage mask, Width*Height bytes,
// along with its placement relative to the pen position on the baseline.
type GlyphBitmap struct {
	Width, Height      int
	Pix                []byte
	BearingX, BearingY int
	Advance            int
}

// FontFace provides the glyphs of a font at a single pixel size.
type FontFace interface {
	// HasGlyph reports whether the font has an outline for the rune.
	HasGlyph(r rune) bool
	// Rasterize returns the glyph's coverage mask and metrics.
	Rasterize(r rune) (GlyphBitmap, error)
	Close() error
}

// FontLoader creates a FontFace from font file contents and a pixel size.
type FontLoader func(data []byte, size int) (FontFace, error)

type openTypeFace struct {
	font *sfnt.Font
	face font.Face
	buf  sfnt.Buffer
}

// LoadOpenTypeFace is the default FontLoader; it handles TrueType and
// OpenType fonts.
func LoadOpenTypeFace(data []byte, size int) (FontFace, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	// At 72 DPI, points are pixels.
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %d pixel face: %w", size, err)
	}
	return &openTypeFace{font: f, face: face}, nil
}

func (o *openTypeFace) HasGlyph(r rune) bool {
	idx, err := o.font.GlyphIndex(&o.buf, r)
	return err == nil && idx != 0
}

func (o *openTypeFace) Rasterize(r rune) (GlyphBitmap, error) {
	dr, mask, maskp, advance, ok := o.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return GlyphBitmap{}, fmt.Errorf("%q: %w", r, ErrNoGlyph)
	}

	gb := GlyphBitmap{
		Width:    dr.Dx(),
		Height:   dr.Dy(),
		BearingX: dr.Min.X,
		BearingY: -dr.Min.Y,
		Advance:  advance.Round(),
	}
	if gb.Width <= 0 || gb.Height <= 0 {
		gb.Width, gb.Height = 0, 0
		return gb, nil
	}

	// The mask is reused by the face, so copy it out.
	gb.Pix = make([]byte, gb.Width*gb.Height)
	if alpha, ok := mask.(*image.Alpha); ok {
		for y := 0; y < gb.Height; y++ {
			off := alpha.PixOffset(maskp.X, maskp.Y+y)
			copy(gb.Pix[y*gb.Width:(y+1)*gb.Width], alpha.Pix[off:off+gb.Width])
		}
	} else {
		for y := 0; y < gb.Height; y++ {
			for x := 0; x < gb.Width; x++ {
				_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
				gb.Pix[y*gb.Width+x] = uint8(a >> 8)
			}
		}
	}
	return gb, nil
}

func (o *openTypeFace) Close() error {
	return o.face.Close()
}
