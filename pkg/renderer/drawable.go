// pkg/renderer/drawable.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/nightcore/gl2d/pkg/math"
)

type DrawableKind int

const (
	DrawImage DrawableKind = iota
	DrawText
	DrawShape
)

func (k DrawableKind) String() string {
	names := [...]string{"Image", "Text", "Shape"}
	if k < 0 || int(k) >= len(names) {
		return fmt.Sprintf("DrawableKind(%d)", k)
	}
	return names[k]
}

type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeRoundedRectangle
	ShapeCircle
	ShapeLine
	ShapePolygon
	ShapeGradientHoriz
	ShapeGradientVert
)

// Shape describes one of the Context's shape drawing calls. Its position
// and size come from the Drawable's Transform: rectangles span (X, Y) to
// (X+Width, Y+Height), circles are centered at (X, Y), lines run from
// (X, Y) to (X+Width, Y+Height), and polygon Points are relative to
// (X, Y).
type Shape struct {
	Kind      ShapeKind
	Filled    bool
	Radius    float32
	Segments  int
	Thickness float32
	Points    [][2]float32
	// Stops holds the gradient colors, four values per stop.
	Stops []float32
}

// Transform positions a Drawable. Width and Height of zero use the
// image's size; zero scales are treated as one.
type Transform struct {
	X, Y             float32
	Width, Height    float32
	Rotation         float32
	ScaleX, ScaleY   float32
	OriginX, OriginY float32
}

func (t Transform) scale() (float32, float32) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

// Drawable is a request to draw an image, a line of text, or a shape.
// Tint and Blend, if non-nil, override the image's own settings (or the
// context's color for text and shapes) for this draw only.
type Drawable struct {
	Kind      DrawableKind
	Transform Transform
	Tint      *RGBA
	Blend     *BlendMode

	Image *Image
	Text  string
	// Font names the font used for Text; the current font is used if
	// it's empty.
	Font  string
	Shape *Shape

	ZOrder  int
	Visible bool
	// CullOffscreen skips images that lie entirely outside the logical
	// screen.
	CullOffscreen bool
}

// RenderDrawables draws the visible drawables in increasing ZOrder;
// drawables with equal ZOrder are drawn in the order given.
func (ctx *Context) RenderDrawables(ds []Drawable) {
	sorted := slices.Clone(ds)
	slices.SortStableFunc(sorted, func(a, b Drawable) int {
		return cmp.Compare(a.ZOrder, b.ZOrder)
	})

	for i := range sorted {
		d := &sorted[i]
		if !d.Visible {
			continue
		}
		switch d.Kind {
		case DrawImage:
			ctx.renderImageDrawable(d)
		case DrawText:
			ctx.renderTextDrawable(d)
		case DrawShape:
			ctx.renderShapeDrawable(d)
		default:
			ctx.lg.Warnf("%d: unknown drawable kind", d.Kind)
		}
	}
}

func (ctx *Context) colorFor(d *Drawable) *Context {
	if d.Tint != nil {
		return ctx.WithColor(*d.Tint)
	}
	return ctx
}

func (ctx *Context) renderImageDrawable(d *Drawable) {
	im := d.Image
	if im == nil || !im.IsLoaded() {
		return
	}

	t := d.Transform
	sx, sy := t.scale()
	w, h := t.Width, t.Height
	if w == 0 {
		w = float32(im.Width())
	}
	if h == 0 {
		h = float32(im.Height())
	}
	w, h = w*sx, h*sy

	if d.CullOffscreen {
		p, _, _ := im.quad(t.X, t.Y, w, h, t.Rotation, t.OriginX, t.OriginY)
		bounds := math.Extent2DFromPoints(p[:])
		screen := math.Extent2D{P1: [2]float32{float32(ctx.width), float32(ctx.height)}}
		if !math.Overlaps(bounds, screen) {
			return
		}
	}

	if d.Tint != nil {
		tint, hasTint := im.Tint()
		im.SetTint(*d.Tint)
		defer func() {
			im.tint, im.hasTint = tint, hasTint
		}()
	}
	if d.Blend != nil {
		blend, custom := im.blend, im.customBlend
		im.blend = *d.Blend
		defer func() {
			im.blend, im.customBlend = blend, custom
		}()
	}

	im.render(ctx, t.X, t.Y, w, h, t.Rotation, t.OriginX, t.OriginY)
}

func (ctx *Context) renderTextDrawable(d *Drawable) {
	if d.Text == "" {
		return
	}

	te := ctx.text
	if d.Font != "" {
		prev := te.current
		if err := te.SetFont(d.Font); err != nil {
			return
		}
		defer func() { te.current = prev }()
	}

	t := d.Transform
	sx, sy := t.scale()
	te.PrintEx(ctx.colorFor(d), d.Text, int(t.X), int(t.Y), t.Rotation, sx, sy, t.OriginX, t.OriginY)
}

func (ctx *Context) renderShapeDrawable(d *Drawable) {
	s := d.Shape
	if s == nil {
		return
	}

	c := ctx.colorFor(d)
	t := d.Transform
	switch s.Kind {
	case ShapeRectangle:
		c.Rectangle(s.Filled, t.X, t.Y, t.Width, t.Height)
	case ShapeRoundedRectangle:
		c.RoundedRectangle(s.Filled, t.X, t.Y, t.Width, t.Height, s.Radius)
	case ShapeCircle:
		c.Circle(s.Filled, t.X, t.Y, s.Radius, s.Segments)
	case ShapeLine:
		c.Line(t.X, t.Y, t.X+t.Width, t.Y+t.Height, s.Thickness)
	case ShapePolygon:
		pts := make([][2]float32, len(s.Points))
		for i, p := range s.Points {
			pts[i] = math.Add2f(p, [2]float32{t.X, t.Y})
		}
		c.Polygon(s.Filled, pts)
	case ShapeGradientHoriz:
		c.GradientRectangleHoriz(s.Filled, t.X, t.Y, t.Width, t.Height, s.Stops...)
	case ShapeGradientVert:
		c.GradientRectangleVert(s.Filled, t.X, t.Y, t.Width, t.Height, s.Stops...)
	default:
		ctx.lg.Warnf("%d: unknown shape kind", s.Kind)
	}
}
