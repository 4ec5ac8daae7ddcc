// pkg/renderer/drawable_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"image"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

func TestRenderDrawablesOrder(t *testing.T) {
	ctx, r, _ := newTextContext(t, false)

	red := RGBA{1, 0, 0, 1}
	ds := []Drawable{
		{
			Kind:      DrawShape,
			ZOrder:    2,
			Visible:   true,
			Tint:      &red,
			Shape:     &Shape{Kind: ShapeRectangle, Filled: true},
			Transform: Transform{X: 10, Y: 10, Width: 20, Height: 20},
		},
		{
			Kind:      DrawShape,
			ZOrder:    1,
			Visible:   true,
			Shape:     &Shape{Kind: ShapeCircle, Filled: true, Radius: 5, Segments: 8},
			Transform: Transform{X: 50, Y: 50},
		},
		{Kind: DrawText, ZOrder: 1, Visible: true, Text: "A", Transform: Transform{X: 100, Y: 100}},
		{
			Kind:      DrawShape,
			Visible:   false,
			Shape:     &Shape{Kind: ShapeLine, Thickness: 1},
			Transform: Transform{Width: 100, Height: 100},
		},
	}
	ctx.RenderDrawables(ds)

	if len(r.draws) != 3 {
		t.Fatalf("expected 3 draws; got %d", len(r.draws))
	}
	if d := r.draws[0]; len(d.verts) != 8*3 || d.useTex != 0 {
		t.Errorf("first draw isn't the circle: %+v", d)
	}
	if d := r.draws[1]; d.useTex != 1 || len(d.verts) != 6 {
		t.Errorf("second draw isn't the glyph: %+v", d)
	}
	if d := r.draws[2]; d.verts[0].R != 1 || d.verts[0].G != 0 || len(d.verts) != 6 {
		t.Errorf("third draw isn't the red rectangle: %+v", d)
	}
	if ds[0].ZOrder != 2 || ds[3].Visible {
		t.Errorf("RenderDrawables reordered its argument")
	}
	if ctx.Color() != White {
		t.Errorf("tint leaked into the context color")
	}
}

func TestRenderDrawablesImage(t *testing.T) {
	ctx, r := newImageContext(t)
	im := &Image{}
	if err := im.Load(ctx, "images/a.png"); err != nil {
		t.Fatal(err)
	}

	tint := RGBA{0, 1, 0, 0.5}
	additive := BlendAdditive
	ctx.RenderDrawables([]Drawable{{
		Kind:      DrawImage,
		Visible:   true,
		Image:     im,
		Tint:      &tint,
		Blend:     &additive,
		Transform: Transform{X: 100, Y: 100, ScaleX: 2, ScaleY: 3},
	}})
	d := r.lastDraw(t)
	if v := d.verts[0]; v.G != 1 || v.A != 0.5 {
		t.Errorf("tint not applied: %+v", v)
	}
	if d.blend != (BlendFunc{Src: BlendSrcAlpha, Dst: BlendOne}) {
		t.Errorf("blend override not applied: %+v", d.blend)
	}
	if p := pixelPos(ctx, d.verts[2]); !approxEqual(p[0], 108) || !approxEqual(p[1], 106) {
		t.Errorf("scaled lower right corner at %v", p)
	}
	if _, ok := im.Tint(); ok || im.BlendMode() != BlendNormal {
		t.Errorf("image settings not restored")
	}
	if r.blend != StandardBlend {
		t.Errorf("blend state not restored")
	}

	r.reset()
	for _, cull := range []bool{true, false} {
		ctx.RenderDrawables([]Drawable{{Kind: DrawImage, Visible: true, Image: im, CullOffscreen: cull,
			Transform: Transform{X: -100, Y: -100}}})
	}
	if len(r.draws) != 1 {
		t.Errorf("expected only the unculled image to be drawn; got %d draws", len(r.draws))
	}

	// Partially visible images are kept.
	r.reset()
	ctx.RenderDrawables([]Drawable{{Kind: DrawImage, Visible: true, Image: im, CullOffscreen: true,
		Transform: Transform{X: 798, Y: 599}}})
	if len(r.draws) != 1 {
		t.Errorf("partially visible image was culled")
	}

	// Unloaded images and missing shapes are skipped.
	r.reset()
	ctx.RenderDrawables([]Drawable{
		{Kind: DrawImage, Visible: true, Image: &Image{}},
		{Kind: DrawImage, Visible: true},
		{Kind: DrawShape, Visible: true},
		{Kind: DrawText, Visible: true},
	})
	if len(r.draws) != 0 {
		t.Errorf("%d draws for empty drawables", len(r.draws))
	}
}

func TestRenderDrawablesImageFlip(t *testing.T) {
	ctx, r := newImageContext(t)
	im := &Image{}
	if err := im.LoadImage(ctx, image.NewNRGBA(image.Rect(0, 0, 1, 1)), "pixel"); err != nil {
		t.Fatal(err)
	}

	for _, test := range []struct {
		scaleX, scaleY float32
		u0, v0         float32
	}{
		{1, 1, 0, 0},
		{-1, 1, 1, 0},
		{1, -1, 0, 1},
		{-1, -1, 1, 1},
		{-3, 1, 1, 0},
	} {
		ctx.RenderDrawables([]Drawable{{Kind: DrawImage, Visible: true, Image: im,
			Transform: Transform{X: 10, Y: 10, ScaleX: test.scaleX, ScaleY: test.scaleY}}})
		v := r.lastDraw(t).verts[0]
		if v.U != test.u0 || v.V != test.v0 {
			t.Errorf("scale (%g,%g): first vertex uv (%g,%g), expected (%g,%g)",
				test.scaleX, test.scaleY, v.U, v.V, test.u0, test.v0)
		}
	}
}

func TestKindStrings(t *testing.T) {
	for _, test := range []struct {
		s    fmt.Stringer
		want string
	}{
		{BlendScreen, "Screen"},
		{BlendMode(42), "BlendMode(42)"},
		{BlendMode(-1), "BlendMode(-1)"},
		{LineStrip, "LineStrip"},
		{Topology(9), "Topology(9)"},
		{DrawShape, "Shape"},
		{DrawableKind(3), "DrawableKind(3)"},
	} {
		if got := test.s.String(); got != test.want {
			t.Errorf("got %q, expected %q", got, test.want)
		}
	}
}

func TestRenderDrawablesFont(t *testing.T) {
	ctx, r, _ := newTextContext(t, false)
	te := ctx.Text()
	if err := te.LoadFontBytes("mono", gomono.TTF, 24); err != nil {
		t.Fatal(err)
	}

	ctx.RenderDrawables([]Drawable{
		{Kind: DrawText, Visible: true, Text: "i", Font: "mono"},
		{Kind: DrawText, Visible: true, Text: "i", Font: "missing"},
	})
	if len(r.draws) != 1 {
		t.Errorf("expected one draw; got %d", len(r.draws))
	}
	if te.CurrentFont().Id.Name != "regular" {
		t.Errorf("current font changed to %s", te.CurrentFont().Id)
	}
	if te.Font("mono").NumGlyphs() != 1 || te.Font("regular").NumGlyphs() != 0 {
		t.Errorf("glyph rendered with the wrong font")
	}
}
