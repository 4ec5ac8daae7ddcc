// pkg/renderer/shapes_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"slices"
	"testing"
)

func TestRectangle(t *testing.T) {
	ctx, r := newTestContext(t, Options{})
	ctx.SetColor(1, 0, 0, 0.5)

	ctx.Rectangle(true, 10, 20, 100, 50)
	d := r.lastDraw(t)
	if d.topology != Triangles || len(d.verts) != 6 {
		t.Fatalf("filled rectangle: %s with %d vertices", d.topology, len(d.verts))
	}
	if p := pixelPos(ctx, d.verts[2]); !approxEqual(p[0], 110) || !approxEqual(p[1], 70) {
		t.Errorf("lower right corner at %v", p)
	}
	if c := d.verts[0]; c.R != 1 || c.G != 0 || c.A != 0.5 {
		t.Errorf("drawn with color %+v", c)
	}
	if d.blend != StandardBlend || d.useTex != 0 {
		t.Errorf("unexpected state %+v", d)
	}

	ctx.Rectangle(false, 10, 20, 100, 50)
	if d := r.lastDraw(t); d.topology != Lines || len(d.verts) != 8 {
		t.Errorf("outlined rectangle: %s with %d vertices", d.topology, len(d.verts))
	}
}

func TestRoundedRectangleClamp(t *testing.T) {
	ctx, r := newTestContext(t, Options{})

	ctx.RoundedRectangle(true, 10, 10, 40, 20, 50)
	big := r.lastDraw(t)
	ctx.RoundedRectangle(true, 10, 10, 40, 20, 10)
	clamped := r.lastDraw(t)

	if len(r.draws) != 2 {
		t.Errorf("expected one draw per rounded rectangle; got %d", len(r.draws))
	}
	if !slices.Equal(big.verts, clamped.verts) {
		t.Errorf("radius 50 and radius 10 gave different geometry")
	}
	// Five rectangles and four 16-segment corner fans.
	if n := len(clamped.verts); n != 5*6+4*16*3 {
		t.Errorf("got %d vertices", n)
	}

	for _, v := range clamped.verts {
		p := pixelPos(ctx, v)
		if p[0] < 10-1e-3 || p[0] > 50+1e-3 || p[1] < 10-1e-3 || p[1] > 30+1e-3 {
			t.Errorf("vertex %v outside of the rectangle", p)
		}
	}

	ctx.RoundedRectangle(false, 10, 10, 40, 20, 5)
	if d := r.lastDraw(t); d.topology != LineLoop || len(d.verts) != 4*17 {
		t.Errorf("outline: %s with %d vertices", d.topology, len(d.verts))
	}

	ctx.RoundedRectangle(true, 10, 10, 40, 20, 0)
	zero := r.lastDraw(t)
	ctx.Rectangle(true, 10, 10, 40, 20)
	if !slices.Equal(zero.verts, r.lastDraw(t).verts) {
		t.Errorf("zero radius didn't give a plain rectangle")
	}
}

func TestGradientRectangle(t *testing.T) {
	ctx, r := newTestContext(t, Options{})

	ctx.GradientRectangleHoriz(true, 0, 0, 100, 50)
	ctx.GradientRectangleHoriz(true, 0, 0, 100, 50, 1, 0, 0, 1)
	ctx.GradientRectangleVert(true, 0, 0, 100, 50, 1, 0, 0, 1, 0, 1, 0)
	ctx.GradientRectangleVert(false, 0, 0, 100, 50, 1, 0, 0, 1)
	if len(r.draws) != 0 {
		t.Fatalf("gradient with fewer than two stops issued %d draws", len(r.draws))
	}

	red, green, blue := RGBA{1, 0, 0, 1}, RGBA{0, 1, 0, 1}, RGBA{0, 0, 1, 1}
	ctx.GradientRectangleHoriz(true, 0, 0, 100, 50, 1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1)
	d := r.lastDraw(t)
	if len(r.draws) != 1 || len(d.verts) != 12 {
		t.Fatalf("three stops: %d draws, %d vertices", len(r.draws), len(d.verts))
	}
	color := func(v Vertex) RGBA { return RGBA{v.R, v.G, v.B, v.A} }
	for i, test := range []struct {
		x float32
		c RGBA
	}{{0, red}, {50, green}, {50, green}, {100, blue}} {
		// Corners 0 and 1 of each segment's quad.
		v := d.verts[6*(i/2)+i%2]
		if p := pixelPos(ctx, v); !approxEqual(p[0], test.x) || color(v) != test.c {
			t.Errorf("horizontal corner %d: at %v with %+v", i, p, color(v))
		}
	}

	ctx.GradientRectangleVert(true, 0, 0, 100, 50, 1, 0, 0, 1, 0, 0, 1, 1)
	d = r.lastDraw(t)
	if top, bottom := d.verts[0], d.verts[2]; color(top) != red || color(bottom) != blue {
		t.Errorf("vertical gradient: top %+v bottom %+v", color(top), color(bottom))
	}
	if p := pixelPos(ctx, d.verts[2]); !approxEqual(p[1], 50) {
		t.Errorf("vertical gradient bottom at %v", p)
	}

	ctx.SetColor(0.2, 0.3, 0.4, 1)
	ctx.GradientRectangleHoriz(false, 0, 0, 100, 50, 1, 0, 0, 1, 0, 0, 1, 1)
	d = r.lastDraw(t)
	if d.topology != LineLoop || len(d.verts) != 4 || color(d.verts[0]) != ctx.Color() {
		t.Errorf("outline: %s with %d vertices, color %+v", d.topology, len(d.verts), color(d.verts[0]))
	}
}

func TestCircle(t *testing.T) {
	ctx, r := newTestContext(t, Options{})

	for _, test := range []struct {
		filled   bool
		segments int
		topology Topology
		nverts   int
	}{
		{true, 0, Triangles, 32 * 3},
		{true, -5, Triangles, 32 * 3},
		{true, 2, Triangles, 3 * 3},
		{true, 10, Triangles, 10 * 3},
		{false, 0, LineLoop, 32},
		{false, 1, LineLoop, 3},
	} {
		ctx.Circle(test.filled, 400, 300, 100, test.segments)
		d := r.lastDraw(t)
		if d.topology != test.topology || len(d.verts) != test.nverts {
			t.Errorf("filled %v segments %d: %s with %d vertices, expected %s with %d", test.filled,
				test.segments, d.topology, len(d.verts), test.topology, test.nverts)
		}
	}

	// The first fan triangle runs from the center to the rightmost point
	// and then counter-clockwise on screen.
	ctx.Circle(true, 400, 300, 100, 4)
	d := r.lastDraw(t)
	for i, want := range [][2]float32{{400, 300}, {500, 300}, {400, 200}} {
		if p := pixelPos(ctx, d.verts[i]); !approxEqual(p[0], want[0]) || !approxEqual(p[1], want[1]) {
			t.Errorf("vertex %d at %v, expected %v", i, p, want)
		}
	}
	// The fan closes back at the starting point.
	if p := pixelPos(ctx, d.verts[len(d.verts)-1]); !approxEqual(p[0], 500) || !approxEqual(p[1], 300) {
		t.Errorf("final vertex at %v", p)
	}
}

func TestLine(t *testing.T) {
	ctx, r := newTestContext(t, Options{})

	ctx.Line(100, 100, 200, 100, 1)
	if d := r.lastDraw(t); d.topology != Lines || len(d.verts) != 2 {
		t.Errorf("thin line: %s with %d vertices", d.topology, len(d.verts))
	}

	ctx.Line(100, 100, 200, 100, 10)
	d := r.lastDraw(t)
	if d.topology != Triangles || len(d.verts) != 6 {
		t.Fatalf("thick line: %s with %d vertices", d.topology, len(d.verts))
	}
	var xs, ys []float32
	for _, v := range d.verts {
		p := pixelPos(ctx, v)
		xs, ys = append(xs, p[0]), append(ys, p[1])
	}
	for _, x := range xs {
		if !approxEqual(x, 100) && !approxEqual(x, 200) {
			t.Errorf("unexpected x %f", x)
		}
	}
	for _, y := range ys {
		if !approxEqual(y, 95) && !approxEqual(y, 105) {
			t.Errorf("unexpected y %f", y)
		}
	}

	// Vertical lines get their width along x.
	ctx.Line(300, 100, 300, 200, 4)
	for _, v := range r.lastDraw(t).verts {
		if p := pixelPos(ctx, v); !approxEqual(p[0], 298) && !approxEqual(p[0], 302) {
			t.Errorf("vertical line vertex at %v", p)
		}
	}
}

func TestPolygon(t *testing.T) {
	ctx, r := newTestContext(t, Options{})

	ctx.Polygon(true, [][2]float32{{0, 0}, {10, 0}})
	ctx.Polygon(false, [][2]float32{{0, 0}})
	ctx.Polygon(true, nil)
	if len(r.draws) != 0 {
		t.Fatalf("degenerate polygons issued %d draws", len(r.draws))
	}

	ctx.Polygon(false, [][2]float32{{0, 0}, {10, 0}})
	if d := r.lastDraw(t); d.topology != LineLoop || len(d.verts) != 2 {
		t.Errorf("outline: %s with %d vertices", d.topology, len(d.verts))
	}

	square := [][2]float32{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	ctx.Polygon(true, square)
	if d := r.lastDraw(t); d.topology != Triangles || len(d.verts) != 6 {
		t.Errorf("square: %s with %d vertices", d.topology, len(d.verts))
	}

	// A concave L shape needs four triangles.
	ell := [][2]float32{{0, 0}, {100, 0}, {100, 50}, {50, 50}, {50, 100}, {0, 100}}
	ctx.Polygon(true, ell)
	d := r.lastDraw(t)
	if len(d.verts) != 12 {
		t.Fatalf("L shape: %d vertices", len(d.verts))
	}
	for _, v := range d.verts {
		if p := pixelPos(ctx, v); p[0] > 50+1e-3 && p[1] > 50+1e-3 {
			t.Errorf("vertex %v in the notch", p)
		}
	}
}

func TestThrobber(t *testing.T) {
	ctx, r := newTestContext(t, Options{})
	ctx.SetColor(1, 1, 1, 1)

	ctx.Throbber(400, 300, 50, 0, 0)
	if len(r.draws) != 12 {
		t.Fatalf("expected 12 dots; got %d", len(r.draws))
	}
	for i, d := range r.draws {
		if len(d.verts) != 12*3 {
			t.Errorf("dot %d: %d vertices", i, len(d.verts))
		}
		if a := d.verts[0].A; !approxEqual(a, float32(i)/12) {
			t.Errorf("dot %d: alpha %f", i, a)
		}
		if v := d.verts[0]; !approxEqual(v.R, 0.7) || !approxEqual(v.G, 0.7) || !approxEqual(v.B, 1) {
			t.Errorf("dot %d: color %+v", i, v)
		}
	}
	// The first dot is centered on the ring at angle 0.
	if p := pixelPos(ctx, r.draws[0].verts[0]); !approxEqual(p[0], 450) || !approxEqual(p[1], 300) {
		t.Errorf("first dot centered at %v", p)
	}
	if ctx.Color() != White {
		t.Errorf("Throbber changed the context's color to %+v", ctx.Color())
	}
}

func TestWithColor(t *testing.T) {
	ctx, r := newTestContext(t, Options{})
	if ctx.Color() != White {
		t.Errorf("default color %+v", ctx.Color())
	}

	green := RGBA{0, 1, 0, 1}
	g := ctx.WithColor(green)
	g.Circle(true, 10, 10, 5, 8)
	if v := r.lastDraw(t).verts[0]; v.G != 1 || v.R != 0 {
		t.Errorf("derived context drew with %+v", v)
	}
	if ctx.Color() != White {
		t.Errorf("WithColor changed the parent's color")
	}
	if g.Batch() != ctx.Batch() || g.Text() != ctx.Text() {
		t.Errorf("derived context doesn't share state")
	}

	// Both share the resolution.
	ctx.SetResolution(400, 300)
	if w, h := g.Resolution(); w != 400 || h != 300 {
		t.Errorf("derived context resolution %dx%d", w, h)
	}
}
