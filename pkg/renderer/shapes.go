// pkg/renderer/shapes.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"github.com/nightcore/gl2d/pkg/math"

	"github.com/mmp/earcut-go"
)

// Shapes are given in pixel coordinates in the context's logical
// resolution and are drawn in its color with standard alpha blending,
// one draw call per shape.

const (
	// Corners of rounded rectangles are tessellated with this many
	// segments.
	roundedCornerSegments = 16
	defaultCircleSegments = 32
	defaultThrobberDots   = 12
)

func (ctx *Context) shapeBuilder() *VerticesDrawBuilder {
	return GetVerticesDrawBuilder(ctx.width, ctx.height)
}

// Rectangle draws an axis-aligned rectangle with its upper-left corner
// at (x, y).
func (ctx *Context) Rectangle(filled bool, x, y, width, height float32) {
	vb := ctx.shapeBuilder()
	defer ReturnVerticesDrawBuilder(vb)

	p := rectCorners(x, y, width, height)
	if filled {
		vb.AddQuad(p[0], p[1], p[2], p[3], ctx.color)
		vb.Draw(ctx.batch, Triangles)
	} else {
		for i := range p {
			vb.AddLine(p[i], p[(i+1)%4], ctx.color)
		}
		vb.Draw(ctx.batch, Lines)
	}
}

// rectCorners returns the corners of a rectangle in clockwise order
// (in pixel space), starting at the upper left.
func rectCorners(x, y, width, height float32) [4][2]float32 {
	return [4][2]float32{{x, y}, {x + width, y}, {x + width, y + height}, {x, y + height}}
}

// RoundedRectangle draws a rectangle whose corners are quarter circles
// of the given radius, which is limited to half of the smaller of the
// width and height. A non-positive radius gives a regular rectangle.
func (ctx *Context) RoundedRectangle(filled bool, x, y, width, height, radius float32) {
	if radius <= 0 {
		ctx.Rectangle(filled, x, y, width, height)
		return
	}
	radius = min(radius, width/2, height/2)

	vb := ctx.shapeBuilder()
	defer ReturnVerticesDrawBuilder(vb)

	// Corner centers and the start of each corner's arc, listed
	// clockwise from the upper left. Angles are measured
	// counter-clockwise with y up, so each arc sweeps -90 degrees.
	pi := math.Pi()
	corners := [4]struct {
		center [2]float32
		start  float32
	}{
		{[2]float32{x + radius, y + radius}, pi},
		{[2]float32{x + width - radius, y + radius}, pi / 2},
		{[2]float32{x + width - radius, y + height - radius}, 0},
		{[2]float32{x + radius, y + height - radius}, -pi / 2},
	}
	arc := func(i int) [][2]float32 {
		c := corners[i]
		pts := math.ArcPoints(c.start, -pi/2, roundedCornerSegments)
		for j, p := range pts {
			pts[j] = [2]float32{c.center[0] + radius*p[0], c.center[1] - radius*p[1]}
		}
		return pts
	}

	if filled {
		// The center and the four edge strips, then the corners.
		addRect := func(x, y, w, h float32) {
			p := rectCorners(x, y, w, h)
			vb.AddQuad(p[0], p[1], p[2], p[3], ctx.color)
		}
		iw, ih := width-2*radius, height-2*radius
		addRect(x+radius, y+radius, iw, ih)
		addRect(x+radius, y, iw, radius)
		addRect(x+radius, y+height-radius, iw, radius)
		addRect(x, y+radius, radius, ih)
		addRect(x+width-radius, y+radius, radius, ih)

		for i := range corners {
			vb.AddFan(corners[i].center, arc(i), ctx.color)
		}
		vb.Draw(ctx.batch, Triangles)
	} else {
		for i := range corners {
			vb.AddPoints(arc(i), ctx.color)
		}
		vb.Draw(ctx.batch, LineLoop)
	}
}

// Circle draws a circle tessellated with the given number of segments;
// 32 are used if segments is not positive and there are always at least
// 3.
func (ctx *Context) Circle(filled bool, cx, cy, radius float32, segments int) {
	if segments <= 0 {
		segments = defaultCircleSegments
	}
	segments = max(segments, 3)

	vb := ctx.shapeBuilder()
	defer ReturnVerticesDrawBuilder(vb)

	unit := math.CirclePoints(segments)
	pts := make([][2]float32, 0, segments+1)
	for _, p := range unit {
		pts = append(pts, [2]float32{cx + radius*p[0], cy - radius*p[1]})
	}

	if filled {
		pts = append(pts, pts[0])
		vb.AddFan([2]float32{cx, cy}, pts, ctx.color)
		vb.Draw(ctx.batch, Triangles)
	} else {
		vb.AddPoints(pts, ctx.color)
		vb.Draw(ctx.batch, LineLoop)
	}
}

// Line draws a line segment. Lines with thickness of at most one pixel
// are drawn as a single line primitive; thicker ones as a quad.
func (ctx *Context) Line(x1, y1, x2, y2, thickness float32) {
	vb := ctx.shapeBuilder()
	defer ReturnVerticesDrawBuilder(vb)

	if thickness <= 1 {
		vb.AddLine([2]float32{x1, y1}, [2]float32{x2, y2}, ctx.color)
		vb.Draw(ctx.batch, Lines)
		return
	}

	// The quad is built directly in device space, where the thickness
	// is scaled separately along each axis.
	w, h := ctx.width, ctx.height
	d1 := ToDevice2f([2]float32{x1, y1}, w, h)
	d2 := ToDevice2f([2]float32{x2, y2}, w, h)
	thx, thy := thickness/float32(w)*2, thickness/float32(h)*2

	angle := math.Atan2(d2[1]-d1[1], d2[0]-d1[0])
	off := [2]float32{thx / 2 * math.Sin(angle), -thy / 2 * math.Cos(angle)}

	q := [4][2]float32{
		math.Sub2f(d1, off),
		math.Add2f(d1, off),
		math.Add2f(d2, off),
		math.Sub2f(d2, off),
	}
	for _, i := range [6]int{0, 1, 2, 2, 3, 0} {
		vb.verts = append(vb.verts, makeVertex(q[i], 0, 0, ctx.color))
	}
	vb.Draw(ctx.batch, Triangles)
}

// Polygon draws the polygon with the given vertices. Filled polygons
// need at least three vertices and may be concave; outlines need two.
func (ctx *Context) Polygon(filled bool, pts [][2]float32) {
	if filled && len(pts) < 3 || len(pts) < 2 {
		return
	}

	vb := ctx.shapeBuilder()
	defer ReturnVerticesDrawBuilder(vb)

	if !filled {
		vb.AddPoints(pts, ctx.color)
		vb.Draw(ctx.batch, LineLoop)
		return
	}

	vertices := make([]earcut.Vertex, len(pts))
	for i, p := range pts {
		vertices[i].P = [2]float64{float64(p[0]), float64(p[1])}
	}
	for _, tri := range earcut.Triangulate(earcut.Polygon{Rings: [][]earcut.Vertex{vertices}}) {
		var v32 [3][2]float32
		for i, v64 := range tri.Vertices {
			v32[i] = [2]float32{float32(v64.P[0]), float32(v64.P[1])}
		}
		vb.AddTriangle(v32[0], v32[1], v32[2], ctx.color)
	}
	vb.Draw(ctx.batch, Triangles)
}

// gradientStops parses a flat list of RGBA values; trailing values that
// don't make up a full stop are ignored.
func gradientStops(values []float32) []RGBA {
	stops := make([]RGBA, len(values)/4)
	for i := range stops {
		v := values[4*i:]
		stops[i] = RGBA{R: v[0], G: v[1], B: v[2], A: v[3]}
	}
	return stops
}

// GradientRectangleHoriz draws a rectangle whose color varies from left
// to right through the given stops, each given by four values (r, g, b,
// a) and spaced evenly. At least two stops are required; otherwise
// nothing is drawn. The outline is drawn in the context's color.
func (ctx *Context) GradientRectangleHoriz(filled bool, x, y, width, height float32, stops ...float32) {
	ctx.gradientRectangle(filled, false, x, y, width, height, stops)
}

// GradientRectangleVert is like GradientRectangleHoriz, but the color
// varies from top to bottom.
func (ctx *Context) GradientRectangleVert(filled bool, x, y, width, height float32, stops ...float32) {
	ctx.gradientRectangle(filled, true, x, y, width, height, stops)
}

func (ctx *Context) gradientRectangle(filled, vertical bool, x, y, width, height float32, values []float32) {
	stops := gradientStops(values)
	if len(stops) < 2 {
		return
	}

	vb := ctx.shapeBuilder()
	defer ReturnVerticesDrawBuilder(vb)

	if !filled {
		p := rectCorners(x, y, width, height)
		vb.AddPoints(p[:], ctx.color)
		vb.Draw(ctx.batch, LineLoop)
		return
	}

	n := float32(len(stops) - 1)
	for i := 0; i+1 < len(stops); i++ {
		t0, t1 := float32(i)/n, float32(i+1)/n
		c0, c1 := stops[i], stops[i+1]
		if vertical {
			p := rectCorners(x, y+t0*height, width, (t1-t0)*height)
			vb.AddColoredQuad(p, [4]RGBA{c0, c0, c1, c1})
		} else {
			p := rectCorners(x+t0*width, y, (t1-t0)*width, height)
			vb.AddColoredQuad(p, [4]RGBA{c0, c1, c1, c0})
		}
	}
	vb.Draw(ctx.batch, Triangles)
}

// Throbber draws a loading indicator: a ring of small dots around
// (cx, cy) that fade in going counter-clockwise from angleOffset
// (radians). Animating angleOffset spins it.
func (ctx *Context) Throbber(cx, cy, radius float32, segments int, angleOffset float32) {
	if segments <= 0 {
		segments = defaultThrobberDots
	}
	c := RGBA{R: 0.7, G: 0.7, B: 1, A: 1}
	for i := range segments {
		t := float32(i) / float32(segments)
		angle := t*2*math.Pi() + angleOffset
		dot := ctx.WithColor(LerpRGBA(t, c.WithAlpha(0), c))
		dot.Circle(true, cx+math.Cos(angle)*radius, cy-math.Sin(angle)*radius, 6, 12)
	}
}
