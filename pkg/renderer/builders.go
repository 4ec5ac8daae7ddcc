// pkg/renderer/builders.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"sync"
)

///////////////////////////////////////////////////////////////////////////
// VerticesDrawBuilder

// VerticesDrawBuilder accumulates vertices given in pixel space,
// converting them to device space for a screen of the given size as
// they are added.
type VerticesDrawBuilder struct {
	verts         []Vertex
	width, height int
}

func (vb *VerticesDrawBuilder) Reset() {
	vb.verts = vb.verts[:0]
}

// Vertices returns the accumulated vertices; the slice is only valid
// until the builder is next modified.
func (vb *VerticesDrawBuilder) Vertices() []Vertex { return vb.verts }

func (vb *VerticesDrawBuilder) device(p [2]float32) [2]float32 {
	return ToDevice2f(p, vb.width, vb.height)
}

// AddVertex adds a single untextured vertex.
func (vb *VerticesDrawBuilder) AddVertex(p [2]float32, c RGBA) {
	vb.verts = append(vb.verts, makeVertex(vb.device(p), 0, 0, c))
}

// AddTriangle adds a triangle with the specified three vertices to be
// drawn.
func (vb *VerticesDrawBuilder) AddTriangle(p0, p1, p2 [2]float32, c RGBA) {
	vb.AddVertex(p0, c)
	vb.AddVertex(p1, c)
	vb.AddVertex(p2, c)
}

// AddQuad adds a quadrilateral with the specified four vertices to be
// drawn; the quad is split into the triangles (0,1,2) and (2,3,0).
func (vb *VerticesDrawBuilder) AddQuad(p0, p1, p2, p3 [2]float32, c RGBA) {
	vb.AddColoredQuad([4][2]float32{p0, p1, p2, p3}, [4]RGBA{c, c, c, c})
}

// AddColoredQuad is like AddQuad but with a separate color at each
// corner.
func (vb *VerticesDrawBuilder) AddColoredQuad(p [4][2]float32, c [4]RGBA) {
	for _, i := range [6]int{0, 1, 2, 2, 3, 0} {
		vb.AddVertex(p[i], c[i])
	}
}

// AddTexturedQuad adds a quad with per-corner texture coordinates, using
// the same triangle split as AddQuad.
func (vb *VerticesDrawBuilder) AddTexturedQuad(p [4][2]float32, uv [4][2]float32, c RGBA) {
	for _, i := range [6]int{0, 1, 2, 2, 3, 0} {
		vb.verts = append(vb.verts, makeVertex(vb.device(p[i]), uv[i][0], uv[i][1], c))
	}
}

// AddFan adds the triangles of a fan with the given center and
// perimeter points, in order.
func (vb *VerticesDrawBuilder) AddFan(center [2]float32, perimeter [][2]float32, c RGBA) {
	for i := 0; i+1 < len(perimeter); i++ {
		vb.AddTriangle(center, perimeter[i], perimeter[i+1], c)
	}
}

// AddLine adds a line segment for use with the Lines topology.
func (vb *VerticesDrawBuilder) AddLine(p0, p1 [2]float32, c RGBA) {
	vb.AddVertex(p0, c)
	vb.AddVertex(p1, c)
}

// AddPoints adds the points in order, as for the LineLoop and LineStrip
// topologies.
func (vb *VerticesDrawBuilder) AddPoints(pts [][2]float32, c RGBA) {
	for _, p := range pts {
		vb.AddVertex(p, c)
	}
}

// Draw submits the accumulated vertices with the given topology using
// standard alpha blending.
func (vb *VerticesDrawBuilder) Draw(b *Batch, t Topology) {
	b.DrawBlended(t, vb.verts, 0, false, StandardBlend)
}

// VerticesDrawBuilders are managed using a sync.Pool so that their verts
// slice can be reused across frames.
var verticesDrawBuilderPool = sync.Pool{New: func() any { return &VerticesDrawBuilder{} }}

// GetVerticesDrawBuilder returns an empty builder that converts from a
// width x height pixel space.
func GetVerticesDrawBuilder(width, height int) *VerticesDrawBuilder {
	vb := verticesDrawBuilderPool.Get().(*VerticesDrawBuilder)
	vb.width, vb.height = width, height
	return vb
}

func ReturnVerticesDrawBuilder(vb *VerticesDrawBuilder) {
	vb.Reset()
	verticesDrawBuilderPool.Put(vb)
}
