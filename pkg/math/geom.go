// pkg/math/geom.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import "sync"

///////////////////////////////////////////////////////////////////////////
// Extent2D

// Extent2D represents a 2D bounding box with the two vertices at its
// opposite minimum and maximum corners.
type Extent2D struct {
	P0, P1 [2]float32
}

// EmptyExtent2D returns an Extent2D representing an empty bounding box.
func EmptyExtent2D() Extent2D {
	// Degenerate bounds
	return Extent2D{P0: [2]float32{1e30, 1e30}, P1: [2]float32{-1e30, -1e30}}
}

// Extent2DFromPoints returns an Extent2D that bounds all of the provided
// points.
func Extent2DFromPoints(pts [][2]float32) Extent2D {
	e := EmptyExtent2D()
	for _, p := range pts {
		e = Union(e, p)
	}
	return e
}

func (e Extent2D) Width() float32 {
	return e.P1[0] - e.P0[0]
}

func (e Extent2D) Height() float32 {
	return e.P1[1] - e.P0[1]
}

func (e Extent2D) Inside(p [2]float32) bool {
	return p[0] >= e.P0[0] && p[0] <= e.P1[0] && p[1] >= e.P0[1] && p[1] <= e.P1[1]
}

// Overlaps returns true if the two provided Extent2Ds overlap.
func Overlaps(a Extent2D, b Extent2D) bool {
	x := (a.P1[0] >= b.P0[0]) && (a.P0[0] <= b.P1[0])
	y := (a.P1[1] >= b.P0[1]) && (a.P0[1] <= b.P1[1])
	return x && y
}

func Union(e Extent2D, p [2]float32) Extent2D {
	e.P0[0] = min(e.P0[0], p[0])
	e.P0[1] = min(e.P0[1], p[1])
	e.P1[0] = max(e.P1[0], p[0])
	e.P1[1] = max(e.P1[1], p[1])
	return e
}

///////////////////////////////////////////////////////////////////////////
// Points and rotation

func Add2f(a, b [2]float32) [2]float32 {
	return [2]float32{a[0] + b[0], a[1] + b[1]}
}

func Sub2f(a, b [2]float32) [2]float32 {
	return [2]float32{a[0] - b[0], a[1] - b[1]}
}

func Scale2f(a [2]float32, s float32) [2]float32 {
	return [2]float32{s * a[0], s * a[1]}
}

// Rotator2f returns a function that rotates points by the specified
// angle (given in degrees) about the origin.
func Rotator2f(angle float32) func([2]float32) [2]float32 {
	s, c := Sin(Radians(angle)), Cos(Radians(angle))
	return func(p [2]float32) [2]float32 {
		return [2]float32{c*p[0] - s*p[1], s*p[0] + c*p[1]}
	}
}

// RotateAbout rotates p by angle degrees about the pivot point.
func RotateAbout(p, pivot [2]float32, angle float32) [2]float32 {
	if angle == 0 {
		return p
	}
	return Add2f(pivot, Rotator2f(angle)(Sub2f(p, pivot)))
}

var (
	circlePoints   map[int][][2]float32
	circlePointsMu sync.Mutex
)

// CirclePoints returns the vertices for a unit circle at the origin
// with the given number of segments, starting along +x and proceeding
// counter-clockwise; it creates the vertex slice if this tessellation
// rate hasn't been seen before and otherwise returns a preexisting one.
// Callers must not modify the returned slice.
func CirclePoints(nsegs int) [][2]float32 {
	circlePointsMu.Lock()
	defer circlePointsMu.Unlock()

	if circlePoints == nil {
		circlePoints = make(map[int][][2]float32)
	}
	if _, ok := circlePoints[nsegs]; !ok {
		// Evaluate the vertices of the circle to initialize a new slice.
		var pts [][2]float32
		for d := 0; d < nsegs; d++ {
			angle := 2 * Pi() * float32(d) / float32(nsegs)
			pts = append(pts, [2]float32{Cos(angle), Sin(angle)})
		}
		circlePoints[nsegs] = pts
	}

	// One way or another, it's now available in the map.
	return circlePoints[nsegs]
}

// ArcPoints returns nsegs+1 points along the unit circle from angle start
// through start+sweep, both given in radians.
func ArcPoints(start, sweep float32, nsegs int) [][2]float32 {
	pts := make([][2]float32, 0, nsegs+1)
	for i := 0; i <= nsegs; i++ {
		a := start + sweep*float32(i)/float32(nsegs)
		pts = append(pts, [2]float32{Cos(a), Sin(a)})
	}
	return pts
}
