// cmd/gl2ddemo/scene_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"slices"
	"testing"

	"github.com/nightcore/gl2d/pkg/rand"
	"github.com/nightcore/gl2d/pkg/renderer"
)

func TestStarField(t *testing.T) {
	a, b := starField(640, 480, 50), starField(640, 480, 50)
	if len(a) != 50 {
		t.Fatalf("got %d stars", len(a))
	}
	for i := range a {
		sa, sb := a[i], b[i]
		if sa.Transform != sb.Transform || *sa.Tint != *sb.Tint || sa.Shape.Radius != sb.Shape.Radius {
			t.Errorf("star %d differs between runs", i)
		}
		if x, y := sa.Transform.X, sa.Transform.Y; x < 0 || x > 640 || y < 0 || y > 480 {
			t.Errorf("star %d at (%f,%f) is off screen", i, x, y)
		}
		if sa.Kind != renderer.DrawShape || sa.Shape.Kind != renderer.ShapeCircle || !sa.Visible {
			t.Errorf("star %d: unexpected drawable %+v", i, sa)
		}
		if r := sa.Shape.Radius; r < 0.5 || r > 2 {
			t.Errorf("star %d: radius %f", i, r)
		}
	}

	// Every quadrant of the screen gets some stars.
	var quadrants [4]int
	for _, s := range a {
		q := 0
		if s.Transform.X >= 320 {
			q++
		}
		if s.Transform.Y >= 240 {
			q += 2
		}
		quadrants[q]++
	}
	for q, n := range quadrants {
		if n < 5 {
			t.Errorf("quadrant %d has only %d stars", q, n)
		}
	}

	if s := starField(0, 480, 10); len(s) != 0 {
		t.Errorf("empty screen gave %d stars", len(s))
	}
	if s := starField(640, 480, 1); len(s) != 1 {
		t.Errorf("expected a single star; got %d", len(s))
	}
}

func TestFeaturedSprite(t *testing.T) {
	r := rand.MakeSeeded(1)
	if i := featuredSprite(r, nil); i != -1 {
		t.Errorf("no sprites gave %d", i)
	}
	if i := featuredSprite(r, []*renderer.Image{nil, {}, {}}); i != -1 {
		t.Errorf("unloaded sprites gave %d", i)
	}
}

func TestCheckerboard(t *testing.T) {
	img := checkerboard(16, 4)
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("bounds %v", b)
	}
	var colors []uint32
	for _, p := range [][2]int{{0, 0}, {4, 0}, {4, 4}, {15, 0}} {
		r, _, _, _ := img.At(p[0], p[1]).RGBA()
		colors = append(colors, r)
	}
	if colors[0] == colors[1] || colors[0] != colors[2] || !slices.Equal(colors[1:2], colors[3:4]) {
		t.Errorf("unexpected checkerboard pattern %v", colors)
	}
}
