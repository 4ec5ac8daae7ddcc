// pkg/renderer/sdf.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"github.com/nightcore/gl2d/pkg/math"
)

// SDFSpread is the distance in pixels covered by a glyph's distance
// field on either side of its outline.
const SDFSpread = 4

// GenerateSDF converts a width x height coverage mask into a signed
// distance field padded by spread pixels on each side. Values are 128 at
// the outline, increasing inside the glyph and decreasing outside it. It
// returns ErrSDFUnsupported for masks without any covered pixels.
func GenerateSDF(coverage []byte, width, height, spread int) ([]byte, int, int, error) {
	if width <= 0 || height <= 0 || len(coverage) < width*height {
		return nil, 0, 0, ErrSDFUnsupported
	}

	pw, ph := width+2*spread, height+2*spread
	mask := make([]bool, pw*ph)
	covered := false
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if coverage[y*width+x] >= 128 {
				mask[(y+spread)*pw+x+spread] = true
				covered = true
			}
		}
	}
	if !covered {
		return nil, 0, 0, ErrSDFUnsupported
	}

	out := make([]byte, pw*ph)
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			d := findSignedDistance(x, y, spread, pw, ph, mask)
			out[y*pw+x] = distanceToByte(d, spread)
		}
	}
	return out, pw, ph, nil
}

// findSignedDistance returns the distance from (cx, cy) to the nearest
// pixel on the other side of the outline, positive inside and clamped to
// spread.
func findSignedDistance(cx, cy, spread, width, height int, mask []bool) float32 {
	base := mask[cy*width+cx]

	x0, x1 := max(0, cx-spread), min(width-1, cx+spread)
	y0, y1 := max(0, cy-spread), min(height-1, cy+spread)

	closest := spread * spread
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if mask[y*width+x] != base {
				closest = min(closest, math.Sqr(cx-x)+math.Sqr(cy-y))
			}
		}
	}

	d := min(math.Sqrt(float32(closest)), float32(spread))
	if base {
		return d
	}
	return -d
}

func distanceToByte(d float32, spread int) byte {
	v := math.Clamp(0.5+0.5*d/float32(spread), 0, 1)
	return byte(math.Round(v * 255))
}
