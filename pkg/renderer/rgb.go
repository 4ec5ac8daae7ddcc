// pkg/renderer/rgb.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"github.com/nightcore/gl2d/pkg/math"
)

///////////////////////////////////////////////////////////////////////////
// RGB

type RGB struct {
	R, G, B float32
}

type RGBA struct {
	R, G, B, A float32
}

var (
	White = RGBA{1, 1, 1, 1}
	Black = RGBA{0, 0, 0, 1}
)

func LerpRGBA(x float32, a, b RGBA) RGBA {
	return RGBA{R: math.Lerp(x, a.R, b.R), G: math.Lerp(x, a.G, b.G), B: math.Lerp(x, a.B, b.B),
		A: math.Lerp(x, a.A, b.A)}
}

func (r RGB) Scale(v float32) RGB {
	return RGB{R: r.R * v, G: r.G * v, B: r.B * v}
}

// RGBA returns the color with the given alpha.
func (r RGB) RGBA(a float32) RGBA {
	return RGBA{R: r.R, G: r.G, B: r.B, A: a}
}

func (c RGBA) RGB() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// WithAlpha returns a copy of the color with its alpha replaced.
func (c RGBA) WithAlpha(a float32) RGBA {
	c.A = a
	return c
}

// RGBFromHex converts a packed integer color value to an RGB where the low
// 8 bits give blue, the next 8 give green, and then the next 8 give red.
func RGBFromHex(c int) RGB {
	r, g, b := (c>>16)&255, (c>>8)&255, c&255
	return RGB{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255}
}

// HSVToRGB converts a color given by hue in degrees [0,360) and
// saturation and value in [0,1] to RGB.
func HSVToRGB(h, s, v float32) RGB {
	c := v * s
	hp := math.Mod(h/60, 6)
	if hp < 0 {
		hp += 6
	}
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	m := v - c

	var r, g, b float32
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return RGB{R: r + m, G: g + m, B: b + m}
}

// RGBToHSV is the inverse of HSVToRGB; hue is returned in degrees.
func RGBToHSV(c RGB) (h, s, v float32) {
	maxc := max(c.R, c.G, c.B)
	minc := min(c.R, c.G, c.B)
	delta := maxc - minc

	v = maxc
	if maxc > 0 {
		s = delta / maxc
	}
	if delta == 0 {
		return 0, s, v
	}

	switch maxc {
	case c.R:
		h = 60 * math.Mod((c.G-c.B)/delta, 6)
	case c.G:
		h = 60 * ((c.B-c.R)/delta + 2)
	default:
		h = 60 * ((c.R-c.G)/delta + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}
