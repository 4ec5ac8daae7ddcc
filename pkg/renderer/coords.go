// pkg/renderer/coords.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

// ToDevice maps a pixel-space point (origin top-left, y down) to
// normalized device coordinates (origin center, y up) for a screen of the
// given size. width and height must be positive.
func ToDevice(px, py float32, width, height int) (float32, float32) {
	return 2*px/float32(width) - 1, 1 - 2*py/float32(height)
}

// ToPixel is the inverse of ToDevice.
func ToPixel(dx, dy float32, width, height int) (float32, float32) {
	return (dx + 1) * float32(width) / 2, (1 - dy) * float32(height) / 2
}

// ToDevice2f is a convenience wrapper around ToDevice for [2]float32 points.
func ToDevice2f(p [2]float32, width, height int) [2]float32 {
	x, y := ToDevice(p[0], p[1], width, height)
	return [2]float32{x, y}
}
