// pkg/renderer/viewport.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

// Viewport is a rectangle in window pixels with the origin at the
// bottom-left, as used by the GPU.
type Viewport struct {
	X, Y, Width, Height int
}

// CalculateViewport returns the largest viewport with the aspect ratio
// of targetW x targetH that fits in the window, centered with letterbox
// or pillarbox bars as needed.
func CalculateViewport(windowW, windowH, targetW, targetH int) Viewport {
	if windowW <= 0 || windowH <= 0 || targetW <= 0 || targetH <= 0 {
		return Viewport{Width: max(windowW, 0), Height: max(windowH, 0)}
	}

	// Compare aspect ratios with integer math so that exact fits aren't
	// lost to rounding.
	var vp Viewport
	if windowW*targetH > windowH*targetW {
		vp.Height = windowH
		vp.Width = windowH * targetW / targetH
	} else {
		vp.Width = windowW
		vp.Height = windowW * targetH / targetW
	}
	vp.X = (windowW - vp.Width) / 2
	vp.Y = (windowH - vp.Height) / 2
	return vp
}
