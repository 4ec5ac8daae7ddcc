// pkg/platform/fullscreen.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

//go:build !darwin

package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

func (g *glfwPlatform) IsFullScreen() bool {
	return g.window.GetMonitor() != nil
}

func (g *glfwPlatform) EnableFullScreen(fullscreen bool) {
	monitors := glfw.GetMonitors()
	if g.config.FullScreenMonitor >= len(monitors) {
		g.config.FullScreenMonitor = 0
	}

	monitor := monitors[g.config.FullScreenMonitor]
	vm := monitor.GetVideoMode()
	if fullscreen {
		g.window.SetMonitor(monitor, 0, 0, vm.Width, vm.Height, vm.RefreshRate)
	} else {
		windowSize := g.config.InitialWindowSize
		if windowSize[0] == 0 || windowSize[1] == 0 {
			windowSize = [2]int{vm.Width - 150, vm.Height - 150}
		}

		g.window.SetMonitor(nil, g.config.InitialWindowPosition[0], g.config.InitialWindowPosition[1],
			windowSize[0], windowSize[1], glfw.DontCare)
	}
	g.config.StartInFullScreen = fullscreen
}
