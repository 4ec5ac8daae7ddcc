// pkg/platform/glfw.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/nightcore/gl2d/pkg/log"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwPlatform implements the Platform interface using GLFW.
type glfwPlatform struct {
	window *glfw.Window
	config *Config
	lg     *log.Logger

	startTime              float64
	inputCharacters        string
	anyEvents              bool
	lastMouseX, lastMouseY float64
	multisample            bool
	windowTitle            string

	mouseJustPressed [MouseButtonCount]bool
	mouseReleased    [MouseButtonCount]bool
	wheel            [2]float32
	keysPressed      map[Key]struct{}
	modifiers        glfw.ModifierKey
}

// New returns a new instance of a Platform implemented with a window
// of the specified size open at the specified position on the screen.
// The window has an OpenGL 3.3 core profile context that is current on
// the calling thread when New returns.
func New(config *Config, lg *log.Logger) (Platform, error) {
	lg.Info("Starting GLFW initialization")
	err := glfw.Init()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}
	lg.Infof("GLFW: %s", glfw.GetVersionString())

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	vm := glfw.GetPrimaryMonitor().GetVideoMode()
	if config.InitialWindowSize[0] == 0 || config.InitialWindowSize[1] == 0 {
		if runtime.GOOS == "windows" {
			config.InitialWindowSize[0] = vm.Width - 200
			config.InitialWindowSize[1] = vm.Height - 300
		} else {
			config.InitialWindowSize[0] = vm.Width - 150
			config.InitialWindowSize[1] = vm.Height - 150
		}
	}

	// If window position is out of bounds, create the window at (100, 100)
	if config.InitialWindowPosition[0] < 0 || config.InitialWindowPosition[1] < 0 ||
		config.InitialWindowPosition[0] > vm.Width || config.InitialWindowPosition[1] > vm.Height {
		config.InitialWindowPosition = [2]int{100, 100}
	}
	// Start with an invisible window so that we can position it first
	glfw.WindowHint(glfw.Visible, glfw.False)
	// Disable GLFW_AUTO_ICONIFY to stop the window from automatically minimizing in fullscreen
	glfw.WindowHint(glfw.AutoIconify, glfw.False)
	if config.EnableMSAA {
		glfw.WindowHint(glfw.Samples, 4)
	}

	var window *glfw.Window
	monitors := glfw.GetMonitors()
	if config.FullScreenMonitor >= len(monitors) {
		// Monitor saved in config not found, fallback to default
		config.FullScreenMonitor = 0
	}
	if config.StartInFullScreen {
		vm := monitors[config.FullScreenMonitor].GetVideoMode()
		window, err = glfw.CreateWindow(vm.Width, vm.Height, "gl2d", monitors[config.FullScreenMonitor], nil)
	} else {
		window, err = glfw.CreateWindow(config.InitialWindowSize[0], config.InitialWindowSize[1], "gl2d", nil, nil)
	}
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	window.SetPos(config.InitialWindowPosition[0], config.InitialWindowPosition[1])
	window.Show()
	window.MakeContextCurrent()

	platform := &glfwPlatform{
		config:      config,
		lg:          lg,
		window:      window,
		multisample: config.EnableMSAA,
		windowTitle: "gl2d",
		startTime:   glfw.GetTime(),
		keysPressed: make(map[Key]struct{}),
	}
	platform.installCallbacks()
	platform.EnableVSync(config.VSyncEnabled())

	glfw.SetMonitorCallback(platform.MonitorCallback)

	lg.Info("Finished GLFW initialization")

	return platform, nil
}

func (g *glfwPlatform) DPIScale() float32 {
	if runtime.GOOS == "windows" {
		sx, sy := g.window.GetContentScale()
		return float32(int((sx + sy) / 2))
	} else if ds := g.DisplaySize(); ds[0] > 0 {
		return g.FramebufferSize()[0] / ds[0]
	}
	return 1
}

func (g *glfwPlatform) EnableVSync(sync bool) {
	if sync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

func (g *glfwPlatform) GetAllMonitorNames() []string {
	var monitorNames []string
	for index, monitor := range glfw.GetMonitors() {
		monitorNames = append(monitorNames, "("+strconv.Itoa(index)+") "+monitor.GetName())
	}
	return monitorNames
}

func (g *glfwPlatform) MonitorCallback(monitor *glfw.Monitor, event glfw.PeripheralEvent) {
	if event == glfw.Disconnected {
		g.lg.Infof("Monitor %q disconnected", monitor.GetName())
		g.config.FullScreenMonitor = 0
		g.config.StartInFullScreen = false
	}
}

func (g *glfwPlatform) Dispose() {
	g.window.Destroy()
	glfw.Terminate()
}

func (g *glfwPlatform) ShouldStop() bool {
	return g.window.ShouldClose()
}

func (g *glfwPlatform) CancelShouldStop() {
	g.window.SetShouldClose(false)
}

func (g *glfwPlatform) ProcessEvents() bool {
	g.inputCharacters = ""
	g.anyEvents = false
	g.wheel = [2]float32{}
	clear(g.keysPressed)
	g.mouseReleased = [MouseButtonCount]bool{}

	glfw.PollEvents()

	if g.anyEvents {
		return true
	}

	for b := MouseButtonPrimary; b < MouseButtonCount; b++ {
		if g.window.GetMouseButton(glfwButtonIDByIndex[b]) == glfw.Press {
			return true
		}
	}

	x, y := g.window.GetCursorPos()
	if x != g.lastMouseX || y != g.lastMouseY {
		g.lastMouseX, g.lastMouseY = x, y
		return true
	}

	return false
}

func (g *glfwPlatform) DisplaySize() [2]float32 {
	w, h := g.window.GetSize()
	return [2]float32{float32(w), float32(h)}
}

func (g *glfwPlatform) WindowSize() [2]int {
	w, h := g.window.GetSize()
	return [2]int{w, h}
}

func (g *glfwPlatform) WindowPosition() [2]int {
	x, y := g.window.GetPos()
	return [2]int{x, y}
}

func (g *glfwPlatform) FramebufferSize() [2]float32 {
	w, h := g.window.GetFramebufferSize()
	return [2]float32{float32(w), float32(h)}
}

func (g *glfwPlatform) Time() float64 {
	return glfw.GetTime() - g.startTime
}

func (g *glfwPlatform) NewFrame() {
	if g.multisample {
		gl.Enable(gl.MULTISAMPLE)
	}
}

func (g *glfwPlatform) getCursorPos() [2]float32 {
	x, y := g.window.GetCursorPos()
	return [2]float32{float32(int(x)), float32(int(y))}
}

func (g *glfwPlatform) PostRender() {
	g.window.SwapBuffers()
}

func (g *glfwPlatform) installCallbacks() {
	g.window.SetMouseButtonCallback(g.mouseButtonChange)
	g.window.SetScrollCallback(g.mouseScrollChange)
	g.window.SetKeyCallback(g.keyChange)
	g.window.SetCharCallback(g.charChange)
}

var glfwButtonIndexByID = map[glfw.MouseButton]MouseButton{
	glfw.MouseButton1: MouseButtonPrimary,
	glfw.MouseButton2: MouseButtonSecondary,
	glfw.MouseButton3: MouseButtonTertiary,
}

var glfwButtonIDByIndex = map[MouseButton]glfw.MouseButton{
	MouseButtonPrimary:   glfw.MouseButton1,
	MouseButtonSecondary: glfw.MouseButton2,
	MouseButtonTertiary:  glfw.MouseButton3,
}

func (g *glfwPlatform) mouseButtonChange(window *glfw.Window, rawButton glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	buttonIndex, known := glfwButtonIndexByID[rawButton]
	if !known {
		return
	}

	g.anyEvents = true
	g.modifiers = mods
	switch action {
	case glfw.Press:
		g.mouseJustPressed[buttonIndex] = true
	case glfw.Release:
		g.mouseReleased[buttonIndex] = true
	}
}

func (g *glfwPlatform) mouseScrollChange(window *glfw.Window, x, y float64) {
	g.anyEvents = true
	g.wheel[0] += float32(x)
	g.wheel[1] += float32(y)
}

func (g *glfwPlatform) keyChange(window *glfw.Window, keycode glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	g.anyEvents = true
	g.modifiers = mods

	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	if k, ok := glfwKeyToKey(keycode); ok {
		g.keysPressed[k] = struct{}{}
	}
}

func (g *glfwPlatform) charChange(window *glfw.Window, char rune) {
	g.anyEvents = true
	g.inputCharacters += string(char)
}

func (g *glfwPlatform) SetWindowTitle(text string) {
	if text != g.windowTitle {
		g.window.SetTitle(text)
		g.windowTitle = text
	}
}
