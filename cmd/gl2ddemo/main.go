// cmd/gl2ddemo/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// gl2ddemo opens a window and draws a scene that exercises the renderer's
// shapes, images, text, and drawables until Escape is pressed or the
// window is closed.

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/nightcore/gl2d/pkg/log"
	"github.com/nightcore/gl2d/pkg/platform"
	"github.com/nightcore/gl2d/pkg/renderer"
	"github.com/nightcore/gl2d/pkg/util"
)

var (
	logLevel     = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir       = flag.String("logdir", "", "log file directory")
	resourcesDir = flag.String("resources", "", "directory to load fonts and images from")
	width        = flag.Int("width", 1280, "logical width of the scene")
	height       = flag.Int("height", 720, "logical height of the scene")
	configFile   = flag.String("config", "", "path of the window configuration file")
	forceSDF     = flag.String("sdf", "", "force SDF text rendering on or off (\"on\", \"off\")")
	statsPeriod  = flag.Duration("stats", 10*time.Second, "how often to log renderer statistics")
)

func init() {
	// OpenGL and glfw require that all calls be made from the main thread.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)

	if *width <= 0 || *height <= 0 {
		fmt.Fprintf(os.Stderr, "%dx%d: invalid scene resolution\n", *width, *height)
		os.Exit(1)
	}

	assets, err := util.NewResourcesFS(*resourcesDir)
	if err != nil {
		lg.Errorf("Unable to find resources: %v", err)
		fmt.Fprintf(os.Stderr, "Unable to find resources: %v\n", err)
		os.Exit(1)
	}

	cfgPath := *configFile
	if cfgPath == "" {
		cfgPath = platform.ConfigFilePath("gl2d", lg)
	}
	config, err := platform.LoadOrMakeDefaultConfig(cfgPath, lg)
	if err != nil {
		lg.Warnf("%s: using default configuration: %v", cfgPath, err)
	}

	plat, err := platform.New(config, lg)
	if err != nil {
		lg.Errorf("Unable to create application window: %v", err)
		fmt.Fprintf(os.Stderr, "Unable to create application window: %v\n", err)
		os.Exit(1)
	}

	r, err := renderer.NewOpenGL3Renderer(lg)
	if err != nil {
		lg.Errorf("Unable to initialize OpenGL: %v", err)
		plat.Dispose()
		os.Exit(1)
	}

	opts := renderer.Options{
		Width:  *width,
		Height: *height,
		Assets: assets,
	}
	switch *forceSDF {
	case "on", "off":
		v := *forceSDF == "on"
		opts.ForceSDF = &v
	case "":
	default:
		lg.Warnf("%s: unknown -sdf value; using the GPU default", *forceSDF)
	}

	ctx := renderer.NewContext(r, opts, lg)
	if err := ctx.Initialize(); err != nil {
		// The context stays usable but draws nothing.
		lg.Errorf("Renderer initialization failed: %v", err)
	}

	scene := newScene(ctx, lg)

	var vp renderer.Viewport
	lastStats := time.Now()
	for {
		plat.ProcessEvents()
		kb := plat.GetKeyboard()
		if kb.WasPressed(platform.KeyEscape) || plat.ShouldStop() {
			break
		}
		if f, _ := platform.KeyForLetter('f'); kb.WasPressed(f) {
			plat.EnableFullScreen(!plat.IsFullScreen())
		}
		scene.handleInput(ctx, kb, plat.GetMouse(), plat.DPIScale(), vp)

		plat.NewFrame()
		fb := plat.FramebufferSize()
		vp = ctx.BeginFrame(int(fb[0]), int(fb[1]))
		scene.draw(ctx, plat.Time())
		plat.PostRender()

		if time.Since(lastStats) > *statsPeriod {
			lg.Info("renderer", "stats", ctx.Stats(), "viewport", vp)
			plat.SetWindowTitle(fmt.Sprintf("gl2d: %d glyphs rasterized", ctx.Text().RasterizeCount()))
			lastStats = time.Now()
		}
	}

	config.InitialWindowSize = plat.WindowSize()
	config.InitialWindowPosition = plat.WindowPosition()
	if err := config.Save(cfgPath, lg); err != nil {
		lg.Errorf("%s: unable to save configuration: %v", cfgPath, err)
	}

	scene.unload()
	ctx.Shutdown()
	r.Dispose()
	plat.Dispose()
}
