// pkg/platform/platform.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nightcore/gl2d/pkg/log"
)

// Platform is the interface that abstracts platform-specific features like
// creating windows and keyboard and mouse handling.
type Platform interface {
	// NewFrame marks the beginning of a render pass.
	NewFrame()
	// ProcessEvents handles all pending window events. Returns true if
	// there were any events and false otherwise.
	ProcessEvents() bool
	// PostRender performs the buffer swap.
	PostRender()
	// Dispose is called when the application is shutting down and is when
	// resources are be freed.
	Dispose()
	// ShouldStop returns true if the window is to be closed.
	ShouldStop() bool
	// CancelShouldStop cancels a user's request to close the window.
	CancelShouldStop()
	// SetWindowTitle sets the title of the application window.
	SetWindowTitle(text string)
	// EnableVSync specifies whether v-sync should be used when rendering;
	// v-sync is on by default and should only be disabled for benchmarking.
	EnableVSync(sync bool)
	// EnableFullScreen switches between the application running in windowed and fullscreen mode.
	EnableFullScreen(fullscreen bool)
	// IsFullScreen returns true if the application is in full-screen mode.
	IsFullScreen() bool
	// GetAllMonitorNames returns the names of all available monitors.
	GetAllMonitorNames() []string
	// DisplaySize returns the dimension of the display.
	DisplaySize() [2]float32
	// WindowSize returns the size of the window.
	WindowSize() [2]int
	// WindowPosition returns the position of the window on the screen.
	WindowPosition() [2]int
	// FramebufferSize returns the dimension of the framebuffer.
	FramebufferSize() [2]float32
	// DPIScale is the scaling factor to account for Retina-style displays.
	DPIScale() float32
	// Time returns the number of seconds since the platform was created.
	Time() float64

	GetMouse() *MouseState
	GetKeyboard() *KeyboardState
}

///////////////////////////////////////////////////////////////////////////
// Config

// Config holds the window settings that persist across runs.
type Config struct {
	InitialWindowSize     [2]int
	InitialWindowPosition [2]int

	EnableMSAA bool
	// VSync is a pointer so that configs saved before it existed get the
	// default.
	VSync *bool

	StartInFullScreen bool
	FullScreenMonitor int
}

func DefaultConfig() *Config {
	return &Config{
		InitialWindowSize:     [2]int{1280, 720},
		InitialWindowPosition: [2]int{100, 100},
		EnableMSAA:            true,
	}
}

func (c *Config) VSyncEnabled() bool {
	return c.VSync == nil || *c.VSync
}

func (c *Config) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(c)
}

// Save writes the config to the given path, creating its directory if
// necessary.
func (c *Config) Save(path string, lg *log.Logger) error {
	lg.Infof("Saving config to: %s", path)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.Encode(f)
}

// LoadOrMakeDefaultConfig returns the config stored at path. A missing file
// gives the default config without an error; a corrupt one gives the
// default config along with the decoding error.
func LoadOrMakeDefaultConfig(path string, lg *log.Logger) (*Config, error) {
	lg.Infof("Loading config from: %s", path)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	} else if err != nil {
		return DefaultConfig(), err
	}
	defer f.Close()

	config := DefaultConfig()
	if err := json.NewDecoder(f).Decode(config); err != nil {
		lg.Warnf("%s: %v", path, err)
		return DefaultConfig(), err
	}
	if config.InitialWindowSize[0] < 0 || config.InitialWindowSize[1] < 0 {
		config.InitialWindowSize = [2]int{}
	}
	return config, nil
}

// ConfigFilePath returns the path of the config file in the user's config
// directory for the named application.
func ConfigFilePath(app string, lg *log.Logger) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		lg.Errorf("Unable to find user config dir: %v", err)
		dir = "."
	}
	return filepath.Join(dir, app, "config.json")
}
