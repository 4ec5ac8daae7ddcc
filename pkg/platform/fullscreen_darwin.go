// pkg/platform/fullscreen_darwin.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

/*
#cgo darwin CFLAGS: -x objective-c
#cgo darwin LDFLAGS: -framework Cocoa

#include <Cocoa/Cocoa.h>

// Function to set macOS specific properties
void makeFullscreenNative(void *window) {
    NSWindow *nswindow = ((NSWindow*)window);
    [nswindow setCollectionBehavior: NSWindowCollectionBehaviorFullScreenPrimary];
    [nswindow toggleFullScreen:nil];
}

// Function to check if the window is in native fullscreen mode
int isNativeFullscreen(void *window) {
    NSWindow *nswindow = ((NSWindow*)window);
    return (nswindow.styleMask & NSWindowStyleMaskFullScreen) == NSWindowStyleMaskFullScreen ? 1 : 0;
}

*/
import "C"

// EnableFullScreen toggles macOS native fullscreen when the requested
// state differs from the current one.
func (g *glfwPlatform) EnableFullScreen(fullscreen bool) {
	if fullscreen != g.IsFullScreen() {
		C.makeFullscreenNative(g.window.GetCocoaWindow())
	}
	g.config.StartInFullScreen = fullscreen
}

func (g *glfwPlatform) IsFullScreen() bool {
	return g.window.GetMonitor() != nil || C.isNativeFullscreen(g.window.GetCocoaWindow()) == 1
}
