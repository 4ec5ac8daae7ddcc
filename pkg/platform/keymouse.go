// pkg/platform/keymouse.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

import (
	"maps"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type MouseButton int

const (
	MouseButtonPrimary MouseButton = iota
	MouseButtonSecondary
	MouseButtonTertiary
	MouseButtonCount
)

type MouseState struct {
	Pos      [2]float32
	Down     [MouseButtonCount]bool
	Clicked  [MouseButtonCount]bool
	Released [MouseButtonCount]bool
	Wheel    [2]float32
}

func (g *glfwPlatform) GetMouse() *MouseState {
	m := &MouseState{
		Pos:      g.getCursorPos(),
		Released: g.mouseReleased,
		Wheel:    g.wheel,
	}

	for b := MouseButtonPrimary; b < MouseButtonCount; b++ {
		m.Down[b] = g.window.GetMouseButton(glfwButtonIDByIndex[b]) == glfw.Press
		m.Clicked[b] = g.mouseJustPressed[b]
		g.mouseJustPressed[b] = false
	}

	return m
}

// Key identifies the keys the platform reports; others are ignored.
type Key int

const (
	KeyEscape Key = iota
	KeyEnter
	KeySpace
	KeyTab
	KeyBackspace
	KeyLeftArrow
	KeyRightArrow
	KeyUpArrow
	KeyDownArrow
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyA
	// KeyA through KeyZ are contiguous.
	KeyZ = KeyA + 25
)

var glfwKeys = map[glfw.Key]Key{
	glfw.KeyEscape:    KeyEscape,
	glfw.KeyEnter:     KeyEnter,
	glfw.KeyKPEnter:   KeyEnter,
	glfw.KeySpace:     KeySpace,
	glfw.KeyTab:       KeyTab,
	glfw.KeyBackspace: KeyBackspace,
	glfw.KeyLeft:      KeyLeftArrow,
	glfw.KeyRight:     KeyRightArrow,
	glfw.KeyUp:        KeyUpArrow,
	glfw.KeyDown:      KeyDownArrow,
	glfw.KeyPageUp:    KeyPageUp,
	glfw.KeyPageDown:  KeyPageDown,
	glfw.KeyHome:      KeyHome,
	glfw.KeyEnd:       KeyEnd,
}

func glfwKeyToKey(k glfw.Key) (Key, bool) {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return KeyA + Key(k-glfw.KeyA), true
	case k >= glfw.KeyF1 && k <= glfw.KeyF12:
		return KeyF1 + Key(k-glfw.KeyF1), true
	}
	key, ok := glfwKeys[k]
	return key, ok
}

// KeyForLetter returns the Key for an ASCII letter, either case.
func KeyForLetter(ch byte) (Key, bool) {
	switch {
	case ch >= 'a' && ch <= 'z':
		return KeyA + Key(ch-'a'), true
	case ch >= 'A' && ch <= 'Z':
		return KeyA + Key(ch-'A'), true
	default:
		return 0, false
	}
}

type KeyboardState struct {
	Input string
	// A key shows up here once each time it is pressed (though repeatedly
	// if key repeat kicks in.)
	Pressed map[Key]struct{}

	shift, control, alt, super bool
}

func (g *glfwPlatform) GetKeyboard() *KeyboardState {
	return &KeyboardState{
		Input:   g.inputCharacters,
		Pressed: maps.Clone(g.keysPressed),
		shift:   g.modifiers&glfw.ModShift != 0,
		control: g.modifiers&glfw.ModControl != 0,
		alt:     g.modifiers&glfw.ModAlt != 0,
		super:   g.modifiers&glfw.ModSuper != 0,
	}
}

func (k *KeyboardState) KeyShift() bool   { return k.shift }
func (k *KeyboardState) KeyControl() bool { return k.control }
func (k *KeyboardState) KeyAlt() bool     { return k.alt }
func (k *KeyboardState) KeySuper() bool   { return k.super }

func (k *KeyboardState) WasPressed(key Key) bool {
	_, ok := k.Pressed[key]
	return ok
}
