// pkg/renderer/gpu.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"regexp"
	"strings"
)

var atiVendor = regexp.MustCompile(`\bati\b`)

// IsIntegratedGPU guesses from the vendor and renderer strings reported
// by the graphics driver whether the GPU is an integrated one.
func IsIntegratedGPU(vendor, renderer string) bool {
	vendor, renderer = strings.ToLower(vendor), strings.ToLower(renderer)

	if strings.Contains(vendor, "intel") {
		return true
	}

	amd := strings.Contains(vendor, "amd") || strings.Contains(vendor, "advanced micro devices") ||
		atiVendor.MatchString(vendor)
	if !amd {
		return false
	}

	integrated := false
	for _, s := range []string{"radeon(tm)", "radeon graphics", "mobile", "vega", "apu"} {
		if strings.Contains(renderer, s) {
			integrated = true
			break
		}
	}
	// Discrete Radeon RX parts are named without "graphics".
	if strings.Contains(renderer, "rx") && !strings.Contains(renderer, "graphics") {
		integrated = false
	}
	return integrated
}

// UseSDFForGPU reports whether glyphs should be rendered as signed
// distance fields on the given GPU; it is disabled on integrated GPUs.
func UseSDFForGPU(vendor, renderer string) bool {
	return !IsIntegratedGPU(vendor, renderer)
}
