// Package ansiconv degrades colors between the fidelity levels a terminal
// may support: 24-bit truecolor, the 256-color ANSI palette, and the
// grayscale ramp used for the Grayscale color-support level. Terminals
// with NoColor support are not degraded here; the emitter writes black
// for them.
package ansiconv

import (
	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/kungfusheep/bezel/style"
)

// ToAnsi256 degrades an RGB color to the nearest entry in the 256-color
// palette, using charmbracelet/x/ansi's palette table for the search.
func ToAnsi256(c style.Color) uint8 {
	if c.Kind == style.ColorAnsi {
		return c.Ansi
	}
	target := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	best := uint8(0)
	bestDist := -1.0
	for i := 0; i < 256; i++ {
		rgb := ansi.ExtendedColor(i)
		r, g, b, _ := rgb.RGBA()
		pc := colorful.Color{R: float64(r) / 0xffff, G: float64(g) / 0xffff, B: float64(b) / 0xffff}
		d := target.DistanceCIE76(pc)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = uint8(i)
		}
	}
	return best
}

// ToGrayscaleAnsi256 degrades a color to one of the 24 grayscale ramp
// entries (indices 232-255) via perceptual luminance, for terminals that
// support only ANSI256 but are being rendered for a grayscale-preferring
// theme or accessibility mode.
func ToGrayscaleAnsi256(c style.Color) uint8 {
	var cf colorful.Color
	if c.Kind == style.ColorRgb {
		cf = colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	} else {
		// Approximate a basic ANSI palette entry's luminance.
		v := float64(c.Ansi) / 255
		cf = colorful.Color{R: v, G: v, B: v}
	}
	l, _, _ := cf.Lab()
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	// Grayscale ramp: 232 (darkest) .. 255 (lightest), 24 steps.
	step := uint8(l * 23)
	return 232 + step
}

// Black is palette entry 0, the color NoColor support degrades to (§4.1.1
// color table: "black" for both foreground and background). The emitter
// does not reference it; it writes the basic SGR black codes 30/40.
var Black = style.Ansi256(0)
