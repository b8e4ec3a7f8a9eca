// Package palette converts between RGB and HSL, blends ordered color stops
// with interchangeable strategies, and caches the result in a 256-entry
// lookup table for per-pixel color mapping.
package palette

import (
	"image/color"
	"math"
)

// MaxHex is the largest packed 0xRRGGBB value.
const MaxHex = 0xFFFFFF

// Clamp saturates v into [0, 255].
func Clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// ClampHex saturates v into [0, 0xFFFFFF].
func ClampHex(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxHex {
		return MaxHex
	}
	return v
}

// HexToRGB unpacks a clamped 0xRRGGBB value into an opaque color.
func HexToRGB(hex int) color.RGBA {
	hex = ClampHex(hex)
	return color.RGBA{
		R: uint8(hex >> 16 & 0xFF),
		G: uint8(hex >> 8 & 0xFF),
		B: uint8(hex & 0xFF),
		A: 255,
	}
}

// RGBToHex packs c into 0xRRGGBB, ignoring alpha.
func RGBToHex(c color.RGBA) int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

// HexColors unpacks each value with HexToRGB.
func HexColors(hexes []int) []color.RGBA {
	out := make([]color.RGBA, len(hexes))
	for i, h := range hexes {
		out[i] = HexToRGB(h)
	}
	return out
}

// RGBToHSL returns hue in [0,360) and saturation and lightness in [0,1].
func RGBToHSL(c color.RGBA) (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxv := math.Max(math.Max(r, g), b)
	minv := math.Min(math.Min(r, g), b)
	delta := maxv - minv

	l = (maxv + minv) / 2
	if delta == 0 {
		return 0, 0, l
	}

	s = delta / (1 - math.Abs(2*l-1))

	switch maxv {
	case r:
		h = math.Mod(60*((g-b)/delta)+360, 360)
	case g:
		h = math.Mod(60*((b-r)/delta)+120, 360)
	default:
		h = math.Mod(60*((r-g)/delta)+240, 360)
	}
	return h, s, l
}

// HSLToRGB converts with the chroma/X/m decomposition. Hue wraps into
// [0,360); channels are rounded and clamped.
func HSLToRGB(h, s, l float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g = c, x
	case h < 120:
		r, g = x, c
	case h < 180:
		g, b = c, x
	case h < 240:
		g, b = x, c
	case h < 300:
		r, b = x, c
	default:
		r, b = c, x
	}

	return color.RGBA{
		R: toChannel(r + m),
		G: toChannel(g + m),
		B: toChannel(b + m),
		A: 255,
	}
}

func toChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return Clamp(int(math.Round(v * 255)))
}
