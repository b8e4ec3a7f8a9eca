package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("palette: invalid color")

// ParseColor accepts "#rgb", "#rrggbb", "0xRRGGBB" (clamped like HexToRGB)
// or an SVG color name such as "teal".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty string", ErrInvalidColor)
	}

	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "#"):
		c, err := colorful.Hex(lower)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	case strings.HasPrefix(lower, "0x"):
		v, err := strconv.ParseInt(lower[2:], 16, 64)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		return HexToRGB(int(v)), nil
	}

	if c, ok := colornames.Map[lower]; ok {
		c.A = 255
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// ParseColors parses every entry with ParseColor.
func ParseColors(values []string) ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(values))
	for i, v := range values {
		c, err := ParseColor(v)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// FormatHex renders c as "#rrggbb".
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%06x", RGBToHex(c))
}
