package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Theme holds the visualizer's accent colors as packed 0xRRGGBB values.
type Theme struct {
	Primary   int
	Secondary int
	Tertiary  int
	Dark      int
	Light     int
}

// DefaultTheme is the stock accent palette.
var DefaultTheme = Theme{
	Primary:   0xE6C600,
	Secondary: 0xE6008B,
	Tertiary:  0x00D9F5,
	Dark:      0x282B28,
	Light:     0xFFFFFF,
}

// Stops orders the theme dark to light through the three accents.
func (t Theme) Stops() []color.RGBA {
	return HexColors([]int{t.Dark, t.Tertiary, t.Secondary, t.Primary, t.Light})
}

var presets = map[string][]int{
	"mono":  {0x000000, 0xFFFFFF},
	"fire":  {0x000000, 0x8B0000, 0xFF4500, 0xFFD700, 0xFFFFFF},
	"ocean": {0x001F3F, 0x0074D9, 0x7FDBFF, 0xF0F8FF},
}

// DefaultPreset is used when no stops are configured.
const DefaultPreset = "mono"

// Preset returns the stops of a named preset. "theme" resolves to
// DefaultTheme.Stops().
func Preset(name string) ([]color.RGBA, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "theme" {
		return DefaultTheme.Stops(), nil
	}
	hexes, ok := presets[n]
	if !ok {
		return nil, fmt.Errorf("unknown palette preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return HexColors(hexes), nil
}

// PresetNames lists the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets)+1)
	for n := range presets {
		names = append(names, n)
	}
	names = append(names, "theme")
	sort.Strings(names)
	return names
}
