package palette

import (
	"fmt"
	"image/color"
	"math"
)

const (
	// CacheSize is the number of precomputed colors in every ColorMap.
	CacheSize = 256

	lastIndex = CacheSize - 1
)

// ColorMap is a fixed 256-entry lookup table sampled once from an
// Interpolator. Resolution limits how many of those entries ColorAt can
// reach, which posterizes the output without rebuilding the table.
//
// A ColorMap is not safe for concurrent use while its resolution is being
// changed; callers sharing one across goroutines must synchronize.
type ColorMap struct {
	cache        [CacheSize]color.RGBA
	interpolator Interpolator
	resolution   int
	colorCount   int
}

// New samples interp at i/255 for every cache slot. A nil interp selects
// Linear. At least one stop is required.
func New(interp Interpolator, stops ...color.RGBA) (*ColorMap, error) {
	if len(stops) == 0 {
		return nil, ErrEmptyColorSequence
	}
	if interp == nil {
		interp = Linear
	}

	m := &ColorMap{
		interpolator: interp,
		resolution:   CacheSize,
		colorCount:   len(stops),
	}
	for i := 0; i < CacheSize; i++ {
		c, err := interp.Interpolate(float64(i)/lastIndex, stops)
		if err != nil {
			return nil, fmt.Errorf("failed to sample %s interpolator: %w", interp.Name(), err)
		}
		m.cache[i] = c
	}
	return m, nil
}

// NewFromHex builds a map from packed 0xRRGGBB stops.
func NewFromHex(interp Interpolator, hexes ...int) (*ColorMap, error) {
	return New(interp, HexColors(hexes)...)
}

// ColorAt maps a weight (clamped to [0,1]) to a cached color.
func (m *ColorMap) ColorAt(weight float64) color.RGBA {
	weight = clampWeight(weight)

	effectiveLast := m.resolution - 1
	if effectiveLast <= 0 {
		return m.cache[0]
	}
	scaled := math.Round(weight * float64(effectiveLast))
	index := int(math.Round(scaled / float64(effectiveLast) * lastIndex))
	return m.cache[index]
}

// Resolution returns the number of reachable cache entries.
func (m *ColorMap) Resolution() int { return m.resolution }

// ColorCount returns the number of stops the map was built from.
func (m *ColorMap) ColorCount() int { return m.colorCount }

// Interpolator returns the strategy the cache was sampled with.
func (m *ColorMap) Interpolator() Interpolator { return m.interpolator }

// SetResolution clamps r into [0, 256]. Unlike DecreaseResolution it does
// not enforce ColorCount as a floor.
func (m *ColorMap) SetResolution(r int) {
	m.resolution = max(0, min(CacheSize, r))
}

// IncreaseResolution doubles the resolution, capped at 256.
func (m *ColorMap) IncreaseResolution() {
	m.resolution = min(CacheSize, m.resolution*2)
}

// DecreaseResolution halves the resolution but never below ColorCount, so
// every input stop stays reachable.
func (m *ColorMap) DecreaseResolution() {
	m.resolution = max(m.colorCount, m.resolution/2)
}

// Entries returns a copy of the full cache.
func (m *ColorMap) Entries() [CacheSize]color.RGBA {
	return m.cache
}
