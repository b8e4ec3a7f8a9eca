package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrEmptyColorSequence is returned when no color stops are supplied.
	ErrEmptyColorSequence = errors.New("palette: at least one color must be provided")

	// ErrUnknownInterpolator is returned by InterpolatorByName.
	ErrUnknownInterpolator = errors.New("palette: unknown interpolator")
)

// Interpolator blends an ordered sequence of stops at a weight in [0,1].
// Weights outside that range are clamped.
type Interpolator interface {
	Interpolate(weight float64, stops []color.RGBA) (color.RGBA, error)
	Name() string
}

// LinearRGB blends each channel linearly between neighbouring stops.
type LinearRGB struct{}

// CosineRGB eases the local weight with (1 - cos(w*pi)) / 2 before a
// per-channel blend, slowing transitions near each stop.
type CosineRGB struct{}

// LinearHSL blends hue, saturation and lightness independently. Hue is
// blended as a raw angle, so a transition may go the long way around the
// color wheel.
type LinearHSL struct{}

var (
	Linear Interpolator = LinearRGB{}
	Cosine Interpolator = CosineRGB{}
	HSL    Interpolator = LinearHSL{}
)

// Interpolators lists the available strategies in display order.
var Interpolators = []Interpolator{Linear, Cosine, HSL}

// InterpolatorByName resolves "linear", "cosine" or "hsl".
func InterpolatorByName(name string) (Interpolator, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, in := range Interpolators {
		if in.Name() == n {
			return in, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownInterpolator, name)
}

// Name implements Interpolator.
func (LinearRGB) Name() string { return "linear" }

// Name implements Interpolator.
func (CosineRGB) Name() string { return "cosine" }

// Name implements Interpolator.
func (LinearHSL) Name() string { return "hsl" }

// Interpolate blends the bracketing stops per channel at the local weight.
func (LinearRGB) Interpolate(weight float64, stops []color.RGBA) (color.RGBA, error) {
	c1, c2, w, ok, err := segment(weight, stops)
	if !ok {
		return c1, err
	}
	return blendRGB(c1, c2, w), nil
}

// Interpolate eases the local weight, then blends like LinearRGB.
func (CosineRGB) Interpolate(weight float64, stops []color.RGBA) (color.RGBA, error) {
	c1, c2, w, ok, err := segment(weight, stops)
	if !ok {
		return c1, err
	}
	w = (1 - math.Cos(w*math.Pi)) / 2
	return blendRGB(c1, c2, w), nil
}

// Interpolate blends in HSL along the raw hue difference.
func (LinearHSL) Interpolate(weight float64, stops []color.RGBA) (color.RGBA, error) {
	c1, c2, w, ok, err := segment(weight, stops)
	if !ok {
		return c1, err
	}
	h1, s1, l1 := RGBToHSL(c1)
	h2, s2, l2 := RGBToHSL(c2)
	return HSLToRGB(
		h1+(h2-h1)*w,
		s1+(s2-s1)*w,
		l1+(l2-l1)*w,
	), nil
}

// segment picks the pair of stops bracketing weight and the local weight
// between them. ok is false when there is nothing to blend: c1 is then the
// only stop, or err is set. The last segment saturates with local weight 1
// so weight 1 yields the last stop exactly.
func segment(weight float64, stops []color.RGBA) (c1, c2 color.RGBA, local float64, ok bool, err error) {
	n := len(stops)
	if n == 0 {
		return color.RGBA{}, color.RGBA{}, 0, false, ErrEmptyColorSequence
	}
	if n == 1 {
		return stops[0], stops[0], 0, false, nil
	}

	weight = clampWeight(weight)
	segLen := 1.0 / float64(n-1)
	idx := int(weight / segLen)
	local = (weight - float64(idx)*segLen) / segLen
	if idx >= n-1 {
		idx = n - 2
		local = 1
	}
	return stops[idx], stops[idx+1], local, true, nil
}

// blendRGB mixes a and b in RGB space; RGB255 rounds each channel half up.
func blendRGB(a, b color.RGBA, w float64) color.RGBA {
	r, g, bl := toColorful(a).BlendRgb(toColorful(b), w).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 255}
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func clampWeight(w float64) float64 {
	if math.IsNaN(w) || w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}
