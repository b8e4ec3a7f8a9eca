// Package render turns a noise source and a color map into image frames.
//
// An Animator holds the viewport state of a scrolling noise field. A pixel
// step covers Detail*Frequency noise units; Frequency is the fixed base
// scale and Detail the zoom factor the mouse wheel used to drive. Z moves by
// Speed per frame and is scaled by Frequency only. Origin offsets the view
// in noise space. RenderAt is side-effect free; Next renders the current
// frame and advances z.
package render

import (
	"errors"
	"image"

	"github.com/paulmach/orb"

	"github.com/MeKo-Tech/noisemap/internal/noise"
	"github.com/MeKo-Tech/noisemap/internal/palette"
)

const (
	DefaultDetail    = 1.0
	DefaultSpeed     = 1.0
	DefaultFrequency = 0.01

	MinDetail = 0.01
	MaxDetail = 10.0

	DefaultSensitivity = 16.0
	MinSensitivity     = 2.0
	MaxSensitivity     = 18.0
	sensitivityStep    = 0.1
)

var (
	ErrNoSource   = errors.New("render: noise source is required")
	ErrNoColorMap = errors.New("render: color map is required")
	ErrFrameSize  = errors.New("render: frame width and height must be positive")
)

// Config describes the initial viewport. Zero Detail and Frequency select
// their defaults. Speed is used as given; zero freezes the animation.
type Config struct {
	Source    noise.Source
	Colors    *palette.ColorMap
	Detail    float64
	Frequency float64
	Speed     float64
	Origin    orb.Point
	Z         float64
}

// Animator is not safe for concurrent mutation. RenderAt may be called from
// many goroutines as long as nothing changes the viewport or the color map.
type Animator struct {
	source      noise.Source
	colors      *palette.ColorMap
	detail      float64
	frequency   float64
	speed       float64
	origin      orb.Point
	z           float64
	sensitivity float64
}

// NewAnimator validates cfg and fills in default detail and frequency.
func NewAnimator(cfg Config) (*Animator, error) {
	if cfg.Source == nil {
		return nil, ErrNoSource
	}
	if cfg.Colors == nil {
		return nil, ErrNoColorMap
	}
	detail := cfg.Detail
	if detail <= 0 {
		detail = DefaultDetail
	}
	freq := cfg.Frequency
	if freq <= 0 {
		freq = DefaultFrequency
	}
	return &Animator{
		source:      cfg.Source,
		colors:      cfg.Colors,
		detail:      detail,
		frequency:   freq,
		speed:       cfg.Speed,
		origin:      cfg.Origin,
		z:           cfg.Z,
		sensitivity: DefaultSensitivity,
	}, nil
}

// Detail returns the zoom factor applied to the pixel step.
func (a *Animator) Detail() float64 { return a.detail }

// Frequency returns the base noise units per pixel at detail 1.
func (a *Animator) Frequency() float64 { return a.frequency }

// Speed returns the z advance per frame.
func (a *Animator) Speed() float64 { return a.speed }

// Z returns the z the next frame is rendered at.
func (a *Animator) Z() float64 { return a.z }

// Origin returns the noise-space position of pixel (0, 0).
func (a *Animator) Origin() orb.Point { return a.origin }

// Sensitivity returns the current zoom divisor.
func (a *Animator) Sensitivity() float64 { return a.sensitivity }

// Colors returns the color map frames are painted with.
func (a *Animator) Colors() *palette.ColorMap { return a.colors }

// SetDetail sets the zoom factor without clamping.
func (a *Animator) SetDetail(d float64) { a.detail = d }

// SetSpeed sets the z advance per frame.
func (a *Animator) SetSpeed(s float64) { a.speed = s }

// SetZ moves the animation to z.
func (a *Animator) SetZ(z float64) { a.z = z }

// SetOrigin moves the viewport to o.
func (a *Animator) SetOrigin(o orb.Point) { a.origin = o }

// Sample returns the normalized noise value for pixel (x, y) at z.
func (a *Animator) Sample(x, y, z float64) float64 {
	step := a.detail * a.frequency
	return noise.Normalize(a.source.Sample(
		a.origin.X()+x*step,
		a.origin.Y()+y*step,
		z*a.frequency,
	))
}

// RenderAt colors a w×h frame sampled at z.
func (a *Animator) RenderAt(z float64, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrFrameSize
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			c := a.colors.ColorAt(a.Sample(float64(x), float64(y), z))
			o := x * 4
			row[o+0] = c.R
			row[o+1] = c.G
			row[o+2] = c.B
			row[o+3] = c.A
		}
	}
	return img, nil
}

// Next renders the frame at the current z and then advances z by Speed.
func (a *Animator) Next(w, h int) (*image.RGBA, error) {
	img, err := a.RenderAt(a.z, w, h)
	if err != nil {
		return nil, err
	}
	a.z += a.speed
	return img, nil
}

// ZoomIn shrinks detail by detail/sensitivity, so features grow on screen,
// and raises the sensitivity one step.
func (a *Animator) ZoomIn() {
	a.detail = max(MinDetail, a.detail-a.detail/a.sensitivity)
	a.sensitivity = min(MaxSensitivity, a.sensitivity+sensitivityStep)
}

// ZoomOut is the inverse step of ZoomIn.
func (a *Animator) ZoomOut() {
	a.detail = min(MaxDetail, a.detail+a.detail/a.sensitivity)
	a.sensitivity = max(MinSensitivity, a.sensitivity-sensitivityStep)
}

// Pan shifts the origin by (dx, dy) pixels at the current zoom.
func (a *Animator) Pan(dx, dy float64) {
	step := a.detail * a.frequency
	a.origin = orb.Point{a.origin.X() + dx*step, a.origin.Y() + dy*step}
}
