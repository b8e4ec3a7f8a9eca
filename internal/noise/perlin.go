package noise

import (
	"fmt"
	"math"
)

const (
	MinDimensions = 2
	MaxDimensions = 4

	maxCorners = 1 << MaxDimensions
)

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	rng Intner
}

// WithRand replaces the default JavaRandom generator used to shuffle the
// permutation table. The generator is only consulted during New.
func WithRand(r Intner) Option {
	return func(o *engineOptions) {
		o.rng = r
	}
}

// Engine evaluates gradient noise over a 2-, 3- or 4-dimensional lattice.
// It is immutable after New and safe for concurrent use.
type Engine struct {
	perm      PermutationTable
	gradients GradientSet
	seed      int64
	dims      int
}

// New builds an engine for the given seed and axis count.
func New(seed int64, dimensions int, opts ...Option) (*Engine, error) {
	if dimensions < MinDimensions || dimensions > MaxDimensions {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDimension, dimensions)
	}

	o := engineOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = NewJavaRandom(seed)
	}

	return &Engine{
		perm:      BuildPermutation(o.rng),
		gradients: Gradients(dimensions),
		seed:      seed,
		dims:      dimensions,
	}, nil
}

// Dimensions returns the number of axes the engine samples.
func (e *Engine) Dimensions() int { return e.dims }

// Seed returns the seed the engine was built with.
func (e *Engine) Seed() int64 { return e.seed }

// Permutation returns a copy of the engine's permutation table.
func (e *Engine) Permutation() PermutationTable { return e.perm }

// Gradients returns the shared gradient set for the engine's dimension count.
func (e *Engine) Gradients() GradientSet { return e.gradients }

// Noise samples the field at coords. Axes beyond len(coords) are taken as 0
// and coordinates beyond Dimensions are ignored. The result is roughly in
// [-1,1] but is not clamped.
func (e *Engine) Noise(coords ...float64) float64 {
	d := e.dims

	var (
		cell   [MaxDimensions]int
		offset [MaxDimensions]float64
		fades  [MaxDimensions]float64
	)
	for i := 0; i < d; i++ {
		var x float64
		if i < len(coords) {
			x = coords[i]
		}
		fl := math.Floor(x)
		cell[i] = int(fl) & permMask
		offset[i] = x - fl
		fades[i] = Fade(offset[i])
	}

	corners := 1 << d
	var values [maxCorners]float64
	var pos [MaxDimensions]float64
	for c := 0; c < corners; c++ {
		index := 0
		for j := 0; j < d; j++ {
			if c&(1<<j) != 0 {
				index = e.perm[(index+cell[j]+1)&permMask]
				pos[j] = offset[j] - 1
			} else {
				index = e.perm[(index+cell[j])&permMask]
				pos[j] = offset[j]
			}
		}
		values[c] = Grad(index, pos[:d])
	}

	// Collapse one axis per pass. Pairs (2i, 2i+1) differ only in the
	// lowest remaining axis bit, so axis 0 is reduced first and axis d-1
	// last, matching a recursive split on the highest bit.
	n := corners
	for axis := 0; axis < d; axis++ {
		half := n >> 1
		for i := 0; i < half; i++ {
			values[i] = Lerp(fades[axis], values[2*i], values[2*i+1])
		}
		n = half
	}
	return values[0]
}
