package noise

import (
	"fmt"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Source samples a scalar field at a 2D position and a time-like z.
type Source interface {
	Sample(x, y, z float64) float64
}

// Kind names a noise backend.
type Kind string

const (
	KindGradient Kind = "gradient"
	KindPerlin   Kind = "perlin"
	KindSimplex  Kind = "simplex"
)

// Kinds lists the supported backends in display order.
var Kinds = []Kind{KindGradient, KindPerlin, KindSimplex}

// ParseKind resolves a backend name case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// NewSource builds a Source for kind. dimensions only applies to the
// gradient engine; the other backends are always sampled in 3D.
func NewSource(kind Kind, seed int64, dimensions int) (Source, error) {
	switch kind {
	case KindGradient:
		e, err := New(seed, dimensions)
		if err != nil {
			return nil, err
		}
		return &EngineSource{Engine: e}, nil
	case KindPerlin:
		return NewPerlinSource(seed), nil
	case KindSimplex:
		return NewSimplexSource(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Normalize maps signed noise in roughly [-1,1] onto [0,1]. Values outside
// that range are passed through; color lookups clamp them.
func Normalize(v float64) float64 {
	return (v + 1) / 2
}

// EngineSource adapts an Engine to Source. A 2D engine scrolls along x by z,
// a 3D engine uses z as its third axis, and a 4D engine additionally samples
// the fixed fourth coordinate W.
type EngineSource struct {
	Engine *Engine
	W      float64
}

// Sample implements Source.
func (s *EngineSource) Sample(x, y, z float64) float64 {
	switch s.Engine.Dimensions() {
	case 2:
		return s.Engine.Noise(x+z, y)
	case 3:
		return s.Engine.Noise(x, y, z)
	default:
		return s.Engine.Noise(x, y, z, s.W)
	}
}

// PerlinSource samples classic Perlin noise from github.com/aquilax/go-perlin.
type PerlinSource struct {
	p *perlin.Perlin
}

// NewPerlinSource uses a single octave so the output stays comparable to
// the gradient engine; layer octaves with FBM instead.
func NewPerlinSource(seed int64) *PerlinSource {
	return &PerlinSource{p: perlin.NewPerlin(2.0, 2.0, 1, seed)}
}

// Sample implements Source using go-perlin's 3D noise.
func (s *PerlinSource) Sample(x, y, z float64) float64 {
	return s.p.Noise3D(x, y, z)
}

// SimplexSource samples OpenSimplex noise.
type SimplexSource struct {
	n opensimplex.Noise
}

// NewSimplexSource seeds an OpenSimplex generator.
func NewSimplexSource(seed int64) *SimplexSource {
	return &SimplexSource{n: opensimplex.New(seed)}
}

// Sample implements Source using Eval3.
func (s *SimplexSource) Sample(x, y, z float64) float64 {
	return s.n.Eval3(x, y, z)
}
