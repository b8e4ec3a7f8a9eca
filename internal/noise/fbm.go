package noise

// FBM sums octaves of a base source. Each octave multiplies the frequency
// by Lacunarity and the amplitude by Gain; the sum is divided by the total
// amplitude so the range matches a single octave.
type FBM struct {
	Base       Source
	Octaves    int
	Lacunarity float64
	Gain       float64
}

// NewFBM returns base unchanged when octaves <= 1.
func NewFBM(base Source, octaves int, lacunarity, gain float64) Source {
	if octaves <= 1 {
		return base
	}
	return &FBM{Base: base, Octaves: octaves, Lacunarity: lacunarity, Gain: gain}
}

// Sample implements Source.
func (f *FBM) Sample(x, y, z float64) float64 {
	amp := 0.5
	freq := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < f.Octaves; i++ {
		sum += amp * f.Base.Sample(x*freq, y*freq, z*freq)
		norm += amp
		amp *= f.Gain
		freq *= f.Lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
