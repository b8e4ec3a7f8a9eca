package noise

// GradientSet is the ordered set of direction vectors with components in
// {-1, 0, 1}, excluding the zero vector. It holds 3^d-1 entries.
type GradientSet [][]float64

var sharedGradients = map[int]GradientSet{
	2: BuildGradients(2),
	3: BuildGradients(3),
	4: BuildGradients(4),
}

// Gradients returns the precomputed set for d in [2,4], or nil otherwise.
// The returned set is shared and must not be modified.
func Gradients(d int) GradientSet {
	return sharedGradients[d]
}

// BuildGradients enumerates every assignment of {-1,0,1} to d components,
// first component varying slowest, and drops the all-zero tuple.
func BuildGradients(d int) GradientSet {
	if d <= 0 {
		return nil
	}
	total := 1
	for i := 0; i < d; i++ {
		total *= 3
	}
	out := make(GradientSet, 0, total-1)
	current := make([]float64, d)
	enumerateGradients(current, 0, &out)
	return out
}

func enumerateGradients(current []float64, axis int, out *GradientSet) {
	if axis == len(current) {
		if !isZero(current) {
			v := make([]float64, len(current))
			copy(v, current)
			*out = append(*out, v)
		}
		return
	}
	for c := -1.0; c <= 1.0; c++ {
		current[axis] = c
		enumerateGradients(current, axis+1, out)
	}
}

func isZero(v []float64) bool {
	for _, c := range v {
		if c != 0 {
			return false
		}
	}
	return true
}
