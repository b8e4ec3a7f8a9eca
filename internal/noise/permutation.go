package noise

const (
	// PermSize is the length of the doubled permutation table.
	PermSize = 512

	permMask = PermSize/2 - 1 // 255
)

// PermutationTable is a shuffled [0,256) followed by an exact copy of itself.
type PermutationTable [PermSize]int

// Intner draws a uniform integer in [0,n). *math/rand.Rand satisfies it.
type Intner interface {
	Intn(n int) int
}

// BuildPermutation shuffles [0,256) with a Fisher-Yates pass running from
// index 255 down to 1 and duplicates the result into [256,512).
func BuildPermutation(r Intner) PermutationTable {
	var p [PermSize / 2]int
	for i := range p {
		p[i] = i
	}
	for i := len(p) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}

	var t PermutationTable
	for i := 0; i < PermSize; i++ {
		t[i] = p[i&permMask]
	}
	return t
}

// JavaRandom is a 48-bit linear congruential generator with the constants
// and bounded-draw rejection rule of java.util.Random. A given seed produces
// the same permutation table as the reference noise visualizer.
type JavaRandom struct {
	state int64
}

const (
	lcgMultiplier = 0x5DEECE66D
	lcgIncrement  = 0xB
	lcgMask       = (int64(1) << 48) - 1
)

// NewJavaRandom returns a generator seeded the way java.util.Random(seed) is.
func NewJavaRandom(seed int64) *JavaRandom {
	return &JavaRandom{state: (seed ^ lcgMultiplier) & lcgMask}
}

func (r *JavaRandom) next(bits uint) int32 {
	r.state = (r.state*lcgMultiplier + lcgIncrement) & lcgMask
	return int32(uint64(r.state) >> (48 - bits))
}

// Int31 returns the next 32 random bits as a signed value.
func (r *JavaRandom) Int31() int32 {
	return r.next(32)
}

// Intn returns a uniform value in [0,n). It panics if n <= 0.
func (r *JavaRandom) Intn(n int) int {
	if n <= 0 {
		panic("noise: JavaRandom.Intn called with non-positive bound")
	}
	bound := int32(n)
	if bound&-bound == bound {
		return int((int64(bound) * int64(r.next(31))) >> 31)
	}
	for {
		bits := r.next(31)
		val := bits % bound
		// int32 overflow marks a draw from the biased tail.
		if bits-val+(bound-1) >= 0 {
			return int(val)
		}
	}
}
