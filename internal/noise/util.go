package noise

// Fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3. Its first and second
// derivatives vanish at 0 and 1.
func Fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// Lerp blends a toward b by t.
func Lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// Grad is a sign-selected dot product: offset i counts positive when bit i
// of hash is set and negative otherwise.
func Grad(hash int, offsets []float64) float64 {
	sum := 0.0
	for i, v := range offsets {
		if hash&(1<<i) != 0 {
			sum += v
		} else {
			sum -= v
		}
	}
	return sum
}
