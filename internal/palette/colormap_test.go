package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresStops(t *testing.T) {
	_, err := New(Linear)
	assert.ErrorIs(t, err, ErrEmptyColorSequence)

	_, err = NewFromHex(Cosine)
	assert.ErrorIs(t, err, ErrEmptyColorSequence)
}

func TestNewDefaultsToLinear(t *testing.T) {
	m, err := New(nil, red, blue)
	require.NoError(t, err)
	assert.Equal(t, Linear, m.Interpolator())
	assert.Equal(t, 2, m.ColorCount())
	assert.Equal(t, CacheSize, m.Resolution())
}

func TestColorMapEndpoints(t *testing.T) {
	for _, in := range Interpolators {
		t.Run(in.Name(), func(t *testing.T) {
			m, err := New(in, red, blue)
			require.NoError(t, err)
			assert.Equal(t, red, m.ColorAt(0))
			assert.Equal(t, blue, m.ColorAt(1))
		})
	}
}

func TestColorMapMidpointNearInnerStop(t *testing.T) {
	// 0.5 lands on cache index 128, one step past the exact stop. The
	// deviation depends on the strategy: linear is {0 254 1}, cosine eases
	// back to {0 255 0}, and hsl drifts to {0 255 2}, two off in blue.
	tests := []struct {
		in    Interpolator
		want  color.RGBA
		delta float64
	}{
		{Linear, color.RGBA{G: 254, B: 1, A: 255}, 1},
		{Cosine, green, 0},
		{HSL, color.RGBA{G: 255, B: 2, A: 255}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.in.Name(), func(t *testing.T) {
			m, err := New(tt.in, red, green, blue)
			require.NoError(t, err)

			got := m.ColorAt(0.5)
			assert.Equal(t, tt.want, got)
			assert.InDelta(t, 0, int(got.R), tt.delta)
			assert.InDelta(t, 255, int(got.G), tt.delta)
			assert.InDelta(t, 0, int(got.B), tt.delta)
		})
	}
}

func TestColorMapClampsWeight(t *testing.T) {
	m, err := NewFromHex(Linear, 0x000000, 0xFFFFFF)
	require.NoError(t, err)
	assert.Equal(t, black, m.ColorAt(-2))
	assert.Equal(t, white, m.ColorAt(7))
}

func TestColorMapCacheSampling(t *testing.T) {
	m, err := NewFromHex(Linear, 0x000000, 0xFFFFFF)
	require.NoError(t, err)

	entries := m.Entries()
	for i, c := range entries {
		require.Equal(t, uint8(i), c.R, "entry %d", i)
		require.Equal(t, c.R, c.G)
		require.Equal(t, c.R, c.B)
		require.Equal(t, uint8(255), c.A)
	}

	entries[0] = white
	assert.Equal(t, black, m.ColorAt(0), "Entries must return a copy")
}

func TestResolutionBounds(t *testing.T) {
	m, err := New(Linear, red, blue)
	require.NoError(t, err)

	want := []int{128, 64, 32, 16, 8, 4, 2, 2}
	for i, w := range want {
		m.DecreaseResolution()
		require.Equal(t, w, m.Resolution(), "decrease #%d", i+1)
	}

	m.IncreaseResolution()
	assert.Equal(t, 4, m.Resolution())

	for i := 0; i < 10; i++ {
		m.IncreaseResolution()
		require.LessOrEqual(t, m.Resolution(), CacheSize)
	}
	assert.Equal(t, CacheSize, m.Resolution())
}

func TestDecreaseResolutionFloorIsColorCount(t *testing.T) {
	m, err := NewFromHex(Linear, 0x000000, 0x00FF00, 0x0000FF, 0xFF0000, 0xFFFFFF)
	require.NoError(t, err)
	for i := 0; i < 12; i++ {
		m.DecreaseResolution()
	}
	assert.Equal(t, 5, m.Resolution())
}

func TestSetResolutionIgnoresColorCount(t *testing.T) {
	m, err := New(Linear, red, green, blue)
	require.NoError(t, err)

	tests := []struct{ in, want int }{
		{1000, 256},
		{64, 64},
		{1, 1},
		{-4, 0},
	}
	for _, tt := range tests {
		m.SetResolution(tt.in)
		assert.Equal(t, tt.want, m.Resolution(), "SetResolution(%d)", tt.in)
	}

	// Degenerate resolutions pin every weight to the first entry.
	assert.Equal(t, red, m.ColorAt(1))

	m.IncreaseResolution()
	assert.Equal(t, 0, m.Resolution())
}

func TestColorAtPosterizes(t *testing.T) {
	m, err := NewFromHex(Linear, 0x000000, 0xFFFFFF)
	require.NoError(t, err)

	m.SetResolution(2)
	assert.Equal(t, black, m.ColorAt(0.3))
	assert.Equal(t, white, m.ColorAt(0.5))
	assert.Equal(t, white, m.ColorAt(0.6))

	m.SetResolution(4)
	seen := map[color.RGBA]bool{}
	for i := 0; i <= 100; i++ {
		seen[m.ColorAt(float64(i)/100)] = true
	}
	assert.Len(t, seen, 4)
	assert.Equal(t, uint8(170), m.ColorAt(0.5).R)
}

func TestColorAtDoesNotAllocate(t *testing.T) {
	m, err := New(HSL, red, green, blue)
	require.NoError(t, err)

	var sink color.RGBA
	allocs := testing.AllocsPerRun(1000, func() {
		sink = m.ColorAt(0.37)
	})
	_ = sink
	assert.Zero(t, allocs)
}

func BenchmarkColorAt(b *testing.B) {
	m, err := New(Cosine, red, green, blue)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.ColorAt(float64(i%1000) / 1000)
	}
}
