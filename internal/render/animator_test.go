package render

import (
	"image/color"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/noisemap/internal/noise"
	"github.com/MeKo-Tech/noisemap/internal/palette"
)

type constSource float64

func (c constSource) Sample(_, _, _ float64) float64 { return float64(c) }

type recordingSource struct {
	calls [][3]float64
}

func (r *recordingSource) Sample(x, y, z float64) float64 {
	r.calls = append(r.calls, [3]float64{x, y, z})
	return 0
}

func monoMap(t *testing.T) *palette.ColorMap {
	t.Helper()
	m, err := palette.NewFromHex(palette.Linear, 0x000000, 0xFFFFFF)
	require.NoError(t, err)
	return m
}

func TestNewAnimatorValidation(t *testing.T) {
	_, err := NewAnimator(Config{Colors: monoMap(t)})
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = NewAnimator(Config{Source: constSource(0)})
	assert.ErrorIs(t, err, ErrNoColorMap)

	a, err := NewAnimator(Config{Source: constSource(0), Colors: monoMap(t)})
	require.NoError(t, err)
	assert.Equal(t, DefaultDetail, a.Detail())
	assert.Equal(t, DefaultFrequency, a.Frequency())
	assert.Equal(t, DefaultSensitivity, a.Sensitivity())
	assert.Zero(t, a.Speed())
}

func TestRenderAtMapsNormalizedNoise(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want color.RGBA
	}{
		{"low", -1, color.RGBA{A: 255}},
		{"high", 1, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"beyond", 3, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"mid", 0, color.RGBA{R: 128, G: 128, B: 128, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAnimator(Config{Source: constSource(tt.v), Colors: monoMap(t)})
			require.NoError(t, err)

			img, err := a.RenderAt(0, 3, 2)
			require.NoError(t, err)
			assert.Equal(t, 3, img.Bounds().Dx())
			assert.Equal(t, 2, img.Bounds().Dy())
			for y := 0; y < 2; y++ {
				for x := 0; x < 3; x++ {
					assert.Equal(t, tt.want, img.RGBAAt(x, y))
				}
			}
		})
	}
}

func TestRenderAtRejectsEmptyFrame(t *testing.T) {
	a, err := NewAnimator(Config{Source: constSource(0), Colors: monoMap(t)})
	require.NoError(t, err)

	_, err = a.RenderAt(0, 0, 10)
	assert.ErrorIs(t, err, ErrFrameSize)
	_, err = a.RenderAt(0, 10, -1)
	assert.ErrorIs(t, err, ErrFrameSize)
}

func TestSampleAppliesViewport(t *testing.T) {
	src := &recordingSource{}
	a, err := NewAnimator(Config{
		Source:    src,
		Colors:    monoMap(t),
		Detail:    0.5,
		Frequency: 1,
		Origin:    orb.Point{10, -4},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.5, a.Sample(4, 6, 2.5))
	require.Len(t, src.calls, 1)
	assert.Equal(t, [3]float64{12, -1, 2.5}, src.calls[0])
}

func TestSampleScalesZByFrequencyOnly(t *testing.T) {
	src := &recordingSource{}
	a, err := NewAnimator(Config{Source: src, Colors: monoMap(t), Detail: 4, Frequency: 0.5})
	require.NoError(t, err)

	a.Sample(1, 2, 3)
	require.Len(t, src.calls, 1)
	assert.Equal(t, [3]float64{2, 4, 1.5}, src.calls[0])
}

func TestNextAdvancesZ(t *testing.T) {
	src := &recordingSource{}
	a, err := NewAnimator(Config{Source: src, Colors: monoMap(t), Frequency: 1, Speed: 0.25, Z: 1})
	require.NoError(t, err)

	_, err = a.Next(1, 1)
	require.NoError(t, err)
	_, err = a.Next(1, 1)
	require.NoError(t, err)

	require.Len(t, src.calls, 2)
	assert.Equal(t, 1.0, src.calls[0][2])
	assert.Equal(t, 1.25, src.calls[1][2])
	assert.Equal(t, 1.5, a.Z())

	_, err = a.Next(0, 1)
	require.Error(t, err)
	assert.Equal(t, 1.5, a.Z(), "failed frame must not advance z")
}

func TestZoomSteps(t *testing.T) {
	a, err := NewAnimator(Config{Source: constSource(0), Colors: monoMap(t)})
	require.NoError(t, err)

	a.ZoomIn()
	assert.InDelta(t, 1-1.0/16, a.Detail(), 1e-12)
	assert.InDelta(t, 16.1, a.Sensitivity(), 1e-12)

	b, err := NewAnimator(Config{Source: constSource(0), Colors: monoMap(t)})
	require.NoError(t, err)

	b.ZoomOut()
	assert.InDelta(t, 1+1.0/16, b.Detail(), 1e-12)
	assert.InDelta(t, 15.9, b.Sensitivity(), 1e-12)
}

func TestZoomBounds(t *testing.T) {
	a, err := NewAnimator(Config{Source: constSource(0), Colors: monoMap(t)})
	require.NoError(t, err)

	for i := 0; i < 2000; i++ {
		a.ZoomIn()
		require.GreaterOrEqual(t, a.Detail(), MinDetail)
		require.LessOrEqual(t, a.Sensitivity(), MaxSensitivity)
	}
	assert.Equal(t, MinDetail, a.Detail())
	assert.Equal(t, MaxSensitivity, a.Sensitivity())

	for i := 0; i < 2000; i++ {
		a.ZoomOut()
		require.LessOrEqual(t, a.Detail(), MaxDetail)
		require.GreaterOrEqual(t, a.Sensitivity(), MinSensitivity)
	}
	assert.Equal(t, MaxDetail, a.Detail())
	assert.Equal(t, MinSensitivity, a.Sensitivity())
}

func TestPanMovesOriginInNoiseSpace(t *testing.T) {
	a, err := NewAnimator(Config{Source: constSource(0), Colors: monoMap(t), Detail: 0.1, Frequency: 1})
	require.NoError(t, err)

	a.Pan(10, -20)
	assert.InDelta(t, 1, a.Origin().X(), 1e-12)
	assert.InDelta(t, -2, a.Origin().Y(), 1e-12)
}

func TestRenderAtDeterministic(t *testing.T) {
	newAnim := func() *Animator {
		src, err := noise.NewSource(noise.KindGradient, 42, 3)
		require.NoError(t, err)
		a, err := NewAnimator(Config{Source: src, Colors: monoMap(t), Detail: 0.05, Frequency: 1})
		require.NoError(t, err)
		return a
	}

	img1, err := newAnim().RenderAt(3.5, 32, 16)
	require.NoError(t, err)
	img2, err := newAnim().RenderAt(3.5, 32, 16)
	require.NoError(t, err)
	assert.Equal(t, img1.Pix, img2.Pix)

	img3, err := newAnim().RenderAt(4.5, 32, 16)
	require.NoError(t, err)
	assert.NotEqual(t, img1.Pix, img3.Pix)
}

func BenchmarkRenderAt(b *testing.B) {
	src, err := noise.NewSource(noise.KindGradient, 1, 3)
	if err != nil {
		b.Fatal(err)
	}
	m, err := palette.New(palette.Cosine, palette.DefaultTheme.Stops()...)
	if err != nil {
		b.Fatal(err)
	}
	a, err := NewAnimator(Config{Source: src, Colors: m, Speed: 0.05})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := a.Next(128, 128); err != nil {
			b.Fatal(err)
		}
	}
}
