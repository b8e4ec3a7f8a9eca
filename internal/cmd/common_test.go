package cmd

import (
	"image/color"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/noisemap/internal/noise"
	"github.com/MeKo-Tech/noisemap/internal/palette"
)

func TestParseOrigin(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    orb.Point
		wantErr bool
	}{
		{name: "valid origin", input: "12.5,-3", want: orb.Point{12.5, -3}},
		{name: "valid origin with spaces", input: " 1 , 2 ", want: orb.Point{1, 2}},
		{name: "empty string", input: "", want: orb.Point{}},
		{name: "too few values", input: "1", wantErr: true},
		{name: "too many values", input: "1,2,3", wantErr: true},
		{name: "invalid number", input: "abc,2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOrigin(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseOrigin(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("parseOrigin(%q) unexpected error: %v", tt.input, err)
				return
			}
			if got != tt.want {
				t.Errorf("parseOrigin(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNoiseOptionsBuild(t *testing.T) {
	base := noiseOptions{Seed: 7, Dimensions: 4, Octaves: 1, Lacunarity: 2, Gain: 0.5, W: 2.5}

	for _, kind := range noise.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			o := base
			o.Kind = string(kind)
			src, err := o.build()
			require.NoError(t, err)
			require.NotNil(t, src)
		})
	}

	o := base
	o.Kind = "gradient"
	src, err := o.build()
	require.NoError(t, err)
	es, ok := src.(*noise.EngineSource)
	require.True(t, ok, "single octave should return the engine source itself")
	assert.Equal(t, 2.5, es.W)
	assert.Equal(t, 4, es.Engine.Dimensions())

	o.Octaves = 4
	src, err = o.build()
	require.NoError(t, err)
	fbm, ok := src.(*noise.FBM)
	require.True(t, ok)
	assert.Equal(t, 4, fbm.Octaves)

	o.Kind = "worley"
	_, err = o.build()
	assert.ErrorIs(t, err, noise.ErrUnknownKind)

	o.Kind = "gradient"
	o.Dimensions = 5
	_, err = o.build()
	assert.ErrorIs(t, err, noise.ErrInvalidDimension)
}

func TestPaletteOptions(t *testing.T) {
	o := paletteOptions{Preset: "fire", Interpolator: "cosine", Resolution: 16}
	m, err := o.build()
	require.NoError(t, err)
	assert.Equal(t, 5, m.ColorCount())
	assert.Equal(t, 16, m.Resolution())
	assert.Equal(t, palette.Cosine, m.Interpolator())

	o.Colors = []string{"red", "#0000ff"}
	stops, err := o.stops()
	require.NoError(t, err)
	assert.Equal(t, []color.RGBA{{R: 255, A: 255}, {B: 255, A: 255}}, stops)

	stops, err = paletteOptions{}.stops()
	require.NoError(t, err)
	assert.Len(t, stops, 2, "empty preset falls back to the default")

	_, err = paletteOptions{Interpolator: "cubic", Resolution: 256}.build()
	assert.ErrorIs(t, err, palette.ErrUnknownInterpolator)

	_, err = paletteOptions{Interpolator: "linear", Colors: []string{"nope"}}.build()
	assert.ErrorIs(t, err, palette.ErrInvalidColor)
}

func TestBuildAnimator(t *testing.T) {
	n := noiseOptions{Kind: "gradient", Seed: 1, Dimensions: 3, Octaves: 1}
	p := paletteOptions{Preset: "theme", Interpolator: "hsl", Resolution: 256}

	a, err := buildAnimator(n, p, viewOptions{Detail: 2, Frequency: 0.02, Speed: 0.5, Z: 3, Origin: "4,5"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, a.Detail())
	assert.Equal(t, 0.02, a.Frequency())
	assert.Equal(t, 0.5, a.Speed())
	assert.Equal(t, 3.0, a.Z())
	assert.Equal(t, orb.Point{4, 5}, a.Origin())

	_, err = buildAnimator(n, p, viewOptions{Origin: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid origin")
}
