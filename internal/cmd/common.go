package cmd

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/noisemap/internal/noise"
	"github.com/MeKo-Tech/noisemap/internal/palette"
	"github.com/MeKo-Tech/noisemap/internal/render"
)

type noiseOptions struct {
	Kind       string
	Seed       int64
	Dimensions int
	Octaves    int
	Lacunarity float64
	Gain       float64
	W          float64
}

func noiseOptionsFromConfig() noiseOptions {
	return noiseOptions{
		Kind:       viper.GetString("noise.kind"),
		Seed:       viper.GetInt64("noise.seed"),
		Dimensions: viper.GetInt("noise.dimensions"),
		Octaves:    viper.GetInt("noise.octaves"),
		Lacunarity: viper.GetFloat64("noise.lacunarity"),
		Gain:       viper.GetFloat64("noise.gain"),
		W:          viper.GetFloat64("noise.w"),
	}
}

func (o noiseOptions) build() (noise.Source, error) {
	kind, err := noise.ParseKind(o.Kind)
	if err != nil {
		return nil, err
	}
	src, err := noise.NewSource(kind, o.Seed, o.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("failed to init %s noise: %w", kind, err)
	}
	if es, ok := src.(*noise.EngineSource); ok {
		es.W = o.W
	}
	return noise.NewFBM(src, o.Octaves, o.Lacunarity, o.Gain), nil
}

type paletteOptions struct {
	Preset       string
	Colors       []string
	Interpolator string
	Resolution   int
}

func paletteOptionsFromConfig() paletteOptions {
	return paletteOptions{
		Preset:       viper.GetString("palette.preset"),
		Colors:       viper.GetStringSlice("palette.colors"),
		Interpolator: viper.GetString("palette.interpolator"),
		Resolution:   viper.GetInt("palette.resolution"),
	}
}

func (o paletteOptions) options() palette.Options {
	res := o.Resolution
	return palette.Options{
		Preset:       o.Preset,
		Colors:       o.Colors,
		Interpolator: o.Interpolator,
		Resolution:   &res,
	}
}

func (o paletteOptions) stops() ([]color.RGBA, error) {
	return o.options().Stops()
}

func (o paletteOptions) build() (*palette.ColorMap, error) {
	return o.options().Build()
}

type viewOptions struct {
	Detail    float64
	Frequency float64
	Speed     float64
	Z         float64
	Origin    string
}

func viewOptionsFromConfig() viewOptions {
	return viewOptions{
		Detail:    viper.GetFloat64("view.detail"),
		Frequency: viper.GetFloat64("view.frequency"),
		Speed:     viper.GetFloat64("view.speed"),
		Z:         viper.GetFloat64("view.z"),
		Origin:    viper.GetString("view.origin"),
	}
}

func buildAnimator(n noiseOptions, p paletteOptions, v viewOptions) (*render.Animator, error) {
	src, err := n.build()
	if err != nil {
		return nil, err
	}
	colors, err := p.build()
	if err != nil {
		return nil, err
	}
	origin, err := parseOrigin(v.Origin)
	if err != nil {
		return nil, fmt.Errorf("invalid origin: %w", err)
	}
	return render.NewAnimator(render.Config{
		Source:    src,
		Colors:    colors,
		Detail:    v.Detail,
		Frequency: v.Frequency,
		Speed:     v.Speed,
		Origin:    origin,
		Z:         v.Z,
	})
}

func animatorFromConfig() (*render.Animator, error) {
	return buildAnimator(noiseOptionsFromConfig(), paletteOptionsFromConfig(), viewOptionsFromConfig())
}

// parseOrigin parses "x,y" into a point. An empty string is the zero point.
func parseOrigin(s string) (orb.Point, error) {
	if strings.TrimSpace(s) == "" {
		return orb.Point{}, nil
	}
	vals, err := parseFloats(strings.Split(s, ","))
	if err != nil {
		return orb.Point{}, err
	}
	if len(vals) != 2 {
		return orb.Point{}, fmt.Errorf("expected 2 comma-separated values, got %d", len(vals))
	}
	return orb.Point{vals[0], vals[1]}, nil
}

func parseFloats(parts []string) ([]float64, error) {
	vals := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number at position %d: %w", i, err)
		}
		vals[i] = v
	}
	return vals, nil
}
