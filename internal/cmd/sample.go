package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/noisemap/internal/noise"
	"github.com/MeKo-Tech/noisemap/internal/palette"
)

var sampleCmd = &cobra.Command{
	Use:   "sample <coord> <coord> [coord] [coord]",
	Short: "Print the noise value at a point",
	Long: `Print the raw noise value at the given coordinates.

With the gradient backend the number of coordinates (2 to 4) selects the
engine dimension. Other backends are sampled at (x, y, z); a missing z is 0.`,
	Args: cobra.RangeArgs(noise.MinDimensions, noise.MaxDimensions),
	RunE: runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().Bool("normalize", false, "Map the value from [-1,1] onto [0,1]")
	sampleCmd.Flags().Bool("color", false, "Also print the color the value maps to")

	if err := viper.BindPFlag("sample.normalize", sampleCmd.Flags().Lookup("normalize")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
	if err := viper.BindPFlag("sample.color", sampleCmd.Flags().Lookup("color")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
}

func runSample(cmd *cobra.Command, args []string) error {
	coords, err := parseFloats(args)
	if err != nil {
		return err
	}

	v, err := sampleNoise(noiseOptionsFromConfig(), coords)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	normalized := noise.Normalize(v)
	if viper.GetBool("sample.normalize") {
		fmt.Fprintf(out, "%.17g\n", normalized)
	} else {
		fmt.Fprintf(out, "%.17g\n", v)
	}

	if viper.GetBool("sample.color") {
		m, err := paletteOptionsFromConfig().build()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, palette.FormatHex(m.ColorAt(normalized)))
	}
	return nil
}

// sampleNoise evaluates one point. The gradient engine takes its dimension
// from len(coords); octave settings are ignored so the raw engine output is
// visible.
func sampleNoise(o noiseOptions, coords []float64) (float64, error) {
	kind, err := noise.ParseKind(o.Kind)
	if err != nil {
		return 0, err
	}
	if kind == noise.KindGradient {
		e, err := noise.New(o.Seed, len(coords))
		if err != nil {
			return 0, err
		}
		return e.Noise(coords...), nil
	}

	src, err := noise.NewSource(kind, o.Seed, o.Dimensions)
	if err != nil {
		return 0, err
	}
	var p [3]float64
	copy(p[:], coords)
	return src.Sample(p[0], p[1], p[2]), nil
}
