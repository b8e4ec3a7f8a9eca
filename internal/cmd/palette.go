package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/noisemap/internal/palette"
	"github.com/MeKo-Tech/noisemap/internal/render"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Write a swatch of the configured color map",
	Long: `Write a horizontal swatch PNG sampling the color map from weight 0 to 1
at the configured resolution, and print the color stops as hex values.`,
	RunE: runPalette,
}

func init() {
	rootCmd.AddCommand(paletteCmd)

	paletteCmd.Flags().StringP("out", "o", "palette.png", "Swatch output file (empty to skip)")
	paletteCmd.Flags().Int("width", palette.CacheSize, "Swatch width in pixels")
	paletteCmd.Flags().Int("height", 32, "Swatch height in pixels")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"swatch.out", "out"},
		{"swatch.width", "width"},
		{"swatch.height", "height"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, paletteCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runPalette(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	out := viper.GetString("swatch.out")
	width := viper.GetInt("swatch.width")
	height := viper.GetInt("swatch.height")

	opts := paletteOptionsFromConfig()
	stops, err := opts.stops()
	if err != nil {
		return err
	}
	m, err := opts.build()
	if err != nil {
		return err
	}

	printStops(cmd.OutOrStdout(), m, stops)

	if out == "" {
		return nil
	}
	img, err := renderSwatch(m, width, height)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create swatch dir: %w", err)
		}
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create swatch %s: %w", out, err)
	}
	defer f.Close()

	if err := render.EncodePNG(f, img, png.DefaultCompression); err != nil {
		return err
	}
	logger.Info("Swatch written", "path", out, "resolution", m.Resolution(), "interpolator", m.Interpolator().Name())
	return nil
}

func printStops(w io.Writer, m *palette.ColorMap, stops []color.RGBA) {
	fmt.Fprintf(w, "interpolator: %s\n", m.Interpolator().Name())
	fmt.Fprintf(w, "resolution:   %d\n", m.Resolution())
	for i, c := range stops {
		fmt.Fprintf(w, "stop %d: %s\n", i, palette.FormatHex(c))
	}
}

// renderSwatch samples the map left to right across width columns.
func renderSwatch(m *palette.ColorMap, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("swatch size must be positive, got %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		weight := 0.0
		if width > 1 {
			weight = float64(x) / float64(width-1)
		}
		c := m.ColorAt(weight)
		for y := 0; y < height; y++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}
