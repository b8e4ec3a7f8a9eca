package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/noisemap/internal/noise"
	"github.com/MeKo-Tech/noisemap/internal/palette"
	"github.com/MeKo-Tech/noisemap/internal/render"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "noisemap",
	Short: "An animated gradient-noise color map renderer",
	Long: `noisemap samples seeded gradient noise in 2 to 4 dimensions and maps it
through a 256-entry interpolated color map.

It renders animation frames to PNG files, serves live frames over HTTP and
prints palette swatches and raw noise samples for debugging.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	pf.String("output-dir", "./frames", "Output directory for rendered frames")
	pf.Bool("verbose", false, "Enable verbose logging")
	pf.String("log-format", "text", "Log format (text, json)")

	// Noise
	pf.String("noise", string(noise.KindGradient), "Noise backend (gradient, perlin, simplex)")
	pf.Int64("seed", 1337, "Deterministic noise seed")
	pf.Int("dimensions", 3, "Gradient noise dimensions (2-4)")
	pf.Int("octaves", 1, "Fractal octaves layered over the backend")
	pf.Float64("lacunarity", 2.0, "Frequency multiplier between octaves")
	pf.Float64("gain", 0.5, "Amplitude multiplier between octaves")
	pf.Float64("w", 0, "Fixed fourth coordinate for 4D gradient noise")

	// Palette
	pf.String("palette", palette.DefaultPreset, "Palette preset ("+strings.Join(palette.PresetNames(), ", ")+")")
	pf.StringSlice("colors", nil, "Explicit color stops, overrides --palette (e.g. \"#000,teal,0xFFFFFF\")")
	pf.String("interpolator", "linear", "Color interpolation (linear, cosine, hsl)")
	pf.Int("resolution", palette.CacheSize, "Number of reachable color map entries (0-256)")

	// Viewport
	pf.Float64("detail", render.DefaultDetail, "Zoom factor applied to the base frequency")
	pf.Float64("frequency", render.DefaultFrequency, "Noise units per pixel at detail 1")
	pf.Float64("speed", render.DefaultSpeed, "Z advance per frame")
	pf.Float64("z", 0, "Starting z")
	pf.String("origin", "0,0", "Viewport origin in noise space: x,y")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"output-dir", "output-dir"},
		{"verbose", "verbose"},
		{"log-format", "log-format"},
		{"noise.kind", "noise"},
		{"noise.seed", "seed"},
		{"noise.dimensions", "dimensions"},
		{"noise.octaves", "octaves"},
		{"noise.lacunarity", "lacunarity"},
		{"noise.gain", "gain"},
		{"noise.w", "w"},
		{"palette.preset", "palette"},
		{"palette.colors", "colors"},
		{"palette.interpolator", "interpolator"},
		{"palette.resolution", "resolution"},
		{"view.detail", "detail"},
		{"view.frequency", "frequency"},
		{"view.speed", "speed"},
		{"view.z", "z"},
		{"view.origin", "origin"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, pf.Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("NOISEMAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
