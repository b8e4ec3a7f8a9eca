package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
)

var compressionLevels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"speed":   png.BestSpeed,
	"best":    png.BestCompression,
	"none":    png.NoCompression,
}

// ParseCompression maps "default", "speed", "best" or "none" to a PNG level.
// An empty name selects the default.
func ParseCompression(name string) (png.CompressionLevel, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return png.DefaultCompression, nil
	}
	lvl, ok := compressionLevels[n]
	if !ok {
		return 0, fmt.Errorf("unknown png compression %q (use default, speed, best or none)", name)
	}
	return lvl, nil
}

// EncodePNG writes img to w at the given compression level.
func EncodePNG(w io.Writer, img image.Image, level png.CompressionLevel) error {
	enc := png.Encoder{CompressionLevel: level}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
