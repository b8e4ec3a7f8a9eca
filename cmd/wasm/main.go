//go:build js && wasm
// +build js,wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/MeKo-Tech/noisemap/internal/noise"
	"github.com/MeKo-Tech/noisemap/internal/palette"
)

// ConfigureRequest represents a noise/palette setup request from JS
type ConfigureRequest struct {
	Seed         int64    `json:"seed"`
	Colors       []string `json:"colors"`
	Preset       string   `json:"preset"`
	Interpolator string   `json:"interpolator"`
	Resolution   *int     `json:"resolution"` // nil keeps the full 256 entries
}

var (
	engine   *noise.Engine
	colorMap *palette.ColorMap
)

func configure(req ConfigureRequest) error {
	e, err := noise.New(req.Seed, 3)
	if err != nil {
		return err
	}

	m, err := palette.Options{
		Preset:       req.Preset,
		Colors:       req.Colors,
		Interpolator: req.Interpolator,
		Resolution:   req.Resolution,
	}.Build()
	if err != nil {
		return err
	}

	engine, colorMap = e, m
	return nil
}

// noisemapConfigure is called from JavaScript with a JSON ConfigureRequest
func noisemapConfigure(this js.Value, args []js.Value) interface{} {
	req := ConfigureRequest{Interpolator: "linear"}
	if len(args) > 0 {
		if err := json.Unmarshal([]byte(args[0].String()), &req); err != nil {
			return map[string]interface{}{"error": fmt.Sprintf("failed to parse request: %v", err)}
		}
	}
	if err := configure(req); err != nil {
		return map[string]interface{}{"error": err.Error()}
	}
	return map[string]interface{}{"status": "ready", "resolution": colorMap.Resolution()}
}

// noisemapNoise(x, y, z) returns the raw gradient noise value
func noisemapNoise(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "missing arguments"}
	}
	coords := make([]float64, 3)
	for i := 0; i < len(args) && i < 3; i++ {
		coords[i] = args[i].Float()
	}
	return engine.Noise(coords...)
}

// noisemapColorAt(weight) returns the mapped color as "#rrggbb"
func noisemapColorAt(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "missing arguments"}
	}
	return palette.FormatHex(colorMap.ColorAt(args[0].Float()))
}

func main() {
	c := make(chan struct{})

	if err := configure(ConfigureRequest{Interpolator: "linear"}); err != nil {
		fmt.Println("noisemap WASM init failed:", err)
		return
	}

	js.Global().Set("noisemapConfigure", js.FuncOf(noisemapConfigure))
	js.Global().Set("noisemapNoise", js.FuncOf(noisemapNoise))
	js.Global().Set("noisemapColorAt", js.FuncOf(noisemapColorAt))

	fmt.Println("noisemap WASM module loaded")
	<-c
}
