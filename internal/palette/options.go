package palette

import (
	"fmt"
	"image/color"
)

// Options describes a color map the way the CLI and the wasm bindings
// receive it.
type Options struct {
	// Preset names a built-in palette; empty selects DefaultPreset.
	Preset string
	// Colors overrides Preset when non-empty. Entries use ParseColor syntax.
	Colors []string
	// Interpolator is a name accepted by InterpolatorByName; empty selects Linear.
	Interpolator string
	// Resolution is passed to SetResolution when non-nil.
	Resolution *int
}

// Stops resolves explicit colors first, then the preset.
func (o Options) Stops() ([]color.RGBA, error) {
	if len(o.Colors) > 0 {
		return ParseColors(o.Colors)
	}
	name := o.Preset
	if name == "" {
		name = DefaultPreset
	}
	return Preset(name)
}

// Build parses the options into a ColorMap.
func (o Options) Build() (*ColorMap, error) {
	interp := Linear
	if o.Interpolator != "" {
		var err error
		if interp, err = InterpolatorByName(o.Interpolator); err != nil {
			return nil, err
		}
	}
	stops, err := o.Stops()
	if err != nil {
		return nil, err
	}
	m, err := New(interp, stops...)
	if err != nil {
		return nil, fmt.Errorf("failed to build color map: %w", err)
	}
	if o.Resolution != nil {
		m.SetResolution(*o.Resolution)
	}
	return m, nil
}
