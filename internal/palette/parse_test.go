package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{name: "long hex", in: "#e6c600", want: color.RGBA{R: 0xE6, G: 0xC6, A: 255}},
		{name: "upper hex", in: "#00D9F5", want: color.RGBA{G: 0xD9, B: 0xF5, A: 255}},
		{name: "short hex", in: "#f0a", want: color.RGBA{R: 0xFF, B: 0xAA, A: 255}},
		{name: "0x prefix", in: "0x282B28", want: color.RGBA{R: 0x28, G: 0x2B, B: 0x28, A: 255}},
		{name: "0x clamps", in: "0x1FFFFFF", want: white},
		{name: "svg name", in: "Teal", want: color.RGBA{G: 0x80, B: 0x80, A: 255}},
		{name: "padded", in: "  black ", want: black},
		{name: "empty", in: "", wantErr: true},
		{name: "bad hex", in: "#zzzzzz", wantErr: true},
		{name: "bad 0x", in: "0xnope", wantErr: true},
		{name: "unknown name", in: "octarine", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidColor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColors(t *testing.T) {
	got, err := ParseColors([]string{"red", "#00ff00", "0x0000ff"})
	require.NoError(t, err)
	assert.Equal(t, []color.RGBA{red, green, blue}, got)

	_, err = ParseColors([]string{"red", "nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidColor)
	assert.Contains(t, err.Error(), "stop 1")
}

func TestFormatHex(t *testing.T) {
	assert.Equal(t, "#e6c600", FormatHex(HexToRGB(0xE6C600)))
	assert.Equal(t, "#000000", FormatHex(black))
}

func TestPreset(t *testing.T) {
	for _, name := range PresetNames() {
		stops, err := Preset(name)
		require.NoError(t, err, name)
		assert.GreaterOrEqual(t, len(stops), 2, name)
	}

	stops, err := Preset("THEME")
	require.NoError(t, err)
	require.Len(t, stops, 5)
	assert.Equal(t, HexToRGB(DefaultTheme.Dark), stops[0])
	assert.Equal(t, HexToRGB(DefaultTheme.Light), stops[4])

	_, err = Preset("plaid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mono")
}

func TestPresetNamesSorted(t *testing.T) {
	names := PresetNames()
	assert.Equal(t, []string{"fire", "mono", "ocean", "theme"}, names)
	assert.Contains(t, names, DefaultPreset)
}
