package gui

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#0", color.NRGBA{255, 255, 255, 0}},
		{"#f", color.NRGBA{255, 255, 255, 255}},
		{"#333", color.NRGBA{0x33, 0x33, 0x33, 0xff}},
		{"#333f", color.NRGBA{0x33, 0x33, 0x33, 0xff}},
		{"#ffff", color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{"#000f", color.NRGBA{0, 0, 0, 0xff}},
		{"#102030", color.NRGBA{0x10, 0x20, 0x30, 0xff}},
		{"#10203040", color.NRGBA{0x10, 0x20, 0x30, 0x40}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "fff", "#", "#12", "#12345", "#ggg", "#1234567"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestWithAlpha(t *testing.T) {
	c := color.NRGBA{10, 20, 30, 200}
	assert.Equal(t, uint8(100), withAlpha(c, 0.5).A)
	assert.Equal(t, uint8(0), withAlpha(c, 0).A)
	assert.Equal(t, c, withAlpha(c, 1))
}

func TestFadeInterpolation(t *testing.T) {
	f, err := compileFade(Effect{Name: EffectFade, Length: 500 * time.Millisecond,
		Params: map[string]string{"start": "#f", "end": "#0"}})
	require.NoError(t, err)

	assert.Equal(t, 1.0, f.at(0))
	assert.InDelta(t, 0.5, f.at(250*time.Millisecond), 1e-9)
	assert.Equal(t, 0.0, f.at(500*time.Millisecond))
	assert.Equal(t, 0.0, f.at(time.Hour))
	assert.Equal(t, 1.0, fades(nil).at(time.Second))
	assert.Equal(t, time.Duration(0), fades(nil).length())
}

func TestFadeDefaults(t *testing.T) {
	f, err := compileFade(Effect{Name: EffectFade})
	require.NoError(t, err)
	assert.Equal(t, 0.0, f.from)
	assert.Equal(t, 1.0, f.to)
	assert.Equal(t, 1.0, f.at(0), "zero length jumps to the end value")
}

func TestCompileGradient(t *testing.T) {
	stops, err := compileGradient(Effect{Name: EffectGradient, Values: []EffectValue{
		{"offset": "100%", "color": "#ffff"},
		{"offset": "0%", "color": "#333f"},
	}})
	require.NoError(t, err)
	require.Len(t, stops, 2)
	assert.Equal(t, 0.0, stops[0].offset)
	assert.Equal(t, uint8(0x33), stops[0].color.R)
	assert.Equal(t, 1.0, stops[1].offset)

	_, err = compileGradient(Effect{Name: EffectGradient})
	assert.Error(t, err)
	_, err = compileGradient(Effect{Values: []EffectValue{{"offset": "120%", "color": "#fff"}}})
	assert.Error(t, err)
	_, err = compileGradient(Effect{Values: []EffectValue{{"offset": "50", "color": "#fff"}}})
	assert.Error(t, err)
}
