package gui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor parses "#a", "#rgb", "#rgba", "#rrggbb" and "#rrggbbaa".
// The single digit form only sets alpha on white.
func ParseColor(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: missing '#'", s)
	}

	var digits []uint8
	switch len(hex) {
	case 1, 3, 4:
		for i := 0; i < len(hex); i++ {
			v, err := strconv.ParseUint(hex[i:i+1], 16, 8)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
			}
			digits = append(digits, uint8(v)*17)
		}
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			v, err := strconv.ParseUint(hex[i:i+2], 16, 8)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
			}
			digits = append(digits, uint8(v))
		}
	default:
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: unexpected length %d", s, len(hex))
	}

	switch len(digits) {
	case 1:
		return color.NRGBA{R: 255, G: 255, B: 255, A: digits[0]}, nil
	case 3:
		return color.NRGBA{R: digits[0], G: digits[1], B: digits[2], A: 255}, nil
	}
	return color.NRGBA{R: digits[0], G: digits[1], B: digits[2], A: digits[3]}, nil
}

// withAlpha scales the colour's alpha by a in [0, 1]
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(float64(c.A)*a + 0.5)
	return c
}
