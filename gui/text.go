package gui

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// The only built-in face. Metrics are in unscaled pixels.
var face = basicfont.Face7x13

const (
	glyphAdvance = 7
	lineHeight   = 13
)

// WrapText breaks s into lines of at most cols characters on word
// boundaries. Words longer than cols are split.
func WrapText(s string, cols int) []string {
	if cols < 1 {
		cols = 1
	}
	var lines []string
	for _, paragraph := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var line []rune
		for _, word := range words {
			w := []rune(word)
			for len(w) > cols {
				if len(line) > 0 {
					lines = append(lines, string(line))
					line = nil
				}
				lines = append(lines, string(w[:cols]))
				w = w[cols:]
			}
			switch {
			case len(line) == 0:
				line = w
			case len(line)+1+len(w) <= cols:
				line = append(append(line, ' '), w...)
			default:
				lines = append(lines, string(line))
				line = w
			}
		}
		if len(line) > 0 {
			lines = append(lines, string(line))
		}
	}
	return lines
}

// splitLines breaks text only on explicit newlines
func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(strings.ReplaceAll(s, "\r\n", "\n"), "\n"), "\n")
}

// TextSize returns the unscaled pixel size of lines
func TextSize(lines []string) (w, h int) {
	for _, line := range lines {
		if n := len([]rune(line)) * glyphAdvance; n > w {
			w = n
		}
	}
	return w, len(lines) * lineHeight
}

// RasterizeText draws lines into an alpha mask at 1x scale
func RasterizeText(lines []string) *image.Alpha {
	w, h := TextSize(lines)
	img := image.NewAlpha(image.Rect(0, 0, max(w, 1), max(h, 1)))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: face,
	}
	for i, line := range lines {
		d.Dot = fixed.P(0, i*lineHeight+face.Ascent)
		d.DrawString(line)
	}
	return img
}
