package gui

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Effect names understood by the runtime
const (
	EffectFade     = "fade"
	EffectGradient = "gradient"
)

// ErrUnsupportedEffect is returned for effects the runtime cannot play
var ErrUnsupportedEffect = errors.New("unsupported effect")

// EffectValue is one entry of an effect's value list, e.g. a gradient stop
type EffectValue map[string]string

// Effect describes an animation or decoration attached to a layer
type Effect struct {
	Name   string
	Length time.Duration
	Params map[string]string
	Values []EffectValue
}

// fade interpolates an alpha value over time
type fade struct {
	from, to float64
	length   time.Duration
}

func (f fade) at(elapsed time.Duration) float64 {
	if f.length <= 0 || elapsed >= f.length {
		return f.to
	}
	if elapsed <= 0 {
		return f.from
	}
	t := float64(elapsed) / float64(f.length)
	return f.from + (f.to-f.from)*t
}

type fades []fade

// at multiplies every fade together; no fades means fully opaque
func (fs fades) at(elapsed time.Duration) float64 {
	a := 1.0
	for _, f := range fs {
		a *= f.at(elapsed)
	}
	return a
}

func (fs fades) length() time.Duration {
	var longest time.Duration
	for _, f := range fs {
		if f.length > longest {
			longest = f.length
		}
	}
	return longest
}

type gradientStop struct {
	offset float64 // 0..1 from the top
	color  color.NRGBA
}

func compileFade(e Effect) (fade, error) {
	start, end := e.Params["start"], e.Params["end"]
	if start == "" {
		start = "#0"
	}
	if end == "" {
		end = "#f"
	}
	from, err := ParseColor(start)
	if err != nil {
		return fade{}, fmt.Errorf("fade start: %w", err)
	}
	to, err := ParseColor(end)
	if err != nil {
		return fade{}, fmt.Errorf("fade end: %w", err)
	}
	return fade{
		from:   float64(from.A) / 255,
		to:     float64(to.A) / 255,
		length: e.Length,
	}, nil
}

func compileGradient(e Effect) ([]gradientStop, error) {
	if len(e.Values) == 0 {
		return nil, errors.New("gradient has no values")
	}
	stops := make([]gradientStop, 0, len(e.Values))
	for _, v := range e.Values {
		offset, err := parsePercent(v["offset"])
		if err != nil {
			return nil, fmt.Errorf("gradient offset: %w", err)
		}
		c, err := ParseColor(v["color"])
		if err != nil {
			return nil, fmt.Errorf("gradient colour: %w", err)
		}
		stops = append(stops, gradientStop{offset: offset, color: c})
	}
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].offset < stops[j].offset })
	return stops, nil
}

func parsePercent(s string) (float64, error) {
	num, ok := strings.CutSuffix(strings.TrimSpace(s), "%")
	if !ok {
		return 0, fmt.Errorf("%q is not a percentage", s)
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a percentage: %w", s, err)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return v / 100, nil
}
