// Package display implements display mode selection for the window bootstrap
package display

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoMatchingMode is returned when no available mode has the requested
// width, height and depth
var ErrNoMatchingMode = errors.New("no matching display mode")

// Mode represents a display mode reported by the platform
type Mode struct {
	Width       int
	Height      int
	Depth       int // bits per pixel
	RefreshRate int // Hz
}

// String formats the mode for logging
func (m Mode) String() string {
	return fmt.Sprintf("%dx%d@%dhz/%dbpp", m.Width, m.Height, m.RefreshRate, m.Depth)
}

// ContextVersion describes the OpenGL context to request
type ContextVersion struct {
	Major int
	Minor int
	Core  bool
}

// Request describes the window and context the program asks for
type Request struct {
	Width      int
	Height     int
	Depth      int
	Context    ContextVersion
	VSync      bool
	Fullscreen bool
	Title      string
}

// DefaultRequest returns the 1024x768x32 windowed GL 3.2 core request
func DefaultRequest() Request {
	return Request{
		Width:   1024,
		Height:  768,
		Depth:   32,
		Context: ContextVersion{Major: 3, Minor: 2, Core: true},
		VSync:   false,
		Title:   "Hello Nifty",
	}
}

// Matching returns the modes with the requested resolution and depth,
// in enumeration order
func Matching(modes []Mode, req Request) []Mode {
	var matching []Mode
	for _, mode := range modes {
		if mode.Width == req.Width && mode.Height == req.Height && mode.Depth == req.Depth {
			matching = append(matching, mode)
		}
	}
	return matching
}

// Select picks the mode to activate. A candidate with the current
// refresh rate wins; otherwise the lowest refresh rate is used.
func Select(modes []Mode, current Mode, req Request) (Mode, error) {
	candidates := Matching(modes, req)
	if len(candidates) == 0 {
		return Mode{}, fmt.Errorf("%w for %dx%dx%d (%d modes available)",
			ErrNoMatchingMode, req.Width, req.Height, req.Depth, len(modes))
	}

	for _, candidate := range candidates {
		if candidate.RefreshRate == current.RefreshRate {
			return candidate, nil
		}
	}

	// Ties keep enumeration order
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RefreshRate < candidates[j].RefreshRate
	})
	return candidates[0], nil
}

// Center returns the window position that centers selected on desktop
func Center(desktop, selected Mode) (x, y int) {
	x = (desktop.Width - selected.Width) / 2
	y = (desktop.Height - selected.Height) / 2
	return x, y
}
