package window

import (
	"image"
	"log"

	"github.com/kbinani/screenshot"
)

// Display describes one active display as seen by the OS
type Display struct {
	Index   int
	Bounds  image.Rectangle
	Primary bool
}

// Displays lists the active displays. The first one is assumed primary.
func Displays() []Display {
	n := screenshot.NumActiveDisplays()
	displays := make([]Display, 0, n)
	for i := 0; i < n; i++ {
		displays = append(displays, Display{
			Index:   i,
			Bounds:  screenshot.GetDisplayBounds(i),
			Primary: i == 0,
		})
	}
	return displays
}

func logDisplays() {
	displays := Displays()
	log.Printf("Found %d active displays", len(displays))
	for _, d := range displays {
		log.Printf("Display %d at (%d,%d) resolution %dx%d primary=%t",
			d.Index, d.Bounds.Min.X, d.Bounds.Min.Y, d.Bounds.Dx(), d.Bounds.Dy(), d.Primary)
	}
}
