// Package app wires the window, renderer and GUI into the hello world program
package app

import (
	"fmt"
	"log"

	"github.com/moderniselife/hellogui/assets"
	"github.com/moderniselife/hellogui/display"
	"github.com/moderniselife/hellogui/gui"
	"github.com/moderniselife/hellogui/render"
	"github.com/moderniselife/hellogui/window"
)

// Surface is the platform side of the render loop
type Surface interface {
	CloseRequested() bool
	Update()
}

// Frame is the GUI side of the render loop
type Frame interface {
	Update() bool
	Render(clear bool)
}

// Loop runs until the surface is asked to close or the frame reports it
// is done. check is called after every frame; its errors are logged and
// the loop keeps going. It returns the number of frames rendered.
func Loop(surface Surface, frame Frame, check func() error) int {
	frames := 0
	done := false
	for !surface.CloseRequested() && !done {
		surface.Update()
		if frame.Update() {
			done = true
		}
		frame.Render(true)
		frames++

		if check != nil {
			if err := check(); err != nil {
				log.Printf("Render error: %v", err)
			}
		}
	}
	return frames
}

// Run opens the window, shows the hello screen and blocks until exit.
// It must be called from the main thread.
func Run() error {
	w, err := window.Open(display.DefaultRequest())
	if err != nil {
		return fmt.Errorf("display setup failed: %w", err)
	}
	defer w.Close()

	width, height := w.FramebufferSize()
	render.Init(width, height)
	renderer, err := render.New(width, height)
	if err != nil {
		return fmt.Errorf("renderer setup failed: %w", err)
	}
	defer renderer.Dispose()

	input := window.NewInput(w)
	if err := input.Startup(); err != nil {
		return fmt.Errorf("input setup failed: %w", err)
	}
	defer input.Shutdown()

	g := gui.New(renderer, input, nil)
	if err := g.LoadStyleFile(assets.FS, gui.DefaultStyleFile); err != nil {
		return err
	}
	if err := g.LoadControlFile(assets.FS, gui.DefaultControlFile); err != nil {
		return err
	}
	screen := HelloScreen(LoadText(assets.FS, TextAsset), ExitController{})
	if err := g.AddScreen(screen); err != nil {
		return err
	}
	if err := g.GotoScreen(StartScreen); err != nil {
		return err
	}

	log.Println("Starting main render loop")
	frames := Loop(w, g, render.CheckError)
	log.Printf("Render loop terminated after %d frames", frames)
	return nil
}
