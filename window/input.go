package window

import (
	"errors"
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/moderniselife/hellogui/gui"
)

// Input queues GLFW pointer events for the GUI
type Input struct {
	window  *Window
	queue   []gui.MouseEvent
	x, y    int
	started bool
}

// NewInput creates an input system for w. Call Startup before use.
func NewInput(w *Window) *Input {
	return &Input{window: w}
}

// Startup installs the GLFW callbacks
func (in *Input) Startup() error {
	if in.window == nil || in.window.handle == nil {
		return errors.New("input startup: window is not open")
	}
	handle := in.window.handle
	handle.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		in.x, in.y = in.toFramebuffer(w, xpos, ypos)
		in.queue = append(in.queue, gui.MouseEvent{Kind: gui.MouseMoved, X: in.x, Y: in.y})
	})
	handle.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		kind := gui.MousePressed
		switch action {
		case glfw.Press:
		case glfw.Release:
			kind = gui.MouseReleased
		default:
			return
		}
		in.queue = append(in.queue, gui.MouseEvent{Kind: kind, X: in.x, Y: in.y, Button: int(button - glfw.MouseButton1)})
	})
	in.started = true
	log.Println("Input system started")
	return nil
}

// Shutdown removes the callbacks and drops queued events
func (in *Input) Shutdown() {
	if !in.started {
		return
	}
	if in.window.handle != nil {
		in.window.handle.SetCursorPosCallback(nil)
		in.window.handle.SetMouseButtonCallback(nil)
	}
	in.queue = nil
	in.started = false
	log.Println("Input system stopped")
}

// ForwardEvents passes queued events to fn in arrival order
func (in *Input) ForwardEvents(fn func(gui.MouseEvent)) {
	events := in.queue
	in.queue = nil
	for _, ev := range events {
		fn(ev)
	}
}

// toFramebuffer converts window coordinates to framebuffer pixels
func (in *Input) toFramebuffer(w *glfw.Window, xpos, ypos float64) (int, int) {
	ww, wh := w.GetSize()
	fw, fh := w.GetFramebufferSize()
	return scale(xpos, ww, fw), scale(ypos, wh, fh)
}

func scale(v float64, from, to int) int {
	if from <= 0 {
		return int(v)
	}
	return int(v * float64(to) / float64(from))
}
