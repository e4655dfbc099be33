// Package window bootstraps the GLFW window and OpenGL context
package window

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/moderniselife/hellogui/display"
)

// Window owns the GLFW window and its OpenGL context. GLFW itself is
// initialized by Open and terminated by Close, so only one Window may be
// open at a time and every call must come from the main thread.
type Window struct {
	handle *glfw.Window
	mode   display.Mode
}

// Open selects a display mode for req, creates a centered windowed
// surface with the requested OpenGL context and makes it current
func Open(req display.Request) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	log.Printf("GLFW initialized successfully, version: %s", glfw.GetVersionString())

	w, err := open(req)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	return w, nil
}

func open(req display.Request) (*Window, error) {
	logDisplays()

	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return nil, errors.New("no primary monitor")
	}
	current := toMode(monitor.GetVideoMode())
	if current == nil {
		return nil, fmt.Errorf("primary monitor %s has no video mode", monitor.GetName())
	}

	var modes []display.Mode
	for _, vm := range monitor.GetVideoModes() {
		if m := toMode(vm); m != nil {
			modes = append(modes, *m)
		}
	}
	log.Printf("Monitor %s: desktop %s, %d video modes", monitor.GetName(), current, len(modes))

	selected, err := display.Select(modes, *current, req)
	if err != nil {
		return nil, err
	}
	x, y := display.Center(*current, selected)
	log.Printf("Selected display mode %s at (%d,%d)", selected, x, y)

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, req.Context.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, req.Context.Minor)
	if req.Context.Core {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	glfw.WindowHint(glfw.RefreshRate, selected.RefreshRate)

	// A nil monitor gives a windowed surface
	var target *glfw.Monitor
	if req.Fullscreen {
		target = monitor
	}
	handle, err := glfw.CreateWindow(selected.Width, selected.Height, req.Title, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window with OpenGL %d.%d context: %w",
			req.Context.Major, req.Context.Minor, err)
	}

	if !req.Fullscreen {
		handle.SetPos(x, y)
	}
	handle.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		handle.Destroy()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Printf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	if req.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	handle.SetTitle(req.Title)
	handle.Show()

	return &Window{handle: handle, mode: selected}, nil
}

// toMode converts a GLFW video mode. 24-bit colour is reported as 32 bits
// per pixel, the padded size the display actually uses.
func toMode(vm *glfw.VidMode) *display.Mode {
	if vm == nil {
		return nil
	}
	depth := vm.RedBits + vm.GreenBits + vm.BlueBits
	if depth == 24 {
		depth = 32
	}
	return &display.Mode{
		Width:       vm.Width,
		Height:      vm.Height,
		Depth:       depth,
		RefreshRate: vm.RefreshRate,
	}
}

// Mode returns the display mode the window was created with
func (w *Window) Mode() display.Mode {
	return w.mode
}

// FramebufferSize returns the drawable size in pixels
func (w *Window) FramebufferSize() (int, int) {
	return w.handle.GetFramebufferSize()
}

// CloseRequested reports whether the user asked to close the window
func (w *Window) CloseRequested() bool {
	return w.handle.ShouldClose()
}

// Update presents the frame and processes pending platform events
func (w *Window) Update() {
	w.handle.SwapBuffers()
	glfw.PollEvents()
}

// Close destroys the window and terminates GLFW. Calling it again is a no-op.
func (w *Window) Close() {
	if w.handle == nil {
		return
	}
	log.Println("Destroying window")
	w.handle.Destroy()
	w.handle = nil
	glfw.Terminate()
}
