package window

import (
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/moderniselife/hellogui/display"
	"github.com/moderniselife/hellogui/gui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMode(t *testing.T) {
	assert.Nil(t, toMode(nil))

	m := toMode(&glfw.VidMode{Width: 1024, Height: 768, RedBits: 8, GreenBits: 8, BlueBits: 8, RefreshRate: 60})
	require.NotNil(t, m)
	assert.Equal(t, display.Mode{Width: 1024, Height: 768, Depth: 32, RefreshRate: 60}, *m)

	m = toMode(&glfw.VidMode{Width: 800, Height: 600, RedBits: 5, GreenBits: 6, BlueBits: 5, RefreshRate: 75})
	assert.Equal(t, 16, m.Depth)
}

func TestScale(t *testing.T) {
	assert.Equal(t, 200, scale(100, 1024, 2048))
	assert.Equal(t, 100, scale(100, 1024, 1024))
	assert.Equal(t, 7, scale(7.9, 0, 0))
}

func TestForwardEventsDrainsInOrder(t *testing.T) {
	in := NewInput(nil)
	in.queue = []gui.MouseEvent{
		{Kind: gui.MouseMoved, X: 1, Y: 2},
		{Kind: gui.MousePressed, X: 1, Y: 2},
	}
	var got []gui.MouseEvent
	in.ForwardEvents(func(ev gui.MouseEvent) { got = append(got, ev) })
	assert.Len(t, got, 2)
	assert.Equal(t, gui.MousePressed, got[1].Kind)

	got = nil
	in.ForwardEvents(func(ev gui.MouseEvent) { got = append(got, ev) })
	assert.Empty(t, got)

	assert.Error(t, in.Startup(), "no window")
	in.Shutdown()
}

// TestOpenWindow opens the real window against the primary monitor
func TestOpenWindow(t *testing.T) {
	if testing.Short() {
		t.Skip("needs a display")
	}
	if runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		t.Skip("no display available")
	}

	// GLFW operations must run on the main thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	w, err := Open(display.DefaultRequest())
	if errors.Is(err, display.ErrNoMatchingMode) {
		t.Skipf("monitor has no 1024x768x32 mode: %v", err)
	}
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, 1024, w.Mode().Width)
	assert.Equal(t, 768, w.Mode().Height)
	assert.False(t, w.CloseRequested())

	in := NewInput(w)
	require.NoError(t, in.Startup())
	for i := 0; i < 10; i++ {
		w.Update()
	}
	in.Shutdown()

	w.Close()
	w.Close()
}
