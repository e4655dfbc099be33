package gui

import (
	"image"
	"image/color"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fillCall struct {
	rect        image.Rectangle
	top, bottom color.NRGBA
}

type textCall struct {
	at    image.Point
	scale int
	color color.NRGBA
	size  image.Point
}

type recorder struct {
	w, h   int
	clears int
	fills  []fillCall
	texts  []textCall
}

func (r *recorder) Viewport() (int, int) { return r.w, r.h }
func (r *recorder) Clear()               { r.clears++ }
func (r *recorder) FillRect(rect image.Rectangle, top, bottom color.NRGBA) {
	r.fills = append(r.fills, fillCall{rect, top, bottom})
}
func (r *recorder) DrawText(img *image.Alpha, at image.Point, scale int, c color.NRGBA) {
	r.texts = append(r.texts, textCall{at, scale, c, img.Bounds().Size()})
}
func (r *recorder) reset() { r.clears, r.fills, r.texts = 0, nil, nil }

type queue struct{ events []MouseEvent }

func (q *queue) ForwardEvents(fn func(MouseEvent)) {
	events := q.events
	q.events = nil
	for _, ev := range events {
		fn(ev)
	}
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var testResources = fstest.MapFS{
	DefaultStyleFile: {Data: []byte(`
styles:
  base-font:
    scale: 2
    color: "#000f"
  button:
    font: 7x13
    color: "#000f"
    background: "#cccf"
    hover: "#eeef"
    pressed: "#999f"
`)},
	DefaultControlFile: {Data: []byte(`
controls:
  button:
    style: button
    width: 100
    height: 32
    padding: 4
`)},
}

func testScreen(ctrl Controller) *Screen {
	return &Screen{
		ID:         "start",
		Controller: ctrl,
		Layers: []*Layer{{
			ID:          "layer",
			ChildLayout: LayoutCenter,
			OnStartScreen: []Effect{{Name: EffectFade, Length: 500 * time.Millisecond,
				Params: map[string]string{"start": "#0", "end": "#f"}}},
			OnEndScreen: []Effect{{Name: EffectFade, Length: 500 * time.Millisecond,
				Params: map[string]string{"start": "#f", "end": "#0"}}},
			OnActive: []Effect{{Name: EffectGradient, Values: []EffectValue{
				{"offset": "0%", "color": "#333f"},
				{"offset": "100%", "color": "#ffff"},
			}}},
			Panels: []*Panel{{
				ChildLayout: LayoutVertical,
				Children: []Element{
					&Text{Text: "hello", Style: "base-font", Align: AlignCenter},
					&Panel{Height: Px(10)},
					&Control{ID: "exit", Type: "button", Label: "Exit", Align: AlignCenter},
				},
			}},
		}},
	}
}

func newTestGUI(t *testing.T, ctrl Controller) (*GUI, *recorder, *queue, *fakeClock) {
	t.Helper()
	r := &recorder{w: 1024, h: 768}
	in := &queue{}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	g := New(r, in, clock.Now)
	require.NoError(t, g.LoadStyleFile(testResources, DefaultStyleFile))
	require.NoError(t, g.LoadControlFile(testResources, DefaultControlFile))
	require.NoError(t, g.AddScreen(testScreen(ctrl)))
	return g, r, in, clock
}

type bindRecorder struct{ bound []string }

func (b *bindRecorder) Bind(_ *GUI, s *Screen) { b.bound = append(b.bound, s.ID) }

func TestAddScreenBindsController(t *testing.T) {
	ctrl := &bindRecorder{}
	g, _, _, _ := newTestGUI(t, ctrl)
	assert.Equal(t, []string{"start"}, ctrl.bound)

	err := g.AddScreen(testScreen(nil))
	assert.Error(t, err, "duplicate screen id")
}

func TestAddScreenValidation(t *testing.T) {
	g := New(&recorder{}, nil, nil)
	require.NoError(t, g.LoadControlFile(testResources, DefaultControlFile))

	// the control references the "button" style, which is not loaded
	err := g.AddScreen(&Screen{ID: "s", Layers: []*Layer{{Panels: []*Panel{{
		Children: []Element{&Control{ID: "b", Type: "button"}},
	}}}}})
	assert.ErrorContains(t, err, `unknown style "button"`)

	err = g.AddScreen(&Screen{ID: "s", Layers: []*Layer{{Panels: []*Panel{{
		Children: []Element{&Control{ID: "b", Type: "slider"}},
	}}}}})
	assert.ErrorContains(t, err, `unknown control type "slider"`)

	err = g.AddScreen(&Screen{ID: "s", Layers: []*Layer{{
		OnStartScreen: []Effect{{Name: "shake"}},
	}}})
	assert.ErrorIs(t, err, ErrUnsupportedEffect)

	err = g.AddScreen(&Screen{ID: "s", Layers: []*Layer{{Panels: []*Panel{{
		Children: []Element{&Text{Text: "x", Color: "black"}},
	}}}}})
	assert.Error(t, err)
}

func TestControlBounds(t *testing.T) {
	g, _, _, _ := newTestGUI(t, nil)
	require.NoError(t, g.GotoScreen("start"))
	_, ok := g.ControlBounds("exit")
	assert.False(t, ok, "not laid out yet")

	g.Render(true)
	box, ok := g.ControlBounds("exit")
	require.True(t, ok)
	assert.Equal(t, 100, box.Dx())
	assert.Equal(t, 32, box.Dy())

	_, ok = g.ControlBounds("missing")
	assert.False(t, ok)
}

func TestGotoUnknownScreen(t *testing.T) {
	g, _, _, _ := newTestGUI(t, nil)
	assert.ErrorIs(t, g.GotoScreen("missing"), ErrUnknownScreen)
}

func TestFadeInThenActive(t *testing.T) {
	g, r, _, clock := newTestGUI(t, nil)
	require.NoError(t, g.GotoScreen("start"))
	assert.Equal(t, "start", g.CurrentScreen())

	// fully transparent at the start of the fade
	assert.False(t, g.Update())
	g.Render(true)
	assert.Equal(t, 1, r.clears)
	assert.Empty(t, r.fills)
	assert.Empty(t, r.texts)

	clock.Advance(250 * time.Millisecond)
	r.reset()
	g.Update()
	g.Render(true)
	require.NotEmpty(t, r.fills)
	assert.InDelta(t, 128, int(r.fills[0].top.A), 1)

	clock.Advance(250 * time.Millisecond)
	r.reset()
	g.Update()
	assert.Equal(t, phaseActive, g.phase)
	g.Render(true)
	require.NotEmpty(t, r.fills)
	gradient := r.fills[0]
	assert.Equal(t, image.Rect(0, 0, 1024, 768), gradient.rect)
	assert.Equal(t, color.NRGBA{0x33, 0x33, 0x33, 0xff}, gradient.top)
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, gradient.bottom)
	assert.Len(t, r.texts, 2, "label text and button caption")
}

func TestLayoutCentersPanel(t *testing.T) {
	g, r, _, _ := newTestGUI(t, nil)
	require.NoError(t, g.GotoScreen("start"))
	g.Render(false)

	root := g.current.layers[0].root
	panel := root.children[0]
	text, spacer, button := panel.children[0], panel.children[1], panel.children[2]

	// "hello" at scale 2 is 70x26, the button is 100x32
	assert.Equal(t, 70, text.w)
	assert.Equal(t, 26, text.h)
	assert.Equal(t, 10, spacer.h)
	assert.Equal(t, 100, button.w)
	assert.Equal(t, 100, panel.w)
	assert.Equal(t, 26+10+32, panel.h)

	assert.Equal(t, image.Pt((1024-100)/2, (768-68)/2), panel.box.Min)
	assert.Equal(t, panel.box.Min.X+15, text.box.Min.X)
	assert.Equal(t, panel.box.Min.Y+36, button.box.Min.Y)
	assert.Equal(t, 0, r.clears)
}

func clickExit(g *GUI, in *queue) {
	box, _ := g.ControlBounds("exit")
	center := box.Min.Add(box.Size().Div(2))
	in.events = append(in.events,
		MouseEvent{Kind: MouseMoved, X: center.X, Y: center.Y},
		MouseEvent{Kind: MousePressed, X: center.X, Y: center.Y},
		MouseEvent{Kind: MouseReleased, X: center.X, Y: center.Y},
	)
}

func TestButtonClickPublishes(t *testing.T) {
	g, _, in, clock := newTestGUI(t, nil)
	require.NoError(t, g.GotoScreen("start"))
	g.Update()
	g.Render(true)
	clock.Advance(time.Second)
	g.Update()

	var got []Event
	g.Subscribe("exit", ButtonClicked, func(id string, ev Event) {
		got = append(got, ev)
	})

	clickExit(g, in)
	g.Update()
	require.Len(t, got, 1)
	assert.Equal(t, Event{Type: ButtonClicked, ID: "exit"}, got[0])

	// press on the button, release outside: no click
	btn := g.layout.hits[0].box
	in.events = append(in.events,
		MouseEvent{Kind: MousePressed, X: btn.Min.X + 1, Y: btn.Min.Y + 1},
		MouseEvent{Kind: MouseReleased, X: 0, Y: 0},
	)
	g.Update()
	assert.Len(t, got, 1)
}

func TestInputIgnoredWhileFading(t *testing.T) {
	g, _, in, _ := newTestGUI(t, nil)
	require.NoError(t, g.GotoScreen("start"))
	g.Render(true)

	clicks := 0
	g.Subscribe("exit", ButtonClicked, func(string, Event) { clicks++ })
	clickExit(g, in)
	g.Update()
	assert.Zero(t, clicks)
}

func TestExitWaitsForEndEffect(t *testing.T) {
	g, r, _, clock := newTestGUI(t, nil)
	require.NoError(t, g.GotoScreen("start"))
	clock.Advance(time.Second)
	g.Update()
	g.Render(true)

	g.Exit()
	assert.False(t, g.Update())

	clock.Advance(499 * time.Millisecond)
	assert.False(t, g.Update())

	clock.Advance(time.Millisecond)
	assert.True(t, g.Update())
	assert.True(t, g.Update(), "stays done")
	assert.Equal(t, "", g.CurrentScreen())

	r.reset()
	g.Render(true)
	assert.Equal(t, 1, r.clears)
	assert.Empty(t, r.fills)
}

func TestExitWithoutScreen(t *testing.T) {
	g := New(&recorder{}, nil, nil)
	g.Exit()
	assert.True(t, g.Update())
}

func TestGotoScreenSwitchesAfterEndEffect(t *testing.T) {
	g, _, _, clock := newTestGUI(t, nil)
	require.NoError(t, g.AddScreen(&Screen{ID: "second", Controller: DefaultController{}}))
	require.NoError(t, g.GotoScreen("start"))
	clock.Advance(time.Second)
	g.Update()

	require.NoError(t, g.GotoScreen("second"))
	g.Update()
	assert.Equal(t, "start", g.CurrentScreen())

	clock.Advance(500 * time.Millisecond)
	g.Update()
	assert.Equal(t, "second", g.CurrentScreen())
}

func TestRelayoutOnViewportChange(t *testing.T) {
	g, r, _, _ := newTestGUI(t, nil)
	require.NoError(t, g.GotoScreen("start"))
	g.Render(true)
	first := g.current.layers[0].root.children[0].box

	r.w, r.h = 800, 600
	g.Render(true)
	second := g.current.layers[0].root.children[0].box
	assert.NotEqual(t, first, second)
	assert.Equal(t, (800-100)/2, second.Min.X)
}
