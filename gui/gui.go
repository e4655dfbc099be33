// Package gui is a small retained-mode GUI: declarative screens, named
// styles, fade and gradient effects, and button click events.
package gui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"time"
)

// ErrUnknownScreen is returned by GotoScreen for ids never added
var ErrUnknownScreen = errors.New("unknown screen")

// Renderer draws primitives for the GUI
type Renderer interface {
	Viewport() (width, height int)
	Clear()
	// FillRect fills r with a vertical gradient from top to bottom
	FillRect(r image.Rectangle, top, bottom color.NRGBA)
	// DrawText draws an alpha mask at the given integer scale
	DrawText(img *image.Alpha, at image.Point, scale int, c color.NRGBA)
}

// MouseKind tells what happened in a MouseEvent
type MouseKind int

const (
	MouseMoved MouseKind = iota
	MousePressed
	MouseReleased
)

// MouseEvent is a pointer event in framebuffer pixels, origin top-left
type MouseEvent struct {
	Kind   MouseKind
	X, Y   int
	Button int // 0 is the primary button
}

// InputSystem feeds queued input to the GUI once per update
type InputSystem interface {
	ForwardEvents(fn func(MouseEvent))
}

type phase int

const (
	phaseIdle phase = iota
	phaseStarting
	phaseActive
	phaseEnding
)

type layerState struct {
	layer    *Layer
	start    fades
	end      fades
	gradient []gradientStop
	root     *node
}

type screenState struct {
	screen *Screen
	layers []*layerState
}

func (s *screenState) startLength() time.Duration {
	var d time.Duration
	for _, l := range s.layers {
		d = max(d, l.start.length())
	}
	return d
}

func (s *screenState) endLength() time.Duration {
	var d time.Duration
	for _, l := range s.layers {
		d = max(d, l.end.length())
	}
	return d
}

// GUI owns the screens and drives them each frame
type GUI struct {
	EventBus

	renderer Renderer
	input    InputSystem
	clock    func() time.Time

	styles   map[string]resolvedStyle
	controls map[string]ControlDef
	screens  map[string]*screenState

	current    *screenState
	next       *screenState
	phase      phase
	phaseStart time.Time
	exiting    bool
	done       bool

	layout        *layouter
	viewW, viewH  int
	hover, active *node
}

// New creates a GUI drawing with r and reading input from in. A nil
// clock uses time.Now.
func New(r Renderer, in InputSystem, clock func() time.Time) *GUI {
	if clock == nil {
		clock = time.Now
	}
	return &GUI{
		renderer: r,
		input:    in,
		clock:    clock,
		styles:   make(map[string]resolvedStyle),
		controls: make(map[string]ControlDef),
		screens:  make(map[string]*screenState),
	}
}

// AddScreen validates s, compiles its effects and binds its controller
func (g *GUI) AddScreen(s *Screen) error {
	if s.ID == "" {
		return errors.New("screen has no id")
	}
	if _, ok := g.screens[s.ID]; ok {
		return fmt.Errorf("screen %q already exists", s.ID)
	}

	check := &layouter{styles: g.styles, controls: g.controls}
	state := &screenState{screen: s}
	for _, layer := range s.Layers {
		ls, err := compileLayer(layer)
		if err != nil {
			return fmt.Errorf("screen %q: %w", s.ID, err)
		}
		for _, p := range layer.Panels {
			if err := check.validate(p); err != nil {
				return fmt.Errorf("screen %q layer %q: %w", s.ID, layer.ID, err)
			}
		}
		state.layers = append(state.layers, ls)
	}

	g.screens[s.ID] = state
	if s.Controller != nil {
		s.Controller.Bind(g, s)
	}
	return nil
}

func compileLayer(layer *Layer) (*layerState, error) {
	ls := &layerState{layer: layer}
	for _, e := range layer.OnStartScreen {
		if e.Name != EffectFade {
			return nil, fmt.Errorf("layer %q: %w %q on start screen", layer.ID, ErrUnsupportedEffect, e.Name)
		}
		f, err := compileFade(e)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", layer.ID, err)
		}
		ls.start = append(ls.start, f)
	}
	for _, e := range layer.OnEndScreen {
		if e.Name != EffectFade {
			return nil, fmt.Errorf("layer %q: %w %q on end screen", layer.ID, ErrUnsupportedEffect, e.Name)
		}
		f, err := compileFade(e)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", layer.ID, err)
		}
		ls.end = append(ls.end, f)
	}
	for _, e := range layer.OnActive {
		if e.Name != EffectGradient {
			return nil, fmt.Errorf("layer %q: %w %q while active", layer.ID, ErrUnsupportedEffect, e.Name)
		}
		stops, err := compileGradient(e)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", layer.ID, err)
		}
		ls.gradient = stops
	}
	return ls, nil
}

// GotoScreen ends the current screen, if any, and starts screen id
func (g *GUI) GotoScreen(id string) error {
	s, ok := g.screens[id]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownScreen, id)
	}
	if g.current == nil {
		g.start(s)
		return nil
	}
	g.next = s
	g.enterPhase(phaseEnding)
	return nil
}

// Exit ends the current screen. Update reports true once it is gone.
func (g *GUI) Exit() {
	if g.exiting || g.done {
		return
	}
	g.exiting = true
	if g.current == nil {
		g.done = true
		return
	}
	if g.phase != phaseEnding {
		g.enterPhase(phaseEnding)
	}
}

// CurrentScreen returns the id of the screen being shown
func (g *GUI) CurrentScreen() string {
	if g.current == nil {
		return ""
	}
	return g.current.screen.ID
}

// ControlBounds returns where the control with the given id was last laid
// out. It reports false before the first Render.
func (g *GUI) ControlBounds(id string) (image.Rectangle, bool) {
	if g.layout == nil {
		return image.Rectangle{}, false
	}
	for _, n := range g.layout.hits {
		if n.id == id {
			return n.box, true
		}
	}
	return image.Rectangle{}, false
}

func (g *GUI) start(s *screenState) {
	g.current = s
	g.next = nil
	g.layout = nil
	g.hover, g.active = nil, nil
	g.enterPhase(phaseStarting)
}

func (g *GUI) enterPhase(p phase) {
	g.phase = p
	g.phaseStart = g.clock()
}

// Update forwards input and advances effects. It returns true once an
// Exit has finished.
func (g *GUI) Update() bool {
	if g.done {
		return true
	}
	if g.input != nil {
		g.input.ForwardEvents(g.handleMouse)
	}

	elapsed := g.clock().Sub(g.phaseStart)
	switch g.phase {
	case phaseStarting:
		if elapsed >= g.current.startLength() {
			g.enterPhase(phaseActive)
		}
	case phaseEnding:
		if elapsed >= g.current.endLength() {
			if g.exiting {
				g.current, g.next = nil, nil
				g.phase = phaseIdle
				g.done = true
			} else {
				g.start(g.next)
			}
		}
	}
	return g.done
}

func (g *GUI) handleMouse(ev MouseEvent) {
	// Input only reaches a fully started screen
	if g.phase != phaseActive || g.layout == nil {
		return
	}
	target := g.layout.hit(image.Pt(ev.X, ev.Y))
	switch ev.Kind {
	case MouseMoved:
		g.hover = target
	case MousePressed:
		g.hover = target
		if ev.Button == 0 {
			g.active = target
		}
	case MouseReleased:
		if ev.Button != 0 {
			return
		}
		pressed := g.active
		g.active = nil
		if pressed != nil && pressed == target {
			if g.Publish(pressed.id, Event{Type: ButtonClicked, ID: pressed.id}) == 0 {
				log.Printf("No subscriber for %s on %q", ButtonClicked, pressed.id)
			}
		}
	}
}

// Render draws the current screen, clearing the frame first if clear is set
func (g *GUI) Render(clear bool) {
	if clear {
		g.renderer.Clear()
	}
	if g.current == nil {
		return
	}

	w, h := g.renderer.Viewport()
	if g.layout == nil || w != g.viewW || h != g.viewH {
		g.relayout(w, h)
	}

	elapsed := g.clock().Sub(g.phaseStart)
	for _, ls := range g.current.layers {
		alpha := 1.0
		switch g.phase {
		case phaseStarting:
			alpha = ls.start.at(elapsed)
		case phaseEnding:
			alpha = ls.end.at(elapsed)
		}
		if alpha <= 0 {
			continue
		}
		g.drawGradient(ls.gradient, ls.root.box, alpha)
		g.drawNode(ls.root, alpha)
	}
}

func (g *GUI) relayout(w, h int) {
	g.viewW, g.viewH = w, h
	g.layout = &layouter{styles: g.styles, controls: g.controls}
	for _, ls := range g.current.layers {
		ls.root = g.layout.layer(ls.layer, w, h)
	}
	g.hover, g.active = nil, nil
}

func (g *GUI) drawGradient(stops []gradientStop, r image.Rectangle, alpha float64) {
	if len(stops) == 0 {
		return
	}
	yAt := func(offset float64) int { return r.Min.Y + int(offset*float64(r.Dy())+0.5) }

	first, last := stops[0], stops[len(stops)-1]
	if y := yAt(first.offset); y > r.Min.Y {
		c := withAlpha(first.color, alpha)
		g.renderer.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, y), c, c)
	}
	for i := 0; i+1 < len(stops); i++ {
		y0, y1 := yAt(stops[i].offset), yAt(stops[i+1].offset)
		if y1 <= y0 {
			continue
		}
		g.renderer.FillRect(image.Rect(r.Min.X, y0, r.Max.X, y1),
			withAlpha(stops[i].color, alpha), withAlpha(stops[i+1].color, alpha))
	}
	if y := yAt(last.offset); y < r.Max.Y {
		c := withAlpha(last.color, alpha)
		g.renderer.FillRect(image.Rect(r.Min.X, y, r.Max.X, r.Max.Y), c, c)
	}
}

func (g *GUI) drawNode(n *node, alpha float64) {
	switch n.kind {
	case nodePanel:
		if n.background.A > 0 {
			c := withAlpha(n.background, alpha)
			g.renderer.FillRect(n.box, c, c)
		}
		for _, c := range n.children {
			g.drawNode(c, alpha)
		}
	case nodeText:
		g.renderer.DrawText(n.img, n.box.Min, n.scale, withAlpha(n.color, alpha))
	case nodeControl:
		bg := n.style.background
		switch {
		case g.active == n && g.hover == n:
			bg = n.style.pressed
		case g.hover == n:
			bg = n.style.hover
		}
		if bg.A > 0 {
			c := withAlpha(bg, alpha)
			g.renderer.FillRect(n.box, c, c)
		}
		size := n.img.Bounds().Size().Mul(n.scale)
		at := n.box.Min.Add(image.Pt((n.w-size.X)/2, (n.h-size.Y)/2))
		g.renderer.DrawText(n.img, at, n.scale, withAlpha(n.color, alpha))
	}
}
