package gui

import (
	"fmt"
	"image"
	"image/color"
)

type nodeKind int

const (
	nodePanel nodeKind = iota
	nodeText
	nodeControl
)

// node is a laid out element
type node struct {
	kind     nodeKind
	id       string
	w, h     int
	box      image.Rectangle
	layout   ChildLayout
	align    Align
	valign   VAlign
	children []*node

	background color.NRGBA
	img        *image.Alpha
	scale      int
	color      color.NRGBA
	style      resolvedStyle
}

// layouter builds node trees against the loaded styles and controls
type layouter struct {
	styles   map[string]resolvedStyle
	controls map[string]ControlDef
	// every control node built so far, in document order
	hits []*node
}

func (l *layouter) style(name string) resolvedStyle {
	if s, ok := l.styles[name]; ok {
		return s
	}
	return resolvedStyle{scale: 1, color: color.NRGBA{A: 255}}
}

// layer lays out a layer over the whole viewport
func (l *layouter) layer(layer *Layer, width, height int) *node {
	root := &node{kind: nodePanel, id: layer.ID, layout: layer.ChildLayout, w: width, h: height}
	for _, p := range layer.Panels {
		root.children = append(root.children, l.build(p, width, height))
	}
	root.place(0, 0)
	return root
}

func (l *layouter) build(e Element, maxW, maxH int) *node {
	switch e := e.(type) {
	case *Text:
		st := l.style(e.Style)
		n := &node{kind: nodeText, id: e.ID, align: e.Align, valign: e.VAlign, scale: st.scale, color: st.color}
		if e.Color != "" {
			// checked when the screen was added
			n.color, _ = ParseColor(e.Color)
		}
		var lines []string
		if e.Wrap {
			lines = WrapText(e.Text, maxW/(glyphAdvance*st.scale))
		} else {
			lines = splitLines(e.Text)
		}
		tw, th := TextSize(lines)
		n.w, n.h = tw*st.scale, th*st.scale
		n.img = RasterizeText(lines)
		return n

	case *Control:
		def := l.controls[e.Type]
		st := l.style(def.Style)
		lines := splitLines(e.Label)
		tw, th := TextSize(lines)
		n := &node{
			kind:   nodeControl,
			id:     e.ID,
			align:  e.Align,
			valign: e.VAlign,
			scale:  st.scale,
			color:  st.color,
			style:  st,
			img:    RasterizeText(lines),
			w:      max(def.Width, tw*st.scale+2*def.Padding),
			h:      max(def.Height, th*st.scale+2*def.Padding),
		}
		l.hits = append(l.hits, n)
		return n

	case *Panel:
		n := &node{kind: nodePanel, id: e.ID, layout: e.ChildLayout, align: e.Align, valign: e.VAlign}
		if e.Background != "" {
			n.background, _ = ParseColor(e.Background)
		}
		innerW := e.Width.resolve(maxW, maxW)
		innerH := e.Height.resolve(maxH, maxH)
		var contentW, contentH int
		for _, child := range e.Children {
			c := l.build(child, innerW, innerH)
			n.children = append(n.children, c)
			switch e.ChildLayout {
			case LayoutVertical:
				contentW = max(contentW, c.w)
				contentH += c.h
			case LayoutHorizontal:
				contentW += c.w
				contentH = max(contentH, c.h)
			default:
				contentW = max(contentW, c.w)
				contentH = max(contentH, c.h)
			}
		}
		n.w = e.Width.resolve(maxW, contentW)
		n.h = e.Height.resolve(maxH, contentH)
		return n
	}
	panic(fmt.Sprintf("gui: unknown element %T", e))
}

// place positions n at (x, y) and its children according to its layout
func (n *node) place(x, y int) {
	n.box = image.Rect(x, y, x+n.w, y+n.h)
	switch n.layout {
	case LayoutVertical:
		cy := y
		for _, c := range n.children {
			c.place(x+alignOffset(c.align, n.w, c.w), cy)
			cy += c.h
		}
	case LayoutHorizontal:
		cx := x
		for _, c := range n.children {
			c.place(cx, y+valignOffset(c.valign, n.h, c.h))
			cx += c.w
		}
	case LayoutCenter:
		for _, c := range n.children {
			c.place(x+(n.w-c.w)/2, y+(n.h-c.h)/2)
		}
	default:
		for _, c := range n.children {
			c.place(x+alignOffset(c.align, n.w, c.w), y+valignOffset(c.valign, n.h, c.h))
		}
	}
}

func alignOffset(a Align, outer, inner int) int {
	switch a {
	case AlignCenter:
		return (outer - inner) / 2
	case AlignRight:
		return outer - inner
	}
	return 0
}

func valignOffset(a VAlign, outer, inner int) int {
	switch a {
	case VAlignCenter:
		return (outer - inner) / 2
	case VAlignBottom:
		return outer - inner
	}
	return 0
}

// hit returns the topmost control containing p
func (l *layouter) hit(p image.Point) *node {
	for i := len(l.hits) - 1; i >= 0; i-- {
		if p.In(l.hits[i].box) {
			return l.hits[i]
		}
	}
	return nil
}

// validate checks that every style, control type and colour e refers to exists
func (l *layouter) validate(e Element) error {
	switch e := e.(type) {
	case *Text:
		if e.Style != "" {
			if _, ok := l.styles[e.Style]; !ok {
				return fmt.Errorf("text %q: unknown style %q", e.ID, e.Style)
			}
		}
		if e.Color != "" {
			if _, err := ParseColor(e.Color); err != nil {
				return fmt.Errorf("text %q: %w", e.ID, err)
			}
		}
	case *Control:
		if e.ID == "" {
			return fmt.Errorf("control of type %q has no id", e.Type)
		}
		def, ok := l.controls[e.Type]
		if !ok {
			return fmt.Errorf("control %q: unknown control type %q", e.ID, e.Type)
		}
		if def.Style != "" {
			if _, ok := l.styles[def.Style]; !ok {
				return fmt.Errorf("control %q: unknown style %q", e.ID, def.Style)
			}
		}
	case *Panel:
		if e.Background != "" {
			if _, err := ParseColor(e.Background); err != nil {
				return fmt.Errorf("panel %q: %w", e.ID, err)
			}
		}
		for _, child := range e.Children {
			if err := l.validate(child); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown element %T", e)
	}
	return nil
}
