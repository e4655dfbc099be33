package gui

// ChildLayout controls how an element arranges its children
type ChildLayout int

const (
	LayoutNone ChildLayout = iota
	LayoutCenter
	LayoutVertical
	LayoutHorizontal
)

// Align is the horizontal alignment of an element inside its parent
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// VAlign is the vertical alignment of an element inside its parent
type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignCenter
	VAlignBottom
)

// SizeUnit tells how a Size value is interpreted
type SizeUnit int

const (
	UnitAuto SizeUnit = iota
	UnitPixel
	UnitPercent
)

// Size is an element dimension. The zero value sizes to content.
type Size struct {
	Value int
	Unit  SizeUnit
}

// Px returns a fixed pixel size
func Px(n int) Size { return Size{Value: n, Unit: UnitPixel} }

// Percent returns a size relative to the parent
func Percent(n int) Size { return Size{Value: n, Unit: UnitPercent} }

func (s Size) resolve(parent, content int) int {
	switch s.Unit {
	case UnitPixel:
		return s.Value
	case UnitPercent:
		return parent * s.Value / 100
	}
	return content
}

// Screen is a top-level scene made of layers
type Screen struct {
	ID         string
	Controller Controller
	Layers     []*Layer
}

// Layer covers the whole viewport and holds panels
type Layer struct {
	ID          string
	ChildLayout ChildLayout

	OnStartScreen []Effect
	OnEndScreen   []Effect
	OnActive      []Effect

	Panels []*Panel
}

// Element is anything that can be placed inside a panel
type Element interface {
	elementID() string
}

// Panel groups child elements
type Panel struct {
	ID          string
	ChildLayout ChildLayout
	Width       Size
	Height      Size
	Align       Align
	VAlign      VAlign
	Background  string
	Children    []Element
}

// Text is a static label
type Text struct {
	ID     string
	Text   string
	Wrap   bool
	Style  string
	Color  string // overrides the style colour when set
	Align  Align
	VAlign VAlign
}

// Control is an interactive widget built from a control definition
type Control struct {
	ID     string
	Type   string
	Label  string
	Align  Align
	VAlign VAlign
}

func (p *Panel) elementID() string   { return p.ID }
func (t *Text) elementID() string    { return t.ID }
func (c *Control) elementID() string { return c.ID }

// Controller is attached to a screen and wires it to application logic
type Controller interface {
	Bind(g *GUI, s *Screen)
}

// DefaultController does nothing
type DefaultController struct{}

// Bind implements Controller
func (DefaultController) Bind(*GUI, *Screen) {}
