// Package graphics is the vector graphics seam chartparty draws through.
// Components only see the Element, Layer, Path and Text interfaces; the
// retained Stage implementation here records the tree so exporters (svg,
// raster) can render it and tests can count the work a Draw performed.
package graphics

import "image/color"

// Stroke describes an outline. A nil Color or non positive Thickness means
// no stroke.
type Stroke struct {
	Color     color.Color
	Thickness float64
}

// NoStroke disables outlines.
var NoStroke = Stroke{}

func (s Stroke) IsNone() bool {
	return s.Color == nil || s.Thickness <= 0
}

// PointerEvent is delivered to handlers bound with On.
type PointerEvent struct {
	Type   string
	X, Y   float64
	Target Element
}

// Element is any node of the stage tree.
type Element interface {
	ID() string
	Stage() *Stage
	Parent() Layer
	// SetParent attaches the element to l, or detaches it when l is nil.
	SetParent(l Layer)
	ZIndex() float64
	SetZIndex(z float64)
	Visible() bool
	SetVisible(v bool)
	Bounds() Rect
	// Tag is an arbitrary back pointer, usually the owning component.
	Tag() any
	SetTag(tag any)
	On(eventType string, handler func(PointerEvent))
	RemoveAllHandlers()
	HandlerCount() int
	Dispatch(ev PointerEvent) bool
}

// Layer groups elements.
type Layer interface {
	Element
	Children() []Element
	NumChildren() int
	AddChild(e Element)
	RemoveChild(e Element)
	RemoveChildren()
}

// PathCommand is one segment of a path: 'M', 'L' or 'Z'.
type PathCommand struct {
	Op   byte
	X, Y float64
}

// Path is a fillable, strokable outline.
type Path interface {
	Element
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Close()
	Rect(r Rect)
	Clear()
	Commands() []PathCommand
	Fill() color.Color
	SetFill(c color.Color)
	Stroke() Stroke
	SetStroke(s Stroke)
}

// Text is a single line label.
type Text interface {
	Element
	Text() string
	SetText(s string)
	Position() (x, y float64)
	SetPosition(x, y float64)
	FontSize() float64
	SetFontSize(size float64)
	Color() color.Color
	SetColor(c color.Color)
	// Measure returns the size the text occupies with its current settings.
	Measure() (w, h float64)
}
