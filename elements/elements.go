// Package elements holds the scene graph building blocks charts are made
// of. Every element follows the same draw template: gate with
// CheckDrawingNeeded, build graphics lazily, then resolve each dirty state
// in a fixed order and mark it consistent.
package elements

import (
	"image/color"

	"github.com/delaneyj/chartparty/graphics"
)

// Orientation is the side of the parent bounds an element sticks to.
type Orientation string

const (
	Top    Orientation = "top"
	Bottom Orientation = "bottom"
	Left   Orientation = "left"
	Right  Orientation = "right"
)

func (o Orientation) IsHorizontal() bool {
	return o == Top || o == Bottom
}

// Valid reports whether o is one of the four sides.
func (o Orientation) Valid() bool {
	switch o {
	case Top, Bottom, Left, Right:
		return true
	}
	return false
}

// StrokeConfig is the serialized form of a graphics.Stroke.
type StrokeConfig struct {
	Color     string  `json:"color" yaml:"color"`
	Thickness float64 `json:"thickness" yaml:"thickness"`
}

func (c StrokeConfig) Stroke() graphics.Stroke {
	return graphics.Stroke{Color: graphics.ParseColor(c.Color), Thickness: c.Thickness}
}

func strokeConfig(s graphics.Stroke) *StrokeConfig {
	return &StrokeConfig{Color: graphics.FormatColor(s.Color), Thickness: s.Thickness}
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return color.NRGBAModel.Convert(a) == color.NRGBAModel.Convert(b)
}

func sameStroke(a, b graphics.Stroke) bool {
	return a.Thickness == b.Thickness && sameColor(a.Color, b.Color)
}

// cut removes a strip of size from the o side of r.
func cut(r graphics.Rect, o Orientation, size float64) graphics.Rect {
	switch o {
	case Top:
		return r.Inset(size, 0, 0, 0)
	case Bottom:
		return r.Inset(0, 0, size, 0)
	case Left:
		return r.Inset(0, 0, 0, size)
	case Right:
		return r.Inset(0, size, 0, 0)
	}
	return r
}

// strip is the part of r that cut removes.
func strip(r graphics.Rect, o Orientation, size float64) graphics.Rect {
	switch o {
	case Top:
		return graphics.R(r.Left, r.Top, r.Width, min(size, r.Height))
	case Bottom:
		h := min(size, r.Height)
		return graphics.R(r.Left, r.Bottom()-h, r.Width, h)
	case Left:
		return graphics.R(r.Left, r.Top, min(size, r.Width), r.Height)
	case Right:
		w := min(size, r.Width)
		return graphics.R(r.Right()-w, r.Top, w, r.Height)
	}
	return r
}

func ptr[T any](v T) *T { return &v }
