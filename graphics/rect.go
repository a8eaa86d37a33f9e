package graphics

import "math"

// Rect is an axis aligned rectangle in pixels.
type Rect struct {
	Left, Top, Width, Height float64
}

func R(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Width: width, Height: height}
}

func (r Rect) Right() float64  { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right() && y >= r.Top && y <= r.Bottom()
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	left := math.Min(r.Left, o.Left)
	top := math.Min(r.Top, o.Top)
	return Rect{
		Left:   left,
		Top:    top,
		Width:  math.Max(r.Right(), o.Right()) - left,
		Height: math.Max(r.Bottom(), o.Bottom()) - top,
	}
}

// Inset shrinks r by the given paddings, never below zero size.
func (r Rect) Inset(top, right, bottom, left float64) Rect {
	return Rect{
		Left:   r.Left + left,
		Top:    r.Top + top,
		Width:  math.Max(0, r.Width-left-right),
		Height: math.Max(0, r.Height-top-bottom),
	}
}

// Center returns the center point of the rect.
func (r Rect) Center() (float64, float64) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// Intersects reports whether the rects overlap with a non empty area.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right() && o.Left < r.Right() && r.Top < o.Bottom() && o.Top < r.Bottom()
}
