package scales

import (
	"image/color"
	"math"
	"slices"

	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/signal"
)

var defaultColorRange = []color.Color{
	color.NRGBA{R: 0xe8, G: 0xf5, B: 0xe9, A: 0xff},
	color.NRGBA{R: 0x1b, G: 0x5e, B: 0x20, A: 0xff},
}

// LinearColor maps values onto a gradient through a Linear range.
type LinearColor struct {
	Linear
	colors []color.Color
}

// NewLinearColor creates a color scale. With fewer than two colors a
// green gradient is used.
func NewLinearColor(colors ...color.Color) *LinearColor {
	s := &LinearColor{}
	s.init(s)
	s.colors = normalizeColors(colors)
	return s
}

func normalizeColors(colors []color.Color) []color.Color {
	colors = slices.DeleteFunc(slices.Clone(colors), func(c color.Color) bool { return c == nil })
	if len(colors) < 2 {
		return slices.Clone(defaultColorRange)
	}
	return colors
}

func (s *LinearColor) Colors() []color.Color { return slices.Clone(s.colors) }

func (s *LinearColor) SetColors(colors ...color.Color) {
	next := normalizeColors(colors)
	if slices.EqualFunc(s.colors, next, sameColor) {
		return
	}
	s.colors = next
	s.DispatchSignal(signal.NeedsReapplication)
}

func sameColor(a, b color.Color) bool {
	return color.NRGBAModel.Convert(a) == color.NRGBAModel.Convert(b)
}

// ValueToColor returns the gradient color for v. Values outside the range
// clamp to the end colors.
func (s *LinearColor) ValueToColor(v float64) color.Color {
	r := s.Transform(v)
	if math.IsNaN(r) {
		return nil
	}
	r = math.Max(0, math.Min(1, r))
	segments := float64(len(s.colors) - 1)
	pos := r * segments
	i := int(math.Floor(pos))
	if i >= len(s.colors)-1 {
		return color.NRGBAModel.Convert(s.colors[len(s.colors)-1])
	}
	return graphics.Lerp(s.colors[i], s.colors[i+1], pos-float64(i))
}
