package graphics

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// ParseColor reads "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa". An empty
// string or "none" means no color and yields nil.
func ParseColor(s string) color.Color {
	if s == "" || s == "none" {
		return nil
	}
	return toNRGBA(gg.Hex(s))
}

// Hex formats c as #rrggbb plus its opacity in [0,1].
func Hex(c color.Color) (string, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), float64(n.A) / 255
}

// FormatColor is the inverse of ParseColor.
func FormatColor(c color.Color) string {
	if c == nil {
		return "none"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// Lerp blends two opaque colors, t in [0,1].
func Lerp(a, b color.Color, t float64) color.Color {
	return toNRGBA(gg.FromColor(a).Lerp(gg.FromColor(b), t))
}

func toNRGBA(c gg.RGBA) color.NRGBA {
	channel := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
}
