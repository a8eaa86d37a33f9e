package elements

import (
	"image/color"
	"slices"

	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/core"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/signal"
)

var defaultPalette = []string{
	"#64b5f6", "#1976d2", "#ef6c00", "#ffd54f", "#455a64",
	"#96a6a6", "#dd2c00", "#00838f", "#00bfa5", "#ffa000",
}

// Palette is a cyclic list of colors series pick from by index. It draws
// nothing and only dispatches.
type Palette struct {
	core.Base
	colors []color.Color
}

// NewPalette creates a palette, falling back to the default colors when
// none are given.
func NewPalette(colors ...color.Color) *Palette {
	p := &Palette{}
	p.Base = core.NewBase(p, "palette", consistency.OnlyDispatching, signal.NeedsReapplication)
	p.colors = paletteColors(colors)
	return p
}

func paletteColors(colors []color.Color) []color.Color {
	colors = slices.DeleteFunc(slices.Clone(colors), func(c color.Color) bool { return c == nil })
	if len(colors) > 0 {
		return colors
	}
	out := make([]color.Color, len(defaultPalette))
	for i, s := range defaultPalette {
		out[i] = graphics.ParseColor(s)
	}
	return out
}

func (p *Palette) Items() []color.Color { return slices.Clone(p.colors) }

func (p *Palette) SetItems(colors ...color.Color) {
	next := paletteColors(colors)
	if slices.EqualFunc(p.colors, next, sameColor) {
		return
	}
	p.colors = next
	p.Invalidate(consistency.OnlyDispatching, signal.NeedsReapplication)
}

// ItemAt returns the color for index i, wrapping around.
func (p *Palette) ItemAt(i int) color.Color {
	n := len(p.colors)
	return p.colors[((i%n)+n)%n]
}

type PaletteConfig struct {
	Items []string `json:"items,omitempty" yaml:"items,omitempty"`
}

func (p *Palette) Setup(cfg PaletteConfig) {
	if len(cfg.Items) == 0 {
		return
	}
	colors := make([]color.Color, 0, len(cfg.Items))
	for _, s := range cfg.Items {
		colors = append(colors, graphics.ParseColor(s))
	}
	p.SetItems(colors...)
}

func (p *Palette) Serialize() PaletteConfig {
	cfg := PaletteConfig{Items: make([]string, len(p.colors))}
	for i, c := range p.colors {
		cfg.Items[i] = graphics.FormatColor(c)
	}
	return cfg
}
