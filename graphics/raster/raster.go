// Package raster renders a graphics.Stage to a bitmap with gogpu/gg. Text
// is set in the same embedded face graphics.MeasureText lays it out with.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/delaneyj/chartparty/graphics"
	"github.com/gogpu/gg"
)

var ErrNilStage = errors.New("raster: nil stage")

// Options tweak rasterization.
type Options struct {
	// Background fills the canvas before drawing. Nil keeps it transparent.
	Background color.Color
}

// Render draws s into a new context. The caller owns the context and must
// Close it.
func Render(s *graphics.Stage, opts Options) (*gg.Context, error) {
	if s == nil {
		return nil, ErrNilStage
	}
	w := int(math.Ceil(s.Width()))
	h := int(math.Ceil(s.Height()))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: invalid stage size %dx%d", w, h)
	}
	dc := gg.NewContext(w, h)
	if opts.Background != nil {
		dc.ClearWithColor(gg.FromColor(opts.Background))
	}
	for _, c := range s.Root().Children() {
		if err := drawElement(dc, c); err != nil {
			dc.Close()
			return nil, err
		}
	}
	return dc, nil
}

// Image renders s and returns the resulting bitmap.
func Image(s *graphics.Stage, opts Options) (image.Image, error) {
	dc, err := Render(s, opts)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// ExportPNG renders s and encodes it as PNG into w.
func ExportPNG(s *graphics.Stage, w io.Writer, opts Options) error {
	dc, err := Render(s, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("raster: encoding png: %w", err)
	}
	return nil
}

func drawElement(dc *gg.Context, e graphics.Element) error {
	if !e.Visible() {
		return nil
	}
	switch el := e.(type) {
	case graphics.Layer:
		for _, c := range el.Children() {
			if err := drawElement(dc, c); err != nil {
				return err
			}
		}
	case graphics.Path:
		return drawPath(dc, el)
	case graphics.Text:
		drawText(dc, el)
	}
	return nil
}

// drawText treats the position as the top-left corner of the text box, as
// the stage does, and moves it down to the baseline gg draws on.
func drawText(dc *gg.Context, t graphics.Text) {
	s := t.Text()
	if s == "" || t.Color() == nil || t.FontSize() <= 0 {
		return
	}
	x, y := t.Position()
	dc.SetFont(graphics.Face(t.FontSize()))
	dc.SetColor(t.Color())
	dc.DrawString(s, x, y+graphics.Ascent(t.FontSize()))
}

func drawPath(dc *gg.Context, p graphics.Path) error {
	cmds := p.Commands()
	if len(cmds) == 0 {
		return nil
	}
	trace := func() {
		for _, c := range cmds {
			switch c.Op {
			case 'M':
				dc.MoveTo(c.X, c.Y)
			case 'L':
				dc.LineTo(c.X, c.Y)
			case 'Z':
				dc.ClosePath()
			}
		}
	}
	if fill := p.Fill(); fill != nil {
		trace()
		dc.SetColor(fill)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("raster: filling %s: %w", p.ID(), err)
		}
	}
	if st := p.Stroke(); !st.IsNone() {
		trace()
		dc.SetColor(st.Color)
		dc.SetLineWidth(st.Thickness)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("raster: stroking %s: %w", p.ID(), err)
		}
	}
	return nil
}
