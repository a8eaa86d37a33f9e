package visual

import (
	"errors"
	"image/color"
	"io"

	"github.com/delaneyj/chartparty/graphics/raster"
	"github.com/delaneyj/chartparty/graphics/svg"
	"github.com/delaneyj/chartparty/reporting"
)

var ErrNoStage = errors.New("visual: component is not attached to a stage")

// ExportSVG writes the stage the component is drawn on.
func (b *Base) ExportSVG(w io.Writer) error {
	if b.container == nil || b.container.Stage() == nil {
		return ErrNoStage
	}
	return svg.Export(b.container.Stage(), w)
}

// ExportPNG rasterizes the stage the component is drawn on over a white
// background.
func (b *Base) ExportPNG(w io.Writer) error {
	if b.container == nil || b.container.Stage() == nil {
		return ErrNoStage
	}
	return raster.ExportPNG(b.container.Stage(), w, raster.Options{Background: color.White})
}

// SaveAsPNG is the old name of ExportPNG.
//
// Deprecated: use ExportPNG.
func (b *Base) SaveAsPNG(w io.Writer) error {
	reporting.Deprecated("SaveAsPNG()", "ExportPNG()")
	return b.ExportPNG(w)
}
