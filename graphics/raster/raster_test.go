package raster_test

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/graphics/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportPNGSize(t *testing.T) {
	s := graphics.NewStage(64, 32)
	p := s.Path()
	p.Rect(graphics.R(0, 0, 64, 32))
	p.SetFill(color.NRGBA{R: 255, A: 255})
	s.Root().AddChild(p)

	var buf bytes.Buffer
	require.NoError(t, raster.ExportPNG(s, &buf, raster.Options{Background: color.White}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestImageFillsCenter(t *testing.T) {
	s := graphics.NewStage(20, 20)
	p := s.Path()
	p.Rect(graphics.R(0, 0, 20, 20))
	p.SetFill(color.NRGBA{B: 255, A: 255})
	s.Root().AddChild(p)

	img, err := raster.Image(s, raster.Options{})
	require.NoError(t, err)
	r, g, b, a := img.At(10, 10).RGBA()
	assert.Zero(t, r)
	assert.Zero(t, g)
	assert.Equal(t, uint32(0xffff), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestRenderRejectsBadStages(t *testing.T) {
	_, err := raster.Render(nil, raster.Options{})
	assert.ErrorIs(t, err, raster.ErrNilStage)

	_, err = raster.Render(graphics.NewStage(0, 10), raster.Options{})
	assert.Error(t, err)
}

func TestTextIsRasterized(t *testing.T) {
	s := graphics.NewStage(60, 30)
	txt := s.Text()
	txt.SetFontSize(20)
	txt.SetText("MW")
	txt.SetPosition(4, 2)
	s.Root().AddChild(txt)

	img, err := raster.Image(s, raster.Options{Background: color.White})
	require.NoError(t, err)

	box := txt.Bounds()
	inked := 0
	for y := int(box.Top); y < int(box.Bottom()); y++ {
		for x := int(box.Left); x < int(box.Right()); x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				inked++
			}
		}
	}
	assert.Positive(t, inked)
	r, _, _, _ := img.At(59, 29).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}
