package graphics_test

import (
	"image/color"
	"testing"

	"github.com/delaneyj/chartparty/graphics"
	"github.com/stretchr/testify/assert"
)

func TestParseAndFormatColor(t *testing.T) {
	assert.Nil(t, graphics.ParseColor(""))
	assert.Nil(t, graphics.ParseColor("none"))
	assert.Equal(t, color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}, graphics.ParseColor("#123456"))
	assert.Equal(t, "#123456", graphics.FormatColor(graphics.ParseColor("#123456")))
	assert.Equal(t, "#ff000080", graphics.FormatColor(color.NRGBA{R: 0xff, A: 0x80}))
	assert.Equal(t, "none", graphics.FormatColor(nil))
}

func TestHex(t *testing.T) {
	hex, alpha := graphics.Hex(color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff})
	assert.Equal(t, "#123456", hex)
	assert.Equal(t, 1.0, alpha)
}

func TestLerp(t *testing.T) {
	mid := graphics.Lerp(color.Black, color.White, 0.5)
	r, g, b, a := mid.RGBA()
	assert.InDelta(t, 0x7fff, r, 0x200)
	assert.Equal(t, r, g)
	assert.Equal(t, r, b)
	assert.Equal(t, uint32(0xffff), a)
}
