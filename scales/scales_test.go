package scales_test

import (
	"image/color"
	"math"
	"testing"

	"github.com/delaneyj/chartparty/core"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/scales"
	"github.com/delaneyj/chartparty/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(s core.Signaller) *[]signal.Mask {
	var got []signal.Mask
	s.ListenSignals(signal.Func(func(ev signal.Event) { got = append(got, ev.Signals) }))
	return &got
}

func TestLinearAutoRange(t *testing.T) {
	s := scales.NewLinear()
	got := record(s)
	assert.Equal(t, 0.0, s.Minimum())
	assert.Equal(t, 1.0, s.Maximum())

	s.ExtendDataRange(10, math.NaN(), 30, 20)
	assert.Equal(t, 10.0, s.Minimum())
	assert.Equal(t, 30.0, s.Maximum())
	assert.Equal(t, []signal.Mask{signal.NeedsRecalculation}, *got)

	s.ExtendDataRange(15)
	assert.Len(t, *got, 1)

	assert.Equal(t, 0.5, s.Transform(20))
	assert.Equal(t, 25.0, s.InverseTransform(0.75))
}

func TestLinearExplicitRange(t *testing.T) {
	s := scales.NewLinear()
	got := record(s)
	s.SetMinimum(0)
	s.SetMaximum(100)
	s.SetMaximum(100)
	assert.Equal(t, []signal.Mask{signal.NeedsReapplication, signal.NeedsReapplication}, *got)

	// explicit bounds ignore data
	s.ExtendDataRange(-50, 500)
	assert.Len(t, *got, 2)
	assert.Equal(t, 0.25, s.Transform(25))

	s.SetInverted(true)
	assert.Equal(t, 0.75, s.Transform(25))

	s.ResetMaximum()
	assert.Equal(t, signal.NeedsRecalculation, (*got)[len(*got)-1])
	assert.Equal(t, 500.0, s.Maximum())
}

func TestLinearTicks(t *testing.T) {
	s := scales.NewLinear()
	s.SetMinimum(0)
	s.SetMaximum(100)
	assert.Equal(t, []float64{0, 20, 40, 60, 80, 100}, s.Ticks())

	s.SetTicksCount(2)
	assert.Equal(t, []float64{0, 50, 100}, s.Ticks())

	s.SetMinimum(3)
	s.SetMaximum(3)
	assert.Equal(t, []float64{3}, s.Ticks())
	assert.Equal(t, 0.5, s.Transform(3))
}

func TestLinearTicksBeyondFloatPrecision(t *testing.T) {
	s := scales.NewLinear()
	s.SetMinimum(1e18)
	s.SetMaximum(1e18 + 128)
	assert.Equal(t, []float64{1e18, 1e18 + 128}, s.Ticks())

	s.SetMinimum(0)
	s.SetMaximum(math.Inf(1))
	assert.Len(t, s.Ticks(), 2)

	s.SetMaximum(0.5)
	assert.Equal(t, []float64{0, 0.1, 0.2, 0.30000000000000004, 0.4, 0.5}, s.Ticks())
}

func TestLinearSetupDispatchesOnce(t *testing.T) {
	s := scales.NewLinear()
	got := record(s)
	lo, hi, inv, ticks := 1.0, 9.0, true, 4
	s.Setup(scales.LinearConfig{Minimum: &lo, Maximum: &hi, Inverted: &inv, TicksCount: &ticks})
	assert.Equal(t, []signal.Mask{signal.NeedsReapplication}, *got)

	cfg := s.Serialize()
	require.NotNil(t, cfg.Minimum)
	assert.Equal(t, 1.0, *cfg.Minimum)
	assert.Equal(t, 9.0, *cfg.Maximum)
	assert.True(t, *cfg.Inverted)
	assert.Equal(t, 4, *cfg.TicksCount)
}

var _ scales.Scale = scales.NewLinearColor()

func TestLinearColor(t *testing.T) {
	s := scales.NewLinearColor(color.Black, color.White)
	s.SetMinimum(0)
	s.SetMaximum(10)

	assert.Equal(t, color.NRGBA{A: 0xff}, s.ValueToColor(-5))
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, s.ValueToColor(10))
	mid := s.ValueToColor(5).(color.NRGBA)
	assert.Equal(t, uint8(0x80), mid.R)

	got := record(s)
	s.SetColors(color.Black, color.White)
	assert.Empty(t, *got)
	s.SetColors(color.Black, color.NRGBA{R: 0xff, A: 0xff}, color.White)
	assert.Equal(t, []signal.Mask{signal.NeedsReapplication}, *got)
	assert.Len(t, s.Colors(), 3)
}

func TestLinearColorDefaultsAndSetup(t *testing.T) {
	s := scales.NewLinearColor()
	assert.Len(t, s.Colors(), 2)

	s.Setup(scales.LinearColorConfig{Colors: []string{"#000000", "#ffffff"}})
	cfg := s.Serialize()
	assert.Equal(t, []string{"#000000", "#ffffff"}, cfg.Colors)
}

func TestGeoProjection(t *testing.T) {
	s := scales.NewGeo()
	got := record(s)
	x, _ := s.Transform(0, 0)
	assert.True(t, math.IsNaN(x))

	s.ExtendDataRange(0, 0)
	s.ExtendDataRange(20, 10)
	s.ExtendDataRange(10, 5)
	assert.Len(t, *got, 2)

	assert.True(t, s.SetBounds(graphics.R(0, 0, 200, 200)))
	assert.False(t, s.SetBounds(graphics.R(0, 0, 200, 200)))
	assert.Len(t, *got, 2)

	// 20x10 degrees in 200x200 fits at 10px per degree, centered vertically
	x, y := s.Transform(0, 10)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)
	x, y = s.Transform(20, 0)
	assert.InDelta(t, 200, x, 1e-9)
	assert.InDelta(t, 150, y, 1e-9)

	s.SetGap(0.1)
	assert.Equal(t, signal.NeedsReapplication, (*got)[2])
	minLon, minLat, maxLon, maxLat, ok := s.Extent()
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0, 20, 10}, []float64{minLon, minLat, maxLon, maxLat})
}
