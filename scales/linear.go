package scales

import (
	"math"

	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/core"
	"github.com/delaneyj/chartparty/signal"
)

const defaultTicksCount = 5

// Linear is a continuous scale. Minimum and maximum are automatic (taken
// from the data range) until set explicitly.
type Linear struct {
	core.Base

	min, max         float64
	minAuto, maxAuto bool
	dataMin, dataMax float64
	hasData          bool
	inverted         bool
	ticksCount       int
}

func NewLinear() *Linear {
	s := &Linear{}
	s.init(s)
	return s
}

func (s *Linear) init(self any) {
	s.Base = core.NewBase(self, "scale", consistency.OnlyDispatching, Signals)
	s.minAuto, s.maxAuto = true, true
	s.ticksCount = defaultTicksCount
}

// Minimum returns the effective minimum.
func (s *Linear) Minimum() float64 {
	if !s.minAuto {
		return s.min
	}
	if s.hasData {
		return s.dataMin
	}
	return 0
}

// Maximum returns the effective maximum.
func (s *Linear) Maximum() float64 {
	if !s.maxAuto {
		return s.max
	}
	if s.hasData {
		return s.dataMax
	}
	return 1
}

func (s *Linear) SetMinimum(v float64) {
	if math.IsNaN(v) {
		s.ResetMinimum()
		return
	}
	if !s.minAuto && s.min == v {
		return
	}
	s.min, s.minAuto = v, false
	s.DispatchSignal(signal.NeedsReapplication)
}

func (s *Linear) SetMaximum(v float64) {
	if math.IsNaN(v) {
		s.ResetMaximum()
		return
	}
	if !s.maxAuto && s.max == v {
		return
	}
	s.max, s.maxAuto = v, false
	s.DispatchSignal(signal.NeedsReapplication)
}

// ResetMinimum goes back to the automatic minimum.
func (s *Linear) ResetMinimum() {
	if s.minAuto {
		return
	}
	s.minAuto = true
	s.DispatchSignal(signal.NeedsRecalculation)
}

// ResetMaximum goes back to the automatic maximum.
func (s *Linear) ResetMaximum() {
	if s.maxAuto {
		return
	}
	s.maxAuto = true
	s.DispatchSignal(signal.NeedsRecalculation)
}

func (s *Linear) Inverted() bool { return s.inverted }

func (s *Linear) SetInverted(inverted bool) {
	if s.inverted == inverted {
		return
	}
	s.inverted = inverted
	s.DispatchSignal(signal.NeedsReapplication)
}

func (s *Linear) TicksCount() int { return s.ticksCount }

// SetTicksCount sets the desired number of major intervals, at least one.
func (s *Linear) SetTicksCount(n int) {
	n = max(n, 1)
	if s.ticksCount == n {
		return
	}
	s.ticksCount = n
	s.DispatchSignal(signal.NeedsReapplication)
}

// ExtendDataRange widens the automatic range to include values. NaN values
// are ignored.
func (s *Linear) ExtendDataRange(values ...float64) {
	changed := false
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		switch {
		case !s.hasData:
			s.dataMin, s.dataMax, s.hasData = v, v, true
			changed = true
		case v < s.dataMin:
			s.dataMin, changed = v, true
		case v > s.dataMax:
			s.dataMax, changed = v, true
		}
	}
	if changed && (s.minAuto || s.maxAuto) {
		s.DispatchSignal(signal.NeedsRecalculation)
	}
}

// ResetDataRange forgets the data range, usually before the owner feeds
// fresh data.
func (s *Linear) ResetDataRange() {
	if !s.hasData {
		return
	}
	s.hasData = false
	if s.minAuto || s.maxAuto {
		s.DispatchSignal(signal.NeedsRecalculation)
	}
}

// Transform maps v to a ratio. A degenerate range maps everything to 0.5.
func (s *Linear) Transform(v float64) float64 {
	lo, hi := s.Minimum(), s.Maximum()
	if hi == lo {
		return 0.5
	}
	r := (v - lo) / (hi - lo)
	if s.inverted {
		return 1 - r
	}
	return r
}

// InverseTransform maps a ratio back to a value.
func (s *Linear) InverseTransform(r float64) float64 {
	if s.inverted {
		r = 1 - r
	}
	lo, hi := s.Minimum(), s.Maximum()
	return lo + r*(hi-lo)
}

// Ticks returns round values covering the range, at most about
// TicksCount intervals apart.
func (s *Linear) Ticks() []float64 {
	lo, hi := s.Minimum(), s.Maximum()
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		return []float64{lo}
	}
	step := niceStep((hi - lo) / float64(s.ticksCount))
	first := math.Ceil(lo/step - 1e-9)
	n := math.Floor(hi/step+1e-9) - first + 1
	if lo+step == lo || !(n >= 1 && n <= maxTicks) {
		return []float64{lo, hi}
	}
	ticks := make([]float64, 0, int(n))
	for i := range int(n) {
		ticks = append(ticks, (first+float64(i))*step)
	}
	return ticks
}

// maxTicks caps Ticks when the range is too wide or too fine for float64
// to step through.
const maxTicks = 1000

func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}
