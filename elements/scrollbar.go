package elements

import (
	"image/color"
	"math"

	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/signal"
	"github.com/delaneyj/chartparty/visual"
)

// ScrollBarPosition marks the thumb placement as stale.
var ScrollBarPosition = consistency.Register("scrollbar", consistency.Family(0), "SCROLLBAR_POSITION")

// minThumbSize keeps tiny ranges grabbable.
const minThumbSize = 8

// ScrollBar shows the visible [start, end] ratio window of some content
// and lets the user move it.
type ScrollBar struct {
	visual.Base

	start, end  float64
	orientation Orientation
	thickness   float64
	trackFill   color.Color
	thumbFill   color.Color
	onChange    func(start, end float64)

	layer graphics.Layer
	track graphics.Path
	thumb graphics.Path
	box   graphics.Rect
}

func NewScrollBar() *ScrollBar {
	s := &ScrollBar{
		end:         1,
		orientation: Bottom,
		thickness:   10,
		trackFill:   color.NRGBA{R: 0xf7, G: 0xf7, B: 0xf7, A: 0xff},
		thumbFill:   color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
	}
	s.Base = visual.NewBase(s, "scrollbar", consistency.Appearance|ScrollBarPosition, 0)
	return s
}

func (s *ScrollBar) Start() float64           { return s.start }
func (s *ScrollBar) End() float64             { return s.end }
func (s *ScrollBar) Orientation() Orientation { return s.orientation }
func (s *ScrollBar) Thickness() float64       { return s.thickness }

// SetRatios moves the window. Values are clamped to [0, 1] and swapped
// when reversed.
func (s *ScrollBar) SetRatios(start, end float64) {
	start = math.Max(0, math.Min(1, start))
	end = math.Max(0, math.Min(1, end))
	if start > end {
		start, end = end, start
	}
	if s.start == start && s.end == end {
		return
	}
	s.start, s.end = start, end
	s.Invalidate(ScrollBarPosition, signal.NeedsRedraw)
	if s.onChange != nil {
		s.onChange(start, end)
	}
}

// OnChange sets the callback run after every ratio change.
func (s *ScrollBar) OnChange(fn func(start, end float64)) {
	s.onChange = fn
}

// Hidden reports whether the window covers everything, or nothing.
func (s *ScrollBar) Hidden() bool {
	return (s.start <= 0 && s.end >= 1) || s.start == s.end
}

func (s *ScrollBar) SetOrientation(o Orientation) {
	if !o.Valid() || s.orientation == o {
		return
	}
	s.orientation = o
	s.Invalidate(consistency.Bounds, signal.NeedsRedraw|signal.BoundsChanged)
}

func (s *ScrollBar) SetThickness(t float64) {
	if t <= 0 || s.thickness == t {
		return
	}
	s.thickness = t
	s.Invalidate(consistency.Bounds, signal.NeedsRedraw|signal.BoundsChanged)
}

func (s *ScrollBar) SetTrackFill(c color.Color) {
	if sameColor(s.trackFill, c) {
		return
	}
	s.trackFill = c
	s.Invalidate(consistency.Appearance, signal.NeedsRedraw)
}

func (s *ScrollBar) SetThumbFill(c color.Color) {
	if sameColor(s.thumbFill, c) {
		return
	}
	s.thumbFill = c
	s.Invalidate(consistency.Appearance, signal.NeedsRedraw)
}

// RemainingBounds is the parent bounds without the bar strip.
func (s *ScrollBar) RemainingBounds() graphics.Rect {
	pb, _ := s.ParentBounds()
	if !s.Enabled() {
		return pb
	}
	return cut(pb, s.orientation, s.thickness)
}

// ThumbBounds is where the thumb is drawn for the current ratios.
func (s *ScrollBar) ThumbBounds() graphics.Rect {
	b := s.box
	if s.orientation.IsHorizontal() {
		size, offset := s.thumbSpan(b.Width)
		return graphics.R(b.Left+offset, b.Top, size, b.Height)
	}
	size, offset := s.thumbSpan(b.Height)
	return graphics.R(b.Left, b.Top+offset, b.Width, size)
}

func (s *ScrollBar) thumbSpan(track float64) (float64, float64) {
	size := track * (s.end - s.start)
	if size >= minThumbSize {
		return size, s.start * track
	}
	size = math.Min(minThumbSize, track)
	rest := 1 + s.start - s.end
	if rest <= 0 {
		return size, 0
	}
	return size, s.start * (track - size) / rest
}

// handleTrackClick recenters the window on the clicked point.
func (s *ScrollBar) handleTrackClick(ev graphics.PointerEvent) {
	b := s.box
	var ratio float64
	if s.orientation.IsHorizontal() {
		if b.Width == 0 {
			return
		}
		ratio = (ev.X - b.Left) / b.Width
	} else {
		if b.Height == 0 {
			return
		}
		ratio = (ev.Y - b.Top) / b.Height
	}
	width := s.end - s.start
	start := math.Max(0, math.Min(1-width, ratio-width/2))
	s.SetRatios(start, start+width)
}

func (s *ScrollBar) Draw() {
	if !s.CheckDrawingNeeded() {
		return
	}
	stage := s.Container().Stage()
	if !stage.IsSuspended() {
		stage.Suspend()
		defer stage.Resume()
	}

	if s.layer == nil {
		s.layer = stage.Layer()
		s.layer.SetTag(s)
		s.track = stage.Path()
		s.track.SetParent(s.layer)
		s.track.On("click", s.handleTrackClick)
		s.thumb = stage.Path()
		s.thumb.SetParent(s.layer)
	}
	s.Attach(s.layer)

	if s.HasInvalidationState(consistency.Bounds) {
		pb, _ := s.ParentBounds()
		s.box = strip(pb, s.orientation, s.thickness)
		s.track.Clear()
		s.track.Rect(s.box)
		s.Invalidate(consistency.Appearance|ScrollBarPosition, 0)
		s.MarkConsistent(consistency.Bounds)
	}

	if s.HasInvalidationState(consistency.Appearance) {
		s.track.SetFill(s.trackFill)
		s.thumb.SetFill(s.thumbFill)
		s.MarkConsistent(consistency.Appearance)
	}

	if s.HasInvalidationState(ScrollBarPosition) {
		if s.Hidden() {
			s.layer.SetVisible(false)
		} else {
			if !s.layer.Visible() {
				s.layer.SetVisible(true)
			}
			s.thumb.Clear()
			s.thumb.Rect(s.ThumbBounds())
		}
		s.MarkConsistent(ScrollBarPosition)
	}
}

func (s *ScrollBar) Remove() {
	if s.layer != nil {
		s.layer.SetParent(nil)
	}
}

type ScrollBarConfig struct {
	visual.Config `yaml:",inline"`
	Start         *float64 `json:"start,omitempty" yaml:"start,omitempty"`
	End           *float64 `json:"end,omitempty" yaml:"end,omitempty"`
	Orientation   *string  `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	Thickness     *float64 `json:"thickness,omitempty" yaml:"thickness,omitempty"`
	TrackFill     *string  `json:"trackFill,omitempty" yaml:"trackFill,omitempty"`
	ThumbFill     *string  `json:"thumbFill,omitempty" yaml:"thumbFill,omitempty"`
}

func (s *ScrollBar) Setup(cfg ScrollBarConfig) {
	signal.Batch(func() {
		s.Base.Setup(cfg.Config)
		start, end := s.start, s.end
		if cfg.Start != nil {
			start = *cfg.Start
		}
		if cfg.End != nil {
			end = *cfg.End
		}
		s.SetRatios(start, end)
		if cfg.Orientation != nil {
			s.SetOrientation(Orientation(*cfg.Orientation))
		}
		if cfg.Thickness != nil {
			s.SetThickness(*cfg.Thickness)
		}
		if cfg.TrackFill != nil {
			s.SetTrackFill(graphics.ParseColor(*cfg.TrackFill))
		}
		if cfg.ThumbFill != nil {
			s.SetThumbFill(graphics.ParseColor(*cfg.ThumbFill))
		}
	}, s)
}

func (s *ScrollBar) Serialize() ScrollBarConfig {
	return ScrollBarConfig{
		Config:      s.Base.Serialize(),
		Start:       ptr(s.start),
		End:         ptr(s.end),
		Orientation: ptr(string(s.orientation)),
		Thickness:   ptr(s.thickness),
		TrackFill:   ptr(graphics.FormatColor(s.trackFill)),
		ThumbFill:   ptr(graphics.FormatColor(s.thumbFill)),
	}
}
