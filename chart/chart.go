// Package chart holds the part every chart shares: a background, a title
// and a legend laid out around the content, and the chart level draw
// template concrete charts plug their content into.
package chart

import (
	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/core"
	"github.com/delaneyj/chartparty/elements"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/signal"
	"github.com/delaneyj/chartparty/visual"
)

var (
	Background = consistency.Register("chart", consistency.Family(0), "CHART_BACKGROUND")
	Title      = consistency.Register("chart", consistency.Family(1), "CHART_TITLE")
	Legend     = consistency.Register("chart", consistency.Family(2), "CHART_LEGEND")

	States = Background | Title | Legend
)

// FamilyBit returns the i-th bit free for a concrete chart.
func FamilyBit(i int) consistency.State {
	return consistency.Family(3 + i)
}

// Register names a concrete chart family bit.
func Register(family string, i int, name string) consistency.State {
	return consistency.Register(family, FamilyBit(i), name)
}

// Content is implemented by concrete charts. DrawContent runs on every
// chart draw that wasn't skipped, with the bounds left once the
// background, title and legend were laid out.
type Content interface {
	DrawContent(bounds graphics.Rect)
}

// LegendSource is implemented by charts that fill the legend from their
// series. The items are refreshed whenever the legend state is dirty.
type LegendSource interface {
	LegendItems() []elements.LegendItem
}

// Base is embedded by every chart.
type Base struct {
	visual.Base

	content Content
	margin  float64

	background core.Slot[*elements.Background]
	title      core.Slot[*elements.Title]
	legend     core.Slot[*elements.Legend]

	root          graphics.Layer
	contentBounds graphics.Rect
}

// NewBase builds the chart base for self. family, states and signals are
// the concrete chart's own.
func NewBase(self Content, family string, states consistency.State, signals signal.Mask) Base {
	consistency.Register(family, Background, "CHART_BACKGROUND")
	consistency.Register(family, Title, "CHART_TITLE")
	consistency.Register(family, Legend, "CHART_LEGEND")
	return Base{
		Base:    visual.NewBase(self, family, states|States|consistency.A11y, signals),
		content: self,
	}
}

// Init wires the children. It must run once the base is stored in its
// final location, since the listeners keep a pointer to it.
func (c *Base) Init() {
	c.background = core.NewSlot[*elements.Background](core.Forward(c, core.Remap{
		{When: signal.NeedsRedraw, State: Background, Signal: signal.NeedsRedraw},
	}))
	c.title = core.NewSlot[*elements.Title](core.Forward(c, core.Remap{
		{When: signal.NeedsRedraw, State: Title | consistency.A11y, Signal: signal.NeedsRedraw},
		{When: signal.BoundsChanged, State: consistency.Bounds, Signal: signal.BoundsChanged},
	}))
	c.legend = core.NewSlot[*elements.Legend](core.Forward(c, core.Remap{
		{When: signal.NeedsRedraw, State: Legend, Signal: signal.NeedsRedraw},
		{When: signal.BoundsChanged, State: consistency.Bounds | Legend, Signal: signal.BoundsChanged},
	}))
}

func (c *Base) Background() *elements.Background {
	return c.background.Get(elements.NewBackground)
}

func (c *Base) Title() *elements.Title {
	return c.title.Get(func() *elements.Title {
		t := elements.NewTitle()
		t.SetEnabled(false)
		return t
	})
}

func (c *Base) Legend() *elements.Legend {
	return c.legend.Get(func() *elements.Legend {
		l := elements.NewLegend()
		l.SetEnabled(false)
		return l
	})
}

func (c *Base) Margin() float64 { return c.margin }

func (c *Base) SetMargin(m float64) {
	if m < 0 || c.margin == m {
		return
	}
	c.margin = m
	c.Invalidate(consistency.Bounds, signal.NeedsRedraw|signal.BoundsChanged)
}

// InvalidateParentBounds relays out everything.
func (c *Base) InvalidateParentBounds() {
	c.Invalidate(consistency.Bounds|States, signal.NeedsRedraw|signal.BoundsChanged)
}

// Root is the layer the chart draws into, nil before the first draw.
func (c *Base) Root() graphics.Layer { return c.root }

// ContentBounds is what the last draw handed to DrawContent.
func (c *Base) ContentBounds() graphics.Rect { return c.contentBounds }

// Draw runs the chart draw template. Stage mutations are batched into one
// frame and signals children send while being laid out are discarded.
func (c *Base) Draw() {
	if !c.CheckDrawingNeeded() {
		return
	}
	stage := c.Container().Stage()
	if !stage.IsSuspended() {
		stage.Suspend()
		defer stage.Resume()
	}
	c.SuspendSignalsDispatching()
	defer c.ResumeSignalsDispatching(false)

	if c.root == nil {
		c.root = stage.Layer()
		c.root.SetTag(c.content)
	}
	c.Attach(c.root)

	total, _ := c.ParentBounds()
	if !total.IsEmpty() {
		bounds := total.Inset(c.margin, c.margin, c.margin, c.margin)

		if c.HasInvalidationState(Background | consistency.Bounds) {
			visual.Place(c.Background(), c.root, bounds)
			c.MarkConsistent(Background)
		}

		title := c.Title()
		if c.HasInvalidationState(Title | consistency.Bounds) {
			visual.Place(title, c.root, bounds)
			c.MarkConsistent(Title)
		}
		bounds = title.RemainingBounds()

		if legend, ok := c.legend.Peek(); ok {
			if c.HasInvalidationState(Legend | consistency.Bounds) {
				if src, isSource := c.content.(LegendSource); isSource {
					legend.SetItems(src.LegendItems())
				}
				visual.Place(legend, c.root, bounds)
			}
			bounds = legend.RemainingBounds()
		}
		c.MarkConsistent(Legend)

		c.contentBounds = bounds
		c.content.DrawContent(bounds)
	}
	c.MarkConsistent(consistency.Bounds | consistency.A11y)
}

func (c *Base) Remove() {
	if c.root != nil {
		c.root.SetParent(nil)
	}
}

func (c *Base) Dispose() {
	if c.IsDisposed() {
		return
	}
	c.background.Dispose()
	c.title.Dispose()
	c.legend.Dispose()
	c.Base.Dispose()
}
