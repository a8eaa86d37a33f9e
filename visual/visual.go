// Package visual adds the rendering life cycle to core.Base: enabled state,
// container attachment, z ordering, parent bounds and the draw gate every
// component runs before doing any work.
package visual

import (
	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/core"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/reporting"
	"github.com/delaneyj/chartparty/signal"
)

const (
	States  = consistency.Enabled | consistency.Container | consistency.Bounds | consistency.ZIndex
	Signals = signal.NeedsRedraw | signal.BoundsChanged | signal.EnabledStateChanged | signal.ZIndexStateChanged

	// EnableChangeSignals is what toggling the enabled flag dispatches.
	EnableChangeSignals = signal.NeedsRedraw | signal.BoundsChanged | signal.EnabledStateChanged
)

// Drawable is a renderable component.
type Drawable interface {
	core.Invalidatable
	core.Signaller
	Draw()
	Enabled() bool
	SetEnabled(enabled bool)
	Container() graphics.Layer
	SetContainer(l graphics.Layer)
	SetParentBounds(r graphics.Rect)
	ZIndex() float64
	SetZIndex(z float64)
}

// Remover is implemented by components that own graphics. Remove detaches
// them from the container without destroying them.
type Remover interface {
	Remove()
}

// ParentBoundsInvalidator lets a component choose what a parent bounds
// change invalidates. The default is Bounds with BoundsChanged|NeedsRedraw.
type ParentBoundsInvalidator interface {
	InvalidateParentBounds()
}

// Base is embedded by every drawable component.
type Base struct {
	core.Base

	self             any
	enabled          bool
	doubleSuspension bool
	shown            bool
	container        graphics.Layer
	zIndex           float64
	zIndexSet        bool
	autoZIndex       float64
	parentBounds     *graphics.Rect
}

// NewBase builds a visual base for self, the embedding component. The
// visual states and signals are added to the given sets.
func NewBase(self any, family string, states consistency.State, signals signal.Mask) Base {
	return Base{
		Base:    core.NewBase(self, family, states|States, signals|Signals),
		self:    self,
		enabled: true,
	}
}

func (b *Base) Enabled() bool { return b.enabled }

// SetEnabled toggles the component. A disabled component stays silent: its
// dispatching is suspended until it is enabled again.
func (b *Base) SetEnabled(enabled bool) {
	if b.enabled == enabled {
		return
	}
	b.enabled = enabled
	b.Invalidate(consistency.Enabled, EnableChangeSignals)
	if enabled {
		b.doubleSuspension = false
		b.ResumeSignalsDispatching(true)
		return
	}
	if !b.SignalsSuspended() {
		b.SuspendSignalsDispatching()
	} else {
		b.doubleSuspension = true
	}
}

// ResumeSignalsDispatching resumes one level. When the component was
// disabled inside an outer batch, leaving that batch only announces the
// enabled change; the other held back signals stay suspended with the
// component.
func (b *Base) ResumeSignalsDispatching(dispatchAccumulated bool) {
	special := b.doubleSuspension && b.SuspensionLevel() == 1
	var held signal.Mask
	if special {
		held = b.ReplaceAccumulated(EnableChangeSignals)
		b.doubleSuspension = false
	}
	b.Base.ResumeSignalsDispatching(dispatchAccumulated)
	if special {
		b.Base.SuspendSignalsDispatching()
		if held != 0 {
			b.DispatchSignal(held)
		}
	}
}

func (b *Base) Container() graphics.Layer { return b.container }

// SetContainer attaches the component to l, or detaches it with nil.
func (b *Base) SetContainer(l graphics.Layer) {
	if b.container == l {
		return
	}
	b.SuspendSignalsDispatching()
	defer b.ResumeSignalsDispatching(true)

	state := consistency.Container
	if l != nil && !sameStageBounds(b.container, l) {
		state |= consistency.Bounds
	}
	b.container = l
	b.Invalidate(state, signal.NeedsRedraw)
}

func sameStageBounds(a, b graphics.Layer) bool {
	if a == nil || b == nil || a.Stage() == nil || b.Stage() == nil {
		return false
	}
	return a.Stage().Bounds() == b.Stage().Bounds()
}

// ZIndex returns the explicit z index, or the auto one when none was set.
func (b *Base) ZIndex() float64 {
	if b.zIndexSet {
		return b.zIndex
	}
	return b.autoZIndex
}

func (b *Base) SetZIndex(z float64) {
	if b.zIndexSet && b.zIndex == z {
		return
	}
	b.zIndex = z
	b.zIndexSet = true
	b.Invalidate(consistency.ZIndex, signal.NeedsRedraw)
}

// SetAutoZIndex sets the fallback z index owners assign to children.
func (b *Base) SetAutoZIndex(z float64) {
	b.autoZIndex = z
}

// ParentBounds returns the explicit parent bounds or falls back to the
// stage bounds of the container.
func (b *Base) ParentBounds() (graphics.Rect, bool) {
	if b.parentBounds != nil {
		return *b.parentBounds, true
	}
	if b.container != nil && b.container.Stage() != nil {
		return b.container.Stage().Bounds(), true
	}
	return graphics.Rect{}, false
}

func (b *Base) SetParentBounds(r graphics.Rect) {
	if b.parentBounds != nil && *b.parentBounds == r {
		return
	}
	b.parentBounds = &r
	b.invalidateParentBounds()
}

func (b *Base) ClearParentBounds() {
	if b.parentBounds == nil {
		return
	}
	b.parentBounds = nil
	b.invalidateParentBounds()
}

func (b *Base) invalidateParentBounds() {
	if pbi, ok := b.self.(ParentBoundsInvalidator); ok {
		pbi.InvalidateParentBounds()
		return
	}
	b.Invalidate(consistency.Bounds, signal.BoundsChanged|signal.NeedsRedraw)
}

func (b *Base) remove() {
	if r, ok := b.self.(Remover); ok {
		r.Remove()
	}
}

// CheckDrawingNeeded gates Draw. It resolves the enabled state, tearing
// down a component that was shown and got disabled.
func (b *Base) CheckDrawingNeeded() bool {
	if b.IsConsistent() || b.IsDisposed() {
		return false
	}

	if !b.enabled {
		if b.HasInvalidationState(consistency.Enabled) {
			b.MarkConsistent(consistency.Enabled)
			if b.shown {
				b.remove()
				b.shown = false
				b.Invalidate(consistency.Container|(b.SupportedStates()&^consistency.Enabled), 0)
			}
		}
		return false
	}

	if b.container == nil {
		b.remove()
		b.shown = false
		reporting.Error(reporting.ErrContainerNotSet, nil)
		return false
	}

	b.MarkConsistent(consistency.Enabled)
	b.shown = true
	return true
}

// Shown reports whether the last gate let a draw through.
func (b *Base) Shown() bool { return b.shown }

// Attach resolves the Container and ZIndex states against root.
func (b *Base) Attach(root graphics.Element) {
	if b.HasInvalidationState(consistency.Container) {
		root.SetParent(b.container)
		b.MarkConsistent(consistency.Container)
	}
	if b.HasInvalidationState(consistency.ZIndex) {
		root.SetZIndex(b.ZIndex())
		b.MarkConsistent(consistency.ZIndex)
	}
}

// Dispose removes the graphics and every listener. Disposing twice is a
// no-op.
func (b *Base) Dispose() {
	if b.IsDisposed() {
		return
	}
	b.remove()
	b.shown = false
	b.container = nil
	b.parentBounds = nil
	b.Base.Dispose()
}

// Owner walks up from e and returns the first component tagged on the way.
func Owner(e graphics.Element) Drawable {
	for e != nil {
		if d, ok := e.Tag().(Drawable); ok {
			return d
		}
		p := e.Parent()
		if p == nil {
			return nil
		}
		e = p
	}
	return nil
}

// Place hands child its container and bounds from inside the owner's Draw,
// discarding the signals this would echo back, then draws it.
func Place(child Drawable, container graphics.Layer, bounds graphics.Rect) {
	child.SuspendSignalsDispatching()
	child.SetParentBounds(bounds)
	child.SetContainer(container)
	child.ResumeSignalsDispatching(false)
	child.Draw()
}
