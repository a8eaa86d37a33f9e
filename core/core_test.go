package core_test

import (
	"testing"

	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/core"
	"github.com/delaneyj/chartparty/reporting"
	"github.com/delaneyj/chartparty/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	childBit1 = consistency.Family(0)
	childBit2 = consistency.Family(1)

	ownerPalette = consistency.Family(0)
	ownerLayout  = consistency.Family(1)
)

type widget struct {
	core.Base
	boundsWork, appearanceWork int
}

func newWidget() *widget {
	w := &widget{}
	w.Base = core.NewBase(w, "widget", consistency.Bounds|consistency.Appearance, signal.NeedsRedraw|signal.BoundsChanged)
	return w
}

func (w *widget) Draw() {
	if w.IsConsistent() {
		return
	}
	if w.HasInvalidationState(consistency.Bounds) {
		w.boundsWork++
		w.MarkConsistent(consistency.Bounds)
	}
	if w.HasInvalidationState(consistency.Appearance) {
		w.appearanceWork++
		w.MarkConsistent(consistency.Appearance)
	}
}

type child struct {
	core.Base
}

func newChild() *child {
	c := &child{}
	c.Base = core.NewBase(c, "child", childBit1|childBit2, signal.NeedsRedraw|signal.BoundsChanged)
	return c
}

type owner struct {
	core.Base
	handled []signal.Mask
	slot    core.Slot[*child]
}

var ownerRemap = core.Remap{
	{When: signal.NeedsRedraw, State: ownerPalette, Signal: signal.NeedsRedraw},
	{When: signal.BoundsChanged, State: ownerLayout, Signal: signal.BoundsChanged},
}

func newOwner() *owner {
	o := &owner{}
	o.Base = core.NewBase(o, "owner", ownerPalette|ownerLayout, signal.NeedsRedraw|signal.BoundsChanged)
	o.slot = core.NewSlot[*child](signal.Func(func(ev signal.Event) {
		o.handled = append(o.handled, ev.Signals)
		ownerRemap.Invalidate(o, ev)
	}))
	return o
}

func (o *owner) Child() *child {
	return o.slot.Get(newChild)
}

func (o *owner) SetChild(c *child) {
	o.slot.Set(c)
}

func TestScenarioA(t *testing.T) {
	w := newWidget()
	assert.False(t, w.IsConsistent())
	assert.True(t, w.HasInvalidationState(consistency.Bounds))
	assert.True(t, w.HasInvalidationState(consistency.Appearance))

	w.Draw()
	assert.True(t, w.IsConsistent())

	w.Invalidate(consistency.Appearance, signal.NeedsRedraw)
	assert.True(t, w.HasInvalidationState(consistency.Appearance))
	assert.False(t, w.HasInvalidationState(consistency.Bounds))
}

func TestDrawIsIdempotent(t *testing.T) {
	w := newWidget()
	w.Draw()
	w.Draw()
	assert.Equal(t, 1, w.boundsWork)
	assert.Equal(t, 1, w.appearanceWork)

	w.Invalidate(consistency.Appearance, 0)
	w.Draw()
	w.Draw()
	assert.Equal(t, 1, w.boundsWork)
	assert.Equal(t, 2, w.appearanceWork)
}

func TestInvalidationConverges(t *testing.T) {
	states := []consistency.State{0, consistency.Bounds, consistency.Appearance, consistency.Bounds | consistency.Appearance}
	for _, s1 := range states {
		for _, s2 := range states {
			a, b, c := newWidget(), newWidget(), newWidget()
			for _, w := range []*widget{a, b, c} {
				w.Draw()
			}
			a.Invalidate(s1, 0)
			a.Invalidate(s2, 0)
			b.Invalidate(s2, 0)
			b.Invalidate(s1, 0)
			c.Invalidate(s1|s2, 0)
			assert.Equal(t, c.Consistency(), a.Consistency())
			assert.Equal(t, c.Consistency(), b.Consistency())
		}
	}
}

func TestMarkConsistentPrecision(t *testing.T) {
	w := newWidget()
	w.Draw()
	w.Invalidate(consistency.Bounds|consistency.Appearance, 0)
	w.MarkConsistent(consistency.Bounds)
	assert.False(t, w.HasInvalidationState(consistency.Bounds))
	assert.True(t, w.HasInvalidationState(consistency.Appearance))
	assert.False(t, w.IsConsistent())
}

func TestInvalidateReturnsEffectiveStates(t *testing.T) {
	w := newWidget()
	w.MarkConsistent(consistency.All)
	assert.Equal(t, consistency.Bounds, w.Invalidate(consistency.Bounds, 0))
	assert.Equal(t, consistency.Appearance, w.Invalidate(consistency.Bounds|consistency.Appearance, 0))
	assert.Equal(t, consistency.State(0), w.Invalidate(consistency.Bounds, 0))
}

func TestUnsupportedStatesAreDropped(t *testing.T) {
	w := newWidget()
	w.MarkConsistent(consistency.All)
	w.Invalidate(consistency.ZIndex, 0)
	assert.True(t, w.IsConsistent())

	rec := reporting.NewRecorder()
	defer reporting.SetReporter(rec)()
	reporting.SetStrict(true)
	defer reporting.SetStrict(false)

	w.Invalidate(consistency.ZIndex, signal.DataChanged)
	assert.True(t, w.IsConsistent())
	assert.Equal(t, []reporting.WarningCode{reporting.WarnUnsupportedState, reporting.WarnUnsupportedSignal}, rec.Warnings())

	// All is the documented way to dirty everything
	rec.Reset()
	w.Invalidate(consistency.All, 0)
	assert.Empty(t, rec.Warnings())
	assert.Equal(t, consistency.Bounds|consistency.Appearance, w.Consistency())
}

func TestSuspendResumeDispatchesOnce(t *testing.T) {
	w := newWidget()
	var got []signal.Mask
	w.ListenSignalsFunc(func(ev signal.Event) { got = append(got, ev.Signals) })

	w.SuspendSignalsDispatching()
	w.Invalidate(consistency.Bounds, signal.BoundsChanged)
	w.Invalidate(consistency.Appearance, signal.NeedsRedraw)
	assert.Empty(t, got)
	w.ResumeSignalsDispatching(true)

	require.Len(t, got, 1)
	assert.Equal(t, signal.BoundsChanged|signal.NeedsRedraw, got[0])

	w.SuspendSignalsDispatching()
	w.Invalidate(consistency.Bounds, signal.BoundsChanged)
	w.ResumeSignalsDispatching(false)
	assert.Len(t, got, 1)
}

func TestScenarioB(t *testing.T) {
	o := newOwner()
	c := o.Child()
	o.MarkConsistent(consistency.All)

	c.SuspendSignalsDispatching()
	c.Invalidate(childBit1, signal.NeedsRedraw)
	assert.Empty(t, o.handled)
	c.ResumeSignalsDispatching(true)

	require.Len(t, o.handled, 1)
	assert.True(t, o.handled[0].Has(signal.NeedsRedraw))
	assert.True(t, o.HasInvalidationState(ownerPalette))
	assert.False(t, o.HasInvalidationState(ownerLayout))
}

func TestOwnerRemapsIntoOwnVocabulary(t *testing.T) {
	o := newOwner()
	c := o.Child()
	o.MarkConsistent(consistency.All)

	// childBit2 and ownerLayout are the same bit position, the owner must
	// still dirty its own layout bit only because of BOUNDS_CHANGED.
	c.Invalidate(childBit2, signal.NeedsRedraw)
	assert.Equal(t, ownerPalette, o.Consistency())

	o.MarkConsistent(consistency.All)
	c.Invalidate(childBit1, signal.BoundsChanged)
	assert.Equal(t, ownerLayout, o.Consistency())
}

func TestReplacedChildCannotReachOwner(t *testing.T) {
	o := newOwner()
	old := o.Child()
	assert.Equal(t, 1, old.ListenerCount())

	replacement := newChild()
	o.SetChild(replacement)
	assert.Equal(t, 0, old.ListenerCount())
	assert.Equal(t, 1, replacement.ListenerCount())
	o.MarkConsistent(consistency.All)

	old.Invalidate(childBit1, signal.NeedsRedraw|signal.BoundsChanged)
	assert.True(t, o.IsConsistent())
	assert.Empty(t, o.handled)

	replacement.Invalidate(childBit1, signal.NeedsRedraw)
	assert.True(t, o.HasInvalidationState(ownerPalette))
}

func TestSlotSetSameChildKeepsOneRegistration(t *testing.T) {
	o := newOwner()
	c := o.Child()
	o.SetChild(c)
	o.SetChild(c)
	assert.Equal(t, 1, c.ListenerCount())
	assert.Same(t, c, o.Child())
}

func TestSlotDisposeDisposesChild(t *testing.T) {
	o := newOwner()
	c := o.Child()
	o.slot.Dispose()
	assert.True(t, c.IsDisposed())
	_, ok := o.slot.Peek()
	assert.False(t, ok)

	// second dispose of the child is ignored
	assert.NotPanics(t, c.Dispose)
}

func TestForwardListener(t *testing.T) {
	o := newOwner()
	o.MarkConsistent(consistency.All)
	c := newChild()
	c.ListenSignals(core.Forward(o, ownerRemap))

	c.Invalidate(childBit1, signal.BoundsChanged)
	assert.Equal(t, ownerLayout, o.Consistency())
}

func TestRemapNoMatchIsNoop(t *testing.T) {
	o := newOwner()
	o.MarkConsistent(consistency.All)
	var got int
	o.ListenSignalsFunc(func(signal.Event) { got++ })

	ownerRemap.Invalidate(o, signal.Event{Signals: signal.DataChanged})
	assert.True(t, o.IsConsistent())
	assert.Zero(t, got)
}

func TestSignalsOutsideSupportedMaskAreNotDispatched(t *testing.T) {
	w := newWidget()
	var got []signal.Mask
	w.ListenSignalsFunc(func(ev signal.Event) { got = append(got, ev.Signals) })
	w.DispatchSignal(signal.DataChanged | signal.NeedsRedraw)
	w.DispatchSignal(signal.DataChanged)
	assert.Equal(t, []signal.Mask{signal.NeedsRedraw}, got)
}

func TestDisposeRemovesListeners(t *testing.T) {
	w := newWidget()
	w.ListenSignalsFunc(func(signal.Event) {})
	w.Dispose()
	w.Dispose()
	assert.True(t, w.IsDisposed())
	assert.Equal(t, 0, w.ListenerCount())
}
