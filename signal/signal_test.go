package signal_test

import (
	"testing"

	"github.com/delaneyj/chartparty/reporting"
	"github.com/delaneyj/chartparty/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []signal.Event
}

func (r *recorder) OnSignal(ev signal.Event) {
	r.events = append(r.events, ev)
}

func TestMaskString(t *testing.T) {
	assert.Equal(t, "NONE", signal.None.String())
	assert.Equal(t, "NEEDS_REDRAW|BOUNDS_CHANGED", (signal.NeedsRedraw | signal.BoundsChanged).String())
	assert.Equal(t, "RESERVED_40", signal.Mask(1<<40).String())
	assert.Equal(t, "NEEDS_REDRAW|RESERVED_63", (signal.NeedsRedraw | signal.Mask(1<<63)).String())
}

func TestEventHelpers(t *testing.T) {
	ev := signal.Event{Signals: signal.NeedsRedraw | signal.DataChanged}
	assert.True(t, ev.TargetNeedsRedraw())
	assert.True(t, ev.TargetDataChanged())
	assert.False(t, ev.TargetBoundsChanged())
	assert.False(t, ev.TargetNeedsRecalculation())
	assert.True(t, ev.HasSignal(signal.BoundsChanged|signal.DataChanged))
}

func TestDispatchRegistrationOrder(t *testing.T) {
	d := signal.NewDispatcher("me")
	var order []int
	d.ListenFunc(func(signal.Event) { order = append(order, 1) })
	d.ListenFunc(func(signal.Event) { order = append(order, 2) })
	d.ListenFunc(func(signal.Event) { order = append(order, 3) })

	d.Dispatch(signal.NeedsRedraw)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestListenIsDeduplicated(t *testing.T) {
	var d signal.Dispatcher
	r := &recorder{}
	d.Listen(r)
	d.Listen(r)
	assert.Equal(t, 1, d.ListenerCount())

	d.Dispatch(signal.NeedsRedraw)
	assert.Len(t, r.events, 1)

	assert.True(t, d.Unlisten(r))
	assert.False(t, d.Unlisten(r))
	d.Dispatch(signal.NeedsRedraw)
	assert.Len(t, r.events, 1)
}

func TestZeroMaskIsNotDispatched(t *testing.T) {
	var d signal.Dispatcher
	r := &recorder{}
	d.Listen(r)
	d.Dispatch(signal.None)
	assert.Empty(t, r.events)
}

func TestSuspendResumeBatching(t *testing.T) {
	d := signal.NewDispatcher(nil)
	r := &recorder{}
	d.Listen(r)

	d.Suspend()
	d.Dispatch(signal.NeedsRedraw)
	d.Dispatch(signal.BoundsChanged)
	assert.Empty(t, r.events)
	assert.Equal(t, signal.NeedsRedraw|signal.BoundsChanged, d.Accumulated())

	d.Resume(true)
	require.Len(t, r.events, 1)
	assert.Equal(t, signal.NeedsRedraw|signal.BoundsChanged, r.events[0].Signals)
	assert.Equal(t, signal.None, d.Accumulated())
}

func TestResumeWithoutDispatchDiscards(t *testing.T) {
	var d signal.Dispatcher
	r := &recorder{}
	d.Listen(r)

	d.Suspend()
	d.Dispatch(signal.NeedsRedraw)
	d.Resume(false)
	assert.Empty(t, r.events)
	assert.Equal(t, signal.None, d.Accumulated())

	d.Dispatch(signal.DataChanged)
	require.Len(t, r.events, 1)
	assert.Equal(t, signal.DataChanged, r.events[0].Signals)
}

func TestNestedSuspensionSharesOneMask(t *testing.T) {
	var d signal.Dispatcher
	r := &recorder{}
	d.Listen(r)

	d.Suspend()
	d.Dispatch(signal.NeedsRedraw)
	d.Suspend()
	d.Dispatch(signal.DataChanged)
	d.Resume(true)
	assert.Empty(t, r.events)
	assert.True(t, d.Suspended())

	d.Resume(true)
	require.Len(t, r.events, 1)
	assert.Equal(t, signal.NeedsRedraw|signal.DataChanged, r.events[0].Signals)

	// unbalanced resume is ignored
	d.Resume(true)
	assert.Equal(t, 0, d.SuspensionLevel())
}

func TestUnlistenDuringDispatchKeepsSnapshot(t *testing.T) {
	var d signal.Dispatcher
	second := &recorder{}
	var first signal.Listener
	first = d.ListenFunc(func(signal.Event) {
		d.Unlisten(first)
	})
	d.Listen(second)

	d.Dispatch(signal.NeedsRedraw)
	assert.Len(t, second.events, 1)
	assert.Equal(t, 1, d.ListenerCount())
}

type looper struct {
	a, b *signal.Dispatcher
}

func (l *looper) OnSignal(ev signal.Event) {
	l.b.Dispatch(ev.Signals)
}

func TestCyclicListenersAreCut(t *testing.T) {
	rec := reporting.NewRecorder()
	defer reporting.SetReporter(rec)()

	var a, b signal.Dispatcher
	a.Listen(&looper{a: &a, b: &b})
	b.Listen(&looper{a: &b, b: &a})

	assert.NotPanics(t, func() { a.Dispatch(signal.NeedsRedraw) })
	assert.Contains(t, rec.Errors(), reporting.ErrSignalCycle)
}

type suspendCounter struct {
	suspended, resumed int
	dispatched         []bool
}

func (s *suspendCounter) SuspendSignalsDispatching() { s.suspended++ }
func (s *suspendCounter) ResumeSignalsDispatching(d bool) {
	s.resumed++
	s.dispatched = append(s.dispatched, d)
}

func TestBatchHelpers(t *testing.T) {
	a, b := &suspendCounter{}, &suspendCounter{}
	signal.Batch(func() {
		assert.Equal(t, 1, a.suspended)
		assert.Equal(t, 1, b.suspended)
		assert.Equal(t, 0, a.resumed)
	}, a, nil, b)
	assert.Equal(t, []bool{true}, a.dispatched)
	assert.Equal(t, []bool{true}, b.dispatched)

	signal.SuspendAll(a)
	signal.ResumeAll(false, a)
	assert.Equal(t, []bool{true, false}, a.dispatched)
}

func TestRemoveAllListeners(t *testing.T) {
	var d signal.Dispatcher
	d.Listen(&recorder{})
	d.Listen(&recorder{})
	assert.Equal(t, 2, d.RemoveAllListeners())
	assert.Equal(t, 0, d.ListenerCount())
}
