// Package core holds the invalidation engine every chartparty object is
// built on: a consistency bitmask of stale concerns plus a signal
// dispatcher used to notify the owner.
package core

import (
	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/reporting"
	"github.com/delaneyj/chartparty/signal"
)

// Invalidatable tracks which concerns of an object are stale.
type Invalidatable interface {
	Invalidate(states consistency.State, sig signal.Mask) consistency.State
	HasInvalidationState(states consistency.State) bool
	IsConsistent() bool
	MarkConsistent(states consistency.State)
}

// Signaller emits signals to listeners.
type Signaller interface {
	ListenSignals(l signal.Listener) signal.Listener
	UnlistenSignals(l signal.Listener) bool
	signal.Suspender
}

// Disposer releases an object's resources and listeners.
type Disposer interface {
	Dispose()
}

// Base is embedded by every component. It starts dirty: consistency equals
// the supported set so the first Draw does the full work.
type Base struct {
	dispatcher       signal.Dispatcher
	family           string
	supportedStates  consistency.State
	supportedSignals signal.Mask
	consistency      consistency.State
	disposed         bool
}

// NewBase builds a Base for target. target is what listeners see as
// Event.Target and is usually the embedding component.
func NewBase(target any, family string, states consistency.State, signals signal.Mask) Base {
	return Base{
		dispatcher:       signal.NewDispatcher(target),
		family:           family,
		supportedStates:  states,
		supportedSignals: signals,
		consistency:      states,
	}
}

func (b *Base) Family() string                     { return b.family }
func (b *Base) SupportedStates() consistency.State { return b.supportedStates }
func (b *Base) SupportedSignals() signal.Mask      { return b.supportedSignals }
func (b *Base) Consistency() consistency.State     { return b.consistency }
func (b *Base) IsDisposed() bool                   { return b.disposed }
func (b *Base) ListenerCount() int                 { return b.dispatcher.ListenerCount() }
func (b *Base) SignalsSuspended() bool             { return b.dispatcher.Suspended() }
func (b *Base) SuspensionLevel() int               { return b.dispatcher.SuspensionLevel() }
func (b *Base) AccumulatedSignals() signal.Mask    { return b.dispatcher.Accumulated() }
func (b *Base) SetSignalTarget(target any)         { b.dispatcher.SetTarget(target) }
func (b *Base) ReplaceAccumulated(m signal.Mask) signal.Mask {
	return b.dispatcher.ReplaceAccumulated(m)
}

// ExtendSupport widens the supported sets. Only meant for constructors of
// types layered on another Base.
func (b *Base) ExtendSupport(states consistency.State, signals signal.Mask) {
	b.supportedStates |= states
	b.supportedSignals |= signals
	b.consistency |= states
}

// Invalidate marks states dirty and, when sig is non zero, dispatches it.
// Bits outside the supported set are dropped. It returns the bits that
// became dirty with this call.
func (b *Base) Invalidate(states consistency.State, sig signal.Mask) consistency.State {
	if reporting.Strict() && states != consistency.All && states&^b.supportedStates != 0 {
		reporting.Warning(reporting.WarnUnsupportedState, nil, b.family, (states &^ b.supportedStates).Format(b.family))
	}
	states &= b.supportedStates
	effective := states &^ b.consistency
	b.consistency |= states
	if sig != 0 {
		b.DispatchSignal(sig)
	}
	return effective
}

func (b *Base) HasInvalidationState(states consistency.State) bool {
	return b.consistency&states != 0
}

func (b *Base) IsConsistent() bool {
	return b.consistency == 0
}

// MarkConsistent clears states. Call it only after the work the bits stand
// for was actually done.
func (b *Base) MarkConsistent(states consistency.State) {
	b.consistency &^= states
}

// DispatchSignal sends the supported part of m to the listeners.
func (b *Base) DispatchSignal(m signal.Mask) {
	if reporting.Strict() && m&^b.supportedSignals != 0 {
		reporting.Warning(reporting.WarnUnsupportedSignal, nil, b.family, (m &^ b.supportedSignals).String())
	}
	m &= b.supportedSignals
	if m == 0 {
		return
	}
	b.dispatcher.Dispatch(m)
}

func (b *Base) ListenSignals(l signal.Listener) signal.Listener {
	return b.dispatcher.Listen(l)
}

func (b *Base) ListenSignalsFunc(fn func(signal.Event)) signal.Listener {
	return b.dispatcher.ListenFunc(fn)
}

func (b *Base) UnlistenSignals(l signal.Listener) bool {
	return b.dispatcher.Unlisten(l)
}

func (b *Base) RemoveAllListeners() int {
	return b.dispatcher.RemoveAllListeners()
}

func (b *Base) SuspendSignalsDispatching() {
	b.dispatcher.Suspend()
}

func (b *Base) ResumeSignalsDispatching(dispatchAccumulated bool) {
	b.dispatcher.Resume(dispatchAccumulated)
}

// Dispose drops every listener. Disposing twice is a no-op.
func (b *Base) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.dispatcher.RemoveAllListeners()
}

// ConsistencyString renders the dirty set with the family names.
func (b *Base) ConsistencyString() string {
	return b.consistency.Format(b.family)
}
