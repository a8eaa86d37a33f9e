package core

import (
	"github.com/delaneyj/chartparty/consistency"
	"github.com/delaneyj/chartparty/signal"
)

// Rule maps a child signal to the owner's own vocabulary.
type Rule struct {
	When   signal.Mask
	State  consistency.State
	Signal signal.Mask
}

// Remap is an ordered set of rules. Owners never forward a child mask
// unchanged, they always translate it through a Remap.
type Remap []Rule

// Apply folds every rule matching ev.
func (r Remap) Apply(ev signal.Event) (consistency.State, signal.Mask) {
	var (
		state consistency.State
		sig   signal.Mask
	)
	for _, rule := range r {
		if ev.HasSignal(rule.When) {
			state |= rule.State
			sig |= rule.Signal
		}
	}
	return state, sig
}

// Invalidate applies r to ev and invalidates owner with the result. Nothing
// happens when no rule matched.
func (r Remap) Invalidate(owner Invalidatable, ev signal.Event) {
	state, sig := r.Apply(ev)
	if state == 0 && sig == 0 {
		return
	}
	owner.Invalidate(state, sig)
}

type forwarder struct {
	owner Invalidatable
	remap Remap
}

func (f *forwarder) OnSignal(ev signal.Event) {
	f.remap.Invalidate(f.owner, ev)
}

// Forward returns a listener that remaps child signals into owner.
func Forward(owner Invalidatable, remap Remap) signal.Listener {
	return &forwarder{owner: owner, remap: remap}
}

// Slot is an owner's handle on one lazily created settings child. It keeps
// exactly one listener registration per owner/child pair.
type Slot[T Signaller] struct {
	child    T
	set      bool
	listener signal.Listener
}

// NewSlot creates an empty slot whose children will be listened with l.
func NewSlot[T Signaller](l signal.Listener) Slot[T] {
	return Slot[T]{listener: l}
}

// Get returns the child, creating and listening to it on first use.
func (s *Slot[T]) Get(create func() T) T {
	if !s.set {
		s.attach(create())
	}
	return s.child
}

// Peek returns the child without creating it.
func (s *Slot[T]) Peek() (T, bool) {
	return s.child, s.set
}

// Set replaces the child. The previous child is unlistened first so it can
// no longer reach the owner. It reports whether the child changed.
func (s *Slot[T]) Set(child T) bool {
	if s.set && any(s.child) == any(child) {
		return false
	}
	s.detach()
	s.attach(child)
	return true
}

// Clear detaches the child and returns it to the caller, who now owns it.
func (s *Slot[T]) Clear() (T, bool) {
	child, ok := s.child, s.set
	s.detach()
	return child, ok
}

// Dispose detaches and disposes the owned child.
func (s *Slot[T]) Dispose() {
	child, ok := s.Clear()
	if !ok {
		return
	}
	if d, isDisposer := any(child).(Disposer); isDisposer {
		d.Dispose()
	}
}

func (s *Slot[T]) attach(child T) {
	s.child = child
	s.set = true
	if s.listener != nil {
		child.ListenSignals(s.listener)
	}
}

func (s *Slot[T]) detach() {
	if !s.set {
		return
	}
	if s.listener != nil {
		s.child.UnlistenSignals(s.listener)
	}
	var zero T
	s.child = zero
	s.set = false
}
