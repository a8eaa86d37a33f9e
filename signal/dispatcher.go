package signal

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/delaneyj/chartparty/reporting"
)

// MaxDispatchDepth bounds re-entrant dispatch through one Dispatcher. Owner
// trees are acyclic, so hitting it means listeners were wired into a loop.
const MaxDispatchDepth = 64

// Listener receives every signal event its dispatcher emits and filters
// with Event.HasSignal itself. Listener values must be comparable (use
// pointer receivers), they identify the registration.
type Listener interface {
	OnSignal(ev Event)
}

type funcListener struct {
	fn func(Event)
}

func (f *funcListener) OnSignal(ev Event) { f.fn(ev) }

// Func wraps fn into a Listener. Every call returns a distinct listener.
func Func(fn func(Event)) Listener {
	return &funcListener{fn: fn}
}

// Dispatcher is a synchronous, single-threaded signal fan-out with
// suspension. The zero value is ready to use.
type Dispatcher struct {
	target       any
	listeners    []Listener
	registered   mapset.Set[Listener]
	suspendLevel int
	accumulated  Mask
	depth        int
}

// NewDispatcher creates a dispatcher whose events carry target.
func NewDispatcher(target any) Dispatcher {
	return Dispatcher{target: target}
}

// SetTarget changes the value reported as Event.Target.
func (d *Dispatcher) SetTarget(target any) {
	d.target = target
}

// Listen registers l. Registering the same listener twice keeps a single
// registration.
func (d *Dispatcher) Listen(l Listener) Listener {
	if l == nil {
		return nil
	}
	if d.registered == nil {
		d.registered = mapset.NewThreadUnsafeSet[Listener]()
	}
	if d.registered.Contains(l) {
		return l
	}
	d.registered.Add(l)
	d.listeners = append(d.listeners, l)
	return l
}

// ListenFunc registers fn and returns the handle to pass to Unlisten.
func (d *Dispatcher) ListenFunc(fn func(Event)) Listener {
	return d.Listen(Func(fn))
}

// Unlisten removes l and reports whether it was registered.
func (d *Dispatcher) Unlisten(l Listener) bool {
	if l == nil || d.registered == nil || !d.registered.Contains(l) {
		return false
	}
	d.registered.Remove(l)
	for i, existing := range d.listeners {
		if existing == l {
			// copy so a dispatch in progress keeps its snapshot intact
			next := make([]Listener, 0, len(d.listeners)-1)
			next = append(next, d.listeners[:i]...)
			d.listeners = append(next, d.listeners[i+1:]...)
			break
		}
	}
	return true
}

// RemoveAllListeners drops every registration and returns how many there
// were.
func (d *Dispatcher) RemoveAllListeners() int {
	n := len(d.listeners)
	d.listeners = nil
	if d.registered != nil {
		d.registered.Clear()
	}
	return n
}

func (d *Dispatcher) ListenerCount() int {
	return len(d.listeners)
}

// Dispatch sends m to every listener in registration order. While
// suspended, m is accumulated instead.
func (d *Dispatcher) Dispatch(m Mask) {
	if m == 0 {
		return
	}
	if d.suspendLevel > 0 {
		d.accumulated |= m
		return
	}
	if d.depth >= MaxDispatchDepth {
		reporting.Error(reporting.ErrSignalCycle, nil, MaxDispatchDepth)
		return
	}

	d.depth++
	defer func() { d.depth-- }()

	ev := Event{Target: d.target, Signals: m}
	for _, l := range d.listeners {
		l.OnSignal(ev)
	}
}

// Suspend starts (or nests) a batch. Suspensions are a flat counter sharing
// one accumulated mask.
func (d *Dispatcher) Suspend() {
	d.suspendLevel++
}

// Resume ends one level of suspension. When the outermost level ends the
// accumulated mask is dispatched once if dispatchAccumulated is set and
// discarded otherwise.
func (d *Dispatcher) Resume(dispatchAccumulated bool) {
	if d.suspendLevel == 0 {
		return
	}
	d.suspendLevel--
	if d.suspendLevel > 0 {
		return
	}
	pending := d.accumulated
	d.accumulated = 0
	if dispatchAccumulated && pending != 0 {
		d.Dispatch(pending)
	}
}

func (d *Dispatcher) Suspended() bool {
	return d.suspendLevel > 0
}

func (d *Dispatcher) SuspensionLevel() int {
	return d.suspendLevel
}

// Accumulated returns the signals held back by the current suspension.
func (d *Dispatcher) Accumulated() Mask {
	return d.accumulated
}

// ReplaceAccumulated swaps the held back mask, returning the old one. Only
// meaningful while suspended.
func (d *Dispatcher) ReplaceAccumulated(m Mask) Mask {
	old := d.accumulated
	d.accumulated = m
	return old
}
