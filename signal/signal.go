// Package signal is the notification vocabulary objects use to tell their
// listeners (usually their owner) that something changed, plus the
// synchronous dispatcher that fans those notifications out.
package signal

import (
	"math/bits"
	"strconv"
	"strings"
)

// Mask is a set of signals. Bits are never renumbered, new signals are only
// appended.
type Mask uint64

const (
	NeedsRedraw Mask = 1 << iota
	NeedsReapplication
	NeedsRecalculation
	BoundsChanged
	DataChanged
	MetaChanged
	NeedUpdateLegend
	NeedUpdateColorRange
	NeedUpdateFullRangeItems
	NeedUpdateTickDependent
	NeedUpdateOverlap
	NeedsUpdateA11y
	NeedsRedrawLabels
	NeedsRedrawAppearance
	NeedsUpdateTooltip
	EnabledStateChanged
	ZIndexStateChanged
	NeedRecalculateLegend
	NeedsUpdateMarkers

	signalsN = iota
)

const None Mask = 0

var names = [signalsN]string{
	"NEEDS_REDRAW",
	"NEEDS_REAPPLICATION",
	"NEEDS_RECALCULATION",
	"BOUNDS_CHANGED",
	"DATA_CHANGED",
	"META_CHANGED",
	"NEED_UPDATE_LEGEND",
	"NEED_UPDATE_COLOR_RANGE",
	"NEED_UPDATE_FULL_RANGE_ITEMS",
	"NEED_UPDATE_TICK_DEPENDENT",
	"NEED_UPDATE_OVERLAP",
	"NEEDS_UPDATE_A11Y",
	"NEEDS_REDRAW_LABELS",
	"NEEDS_REDRAW_APPEARANCE",
	"NEEDS_UPDATE_TOOLTIP",
	"ENABLED_STATE_CHANGED",
	"Z_INDEX_STATE_CHANGED",
	"NEED_RECALCULATE_LEGEND",
	"NEEDS_UPDATE_MARKERS",
}

// Has reports whether m carries any of the signals in o.
func (m Mask) Has(o Mask) bool {
	return m&o != 0
}

func (m Mask) String() string {
	if m == 0 {
		return "NONE"
	}
	var sb strings.Builder
	for rest := m; rest != 0; rest &= rest - 1 {
		i := bits.TrailingZeros64(uint64(rest))
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		if i < signalsN {
			sb.WriteString(names[i])
		} else {
			sb.WriteString("RESERVED_")
			sb.WriteString(strconv.Itoa(i))
		}
	}
	return sb.String()
}


// Event is what listeners receive. Signals only holds bits the target is
// allowed to emit.
type Event struct {
	Target  any
	Signals Mask
}

func (e Event) HasSignal(m Mask) bool {
	return e.Signals&m != 0
}

func (e Event) TargetNeedsRedraw() bool        { return e.HasSignal(NeedsRedraw) }
func (e Event) TargetBoundsChanged() bool      { return e.HasSignal(BoundsChanged) }
func (e Event) TargetDataChanged() bool        { return e.HasSignal(DataChanged) }
func (e Event) TargetMetaChanged() bool        { return e.HasSignal(MetaChanged) }
func (e Event) TargetNeedsReapplication() bool { return e.HasSignal(NeedsReapplication) }
func (e Event) TargetNeedsRecalculation() bool { return e.HasSignal(NeedsRecalculation) }
