// Package scales holds the value to ratio mappings charts read from. Scales
// are pure settings objects: they own no graphics and only tell their
// listeners when the mapping changed.
//
// NeedsReapplication means existing values must be transformed again;
// NeedsRecalculation means the automatic range must be computed again
// before that.
package scales

import (
	"github.com/delaneyj/chartparty/core"
	"github.com/delaneyj/chartparty/signal"
)

// Signals is what every scale may dispatch.
const Signals = signal.NeedsReapplication | signal.NeedsRecalculation

// Scale maps a value onto a [0,1] ratio.
type Scale interface {
	core.Signaller
	Transform(v float64) float64
}
