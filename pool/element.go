package pool

import "github.com/delaneyj/chartparty/graphics"

// ResetElement strips e of everything a previous owner attached: it is
// detached, shown, its handlers and tag are dropped and its z index zeroed.
// Paths are also cleared.
func ResetElement[E graphics.Element](e E) {
	e.SetParent(nil)
	e.RemoveAllHandlers()
	e.SetTag(nil)
	if !e.Visible() {
		e.SetVisible(true)
	}
	if e.ZIndex() != 0 {
		e.SetZIndex(0)
	}
	if p, ok := any(e).(graphics.Path); ok && len(p.Commands()) > 0 {
		p.Clear()
	}
}
