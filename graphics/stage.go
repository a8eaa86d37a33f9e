package graphics

import (
	"fmt"
	"image/color"
	"slices"
)

// Stats counts the mutations a stage received. Comparing two snapshots tells
// whether a Draw touched the tree at all.
type Stats struct {
	Created      int
	Attached     int
	Detached     int
	Cleared      int
	PathOps      int
	StyleChanges int
	ZChanges     int
	Visibility   int
	TextChanges  int
	Frames       int
}

// Stage is the root of a retained element tree.
type Stage struct {
	width, height float64
	root          *group
	seq           int
	stats         Stats
	suspendLevel  int
}

// NewStage creates an empty stage of the given pixel size.
func NewStage(width, height float64) *Stage {
	s := &Stage{width: width, height: height}
	s.root = &group{}
	s.root.init(s, s.root, "stage")
	s.stats = Stats{}
	return s
}

func (s *Stage) Width() float64  { return s.width }
func (s *Stage) Height() float64 { return s.height }
func (s *Stage) Bounds() Rect    { return R(0, 0, s.width, s.height) }
func (s *Stage) Root() Layer     { return s.root }
func (s *Stage) Stats() Stats    { return s.stats }
func (s *Stage) ResetStats()     { s.stats = Stats{} }

// Resize changes the stage size.
func (s *Stage) Resize(width, height float64) {
	s.width, s.height = width, height
}

// Suspend batches mutations into one frame. Suspensions nest.
func (s *Stage) Suspend() {
	s.suspendLevel++
}

// Resume ends a batch; the outermost Resume closes the frame.
func (s *Stage) Resume() {
	if s.suspendLevel == 0 {
		return
	}
	s.suspendLevel--
	if s.suspendLevel == 0 {
		s.stats.Frames++
	}
}

func (s *Stage) IsSuspended() bool {
	return s.suspendLevel > 0
}

func (s *Stage) nextID(kind string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", kind, s.seq)
}

// Layer creates a detached layer.
func (s *Stage) Layer() Layer {
	g := &group{}
	g.init(s, g, "layer")
	return g
}

// Path creates a detached path.
func (s *Stage) Path() Path {
	p := &shape{}
	p.init(s, p, "path")
	return p
}

// Text creates a detached text element.
func (s *Stage) Text() Text {
	t := &label{fontSize: 12, color: color.Black}
	t.init(s, t, "text")
	return t
}

type node struct {
	self     Element
	stage    *Stage
	id       string
	parent   *group
	zIndex   float64
	hidden   bool
	tag      any
	handlers map[string][]func(PointerEvent)
}

func (n *node) init(s *Stage, self Element, kind string) {
	n.self = self
	n.stage = s
	n.id = s.nextID(kind)
	s.stats.Created++
}

func (n *node) ID() string    { return n.id }
func (n *node) Stage() *Stage { return n.stage }
func (n *node) Tag() any      { return n.tag }
func (n *node) SetTag(t any)  { n.tag = t }

func (n *node) Parent() Layer {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) SetParent(l Layer) {
	if l == nil {
		if n.parent == nil {
			return
		}
		n.parent.unlink(n.self)
		n.parent = nil
		n.stage.stats.Detached++
		return
	}
	g, ok := l.(*group)
	if !ok {
		panic("graphics: layer was not created by a Stage")
	}
	if n.parent == g {
		return
	}
	if n.parent != nil {
		n.parent.unlink(n.self)
	}
	n.parent = g
	g.children = append(g.children, n.self)
	n.stage.stats.Attached++
}

func (n *node) ZIndex() float64 { return n.zIndex }

func (n *node) SetZIndex(z float64) {
	n.zIndex = z
	n.stage.stats.ZChanges++
}

func (n *node) Visible() bool { return !n.hidden }

func (n *node) SetVisible(v bool) {
	n.hidden = !v
	n.stage.stats.Visibility++
}

func (n *node) On(eventType string, handler func(PointerEvent)) {
	if n.handlers == nil {
		n.handlers = map[string][]func(PointerEvent){}
	}
	n.handlers[eventType] = append(n.handlers[eventType], handler)
}

func (n *node) RemoveAllHandlers() {
	n.handlers = nil
}

func (n *node) HandlerCount() int {
	total := 0
	for _, hs := range n.handlers {
		total += len(hs)
	}
	return total
}

// Dispatch runs the handlers bound for ev.Type on the element, then bubbles
// to its ancestors. It reports whether any handler ran.
func (n *node) Dispatch(ev PointerEvent) bool {
	if ev.Target == nil {
		ev.Target = n.self
	}
	handled := false
	for _, h := range n.handlers[ev.Type] {
		h(ev)
		handled = true
	}
	if n.parent != nil && n.parent.Dispatch(ev) {
		handled = true
	}
	return handled
}

type group struct {
	node
	children []Element
}

func (g *group) unlink(e Element) {
	if i := slices.Index(g.children, e); i >= 0 {
		g.children = slices.Delete(g.children, i, i+1)
	}
}

// Children returns the children ordered by z index, insertion order
// breaking ties.
func (g *group) Children() []Element {
	out := slices.Clone(g.children)
	slices.SortStableFunc(out, func(a, b Element) int {
		switch {
		case a.ZIndex() < b.ZIndex():
			return -1
		case a.ZIndex() > b.ZIndex():
			return 1
		}
		return 0
	})
	return out
}

func (g *group) NumChildren() int { return len(g.children) }

func (g *group) AddChild(e Element) { e.SetParent(g) }

func (g *group) RemoveChild(e Element) {
	if e.Parent() == Layer(g) {
		e.SetParent(nil)
	}
}

func (g *group) RemoveChildren() {
	for _, c := range slices.Clone(g.children) {
		c.SetParent(nil)
	}
}

func (g *group) Bounds() Rect {
	var r Rect
	for _, c := range g.children {
		if c.Visible() {
			r = r.Union(c.Bounds())
		}
	}
	return r
}

type shape struct {
	node
	cmds   []PathCommand
	fill   color.Color
	stroke Stroke
}

func (p *shape) MoveTo(x, y float64) {
	p.cmds = append(p.cmds, PathCommand{Op: 'M', X: x, Y: y})
	p.stage.stats.PathOps++
}

func (p *shape) LineTo(x, y float64) {
	p.cmds = append(p.cmds, PathCommand{Op: 'L', X: x, Y: y})
	p.stage.stats.PathOps++
}

func (p *shape) Close() {
	p.cmds = append(p.cmds, PathCommand{Op: 'Z'})
	p.stage.stats.PathOps++
}

func (p *shape) Rect(r Rect) {
	p.MoveTo(r.Left, r.Top)
	p.LineTo(r.Right(), r.Top)
	p.LineTo(r.Right(), r.Bottom())
	p.LineTo(r.Left, r.Bottom())
	p.Close()
}

func (p *shape) Clear() {
	p.cmds = p.cmds[:0]
	p.stage.stats.Cleared++
}

func (p *shape) Commands() []PathCommand { return slices.Clone(p.cmds) }
func (p *shape) Fill() color.Color       { return p.fill }
func (p *shape) Stroke() Stroke          { return p.stroke }

func (p *shape) SetFill(c color.Color) {
	p.fill = c
	p.stage.stats.StyleChanges++
}

func (p *shape) SetStroke(s Stroke) {
	p.stroke = s
	p.stage.stats.StyleChanges++
}

func (p *shape) Bounds() Rect {
	if len(p.cmds) == 0 {
		return Rect{}
	}
	first := true
	var minX, minY, maxX, maxY float64
	for _, c := range p.cmds {
		if c.Op == 'Z' {
			continue
		}
		if first {
			minX, maxX, minY, maxY = c.X, c.X, c.Y, c.Y
			first = false
			continue
		}
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minY, maxY = min(minY, c.Y), max(maxY, c.Y)
	}
	return R(minX, minY, maxX-minX, maxY-minY)
}

type label struct {
	node
	text     string
	x, y     float64
	fontSize float64
	color    color.Color
}

func (t *label) Text() string                 { return t.text }
func (t *label) Position() (float64, float64) { return t.x, t.y }
func (t *label) FontSize() float64            { return t.fontSize }
func (t *label) Color() color.Color           { return t.color }

func (t *label) SetText(s string) {
	t.text = s
	t.stage.stats.TextChanges++
}

func (t *label) SetPosition(x, y float64) {
	t.x, t.y = x, y
	t.stage.stats.TextChanges++
}

func (t *label) SetFontSize(size float64) {
	t.fontSize = size
	t.stage.stats.TextChanges++
}

func (t *label) SetColor(c color.Color) {
	t.color = c
	t.stage.stats.StyleChanges++
}

func (t *label) Measure() (float64, float64) {
	return MeasureText(t.text, t.fontSize)
}

// Bounds treats the position as the top-left corner.
func (t *label) Bounds() Rect {
	w, h := t.Measure()
	return R(t.x, t.y, w, h)
}
