// Package svg serializes a graphics.Stage into an SVG document.
package svg

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/delaneyj/chartparty/graphics"
	"github.com/google/uuid"
	"github.com/valyala/quicktemplate"
)

var ErrNilStage = errors.New("svg: nil stage")

// Export writes s as an SVG document. Element ids are prefixed with a fresh
// document id so several exports can be inlined into the same page.
func Export(s *graphics.Stage, w io.Writer) error {
	return ExportPrefixed(s, w, "cp-"+uuid.NewString()[:8])
}

// ExportPrefixed is Export with a caller chosen id prefix.
func ExportPrefixed(s *graphics.Stage, w io.Writer, prefix string) error {
	if s == nil {
		return ErrNilStage
	}
	ew := &errWriter{w: w}
	qw := quicktemplate.AcquireWriter(ew)
	defer quicktemplate.ReleaseWriter(qw)

	qw.N().S(`<svg xmlns="http://www.w3.org/2000/svg" id="`)
	qw.E().S(prefix)
	qw.N().S(`" width="`)
	qw.N().F(s.Width())
	qw.N().S(`" height="`)
	qw.N().F(s.Height())
	qw.N().S(`" viewBox="0 0 `)
	qw.N().F(s.Width())
	qw.N().S(` `)
	qw.N().F(s.Height())
	qw.N().S(`">`)
	for _, c := range s.Root().Children() {
		writeElement(qw, prefix, c)
	}
	qw.N().S(`</svg>`)

	if ew.err != nil {
		return fmt.Errorf("svg: writing document: %w", ew.err)
	}
	return nil
}

func writeElement(qw *quicktemplate.Writer, prefix string, e graphics.Element) {
	if !e.Visible() {
		return
	}
	switch el := e.(type) {
	case graphics.Layer:
		qw.N().S(`<g`)
		writeID(qw, prefix, el)
		qw.N().S(`>`)
		for _, c := range el.Children() {
			writeElement(qw, prefix, c)
		}
		qw.N().S(`</g>`)
	case graphics.Path:
		cmds := el.Commands()
		if len(cmds) == 0 || !finite(cmds) {
			return
		}
		qw.N().S(`<path`)
		writeID(qw, prefix, el)
		qw.N().S(` d="`)
		for i, c := range cmds {
			if i > 0 {
				qw.N().S(` `)
			}
			qw.N().S(string(c.Op))
			if c.Op != 'Z' {
				qw.N().F(c.X)
				qw.N().S(`,`)
				qw.N().F(c.Y)
			}
		}
		qw.N().S(`"`)
		writePaint(qw, "fill", el.Fill())
		if st := el.Stroke(); !st.IsNone() {
			writePaint(qw, "stroke", st.Color)
			qw.N().S(` stroke-width="`)
			qw.N().F(st.Thickness)
			qw.N().S(`"`)
		} else {
			qw.N().S(` stroke="none"`)
		}
		qw.N().S(`/>`)
	case graphics.Text:
		if el.Text() == "" {
			return
		}
		x, y := el.Position()
		if !isFinite(x) || !isFinite(y) {
			return
		}
		qw.N().S(`<text`)
		writeID(qw, prefix, el)
		qw.N().S(` x="`)
		qw.N().F(x)
		qw.N().S(`" y="`)
		qw.N().F(y + graphics.Ascent(el.FontSize()))
		qw.N().S(`" font-size="`)
		qw.N().F(el.FontSize())
		qw.N().S(`"`)
		writePaint(qw, "fill", el.Color())
		qw.N().S(`>`)
		qw.E().S(el.Text())
		qw.N().S(`</text>`)
	}
}

// finite reports whether every coordinate of cmds can be written. A path
// with NaN or infinite points is left out rather than emitted broken.
func finite(cmds []graphics.PathCommand) bool {
	for _, c := range cmds {
		if c.Op != 'Z' && (!isFinite(c.X) || !isFinite(c.Y)) {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func writeID(qw *quicktemplate.Writer, prefix string, e graphics.Element) {
	qw.N().S(` id="`)
	qw.E().S(prefix)
	qw.N().S(`-`)
	qw.E().S(e.ID())
	qw.N().S(`"`)
}

func writePaint(qw *quicktemplate.Writer, attr string, c color.Color) {
	qw.N().S(` `)
	qw.N().S(attr)
	qw.N().S(`="`)
	if c == nil {
		qw.N().S(`none"`)
		return
	}
	hex, alpha := graphics.Hex(c)
	qw.N().S(hex)
	qw.N().S(`"`)
	if alpha < 1 {
		qw.N().S(` `)
		qw.N().S(attr)
		qw.N().S(`-opacity="`)
		qw.N().FPrec(alpha, 3)
		qw.N().S(`"`)
	}
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
