package svg_test

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/JoshVarga/svgparser"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/graphics/svg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStage() (*graphics.Stage, graphics.Path, graphics.Path) {
	s := graphics.NewStage(200, 100)
	l := s.Layer()
	s.Root().AddChild(l)

	front := s.Path()
	front.Rect(graphics.R(10, 10, 50, 20))
	front.SetFill(color.NRGBA{R: 255, A: 128})
	front.SetStroke(graphics.Stroke{Color: color.Black, Thickness: 2})
	front.SetZIndex(2)

	back := s.Path()
	back.Rect(graphics.R(0, 0, 200, 100))
	back.SetFill(color.White)

	l.AddChild(front)
	l.AddChild(back)

	txt := s.Text()
	txt.SetText("a<b")
	txt.SetPosition(5, 5)
	l.AddChild(txt)

	hidden := s.Path()
	hidden.Rect(graphics.R(0, 0, 1, 1))
	hidden.SetVisible(false)
	l.AddChild(hidden)
	return s, front, back
}

func TestExportParses(t *testing.T) {
	s, front, back := sampleStage()

	var buf bytes.Buffer
	require.NoError(t, svg.ExportPrefixed(s, &buf, "doc"))

	root, err := svgparser.Parse(bytes.NewReader(buf.Bytes()), false)
	require.NoError(t, err)
	assert.Equal(t, "svg", root.Name)
	assert.Equal(t, "200", root.Attributes["width"])
	assert.Equal(t, "100", root.Attributes["height"])
	assert.Equal(t, "doc", root.Attributes["id"])

	require.Len(t, root.Children, 1)
	g := root.Children[0]
	assert.Equal(t, "g", g.Name)

	// hidden path skipped, children in z order
	require.Len(t, g.Children, 3)
	assert.Equal(t, "doc-"+back.ID(), g.Children[0].Attributes["id"])
	assert.Equal(t, "text", g.Children[1].Name)
	assert.Equal(t, "doc-"+front.ID(), g.Children[2].Attributes["id"])

	p := g.Children[2]
	assert.Equal(t, "M10,10 L60,10 L60,30 L10,30 Z", p.Attributes["d"])
	assert.Equal(t, "#ff0000", p.Attributes["fill"])
	assert.Equal(t, "0.502", p.Attributes["fill-opacity"])
	assert.Equal(t, "#000000", p.Attributes["stroke"])
	assert.Equal(t, "2", p.Attributes["stroke-width"])

	assert.Equal(t, "none", g.Children[0].Attributes["stroke"])
	assert.Contains(t, buf.String(), "a&lt;b")
}

func TestExportUsesRandomPrefix(t *testing.T) {
	s, _, _ := sampleStage()
	var a, b bytes.Buffer
	require.NoError(t, svg.Export(s, &a))
	require.NoError(t, svg.Export(s, &b))

	ra, err := svgparser.Parse(&a, false)
	require.NoError(t, err)
	rb, err := svgparser.Parse(&b, false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ra.Attributes["id"], "cp-"))
	assert.NotEqual(t, ra.Attributes["id"], rb.Attributes["id"])
}

type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

func TestExportReportsWriteErrors(t *testing.T) {
	s, _, _ := sampleStage()
	err := svg.Export(s, failingWriter{})
	assert.ErrorIs(t, err, errDiskFull)
	assert.ErrorIs(t, svg.Export(nil, &bytes.Buffer{}), svg.ErrNilStage)
}

func TestExportSkipsNonFiniteGeometry(t *testing.T) {
	s := graphics.NewStage(20, 20)
	ok := s.Path()
	ok.Rect(graphics.R(0, 0, 5, 5))
	bad := s.Path()
	bad.MoveTo(math.NaN(), 1)
	bad.LineTo(2, math.Inf(1))
	bad.Close()
	txt := s.Text()
	txt.SetText("lost")
	txt.SetPosition(math.NaN(), 0)
	s.Root().AddChild(ok)
	s.Root().AddChild(bad)
	s.Root().AddChild(txt)

	var buf bytes.Buffer
	require.NoError(t, svg.ExportPrefixed(s, &buf, "doc"))
	assert.NotContains(t, buf.String(), "NaN")
	assert.NotContains(t, buf.String(), "Inf")

	root, err := svgparser.Parse(bytes.NewReader(buf.Bytes()), false)
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "doc-"+ok.ID(), root.Children[0].Attributes["id"])
}
