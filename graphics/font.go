package graphics

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	loadFont = sync.OnceValue(func() *text.FontSource {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			panic(fmt.Sprintf("graphics: loading embedded font: %v", err))
		}
		return src
	})

	facesMu sync.Mutex
	faces   = map[float64]text.Face{}
)

// Face returns the shared face for fontSize. Faces are cached per size and
// safe to reuse across stages.
func Face(fontSize float64) text.Face {
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[fontSize]; ok {
		return f
	}
	f := loadFont().Face(fontSize)
	faces[fontSize] = f
	return f
}

// MeasureText returns the advance width and line height of a single line of
// text set in the embedded Go font.
func MeasureText(s string, fontSize float64) (float64, float64) {
	if s == "" || fontSize <= 0 {
		return 0, 0
	}
	return text.Measure(s, Face(fontSize))
}

// Ascent is the distance from the top of a text box to its baseline.
func Ascent(fontSize float64) float64 {
	if fontSize <= 0 {
		return 0
	}
	return Face(fontSize).Metrics().Ascent
}
