package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/heatmap"
	"github.com/delaneyj/chartparty/mapchart"
	"github.com/delaneyj/chartparty/reporting"
	"github.com/delaneyj/chartparty/signal"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	geojson "github.com/paulmach/go.geojson"
)

var (
	cpuProfile = flag.String("cpuprofile", "", "write a CPU profile to this file")
	sizes      = []int{1, 10, 30}
	iters      = flag.Int("iters", 100, "updates measured per size")
	storm      = flag.Int("storm", 1_000, "signals per update reported as a redraw storm")
)

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	benchmarkHeatMap(false)
	benchmarkMap(false)

	benchmarkHeatMap(true)
	benchmarkMap(true)
}

type scenario struct {
	name  string
	setup func(n int) (draw func(), update func(i int), signals *int)
}

func measure(title string, shouldRender bool, scenarios []scenario) {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "signals", "avg", "min", "p75", "p99", "max"})

	for _, sc := range scenarios {
		for _, n := range sizes {
			tach := tachymeter.New(&tachymeter.Config{Size: *iters})
			draw, update, signals := sc.setup(n)
			draw()

			for i := 0; i < *iters; i++ {
				*signals = 0
				start := time.Now()
				update(i)
				draw()
				tach.AddTime(time.Since(start))
			}
			if *signals > *storm {
				reporting.Info(reporting.InfoRedrawStorm, sc.name, *signals)
			}

			calc := tach.Calc()
			tbl.AppendRow(table.Row{
				fmt.Sprintf("%s: %d * %d", sc.name, n, n),
				humanize.Comma(int64(*signals)),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func counting(s interface {
	ListenSignalsFunc(fn func(signal.Event)) signal.Listener
}) *int {
	n := new(int)
	s.ListenSignalsFunc(func(signal.Event) { *n++ })
	return n
}

func heatMapScenario(batched bool) func(n int) (func(), func(int), *int) {
	return func(n int) (func(), func(int), *int) {
		stage := graphics.NewStage(800, 600)
		h := heatmap.New()
		h.SetContainer(stage.Root())
		cells := make([]heatmap.Cell, 0, n*n)
		for col := 0; col < n; col++ {
			for row := 0; row < n; row++ {
				cells = append(cells, heatmap.Cell{Column: col, Row: row, Value: float64(col * row)})
			}
		}
		h.Series().SetCells(cells)

		update := func(i int) {
			for col := 0; col < n; col++ {
				for row := 0; row < n; row++ {
					h.Series().SetValue(col, row, float64(col*row+i+1))
				}
			}
		}
		if batched {
			unbatched := update
			update = func(i int) {
				signal.Batch(func() { unbatched(i) }, h.Series())
			}
		}
		return h.Draw, update, counting(h)
	}
}

func benchmarkHeatMap(shouldRender bool) {
	measure("Heatmap invalidation", shouldRender, []scenario{
		{name: "cell by cell", setup: heatMapScenario(false)},
		{name: "suspended", setup: heatMapScenario(true)},
	})
}

func gridGeoJSON(n int) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			lon, lat := float64(x), float64(y)
			f := geojson.NewPolygonFeature([][][]float64{{
				{lon, lat}, {lon + 1, lat}, {lon + 1, lat + 1}, {lon, lat + 1}, {lon, lat},
			}})
			f.ID = fmt.Sprintf("%d-%d", x, y)
			fc.AddFeature(f)
		}
	}
	return fc
}

func mapScenario(batched bool) func(n int) (func(), func(int), *int) {
	return func(n int) (func(), func(int), *int) {
		stage := graphics.NewStage(800, 600)
		m := mapchart.NewMap()
		m.SetContainer(stage.Root())
		fc := gridGeoJSON(n)
		m.SetGeoData(fc)
		s := m.AddSeries("values")

		update := func(i int) {
			for j, f := range fc.Features {
				s.SetValue(fmt.Sprint(f.ID), float64(i+j))
			}
		}
		if batched {
			unbatched := update
			update = func(i int) {
				signal.Batch(func() { unbatched(i) }, s)
			}
		}
		return m.Draw, update, counting(m)
	}
}

func benchmarkMap(shouldRender bool) {
	measure("Map invalidation", shouldRender, []scenario{
		{name: "region by region", setup: mapScenario(false)},
		{name: "suspended", setup: mapScenario(true)},
	})
}
