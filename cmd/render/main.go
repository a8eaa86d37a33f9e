package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/delaneyj/chartparty/config"
	"github.com/delaneyj/chartparty/graphics"
	"github.com/delaneyj/chartparty/reporting"
	"github.com/delaneyj/chartparty/signal"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	configKey  = "config"
	outKey     = "out"
	formatKey  = "format"
	traceKey   = "trace"
	verboseKey = "verbose"
)

func main() {
	cmd := &cli.Command{
		Name:  "render",
		Usage: "Draw a chart document and export it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     configKey,
				Aliases:  []string{"c"},
				Usage:    "Chart document (YAML or JSON)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    outKey,
				Aliases: []string{"o"},
				Usage:   "Output file, the format extension is added when empty",
			},
			&cli.StringFlag{
				Name:  formatKey,
				Usage: "Output format, svg or png, overrides the document",
			},
			&cli.BoolFlag{
				Name:  traceKey,
				Usage: "Print what every draw pass did to the stage",
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log chart errors and warnings",
			},
		},
		Action: render,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func render(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Render of %s started", cmd.String(configKey))
	defer func() {
		log.Printf("Render finished in %v", time.Since(start))
	}()

	if cmd.Bool(verboseKey) {
		reporting.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	doc, err := config.Load(cmd.String(configKey))
	if err != nil {
		return err
	}
	doc.Apply(env)
	if f := cmd.String(formatKey); f != "" {
		doc.Format = f
	}

	chart, stage, err := doc.Build()
	if err != nil {
		return err
	}
	defer chart.Dispose()

	var dispatched []signal.Mask
	chart.ListenSignals(signal.Func(func(ev signal.Event) {
		dispatched = append(dispatched, ev.Signals)
	}))

	trace := tablewriter.NewWriter(os.Stdout)
	trace.SetHeader([]string{"pass", "frames", "created", "attached", "path ops", "style", "text", "signals", "dirty after"})
	for pass := 1; pass <= 2; pass++ {
		stage.ResetStats()
		dispatched = dispatched[:0]
		chart.Draw()
		trace.Append(traceRow(pass, stage.Stats(), len(dispatched), chart.ConsistencyString()))
	}
	if cmd.Bool(traceKey) {
		trace.Render()
	}

	out := cmd.String(outKey)
	if out == "" {
		out = "chart." + doc.Format
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	switch doc.Format {
	case config.FormatPNG:
		err = chart.ExportPNG(f)
	default:
		err = chart.ExportSVG(f)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", out, err)
	}

	info, err := f.Stat()
	if err != nil {
		return err
	}
	log.Printf("Wrote %s (%s, %gx%g)", out, humanize.Bytes(uint64(info.Size())), doc.Width, doc.Height)
	return nil
}

func traceRow(pass int, s graphics.Stats, signals int, dirty string) []string {
	return []string{
		fmt.Sprint(pass),
		fmt.Sprint(s.Frames),
		humanize.Comma(int64(s.Created)),
		humanize.Comma(int64(s.Attached)),
		humanize.Comma(int64(s.PathOps)),
		humanize.Comma(int64(s.StyleChanges)),
		humanize.Comma(int64(s.TextChanges)),
		fmt.Sprint(signals),
		dirty,
	}
}
