package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/export"
	"github.com/san-kum/backdrop/internal/fx"
	"github.com/san-kum/backdrop/internal/metrics"
	"github.com/san-kum/backdrop/internal/nav"
	"github.com/san-kum/backdrop/internal/storage"
)

// capture renders cfg.Frames frames of effect onto surface and records the
// effect's metrics after each one. onFrame, if set, runs after every frame.
func capture(cfg *config.Config, effect string, surface fx.Surface, onFrame func()) (*storage.Series, error) {
	anim, err := fx.NewRegistry().Get(effect, cfg.Options(), rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, err
	}
	stage := fx.NewStage()
	defer stage.Close()
	stage.SetDark(cfg.Dark())
	if err := stage.Resize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	stage.Mount(anim, surface)

	ms := metrics.ForEffect(effect)
	series := storage.NewSeries(metrics.Names(ms)...)
	values := make([]float64, len(ms))
	for i := 0; i < cfg.Frames; i++ {
		stage.Frame()
		for j, m := range ms {
			m.Observe(anim)
			values[j] = m.Value()
		}
		series.Append(values...)
		if onFrame != nil {
			onFrame()
		}
	}
	return series, nil
}

// captureEnsemble runs one headless capture per seed, starting at cfg.Seed,
// in parallel. Nothing is drawn.
func captureEnsemble(cfg *config.Config, effect string, runs int) ([]*storage.Series, error) {
	results := make([]*storage.Series, runs)
	errs := make([]error, runs)

	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			c := cfg.Clone()
			c.Seed = cfg.Seed + int64(idx)
			results[idx], errs[idx] = capture(c, effect, fx.Discard, nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func runCapture(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	effect := cfg.Effect
	if len(args) > 0 {
		effect = args[0]
	}
	if runs > 1 {
		return runEnsemble(cfg, effect)
	}

	out := output
	if out == "" {
		out = effect + "." + format
	}

	bg := fx.PaletteFor(cfg.Dark()).Background
	var series *storage.Series
	switch format {
	case "gif":
		raster := export.NewRaster(cfg.Width, cfg.Height, bg)
		rec := export.NewGIFRecorder(cfg.FPS)
		series, err = capture(cfg, effect, raster, func() { rec.Add(raster.Image()) })
		if err != nil {
			return err
		}
		if err := rec.Save(out); err != nil {
			return err
		}
	case "svg":
		doc := export.NewSVG(cfg.Width, cfg.Height, bg)
		series, err = capture(cfg, effect, doc, nil)
		if err != nil {
			return err
		}
		if err := writeFile(out, doc.Render); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (gif, svg)", format)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.Run{
		Effect: effect,
		Seed:   cfg.Seed,
		Width:  cfg.Width,
		Height: cfg.Height,
		Dark:   cfg.Dark(),
		Output: out,
	}, series)
	if err != nil {
		return err
	}

	fmt.Printf("captured %d frames of %s to %s\n", series.Len(), effect, out)
	fmt.Printf("run id: %s\n", id)
	return nil
}

func runEnsemble(cfg *config.Config, effect string) error {
	all, err := captureEnsemble(cfg, effect, runs)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	for i, series := range all {
		id, err := st.Save(storage.Run{
			Effect: effect,
			Seed:   cfg.Seed + int64(i),
			Width:  cfg.Width,
			Height: cfg.Height,
			Dark:   cfg.Dark(),
		}, series)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s (seed %d)\n", id, cfg.Seed+int64(i))
	}
	return nil
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	return writeRuns(os.Stdout, runs)
}

func writeRuns(out io.Writer, runs []storage.Run) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEFFECT\tTIME\tFRAMES\tSIZE\tTHEME\tOUTPUT")
	for _, run := range runs {
		theme := "dark"
		if !run.Dark {
			theme = "light"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dx%d\t%s\t%s\n",
			run.ID,
			run.Effect,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Width, run.Height,
			theme,
			run.Output,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	if asJSON {
		return st.ExportJSON(os.Stdout, runID)
	}

	run, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if series.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", run.ID)
	fmt.Printf("effect: %s\n", run.Effect)
	fmt.Printf("frames: %d\n\n", series.Len())

	for _, name := range series.Names {
		data := series.Column(name)
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()

		if svgDir == "" {
			continue
		}
		path := filepath.Join(svgDir, fmt.Sprintf("%s_%s.svg", run.ID, name))
		err := writeFile(path, func(w io.Writer) error {
			return export.PlotSVG(w, data, 640, 240, "#6366f1")
		})
		if err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

// writeSections prints the navigation state at each offset in [from, to].
func writeSections(out io.Writer, cfg *config.Config, from, to, step float64) error {
	if step <= 0 {
		return fmt.Errorf("step must be positive")
	}
	layout := cfg.Layout()
	tracker := nav.NewTracker(cfg.Nav.Config, cfg.Order(), cfg.FPS)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OFFSET\tACTIVE\tSCROLLED")
	for y := from; y <= to; y += step {
		st := tracker.Update(y, layout)
		fmt.Fprintf(w, "%.0f\t%s\t%t\n", y, st.Active, st.Scrolled)
	}
	return w.Flush()
}
