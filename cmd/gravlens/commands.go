package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/gravlens/internal/batch"
	"github.com/san-kum/gravlens/internal/config"
	"github.com/san-kum/gravlens/internal/metrics"
	"github.com/san-kum/gravlens/internal/render"
	"github.com/san-kum/gravlens/internal/sampler"
	"github.com/san-kum/gravlens/internal/server"
	"github.com/san-kum/gravlens/internal/storage"
	"github.com/san-kum/gravlens/internal/theme"
	"github.com/san-kum/gravlens/internal/timeline"
	"github.com/san-kum/gravlens/internal/viz"
)

var (
	termScale float64
	delay     float64
	samples   int
	addr      string
	outDir    string
)

// scene resolves the config, loads the calendar and builds the scene.
func scene(cmd *cobra.Command) (*config.Config, *sampler.Scene, theme.Theme, string, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, theme.Theme{}, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, theme.Theme{}, "", err
	}

	days, label, err := loadDays(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, theme.Theme{}, "", err
	}

	th := theme.GetTheme(cfg.Theme)
	sc := sampler.NewScene(days, render.SceneOptions(cfg.SceneOptions(), th))
	logger.Debug("scene ready",
		zap.String("source", label),
		zap.Int("cells", len(sc.Cells)),
		zap.Int("anomalies", len(sc.Sources)),
		zap.String("mode", string(sc.Mode)))
	return cfg, sc, th, label, nil
}

func renderOptions(cfg *config.Config, th theme.Theme) render.Options {
	opts := render.DefaultOptions()
	opts.Theme = th
	opts.FPS = cfg.FPS
	opts.Workers = cfg.Workers
	return opts
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, sc, th, label, err := scene(cmd)
	if err != nil {
		return err
	}

	renderer, err := render.NewRegistry().Get(cfg.Format, logger)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if cfg.Output != "-" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	start := time.Now()
	if err := renderer.Render(cmd.Context(), w, sc, renderOptions(cfg, th)); err != nil {
		return err
	}
	logger.Info("rendered",
		zap.String("source", label),
		zap.String("format", cfg.Format),
		zap.String("output", cfg.Output),
		zap.Duration("elapsed", time.Since(start)))

	if cfg.Output != "-" {
		fmt.Printf("wrote %s (%d anomalies)\n", cfg.Output, len(sc.Sources))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, sc, th, label, err := scene(cmd)
	if err != nil {
		return err
	}

	res, err := sampler.New(sc, logger).Run(cmd.Context(), sampler.Config{FPS: cfg.FPS, Workers: cfg.Workers})
	if err != nil {
		return err
	}

	return viz.Run(viz.NewModel(sc, res.Frames, viz.Options{
		Title:  "gravlens " + label,
		FPS:    cfg.FPS,
		Scale:  termScale,
		Render: renderOptions(cfg, th),
	}))
}

func runTimeline(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if samples < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", samples)
	}

	d := cfg.Lens.Duration
	warp := make([]float64, samples)
	bright := make([]float64, samples)
	interference := make([]float64, samples)
	for i := range warp {
		t := float64(i) / float64(samples-1) * d
		if delay < 0 {
			warp[i] = timeline.WarpProgress(t, d)
			bright[i] = timeline.BrightnessProgress(t, d)
		} else {
			warp[i] = timeline.AnomalyWarpProgress(t, d, delay)
			bright[i] = timeline.AnomalyBrightnessProgress(t, d, delay)
		}
		interference[i] = timeline.InterferenceProgress(t, d)
	}

	fmt.Printf("loop: %gs\n", d)
	if delay >= 0 {
		fmt.Printf("activation delay: %gs\n", delay)
	}
	fmt.Println()

	for _, ch := range []struct {
		caption string
		data    []float64
	}{
		{"warp progress", warp},
		{"brightness", bright},
		{"interference", interference},
	} {
		fmt.Println(asciigraph.Plot(ch.data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption(ch.caption)))
		fmt.Println()
	}
	return nil
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, sc, th, label, err := scene(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sampler.New(sc, logger)
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	fmt.Printf("sampling %s...\n", label)
	start := time.Now()
	res, err := s.Run(cmd.Context(), sampler.Config{FPS: cfg.FPS, Workers: cfg.Workers})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Source:    label,
		Mode:      string(sc.Mode),
		Theme:     th.Name,
		FPS:       cfg.FPS,
		Duration:  sc.Duration,
		Strength:  sc.Strength,
		Frames:    len(res.Frames),
		Anomalies: len(sc.Sources),
		Metrics:   res.Metrics,
	}
	if cfg.Demo {
		meta.Seed = cfg.Seed
	}
	runID, err := st.Save(meta, res)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(res.Frames))
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, res.Metrics[name])
	}
	return nil
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

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tMODE\tTHEME\tDURATION\tFRAMES\tANOMALIES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1fs\t%d\t%d\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Mode,
			run.Theme,
			run.Duration,
			run.Frames,
			run.Anomalies,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
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

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("source: %s\n", meta.Source)
	fmt.Printf("frames: %d\n\n", series.Len())

	for _, name := range storage.Columns[1:] {
		data, err := series.Column(name)
		if err != nil {
			return err
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name)))
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	check := cfg.Clone()
	check.Demo = true
	if err := check.Validate(); err != nil {
		return err
	}

	if githubToken() == "" {
		logger.Warn("no GitHub token, only the demo badge will work")
	}
	src, release, err := openSource()
	if err != nil {
		return err
	}
	defer release()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(src, cfg, logger).Run(ctx, addr)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	scenario, err := batch.LoadScenario(args[0])
	if err != nil {
		return err
	}

	src, release, err := openSource()
	if err != nil {
		return err
	}
	defer release()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := batch.Run(ctx, scenario, batch.Deps{
		Source: src,
		Config: cfg,
		Dir:    outDir,
		Logger: logger,
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "JOB\tOUTPUT\tCELLS\tANOMALIES\tBYTES")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", r.Job.Name, r.Output, r.Cells, r.Anomalies, r.Bytes)
	}
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	return err
}
