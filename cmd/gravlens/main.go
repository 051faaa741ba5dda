package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/gravlens/internal/config"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	logFormat  string

	user           string
	token          string
	useDemo        bool
	seed           uint32
	themeName      string
	mode           string
	strength       float64
	duration       float64
	clipPercent    float64
	anomalyPercent float64
	fps            float64
	workers        int
	format         string
	output         string

	cachePath string
	cacheTTL  time.Duration

	// Set by the root PersistentPreRunE.
	logger = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gravlens",
		Short: "gravitational lens animations of a contribution calendar",
		Long: "gravlens renders a GitHub contribution calendar as a looping animation in which\n" +
			"the busiest days bend the grid around them like masses bending spacetime.",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogger,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: runRender,
	}

	defaults := config.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".gravlens", "data directory for saved runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVar(&verbose, "verbose", false, "debug logging")
	pf.StringVar(&logFormat, "log-format", "json", "log encoding (json or console)")

	pf.StringVarP(&user, "user", "u", "", "GitHub username")
	pf.StringVarP(&token, "token", "t", "", "GitHub token (defaults to $GITHUB_TOKEN)")
	pf.BoolVarP(&useDemo, "demo", "d", false, "use generated demo data")
	pf.Uint32Var(&seed, "seed", defaults.Seed, "demo data seed")
	pf.StringVar(&themeName, "theme", defaults.Theme, "colour theme")
	pf.StringVar(&mode, "mode", defaults.Lens.Mode, "animation mode (lens, legacy, field)")
	pf.Float64Var(&strength, "strength", defaults.Lens.Strength, "warp strength")
	pf.Float64Var(&duration, "duration", defaults.Lens.Duration, "loop duration in seconds")
	pf.Float64Var(&clipPercent, "clip-percent", defaults.Lens.ClipPercent, "percentile treated as full mass")
	pf.Float64Var(&anomalyPercent, "anomaly-percent", defaults.Lens.AnomalyPercent, "share of busiest days flagged as anomalies")
	pf.Float64Var(&fps, "fps", defaults.FPS, "frames per second")
	pf.IntVar(&workers, "workers", 0, "parallel frame workers (0 uses all cores)")
	pf.StringVar(&format, "format", defaults.Format, "output format (gif, svg)")
	pf.StringVarP(&output, "output", "o", defaults.Output, "output file, - for stdout")
	pf.StringVar(&cachePath, "cache", "", "sqlite cache of fetched calendars (disabled when empty)")
	pf.DurationVar(&cacheTTL, "cache-ttl", 6*time.Hour, "maximum age of cached calendars")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the animation to a file",
		RunE:  runRender,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "play the animation in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&termScale, "scale", 0, "pixels per terminal sub-pixel")

	timelineCmd := &cobra.Command{
		Use:   "timeline",
		Short: "plot the warp, brightness and interference channels of one loop",
		RunE:  runTimeline,
	}
	timelineCmd.Flags().Float64Var(&delay, "delay", -1, "activation delay of an anomaly (negative plots the global cycle)")
	timelineCmd.Flags().IntVar(&samples, "samples", 80, "samples per loop")

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "sample one loop and save its metrics as a run",
		RunE:  runSample,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run channels",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s %s, %s, strength %.2f, %gs\n", name, p.Format, p.Lens.Mode, p.Lens.Strength, p.Lens.Duration)
			}
			return nil
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve lens badges over HTTP",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "render every job of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&outDir, "out-dir", "", "directory for relative job outputs")

	rootCmd.AddCommand(renderCmd, liveCmd, timelineCmd, sampleCmd, listCmd, plotCmd,
		exportJSONCmd, exportCSVCmd, presetsCmd, serveCmd, batchCmd)
	return rootCmd
}

func setupLogger(cmd *cobra.Command, args []string) error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	switch logFormat {
	case "json":
	case "console":
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return fmt.Errorf("unknown log format: %s", logFormat)
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l
	return nil
}
