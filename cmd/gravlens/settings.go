package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/gravlens/internal/cache"
	"github.com/san-kum/gravlens/internal/config"
	"github.com/san-kum/gravlens/internal/github"
	"github.com/san-kum/gravlens/internal/grid"
	"github.com/san-kum/gravlens/internal/source"
)

// resolveConfig layers defaults, preset, config file and the flags the
// user actually set, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("user") {
		cfg.User = user
		cfg.Demo = false
	}
	if flags.Changed("demo") {
		cfg.Demo = useDemo
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("mode") {
		cfg.Lens.Mode = mode
	}
	if flags.Changed("strength") {
		cfg.Lens.Strength = strength
	}
	if flags.Changed("duration") {
		cfg.Lens.Duration = duration
	}
	if flags.Changed("clip-percent") {
		cfg.Lens.ClipPercent = clipPercent
	}
	if flags.Changed("anomaly-percent") {
		cfg.Lens.AnomalyPercent = anomalyPercent
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("output") {
		cfg.Output = output
	} else if cfg.Output != "-" {
		cfg.Output = strings.TrimSuffix(cfg.Output, filepath.Ext(cfg.Output)) + "." + cfg.Format
	}

	return cfg, nil
}

func githubToken() string {
	if token != "" {
		return token
	}
	return os.Getenv("GITHUB_TOKEN")
}

// openSource returns the calendar source for user lookups and a func that
// releases it.
func openSource() (source.Source, func(), error) {
	client := github.NewClient(githubToken(), github.WithLogger(logger))
	if cachePath == "" {
		return source.NewFetcher(client, nil, 0, logger), func() {}, nil
	}

	c, err := cache.Open(cachePath, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}
	release := func() {
		if err := c.Close(); err != nil {
			logger.Warn("close cache", zap.Error(err))
		}
	}
	return source.NewFetcher(client, c, cacheTTL, logger), release, nil
}

// loadDays returns the calendar cfg asks for and a label naming it.
func loadDays(ctx context.Context, cfg *config.Config) ([]grid.Day, string, error) {
	if cfg.Demo {
		days, err := source.Demo{Seed: cfg.Seed}.Days(ctx, "")
		return days, fmt.Sprintf("demo:%d", cfg.Seed), err
	}

	src, release, err := openSource()
	if err != nil {
		return nil, "", err
	}
	defer release()

	days, err := src.Days(ctx, cfg.User)
	if err != nil {
		return nil, "", err
	}
	return days, cfg.User, nil
}
