package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravlens/internal/demo"
	"github.com/san-kum/gravlens/internal/field"
	"github.com/san-kum/gravlens/internal/grid"
	"github.com/san-kum/gravlens/internal/sampler"
	"github.com/san-kum/gravlens/internal/theme"
	"github.com/san-kum/gravlens/internal/timeline"
)

const (
	DefaultFormat = "gif"
	DefaultOutput = "gravlens.gif"
)

// Formats lists the output formats a config may name.
var Formats = []string{"gif", "svg"}

type Config struct {
	User    string     `yaml:"user,omitempty"`
	Demo    bool       `yaml:"demo"`
	Seed    uint32     `yaml:"seed"`
	Theme   string     `yaml:"theme"`
	Format  string     `yaml:"format"`
	Output  string     `yaml:"output"`
	FPS     float64    `yaml:"fps"`
	Workers int        `yaml:"workers,omitempty"`
	Lens    LensConfig `yaml:"lens"`
}

type LensConfig struct {
	Mode           string  `yaml:"mode"`
	Strength       float64 `yaml:"strength"`
	Duration       float64 `yaml:"duration"`
	ClipPercent    float64 `yaml:"clip_percent"`
	AnomalyPercent float64 `yaml:"anomaly_percent"`
	CellSize       float64 `yaml:"cell_size"`
	CellGap        float64 `yaml:"cell_gap"`
	CornerRadius   float64 `yaml:"corner_radius"`
	Radius         float64 `yaml:"radius"`
	MaxDelay       float64 `yaml:"max_delay"`
	MaxJitter      float64 `yaml:"max_jitter"`
	Peaks          int     `yaml:"peaks,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed:   demo.DefaultSeed,
		Theme:  theme.Default.Name,
		Format: DefaultFormat,
		Output: DefaultOutput,
		FPS:    sampler.DefaultFPS,
		Lens: LensConfig{
			Mode:           string(sampler.ModeLens),
			Strength:       sampler.DefaultStrength,
			Duration:       sampler.DefaultDuration,
			ClipPercent:    grid.DefaultClipPercent,
			AnomalyPercent: grid.DefaultAnomalyPercent,
			CellSize:       sampler.DefaultCellSize,
			CellGap:        sampler.DefaultCellGap,
			CornerRadius:   sampler.DefaultCornerRadius,
			Radius:         field.DefaultRadius,
			MaxDelay:       timeline.DefaultMaxDelay,
			MaxJitter:      field.DefaultMaxJitter,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base. Keys missing from the file
// keep their base values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting that cannot be rendered.
func (c *Config) Validate() error {
	l := c.Lens
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %g", ErrInvalid, c.FPS)
	case l.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalid, l.Duration)
	case l.Strength < 0:
		return fmt.Errorf("%w: strength must not be negative, got %g", ErrInvalid, l.Strength)
	case l.CellSize <= 0 || l.CellGap < 0:
		return fmt.Errorf("%w: cell size %g and gap %g", ErrInvalid, l.CellSize, l.CellGap)
	case l.ClipPercent <= 0 || l.ClipPercent > 100:
		return fmt.Errorf("%w: clip percent must be in (0,100], got %g", ErrInvalid, l.ClipPercent)
	case l.AnomalyPercent < 0 || l.AnomalyPercent > 100:
		return fmt.Errorf("%w: anomaly percent must be in [0,100], got %g", ErrInvalid, l.AnomalyPercent)
	case l.Radius <= 0:
		return fmt.Errorf("%w: radius must be positive, got %g", ErrInvalid, l.Radius)
	case l.MaxDelay < 0:
		return fmt.Errorf("%w: max delay must not be negative, got %g", ErrInvalid, l.MaxDelay)
	case !slices.Contains(sampler.Modes, sampler.Mode(l.Mode)):
		return fmt.Errorf("%w: %q", ErrUnknownMode, l.Mode)
	case !slices.Contains(Formats, c.Format):
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}
	if _, ok := theme.Lookup(c.Theme); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, c.Theme)
	}
	if !c.Demo && c.User == "" {
		return ErrNoSource
	}
	return nil
}

// SceneOptions converts the lens settings for the sampler. The theme's
// warp multiplier is not applied here.
func (c *Config) SceneOptions() sampler.Options {
	l := c.Lens
	return sampler.Options{
		CellSize:       l.CellSize,
		CellGap:        l.CellGap,
		CornerRadius:   l.CornerRadius,
		Strength:       l.Strength,
		Radius:         l.Radius,
		Duration:       l.Duration,
		AnomalyPercent: l.AnomalyPercent,
		ClipPercent:    l.ClipPercent,
		MaxDelay:       l.MaxDelay,
		MaxJitter:      l.MaxJitter,
		Mode:           sampler.Mode(l.Mode),
		Peaks:          l.Peaks,
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
