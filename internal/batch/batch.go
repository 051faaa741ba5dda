// Package batch renders scripted sets of lens animations.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravlens/internal/config"
	"github.com/san-kum/gravlens/internal/grid"
	"github.com/san-kum/gravlens/internal/render"
	"github.com/san-kum/gravlens/internal/sampler"
	"github.com/san-kum/gravlens/internal/source"
	"github.com/san-kum/gravlens/internal/theme"
)

// Scenario is a named list of render jobs.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Jobs        []Job   `yaml:"jobs"`
	Sweeps      []Sweep `yaml:"sweeps,omitempty"`
}

// Job renders one animation. Zero fields fall back to the base config.
type Job struct {
	Name     string  `yaml:"name"`
	User     string  `yaml:"user,omitempty"`
	Demo     bool    `yaml:"demo,omitempty"`
	Seed     uint32  `yaml:"seed,omitempty"`
	Format   string  `yaml:"format,omitempty"`
	Theme    string  `yaml:"theme,omitempty"`
	Mode     string  `yaml:"mode,omitempty"`
	Strength float64 `yaml:"strength,omitempty"`
	Duration float64 `yaml:"duration,omitempty"`
	Output   string  `yaml:"output"`
}

// Deps are what jobs render with.
type Deps struct {
	// Source serves user jobs. Demo jobs never touch it.
	Source   source.Source
	Config   *config.Config
	Registry *render.Registry
	// Dir is prepended to relative outputs.
	Dir    string
	Logger *zap.Logger
}

// Result describes one finished job.
type Result struct {
	Job       Job
	Output    string
	Cells     int
	Anomalies int
	Bytes     int64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Jobs) == 0 && len(scenario.Sweeps) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyScenario, path)
	}
	return &scenario, nil
}

// Expand returns the scenario's jobs followed by the jobs of every sweep.
func (s *Scenario) Expand() ([]Job, error) {
	jobs := append([]Job(nil), s.Jobs...)
	for i := range s.Sweeps {
		swept, err := s.Sweeps[i].Jobs()
		if err != nil {
			return nil, fmt.Errorf("sweep %d: %w", i+1, err)
		}
		jobs = append(jobs, swept...)
	}
	return jobs, nil
}

// Run executes every job of the scenario in order and stops at the first
// failure. Results of the jobs that finished are returned with the error.
func Run(ctx context.Context, scenario *Scenario, deps Deps) ([]Result, error) {
	deps = deps.withDefaults()

	jobs, err := scenario.Expand()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(jobs))
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		deps.Logger.Info("running job",
			zap.String("scenario", scenario.Name),
			zap.Int("index", i+1),
			zap.Int("total", len(jobs)),
			zap.String("job", job.Name))

		res, err := runJob(ctx, job, deps)
		if err != nil {
			return results, fmt.Errorf("job %d (%s): %w", i+1, job.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (d Deps) withDefaults() Deps {
	if d.Config == nil {
		d.Config = config.DefaultConfig()
	}
	if d.Registry == nil {
		d.Registry = render.NewRegistry()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return d
}

// configFor layers job over the base config.
func configFor(job Job, base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	if job.Demo {
		cfg.Demo = true
		cfg.User = ""
	}
	if job.User != "" {
		cfg.User = job.User
		cfg.Demo = false
	}
	if job.Seed != 0 {
		cfg.Seed = job.Seed
	}
	if job.Format != "" {
		cfg.Format = job.Format
	}
	if job.Theme != "" {
		cfg.Theme = job.Theme
	}
	if job.Mode != "" {
		cfg.Lens.Mode = job.Mode
	}
	if job.Strength != 0 {
		cfg.Lens.Strength = job.Strength
	}
	if job.Duration != 0 {
		cfg.Lens.Duration = job.Duration
	}
	if job.Output == "" {
		return nil, ErrNoOutput
	}
	cfg.Output = job.Output
	return cfg, cfg.Validate()
}

func runJob(ctx context.Context, job Job, deps Deps) (Result, error) {
	cfg, err := configFor(job, deps.Config)
	if err != nil {
		return Result{}, err
	}

	var days []grid.Day
	if cfg.Demo {
		days, err = source.Demo{Seed: cfg.Seed}.Days(ctx, "")
	} else if deps.Source == nil {
		err = ErrNoSource
	} else {
		days, err = deps.Source.Days(ctx, cfg.User)
	}
	if err != nil {
		return Result{}, err
	}

	th := theme.GetTheme(cfg.Theme)
	scene := sampler.NewScene(days, render.SceneOptions(cfg.SceneOptions(), th))

	renderer, err := deps.Registry.Get(cfg.Format, deps.Logger)
	if err != nil {
		return Result{}, err
	}

	path := cfg.Output
	if deps.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(deps.Dir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Result{}, err
	}
	f, err := os.Create(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	opts := render.DefaultOptions()
	opts.Theme = th
	opts.FPS = cfg.FPS
	opts.Workers = cfg.Workers
	if err := renderer.Render(ctx, f, scene, opts); err != nil {
		return Result{}, err
	}

	info, err := f.Stat()
	if err != nil {
		return Result{}, err
	}
	return Result{
		Job:       job,
		Output:    path,
		Cells:     len(scene.Cells),
		Anomalies: len(scene.Sources),
		Bytes:     info.Size(),
	}, nil
}
