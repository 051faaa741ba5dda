package sampler

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultFPS = 12.0

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(f *Frame)
	Value() float64
	Reset()
}

type Config struct {
	FPS float64
	// Frames, when positive, fixes the frame count and FPS is ignored.
	Frames int
	// Workers bounds concurrent frame evaluation. Zero uses GOMAXPROCS.
	Workers int
}

type Result struct {
	Frames  []*Frame
	Times   []float64
	Metrics map[string]float64
}

type Sampler struct {
	scene   *Scene
	metrics []Metric
	logger  *zap.Logger
}

func New(scene *Scene, logger *zap.Logger) *Sampler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sampler{
		scene:   scene,
		metrics: make([]Metric, 0),
		logger:  logger,
	}
}

func (s *Sampler) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Sampler) Scene() *Scene { return s.scene }

// FrameCount returns the number of frames in one loop at fps.
func (s *Sampler) FrameCount(fps float64) int {
	return int(math.Floor(fps * s.scene.Duration))
}

func (s *Sampler) frames(cfg Config) int {
	if cfg.Frames > 0 {
		return cfg.Frames
	}
	return s.FrameCount(cfg.FPS)
}

func (s *Sampler) validateConfig(cfg Config) error {
	if cfg.Frames <= 0 && cfg.FPS <= 0 {
		return fmt.Errorf("%w, got %f", ErrInvalidFPS, cfg.FPS)
	}
	if s.scene.Duration <= 0 {
		return fmt.Errorf("%w, got %f", ErrInvalidDuration, s.scene.Duration)
	}
	if s.frames(cfg) == 0 {
		return ErrNoFrames
	}
	return nil
}

// Run evaluates one loop of frames. Frames are computed concurrently and
// returned in time order; metrics observe them in that order afterwards.
func (s *Sampler) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	n := s.frames(cfg)
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	frames := make([]*Frame, n)
	times := make([]float64, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		times[i] = s.scene.FrameTime(i, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			frames[i] = s.scene.At(i, times[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sample frames: %w", err)
	}

	result := &Result{
		Frames:  frames,
		Times:   times,
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	for _, f := range frames {
		for _, m := range s.metrics {
			m.Observe(f)
		}
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.Debug("sampled loop",
		zap.Int("frames", n),
		zap.Int("workers", workers),
		zap.Int("cells", len(s.scene.Cells)),
		zap.Int("sources", len(s.scene.Sources)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

// RunWithCallback evaluates frames one at a time in order, stopping when
// callback returns false.
func (s *Sampler) RunWithCallback(ctx context.Context, cfg Config, callback func(*Frame) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	n := s.frames(cfg)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(s.scene.At(i, s.scene.FrameTime(i, n))) {
			return nil
		}
	}
	return nil
}
