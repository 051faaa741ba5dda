package sampler

import (
	"github.com/san-kum/gravlens/internal/field"
	"github.com/san-kum/gravlens/internal/grid"
	"github.com/san-kum/gravlens/internal/timeline"
)

// Mode selects the animation model.
type Mode string

const (
	// ModeLens fires each anomaly as its own staggered lens.
	ModeLens Mode = "lens"
	// ModeLegacy warps the whole grid around its gravity centre on the
	// five-phase cycle.
	ModeLegacy Mode = "legacy"
	// ModeField runs the five-phase cycle with every cell repelling its
	// neighbours by mass.
	ModeField Mode = "field"
)

// Modes lists the supported animation models.
var Modes = []Mode{ModeLens, ModeLegacy, ModeField}

const (
	DefaultCellSize     = 11.0
	DefaultCellGap      = 4.0
	DefaultCornerRadius = 2.0
	DefaultStrength     = 0.5
	DefaultDuration     = 14.0
)

type Options struct {
	CellSize       float64
	CellGap        float64
	CornerRadius   float64
	Strength       float64
	Radius         float64
	Duration       float64
	AnomalyPercent float64
	ClipPercent    float64
	MaxDelay       float64
	MaxJitter      float64
	Mode           Mode
	// Peaks is the number of attractors in legacy mode; 0 uses the
	// gravity centre.
	Peaks int
}

func DefaultOptions() Options {
	return Options{
		CellSize:       DefaultCellSize,
		CellGap:        DefaultCellGap,
		CornerRadius:   DefaultCornerRadius,
		Strength:       DefaultStrength,
		Radius:         field.DefaultRadius,
		Duration:       DefaultDuration,
		AnomalyPercent: grid.DefaultAnomalyPercent,
		ClipPercent:    grid.DefaultClipPercent,
		MaxDelay:       timeline.DefaultMaxDelay,
		MaxJitter:      field.DefaultMaxJitter,
		Mode:           ModeLens,
	}
}

// Scene is the per-render state shared by every frame.
type Scene struct {
	Options
	Geometry field.Geometry

	Cells   []grid.AnomalyCell
	Sources []int

	Delays       []float64
	Interference []float64
	InZone       []bool
	MaxIntensity []float64
	Rotation     []float64

	// Centers are the legacy attractors in grid coordinates. Empty in
	// other modes.
	Centers []grid.Point

	MaxCol, MaxRow int
}

// NewScene classifies days and precomputes the per-cell quantities that do
// not depend on time.
func NewScene(days []grid.Day, opts Options) *Scene {
	s := &Scene{
		Options:  opts,
		Geometry: field.Geometry{CellSize: opts.CellSize, CellGap: opts.CellGap},
	}

	cells := grid.NormalizeWithClip(days, opts.ClipPercent)
	s.Cells = grid.DetectAnomalies(cells, opts.AnomalyPercent)
	s.Sources = grid.Anomalies(s.Cells)
	s.MaxCol, s.MaxRow = grid.Bounds(s.Cells)

	s.Rotation = make([]float64, len(s.Cells))
	for i, c := range s.Cells {
		s.Rotation[i] = field.CellRotation(c.Row, c.Col)
	}

	switch opts.Mode {
	case ModeLegacy, ModeField:
		if opts.Mode == ModeLegacy {
			if opts.Peaks > 0 {
				s.Centers = field.GravityPeaks(cells, opts.Peaks)
			} else {
				s.Centers = []grid.Point{field.GravityCenter(cells)}
			}
		}
		s.Delays = make([]float64, len(s.Cells))
		s.Interference = make([]float64, len(s.Cells))
		s.InZone = make([]bool, len(s.Cells))
		for i := range s.InZone {
			s.InZone[i] = true
		}
		s.MaxIntensity = field.WarpIntensity(s.globalWarp(cells, 1))
	default:
		s.Delays = field.ActivationDelays(s.Cells, opts.MaxDelay)
		s.Interference = field.Interference(s.Cells, opts.Radius, s.Geometry)
		s.InZone = field.InZone(s.Cells, opts.Radius, s.Geometry)
		s.MaxIntensity = field.WarpIntensity(field.LocalLensWarp(s.Cells, 1, opts.Radius, opts.Strength, s.Geometry))
	}

	return s
}

// FrameTime returns the time of frame i out of n evenly spaced frames.
func (s *Scene) FrameTime(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(i) / float64(n) * s.Duration
}

// At evaluates the scene at time t.
func (s *Scene) At(index int, t float64) *Frame {
	switch s.Mode {
	case ModeLegacy, ModeField:
		return s.globalAt(index, t)
	default:
		return s.lensAt(index, t)
	}
}

func (s *Scene) globalWarp(cells []grid.Cell, progress float64) []grid.WarpedCell {
	if s.Mode == ModeField {
		return field.FieldWarp(cells, progress, s.Strength, s.Geometry)
	}
	return field.WarpedPositions(cells, s.Centers, progress, s.Strength, s.Geometry)
}

func (s *Scene) lensAt(index int, t float64) *Frame {
	n := len(s.Cells)
	f := &Frame{
		Index:          index,
		Time:           t,
		SourceProgress: make(map[int]float64, len(s.Sources)),
		WarpProgress:   make([]float64, n),
		Brightness:     make([]float64, n),
		Jitter:         make([]grid.Point, n),
		Interference:   timeline.InterferenceProgress(t, s.Duration),
	}

	var peakWarp, peakBright float64
	for _, i := range s.Sources {
		p := timeline.AnomalyWarpProgress(t, s.Duration, s.Delays[i])
		b := timeline.AnomalyBrightnessProgress(t, s.Duration, s.Delays[i])
		f.SourceProgress[i] = p
		f.WarpProgress[i] = p
		f.Brightness[i] = b
		peakWarp = max(peakWarp, p)
		peakBright = max(peakBright, b)
	}

	f.Cells = field.LocalLensWarpPerSource(s.Cells, f.SourceProgress, s.Radius, s.Strength, s.Geometry)

	for i, c := range s.Cells {
		if c.IsAnomaly {
			continue
		}
		f.WarpProgress[i] = peakWarp
		f.Brightness[i] = peakBright
		if s.InZone[i] {
			f.Jitter[i] = field.InterferenceJitter(c.Row, c.Col, f.Interference, s.Interference[i], s.MaxJitter)
		}
	}
	return f
}

func (s *Scene) globalAt(index int, t float64) *Frame {
	n := len(s.Cells)
	p := timeline.WarpProgress(t, s.Duration)
	b := timeline.BrightnessProgress(t, s.Duration)

	plain := make([]grid.Cell, n)
	for i, c := range s.Cells {
		plain[i] = c.Cell
	}

	f := &Frame{
		Index:          index,
		Time:           t,
		Cells:          s.globalWarp(plain, p),
		SourceProgress: map[int]float64{},
		WarpProgress:   make([]float64, n),
		Brightness:     make([]float64, n),
		Jitter:         make([]grid.Point, n),
	}
	for i := range f.Cells {
		f.Cells[i].AnomalyCell = s.Cells[i]
		f.WarpProgress[i] = p
		f.Brightness[i] = b
	}
	return f
}
