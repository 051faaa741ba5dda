package metrics

import (
	"math"

	"github.com/san-kum/gravlens/internal/sampler"
)

type PeakDisplacement struct {
	name string
	peak float64
}

func NewPeakDisplacement() *PeakDisplacement {
	return &PeakDisplacement{name: "peak_displacement"}
}

func (p *PeakDisplacement) Name() string { return p.name }

func (p *PeakDisplacement) Observe(f *sampler.Frame) {
	p.peak = math.Max(p.peak, f.PeakDisplacement())
}

func (p *PeakDisplacement) Value() float64 { return p.peak }

func (p *PeakDisplacement) Reset() { p.peak = 0 }

// MeanWarp averages per-frame mean warp progress over the loop.
type MeanWarp struct {
	name    string
	total   float64
	samples int
}

func NewMeanWarp() *MeanWarp {
	return &MeanWarp{name: "mean_warp"}
}

func (m *MeanWarp) Name() string { return m.name }

func (m *MeanWarp) Observe(f *sampler.Frame) {
	m.total += f.MeanWarp()
	m.samples++
}

func (m *MeanWarp) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanWarp) Reset() {
	m.total = 0
	m.samples = 0
}

// Stillness is the fraction of frames in which no cell moves more than
// threshold pixels.
type Stillness struct {
	name      string
	threshold float64
	moving    int
	samples   int
}

func NewStillness(threshold float64) *Stillness {
	return &Stillness{
		name:      "stillness",
		threshold: threshold,
	}
}

func (s *Stillness) Name() string {
	return s.name
}

func (s *Stillness) Observe(f *sampler.Frame) {
	s.samples++
	if f.PeakDisplacement() > s.threshold {
		s.moving++
	}
}

func (s *Stillness) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.moving)/float64(s.samples)
}

func (s *Stillness) Reset() {
	s.moving = 0
	s.samples = 0
}
