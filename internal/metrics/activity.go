package metrics

import (
	"math"

	"github.com/san-kum/gravlens/internal/sampler"
)

type PeakInterference struct {
	name string
	peak float64
}

func NewPeakInterference() *PeakInterference {
	return &PeakInterference{name: "peak_interference"}
}

func (p *PeakInterference) Name() string { return p.name }

func (p *PeakInterference) Observe(f *sampler.Frame) {
	p.peak = math.Max(p.peak, f.Interference)
}

func (p *PeakInterference) Value() float64 { return p.peak }

func (p *PeakInterference) Reset() { p.peak = 0 }

// ActiveSources tracks the most anomalies warping at the same time.
type ActiveSources struct {
	name string
	peak int
}

func NewActiveSources() *ActiveSources {
	return &ActiveSources{name: "max_active_sources"}
}

func (a *ActiveSources) Name() string { return a.name }

func (a *ActiveSources) Observe(f *sampler.Frame) {
	a.peak = max(a.peak, f.ActiveSources())
}

func (a *ActiveSources) Value() float64 { return float64(a.peak) }

func (a *ActiveSources) Reset() { a.peak = 0 }

// DefaultStillThreshold is the displacement in pixels below which a frame
// reads as at rest.
const DefaultStillThreshold = 0.05

// Default returns the metrics recorded for every saved run.
func Default() []sampler.Metric {
	return []sampler.Metric{
		NewPeakDisplacement(),
		NewMeanWarp(),
		NewStillness(DefaultStillThreshold),
		NewPeakInterference(),
		NewActiveSources(),
	}
}
