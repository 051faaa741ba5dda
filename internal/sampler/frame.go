package sampler

import (
	"math"

	"github.com/san-kum/gravlens/internal/grid"
)

// Frame is the lens state at one instant of the loop.
type Frame struct {
	Index int
	Time  float64
	Cells []grid.WarpedCell

	// SourceProgress is the warp progress of each anomaly, by cell index.
	SourceProgress map[int]float64
	// WarpProgress and Brightness are per cell. Non-anomaly cells follow
	// the strongest source.
	WarpProgress []float64
	Brightness   []float64

	// Interference is the global interference pulse.
	Interference float64
	Jitter       []grid.Point
}

// PeakDisplacement returns the largest cell displacement in pixels.
func (f *Frame) PeakDisplacement() float64 {
	var peak float64
	for _, c := range f.Cells {
		peak = math.Max(peak, math.Hypot(c.Displacement()))
	}
	return peak
}

// MeanWarp returns the average per-cell warp progress.
func (f *Frame) MeanWarp() float64 {
	return mean(f.WarpProgress)
}

// MeanBrightness returns the average per-cell brightness progress.
func (f *Frame) MeanBrightness() float64 {
	return mean(f.Brightness)
}

// ActiveSources counts anomalies whose warp has started.
func (f *Frame) ActiveSources() int {
	n := 0
	for _, p := range f.SourceProgress {
		if p > 0 {
			n++
		}
	}
	return n
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}
