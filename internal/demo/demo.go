// Package demo generates a deterministic contribution calendar for
// previews that need no GitHub access.
package demo

import (
	"time"

	"github.com/san-kum/gravlens/internal/grid"
)

const (
	// DefaultSeed reproduces the published demo animation.
	DefaultSeed = 42

	Days = 365
)

// Start is the first day of the demo calendar.
var Start = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var activeWeeks = map[int]bool{3: true, 10: true, 18: true, 27: true, 35: true, 45: true}

// LCG is a 32-bit linear congruential generator.
type LCG struct {
	state uint32
}

func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Next advances the generator and returns a value in [0,1).
func (l *LCG) Next() float64 {
	l.state = l.state*1664525 + 1013904223
	return float64(l.state) / (1 << 32)
}

// Intn returns a value in [0,n) drawn from the next output.
func (l *LCG) Intn(n int) int {
	return int(l.Next() * float64(n))
}

// Generate returns a year of contributions with a handful of busy weeks
// standing out from steady weekday activity and sparse weekends.
func Generate(seed uint32) []grid.Day {
	rng := NewLCG(seed)
	days := make([]grid.Day, 0, Days)

	for i := 0; i < Days; i++ {
		date := Start.AddDate(0, 0, i)
		weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday
		active := activeWeeks[i/7]

		var count int
		r := rng.Next()
		switch {
		case active && !weekend:
			count = 5 + int(r*15)
		case weekend:
			if r < 0.6 {
				count = 1 + rng.Intn(3)
			}
		default:
			if r < 0.85 {
				count = 1 + rng.Intn(12)
			}
		}

		days = append(days, grid.Day{
			Date:  date.Format(time.DateOnly),
			Count: count,
			Level: grid.CountToLevel(count),
		})
	}
	return days
}
