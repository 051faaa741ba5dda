package field

import (
	"math"

	"github.com/san-kum/gravlens/internal/grid"
	"github.com/san-kum/gravlens/internal/timeline"
)

func anomalyCenters(cells []grid.AnomalyCell, g Geometry) []grid.Point {
	var pts []grid.Point
	for _, c := range cells {
		if c.IsAnomaly {
			x, y := g.Center(c.Col, c.Row)
			pts = append(pts, grid.Point{X: x, Y: y})
		}
	}
	return pts
}

// Interference measures how strongly overlapping lenses meet at each
// non-anomaly cell: the mean closeness 1-d/R over sources in (0, R], or 0
// when fewer than two sources reach the cell.
func Interference(cells []grid.AnomalyCell, radius float64, g Geometry) []float64 {
	levels := make([]float64, len(cells))
	if radius <= 0 {
		return levels
	}

	sources := anomalyCenters(cells, g)
	for i, c := range cells {
		if c.IsAnomaly {
			continue
		}
		x, y := g.Center(c.Col, c.Row)

		var n int
		var sum float64
		for _, s := range sources {
			d := math.Hypot(x-s.X, y-s.Y)
			if d == 0 || d > radius {
				continue
			}
			n++
			sum += 1 - d/radius
		}
		if n < 2 {
			continue
		}
		levels[i] = math.Min(sum/float64(n), 1)
	}
	return levels
}

// InZone reports for each cell whether any anomaly lies within radius.
// Cells outside every lens never move and can be drawn statically.
func InZone(cells []grid.AnomalyCell, radius float64, g Geometry) []bool {
	zone := make([]bool, len(cells))
	sources := anomalyCenters(cells, g)
	for i, c := range cells {
		x, y := g.Center(c.Col, c.Row)
		for _, s := range sources {
			if math.Hypot(x-s.X, y-s.Y) <= radius {
				zone[i] = true
				break
			}
		}
	}
	return zone
}

// ActivationDelays staggers anomaly sources left to right: an anomaly at
// column c fires c/maxCol·maxDelay seconds late, where maxCol is the
// rightmost anomaly column. Other cells get 0.
func ActivationDelays(cells []grid.AnomalyCell, maxDelay float64) []float64 {
	delays := make([]float64, len(cells))

	maxCol := 0
	for _, c := range cells {
		if c.IsAnomaly {
			maxCol = max(maxCol, c.Col)
		}
	}

	for i, c := range cells {
		if c.IsAnomaly {
			delays[i] = timeline.ActivationDelay(c.Col, maxCol, maxDelay)
		}
	}
	return delays
}
