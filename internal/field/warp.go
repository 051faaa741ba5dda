package field

import (
	"math"
	"sort"

	"github.com/san-kum/gravlens/internal/grid"
	"gonum.org/v1/gonum/floats"
)

const (
	// repulsionScale is k in cell steps for mass-squared kernels.
	repulsionScale = 3.0
	// attractorScale is k in cell steps per unit of average mass.
	attractorScale = 50.0
	attractorBias  = 0.1

	// peakSpacing is the minimum grid distance between gravity peaks.
	peakSpacing = 2.0

	// LensStretchX and LensStretchY flatten the lens into a wide ellipse.
	LensStretchX = 1.2
	LensStretchY = 0.8

	// DefaultRadius is the lens influence radius in pixels.
	DefaultRadius = 60.0
)

// GravityCenter returns the mass-weighted centroid of cells in grid
// coordinates. Without mass it falls back to the middle of the bounding box.
func GravityCenter(cells []grid.Cell) grid.Point {
	if len(cells) == 0 {
		return grid.Point{}
	}

	var total, wx, wy float64
	for _, c := range cells {
		total += c.Mass
		wx += float64(c.Col) * c.Mass
		wy += float64(c.Row) * c.Mass
	}

	if total == 0 {
		minCol, maxCol := cells[0].Col, cells[0].Col
		minRow, maxRow := cells[0].Row, cells[0].Row
		for _, c := range cells[1:] {
			minCol, maxCol = min(minCol, c.Col), max(maxCol, c.Col)
			minRow, maxRow = min(minRow, c.Row), max(maxRow, c.Row)
		}
		return grid.Point{
			X: float64(minCol+maxCol) / 2,
			Y: float64(minRow+maxRow) / 2,
		}
	}

	return grid.Point{X: wx / total, Y: wy / total}
}

// GravityPeaks picks up to n heavy cells, heaviest first, skipping any cell
// within two grid units of a peak already chosen.
func GravityPeaks(cells []grid.Cell, n int) []grid.Point {
	var heavy []grid.Cell
	for _, c := range cells {
		if c.Mass > 0 {
			heavy = append(heavy, c)
		}
	}
	sort.SliceStable(heavy, func(i, j int) bool { return heavy[i].Mass > heavy[j].Mass })

	peaks := []grid.Point{}
	for _, c := range heavy {
		if len(peaks) >= n {
			break
		}
		candidate := grid.Point{X: float64(c.Col), Y: float64(c.Row)}
		tooClose := false
		for _, p := range peaks {
			if math.Hypot(p.X-candidate.X, p.Y-candidate.Y) <= peakSpacing {
				tooClose = true
				break
			}
		}
		if !tooClose {
			peaks = append(peaks, candidate)
		}
	}
	return peaks
}

func warp(c grid.AnomalyCell, g Geometry, dx, dy float64) grid.WarpedCell {
	ox, oy := g.Origin(c.Col, c.Row)
	return grid.WarpedCell{
		AnomalyCell: c,
		OriginalX:   ox,
		OriginalY:   oy,
		WarpedX:     ox + dx,
		WarpedY:     oy + dy,
	}
}

// FieldWarp pushes every cell away from every cell with mass, clamped to
// maxWarp cell steps and scaled by progress.
func FieldWarp(cells []grid.Cell, progress, maxWarp float64, g Geometry) []grid.WarpedCell {
	sources := make([]Source, 0, len(cells))
	for _, c := range cells {
		if c.Mass == 0 {
			continue
		}
		x, y := g.Center(c.Col, c.Row)
		sources = append(sources, Source{X: x, Y: y, Mass: c.Mass, Weight: progress})
	}

	f := &Field{
		Sources:         sources,
		Kernel:          InverseSquare(repulsionScale * g.Step()),
		Clamped:         true,
		MaxDisplacement: maxWarp * g.Step(),
	}

	out := make([]grid.WarpedCell, len(cells))
	for i, c := range cells {
		x, y := g.Center(c.Col, c.Row)
		dx, dy := f.Displacement(x, y)
		out[i] = warp(grid.AnomalyCell{Cell: c}, g, dx, dy)
	}
	return out
}

// WarpedPositions pushes cells away from attractor points given in grid
// coordinates. The force factor is capped at maxWarp but the summed vector
// is not clamped.
func WarpedPositions(cells []grid.Cell, centers []grid.Point, progress, maxWarp float64, g Geometry) []grid.WarpedCell {
	masses := make([]float64, len(cells))
	for i, c := range cells {
		masses[i] = c.Mass
	}
	var avgMass float64
	if len(cells) > 0 {
		avgMass = floats.Sum(masses) / float64(len(cells))
	}
	k := attractorScale * (avgMass + attractorBias) * g.Step()

	sources := make([]Source, len(centers))
	for i, p := range centers {
		x, y := g.PointCenter(p)
		sources[i] = Source{X: x, Y: y, Mass: avgMass, Weight: progress}
	}

	f := &Field{
		Sources: sources,
		Kernel: func(src Source, r2 float64) float64 {
			return math.Min(k*src.Mass/r2, maxWarp)
		},
	}

	out := make([]grid.WarpedCell, len(cells))
	for i, c := range cells {
		x, y := g.Center(c.Col, c.Row)
		dx, dy := f.Displacement(x, y)
		out[i] = warp(grid.AnomalyCell{Cell: c}, g, dx, dy)
	}
	return out
}

// LocalLensWarp displaces non-anomaly cells away from anomaly cells within
// radius pixels. Anomaly cells stay put.
func LocalLensWarp(cells []grid.AnomalyCell, progress, radius, maxWarp float64, g Geometry) []grid.WarpedCell {
	return lens(cells, func(int) float64 { return progress }, radius, maxWarp, g)
}

// LocalLensWarpPerSource is LocalLensWarp where each anomaly source carries
// its own progress, keyed by cell index. Missing sources are inactive.
func LocalLensWarpPerSource(cells []grid.AnomalyCell, progress map[int]float64, radius, maxWarp float64, g Geometry) []grid.WarpedCell {
	return lens(cells, func(i int) float64 { return progress[i] }, radius, maxWarp, g)
}

func lens(cells []grid.AnomalyCell, weight func(int) float64, radius, maxWarp float64, g Geometry) []grid.WarpedCell {
	if len(cells) == 0 {
		return []grid.WarpedCell{}
	}

	var sources []Source
	for i, c := range cells {
		if !c.IsAnomaly {
			continue
		}
		x, y := g.Center(c.Col, c.Row)
		sources = append(sources, Source{X: x, Y: y, Mass: c.Mass, Weight: weight(i)})
	}

	f := &Field{
		Sources:         sources,
		Kernel:          Capped(InverseSquare(repulsionScale*g.Step()), maxWarp),
		Bounded:         true,
		Radius:          radius,
		ScaleX:          LensStretchX,
		ScaleY:          LensStretchY,
		Clamped:         true,
		MaxDisplacement: maxWarp * g.Step(),
	}

	out := make([]grid.WarpedCell, len(cells))
	for i, c := range cells {
		var dx, dy float64
		if !c.IsAnomaly {
			x, y := g.Center(c.Col, c.Row)
			dx, dy = f.Displacement(x, y)
		}
		out[i] = warp(c, g, dx, dy)
	}
	return out
}

// WarpIntensity normalizes each cell's displacement by the largest one.
func WarpIntensity(warped []grid.WarpedCell) []float64 {
	if len(warped) == 0 {
		return []float64{}
	}

	disp := make([]float64, len(warped))
	for i, w := range warped {
		disp[i] = math.Hypot(w.Displacement())
	}

	peak := floats.Max(disp)
	if peak == 0 {
		return make([]float64, len(warped))
	}
	for i := range disp {
		disp[i] /= peak
	}
	return disp
}
