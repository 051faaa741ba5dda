package field

import "github.com/san-kum/gravlens/internal/grid"

// Epsilon softens squared distances so coincident points never divide by zero.
const Epsilon = 0.01

// Geometry describes the pixel layout of the calendar grid.
type Geometry struct {
	CellSize float64
	CellGap  float64
}

// Step is the distance between the origins of adjacent cells.
func (g Geometry) Step() float64 {
	return g.CellSize + g.CellGap
}

// Origin returns the top-left pixel of the cell at (col,row).
func (g Geometry) Origin(col, row int) (x, y float64) {
	step := g.Step()
	return float64(col) * step, float64(row) * step
}

// Center returns the pixel centre of the cell at (col,row).
func (g Geometry) Center(col, row int) (x, y float64) {
	ox, oy := g.Origin(col, row)
	return ox + g.CellSize/2, oy + g.CellSize/2
}

// PointCenter maps a fractional grid point to pixels.
func (g Geometry) PointCenter(p grid.Point) (x, y float64) {
	step := g.Step()
	return p.X*step + g.CellSize/2, p.Y*step + g.CellSize/2
}

// Size returns the pixel extent of a grid with the given bounds.
func (g Geometry) Size(maxCol, maxRow int) (w, h float64) {
	step := g.Step()
	return float64(maxCol+1) * step, float64(maxRow+1) * step
}
