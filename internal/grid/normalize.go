package grid

import "math"

const (
	// DefaultClipPercent is the percentile treated as full mass.
	DefaultClipPercent = 95.0

	massExponent = 0.6
)

// ApplyNonLinearMapping lifts small normalized values so that quiet days
// still carry visible mass.
func ApplyNonLinearMapping(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Pow(x, massExponent)
}

// Normalize places days on the grid and assigns mass relative to the 95th
// percentile count.
func Normalize(days []Day) []Cell {
	return NormalizeWithClip(days, DefaultClipPercent)
}

// NormalizeWithClip is Normalize with a configurable clipping percentile.
func NormalizeWithClip(days []Day, clipPercent float64) []Cell {
	if len(days) == 0 {
		return []Cell{}
	}

	maxCount := Percentile(counts(days), clipPercent)

	cells := make([]Cell, len(days))
	for i, d := range days {
		col, row := Position(i)
		var mass float64
		if d.Count != 0 && maxCount > 0 {
			mass = ApplyNonLinearMapping(math.Min(float64(d.Count), maxCount) / maxCount)
		}
		cells[i] = Cell{
			Row:   row,
			Col:   col,
			Count: d.Count,
			Level: d.Level,
			Mass:  mass,
		}
	}
	return cells
}

// CountToLevel buckets a raw count into the five calendar levels.
func CountToLevel(count int) int {
	switch {
	case count <= 0:
		return 0
	case count <= 3:
		return 1
	case count <= 7:
		return 2
	case count <= 12:
		return 3
	default:
		return 4
	}
}

// Bounds returns the largest column and row present in cells.
func Bounds[T interface{ position() (int, int) }](cells []T) (maxCol, maxRow int) {
	for _, c := range cells {
		col, row := c.position()
		maxCol = max(maxCol, col)
		maxRow = max(maxRow, row)
	}
	return maxCol, maxRow
}

func (c Cell) position() (int, int) { return c.Col, c.Row }
