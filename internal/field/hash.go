package field

import (
	"math"

	"github.com/san-kum/gravlens/internal/grid"
)

const (
	minRotation = 1.0
	maxRotation = 2.0

	// DefaultMaxJitter is the jitter amplitude in pixels at full
	// interference.
	DefaultMaxJitter = 0.8

	jitterSalt = 0x9e3779b9
)

func cellHash(row, col int, salt uint32) uint32 {
	h := uint32(row)*73856093 ^ uint32(col)*19349663 ^ salt
	h ^= h >> 16
	h *= 0x45d9f3b
	h ^= h >> 16
	h *= 0x45d9f3b
	h ^= h >> 16
	return h
}

// CellRotation returns a stable tilt in degrees for the cell at (row,col),
// with magnitude in [1,2] and a hashed sign.
func CellRotation(row, col int) float64 {
	h := cellHash(row, col, 0)
	mag := minRotation + (maxRotation-minRotation)*float64(h&0xffff)/0xffff
	if h&0x10000 != 0 {
		return -mag
	}
	return mag
}

// InterferenceJitter returns a stable per-cell offset whose magnitude is at
// most maxJitter·progress·level.
func InterferenceJitter(row, col int, progress, level, maxJitter float64) grid.Point {
	amp := maxJitter * progress * level
	if amp <= 0 {
		return grid.Point{}
	}

	h := cellHash(row, col, jitterSalt)
	angle := float64(h&0xffff) / 0x10000 * 2 * math.Pi
	reach := 0.5 + 0.5*float64(h>>16)/0xffff
	return grid.Point{
		X: math.Cos(angle) * amp * reach,
		Y: math.Sin(angle) * amp * reach,
	}
}
