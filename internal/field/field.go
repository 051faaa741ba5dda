package field

import "math"

// Source is a point that pushes cells away from itself.
type Source struct {
	X, Y float64
	Mass float64
	// Weight scales the source's contribution, typically its animation
	// progress. Sources with zero weight are ignored.
	Weight float64
}

// Kernel returns the factor applied to the separation vector of src at the
// softened squared distance r2.
type Kernel func(src Source, r2 float64) float64

// Field accumulates displacement from a set of sources.
type Field struct {
	Sources []Source
	Kernel  Kernel

	// Bounded restricts sources to distances in (0, Radius].
	Bounded bool
	Radius  float64

	// ScaleX and ScaleY stretch the contribution per axis. Zero means 1.
	ScaleX, ScaleY float64

	// Clamped limits the magnitude of the summed vector to MaxDisplacement.
	Clamped         bool
	MaxDisplacement float64
}

func (f *Field) scale() (sx, sy float64) {
	sx, sy = f.ScaleX, f.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

// Displacement returns the displacement of a point at pixel (x,y).
//
// Weighted contributions are summed and the result is clamped once to
// MaxDisplacement times the largest active weight, so scaling every weight
// by p scales the clamped result by p and the output is continuous in each
// weight.
func (f *Field) Displacement(x, y float64) (dx, dy float64) {
	sx, sy := f.scale()

	var peak float64
	for _, src := range f.Sources {
		if src.Weight == 0 {
			continue
		}
		ddx := x - src.X
		ddy := y - src.Y

		var r2 float64
		if f.Bounded {
			dist := math.Hypot(ddx, ddy)
			if dist > f.Radius || dist == 0 {
				continue
			}
			r2 = dist*dist + Epsilon
		} else {
			r2 = ddx*ddx + ddy*ddy + Epsilon
		}

		factor := f.Kernel(src, r2) * src.Weight
		dx += ddx * factor * sx
		dy += ddy * factor * sy
		peak = math.Max(peak, math.Abs(src.Weight))
	}

	if !f.Clamped {
		return dx, dy
	}
	return clamp(dx, dy, f.MaxDisplacement*peak)
}

func clamp(dx, dy, limit float64) (float64, float64) {
	mag := math.Hypot(dx, dy)
	if mag <= limit {
		return dx, dy
	}
	return dx / mag * limit, dy / mag * limit
}

// InverseSquare is the mass-squared repulsion kernel k·m²/r².
func InverseSquare(k float64) Kernel {
	return func(src Source, r2 float64) float64 {
		return k * src.Mass * src.Mass / r2
	}
}

// Capped limits the factor returned by kernel to maxFactor.
func Capped(kernel Kernel, maxFactor float64) Kernel {
	return func(src Source, r2 float64) float64 {
		return math.Min(kernel(src, r2), maxFactor)
	}
}
