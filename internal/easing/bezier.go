// Package easing implements CSS-style cubic Bézier timing curves.
package easing

import "math"

const (
	newtonIterations = 8
	minSlope         = 1e-10
)

// Curve is a cubic Bézier timing function anchored at (0,0) and (1,1).
type Curve struct {
	P1x, P1y float64
	P2x, P2y float64
}

// Standard is cubic-bezier(0.4, 0.0, 0.2, 1).
var Standard = Curve{P1x: 0.4, P1y: 0, P2x: 0.2, P2y: 1}

func (c Curve) x(u float64) float64 {
	return 3*c.P1x*(1-u)*(1-u)*u + 3*c.P2x*(1-u)*u*u + u*u*u
}

func (c Curve) dx(u float64) float64 {
	return 3*c.P1x*(1-3*u+2*u*u) + 3*c.P2x*(2*u-3*u*u) + 3*u*u
}

func (c Curve) y(u float64) float64 {
	return 3*c.P1y*(1-u)*(1-u)*u + 3*c.P2y*(1-u)*u*u + u*u*u
}

// Ease maps progress t to eased progress. Inputs outside (0,1) saturate.
func (c Curve) Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	// solve x(u) = t
	u := t
	for i := 0; i < newtonIterations; i++ {
		slope := c.dx(u)
		if math.Abs(slope) < minSlope {
			break
		}
		u -= (c.x(u) - t) / slope
		u = math.Max(0, math.Min(1, u))
	}
	return c.y(u)
}

// CubicBezierEase eases t with the Standard curve.
func CubicBezierEase(t float64) float64 {
	return Standard.Ease(t)
}
