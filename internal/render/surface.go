package render

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Rect is a rounded rectangle in pixels, rotated about its centre.
type Rect struct {
	X, Y, W, H float64
	Radius     float64
	// Rotation is in degrees, clockwise.
	Rotation float64
}

// Center returns the midpoint of r.
func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Bounds returns the axis-aligned box enclosing r after rotation.
func (r Rect) Bounds() (x0, y0, x1, y1 float64) {
	cx, cy := r.Center()
	rad := r.Rotation * math.Pi / 180
	sin, cos := math.Abs(math.Sin(rad)), math.Abs(math.Cos(rad))
	hw := (r.W*cos + r.H*sin) / 2
	hh := (r.W*sin + r.H*cos) / 2
	return cx - hw, cy - hh, cx + hw, cy + hh
}

// Surface receives the draw calls of one frame.
type Surface interface {
	// Clear fills the surface with a vertical gradient.
	Clear(top, bottom lipgloss.Color)
	// Cell fills an opaque calendar cell.
	Cell(r Rect, c lipgloss.Color)
	// Glow paints a radial falloff: alpha at the centre, 30% of it at half
	// the radius, transparent at the edge.
	Glow(cx, cy, radius float64, c lipgloss.Color, alpha float64)
	// Bar fills a translucent rectangle.
	Bar(r Rect, c lipgloss.Color, opacity float64)
	// Label draws text right-aligned at x with its baseline at y.
	Label(x, y float64, text string, c lipgloss.Color, opacity float64)
}
