package render

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gravlens/internal/sampler"
	"github.com/san-kum/gravlens/internal/theme"
)

const (
	peakMomentThreshold = 0.95

	anomalyScale  = 0.02
	anomalyRadius = 6.0

	interferenceScale  = 0.015
	interferenceRadius = 4.0

	glowReach     = 4.0
	glowAlpha     = 0.12
	glowBoost     = 0.3
	glowGrowth    = 0.15
	barHeight     = 3.0
	barOffset     = 8.0
	labelBaseline = 8.0
)

// Painter draws frames of one scene.
type Painter struct {
	scene   *sampler.Scene
	theme   theme.Theme
	padding float64
	tagline string
}

func NewPainter(scene *sampler.Scene, opts Options) *Painter {
	opts = opts.withDefaults()
	return &Painter{
		scene:   scene,
		theme:   opts.Theme,
		padding: opts.Padding,
		tagline: opts.Tagline,
	}
}

func (p *Painter) Theme() theme.Theme { return p.theme }

// SetTheme swaps the palette for subsequent frames.
func (p *Painter) SetTheme(th theme.Theme) { p.theme = th }

// Size returns the canvas size in pixels.
func (p *Painter) Size() (w, h int) {
	gw, gh := p.scene.Geometry.Size(p.scene.MaxCol, p.scene.MaxRow)
	return int(math.Ceil(gw + 2*p.padding)), int(math.Ceil(gh + 2*p.padding + TaglineHeight))
}

// Paint draws f onto s.
func (p *Painter) Paint(s Surface, f *sampler.Frame) {
	w, h := p.Size()
	s.Clear(p.theme.BackgroundTop, p.theme.BackgroundBottom)

	for i := range f.Cells {
		r, c := p.CellRect(f, i)
		s.Cell(r, c)
	}

	p.paintGlow(s, f)
	p.paintProgress(s, f)

	s.Label(float64(w)-p.padding, float64(h)-labelBaseline, p.tagline, p.theme.Text, p.theme.TextOpacity)
}

// CellRect returns where and in which colour cell i of f is drawn.
func (p *Painter) CellRect(f *sampler.Frame, i int) (Rect, lipgloss.Color) {
	sc := p.scene
	c := f.Cells[i]
	size := sc.CellSize

	if !sc.InZone[i] {
		return Rect{
			X: c.OriginalX + p.padding, Y: c.OriginalY + p.padding,
			W: size, H: size, Radius: sc.CornerRadius,
		}, p.theme.Level(c.Level)
	}

	x, y := c.WarpedX+p.padding, c.WarpedY+p.padding
	fill := p.CellColor(f, i)

	if b := f.Brightness[i]; c.IsAnomaly && b > 0 {
		scaled := size * (1 + anomalyScale*b)
		off := (scaled - size) / 2
		return Rect{
			X: x - off, Y: y - off, W: scaled, H: scaled,
			Radius:   sc.CornerRadius + (anomalyRadius-sc.CornerRadius)*b,
			Rotation: sc.Rotation[i] * f.WarpProgress[i],
		}, fill
	}

	j := f.Jitter[i]
	if k := f.Interference * sc.Interference[i]; k > 0 {
		scaled := size * (1 + interferenceScale*k)
		off := (scaled - size) / 2
		return Rect{
			X: x - off + j.X, Y: y - off + j.Y, W: scaled, H: scaled,
			Radius: sc.CornerRadius + (interferenceRadius-sc.CornerRadius)*k,
		}, fill
	}
	return Rect{X: x + j.X, Y: y + j.Y, W: size, H: size, Radius: sc.CornerRadius}, fill
}

// CellColor returns the animated fill of cell i in f.
func (p *Painter) CellColor(f *sampler.Frame, i int) lipgloss.Color {
	th := p.theme
	c := f.Cells[i]
	base := th.Level(c.Level)
	wp := f.WarpProgress[i]

	if c.IsAnomaly {
		fill := theme.AnomalyColor(base, th.AnomalyAccent, f.Brightness[i], th.PeakBrightnessBoost)
		switch {
		case f.Interference > peakMomentThreshold:
			fill = th.PeakMoment
		case f.Interference > 0:
			fill = theme.Blend(fill, th.PeakMoment, f.Interference*0.5)
		}
		return theme.AdjustBrightness(fill, 0.05*wp)
	}

	fg := th.FieldGradient
	if fg == nil {
		return base
	}
	fill := theme.AnomalyColor(base, fg.PeakColor, p.scene.MaxIntensity[i]*wp, fg.Intensity)
	fill = theme.ShiftHue(fill, 7*wp)
	fill = theme.AdjustBrightness(fill, (-0.08+th.Dimming)*wp)
	if k := f.Interference * p.scene.Interference[i]; k > 0 {
		fill = theme.ShiftHue(fill, 5*k)
		fill = theme.AdjustBrightness(fill, 0.25*k)
	}
	return fill
}

// GlowAt returns the glow of source i in f. Radius is zero when the source
// is dark.
func (p *Painter) GlowAt(f *sampler.Frame, i int) (cx, cy, radius, alpha float64) {
	b := f.Brightness[i]
	if b <= 0 {
		return 0, 0, 0, 0
	}
	c := f.Cells[i]
	cx, cy = p.scene.Geometry.Center(c.Col, c.Row)
	radius = p.scene.Geometry.Step() * glowReach * (1 + glowGrowth*f.Interference)
	alpha = b * glowAlpha * (1 + glowBoost*f.Interference)
	return cx + p.padding, cy + p.padding, radius, alpha
}

func (p *Painter) paintGlow(s Surface, f *sampler.Frame) {
	for _, i := range p.scene.Sources {
		cx, cy, r, a := p.GlowAt(f, i)
		if r <= 0 {
			continue
		}
		s.Glow(cx, cy, r, p.theme.AnomalyAccent, a)
	}
}

// ProgressRects returns the track and the filled part of the loop progress
// bar at time t. The fill has zero width at t=0.
func (p *Painter) ProgressRects(t float64) (track, fill Rect) {
	gw, gh := p.scene.Geometry.Size(p.scene.MaxCol, p.scene.MaxRow)
	y := gh + p.padding + barOffset
	track = Rect{X: p.padding, Y: y, W: gw, H: barHeight, Radius: barHeight / 2}
	fill = track
	if p.scene.Duration > 0 {
		fill.W = gw * math.Max(0, math.Min(1, t/p.scene.Duration))
	} else {
		fill.W = 0
	}
	return track, fill
}

func (p *Painter) paintProgress(s Surface, f *sampler.Frame) {
	track, fill := p.ProgressRects(f.Time)
	s.Bar(track, p.theme.Text, 0.15)
	if fill.W > 0 {
		s.Bar(fill, p.theme.AnomalyAccent, 0.6)
	}
}
