package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/gravlens/internal/theme"
)

// RasterSurface paints onto an RGBA image with anti-aliased edges.
type RasterSurface struct {
	img *image.RGBA
}

func NewRasterSurface(w, h int) *RasterSurface {
	return &RasterSurface{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (s *RasterSurface) Image() *image.RGBA { return s.img }

// Paletted quantises the image to pal without dithering.
func (s *RasterSurface) Paletted(pal color.Palette) *image.Paletted {
	b := s.img.Bounds()
	out := image.NewPaletted(b, pal)
	draw.Draw(out, b, s.img, b.Min, draw.Src)
	return out
}

func (s *RasterSurface) Clear(top, bottom lipgloss.Color) {
	b := s.img.Bounds()
	from, to := theme.Parse(top), theme.Parse(bottom)
	span := float64(b.Dy() - 1)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		t := 0.0
		if span > 0 {
			t = float64(y-b.Min.Y) / span
		}
		r, g, bl := from.BlendRgb(to, t).RGB255()
		row := image.Rect(b.Min.X, y, b.Max.X, y+1)
		draw.Draw(s.img, row, image.NewUniform(color.RGBA{R: r, G: g, B: bl, A: 255}), image.Point{}, draw.Src)
	}
}

func (s *RasterSurface) Cell(r Rect, c lipgloss.Color) {
	s.fillRect(r, theme.RGBA(c, 1))
}

func (s *RasterSurface) Bar(r Rect, c lipgloss.Color, opacity float64) {
	s.fillRect(r, theme.RGBA(c, opacity))
}

func (s *RasterSurface) Glow(cx, cy, radius float64, c lipgloss.Color, alpha float64) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	col := theme.RGBA(c, 1)
	x0, y0, x1, y1 := s.clip(cx-radius, cy-radius, cx+radius, cy+radius)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) / radius
			if d >= 1 {
				continue
			}
			s.blend(x, y, col, alpha*glowFalloff(d))
		}
	}
}

// glowFalloff interpolates the stops 1 at 0, 0.3 at 0.5 and 0 at 1.
func glowFalloff(d float64) float64 {
	if d < 0.5 {
		return 1 - 1.4*d
	}
	return 0.3 * (1 - d) / 0.5
}

func (s *RasterSurface) Label(x, y float64, text string, c lipgloss.Color, opacity float64) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text)
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(theme.RGBA(c, opacity)),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(int(math.Round(x))) - width, Y: fixed.I(int(math.Round(y)))},
	}
	d.DrawString(text)
}

func (s *RasterSurface) fillRect(r Rect, col color.NRGBA) {
	if r.W <= 0 || r.H <= 0 || col.A == 0 {
		return
	}
	bx0, by0, bx1, by1 := r.Bounds()
	x0, y0, x1, y1 := s.clip(bx0-1, by0-1, bx1+1, by1+1)

	cx, cy := r.Center()
	rad := -r.Rotation * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	radius := math.Max(0, math.Min(r.Radius, math.Min(r.W, r.H)/2))

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			lx := dx*cos - dy*sin
			ly := dx*sin + dy*cos
			cov := 0.5 - roundedRectDistance(lx, ly, r.W/2, r.H/2, radius)
			if cov <= 0 {
				continue
			}
			s.blend(x, y, col, math.Min(1, cov))
		}
	}
}

// roundedRectDistance is the signed distance from (x,y) to a rounded box
// centred on the origin.
func roundedRectDistance(x, y, hw, hh, r float64) float64 {
	qx := math.Abs(x) - (hw - r)
	qy := math.Abs(y) - (hh - r)
	outside := math.Hypot(math.Max(qx, 0), math.Max(qy, 0))
	inside := math.Min(math.Max(qx, qy), 0)
	return outside + inside - r
}

func (s *RasterSurface) clip(x0, y0, x1, y1 float64) (int, int, int, int) {
	b := s.img.Bounds()
	return max(b.Min.X, int(math.Floor(x0))),
		max(b.Min.Y, int(math.Floor(y0))),
		min(b.Max.X, int(math.Ceil(x1))),
		min(b.Max.Y, int(math.Ceil(y1)))
}

// blend composites col over the pixel with the given coverage.
func (s *RasterSurface) blend(x, y int, col color.NRGBA, coverage float64) {
	a := float64(col.A) / 255 * coverage
	if a <= 0 {
		return
	}
	i := s.img.PixOffset(x, y)
	px := s.img.Pix[i : i+4 : i+4]
	px[0] = uint8(float64(col.R)*a + float64(px[0])*(1-a) + 0.5)
	px[1] = uint8(float64(col.G)*a + float64(px[1])*(1-a) + 0.5)
	px[2] = uint8(float64(col.B)*a + float64(px[2])*(1-a) + 0.5)
	px[3] = uint8(255*a + float64(px[3])*(1-a) + 0.5)
}
