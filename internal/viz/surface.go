package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/gravlens/internal/render"
	"github.com/san-kum/gravlens/internal/theme"
)

// cellCoverage is the share of a sub-pixel a cell must cover to paint it.
const cellCoverage = 0.4

type label struct {
	row, col int
	text     string
	color    lipgloss.Color
}

// TermSurface rasterises draw calls onto a grid of half-block characters.
// Each character holds two vertically stacked sub-pixels.
type TermSurface struct {
	cols, rows int
	scale      float64
	px         [][]colorful.Color
	labels     []label
}

// NewTermSurface covers a width×height pixel canvas with sub-pixels of
// scale pixels.
func NewTermSurface(width, height int, scale float64) *TermSurface {
	if scale <= 0 {
		scale = 1
	}
	cols := int(math.Ceil(float64(width) / scale))
	sub := int(math.Ceil(float64(height) / scale))
	if sub%2 == 1 {
		sub++
	}
	px := make([][]colorful.Color, sub)
	for i := range px {
		px[i] = make([]colorful.Color, cols)
	}
	return &TermSurface{cols: cols, rows: sub / 2, scale: scale, px: px}
}

// Size returns the surface size in characters.
func (s *TermSurface) Size() (cols, rows int) { return s.cols, s.rows }

// At returns the colour of a sub-pixel.
func (s *TermSurface) At(x, y int) colorful.Color { return s.px[y][x] }

func (s *TermSurface) Clear(top, bottom lipgloss.Color) {
	from, to := theme.Parse(top), theme.Parse(bottom)
	span := float64(len(s.px) - 1)
	for y := range s.px {
		t := 0.0
		if span > 0 {
			t = float64(y) / span
		}
		c := from.BlendRgb(to, t)
		for x := range s.px[y] {
			s.px[y][x] = c
		}
	}
	s.labels = s.labels[:0]
}

func (s *TermSurface) Cell(r render.Rect, c lipgloss.Color) {
	s.fill(r, theme.Parse(c), 1, cellCoverage)
}

func (s *TermSurface) Bar(r render.Rect, c lipgloss.Color, opacity float64) {
	s.fill(r, theme.Parse(c), opacity, 0)
}

func (s *TermSurface) Glow(cx, cy, radius float64, c lipgloss.Color, alpha float64) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	col := theme.Parse(c)
	for y := range s.px {
		for x := range s.px[y] {
			d := math.Hypot((float64(x)+0.5)*s.scale-cx, (float64(y)+0.5)*s.scale-cy) / radius
			if d >= 1 {
				continue
			}
			falloff := 0.3 * (1 - d) / 0.5
			if d < 0.5 {
				falloff = 1 - 1.4*d
			}
			s.px[y][x] = s.px[y][x].BlendRgb(col, alpha*falloff)
		}
	}
}

func (s *TermSurface) Label(x, y float64, text string, c lipgloss.Color, opacity float64) {
	row := min(s.rows-1, max(0, int(y/s.scale)/2))
	col := max(0, int(x/s.scale)-len(text))
	s.labels = append(s.labels, label{row: row, col: col, text: text, color: c})
}

// fill paints sub-pixels whose area overlaps r by more than coverage.
// Rotation is ignored at this resolution.
func (s *TermSurface) fill(r render.Rect, c colorful.Color, opacity, coverage float64) {
	if r.W <= 0 || r.H <= 0 || opacity <= 0 {
		return
	}
	x0 := max(0, int(r.X/s.scale))
	y0 := max(0, int(r.Y/s.scale))
	x1 := min(s.cols, int(math.Ceil((r.X+r.W)/s.scale)))
	y1 := min(len(s.px), int(math.Ceil((r.Y+r.H)/s.scale)))
	area := s.scale * s.scale

	for y := y0; y < y1; y++ {
		oy := overlap(r.Y, r.Y+r.H, float64(y)*s.scale, float64(y+1)*s.scale)
		for x := x0; x < x1; x++ {
			ox := overlap(r.X, r.X+r.W, float64(x)*s.scale, float64(x+1)*s.scale)
			if ox*oy/area <= coverage {
				continue
			}
			s.px[y][x] = s.px[y][x].BlendRgb(c, math.Min(1, opacity))
		}
	}
}

func overlap(a0, a1, b0, b1 float64) float64 {
	return math.Max(0, math.Min(a1, b1)-math.Max(a0, b0))
}

func (s *TermSurface) String() string {
	text := make([][]rune, s.rows)
	fg := make([][]lipgloss.Color, s.rows)
	for _, l := range s.labels {
		if text[l.row] == nil {
			text[l.row] = make([]rune, s.cols)
			fg[l.row] = make([]lipgloss.Color, s.cols)
		}
		for i, ch := range []rune(l.text) {
			if col := l.col + i; col < s.cols {
				text[l.row][col] = ch
				fg[l.row][col] = l.color
			}
		}
	}

	var b strings.Builder
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			top, bottom := s.px[2*row][col], s.px[2*row+1][col]
			if text[row] != nil && text[row][col] != 0 {
				bg := lipgloss.Color(top.BlendRgb(bottom, 0.5).Hex())
				b.WriteString(lipgloss.NewStyle().Foreground(fg[row][col]).Background(bg).Render(string(text[row][col])))
				continue
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top.Hex())).
				Background(lipgloss.Color(bottom.Hex())).
				Render("▀"))
		}
		if row < s.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

var _ render.Surface = (*TermSurface)(nil)
