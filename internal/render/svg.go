package render

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/san-kum/gravlens/internal/sampler"
)

// DefaultKeyframes is the number of samples per loop in SVG animations.
const DefaultKeyframes = 56

// SVG writes the loop as CSS keyframe animations. Cells outside the lens
// zone are emitted as static rects.
type SVG struct {
	Keyframes int
	logger    *zap.Logger
}

func NewSVG(logger *zap.Logger) *SVG {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SVG{Keyframes: DefaultKeyframes, logger: logger}
}

func (s *SVG) Extension() string   { return "svg" }
func (s *SVG) ContentType() string { return "image/svg+xml" }

func (s *SVG) Render(ctx context.Context, w io.Writer, scene *sampler.Scene, opts Options) error {
	if len(scene.Cells) == 0 {
		return ErrEmptyScene
	}
	opts = opts.withDefaults()

	keyframes := s.Keyframes
	if keyframes <= 0 {
		keyframes = DefaultKeyframes
	}
	cfg := sampler.Config{Frames: keyframes, Workers: opts.Workers}
	res, err := sampler.New(scene, s.logger).Run(ctx, cfg)
	if err != nil {
		return fmt.Errorf("sample keyframes: %w", err)
	}

	doc := buildSVG(NewPainter(scene, opts), scene, res.Frames)
	s.logger.Debug("writing svg",
		zap.Int("keyframes", len(res.Frames)),
		zap.Int("bytes", len(doc)),
	)
	_, err = io.WriteString(w, doc)
	return err
}

func buildSVG(p *Painter, scene *sampler.Scene, frames []*sampler.Frame) string {
	th := p.Theme()
	width, height := p.Size()
	dur := fmt.Sprintf("%gs", scene.Duration)

	var style, body strings.Builder

	for i, c := range scene.Cells {
		if !scene.InZone[i] {
			r, fill := p.CellRect(frames[0], i)
			fmt.Fprintf(&body, `<rect x="%.2f" y="%.2f" width="%g" height="%g" rx="%g" fill="%s"/>`+"\n",
				r.X, r.Y, r.W, r.H, r.Radius, fill)
			continue
		}

		fmt.Fprintf(&style, "@keyframes warp-%d {\n", i)
		for _, f := range frames {
			r, _ := p.CellRect(f, i)
			fmt.Fprintf(&style, "  %s { transform: %s; }\n", percent(f.Time, scene.Duration), cellTransform(r, scene.CellSize))
		}
		r0, _ := p.CellRect(frames[0], i)
		fmt.Fprintf(&style, "  100%% { transform: %s; }\n}\n", cellTransform(r0, scene.CellSize))

		anims := fmt.Sprintf("warp-%d %s linear infinite", i, dur)
		if c.IsAnomaly || th.FieldGradient != nil {
			fmt.Fprintf(&style, "@keyframes color-%d {\n", i)
			for _, f := range frames {
				fmt.Fprintf(&style, "  %s { fill: %s; }\n", percent(f.Time, scene.Duration), p.CellColor(f, i))
			}
			fmt.Fprintf(&style, "  100%% { fill: %s; }\n}\n", p.CellColor(frames[0], i))
			anims += fmt.Sprintf(", color-%d %s linear infinite", i, dur)
		}

		fmt.Fprintf(&body, `<rect class="cell" width="%g" height="%g" rx="%g" fill="%s" style="animation: %s;"/>`+"\n",
			scene.CellSize, scene.CellSize, scene.CornerRadius, th.Level(c.Level), anims)
	}

	for _, i := range scene.Sources {
		cx, cy := scene.Geometry.Center(scene.Cells[i].Col, scene.Cells[i].Row)
		base := scene.Geometry.Step() * glowReach

		fmt.Fprintf(&style, "@keyframes glow-%d {\n", i)
		for _, f := range frames {
			_, _, r, a := p.GlowAt(f, i)
			fmt.Fprintf(&style, "  %s { opacity: %.4f; transform: scale(%.4f); }\n",
				percent(f.Time, scene.Duration), a, math.Max(1, r/base))
		}
		fmt.Fprintf(&style, "  100%% { opacity: 0; transform: scale(1); }\n}\n")

		fmt.Fprintf(&body, `<circle class="glow" cx="%.2f" cy="%.2f" r="%.2f" fill="url(#glow)" opacity="0" style="animation: glow-%d %s linear infinite;"/>`+"\n",
			cx+p.padding, cy+p.padding, base, i, dur)
	}

	track, fill := p.ProgressRects(0)
	fmt.Fprintf(&style, "@keyframes progress {\n  0%% { transform: scaleX(0); }\n  100%% { transform: scaleX(1); }\n}\n")
	fmt.Fprintf(&body, `<rect x="%g" y="%.2f" width="%.2f" height="%g" rx="%g" fill="%s" opacity="0.15"/>`+"\n",
		track.X, track.Y, track.W, track.H, track.Radius, th.Text)
	fmt.Fprintf(&body, `<rect class="bar" x="%g" y="%.2f" width="%.2f" height="%g" rx="%g" fill="%s" opacity="0.6" style="animation: progress %s linear infinite;"/>`+"\n",
		fill.X, fill.Y, track.W, fill.H, fill.Radius, th.AnomalyAccent, dur)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)
	sb.WriteString("<defs>\n")
	fmt.Fprintf(&sb, `<linearGradient id="bg" x1="0" y1="0" x2="0" y2="1"><stop offset="0" stop-color="%s"/><stop offset="1" stop-color="%s"/></linearGradient>`+"\n",
		th.BackgroundTop, th.BackgroundBottom)
	fmt.Fprintf(&sb, `<radialGradient id="glow"><stop offset="0" stop-color="%[1]s" stop-opacity="1"/><stop offset="0.5" stop-color="%[1]s" stop-opacity="0.3"/><stop offset="1" stop-color="%[1]s" stop-opacity="0"/></radialGradient>`+"\n",
		th.AnomalyAccent)
	sb.WriteString("</defs>\n<style>\n")
	sb.WriteString(".cell, .glow { transform-box: fill-box; transform-origin: center; }\n")
	sb.WriteString(".bar { transform-box: fill-box; transform-origin: left; }\n")
	sb.WriteString(style.String())
	sb.WriteString("</style>\n")
	fmt.Fprintf(&sb, `<rect width="%d" height="%d" fill="url(#bg)" rx="4" ry="4"/>`+"\n", width, height)
	sb.WriteString(body.String())
	fmt.Fprintf(&sb, `<text x="%g" y="%g" fill="%s" opacity="%g" font-family="Inter, system-ui, sans-serif" font-size="10" font-weight="300" letter-spacing="0.08em" text-anchor="end">%s</text>`+"\n",
		float64(width)-p.padding, float64(height)-labelBaseline, th.Text, th.TextOpacity, escapeText(p.tagline))
	sb.WriteString("</svg>\n")
	return sb.String()
}

// cellTransform maps a cell-sized rect at the origin onto r.
func cellTransform(r Rect, size float64) string {
	cx, cy := r.Center()
	t := fmt.Sprintf("translate(%.2fpx, %.2fpx)", cx-size/2, cy-size/2)
	if r.Rotation != 0 {
		t += fmt.Sprintf(" rotate(%.3fdeg)", r.Rotation)
	}
	if size > 0 && r.W != size {
		t += fmt.Sprintf(" scale(%.4f)", r.W/size)
	}
	return t
}

func percent(t, duration float64) string {
	return fmt.Sprintf("%.2f%%", t/duration*100)
}

func escapeText(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
