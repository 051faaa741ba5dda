package render

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"io"
	"math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/gravlens/internal/sampler"
)

// GIF encodes the loop as an animated GIF that repeats forever.
type GIF struct {
	logger *zap.Logger
}

func NewGIF(logger *zap.Logger) *GIF {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GIF{logger: logger}
}

func (g *GIF) Extension() string   { return "gif" }
func (g *GIF) ContentType() string { return "image/gif" }

// FrameDelay is the per-frame delay in hundredths of a second.
func FrameDelay(fps float64) int {
	return max(1, int(math.Round(100/fps)))
}

func (g *GIF) Render(ctx context.Context, w io.Writer, scene *sampler.Scene, opts Options) error {
	if len(scene.Cells) == 0 {
		return ErrEmptyScene
	}
	opts = opts.withDefaults()

	res, err := sampler.New(scene, g.logger).Run(ctx, sampler.Config{FPS: opts.FPS, Workers: opts.Workers})
	if err != nil {
		return fmt.Errorf("sample frames: %w", err)
	}

	painter := NewPainter(scene, opts)
	width, height := painter.Size()
	images := make([]*image.Paletted, len(res.Frames))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, f := range res.Frames {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			surface := NewRasterSurface(width, height)
			painter.Paint(surface, f)
			images[i] = surface.Paletted(palette.Plan9)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	delay := FrameDelay(opts.FPS)
	anim := &gif.GIF{
		Image:     images,
		Delay:     make([]int, len(images)),
		LoopCount: 0,
	}
	for i := range anim.Delay {
		anim.Delay[i] = delay
	}

	g.logger.Debug("encoding gif",
		zap.Int("frames", len(images)),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.String("theme", opts.Theme.Name),
	)
	return gif.EncodeAll(w, anim)
}
