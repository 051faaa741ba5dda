package render

import (
	"context"
	"io"

	"github.com/san-kum/gravlens/internal/sampler"
	"github.com/san-kum/gravlens/internal/theme"
)

const (
	DefaultPadding = 20.0
	TaglineHeight  = 40.0
	DefaultTagline = "Your commits bend spacetime."
)

// Options control how a scene is rendered.
type Options struct {
	Theme   theme.Theme
	FPS     float64
	Workers int
	Padding float64
	Tagline string
}

func DefaultOptions() Options {
	return Options{
		Theme:   theme.Default,
		FPS:     sampler.DefaultFPS,
		Padding: DefaultPadding,
		Tagline: DefaultTagline,
	}
}

// Renderer encodes one loop of a scene.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, scene *sampler.Scene, opts Options) error
	Extension() string
	ContentType() string
}

// SceneOptions scales the requested warp strength by the theme's multiplier.
func SceneOptions(base sampler.Options, th theme.Theme) sampler.Options {
	opts := base
	if th.WarpMultiplier > 0 {
		opts.Strength *= th.WarpMultiplier
	}
	return opts
}

// LegacySVGOptions are the scene settings of the single-centre SVG badge.
func LegacySVGOptions() sampler.Options {
	opts := sampler.DefaultOptions()
	opts.Mode = sampler.ModeLegacy
	opts.CellSize = 12
	opts.CellGap = 3
	opts.Strength = 0.35
	opts.Duration = 4
	return opts
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Theme.Name == "" {
		o.Theme = d.Theme
	}
	if o.FPS <= 0 {
		o.FPS = d.FPS
	}
	if o.Padding <= 0 {
		o.Padding = d.Padding
	}
	if o.Tagline == "" {
		o.Tagline = d.Tagline
	}
	return o
}
