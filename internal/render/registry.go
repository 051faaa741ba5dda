package render

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

type Registry struct {
	renderers map[string]func(*zap.Logger) Renderer
}

func NewRegistry() *Registry {
	r := &Registry{
		renderers: make(map[string]func(*zap.Logger) Renderer),
	}

	r.renderers["svg"] = func(l *zap.Logger) Renderer { return NewSVG(l) }
	r.renderers["gif"] = func(l *zap.Logger) Renderer { return NewGIF(l) }

	return r
}

// Register adds or replaces a format.
func (r *Registry) Register(name string, fn func(*zap.Logger) Renderer) {
	r.renderers[name] = fn
}

func (r *Registry) Get(name string, logger *zap.Logger) (Renderer, error) {
	fn, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	return fn(logger), nil
}

func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
