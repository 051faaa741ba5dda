package render

import "errors"

var (
	ErrUnknownFormat = errors.New("render: unknown format")
	ErrEmptyScene    = errors.New("render: scene has no cells")
)
