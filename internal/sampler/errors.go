package sampler

import "errors"

var (
	// ErrInvalidFPS indicates a non-positive frame rate.
	ErrInvalidFPS = errors.New("sampler: fps must be positive")

	// ErrInvalidDuration indicates a non-positive loop duration.
	ErrInvalidDuration = errors.New("sampler: duration must be positive")

	// ErrNoFrames indicates fps and duration produce an empty loop.
	ErrNoFrames = errors.New("sampler: loop has no frames")
)
