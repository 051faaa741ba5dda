package batch

import "errors"

var (
	ErrEmptyScenario = errors.New("batch: scenario has no jobs")
	ErrNoOutput      = errors.New("batch: job has no output")
	ErrNoSource      = errors.New("batch: user job without a day source")
	ErrInvalidSweep  = errors.New("batch: invalid sweep")
)
