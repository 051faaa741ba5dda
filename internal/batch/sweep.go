package batch

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Sweep renders Base once per value of a lens parameter spaced evenly
// over [Min, Max]. A zero value keeps the base setting.
type Sweep struct {
	Base  Job     `yaml:"base"`
	Param string  `yaml:"param"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Steps int     `yaml:"steps"`
}

// SweepParams lists the parameters a sweep may vary.
var SweepParams = []string{"strength", "duration"}

// Jobs expands the sweep. Outputs get the step index before the extension.
func (s *Sweep) Jobs() ([]Job, error) {
	if s.Steps < 1 {
		return nil, fmt.Errorf("%w: steps must be at least 1, got %d", ErrInvalidSweep, s.Steps)
	}
	if s.Base.Output == "" {
		return nil, ErrNoOutput
	}

	step := 0.0
	if s.Steps > 1 {
		step = (s.Max - s.Min) / float64(s.Steps-1)
	}

	ext := filepath.Ext(s.Base.Output)
	stem := strings.TrimSuffix(s.Base.Output, ext)

	jobs := make([]Job, s.Steps)
	for i := range jobs {
		v := s.Min + float64(i)*step
		job := s.Base
		switch s.Param {
		case "strength":
			job.Strength = v
		case "duration":
			job.Duration = v
		default:
			return nil, fmt.Errorf("%w: unknown param %q", ErrInvalidSweep, s.Param)
		}
		job.Name = fmt.Sprintf("%s %s=%.3g", s.Base.Name, s.Param, v)
		job.Output = fmt.Sprintf("%s-%02d%s", stem, i+1, ext)
		jobs[i] = job
	}
	return jobs, nil
}
