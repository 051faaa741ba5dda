// Package timeline maps a looping animation clock to progress values in
// [0,1] for each animation channel.
//
// Two families exist. The legacy cycle splits the loop into five phases by
// ratio of the duration and drives every cell at once. The anomaly cycle
// runs on absolute seconds and lets each lens source fire on its own delay
// while sharing a common hold and restore window.
//
// All functions are pure; the same (time, duration, delay) always yields the
// same value, and time is folded into [0, duration) first so negative and
// past-the-end times loop.
package timeline

import (
	"math"

	"github.com/san-kum/gravlens/internal/easing"
)

// Legacy phase boundaries as fractions of the loop.
const (
	BrightenStart = 0.25
	WarpStart     = 0.325
	HoldStart     = 0.625
	RestoreStart  = 0.80

	brightenSpan = 0.075
	warpSpan     = 0.3
	restoreSpan  = 0.20
)

// Anomaly cycle timings in seconds.
const (
	FireTime          = 2.0
	WarpLag           = 0.5
	WarpRamp          = 2.0
	BrightnessRamp    = 1.2
	AnomalyRestore    = 11.0
	InterferenceStart = 8.0
	InterferenceEnd   = 11.0

	// DefaultMaxDelay caps the stagger between the first and last source.
	DefaultMaxDelay = 6.0
)

// Fold wraps t into [0, duration).
func Fold(t, duration float64) float64 {
	return math.Mod(math.Mod(t, duration)+duration, duration)
}

func ratio(t, duration float64) (float64, bool) {
	if duration <= 0 {
		return 0, false
	}
	return Fold(t, duration) / duration, true
}

// WarpProgress is the legacy warp channel: rest, brightening, eased
// warp-in, hold, eased warp-out.
func WarpProgress(t, duration float64) float64 {
	r, ok := ratio(t, duration)
	if !ok {
		return 0
	}

	switch {
	case r < WarpStart:
		return 0
	case r < HoldStart:
		return easing.CubicBezierEase((r - WarpStart) / warpSpan)
	case r < RestoreStart:
		return 1
	default:
		return 1 - easing.CubicBezierEase((r-RestoreStart)/restoreSpan)
	}
}

// BrightnessProgress is the legacy brightness channel. It ramps while the
// warp is still at rest and holds through the warp hold.
func BrightnessProgress(t, duration float64) float64 {
	r, ok := ratio(t, duration)
	if !ok {
		return 0
	}

	switch {
	case r < BrightenStart:
		return 0
	case r < WarpStart:
		return easing.CubicBezierEase((r - BrightenStart) / brightenSpan)
	case r < RestoreStart:
		return 1
	default:
		return 1 - easing.CubicBezierEase((r-RestoreStart)/restoreSpan)
	}
}

// envelope is an eased ramp from start over rampLen seconds, a hold, and an
// eased restore from restoreStart to end.
type envelope struct {
	start, rampLen    float64
	restoreStart, end float64
}

func (e envelope) rise(t float64) float64 {
	if t < e.start {
		return 0
	}
	return easing.CubicBezierEase((t - e.start) / e.rampLen)
}

func (e envelope) at(t float64) float64 {
	if t < e.restoreStart {
		return e.rise(t)
	}
	if e.end <= e.restoreStart {
		return 0
	}
	// a ramp still running at restoreStart restores from where it got to
	peak := e.rise(e.restoreStart)
	return peak * (1 - easing.CubicBezierEase((t-e.restoreStart)/(e.end-e.restoreStart)))
}

// AnomalyWarpProgress is the warp channel of a single lens source that fires
// delay seconds after the base fire time.
func AnomalyWarpProgress(t, duration, delay float64) float64 {
	if duration <= 0 {
		return 0
	}
	fire := FireTime + delay
	return envelope{
		start:        fire + WarpLag,
		rampLen:      WarpRamp,
		restoreStart: AnomalyRestore,
		end:          duration,
	}.at(Fold(t, duration))
}

// AnomalyBrightnessProgress is the brightness channel of a single lens
// source. It starts at the fire time, ahead of the warp.
func AnomalyBrightnessProgress(t, duration, delay float64) float64 {
	if duration <= 0 {
		return 0
	}
	return envelope{
		start:        FireTime + delay,
		rampLen:      BrightnessRamp,
		restoreStart: AnomalyRestore,
		end:          duration,
	}.at(Fold(t, duration))
}

// InterferenceProgress is a half-sine pulse over [8s, 11s) of the loop.
func InterferenceProgress(t, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	ft := Fold(t, duration)
	if ft < InterferenceStart || ft >= InterferenceEnd {
		return 0
	}
	return math.Sin(math.Pi * (ft - InterferenceStart) / (InterferenceEnd - InterferenceStart))
}

// ActivationDelay staggers a source by its column, from 0 at the first
// column to maxDelay at maxCol.
func ActivationDelay(col, maxCol int, maxDelay float64) float64 {
	if maxCol == 0 {
		return 0
	}
	return float64(col) / float64(maxCol) * maxDelay
}
