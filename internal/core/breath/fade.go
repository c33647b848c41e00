package breath

import "time"

// FadeConfig holds the user supplied label fade lengths. They may exceed
// what a phase can hold.
type FadeConfig struct {
	FadeIn  time.Duration
	FadeOut time.Duration
}

// FadeWindow is the clamped pair of fade windows of one phase.
// In and Out are each at most half the phase, so they never overlap.
type FadeWindow struct {
	Duration time.Duration
	In       time.Duration
	Out      time.Duration
}

// NewFadeWindow clamps the configured fades to [0, duration/2]. The
// duration itself is floored to MinPhaseDuration first.
func NewFadeWindow(duration time.Duration, config FadeConfig) FadeWindow {
	duration = floorDuration(duration)
	half := duration / 2
	return FadeWindow{
		Duration: duration,
		In:       clampDuration(config.FadeIn, 0, half),
		Out:      clampDuration(config.FadeOut, 0, half),
	}
}

// FadeOutStart is the elapsed time at which the trailing fade begins.
func (window FadeWindow) FadeOutStart() time.Duration {
	return window.Duration - window.Out
}

// InitialAlpha is the label opacity at the first instant of the phase.
func (window FadeWindow) InitialAlpha() float64 {
	if window.In > 0 {
		return 0
	}
	return 1
}

func clampDuration(value, low, high time.Duration) time.Duration {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
