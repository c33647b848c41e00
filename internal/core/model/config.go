package model

import (
	"math"
	"time"

	"campuszen/internal/core/easing"
)

// BreathConfig contains the settings of one breathing run.
// It is constructed once and treated as immutable while the guide runs.
type BreathConfig struct {
	MinScale   float64
	MaxScale   float64
	AlphaAtMin float64
	AlphaAtMax float64

	InhaleDuration  time.Duration
	HoldAfterInhale time.Duration
	ExhaleDuration  time.Duration
	HoldAfterExhale time.Duration

	InhaleCurve easing.Curve
	ExhaleCurve easing.Curve

	InhaleLabel string
	ExhaleLabel string

	LabelFadeInDuration  time.Duration
	LabelFadeOutDuration time.Duration

	UseUnscaledTime bool
	PlayOnAttach    bool

	// CarryRemainder applies time past a phase boundary to the following
	// phases instead of dropping it.
	CarryRemainder bool
}

// DefaultBreathConfig returns the calm 4-0.5-4-0.5 pattern.
func DefaultBreathConfig() BreathConfig {
	return BreathConfig{
		MinScale:             0.8,
		MaxScale:             1.25,
		AlphaAtMin:           1,
		AlphaAtMax:           0.35,
		InhaleDuration:       4 * time.Second,
		HoldAfterInhale:      500 * time.Millisecond,
		ExhaleDuration:       4 * time.Second,
		HoldAfterExhale:      500 * time.Millisecond,
		InhaleCurve:          easing.EaseInOut(),
		ExhaleCurve:          easing.EaseInOut(),
		InhaleLabel:          "breathe in",
		ExhaleLabel:          "breathe out",
		LabelFadeInDuration:  600 * time.Millisecond,
		LabelFadeOutDuration: 600 * time.Millisecond,
		UseUnscaledTime:      true,
		PlayOnAttach:         true,
	}
}

// CycleDuration returns the configured length of one full breath cycle.
// Non-positive holds count as zero.
func (config BreathConfig) CycleDuration() time.Duration {
	total := config.InhaleDuration + config.ExhaleDuration
	if config.HoldAfterInhale > 0 {
		total += config.HoldAfterInhale
	}
	if config.HoldAfterExhale > 0 {
		total += config.HoldAfterExhale
	}
	return total
}

// DurationFromSeconds converts a number of seconds to a Duration. It reports
// false for NaN, infinities and values a Duration cannot hold.
func DurationFromSeconds(seconds float64) (time.Duration, bool) {
	nanos := seconds * float64(time.Second)
	if math.IsNaN(nanos) || math.Abs(nanos) >= float64(math.MaxInt64) {
		return 0, false
	}
	return time.Duration(nanos), true
}
