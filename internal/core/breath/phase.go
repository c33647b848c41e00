// Package breath computes the breathing guide's pulse and label from
// elapsed time. Everything in it is single-threaded and advanced only by
// explicit ticks from the host loop.
package breath

import (
	"time"

	"campuszen/internal/core/easing"
	"campuszen/internal/core/model"
)

// PhaseKind names one segment of the breath cycle.
type PhaseKind string

const (
	PhaseInhale          PhaseKind = "inhale"
	PhaseHoldAfterInhale PhaseKind = "hold_after_inhale"
	PhaseExhale          PhaseKind = "exhale"
	PhaseHoldAfterExhale PhaseKind = "hold_after_exhale"
)

// MinPhaseDuration is the floor applied to non-positive phase durations.
const MinPhaseDuration = 100 * time.Microsecond

// Cycle lists the phases in the order they are played.
var Cycle = [...]PhaseKind{PhaseInhale, PhaseHoldAfterInhale, PhaseExhale, PhaseHoldAfterExhale}

// Next returns the phase that follows kind in the cycle.
func (kind PhaseKind) Next() PhaseKind {
	switch kind {
	case PhaseInhale:
		return PhaseHoldAfterInhale
	case PhaseHoldAfterInhale:
		return PhaseExhale
	case PhaseExhale:
		return PhaseHoldAfterExhale
	default:
		return PhaseInhale
	}
}

// IsHold reports whether the phase only gates time and never animates.
func (kind PhaseKind) IsHold() bool {
	return kind == PhaseHoldAfterInhale || kind == PhaseHoldAfterExhale
}

// PhaseSpec holds the parameters of a single phase. Hold phases use only
// Kind and Duration.
type PhaseSpec struct {
	Kind             PhaseKind
	Duration         time.Duration
	ScaleFrom        float64
	ScaleTo          float64
	AlphaFrom        float64
	AlphaTo          float64
	Curve            easing.Curve
	Label            string
	LabelFadeEnabled bool
}

// EffectiveDuration is Duration floored to MinPhaseDuration.
func (spec PhaseSpec) EffectiveDuration() time.Duration {
	return floorDuration(spec.Duration)
}

// Phases is the full set of specs for one breath cycle.
type Phases struct {
	Inhale          PhaseSpec
	HoldAfterInhale PhaseSpec
	Exhale          PhaseSpec
	HoldAfterExhale PhaseSpec
}

// PhasesFromConfig builds the four phase specs. Inhale grows from MinScale
// to MaxScale, exhale shrinks back, and the pulse opacity follows the
// matching alpha endpoints.
func PhasesFromConfig(config model.BreathConfig) Phases {
	inhaleCurve := config.InhaleCurve
	if inhaleCurve == nil {
		inhaleCurve = easing.EaseInOut()
	}
	exhaleCurve := config.ExhaleCurve
	if exhaleCurve == nil {
		exhaleCurve = easing.EaseInOut()
	}

	return Phases{
		Inhale: PhaseSpec{
			Kind:             PhaseInhale,
			Duration:         config.InhaleDuration,
			ScaleFrom:        config.MinScale,
			ScaleTo:          config.MaxScale,
			AlphaFrom:        config.AlphaAtMin,
			AlphaTo:          config.AlphaAtMax,
			Curve:            inhaleCurve,
			Label:            config.InhaleLabel,
			LabelFadeEnabled: true,
		},
		HoldAfterInhale: PhaseSpec{
			Kind:     PhaseHoldAfterInhale,
			Duration: config.HoldAfterInhale,
		},
		Exhale: PhaseSpec{
			Kind:             PhaseExhale,
			Duration:         config.ExhaleDuration,
			ScaleFrom:        config.MaxScale,
			ScaleTo:          config.MinScale,
			AlphaFrom:        config.AlphaAtMax,
			AlphaTo:          config.AlphaAtMin,
			Curve:            exhaleCurve,
			Label:            config.ExhaleLabel,
			LabelFadeEnabled: true,
		},
		HoldAfterExhale: PhaseSpec{
			Kind:     PhaseHoldAfterExhale,
			Duration: config.HoldAfterExhale,
		},
	}
}

// Spec returns the spec for kind.
func (phases Phases) Spec(kind PhaseKind) PhaseSpec {
	switch kind {
	case PhaseHoldAfterInhale:
		return phases.HoldAfterInhale
	case PhaseExhale:
		return phases.Exhale
	case PhaseHoldAfterExhale:
		return phases.HoldAfterExhale
	default:
		return phases.Inhale
	}
}

func floorDuration(duration time.Duration) time.Duration {
	if duration < MinPhaseDuration {
		return MinPhaseDuration
	}
	return duration
}
