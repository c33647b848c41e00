package breath

import (
	"math"
	"time"

	"campuszen/internal/core/easing"
)

// MinScale is the smallest scale ever written to the pulse sink.
const MinScale = 1e-4

// Pulse is the visual state of the pulsing shape.
type Pulse struct {
	Scale float64
	Alpha float64
}

// Progress returns elapsed/duration clamped to [0,1]. The duration is
// floored to MinPhaseDuration.
func Progress(elapsed, duration time.Duration) float64 {
	duration = floorDuration(duration)
	return clamp01(float64(elapsed) / float64(duration))
}

// Interpolate eases from towards to by the curve value at the current
// progress. The curve may overshoot, so the result may leave [from, to].
func Interpolate(elapsed, duration time.Duration, curve easing.Curve, from, to float64) float64 {
	if curve == nil {
		curve = easing.EaseInOut()
	}
	eased := curve.Evaluate(Progress(elapsed, duration))
	return from + (to-from)*eased
}

// PulseAt computes the pulse of an animated phase. Alpha is clamped to
// [0,1] and scale is kept positive.
func PulseAt(spec PhaseSpec, elapsed time.Duration) Pulse {
	return clampPulse(Pulse{
		Scale: Interpolate(elapsed, spec.Duration, spec.Curve, spec.ScaleFrom, spec.ScaleTo),
		Alpha: Interpolate(elapsed, spec.Duration, spec.Curve, spec.AlphaFrom, spec.AlphaTo),
	})
}

// clampPulse maps a NaN scale to MinScale and a NaN alpha to 0.
func clampPulse(pulse Pulse) Pulse {
	if math.IsNaN(pulse.Scale) || pulse.Scale < MinScale {
		pulse.Scale = MinScale
	}
	pulse.Alpha = clamp01(pulse.Alpha)
	return pulse
}

func clamp01(value float64) float64 {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
