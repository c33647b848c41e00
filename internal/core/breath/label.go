package breath

import "time"

// LabelAlpha returns the label opacity at elapsed within the phase.
//
// Holds and phases with label fading disabled keep the label hidden. An
// animated phase ramps linearly from 0 to 1 over the fade-in window, stays
// at 1, and ramps back to 0 over the fade-out window that ends exactly at
// the phase boundary.
func LabelAlpha(spec PhaseSpec, window FadeWindow, elapsed time.Duration) float64 {
	if spec.Kind.IsHold() || !spec.LabelFadeEnabled {
		return 0
	}

	if window.In > 0 && elapsed <= window.In {
		return clamp01(float64(elapsed) / float64(window.In))
	}

	fadeOutStart := window.FadeOutStart()
	if window.Out > 0 && elapsed >= fadeOutStart {
		return clamp01(1 - float64(elapsed-fadeOutStart)/float64(window.Out))
	}

	return 1
}

// LabelAlphaAtStart returns the label opacity at the instant a phase begins.
func LabelAlphaAtStart(spec PhaseSpec, window FadeWindow) float64 {
	if spec.Kind.IsHold() || !spec.LabelFadeEnabled {
		return 0
	}
	return window.InitialAlpha()
}
