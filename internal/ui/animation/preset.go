package animation

import (
	"fmt"
	"time"

	"campuszen/internal/core/easing"
	"campuszen/internal/core/model"
)

// Preset is a named breathing pattern.
type Preset struct {
	Name            string
	Title           string
	Inhale          time.Duration
	HoldAfterInhale time.Duration
	Exhale          time.Duration
	HoldAfterExhale time.Duration
	InhaleCurve     string
	ExhaleCurve     string

	// Keys replace the named curve of their phase when present.
	InhaleKeys []easing.Key
	ExhaleKeys []easing.Key
}

// Apply copies the preset timing and curves into config. Unknown curve
// names and invalid keys leave the config's curve untouched and are reported.
func (preset Preset) Apply(config model.BreathConfig) (model.BreathConfig, error) {
	config.InhaleDuration = preset.Inhale
	config.HoldAfterInhale = preset.HoldAfterInhale
	config.ExhaleDuration = preset.Exhale
	config.HoldAfterExhale = preset.HoldAfterExhale

	var firstErr error
	if curve, err := easing.Resolve(preset.InhaleCurve, preset.InhaleKeys); err == nil {
		config.InhaleCurve = curve
	} else {
		firstErr = err
	}
	if curve, err := easing.Resolve(preset.ExhaleCurve, preset.ExhaleKeys); err == nil {
		config.ExhaleCurve = curve
	} else if firstErr == nil {
		firstErr = err
	}
	if firstErr != nil {
		return config, fmt.Errorf("apply preset %s: %w", preset.Name, firstErr)
	}
	return config, nil
}

// Pattern formats the phase lengths, e.g. "4-7-8-0".
func (preset Preset) Pattern() string {
	return fmt.Sprintf("%s-%s-%s-%s",
		formatSeconds(preset.Inhale),
		formatSeconds(preset.HoldAfterInhale),
		formatSeconds(preset.Exhale),
		formatSeconds(preset.HoldAfterExhale),
	)
}

func formatSeconds(value time.Duration) string {
	return fmt.Sprintf("%g", value.Seconds())
}
