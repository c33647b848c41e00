package preferences

import (
	"time"

	"campuszen/internal/core/easing"
	"campuszen/internal/core/model"
	"campuszen/internal/core/timekeeper"
	"campuszen/internal/ui/animation"
)

// Settings defines editable user preferences.
type Settings struct {
	PresetName string

	MinScale   float64
	MaxScale   float64
	AlphaAtMin float64
	AlphaAtMax float64

	InhaleDuration  time.Duration
	HoldAfterInhale time.Duration
	ExhaleDuration  time.Duration
	HoldAfterExhale time.Duration
	InhaleCurve     string
	ExhaleCurve     string
	InhaleKeys      []easing.Key
	ExhaleKeys      []easing.Key

	InhaleLabel  string
	ExhaleLabel  string
	LabelFadeIn  time.Duration
	LabelFadeOut time.Duration

	UseUnscaledTime bool
	PlayOnShow      bool
	CarryRemainder  bool

	OverlayOpacity float64
	Fullscreen     bool
	LaunchAtLogin  bool
	HideWhenIdle   bool
	IdleAfter      time.Duration
}

// DefaultSettings returns default settings for CampusZen.
func DefaultSettings() Settings {
	config := model.DefaultBreathConfig()
	return Settings{
		PresetName:      animation.DefaultPresetName,
		MinScale:        config.MinScale,
		MaxScale:        config.MaxScale,
		AlphaAtMin:      config.AlphaAtMin,
		AlphaAtMax:      config.AlphaAtMax,
		InhaleDuration:  config.InhaleDuration,
		HoldAfterInhale: config.HoldAfterInhale,
		ExhaleDuration:  config.ExhaleDuration,
		HoldAfterExhale: config.HoldAfterExhale,
		InhaleCurve:     easing.NameEaseInOut,
		ExhaleCurve:     easing.NameEaseInOut,
		InhaleLabel:     config.InhaleLabel,
		ExhaleLabel:     config.ExhaleLabel,
		LabelFadeIn:     config.LabelFadeInDuration,
		LabelFadeOut:    config.LabelFadeOutDuration,
		UseUnscaledTime: config.UseUnscaledTime,
		PlayOnShow:      config.PlayOnAttach,
		OverlayOpacity:  0.85,
		Fullscreen:      false,
		HideWhenIdle:    true,
		IdleAfter:       5 * time.Minute,
	}
}

// ApplyPreset copies a preset's timing and curves into the settings.
func (settings Settings) ApplyPreset(preset animation.Preset) Settings {
	settings.PresetName = preset.Name
	settings.InhaleDuration = preset.Inhale
	settings.HoldAfterInhale = preset.HoldAfterInhale
	settings.ExhaleDuration = preset.Exhale
	settings.HoldAfterExhale = preset.HoldAfterExhale
	settings.InhaleCurve = preset.InhaleCurve
	settings.ExhaleCurve = preset.ExhaleCurve
	settings.InhaleKeys = append([]easing.Key(nil), preset.InhaleKeys...)
	settings.ExhaleKeys = append([]easing.Key(nil), preset.ExhaleKeys...)
	return settings
}

// BreathConfig converts settings to the guide configuration. Keys take
// precedence over curve names; unknown names fall back to ease-in-out.
func (settings Settings) BreathConfig() model.BreathConfig {
	return model.BreathConfig{
		MinScale:             settings.MinScale,
		MaxScale:             settings.MaxScale,
		AlphaAtMin:           settings.AlphaAtMin,
		AlphaAtMax:           settings.AlphaAtMax,
		InhaleDuration:       settings.InhaleDuration,
		HoldAfterInhale:      settings.HoldAfterInhale,
		ExhaleDuration:       settings.ExhaleDuration,
		HoldAfterExhale:      settings.HoldAfterExhale,
		InhaleCurve:          curveOrDefault(settings.InhaleCurve, settings.InhaleKeys),
		ExhaleCurve:          curveOrDefault(settings.ExhaleCurve, settings.ExhaleKeys),
		InhaleLabel:          settings.InhaleLabel,
		ExhaleLabel:          settings.ExhaleLabel,
		LabelFadeInDuration:  settings.LabelFadeIn,
		LabelFadeOutDuration: settings.LabelFadeOut,
		UseUnscaledTime:      settings.UseUnscaledTime,
		PlayOnAttach:         settings.PlayOnShow,
		CarryRemainder:       settings.CarryRemainder,
	}
}

// TimeKeeperConfig converts settings to update loop options.
func (settings Settings) TimeKeeperConfig() timekeeper.Config {
	return timekeeper.Config{
		TickInterval:      16 * time.Millisecond,
		ProgressInterval:  250 * time.Millisecond,
		IdleEnabled:       settings.HideWhenIdle,
		IdleAfter:         settings.IdleAfter,
		IdleCheckInterval: 5 * time.Second,
	}
}

func curveOrDefault(name string, keys []easing.Key) easing.Curve {
	curve, err := easing.Resolve(name, keys)
	if err != nil {
		return easing.EaseInOut()
	}
	return curve
}
