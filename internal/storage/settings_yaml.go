package storage

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"campuszen/internal/core/easing"
	"campuszen/internal/core/model"
	"campuszen/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Pointers tell an absent key from an explicit zero, so zero holds survive.
type yamlSettings struct {
	Preset string `yaml:"preset,omitempty"`

	MinScale   *float64 `yaml:"min_scale,omitempty"`
	MaxScale   *float64 `yaml:"max_scale,omitempty"`
	AlphaAtMin *float64 `yaml:"alpha_at_min,omitempty"`
	AlphaAtMax *float64 `yaml:"alpha_at_max,omitempty"`

	InhaleSeconds          *float64   `yaml:"inhale_seconds,omitempty"`
	HoldAfterInhaleSeconds *float64   `yaml:"hold_after_inhale_seconds,omitempty"`
	ExhaleSeconds          *float64   `yaml:"exhale_seconds,omitempty"`
	HoldAfterExhaleSeconds *float64   `yaml:"hold_after_exhale_seconds,omitempty"`
	InhaleCurve            string     `yaml:"inhale_curve,omitempty"`
	ExhaleCurve            string     `yaml:"exhale_curve,omitempty"`
	InhaleKeys             []keyEntry `yaml:"inhale_keys,omitempty"`
	ExhaleKeys             []keyEntry `yaml:"exhale_keys,omitempty"`

	InhaleLabel         *string  `yaml:"inhale_label,omitempty"`
	ExhaleLabel         *string  `yaml:"exhale_label,omitempty"`
	LabelFadeInSeconds  *float64 `yaml:"label_fade_in_seconds,omitempty"`
	LabelFadeOutSeconds *float64 `yaml:"label_fade_out_seconds,omitempty"`

	UseUnscaledTime *bool `yaml:"use_unscaled_time,omitempty"`
	PlayOnShow      *bool `yaml:"play_on_show,omitempty"`
	CarryRemainder  *bool `yaml:"carry_remainder,omitempty"`

	OverlayOpacity   *float64 `yaml:"overlay_opacity,omitempty"`
	Fullscreen       *bool    `yaml:"fullscreen,omitempty"`
	LaunchAtLogin    *bool    `yaml:"launch_at_login,omitempty"`
	HideWhenIdle     *bool    `yaml:"hide_when_idle,omitempty"`
	IdleAfterSeconds *float64 `yaml:"idle_after_seconds,omitempty"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SettingsPath returns <UserConfigDir>/<appName>/settings.yaml.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettingsFile reads settings from path. Missing keys and invalid values
// keep their defaults.
func LoadSettingsFile(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes settings to path, creating its directory.
func SaveSettingsFile(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(toYamlSettings(settings))
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func toYamlSettings(settings preferences.Settings) yamlSettings {
	return yamlSettings{
		Preset:                 settings.PresetName,
		MinScale:               &settings.MinScale,
		MaxScale:               &settings.MaxScale,
		AlphaAtMin:             &settings.AlphaAtMin,
		AlphaAtMax:             &settings.AlphaAtMax,
		InhaleSeconds:          seconds(settings.InhaleDuration),
		HoldAfterInhaleSeconds: seconds(settings.HoldAfterInhale),
		ExhaleSeconds:          seconds(settings.ExhaleDuration),
		HoldAfterExhaleSeconds: seconds(settings.HoldAfterExhale),
		InhaleCurve:            settings.InhaleCurve,
		ExhaleCurve:            settings.ExhaleCurve,
		InhaleKeys:             toKeyEntries(settings.InhaleKeys),
		ExhaleKeys:             toKeyEntries(settings.ExhaleKeys),
		InhaleLabel:            &settings.InhaleLabel,
		ExhaleLabel:            &settings.ExhaleLabel,
		LabelFadeInSeconds:     seconds(settings.LabelFadeIn),
		LabelFadeOutSeconds:    seconds(settings.LabelFadeOut),
		UseUnscaledTime:        &settings.UseUnscaledTime,
		PlayOnShow:             &settings.PlayOnShow,
		CarryRemainder:         &settings.CarryRemainder,
		OverlayOpacity:         &settings.OverlayOpacity,
		Fullscreen:             &settings.Fullscreen,
		LaunchAtLogin:          &settings.LaunchAtLogin,
		HideWhenIdle:           &settings.HideWhenIdle,
		IdleAfterSeconds:       seconds(settings.IdleAfter),
	}
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.Preset != "" {
		settings.PresetName = fileData.Preset
	}

	setPositive(&settings.MinScale, fileData.MinScale)
	setPositive(&settings.MaxScale, fileData.MaxScale)
	setUnit(&settings.AlphaAtMin, fileData.AlphaAtMin)
	setUnit(&settings.AlphaAtMax, fileData.AlphaAtMax)

	setDuration(&settings.InhaleDuration, fileData.InhaleSeconds, false)
	setDuration(&settings.HoldAfterInhale, fileData.HoldAfterInhaleSeconds, true)
	setDuration(&settings.ExhaleDuration, fileData.ExhaleSeconds, false)
	setDuration(&settings.HoldAfterExhale, fileData.HoldAfterExhaleSeconds, true)
	setCurve(&settings.InhaleCurve, &settings.InhaleKeys, fileData.InhaleCurve, fileData.InhaleKeys)
	setCurve(&settings.ExhaleCurve, &settings.ExhaleKeys, fileData.ExhaleCurve, fileData.ExhaleKeys)

	if fileData.InhaleLabel != nil {
		settings.InhaleLabel = *fileData.InhaleLabel
	}
	if fileData.ExhaleLabel != nil {
		settings.ExhaleLabel = *fileData.ExhaleLabel
	}
	setDuration(&settings.LabelFadeIn, fileData.LabelFadeInSeconds, true)
	setDuration(&settings.LabelFadeOut, fileData.LabelFadeOutSeconds, true)

	setBool(&settings.UseUnscaledTime, fileData.UseUnscaledTime)
	setBool(&settings.PlayOnShow, fileData.PlayOnShow)
	setBool(&settings.CarryRemainder, fileData.CarryRemainder)

	if fileData.OverlayOpacity != nil && *fileData.OverlayOpacity >= 0.5 && *fileData.OverlayOpacity <= 1 {
		settings.OverlayOpacity = *fileData.OverlayOpacity
	}
	setBool(&settings.Fullscreen, fileData.Fullscreen)
	setBool(&settings.LaunchAtLogin, fileData.LaunchAtLogin)
	setBool(&settings.HideWhenIdle, fileData.HideWhenIdle)
	setDuration(&settings.IdleAfter, fileData.IdleAfterSeconds, false)
}

func seconds(value time.Duration) *float64 {
	converted := value.Seconds()
	return &converted
}

func setDuration(target *time.Duration, value *float64, allowZero bool) {
	if value == nil || *value < 0 || (*value == 0 && !allowZero) {
		return
	}
	if converted, ok := model.DurationFromSeconds(*value); ok {
		*target = converted
	}
}

func setPositive(target *float64, value *float64) {
	if value != nil && *value > 0 && !math.IsInf(*value, 1) {
		*target = *value
	}
}

func setUnit(target *float64, value *float64) {
	if value != nil && *value >= 0 && *value <= 1 {
		*target = *value
	}
}

func setBool(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}

// setCurve keeps the default curve when neither the keys nor the name resolve.
func setCurve(target *string, keysTarget *[]easing.Key, name string, entries []keyEntry) {
	keys := fromKeyEntries(entries)
	if name == "" && len(keys) == 0 {
		return
	}
	if _, err := easing.Resolve(name, keys); err == nil {
		*target = name
		*keysTarget = keys
	}
}
