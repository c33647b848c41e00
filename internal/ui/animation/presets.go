package animation

import (
	"strings"
	"time"

	"campuszen/internal/core/easing"
)

// DefaultPresetName is used when settings name no preset.
const DefaultPresetName = "calm"

// Presets returns the built-in breathing patterns.
func Presets() []Preset {
	return []Preset{
		{
			Name:            "calm",
			Title:           "Calm",
			Inhale:          4 * time.Second,
			HoldAfterInhale: 500 * time.Millisecond,
			Exhale:          4 * time.Second,
			HoldAfterExhale: 500 * time.Millisecond,
			InhaleCurve:     easing.NameEaseInOut,
			ExhaleCurve:     easing.NameEaseInOut,
		},
		{
			Name:            "box",
			Title:           "Box breathing",
			Inhale:          4 * time.Second,
			HoldAfterInhale: 4 * time.Second,
			Exhale:          4 * time.Second,
			HoldAfterExhale: 4 * time.Second,
			InhaleCurve:     easing.NameEaseInOut,
			ExhaleCurve:     easing.NameEaseInOut,
		},
		{
			Name:            "relax",
			Title:           "4-7-8 relax",
			Inhale:          4 * time.Second,
			HoldAfterInhale: 7 * time.Second,
			Exhale:          8 * time.Second,
			InhaleCurve:     easing.NameEaseOut,
			ExhaleCurve:     easing.NameEaseIn,
		},
		{
			Name:        "coherent",
			Title:       "Coherent",
			Inhale:      5500 * time.Millisecond,
			Exhale:      5500 * time.Millisecond,
			InhaleCurve: easing.NameEaseInOut,
			ExhaleCurve: easing.NameEaseInOut,
		},
	}
}

// PresetByName looks up a built-in or extra preset, case-insensitively.
// Extra presets take precedence over built-ins with the same name.
func PresetByName(name string, extra ...Preset) (Preset, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, preset := range extra {
		if strings.ToLower(preset.Name) == key {
			return preset, true
		}
	}
	for _, preset := range Presets() {
		if preset.Name == key {
			return preset, true
		}
	}
	return Preset{}, false
}

// MergePresets returns the built-ins followed by extra presets. An extra
// preset replaces the built-in of the same name in place.
func MergePresets(extra ...Preset) []Preset {
	merged := Presets()
	for _, preset := range extra {
		replaced := false
		for index := range merged {
			if merged[index].Name == strings.ToLower(preset.Name) {
				merged[index] = preset
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, preset)
		}
	}
	return merged
}
