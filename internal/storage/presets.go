package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"campuszen/internal/core/easing"
	"campuszen/internal/core/model"
	"campuszen/internal/ui/animation"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat is returned for preset files that are neither YAML nor TOML.
	ErrUnsupportedFormat = errors.New("unsupported preset format")
	// ErrInvalidPreset is returned when a preset lacks a name or an animated phase.
	ErrInvalidPreset = errors.New("invalid preset")
)

type presetFile struct {
	Presets []presetEntry `yaml:"presets" toml:"presets"`
}

type presetEntry struct {
	Name                   string     `yaml:"name" toml:"name"`
	Title                  string     `yaml:"title" toml:"title"`
	InhaleSeconds          float64    `yaml:"inhale_seconds" toml:"inhale_seconds"`
	HoldAfterInhaleSeconds float64    `yaml:"hold_after_inhale_seconds" toml:"hold_after_inhale_seconds"`
	ExhaleSeconds          float64    `yaml:"exhale_seconds" toml:"exhale_seconds"`
	HoldAfterExhaleSeconds float64    `yaml:"hold_after_exhale_seconds" toml:"hold_after_exhale_seconds"`
	InhaleCurve            string     `yaml:"inhale_curve" toml:"inhale_curve"`
	ExhaleCurve            string     `yaml:"exhale_curve" toml:"exhale_curve"`
	InhaleKeys             []keyEntry `yaml:"inhale_keys" toml:"inhale_keys"`
	ExhaleKeys             []keyEntry `yaml:"exhale_keys" toml:"exhale_keys"`
}

// keyEntry is one keyframe of a custom curve.
type keyEntry struct {
	Time       float64 `yaml:"time" toml:"time"`
	Value      float64 `yaml:"value" toml:"value"`
	InTangent  float64 `yaml:"in_tangent,omitempty" toml:"in_tangent"`
	OutTangent float64 `yaml:"out_tangent,omitempty" toml:"out_tangent"`
}

// LoadPresets reads user presets from a .yaml, .yml or .toml file.
func LoadPresets(path string) ([]animation.Preset, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset file: %w", err)
	}

	var fileData presetFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(rawData, &fileData); err != nil {
			return nil, fmt.Errorf("parse preset yaml: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(rawData), &fileData); err != nil {
			return nil, fmt.Errorf("parse preset toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("load presets %s: %w", path, ErrUnsupportedFormat)
	}

	presets := make([]animation.Preset, 0, len(fileData.Presets))
	for index, entry := range fileData.Presets {
		preset, err := entry.toPreset()
		if err != nil {
			return nil, fmt.Errorf("preset %d: %w", index, err)
		}
		presets = append(presets, preset)
	}
	return presets, nil
}

func (entry presetEntry) toPreset() (animation.Preset, error) {
	name := strings.ToLower(strings.TrimSpace(entry.Name))
	if name == "" {
		return animation.Preset{}, fmt.Errorf("%w: missing name", ErrInvalidPreset)
	}
	if entry.InhaleSeconds <= 0 || entry.ExhaleSeconds <= 0 {
		return animation.Preset{}, fmt.Errorf("%w: %s needs positive inhale and exhale", ErrInvalidPreset, name)
	}
	inhaleKeys := fromKeyEntries(entry.InhaleKeys)
	exhaleKeys := fromKeyEntries(entry.ExhaleKeys)
	inhaleCurve := curveForKeys(entry.InhaleCurve, inhaleKeys)
	exhaleCurve := curveForKeys(entry.ExhaleCurve, exhaleKeys)
	if _, err := easing.Resolve(inhaleCurve, inhaleKeys); err != nil {
		return animation.Preset{}, fmt.Errorf("preset %s inhale: %w", name, err)
	}
	if _, err := easing.Resolve(exhaleCurve, exhaleKeys); err != nil {
		return animation.Preset{}, fmt.Errorf("preset %s exhale: %w", name, err)
	}

	// Negative holds are kept as-is; the guide skips any hold that is not positive.
	var durations [4]time.Duration
	for index, seconds := range []float64{
		entry.InhaleSeconds, entry.HoldAfterInhaleSeconds, entry.ExhaleSeconds, entry.HoldAfterExhaleSeconds,
	} {
		converted, ok := model.DurationFromSeconds(seconds)
		if !ok {
			return animation.Preset{}, fmt.Errorf("%w: %s has out of range seconds %v", ErrInvalidPreset, name, seconds)
		}
		durations[index] = converted
	}

	title := entry.Title
	if title == "" {
		title = entry.Name
	}
	return animation.Preset{
		Name:            name,
		Title:           title,
		Inhale:          durations[0],
		HoldAfterInhale: durations[1],
		Exhale:          durations[2],
		HoldAfterExhale: durations[3],
		InhaleCurve:     inhaleCurve,
		ExhaleCurve:     exhaleCurve,
		InhaleKeys:      inhaleKeys,
		ExhaleKeys:      exhaleKeys,
	}, nil
}

// curveForKeys names keyed curves custom unless the file gave a name.
func curveForKeys(name string, keys []easing.Key) string {
	if name == "" && len(keys) > 0 {
		return easing.NameCustom
	}
	return name
}

func fromKeyEntries(entries []keyEntry) []easing.Key {
	if len(entries) == 0 {
		return nil
	}
	keys := make([]easing.Key, 0, len(entries))
	for _, entry := range entries {
		keys = append(keys, easing.Key{
			Time:       entry.Time,
			Value:      entry.Value,
			InTangent:  entry.InTangent,
			OutTangent: entry.OutTangent,
		})
	}
	return keys
}

func toKeyEntries(keys []easing.Key) []keyEntry {
	if len(keys) == 0 {
		return nil
	}
	entries := make([]keyEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, keyEntry(key))
	}
	return entries
}
