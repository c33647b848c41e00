package animation

import (
	"image/color"
	"testing"
	"time"

	"campuszen/internal/core/breath"
	"campuszen/internal/core/easing"
	"campuszen/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineSetPulse(t *testing.T) {
	test.NewTempApp(t)
	engine := New(DefaultStyle())
	engine.Content().Resize(fyne.NewSize(200, 100))

	engine.SetPulse(1.2, 0.5)

	assert.InDelta(t, 100*0.55*1.2, engine.circle.Size().Width, 0.01)
	assert.InDelta(t, engine.circle.Size().Width, engine.circle.Size().Height, 0.01)
	assert.Equal(t, uint8(128), engine.circle.FillColor.(color.NRGBA).A)
}

func TestEngineSetLabel(t *testing.T) {
	test.NewTempApp(t)
	engine := New(DefaultStyle())

	engine.SetLabel("breathe in", 1)
	assert.Equal(t, "breathe in", engine.label.Text)
	assert.Equal(t, uint8(255), engine.label.Color.(color.NRGBA).A)

	engine.SetLabel("breathe in", -2)
	assert.Equal(t, uint8(0), engine.label.Color.(color.NRGBA).A)
}

func TestEngineDrivenByController(t *testing.T) {
	test.NewTempApp(t)
	engine := New(DefaultStyle())
	engine.Content().Resize(fyne.NewSize(100, 100))
	controller := breath.NewController(model.DefaultBreathConfig(), engine, engine)

	controller.Start()
	assert.Equal(t, "breathe in", engine.label.Text)
	assert.InDelta(t, 100*0.55*0.8, engine.circle.Size().Width, 0.01)

	controller.Tick(4 * time.Second)
	assert.InDelta(t, 100*0.55*1.25, engine.circle.Size().Width, 0.01)
	assert.Equal(t, uint8(0), engine.label.Color.(color.NRGBA).A)
}

func TestPresets(t *testing.T) {
	preset, ok := PresetByName(" BOX ")
	require.True(t, ok)
	assert.Equal(t, "4-4-4-4", preset.Pattern())

	relax, ok := PresetByName("relax")
	require.True(t, ok)
	assert.Equal(t, "4-7-8-0", relax.Pattern())

	custom := Preset{Name: "box", Inhale: time.Second}
	preset, ok = PresetByName("box", custom)
	require.True(t, ok)
	assert.Equal(t, time.Second, preset.Inhale)

	_, ok = PresetByName("missing")
	assert.False(t, ok)
}

func TestPresetApply(t *testing.T) {
	preset, ok := PresetByName("relax")
	require.True(t, ok)

	config, err := preset.Apply(model.DefaultBreathConfig())
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, config.HoldAfterInhale)
	assert.Equal(t, time.Duration(0), config.HoldAfterExhale)
	assert.InDelta(t, 0.25, config.ExhaleCurve.Evaluate(0.5), 1e-12)

	preset.InhaleCurve = "wobble"
	_, err = preset.Apply(model.DefaultBreathConfig())
	assert.Error(t, err)
}

func TestPresetApplyKeys(t *testing.T) {
	preset := Preset{
		Name:        "swell",
		Inhale:      4 * time.Second,
		Exhale:      4 * time.Second,
		InhaleCurve: easing.NameCustom,
		InhaleKeys: []easing.Key{
			{Time: 0, Value: 0},
			{Time: 0.5, Value: 0.9},
			{Time: 1, Value: 1},
		},
		ExhaleCurve: easing.NameLinear,
	}

	config, err := preset.Apply(model.DefaultBreathConfig())

	require.NoError(t, err)
	assert.InDelta(t, 0.9, config.InhaleCurve.Evaluate(0.5), 1e-12)
	assert.InDelta(t, 0.5, config.ExhaleCurve.Evaluate(0.5), 1e-12)
}

func TestMergePresets(t *testing.T) {
	builtins := Presets()
	merged := MergePresets(
		Preset{Name: "box", Title: "Short box", Inhale: 2 * time.Second},
		Preset{Name: "square", Title: "Square"},
	)

	require.Len(t, merged, len(builtins)+1)
	assert.Equal(t, "Short box", merged[1].Title)
	assert.Equal(t, "square", merged[len(merged)-1].Name)
	assert.Equal(t, builtins[0], merged[0])
}
