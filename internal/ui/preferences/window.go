package preferences

import (
	"math"
	"strconv"
	"strings"
	"time"

	"campuszen/internal/core/easing"
	"campuszen/internal/core/model"
	"campuszen/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	presets  []animation.Preset
	onSave   func(Settings)
	onCancel func()

	preset       *widget.Select
	inhale       *widget.Entry
	holdInhale   *widget.Entry
	exhale       *widget.Entry
	holdExhale   *widget.Entry
	inhaleCurve  *widget.Select
	exhaleCurve  *widget.Select
	inhaleLabel  *widget.Entry
	exhaleLabel  *widget.Entry
	fadeIn       *widget.Entry
	fadeOut      *widget.Entry
	minScale     *widget.Entry
	maxScale     *widget.Entry
	unscaled     *widget.Check
	carry        *widget.Check
	playOnShow   *widget.Check
	hideWhenIdle *widget.Check
	autostart    *widget.Check
	opacity      *widget.Slider
	fullscreen   *widget.Check
}

// New creates a preferences window. Choosing a preset fills the timing fields.
func New(app fyne.App, settings Settings, presets []animation.Preset, onSave func(Settings)) *Window {
	window := app.NewWindow("CampusZen Settings")

	prefs := &Window{
		window:       window,
		settings:     settings,
		presets:      presets,
		onSave:       onSave,
		inhale:       widget.NewEntry(),
		holdInhale:   widget.NewEntry(),
		exhale:       widget.NewEntry(),
		holdExhale:   widget.NewEntry(),
		inhaleCurve:  widget.NewSelect(curveOptions(), nil),
		exhaleCurve:  widget.NewSelect(curveOptions(), nil),
		inhaleLabel:  widget.NewEntry(),
		exhaleLabel:  widget.NewEntry(),
		fadeIn:       widget.NewEntry(),
		fadeOut:      widget.NewEntry(),
		minScale:     widget.NewEntry(),
		maxScale:     widget.NewEntry(),
		unscaled:     widget.NewCheck("Keep breathing while paused", nil),
		carry:        widget.NewCheck("Carry overflow into next phase", nil),
		playOnShow:   widget.NewCheck("Start guide when shown", nil),
		hideWhenIdle: widget.NewCheck("Hide when away", nil),
		autostart:    widget.NewCheck("Launch at login", nil),
		opacity:      widget.NewSlider(0.5, 1),
		fullscreen:   widget.NewCheck("Fullscreen overlay", nil),
	}
	prefs.opacity.Step = 0.01

	names := make([]string, 0, len(presets))
	for _, preset := range presets {
		names = append(names, preset.Name)
	}
	prefs.preset = widget.NewSelect(names, prefs.handlePreset)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Pattern", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Preset"), prefs.preset),
		container.NewGridWithColumns(3,
			widget.NewLabel("Inhale"), prefs.inhale, widget.NewLabel("sec"),
			widget.NewLabel("Hold"), prefs.holdInhale, widget.NewLabel("sec"),
			widget.NewLabel("Exhale"), prefs.exhale, widget.NewLabel("sec"),
			widget.NewLabel("Hold"), prefs.holdExhale, widget.NewLabel("sec"),
		),
		container.NewGridWithColumns(2,
			widget.NewLabel("Inhale curve"), prefs.inhaleCurve,
			widget.NewLabel("Exhale curve"), prefs.exhaleCurve,
		),
		widget.NewLabelWithStyle("Guide", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(2,
			widget.NewLabel("Inhale text"), prefs.inhaleLabel,
			widget.NewLabel("Exhale text"), prefs.exhaleLabel,
			widget.NewLabel("Text fade in (sec)"), prefs.fadeIn,
			widget.NewLabel("Text fade out (sec)"), prefs.fadeOut,
			widget.NewLabel("Smallest scale"), prefs.minScale,
			widget.NewLabel("Largest scale"), prefs.maxScale,
		),
		prefs.unscaled,
		prefs.carry,
		prefs.playOnShow,
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.hideWhenIdle,
		prefs.autostart,
		widget.NewLabel("Overlay opacity"),
		prefs.opacity,
		prefs.fullscreen,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form)))
	window.Resize(fyne.NewSize(460, 640))

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// SetOnCancel sets the handler run after the window is dismissed unsaved.
func (prefs *Window) SetOnCancel(handler func()) {
	prefs.onCancel = handler
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.selectPreset(settings.PresetName)
	prefs.fillTiming(settings)
	prefs.inhaleLabel.SetText(settings.InhaleLabel)
	prefs.exhaleLabel.SetText(settings.ExhaleLabel)
	prefs.fadeIn.SetText(formatSeconds(settings.LabelFadeIn))
	prefs.fadeOut.SetText(formatSeconds(settings.LabelFadeOut))
	prefs.minScale.SetText(strconv.FormatFloat(settings.MinScale, 'g', -1, 64))
	prefs.maxScale.SetText(strconv.FormatFloat(settings.MaxScale, 'g', -1, 64))
	prefs.unscaled.SetChecked(settings.UseUnscaledTime)
	prefs.carry.SetChecked(settings.CarryRemainder)
	prefs.playOnShow.SetChecked(settings.PlayOnShow)
	prefs.hideWhenIdle.SetChecked(settings.HideWhenIdle)
	prefs.autostart.SetChecked(settings.LaunchAtLogin)
	prefs.opacity.Value = settings.OverlayOpacity
	prefs.opacity.Refresh()
	prefs.fullscreen.SetChecked(settings.Fullscreen)
}

func (prefs *Window) fillTiming(settings Settings) {
	prefs.inhale.SetText(formatSeconds(settings.InhaleDuration))
	prefs.holdInhale.SetText(formatSeconds(settings.HoldAfterInhale))
	prefs.exhale.SetText(formatSeconds(settings.ExhaleDuration))
	prefs.holdExhale.SetText(formatSeconds(settings.HoldAfterExhale))
	prefs.inhaleCurve.SetSelected(curveName(settings.InhaleCurve, settings.InhaleKeys))
	prefs.exhaleCurve.SetSelected(curveName(settings.ExhaleCurve, settings.ExhaleKeys))
}

// selectPreset shows the preset name without reapplying its timing.
func (prefs *Window) selectPreset(name string) {
	onChanged := prefs.preset.OnChanged
	prefs.preset.OnChanged = nil
	if name == "" {
		prefs.preset.ClearSelected()
	} else {
		prefs.preset.SetSelected(name)
	}
	prefs.preset.OnChanged = onChanged
}

func (prefs *Window) handlePreset(name string) {
	if preset, ok := prefs.findPreset(name); ok {
		prefs.fillTiming(prefs.settings.ApplyPreset(preset))
	}
}

func (prefs *Window) findPreset(name string) (animation.Preset, bool) {
	for _, preset := range prefs.presets {
		if preset.Name == name {
			return preset, true
		}
	}
	return animation.Preset{}, false
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	// A newly chosen preset brings its keyframes; the fields below hold its timing.
	if selected := prefs.preset.Selected; selected != settings.PresetName {
		if preset, ok := prefs.findPreset(selected); ok {
			settings = settings.ApplyPreset(preset)
		}
		settings.PresetName = selected
	}
	if value, ok := parseSeconds(prefs.inhale.Text, false); ok {
		settings.InhaleDuration = value
	}
	if value, ok := parseSeconds(prefs.holdInhale.Text, true); ok {
		settings.HoldAfterInhale = value
	}
	if value, ok := parseSeconds(prefs.exhale.Text, false); ok {
		settings.ExhaleDuration = value
	}
	if value, ok := parseSeconds(prefs.holdExhale.Text, true); ok {
		settings.HoldAfterExhale = value
	}
	if value, ok := parseSeconds(prefs.fadeIn.Text, true); ok {
		settings.LabelFadeIn = value
	}
	if value, ok := parseSeconds(prefs.fadeOut.Text, true); ok {
		settings.LabelFadeOut = value
	}
	if value, ok := parsePositiveFloat(prefs.minScale.Text); ok {
		settings.MinScale = value
	}
	if value, ok := parsePositiveFloat(prefs.maxScale.Text); ok {
		settings.MaxScale = value
	}
	settings.InhaleCurve, settings.InhaleKeys = pickCurve(prefs.inhaleCurve.Selected, settings.InhaleCurve, settings.InhaleKeys)
	settings.ExhaleCurve, settings.ExhaleKeys = pickCurve(prefs.exhaleCurve.Selected, settings.ExhaleCurve, settings.ExhaleKeys)

	settings.InhaleLabel = prefs.inhaleLabel.Text
	settings.ExhaleLabel = prefs.exhaleLabel.Text
	settings.UseUnscaledTime = prefs.unscaled.Checked
	settings.CarryRemainder = prefs.carry.Checked
	settings.PlayOnShow = prefs.playOnShow.Checked
	settings.HideWhenIdle = prefs.hideWhenIdle.Checked
	settings.LaunchAtLogin = prefs.autostart.Checked
	settings.OverlayOpacity = prefs.opacity.Value
	settings.Fullscreen = prefs.fullscreen.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func curveOptions() []string {
	return append(easing.Names(), easing.NameCustom)
}

// curveName is the select option for a stored curve. Keys show as custom.
func curveName(name string, keys []easing.Key) string {
	if len(keys) > 0 {
		return easing.NameCustom
	}
	if _, err := easing.ByName(name); err != nil {
		return easing.NameEaseInOut
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return easing.NameEaseInOut
	}
	return name
}

// pickCurve applies the selected option. Choosing a built-in drops any keys;
// custom keeps the stored curve.
func pickCurve(selected, name string, keys []easing.Key) (string, []easing.Key) {
	if selected == "" || selected == easing.NameCustom {
		return name, keys
	}
	return selected, nil
}

func formatSeconds(value time.Duration) string {
	return strconv.FormatFloat(value.Seconds(), 'g', -1, 64)
}

// parseSeconds reads a number of seconds. Holds and fades accept zero.
func parseSeconds(value string, allowZero bool) (time.Duration, bool) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || parsed < 0 || (parsed == 0 && !allowZero) {
		return 0, false
	}
	return model.DurationFromSeconds(parsed)
}

// parsePositiveFloat rejects NaN and infinity along with non-positive values.
func parsePositiveFloat(value string) (float64, bool) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || !(parsed > 0) || math.IsInf(parsed, 1) {
		return 0, false
	}
	return parsed, true
}
