package tray

import (
	"testing"

	"campuszen/internal/ui/animation"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDesktop struct {
	menu *fyne.Menu
	icon fyne.Resource
}

func (desktop *fakeDesktop) SetSystemTrayMenu(menu *fyne.Menu)      { desktop.menu = menu }
func (desktop *fakeDesktop) SetSystemTrayIcon(icon fyne.Resource)   { desktop.icon = icon }
func (desktop *fakeDesktop) SetSystemTrayWindow(window fyne.Window) {}

func newTestManager(callbacks Callbacks) (*Manager, *fakeDesktop, *[]string) {
	app := &fakeDesktop{}
	manager := New(app, animation.Presets(), callbacks)
	tooltips := &[]string{}
	manager.setTooltip = func(text string) { *tooltips = append(*tooltips, text) }
	return manager, app, tooltips
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	require.FailNowf(t, "menu item not found", "label %q", label)
	return nil
}

func TestStatusAndTooltip(t *testing.T) {
	manager, app, tooltips := newTestManager(Callbacks{})

	manager.SetStatus("inhale")
	manager.SetPaused(true)

	assert.Equal(t, "Status: inhale (paused)", manager.statusItem.Label)
	assert.Equal(t, []string{"CampusZen: inhale", "CampusZen: inhale (paused)"}, *tooltips)
	findItem(t, app.menu, "Resume")
}

func TestMenuCallbacks(t *testing.T) {
	var calls []string
	manager, app, _ := newTestManager(Callbacks{
		OnToggleGuide: func() { calls = append(calls, "guide") },
		OnStartStop:   func() { calls = append(calls, "run") },
		OnPreset:      func(name string) { calls = append(calls, "preset:"+name) },
		OnQuit:        func() { calls = append(calls, "quit") },
	})

	manager.SetVisible(true)
	manager.SetRunning(true)
	findItem(t, app.menu, "Hide guide").Action()
	findItem(t, app.menu, "Stop breathing").Action()
	presets := findItem(t, app.menu, "Preset").ChildMenu
	require.Len(t, presets.Items, len(animation.Presets()))
	presets.Items[1].Action()
	findItem(t, app.menu, "Quit").Action()

	assert.Equal(t, []string{"guide", "run", "preset:box", "quit"}, calls)
}

func TestSetPresetChecksItem(t *testing.T) {
	manager, _, _ := newTestManager(Callbacks{})

	manager.SetPreset("relax")

	for index, preset := range animation.Presets() {
		assert.Equal(t, preset.Name == "relax", manager.presetItems[index].Checked, preset.Name)
	}
}

func TestNilAppSkipsTray(t *testing.T) {
	manager := New(nil, nil, Callbacks{})
	manager.setTooltip = func(string) { t.Fatal("tooltip set without a tray") }

	manager.SetStatus("idle")
	manager.SetIcon(nil)

	assert.Equal(t, "Status: idle", manager.statusItem.Label)
}
