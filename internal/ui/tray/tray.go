package tray

import (
	"fmt"

	"campuszen/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/systray"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggleGuide func()
	OnStartStop   func()
	OnTogglePause func()
	OnPreset      func(name string)
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	presets     []animation.Preset
	setTooltip  func(string)
	statusItem  *fyne.MenuItem
	guideItem   *fyne.MenuItem
	runItem     *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	presetItems []*fyne.MenuItem
	statusLabel string
	visible     bool
	running     bool
	paused      bool
}

// New creates a tray manager with the provided callbacks. A nil app builds
// the menu without installing it.
func New(app desktop.App, presets []animation.Preset, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:        app,
		callbacks:  callbacks,
		presets:    presets,
		setTooltip: systray.SetTooltip,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.guideItem = fyne.NewMenuItem("Show guide", func() {
		if manager.callbacks.OnToggleGuide != nil {
			manager.callbacks.OnToggleGuide()
		}
	})
	manager.runItem = fyne.NewMenuItem("Start breathing", func() {
		if manager.callbacks.OnStartStop != nil {
			manager.callbacks.OnStartStop()
		}
	})
	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})

	for _, preset := range presets {
		name := preset.Name
		label := fmt.Sprintf("%s (%s)", preset.Title, preset.Pattern())
		manager.presetItems = append(manager.presetItems, fyne.NewMenuItem(label, func() {
			if manager.callbacks.OnPreset != nil {
				manager.callbacks.OnPreset(name)
			}
		}))
	}

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label and tray tooltip.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetVisible updates the show/hide item.
func (manager *Manager) SetVisible(visible bool) {
	manager.visible = visible
	if visible {
		manager.guideItem.Label = "Hide guide"
	} else {
		manager.guideItem.Label = "Show guide"
	}
	manager.refreshMenu()
}

// SetRunning updates the start/stop item.
func (manager *Manager) SetRunning(running bool) {
	manager.running = running
	if running {
		manager.runItem.Label = "Stop breathing"
	} else {
		manager.runItem.Label = "Start breathing"
	}
	manager.refreshMenu()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	manager.paused = paused
	if paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshStatus()
}

// SetPreset marks the active preset in the submenu.
func (manager *Manager) SetPreset(name string) {
	for index, preset := range manager.presets {
		manager.presetItems[index].Checked = preset.Name == name
	}
	manager.refreshMenu()
}

// SetIcon replaces the tray icon.
func (manager *Manager) SetIcon(icon fyne.Resource) {
	if manager.app != nil && icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	if manager.app != nil && manager.setTooltip != nil {
		manager.setTooltip(fmt.Sprintf("CampusZen: %s", status))
	}
	manager.refreshMenu()
}

func (manager *Manager) menu() *fyne.Menu {
	presetsItem := fyne.NewMenuItem("Preset", nil)
	presetsItem.ChildMenu = fyne.NewMenu("", manager.presetItems...)

	return fyne.NewMenu("CampusZen",
		manager.statusItem,
		manager.guideItem,
		manager.runItem,
		manager.pauseItem,
		presetsItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu())
	}
}
