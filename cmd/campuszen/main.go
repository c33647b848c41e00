package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"campuszen/internal/core/breath"
	"campuszen/internal/core/timekeeper"
	"campuszen/internal/core/zone"
	"campuszen/internal/platform"
	"campuszen/internal/storage"
	"campuszen/internal/ui/animation"
	"campuszen/internal/ui/overlay"
	"campuszen/internal/ui/preferences"
	"campuszen/internal/ui/tray"
	"campuszen/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "CampusZen"

func main() {
	trayOnly := flag.Bool("tray", false, "start hidden in the system tray")
	presetsPath := flag.String("presets", "", "extra presets file (.yaml, .yml or .toml)")
	verbose := flag.Bool("v", false, "log debug messages")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		slog.Info("single instance", "error", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()
	slog.Debug("single instance acquired", "address", guard.Address())

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		slog.Warn("load settings, using defaults", "error", err)
	}
	presets := loadPresets(*presetsPath)

	fyneApp := app.NewWithID("com.campuszen.app")
	fyneApp.SetIcon(resources.MustIcon(resources.IconApp))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		slog.Error("system tray unsupported on this platform")
		return
	}

	engine := animation.New(animation.DefaultStyle())
	keeper := timekeeper.New(breath.NewController(settings.BreathConfig(), engine, engine), settings.TimeKeeperConfig())
	keeper.SetIdleChecker(platform.NewIdleProvider())

	overlayWindow := overlay.New(fyneApp, overlayConfig(settings, presets), engine)
	overlayWindow.SetLifecycle(keeper)
	guide := zone.New(overlayWindow, zone.SourceUser, zone.SourcePresence)

	service := platform.NewService()
	activeIcon := resources.MustIcon(resources.IconActive)
	pausedIcon := resources.MustIcon(resources.IconPaused)

	var trayManager *tray.Manager
	var prefsWindow *preferences.Window

	applySettings := func(updated preferences.Settings) {
		autostartChanged := updated.LaunchAtLogin != settings.LaunchAtLogin
		settings = updated
		keeper.SetGuide(breath.NewController(settings.BreathConfig(), engine, engine))
		keeper.UpdateIdle(settings.HideWhenIdle, settings.IdleAfter)
		overlayWindow.UpdateConfig(overlayConfig(settings, presets))
		overlayWindow.SetSubtitle(subtitle(settings, keeper.IsPaused()))
		trayManager.SetPreset(settings.PresetName)
		if autostartChanged {
			if err := platform.SyncAutostart(service, appName, settings.LaunchAtLogin); err != nil {
				slog.Warn("update autostart", "error", err)
			}
		}
		if err := storage.SaveSettings(appName, settings); err != nil {
			slog.Error("save settings", "error", err)
		}
	}

	showGuide := func(visible bool) {
		if visible {
			guide.Enter(zone.SourceUser)
		} else {
			guide.Exit(zone.SourceUser)
		}
		trayManager.SetVisible(guide.Visible())
	}

	prefsWindow = preferences.New(fyneApp, settings, presets, applySettings)

	trayManager = tray.New(desktopApp, presets, tray.Callbacks{
		OnToggleGuide: func() {
			toggleGuide(guide, trayManager)
		},
		OnStartStop: func() {
			if keeper.IsGuideRunning() {
				keeper.StopGuide()
			} else {
				keeper.StartGuide()
			}
		},
		OnTogglePause: func() {
			if keeper.IsPaused() {
				keeper.Resume()
				trayManager.SetIcon(activeIcon)
			} else {
				keeper.Pause()
				trayManager.SetIcon(pausedIcon)
			}
			trayManager.SetPaused(keeper.IsPaused())
			overlayWindow.SetSubtitle(subtitle(settings, keeper.IsPaused()))
		},
		OnPreset: func(name string) {
			preset, ok := animation.PresetByName(name, presets...)
			if !ok {
				slog.Warn("unknown preset", "name", name)
				return
			}
			applySettings(settings.ApplyPreset(preset))
			prefsWindow.UpdateSettings(settings)
		},
		OnPreferences: func() {
			prefsWindow.UpdateSettings(settings)
			prefsWindow.Show()
		},
		OnQuit: func() {
			keeper.Stop()
			fyneApp.Quit()
		},
	})
	trayManager.SetPreset(settings.PresetName)
	trayManager.SetStatus("ready")
	trayManager.SetIcon(activeIcon)

	overlayWindow.SetOnLeave(func() {
		showGuide(false)
	})

	go guard.Serve(func() {
		fyne.Do(func() {
			showGuide(true)
		})
	})

	events := keeper.Subscribe(16)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				handleEvent(event, settings.HideWhenIdle, guide, trayManager)
			})
		}
	}()

	keeper.Start()
	if !*trayOnly {
		showGuide(true)
	}
	fyneApp.Run()
	keeper.Stop()
}

func toggleGuide(guide *zone.Toggle, trayManager *tray.Manager) {
	guide.Flip(zone.SourceUser)
	trayManager.SetVisible(guide.Visible())
}

func handleEvent(event timekeeper.Event, hideWhenIdle bool, guide *zone.Toggle, trayManager *tray.Manager) {
	switch event.Type {
	case timekeeper.EventPhaseChange:
		trayManager.SetStatus(phaseStatus(event.Phase))
	case timekeeper.EventRunning:
		trayManager.SetRunning(event.Running)
		if !event.Running {
			trayManager.SetStatus("stopped")
		}
	case timekeeper.EventIdle:
		slog.Debug("presence changed", "away", event.Idle)
		if event.Idle && hideWhenIdle {
			guide.Exit(zone.SourcePresence)
			trayManager.SetVisible(guide.Visible())
		}
	case timekeeper.EventIdleError:
		slog.Debug("idle check", "message", event.Message)
	}
}

func loadPresets(path string) []animation.Preset {
	if path == "" {
		return animation.Presets()
	}
	extra, err := storage.LoadPresets(path)
	if err != nil {
		slog.Warn("load presets", "path", path, "error", err)
		return animation.Presets()
	}
	slog.Info("presets loaded", "path", path, "count", len(extra))
	return animation.MergePresets(extra...)
}

func overlayConfig(settings preferences.Settings, presets []animation.Preset) overlay.Config {
	title := appName
	if preset, ok := animation.PresetByName(settings.PresetName, presets...); ok {
		title = preset.Title
	}
	return overlay.Config{
		Opacity:    opacityToAlpha(settings.OverlayOpacity),
		Fullscreen: settings.Fullscreen,
		Title:      title,
		Subtitle:   subtitle(settings, false),
	}
}

func subtitle(settings preferences.Settings, paused bool) string {
	if paused {
		return pattern(settings) + " (paused)"
	}
	return pattern(settings)
}

// pattern describes the configured timing, e.g. "4-7-8-0 s".
func pattern(settings preferences.Settings) string {
	preset := animation.Preset{
		Inhale:          settings.InhaleDuration,
		HoldAfterInhale: settings.HoldAfterInhale,
		Exhale:          settings.ExhaleDuration,
		HoldAfterExhale: settings.HoldAfterExhale,
	}
	return fmt.Sprintf("%s s", preset.Pattern())
}

func phaseStatus(phase breath.PhaseKind) string {
	switch phase {
	case breath.PhaseInhale:
		return "breathing in"
	case breath.PhaseExhale:
		return "breathing out"
	case breath.PhaseHoldAfterInhale, breath.PhaseHoldAfterExhale:
		return "holding"
	default:
		return string(phase)
	}
}

func opacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}
