package overlay

import (
	"image/color"

	"campuszen/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Config defines overlay visuals.
type Config struct {
	Opacity    uint8
	Fullscreen bool
	Title      string
	Subtitle   string
}

// Lifecycle is told when the guide's presentation appears and disappears.
type Lifecycle interface {
	Attach()
	Detach()
}

// Window manages the breathing overlay UI.
type Window struct {
	app           fyne.App
	window        fyne.Window
	config        Config
	engine        *animation.Engine
	titleLabel    *canvas.Text
	subtitleLabel *canvas.Text
	leaveButton   *widget.Button
	background    *canvas.Rectangle
	lifecycle     Lifecycle
	onLeave       func()
	visible       bool
}

const (
	overlayWidthFraction  = float32(0.25)
	overlayHeightFraction = float32(0.45)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window around the engine's canvas objects.
func New(app fyne.App, config Config, engine *animation.Engine) *Window {
	window := app.NewWindow(config.Title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 12, G: 24, B: 32, A: config.Opacity})

	titleLabel := canvas.NewText(config.Title, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 21

	subtitleLabel := canvas.NewText(config.Subtitle, color.NRGBA{R: 200, G: 220, B: 220, A: 255})
	subtitleLabel.Alignment = fyne.TextAlignCenter
	subtitleLabel.TextSize = 14

	leaveButton := widget.NewButton("Leave", nil)

	header := container.NewVBox(titleLabel, subtitleLabel)
	footer := container.NewCenter(leaveButton)
	content := container.NewBorder(header, footer, nil, nil, engine.Content())
	root := container.NewStack(background, container.NewPadded(content))
	window.SetContent(root)

	overlay := &Window{
		app:           app,
		window:        window,
		config:        config,
		engine:        engine,
		titleLabel:    titleLabel,
		subtitleLabel: subtitleLabel,
		leaveButton:   leaveButton,
		background:    background,
	}
	leaveButton.OnTapped = func() {
		if overlay.onLeave != nil {
			overlay.onLeave()
			return
		}
		overlay.Hide()
	}
	window.SetCloseIntercept(leaveButton.OnTapped)

	overlay.applyWindowMode()
	return overlay
}

// SetLifecycle attaches the guide lifecycle driven by Show and Hide.
func (overlay *Window) SetLifecycle(lifecycle Lifecycle) {
	overlay.lifecycle = lifecycle
}

// SetOnLeave sets the handler of the leave button and the window close box.
func (overlay *Window) SetOnLeave(handler func()) {
	overlay.onLeave = handler
}

// Show displays the overlay and attaches the guide.
func (overlay *Window) Show() {
	overlay.applyWindowMode()
	overlay.window.Show()
	overlay.window.RequestFocus()
	overlay.visible = true
	if overlay.lifecycle != nil {
		overlay.lifecycle.Attach()
	}
}

// Hide detaches the guide and hides the overlay. The guide's last frame
// stays on the canvas.
func (overlay *Window) Hide() {
	if overlay.lifecycle != nil {
		overlay.lifecycle.Detach()
	}
	overlay.visible = false
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(false)
	}
	overlay.window.Hide()
}

// Visible reports whether Show was called more recently than Hide.
func (overlay *Window) Visible() bool {
	return overlay.visible
}

// SetSubtitle updates the line under the title, e.g. the preset pattern.
func (overlay *Window) SetSubtitle(text string) {
	overlay.config.Subtitle = text
	overlay.subtitleLabel.Text = text
	overlay.subtitleLabel.Refresh()
}

// UpdateConfig updates overlay visuals.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	overlay.background.FillColor = color.NRGBA{R: 12, G: 24, B: 32, A: config.Opacity}
	overlay.titleLabel.Text = config.Title
	overlay.subtitleLabel.Text = config.Subtitle
	overlay.window.SetTitle(config.Title)
	overlay.applyWindowMode()
	overlay.applyNativeOpacity(config.Opacity)
	canvas.Refresh(overlay.background)
	overlay.titleLabel.Refresh()
	overlay.subtitleLabel.Refresh()
}

func (overlay *Window) applyWindowMode() {
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(true)
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.resizeToScreenFraction()
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * overlayWidthFraction
	height := screenSize.Height * overlayHeightFraction
	minSize := overlay.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}
