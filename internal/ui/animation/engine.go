// Package animation renders the breathing guide's output with fyne and
// holds the built-in breathing presets.
package animation

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// Style defines the pulse and label colors and sizing.
type Style struct {
	Fill      color.NRGBA
	Stroke    color.NRGBA
	Text      color.NRGBA
	TextSize  float32
	BaseRatio float32
}

// DefaultStyle returns a soft teal pulse with white text.
func DefaultStyle() Style {
	return Style{
		Fill:      color.NRGBA{R: 94, G: 196, B: 182, A: 255},
		Stroke:    color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Text:      color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		TextSize:  24,
		BaseRatio: 0.55,
	}
}

// Engine writes breathing output onto a fyne circle and text. It
// implements the guide's pulse and label sinks; writes are marshalled to
// the fyne main goroutine.
type Engine struct {
	style   Style
	circle  *canvas.Circle
	label   *canvas.Text
	content *fyne.Container
	scale   float32
}

// New creates the canvas objects for the pulse and the label.
func New(style Style) *Engine {
	if style.BaseRatio <= 0 {
		style.BaseRatio = DefaultStyle().BaseRatio
	}

	circle := canvas.NewCircle(style.Fill)
	circle.StrokeColor = withAlpha(style.Stroke, 0.35)
	circle.StrokeWidth = 2

	label := canvas.NewText("", withAlpha(style.Text, 0))
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.TextSize = style.TextSize

	engine := &Engine{
		style:  style,
		circle: circle,
		label:  label,
		scale:  1,
	}
	engine.content = container.New(&pulseLayout{engine: engine}, circle, label)
	return engine
}

// Content returns the canvas object to place in a window.
func (engine *Engine) Content() fyne.CanvasObject {
	return engine.content
}

// SetPulse applies the uniform scale and opacity to the circle.
func (engine *Engine) SetPulse(scale, alpha float64) {
	fyne.Do(func() {
		engine.scale = float32(scale)
		engine.circle.FillColor = withAlpha(engine.style.Fill, alpha)
		engine.circle.StrokeColor = withAlpha(engine.style.Stroke, alpha*0.35)
		engine.content.Refresh()
	})
}

// SetLabel applies the text and its opacity to the label.
func (engine *Engine) SetLabel(text string, alpha float64) {
	fyne.Do(func() {
		engine.label.Text = text
		engine.label.Color = withAlpha(engine.style.Text, alpha)
		engine.label.Refresh()
	})
}

func withAlpha(base color.NRGBA, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	base.A = uint8(math.Round(alpha * 255))
	return base
}

type pulseLayout struct {
	engine *Engine
}

func (layout *pulseLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	circle := objects[0]
	label := objects[1]

	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	diameter := side * layout.engine.style.BaseRatio * layout.engine.scale
	if diameter < 0 {
		diameter = 0
	}
	circle.Resize(fyne.NewSize(diameter, diameter))
	circle.Move(fyne.NewPos((size.Width-diameter)/2, (size.Height-diameter)/2))

	labelSize := label.MinSize()
	label.Resize(fyne.NewSize(size.Width, labelSize.Height))
	label.Move(fyne.NewPos(0, (size.Height-labelSize.Height)/2))
}

func (layout *pulseLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 2 {
		return fyne.NewSize(0, 0)
	}
	labelSize := objects[1].MinSize()
	side := labelSize.Width
	if side < 160 {
		side = 160
	}
	return fyne.NewSize(side, side)
}
