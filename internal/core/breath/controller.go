package breath

import (
	"time"

	"campuszen/internal/core/model"
)

// PulseSink receives the uniform scale and opacity of the pulsing shape.
type PulseSink interface {
	SetPulse(scale, alpha float64)
}

// LabelSink receives the label text and its opacity.
type LabelSink interface {
	SetLabel(text string, alpha float64)
}

// VisualOutput is what the presentation shows after a tick.
type VisualOutput struct {
	Scale      float64
	PulseAlpha float64
	LabelText  string
	LabelAlpha float64
}

// Controller owns the configuration and the sinks and applies the
// scheduler's samples to them. It is not safe for concurrent use; the host
// loop serializes Tick, Start and Stop.
type Controller struct {
	config    model.BreathConfig
	phases    Phases
	fade      FadeConfig
	scheduler *Scheduler
	pulse     PulseSink
	label     LabelSink
	output    VisualOutput
}

// NewController creates a stopped controller. Either sink may be nil.
func NewController(config model.BreathConfig, pulse PulseSink, label LabelSink) *Controller {
	phases := PhasesFromConfig(config)
	return &Controller{
		config: config,
		phases: phases,
		fade: FadeConfig{
			FadeIn:  config.LabelFadeInDuration,
			FadeOut: config.LabelFadeOutDuration,
		},
		scheduler: NewScheduler(phases, config.CarryRemainder),
		pulse:     pulse,
		label:     label,
		output: VisualOutput{
			Scale:      clampPulse(Pulse{Scale: phases.Inhale.ScaleFrom}).Scale,
			PulseAlpha: clamp01(phases.Inhale.AlphaFrom),
		},
	}
}

// Config returns the configuration the controller was built with.
func (controller *Controller) Config() model.BreathConfig {
	return controller.config
}

// Start begins a fresh cycle at the start of Inhale and writes the rest
// pose. It does nothing when already running.
func (controller *Controller) Start() {
	if !controller.scheduler.Start() {
		return
	}
	inhale := controller.phases.Inhale
	controller.writePulse(Pulse{Scale: inhale.ScaleFrom, Alpha: inhale.AlphaFrom})
	controller.enterPhase(PhaseInhale)
}

// Stop freezes the animation where it is. The last output stays on the
// sinks until the next Start.
func (controller *Controller) Stop() {
	controller.scheduler.Stop()
}

// IsRunning reports whether the guide is animating.
func (controller *Controller) IsRunning() bool {
	return controller.scheduler.IsRunning()
}

// Attach is called when the presentation becomes visible.
func (controller *Controller) Attach() {
	if controller.config.PlayOnAttach {
		controller.Start()
	}
}

// Detach is called when the presentation is hidden.
func (controller *Controller) Detach() {
	controller.Stop()
}

// State returns a copy of the scheduler's runtime state.
func (controller *Controller) State() RuntimeState {
	return controller.scheduler.State()
}

// Phases returns the phase specs derived from the configuration.
func (controller *Controller) Phases() Phases {
	return controller.phases
}

// Output returns the last visual output.
func (controller *Controller) Output() VisualOutput {
	return controller.output
}

// Tick advances the guide by dt and writes the result to the sinks.
// While stopped it returns the frozen output unchanged.
func (controller *Controller) Tick(dt time.Duration) VisualOutput {
	for _, sample := range controller.scheduler.Tick(dt) {
		switch sample.Event {
		case SampleEnter:
			controller.enterPhase(sample.Phase)
		case SampleComplete:
			controller.render(sample.Phase, sample.Elapsed)
			if !sample.Phase.IsHold() {
				controller.writeLabel(controller.output.LabelText, 0)
			}
		default:
			controller.render(sample.Phase, sample.Elapsed)
		}
	}
	return controller.output
}

// render writes the phase's output at elapsed. Holds leave the pulse at the
// values reached by the preceding animated phase.
func (controller *Controller) render(kind PhaseKind, elapsed time.Duration) {
	spec := controller.phases.Spec(kind)
	if kind.IsHold() {
		controller.writeLabel(controller.output.LabelText, 0)
		return
	}
	controller.writePulse(PulseAt(spec, elapsed))
	window := NewFadeWindow(spec.Duration, controller.fade)
	controller.writeLabel(controller.output.LabelText, LabelAlpha(spec, window, elapsed))
}

func (controller *Controller) enterPhase(kind PhaseKind) {
	spec := controller.phases.Spec(kind)
	if kind.IsHold() {
		controller.writeLabel(controller.output.LabelText, 0)
		return
	}
	window := NewFadeWindow(spec.Duration, controller.fade)
	controller.writeLabel(spec.Label, LabelAlphaAtStart(spec, window))
}

func (controller *Controller) writePulse(pulse Pulse) {
	pulse = clampPulse(pulse)
	controller.output.Scale = pulse.Scale
	controller.output.PulseAlpha = pulse.Alpha
	if controller.pulse != nil {
		controller.pulse.SetPulse(pulse.Scale, pulse.Alpha)
	}
}

func (controller *Controller) writeLabel(text string, alpha float64) {
	alpha = clamp01(alpha)
	controller.output.LabelText = text
	controller.output.LabelAlpha = alpha
	if controller.label != nil {
		controller.label.SetLabel(text, alpha)
	}
}
