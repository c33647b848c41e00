package timekeeper

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"campuszen/internal/core/breath"
	"campuszen/internal/core/model"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Clock is the source of wall time for the update loop.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Guide is the breathing engine driven by the TimeKeeper.
type Guide interface {
	Tick(dt time.Duration) breath.VisualOutput
	Start()
	Stop()
	Attach()
	Detach()
	IsRunning() bool
	State() breath.RuntimeState
	Output() breath.VisualOutput
	Phases() breath.Phases
	Config() model.BreathConfig
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval     time.Duration
	ProgressInterval time.Duration
	Clock            Clock

	IdleEnabled       bool
	IdleAfter         time.Duration
	IdleCheckInterval time.Duration
}

// TimeKeeper is the host update loop. It measures frame time, scales it
// for the host clock and ticks the guide once per frame. Guide control
// calls share the loop's mutex, so they always land between two ticks.
type TimeKeeper struct {
	mu               sync.Mutex
	options          Config
	guide            Guide
	timeScale        float64
	resumeScale      float64
	paused           bool
	lastStep         time.Time
	lastPhase        breath.PhaseKind
	lastProgressSent time.Time
	idleChecker      IdleChecker
	lastIdleCheck    time.Time
	idle             bool
	events           []chan Event
	stopCh           chan struct{}
	running          bool
}

// New creates a TimeKeeper driving guide.
func New(guide Guide, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = 16 * time.Millisecond
	}
	if options.ProgressInterval <= 0 {
		options.ProgressInterval = 250 * time.Millisecond
	}
	if options.IdleCheckInterval <= 0 {
		options.IdleCheckInterval = 5 * time.Second
	}
	if options.Clock == nil {
		options.Clock = systemClock{}
	}

	return &TimeKeeper{
		options:     options,
		guide:       guide,
		timeScale:   1,
		resumeScale: 1,
	}
}

// SetIdleChecker injects an idle checker.
func (keeper *TimeKeeper) SetIdleChecker(checker IdleChecker) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.idleChecker = checker
}

// UpdateIdle changes idle detection options. The next step checks at once.
func (keeper *TimeKeeper) UpdateIdle(enabled bool, after time.Duration) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.options.IdleEnabled = enabled
	if after > 0 {
		keeper.options.IdleAfter = after
	}
	keeper.lastIdleCheck = time.Time{}
	if !enabled {
		keeper.idle = false
	}
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Start launches the update loop.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	if keeper.running {
		keeper.mu.Unlock()
		return
	}
	keeper.running = true
	stopCh := make(chan struct{})
	keeper.stopCh = stopCh
	keeper.lastStep = time.Time{}
	keeper.lastIdleCheck = time.Time{}
	keeper.mu.Unlock()

	slog.Info("timekeeper started", "tick_interval", keeper.options.TickInterval)
	go keeper.run(stopCh)
}

// Stop terminates the update loop and closes observers.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}
	close(keeper.stopCh)
	keeper.running = false
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
	slog.Info("timekeeper stopped")
}

// Attach tells the guide its presentation became visible.
func (keeper *TimeKeeper) Attach() {
	keeper.control(Guide.Attach)
}

// Detach tells the guide its presentation was hidden.
func (keeper *TimeKeeper) Detach() {
	keeper.control(Guide.Detach)
}

// StartGuide starts the breathing cycle from the beginning of inhale.
func (keeper *TimeKeeper) StartGuide() {
	keeper.control(Guide.Start)
}

// StopGuide freezes the breathing cycle.
func (keeper *TimeKeeper) StopGuide() {
	keeper.control(Guide.Stop)
}

// IsGuideRunning reports whether the guide is animating.
func (keeper *TimeKeeper) IsGuideRunning() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.guide.IsRunning()
}

// SetGuide swaps the driven guide, carrying over its running state.
func (keeper *TimeKeeper) SetGuide(guide Guide) {
	keeper.mu.Lock()
	wasRunning := keeper.guide.IsRunning()
	keeper.guide.Stop()
	keeper.guide = guide
	if wasRunning {
		keeper.guide.Start()
	}
	keeper.afterControlLocked(wasRunning, keeper.options.Clock.Now())
	keeper.mu.Unlock()
}

// SetTimeScale sets the host time scale. Negative values count as zero.
// Guides configured for unscaled time ignore it.
func (keeper *TimeKeeper) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.paused {
		keeper.resumeScale = scale
		return
	}
	keeper.timeScale = scale
}

// TimeScale returns the effective host time scale.
func (keeper *TimeKeeper) TimeScale() float64 {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.timeScale
}

// Pause sets the host time scale to zero.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.paused {
		return
	}
	keeper.paused = true
	keeper.resumeScale = keeper.timeScale
	keeper.timeScale = 0
}

// Resume restores the time scale in effect before Pause.
func (keeper *TimeKeeper) Resume() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.paused {
		return
	}
	keeper.paused = false
	keeper.timeScale = keeper.resumeScale
}

// IsPaused reports whether host time is paused.
func (keeper *TimeKeeper) IsPaused() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.paused
}

// Step runs one frame at now. The first frame after Start measures no time.
func (keeper *TimeKeeper) Step(now time.Time) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	var frame time.Duration
	if !keeper.lastStep.IsZero() {
		frame = now.Sub(keeper.lastStep)
	}
	keeper.lastStep = now
	if frame < 0 {
		frame = 0
	}

	keeper.handleIdleCheckLocked(now)

	if !keeper.guide.IsRunning() {
		return
	}
	dt := frame
	if !keeper.guide.Config().UseUnscaledTime {
		dt = time.Duration(float64(frame) * keeper.timeScale)
	}
	output := keeper.guide.Tick(dt)
	keeper.reportLocked(output, now)
}

func (keeper *TimeKeeper) run(stopCh <-chan struct{}) {
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			keeper.Step(keeper.options.Clock.Now())
		}
	}
}

func (keeper *TimeKeeper) control(action func(Guide)) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	wasRunning := keeper.guide.IsRunning()
	action(keeper.guide)
	keeper.afterControlLocked(wasRunning, keeper.options.Clock.Now())
}

func (keeper *TimeKeeper) afterControlLocked(wasRunning bool, now time.Time) {
	isRunning := keeper.guide.IsRunning()
	if isRunning == wasRunning {
		return
	}
	keeper.emitLocked(Event{
		Type:    EventRunning,
		Running: isRunning,
		Output:  keeper.guide.Output(),
		At:      now,
	})
	if isRunning {
		keeper.lastPhase = ""
		keeper.lastProgressSent = time.Time{}
		keeper.reportLocked(keeper.guide.Output(), now)
	}
}

func (keeper *TimeKeeper) reportLocked(output breath.VisualOutput, now time.Time) {
	state := keeper.guide.State()
	progress := breath.Progress(state.Elapsed, keeper.guide.Phases().Spec(state.Phase).Duration)

	if state.Phase != keeper.lastPhase {
		keeper.lastPhase = state.Phase
		keeper.emitLocked(Event{
			Type:     EventPhaseChange,
			Phase:    state.Phase,
			Running:  state.Running,
			Progress: progress,
			Output:   output,
			At:       now,
		})
		return
	}

	if keeper.lastProgressSent.IsZero() || now.Sub(keeper.lastProgressSent) >= keeper.options.ProgressInterval {
		keeper.lastProgressSent = now
		keeper.emitLocked(Event{
			Type:     EventProgress,
			Phase:    state.Phase,
			Running:  state.Running,
			Progress: progress,
			Output:   output,
			At:       now,
		})
	}
}

func (keeper *TimeKeeper) handleIdleCheckLocked(now time.Time) {
	if !keeper.options.IdleEnabled || keeper.idleChecker == nil {
		return
	}
	if !keeper.lastIdleCheck.IsZero() && now.Sub(keeper.lastIdleCheck) < keeper.options.IdleCheckInterval {
		return
	}
	keeper.lastIdleCheck = now

	idleDuration, err := keeper.idleChecker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			keeper.options.IdleEnabled = false
		}
		slog.Warn("idle check failed", "error", err)
		keeper.emitLocked(Event{
			Type:    EventIdleError,
			Message: err.Error(),
			At:      now,
		})
		return
	}

	idle := idleDuration >= keeper.options.IdleAfter
	if idle == keeper.idle {
		return
	}
	keeper.idle = idle
	keeper.emitLocked(Event{
		Type: EventIdle,
		Idle: idle,
		At:   now,
	})
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	events := append([]chan Event(nil), keeper.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
