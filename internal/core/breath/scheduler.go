package breath

import "time"

// RuntimeState is the scheduler's position in the breath cycle.
type RuntimeState struct {
	Running bool
	Phase   PhaseKind
	Elapsed time.Duration
}

// SampleEvent describes why a Sample was produced.
type SampleEvent int

const (
	// SampleProgress is an ordinary in-phase sample.
	SampleProgress SampleEvent = iota
	// SampleComplete is the terminal sample of a phase, taken at its duration.
	SampleComplete
	// SampleEnter marks the first instant of a newly entered phase.
	SampleEnter
)

// Sample is one point the consumer must render during a tick.
type Sample struct {
	Event   SampleEvent
	Phase   PhaseKind
	Elapsed time.Duration
}

// Scheduler sequences Inhale, HoldAfterInhale, Exhale and HoldAfterExhale
// forever while running. It is the only writer of RuntimeState.
type Scheduler struct {
	phases         Phases
	state          RuntimeState
	carryRemainder bool
}

// NewScheduler creates a stopped scheduler positioned at the start of Inhale.
func NewScheduler(phases Phases, carryRemainder bool) *Scheduler {
	return &Scheduler{
		phases:         phases,
		state:          RuntimeState{Phase: PhaseInhale},
		carryRemainder: carryRemainder,
	}
}

// Start resets the cycle to the beginning of Inhale. It reports false and
// changes nothing when already running.
func (scheduler *Scheduler) Start() bool {
	if scheduler.state.Running {
		return false
	}
	scheduler.state = RuntimeState{
		Running: true,
		Phase:   PhaseInhale,
	}
	return true
}

// Stop freezes the state in place. It reports false when already stopped.
func (scheduler *Scheduler) Stop() bool {
	if !scheduler.state.Running {
		return false
	}
	scheduler.state.Running = false
	return true
}

// IsRunning reports whether ticks advance the cycle.
func (scheduler *Scheduler) IsRunning() bool {
	return scheduler.state.Running
}

// State returns a copy of the runtime state.
func (scheduler *Scheduler) State() RuntimeState {
	return scheduler.state
}

// Phases returns the phase specs driving the cycle.
func (scheduler *Scheduler) Phases() Phases {
	return scheduler.phases
}

// Tick advances the current phase by dt and returns the samples to render,
// in order. A completed phase yields a terminal sample at exactly its
// duration followed by an enter sample of the next phase at zero elapsed.
// Time past the boundary is dropped unless the scheduler carries the
// remainder, in which case at most one full cycle is crossed per tick.
// Negative dt counts as zero. A stopped scheduler returns nil.
func (scheduler *Scheduler) Tick(dt time.Duration) []Sample {
	if !scheduler.state.Running {
		return nil
	}
	if dt < 0 {
		dt = 0
	}

	var samples []Sample
	remaining := dt
	for crossed := 0; ; crossed++ {
		duration := scheduler.phases.Spec(scheduler.state.Phase).EffectiveDuration()
		scheduler.state.Elapsed += remaining
		if scheduler.state.Elapsed < duration {
			return append(samples, Sample{
				Event:   SampleProgress,
				Phase:   scheduler.state.Phase,
				Elapsed: scheduler.state.Elapsed,
			})
		}

		overflow := scheduler.state.Elapsed - duration
		samples = append(samples, Sample{
			Event:   SampleComplete,
			Phase:   scheduler.state.Phase,
			Elapsed: duration,
		})

		scheduler.state.Phase = scheduler.next(scheduler.state.Phase)
		scheduler.state.Elapsed = 0
		samples = append(samples, Sample{
			Event: SampleEnter,
			Phase: scheduler.state.Phase,
		})

		if !scheduler.carryRemainder || overflow <= 0 || crossed+1 >= len(Cycle) {
			return samples
		}
		remaining = overflow
	}
}

// next returns the phase after kind, skipping holds configured with a
// non-positive duration.
func (scheduler *Scheduler) next(kind PhaseKind) PhaseKind {
	next := kind.Next()
	if next.IsHold() && scheduler.phases.Spec(next).Duration <= 0 {
		next = next.Next()
	}
	return next
}
