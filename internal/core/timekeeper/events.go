package timekeeper

import (
	"time"

	"campuszen/internal/core/breath"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventPhaseChange EventType = "phase_change"
	EventProgress    EventType = "progress"
	EventRunning     EventType = "running"
	EventIdle        EventType = "idle"
	EventIdleError   EventType = "idle_error"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type     EventType
	Phase    breath.PhaseKind
	Running  bool
	Idle     bool
	Progress float64
	Output   breath.VisualOutput
	Message  string
	At       time.Time
}
