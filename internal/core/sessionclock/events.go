package sessionclock

import (
	"fmt"
	"image/color"
	"time"
)

// Phase represents the interval kind the clock is counting down.
type Phase string

const (
	PhaseFocus      Phase = "focus"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// Label returns the display name for the phase.
func (phase Phase) Label() string {
	switch phase {
	case PhaseShortBreak:
		return "SHORT BREAK"
	case PhaseLongBreak:
		return "LONG BREAK"
	default:
		return "FOCUS PHASE"
	}
}

// Color returns the accent color for the phase.
func (phase Phase) Color() color.NRGBA {
	switch phase {
	case PhaseShortBreak:
		return color.NRGBA{R: 158, G: 206, B: 106, A: 255}
	case PhaseLongBreak:
		return color.NRGBA{R: 125, G: 207, B: 255, A: 255}
	default:
		return color.NRGBA{R: 243, G: 139, B: 168, A: 255}
	}
}

// EventType defines the type of clock event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventIdlePause   EventType = "idle_pause"
	EventIdleError   EventType = "idle_error"
)

// Event represents a clock update for observers.
type Event struct {
	Type      EventType
	Phase     Phase
	Remaining time.Duration
	Progress  float64
	Sessions  int
	Running   bool
	Message   string
	At        time.Time
}

// FormatClock renders a remaining duration as MM:SS.
func FormatClock(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
