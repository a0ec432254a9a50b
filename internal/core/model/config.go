package model

import "time"

// Config contains runtime settings for the session clock state machine.
// Phase durations are strictly positive.
type Config struct {
	Focus      time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
	AlarmPath  string

	IdlePauseEnabled  bool
	IdlePauseAfter    time.Duration
	IdleCheckInterval time.Duration
}
