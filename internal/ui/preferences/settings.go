package preferences

import (
	"time"

	"pomodoro/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	FocusMinutes      int
	ShortBreakMinutes int
	LongBreakMinutes  int
	AlarmPath         string
	IdlePauseEnabled  bool
	LaunchAtLogin     bool
}

// DefaultSettings returns the out-of-the-box preferences.
func DefaultSettings() Settings {
	return Settings{
		FocusMinutes:      25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		AlarmPath:         "alarm.mp3",
		IdlePauseEnabled:  false,
		LaunchAtLogin:     false,
	}
}

// ClockConfig converts settings to the session clock configuration.
func (settings Settings) ClockConfig() model.Config {
	return model.Config{
		Focus:      time.Duration(settings.FocusMinutes) * time.Minute,
		ShortBreak: time.Duration(settings.ShortBreakMinutes) * time.Minute,
		LongBreak:  time.Duration(settings.LongBreakMinutes) * time.Minute,
		AlarmPath:  settings.AlarmPath,

		IdlePauseEnabled:  settings.IdlePauseEnabled,
		IdlePauseAfter:    5 * time.Minute,
		IdleCheckInterval: 5 * time.Second,
	}
}
