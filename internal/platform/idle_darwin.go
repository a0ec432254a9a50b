package platform

import (
	"time"

	"pomodoro/internal/core/sessionclock"
)

type idleProvider struct{}

func newIdleProvider() IdleProvider {
	return &idleProvider{}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	return 0, sessionclock.ErrIdleUnsupported
}
