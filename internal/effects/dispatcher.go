package effects

import (
	"log"

	"pomodoro/internal/core/sessionclock"

	"fyne.io/fyne/v2"
)

// AlarmPlayer plays an alarm sound to completion.
type AlarmPlayer interface {
	Play(path string) error
}

// Notifier posts a desktop notification.
type Notifier interface {
	Notify(title, body string)
}

// Dispatcher fires phase-completion side effects. Both effects run on
// detached goroutines with owned copies of their payload: they are never
// joined or cancelled, and their failures never reach the session clock.
type Dispatcher struct {
	player   AlarmPlayer
	notifier Notifier
}

// New creates a Dispatcher.
func New(player AlarmPlayer, notifier Notifier) *Dispatcher {
	return &Dispatcher{player: player, notifier: notifier}
}

// PhaseComplete implements sessionclock.Effects.
func (dispatcher *Dispatcher) PhaseComplete(transition sessionclock.Transition) {
	alarmPath := transition.AlarmPath
	body := transition.Body

	if dispatcher.player != nil {
		go func() {
			if err := dispatcher.player.Play(alarmPath); err != nil {
				log.Printf("alarm playback: %v", err)
			}
		}()
	}

	if dispatcher.notifier != nil {
		go dispatcher.notifier.Notify(sessionclock.NotificationTitle, body)
	}
}

// FyneNotifier posts notifications through the running fyne application.
type FyneNotifier struct {
	app fyne.App
}

// NewFyneNotifier creates a notifier backed by the fyne app.
func NewFyneNotifier(app fyne.App) *FyneNotifier {
	return &FyneNotifier{app: app}
}

// Notify posts a system notification. Delivery failures are the OS's
// business; fyne surfaces none, and the timer never waits on them.
func (notifier *FyneNotifier) Notify(title, body string) {
	notifier.app.SendNotification(fyne.NewNotification(title, body))
}
