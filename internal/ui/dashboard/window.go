package dashboard

import (
	"fmt"
	"image/color"
	"time"

	"pomodoro/internal/core/sessionclock"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines dashboard action handlers.
type Callbacks struct {
	OnToggle   func()
	OnReset    func()
	OnSettings func()
}

// Window is the main timer window.
type Window struct {
	window        fyne.Window
	timerLabel    *canvas.Text
	phaseLabel    *canvas.Text
	progressBar   *widget.ProgressBar
	sessionsLabel *widget.Label
	toggleButton  *widget.Button
	callbacks     Callbacks
}

// New creates the dashboard window and paints the initial state.
func New(app fyne.App, state sessionclock.SessionState, callbacks Callbacks) *Window {
	window := app.NewWindow("Pomodoro")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	timerLabel := canvas.NewText(sessionclock.FormatClock(state.Remaining), color.NRGBA{R: 235, G: 235, B: 245, A: 255})
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 56

	phaseLabel := canvas.NewText(state.Phase.Label(), state.Phase.Color())
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	phaseLabel.TextSize = 18

	progressBar := widget.NewProgressBar()
	progressBar.SetValue(1)
	progressBar.TextFormatter = func() string { return "" }

	sessionsLabel := widget.NewLabel(sessionsText(state.Sessions))
	sessionsLabel.Alignment = fyne.TextAlignCenter

	toggleButton := widget.NewButton("Start", nil)
	resetButton := widget.NewButton("Reset", nil)
	settingsButton := widget.NewButton("Settings", nil)
	buttons := container.NewHBox(layout.NewSpacer(), toggleButton, resetButton, settingsButton, layout.NewSpacer())

	content := container.NewVBox(
		phaseLabel,
		timerLabel,
		progressBar,
		sessionsLabel,
		buttons,
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(360, 300))
	window.SetFixedSize(true)

	dashboard := &Window{
		window:        window,
		timerLabel:    timerLabel,
		phaseLabel:    phaseLabel,
		progressBar:   progressBar,
		sessionsLabel: sessionsLabel,
		toggleButton:  toggleButton,
		callbacks:     callbacks,
	}

	toggleButton.OnTapped = func() {
		if dashboard.callbacks.OnToggle != nil {
			dashboard.callbacks.OnToggle()
		}
	}
	resetButton.OnTapped = func() {
		if dashboard.callbacks.OnReset != nil {
			dashboard.callbacks.OnReset()
		}
	}
	settingsButton.OnTapped = func() {
		if dashboard.callbacks.OnSettings != nil {
			dashboard.callbacks.OnSettings()
		}
	}

	return dashboard
}

// Show displays the dashboard window.
func (dashboard *Window) Show() {
	dashboard.window.Show()
	dashboard.window.RequestFocus()
}

// HideOnClose makes the close button hide the window instead of quitting,
// for tray-capable platforms.
func (dashboard *Window) HideOnClose() {
	dashboard.window.SetCloseIntercept(func() {
		dashboard.window.Hide()
	})
}

// Apply repaints the dashboard from clock state. Callers must be on the
// fyne thread (wrap with fyne.Do from observer goroutines).
func (dashboard *Window) Apply(phase sessionclock.Phase, remaining time.Duration, progress float64, sessions int, running bool) {
	dashboard.timerLabel.Text = sessionclock.FormatClock(remaining)
	dashboard.timerLabel.Refresh()

	dashboard.phaseLabel.Text = phase.Label()
	dashboard.phaseLabel.Color = phase.Color()
	dashboard.phaseLabel.Refresh()

	dashboard.progressBar.SetValue(progress)
	dashboard.sessionsLabel.SetText(sessionsText(sessions))

	if running {
		dashboard.toggleButton.SetText("Pause")
	} else {
		dashboard.toggleButton.SetText("Start")
	}
}

func sessionsText(sessions int) string {
	return fmt.Sprintf("Completed sessions: %d", sessions)
}
