package preferences

import (
	"fmt"
	"path/filepath"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

var audioExtensions = []string{".mp3", ".wav", ".ogg"}

// Window handles the settings UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	focusEntry *widget.Entry
	shortEntry *widget.Entry
	longEntry  *widget.Entry
	alarmLabel *widget.Label
	idleCheck  *widget.Check
	loginCheck *widget.Check
}

// NewWindow creates a settings window.
func NewWindow(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	focusEntry := widget.NewEntry()
	shortEntry := widget.NewEntry()
	longEntry := widget.NewEntry()
	focusEntry.SetText(fmt.Sprintf("%d", settings.FocusMinutes))
	shortEntry.SetText(fmt.Sprintf("%d", settings.ShortBreakMinutes))
	longEntry.SetText(fmt.Sprintf("%d", settings.LongBreakMinutes))

	alarmLabel := widget.NewLabel(alarmDisplayName(settings.AlarmPath))

	idleCheck := widget.NewCheck("Pause focus timer when idle", nil)
	idleCheck.SetChecked(settings.IdlePauseEnabled)

	loginCheck := widget.NewCheck("Launch at login", nil)
	loginCheck.SetChecked(settings.LaunchAtLogin)

	prefs := &Window{
		window:     window,
		settings:   settings,
		onSave:     onSave,
		focusEntry: focusEntry,
		shortEntry: shortEntry,
		longEntry:  longEntry,
		alarmLabel: alarmLabel,
		idleCheck:  idleCheck,
		loginCheck: loginCheck,
	}

	browseButton := widget.NewButton("Browse...", prefs.handleBrowse)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus"), focusEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), shortEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), longEntry, widget.NewLabel("min")),
		widget.NewLabelWithStyle("Alarm sound", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(alarmLabel, browseButton),
		idleCheck,
		loginCheck,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 340))

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.focusEntry.SetText(fmt.Sprintf("%d", settings.FocusMinutes))
	prefs.shortEntry.SetText(fmt.Sprintf("%d", settings.ShortBreakMinutes))
	prefs.longEntry.SetText(fmt.Sprintf("%d", settings.LongBreakMinutes))
	prefs.alarmLabel.SetText(alarmDisplayName(settings.AlarmPath))
	prefs.idleCheck.SetChecked(settings.IdlePauseEnabled)
	prefs.loginCheck.SetChecked(settings.LaunchAtLogin)
}

func (prefs *Window) handleBrowse() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		prefs.settings.AlarmPath = reader.URI().Path()
		prefs.alarmLabel.SetText(alarmDisplayName(prefs.settings.AlarmPath))
	}, prefs.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(audioExtensions))
	fileDialog.Show()
}

// handleSave applies entry values over the previous settings. Non-numeric
// or non-positive input keeps the previous value.
func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.focusEntry.Text); ok {
		settings.FocusMinutes = minutes
	}
	if minutes, ok := parsePositiveInt(prefs.shortEntry.Text); ok {
		settings.ShortBreakMinutes = minutes
	}
	if minutes, ok := parsePositiveInt(prefs.longEntry.Text); ok {
		settings.LongBreakMinutes = minutes
	}
	settings.IdlePauseEnabled = prefs.idleCheck.Checked
	settings.LaunchAtLogin = prefs.loginCheck.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func alarmDisplayName(path string) string {
	if path == "" {
		return "(built-in chime)"
	}
	return filepath.Base(path)
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
