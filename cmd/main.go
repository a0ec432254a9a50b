package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"pomodoro/internal/audio"
	"pomodoro/internal/core/sessionclock"
	"pomodoro/internal/effects"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/dashboard"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "Pomodoro"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.pomodoro.app")
	fyneApp.SetIcon(resources.MustLogo("pomodoro.png"))

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v (using defaults)", err)
	}

	clock := sessionclock.New(settings.ClockConfig(), sessionclock.Options{TickInterval: time.Second})
	clock.SetIdleChecker(platform.NewIdleProvider())

	player := audio.NewPlayer(resources.MustChime())
	clock.SetEffects(effects.New(player, effects.NewFyneNotifier(fyneApp)))

	platformService := platform.NewService()

	prefsWindow := preferences.NewWindow(fyneApp, settings, func(updated preferences.Settings) {
		autostartChanged := updated.LaunchAtLogin != settings.LaunchAtLogin
		settings = updated
		if err := storage.SaveSettings(appName, settings); err != nil {
			log.Printf("save settings: %v (change kept for this session only)", err)
		}
		clock.UpdateConfig(settings.ClockConfig())
		if autostartChanged {
			applyAutostart(platformService, settings.LaunchAtLogin)
		}
	})

	dashboardWindow := dashboard.New(fyneApp, clock.Snapshot(), dashboard.Callbacks{
		OnToggle: clock.Toggle,
		OnReset:  clock.Reset,
		OnSettings: func() {
			prefsWindow.Show()
		},
	})

	activeIcon := resources.MustLogo("pomodoro.png")
	pausedIcon := resources.MustLogo("pomodoro_paused.png")

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:   dashboardWindow.Show,
			OnToggle: clock.Toggle,
			OnReset:  clock.Reset,
			OnPreferences: func() {
				prefsWindow.Show()
			},
			OnQuit: func() {
				clock.Stop()
				fyneApp.Quit()
			},
		})
		desktopApp.SetSystemTrayIcon(pausedIcon)
		dashboardWindow.HideOnClose()
	}

	events := clock.Subscribe(8)
	go func() {
		for event := range events {
			handleEvent(event, dashboardWindow, trayManager, desktopApp, activeIcon, pausedIcon)
		}
	}()

	clock.Start()
	defer clock.Stop()

	dashboardWindow.Show()
	fyneApp.Run()
}

func handleEvent(event sessionclock.Event, dashboardWindow *dashboard.Window, trayManager *tray.Manager, desktopApp desktop.App, activeIcon, pausedIcon fyne.Resource) {
	if event.Type == sessionclock.EventIdleError {
		log.Printf("idle check: %s", event.Message)
		return
	}

	fyne.Do(func() {
		dashboardWindow.Apply(event.Phase, event.Remaining, event.Progress, event.Sessions, event.Running)
		if trayManager == nil {
			return
		}
		trayManager.SetStatus(trayStatus(event))
		trayManager.SetRunning(event.Running)
		if event.Running {
			desktopApp.SetSystemTrayIcon(activeIcon)
		} else {
			desktopApp.SetSystemTrayIcon(pausedIcon)
		}
	})
}

func trayStatus(event sessionclock.Event) string {
	phase := strings.ReplaceAll(string(event.Phase), "_", " ")
	if !event.Running {
		return fmt.Sprintf("%s %s (paused)", phase, sessionclock.FormatClock(event.Remaining))
	}
	return fmt.Sprintf("%s %s", phase, sessionclock.FormatClock(event.Remaining))
}

func applyAutostart(service platform.Service, enabled bool) {
	if !enabled {
		if err := service.DisableAutostart(appName); err != nil {
			log.Printf("disable autostart: %v", err)
		}
		return
	}

	execPath, err := os.Executable()
	if err != nil {
		log.Printf("enable autostart: resolve executable: %v", err)
		return
	}
	if err := service.EnableAutostart(appName, execPath); err != nil {
		log.Printf("enable autostart: %v", err)
	}
}
