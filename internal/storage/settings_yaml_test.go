package storage

import (
	"os"
	"path/filepath"
	"testing"

	"pomodoro/internal/ui/preferences"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	settings, err := loadFromPath(path)

	if err != nil {
		t.Fatalf("missing file must not surface an error, got %v", err)
	}
	if settings != preferences.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", settings)
	}
}

func TestLoadCorruptFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("{not: [valid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := loadFromPath(path)

	if err == nil {
		t.Error("corrupt file should return an advisory error")
	}
	if settings != preferences.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", settings)
	}
}

func TestLoadIgnoresNonPositiveDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	raw := "focus_minutes: -3\nshort_break_minutes: 0\nlong_break_minutes: 20\nalarm_path: chime.ogg\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath: %v", err)
	}

	defaults := preferences.DefaultSettings()
	if settings.FocusMinutes != defaults.FocusMinutes {
		t.Errorf("focus minutes = %d, want default %d", settings.FocusMinutes, defaults.FocusMinutes)
	}
	if settings.ShortBreakMinutes != defaults.ShortBreakMinutes {
		t.Errorf("short break minutes = %d, want default %d", settings.ShortBreakMinutes, defaults.ShortBreakMinutes)
	}
	if settings.LongBreakMinutes != 20 {
		t.Errorf("long break minutes = %d, want 20", settings.LongBreakMinutes)
	}
	if settings.AlarmPath != "chime.ogg" {
		t.Errorf("alarm path = %q, want %q", settings.AlarmPath, "chime.ogg")
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	want := preferences.Settings{
		FocusMinutes:      50,
		ShortBreakMinutes: 10,
		LongBreakMinutes:  30,
		AlarmPath:         "/sounds/bell.wav",
		IdlePauseEnabled:  true,
		LaunchAtLogin:     true,
	}

	if err := saveToPath(path, want); err != nil {
		t.Fatalf("saveToPath: %v", err)
	}
	got, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath: %v", err)
	}

	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
