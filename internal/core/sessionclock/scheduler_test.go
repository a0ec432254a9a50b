package sessionclock

import (
	"testing"
	"time"
)

func TestNextPhaseCadence(t *testing.T) {
	tests := []struct {
		name         string
		current      Phase
		sessions     int
		wantPhase    Phase
		wantSessions int
		wantBody     string
	}{
		{name: "first focus ends in short break", current: PhaseFocus, sessions: 0, wantPhase: PhaseShortBreak, wantSessions: 1, wantBody: "Phase Complete!"},
		{name: "third focus ends in short break", current: PhaseFocus, sessions: 2, wantPhase: PhaseShortBreak, wantSessions: 3, wantBody: "Phase Complete!"},
		{name: "fourth focus ends in long break", current: PhaseFocus, sessions: 3, wantPhase: PhaseLongBreak, wantSessions: 4, wantBody: "Phase Complete!"},
		{name: "fifth focus ends in short break", current: PhaseFocus, sessions: 4, wantPhase: PhaseShortBreak, wantSessions: 5, wantBody: "Phase Complete!"},
		{name: "eighth focus ends in long break", current: PhaseFocus, sessions: 7, wantPhase: PhaseLongBreak, wantSessions: 8, wantBody: "Phase Complete!"},
		{name: "short break returns to focus", current: PhaseShortBreak, sessions: 3, wantPhase: PhaseFocus, wantSessions: 3, wantBody: "Get to Work!"},
		{name: "long break returns to focus", current: PhaseLongBreak, sessions: 4, wantPhase: PhaseFocus, wantSessions: 4, wantBody: "Get to Work!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phase, sessions, body := NextPhase(tt.current, tt.sessions)

			if phase != tt.wantPhase {
				t.Errorf("NextPhase(%s, %d) phase = %s, want %s", tt.current, tt.sessions, phase, tt.wantPhase)
			}
			if sessions != tt.wantSessions {
				t.Errorf("NextPhase(%s, %d) sessions = %d, want %d", tt.current, tt.sessions, sessions, tt.wantSessions)
			}
			if body != tt.wantBody {
				t.Errorf("NextPhase(%s, %d) body = %q, want %q", tt.current, tt.sessions, body, tt.wantBody)
			}
		})
	}
}

func TestNextPhaseBreakSequence(t *testing.T) {
	wantBreaks := []Phase{PhaseShortBreak, PhaseShortBreak, PhaseShortBreak, PhaseLongBreak, PhaseShortBreak}

	phase := PhaseFocus
	sessions := 0
	for i, want := range wantBreaks {
		var breakPhase Phase
		breakPhase, sessions, _ = NextPhase(phase, sessions)
		if breakPhase != want {
			t.Fatalf("break after focus session %d = %s, want %s", i+1, breakPhase, want)
		}
		phase, sessions, _ = NextPhase(breakPhase, sessions)
		if phase != PhaseFocus {
			t.Fatalf("phase after %s = %s, want %s", breakPhase, phase, PhaseFocus)
		}
	}

	if sessions != len(wantBreaks) {
		t.Errorf("sessions after %d cycles = %d, want %d", len(wantBreaks), sessions, len(wantBreaks))
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name      string
		remaining time.Duration
		want      string
	}{
		{name: "full focus phase", remaining: 25 * time.Minute, want: "25:00"},
		{name: "under a minute", remaining: 59 * time.Second, want: "00:59"},
		{name: "zero", remaining: 0, want: "00:00"},
		{name: "negative clamps to zero", remaining: -time.Second, want: "00:00"},
		{name: "over an hour keeps minutes", remaining: 61 * time.Minute, want: "61:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatClock(tt.remaining); got != tt.want {
				t.Errorf("FormatClock(%v) = %q, want %q", tt.remaining, got, tt.want)
			}
		})
	}
}
