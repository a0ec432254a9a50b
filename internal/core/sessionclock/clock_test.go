package sessionclock

import (
	"sync"
	"testing"
	"time"

	"pomodoro/internal/core/model"
)

func testConfig() model.Config {
	return model.Config{
		Focus:      time.Minute,
		ShortBreak: time.Minute,
		LongBreak:  time.Minute,
		AlarmPath:  "alarm.mp3",
	}
}

type recordingEffects struct {
	mu          sync.Mutex
	transitions []Transition
}

func (effects *recordingEffects) PhaseComplete(transition Transition) {
	effects.mu.Lock()
	effects.transitions = append(effects.transitions, transition)
	effects.mu.Unlock()
}

func (effects *recordingEffects) count() int {
	effects.mu.Lock()
	defer effects.mu.Unlock()
	return len(effects.transitions)
}

func (effects *recordingEffects) last() Transition {
	effects.mu.Lock()
	defer effects.mu.Unlock()
	return effects.transitions[len(effects.transitions)-1]
}

type stubIdleChecker struct {
	idle time.Duration
	err  error
}

func (checker *stubIdleChecker) IdleDuration() (time.Duration, error) {
	return checker.idle, checker.err
}

// completeCurrentPhase advances a running clock until the phase changes.
func completeCurrentPhase(t *testing.T, clock *Clock) {
	t.Helper()
	start := clock.Snapshot().Phase
	for i := 0; i < 24*60*60; i++ {
		clock.Advance()
		if clock.Snapshot().Phase != start {
			return
		}
	}
	t.Fatalf("phase %s never completed", start)
}

func TestNewClockInitialState(t *testing.T) {
	config := model.Config{Focus: 25 * time.Minute, ShortBreak: 5 * time.Minute, LongBreak: 15 * time.Minute}
	clock := New(config, Options{})

	state := clock.Snapshot()
	if state.Phase != PhaseFocus {
		t.Errorf("phase = %s, want %s", state.Phase, PhaseFocus)
	}
	if state.Remaining != 25*time.Minute {
		t.Errorf("remaining = %v, want %v", state.Remaining, 25*time.Minute)
	}
	if state.Sessions != 0 {
		t.Errorf("sessions = %d, want 0", state.Sessions)
	}
	if state.Running {
		t.Error("new clock should not be running")
	}
}

func TestAdvanceIgnoredWhileStopped(t *testing.T) {
	clock := New(testConfig(), Options{})

	before := clock.Snapshot()
	for i := 0; i < 10; i++ {
		clock.Advance()
	}
	after := clock.Snapshot()

	if after != before {
		t.Errorf("state changed while stopped: %+v -> %+v", before, after)
	}
}

func TestFocusPhaseCompletion(t *testing.T) {
	clock := New(testConfig(), Options{})
	effects := &recordingEffects{}
	clock.SetEffects(effects)
	clock.Toggle()

	for i := 0; i < 60; i++ {
		clock.Advance()
	}
	state := clock.Snapshot()
	if state.Phase != PhaseFocus {
		t.Fatalf("phase after 60 ticks = %s, want %s", state.Phase, PhaseFocus)
	}
	if state.Remaining != 0 {
		t.Fatalf("remaining after 60 ticks = %v, want 0", state.Remaining)
	}
	if effects.count() != 0 {
		t.Fatalf("effects fired before completion tick: %d", effects.count())
	}

	// The tick that observes zero fires the completion; no decrement happens
	// on that tick.
	clock.Advance()
	state = clock.Snapshot()
	if state.Phase != PhaseShortBreak {
		t.Errorf("phase = %s, want %s", state.Phase, PhaseShortBreak)
	}
	if state.Remaining != time.Minute {
		t.Errorf("remaining = %v, want %v", state.Remaining, time.Minute)
	}
	if state.Sessions != 1 {
		t.Errorf("sessions = %d, want 1", state.Sessions)
	}
	if effects.count() != 1 {
		t.Errorf("effects fired %d times, want 1", effects.count())
	}

	transition := effects.last()
	if transition.From != PhaseFocus || transition.To != PhaseShortBreak {
		t.Errorf("transition = %s -> %s, want %s -> %s", transition.From, transition.To, PhaseFocus, PhaseShortBreak)
	}
	if transition.Body != "Phase Complete!" {
		t.Errorf("transition body = %q, want %q", transition.Body, "Phase Complete!")
	}
	if transition.AlarmPath != "alarm.mp3" {
		t.Errorf("transition alarm path = %q, want %q", transition.AlarmPath, "alarm.mp3")
	}
}

func TestBreakCadenceOverFullCycles(t *testing.T) {
	clock := New(testConfig(), Options{})
	effects := &recordingEffects{}
	clock.SetEffects(effects)
	clock.Toggle()

	wantBreaks := []Phase{PhaseShortBreak, PhaseShortBreak, PhaseShortBreak, PhaseLongBreak, PhaseShortBreak}
	for i, want := range wantBreaks {
		completeCurrentPhase(t, clock)
		state := clock.Snapshot()
		if state.Phase != want {
			t.Fatalf("break after focus session %d = %s, want %s", i+1, state.Phase, want)
		}
		if state.Sessions != i+1 {
			t.Fatalf("sessions after focus session %d = %d, want %d", i+1, state.Sessions, i+1)
		}
		completeCurrentPhase(t, clock)
		if phase := clock.Snapshot().Phase; phase != PhaseFocus {
			t.Fatalf("phase after break %d = %s, want %s", i+1, phase, PhaseFocus)
		}
	}

	// One completion event per phase boundary: five focus endings plus five
	// break endings.
	if effects.count() != 2*len(wantBreaks) {
		t.Errorf("effects fired %d times, want %d", effects.count(), 2*len(wantBreaks))
	}
}

func TestResetKeepsSessions(t *testing.T) {
	clock := New(testConfig(), Options{})
	clock.Toggle()
	completeCurrentPhase(t, clock)
	for i := 0; i < 10; i++ {
		clock.Advance()
	}

	clock.Reset()

	state := clock.Snapshot()
	if state.Phase != PhaseFocus {
		t.Errorf("phase = %s, want %s", state.Phase, PhaseFocus)
	}
	if state.Remaining != time.Minute {
		t.Errorf("remaining = %v, want %v", state.Remaining, time.Minute)
	}
	if state.Running {
		t.Error("clock still running after reset")
	}
	if state.Sessions != 1 {
		t.Errorf("sessions = %d, want 1 (reset must not clear progress)", state.Sessions)
	}
}

func TestUpdateConfigWhileStopped(t *testing.T) {
	clock := New(testConfig(), Options{})

	config := testConfig()
	config.Focus = 2 * time.Minute
	clock.UpdateConfig(config)

	state := clock.Snapshot()
	if state.Remaining != 2*time.Minute {
		t.Errorf("remaining = %v, want %v (stopped clock reflects edits immediately)", state.Remaining, 2*time.Minute)
	}
	if state.Phase != PhaseFocus {
		t.Errorf("phase = %s, want %s", state.Phase, PhaseFocus)
	}
}

func TestUpdateConfigWhileRunning(t *testing.T) {
	clock := New(testConfig(), Options{})
	clock.Toggle()
	for i := 0; i < 10; i++ {
		clock.Advance()
	}
	before := clock.Snapshot().Remaining

	config := testConfig()
	config.Focus = 10 * time.Minute
	clock.UpdateConfig(config)

	if remaining := clock.Snapshot().Remaining; remaining != before {
		t.Errorf("remaining = %v, want %v (running clock keeps counting)", remaining, before)
	}

	// The new duration applies at the next phase boundary.
	completeCurrentPhase(t, clock)
	completeCurrentPhase(t, clock)
	state := clock.Snapshot()
	if state.Phase != PhaseFocus {
		t.Fatalf("phase = %s, want %s", state.Phase, PhaseFocus)
	}
	if state.Remaining != 10*time.Minute {
		t.Errorf("remaining = %v, want %v after boundary", state.Remaining, 10*time.Minute)
	}
}

func TestToggleAtZeroRemaining(t *testing.T) {
	clock := New(testConfig(), Options{})
	effects := &recordingEffects{}
	clock.SetEffects(effects)
	clock.Toggle()
	for i := 0; i < 60; i++ {
		clock.Advance()
	}

	clock.Toggle()
	clock.Toggle()
	if effects.count() != 0 {
		t.Fatalf("toggling at zero fired effects: %d", effects.count())
	}

	clock.Advance()
	if effects.count() != 1 {
		t.Errorf("effects fired %d times after restart at zero, want 1", effects.count())
	}
}

func TestProgressMonotonicWithinPhase(t *testing.T) {
	clock := New(testConfig(), Options{})
	events := clock.Subscribe(128)
	clock.Toggle()

	previous := 1.0
	for i := 0; i < 60; i++ {
		clock.Advance()
	}

	seen := 0
drain:
	for {
		select {
		case event := <-events:
			if event.Type != EventProgress {
				continue
			}
			seen++
			if event.Progress > previous {
				t.Fatalf("progress increased within phase: %f -> %f", previous, event.Progress)
			}
			previous = event.Progress
		default:
			break drain
		}
	}
	if seen == 0 {
		t.Fatal("no progress events observed")
	}

	clock.Advance()
	snapshot := clock.Snapshot()
	if snapshot.Remaining != time.Minute {
		t.Errorf("remaining after transition = %v, want full break duration", snapshot.Remaining)
	}
}

func TestIdleAutoPause(t *testing.T) {
	config := testConfig()
	config.IdlePauseEnabled = true
	config.IdlePauseAfter = time.Minute
	config.IdleCheckInterval = time.Nanosecond
	clock := New(config, Options{})
	clock.SetIdleChecker(&stubIdleChecker{idle: 2 * time.Minute})
	clock.Toggle()

	before := clock.Snapshot().Remaining
	clock.Advance()

	state := clock.Snapshot()
	if state.Running {
		t.Error("clock still running after idle threshold")
	}
	if state.Remaining != before {
		t.Errorf("remaining = %v, want %v (idle pause must not consume the tick)", state.Remaining, before)
	}
}

func TestIdleUnsupportedDisablesCheck(t *testing.T) {
	config := testConfig()
	config.IdlePauseEnabled = true
	config.IdleCheckInterval = time.Nanosecond
	clock := New(config, Options{})
	clock.SetIdleChecker(&stubIdleChecker{err: ErrIdleUnsupported})
	clock.Toggle()

	clock.Advance()
	if !clock.Snapshot().Running {
		t.Fatal("unsupported idle checker paused the clock")
	}
	// Probe again: the check must be disabled, ticks keep flowing.
	before := clock.Snapshot().Remaining
	clock.Advance()
	if remaining := clock.Snapshot().Remaining; remaining >= before {
		t.Errorf("remaining = %v, want below %v", remaining, before)
	}
}

func TestTickerLoopDrivesClock(t *testing.T) {
	config := model.Config{Focus: 50 * time.Millisecond, ShortBreak: 50 * time.Millisecond, LongBreak: 50 * time.Millisecond}
	clock := New(config, Options{TickInterval: 10 * time.Millisecond})
	events := clock.Subscribe(64)
	clock.Toggle()
	clock.Start()
	defer clock.Stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-events:
			if event.Type == EventStateChange && event.Phase == PhaseShortBreak {
				if event.Sessions != 1 {
					t.Errorf("sessions = %d, want 1", event.Sessions)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for phase transition from ticker loop")
		}
	}
}
