package sessionclock

import (
	"errors"
	"sync"
	"time"

	"pomodoro/internal/core/model"
)

// NotificationTitle is the summary line for phase-completion notifications.
const NotificationTitle = "Pomodoro"

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Transition describes a completed phase boundary. It carries owned copies
// of everything the effect layer needs, so effects never touch clock state.
type Transition struct {
	From      Phase
	To        Phase
	Sessions  int
	Body      string
	AlarmPath string
}

// Effects receives fire-and-forget side effects on each phase completion.
// Implementations must not block; they are invoked from the tick path.
type Effects interface {
	PhaseComplete(transition Transition)
}

// Options contains runtime options for the Clock.
type Options struct {
	TickInterval time.Duration
}

// SessionState is an immutable snapshot of the clock.
type SessionState struct {
	Phase     Phase
	Remaining time.Duration
	Sessions  int
	Running   bool
}

// Clock is the state machine that owns pomodoro session progression. A
// single ticker goroutine is the only mutator; observers receive event
// copies over buffered channels.
type Clock struct {
	mu            sync.Mutex
	config        model.Config
	options       Options
	phase         Phase
	remaining     time.Duration
	sessions      int
	running       bool
	active        bool
	effects       Effects
	idleChecker   IdleChecker
	lastIdleCheck time.Time
	events        []chan Event
	stopCh        chan struct{}
}

// New creates a Clock with the provided configuration. The clock starts in
// the focus phase with the full focus duration and is not running.
func New(config model.Config, options Options) *Clock {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	applyIdleDefaults(&config)

	clock := &Clock{
		config:  config,
		options: options,
		phase:   PhaseFocus,
		stopCh:  make(chan struct{}),
	}
	clock.remaining = clock.durationLocked(PhaseFocus)
	return clock
}

// SetEffects injects the phase-completion effect sink.
func (clock *Clock) SetEffects(effects Effects) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.effects = effects
}

// SetIdleChecker injects an idle checker.
func (clock *Clock) SetIdleChecker(checker IdleChecker) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.idleChecker = checker
}

// Subscribe registers a new observer channel.
func (clock *Clock) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	clock.mu.Lock()
	clock.events = append(clock.events, ch)
	clock.mu.Unlock()
	return ch
}

// Snapshot returns an immutable copy of the session state.
func (clock *Clock) Snapshot() SessionState {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return SessionState{
		Phase:     clock.phase,
		Remaining: clock.remaining,
		Sessions:  clock.sessions,
		Running:   clock.running,
	}
}

// Start launches the ticking loop. Ticks advance the clock only while the
// running flag is set via Toggle.
func (clock *Clock) Start() {
	clock.mu.Lock()
	if clock.active {
		clock.mu.Unlock()
		return
	}
	clock.active = true
	clock.mu.Unlock()

	go clock.run()
}

// Stop terminates the ticking loop and closes observer channels.
func (clock *Clock) Stop() {
	clock.mu.Lock()
	if !clock.active {
		clock.mu.Unlock()
		return
	}
	close(clock.stopCh)
	clock.active = false
	events := clock.events
	clock.events = nil
	clock.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Toggle flips the running flag. No other field changes; starting at zero
// remaining is allowed and completes the phase on the next tick.
func (clock *Clock) Toggle() {
	clock.mu.Lock()
	clock.running = !clock.running
	clock.emitStateLocked(time.Now())
	clock.mu.Unlock()
}

// Reset abandons the current interval: focus phase, full focus duration,
// not running. The completed-session count survives a reset.
func (clock *Clock) Reset() {
	clock.mu.Lock()
	clock.phase = PhaseFocus
	clock.remaining = clock.durationLocked(PhaseFocus)
	clock.running = false
	clock.emitStateLocked(time.Now())
	clock.mu.Unlock()
}

// UpdateConfig swaps the duration table. While stopped, the remaining time
// of the active phase is recomputed so an edited duration shows up
// immediately; while running, the edit takes effect at the next phase
// boundary. Phase and session count are never touched.
func (clock *Clock) UpdateConfig(config model.Config) {
	clock.mu.Lock()
	applyIdleDefaults(&config)
	clock.config = config
	if !clock.running {
		clock.remaining = clock.durationLocked(clock.phase)
	}
	clock.emitStateLocked(time.Now())
	clock.mu.Unlock()
}

// Advance moves the clock forward by one tick. It is a no-op unless the
// clock is running. A tick with remaining time decrements it; a tick that
// observes zero fires the phase completion instead, so no decrement happens
// on the completing tick.
func (clock *Clock) Advance() {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if !clock.running {
		return
	}

	now := time.Now()
	clock.handleIdleCheckLocked(now)
	if !clock.running {
		return
	}

	if clock.remaining > 0 {
		clock.remaining -= clock.options.TickInterval
		if clock.remaining < 0 {
			clock.remaining = 0
		}
		clock.emitLocked(Event{
			Type:      EventProgress,
			Phase:     clock.phase,
			Remaining: clock.remaining,
			Progress:  clock.progressLocked(),
			Sessions:  clock.sessions,
			Running:   true,
			At:        now,
		})
		return
	}

	clock.completePhaseLocked(now)
}

func (clock *Clock) run() {
	ticker := time.NewTicker(clock.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-clock.stopCh:
			return
		case <-ticker.C:
			clock.Advance()
		}
	}
}

func (clock *Clock) completePhaseLocked(now time.Time) {
	previous := clock.phase
	next, sessions, body := NextPhase(clock.phase, clock.sessions)
	clock.phase = next
	clock.sessions = sessions
	clock.remaining = clock.durationLocked(next)

	if clock.effects != nil {
		clock.effects.PhaseComplete(Transition{
			From:      previous,
			To:        next,
			Sessions:  sessions,
			Body:      body,
			AlarmPath: clock.config.AlarmPath,
		})
	}

	clock.emitStateLocked(now)
}

func (clock *Clock) handleIdleCheckLocked(now time.Time) {
	if !clock.config.IdlePauseEnabled || clock.idleChecker == nil || clock.phase != PhaseFocus {
		return
	}
	if !clock.lastIdleCheck.IsZero() && now.Sub(clock.lastIdleCheck) < clock.config.IdleCheckInterval {
		return
	}
	clock.lastIdleCheck = now

	idleDuration, err := clock.idleChecker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			clock.config.IdlePauseEnabled = false
		}
		clock.emitLocked(Event{
			Type:      EventIdleError,
			Phase:     clock.phase,
			Remaining: clock.remaining,
			Sessions:  clock.sessions,
			Running:   clock.running,
			Message:   err.Error(),
			At:        now,
		})
		return
	}
	if idleDuration >= clock.config.IdlePauseAfter {
		clock.running = false
		clock.emitLocked(Event{
			Type:      EventIdlePause,
			Phase:     clock.phase,
			Remaining: clock.remaining,
			Progress:  clock.progressLocked(),
			Sessions:  clock.sessions,
			Running:   false,
			Message:   "paused while idle",
			At:        now,
		})
	}
}

func (clock *Clock) durationLocked(phase Phase) time.Duration {
	var duration time.Duration
	switch phase {
	case PhaseShortBreak:
		duration = clock.config.ShortBreak
	case PhaseLongBreak:
		duration = clock.config.LongBreak
	default:
		duration = clock.config.Focus
	}
	if duration < 0 {
		return 0
	}
	return duration
}

func (clock *Clock) progressLocked() float64 {
	total := clock.durationLocked(clock.phase)
	if total <= 0 {
		return 0
	}
	progress := float64(clock.remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (clock *Clock) emitStateLocked(now time.Time) {
	clock.emitLocked(Event{
		Type:      EventStateChange,
		Phase:     clock.phase,
		Remaining: clock.remaining,
		Progress:  clock.progressLocked(),
		Sessions:  clock.sessions,
		Running:   clock.running,
		At:        now,
	})
}

func (clock *Clock) emitLocked(event Event) {
	events := append([]chan Event(nil), clock.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}

func applyIdleDefaults(config *model.Config) {
	if config.IdleCheckInterval <= 0 {
		config.IdleCheckInterval = 5 * time.Second
	}
	if config.IdlePauseAfter <= 0 {
		config.IdlePauseAfter = 5 * time.Minute
	}
}
