package sessionclock

// Every fourth completed focus session earns a long break.
const sessionsPerLongBreak = 4

// Notification copy for phase transitions.
const (
	breakBody = "Phase Complete!"
	focusBody = "Get to Work!"
)

// NextPhase decides which phase follows a completed one. Completing a focus
// phase increments the session count; the count never changes when a break
// ends. The function is pure and is the single source of truth for the
// break cadence.
func NextPhase(current Phase, completedSessions int) (Phase, int, string) {
	if current == PhaseFocus {
		completed := completedSessions + 1
		if completed%sessionsPerLongBreak == 0 {
			return PhaseLongBreak, completed, breakBody
		}
		return PhaseShortBreak, completed, breakBody
	}
	return PhaseFocus, completedSessions, focusBody
}
