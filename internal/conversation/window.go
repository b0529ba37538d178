package conversation

// MaxHistory bounds the recent-history slice injected into prompts. The
// session keeps the full history for logging; only prompt construction is
// windowed.
const MaxHistory = 5

// Window returns the last MaxHistory turns in original order. Shorter
// histories are returned whole.
func Window(history []Turn) []Turn {
	if len(history) <= MaxHistory {
		return history
	}
	return history[len(history)-MaxHistory:]
}
