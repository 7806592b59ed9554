package prescription

// StatusTracker maps prescription numbers to delivery statuses for the
// lifetime of the process. It is deliberately not persisted: after a
// restart every lookup falls back to DefaultStatus. Fulfillment updates
// arrive from outside this core; the assistant only seeds and reads.
type StatusTracker struct {
	statuses map[string]string
}

// NewStatusTracker creates an empty tracker.
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{statuses: make(map[string]string)}
}

// Set records the delivery status for a prescription number.
func (t *StatusTracker) Set(number, status string) {
	t.statuses[number] = status
}

// Get returns the tracked status, or DefaultStatus when the number has
// never been tracked in this process.
func (t *StatusTracker) Get(number string) string {
	if status, ok := t.statuses[number]; ok {
		return status
	}
	return DefaultStatus
}
