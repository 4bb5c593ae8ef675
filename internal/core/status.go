package core

import "time"

// StatusDuration is how long a status message stays visible.
const StatusDuration = 3 * time.Second

// SetStatus shows text in the status bar, stamped with the engine clock.
func (e *Engine) SetStatus(text string) {
	e.status = text
	e.statusAt = e.Now()
}

// StatusText returns the status message if it has not yet expired at now.
func (e *Engine) StatusText(now time.Time) (string, bool) {
	if e.status == "" || now.Sub(e.statusAt) >= StatusDuration {
		return "", false
	}
	return e.status, true
}

// ClearExpiredStatus drops the status message once it has expired. The
// renderer calls it on every frame.
func (e *Engine) ClearExpiredStatus(now time.Time) {
	if e.status != "" && now.Sub(e.statusAt) >= StatusDuration {
		e.status = ""
	}
}
