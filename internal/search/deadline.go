package search

import (
	"sync/atomic"
	"time"
)

// deadline arms a one-shot timer for one request and exposes the
// cooperative cancellation flag workers observe between files.
// Cancellation is advisory, never pre-emptive: a worker mid-scan
// finishes its file's batch before observing the flag, bounding
// worst-case overrun to one file's scan time.
//
// Two lines of defense are used: the timer callback sets the flag, and
// CheckElapsed re-derives expiry from the wall clock in case the timer
// goroutine is delayed under load.
type deadline struct {
	start     time.Time
	budget    time.Duration
	cancelled atomic.Bool
	timer     *time.Timer
}

// newDeadline arms a deadline at now + budget. A non-positive budget
// means no deadline.
func newDeadline(budget time.Duration) *deadline {
	d := &deadline{
		start:  time.Now(),
		budget: budget,
	}
	if budget > 0 {
		d.timer = time.AfterFunc(budget, func() {
			d.cancelled.Store(true)
		})
	}
	return d
}

// Cancel sets the cancellation flag directly (caller-initiated abort).
func (d *deadline) Cancel() {
	d.cancelled.Store(true)
}

// Cancelled reports whether the cancellation flag is set.
func (d *deadline) Cancelled() bool {
	return d.cancelled.Load()
}

// CheckElapsed is the wall-clock recheck: it sets the flag if the
// budget has been exceeded even when the timer has not fired yet, and
// reports the resulting state.
func (d *deadline) CheckElapsed() bool {
	if d.budget > 0 && time.Since(d.start) > d.budget {
		d.cancelled.Store(true)
	}
	return d.cancelled.Load()
}

// Elapsed returns the time since the deadline was armed.
func (d *deadline) Elapsed() time.Duration {
	return time.Since(d.start)
}

// Stop releases the timer. Safe to call whether or not it fired.
func (d *deadline) Stop() {
	if d.timer != nil {
		d.timer.Stop()
	}
}
