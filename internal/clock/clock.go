// Package clock abstracts time so cache expiry and poll scheduling are
// testable without real time passing.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the callback was prevented
	// from running; a false return means it already fired or was stopped.
	Stop() bool
}

// Scheduler runs a function after a delay. The poll watcher depends on this
// instead of time.AfterFunc so tests can fire timers deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}
