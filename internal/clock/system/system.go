// Package system provides the real clock and scheduler implementations.
package system

import (
	"time"

	"github.com/devseo/dashboard-gateway/internal/clock"
)

// Clock implements clock.Clock using time.Now.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current time in UTC.
func (Clock) Now() time.Time {
	return time.Now().UTC()
}

// Scheduler implements clock.Scheduler using time.AfterFunc.
type Scheduler struct{}

// NewScheduler creates a new Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AfterFunc schedules f to run after d on its own goroutine.
func (Scheduler) AfterFunc(d time.Duration, f func()) clock.Timer {
	return time.AfterFunc(d, f)
}
