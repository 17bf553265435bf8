package game

import "time"

// Task is a handle to a scheduled callback.
type Task interface {
	// Cancel prevents the callback from running if it has not run yet.
	Cancel()
}

// Scheduler runs fn once after d has elapsed. Callbacks must be delivered on
// the same goroutine that drives the Engine.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the wall clock.
var SystemClock Clock = ClockFunc(time.Now)
