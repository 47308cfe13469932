// Package sched provides cancellable deferred tasks for code that must run
// on a single event-loop goroutine.
//
// Components such as the idle monitor and the focus rescan watcher never
// start goroutines of their own. They ask a Scheduler to call them back
// later, and the Scheduler guarantees the callback runs on the same
// goroutine that drives every other handler, so no locking is needed.
package sched

import "time"

// Task is a handle to a scheduled callback.
type Task interface {
	// Cancel prevents the callback from running. Cancelling a task that
	// already ran or was already cancelled is a no-op.
	Cancel()
}

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func()) Task
}

// Clock returns the current time.
type Clock func() time.Time
