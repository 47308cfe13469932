package focus

import (
	"time"

	"gitlab.com/tinyland/lab/tvnav/pkg/sched"
)

// Watcher coalesces "view changed" notifications into a single debounced
// rescan, and can run a short series of warm-up scans while a view settles.
type Watcher struct {
	ctrl     *Controller
	sched    sched.Scheduler
	debounce time.Duration

	pending sched.Task
	warmup  sched.Task
}

// NewWatcher returns a Watcher that rescans ctrl debounce after the last
// change notification.
func NewWatcher(ctrl *Controller, s sched.Scheduler, debounce time.Duration) *Watcher {
	return &Watcher{ctrl: ctrl, sched: s, debounce: debounce}
}

// ViewChanged records a structural view change. Repeated calls within the
// debounce window restart it; the rescan runs once.
func (w *Watcher) ViewChanged() {
	if w.pending != nil {
		w.pending.Cancel()
	}
	w.pending = w.sched.After(w.debounce, func() {
		w.pending = nil
		w.ctrl.UpdateFocusableElements()
	})
}

// WarmUp schedules n rescans spaced interval apart, replacing any warm-up
// already in progress.
func (w *Watcher) WarmUp(n int, interval time.Duration) {
	if w.warmup != nil {
		w.warmup.Cancel()
		w.warmup = nil
	}
	var step func(left int)
	step = func(left int) {
		if left <= 0 {
			w.warmup = nil
			return
		}
		w.warmup = w.sched.After(interval, func() {
			w.ctrl.UpdateFocusableElements()
			step(left - 1)
		})
	}
	step(n)
}

// Stop cancels pending rescans. Call it when the view is torn down.
func (w *Watcher) Stop() {
	if w.pending != nil {
		w.pending.Cancel()
		w.pending = nil
	}
	if w.warmup != nil {
		w.warmup.Cancel()
		w.warmup = nil
	}
}
