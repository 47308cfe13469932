package sched

import (
	"sync"
	"time"
)

// Fire is the message a Loop posts back to the event loop when a task
// falls due. The host must call Run on it from its update handler.
type Fire struct {
	task *loopTask
}

// Run executes the task's callback unless it was cancelled in the
// meantime. It must be called on the event-loop goroutine.
func (f Fire) Run() {
	if f.task == nil || f.task.canceled {
		return
	}
	f.task.canceled = true
	f.task.fn()
}

type loopTask struct {
	timer    *time.Timer
	fn       func()
	canceled bool // touched only on the loop goroutine
}

func (t *loopTask) Cancel() {
	t.canceled = true
	t.timer.Stop()
}

// Loop is a Scheduler for hosts with a message-based event loop, such as a
// bubbletea program. Timer goroutines only post a Fire message; the
// callback itself runs when the host handles that message.
type Loop struct {
	mu   sync.Mutex
	send func(any)
	held []Fire
}

// NewLoop returns a Loop that is not yet attached to an event loop. Fires
// that happen before Attach are held and flushed on attach.
func NewLoop() *Loop {
	return &Loop{}
}

// Attach connects the Loop to the host's message sink.
func (l *Loop) Attach(send func(any)) {
	l.mu.Lock()
	l.send = send
	held := l.held
	l.held = nil
	l.mu.Unlock()
	for _, f := range held {
		send(f)
	}
}

// After implements Scheduler.
func (l *Loop) After(d time.Duration, fn func()) Task {
	t := &loopTask{fn: fn}
	t.timer = time.AfterFunc(d, func() { l.post(Fire{task: t}) })
	return t
}

func (l *Loop) post(f Fire) {
	l.mu.Lock()
	send := l.send
	if send == nil {
		l.held = append(l.held, f)
	}
	l.mu.Unlock()
	if send != nil {
		send(f)
	}
}
