package sched

import (
	"sort"
	"time"
)

// Manual is a deterministic Scheduler driven by an explicit clock. Nothing
// happens until Advance is called, which makes it suitable for tests and
// for the headless script runner.
type Manual struct {
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	at       time.Time
	seq      int
	fn       func()
	canceled bool
}

func (t *manualTask) Cancel() { t.canceled = true }

// NewManual returns a Manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the scheduler's current time. Pass m.Now as a Clock.
func (m *Manual) Now() time.Time {
	return m.now
}

// After implements Scheduler.
func (m *Manual) After(d time.Duration, fn func()) Task {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTask{at: m.now.Add(d), seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Pending returns the number of tasks that are scheduled and not cancelled.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every task that falls due
// in deadline order. Tasks scheduled by running callbacks are honoured if
// they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		m.now = t.at
		t.canceled = true
		t.fn()
	}
	m.now = target
	m.compact()
}

// next pops the earliest due task not later than target.
func (m *Manual) next(target time.Time) *manualTask {
	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].at.Equal(m.tasks[j].at) {
			return m.tasks[i].seq < m.tasks[j].seq
		}
		return m.tasks[i].at.Before(m.tasks[j].at)
	})
	for _, t := range m.tasks {
		if t.canceled {
			continue
		}
		if t.at.After(target) {
			return nil
		}
		return t
	}
	return nil
}

func (m *Manual) compact() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.canceled {
			live = append(live, t)
		}
	}
	m.tasks = live
}
