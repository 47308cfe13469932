package sched

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestManualRunsDueTasksInOrder(t *testing.T) {
	m := NewManual(epoch)
	var got []string
	m.After(2*time.Second, func() { got = append(got, "b") })
	m.After(1*time.Second, func() { got = append(got, "a") })
	m.After(5*time.Second, func() { got = append(got, "c") })

	m.Advance(3 * time.Second)

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("ran %v, want [a b]", got)
	}
	if m.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", m.Pending())
	}
	if !m.Now().Equal(epoch.Add(3 * time.Second)) {
		t.Errorf("Now() = %v, want start+3s", m.Now())
	}
}

func TestManualCancel(t *testing.T) {
	m := NewManual(epoch)
	ran := false
	task := m.After(time.Second, func() { ran = true })
	task.Cancel()
	task.Cancel()

	m.Advance(time.Minute)
	if ran {
		t.Error("cancelled task should not run")
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", m.Pending())
	}
}

func TestManualRescheduleFromCallback(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	var tick func()
	tick = func() {
		count++
		m.After(time.Second, tick)
	}
	m.After(time.Second, tick)

	m.Advance(3500 * time.Millisecond)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestManualCallbackSeesTaskTime(t *testing.T) {
	m := NewManual(epoch)
	var at time.Time
	m.After(2*time.Second, func() { at = m.Now() })
	m.Advance(10 * time.Second)
	if !at.Equal(epoch.Add(2 * time.Second)) {
		t.Errorf("callback saw %v, want start+2s", at)
	}
}

func TestLoopPostsFireAndRuns(t *testing.T) {
	l := NewLoop()
	msgs := make(chan any, 1)
	l.Attach(func(m any) { msgs <- m })

	ran := false
	l.After(time.Millisecond, func() { ran = true })

	select {
	case msg := <-msgs:
		f, ok := msg.(Fire)
		if !ok {
			t.Fatalf("got %T, want Fire", msg)
		}
		f.Run()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Fire")
	}
	if !ran {
		t.Error("callback did not run")
	}
}

func TestLoopCancelledFireIsIgnored(t *testing.T) {
	l := NewLoop()
	ran := false
	task := l.After(time.Hour, func() { ran = true })
	task.Cancel()

	Fire{task: task.(*loopTask)}.Run()
	if ran {
		t.Error("cancelled task ran")
	}
}

func TestLoopHoldsUntilAttached(t *testing.T) {
	l := NewLoop()
	l.post(Fire{})
	var got int
	l.Attach(func(any) { got++ })
	if got != 1 {
		t.Errorf("flushed %d held fires, want 1", got)
	}
}
