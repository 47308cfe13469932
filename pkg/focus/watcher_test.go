package focus

import (
	"testing"
	"time"

	"gitlab.com/tinyland/lab/tvnav/pkg/sched"
)

func TestWatcherDebouncesRescans(t *testing.T) {
	v := &view{nodes: []*Node{button("a", 0, 0)}}
	obs := &countingObserver{}
	c, _ := newTestController(v, WithObserver(obs))
	m := sched.NewManual(time.Unix(0, 0))
	w := NewWatcher(c, m, 100*time.Millisecond)

	w.ViewChanged()
	m.Advance(50 * time.Millisecond)
	w.ViewChanged()
	m.Advance(50 * time.Millisecond)
	w.ViewChanged()
	if w.pending == nil {
		t.Fatal("rescan should be pending")
	}
	m.Advance(150 * time.Millisecond)

	if len(obs.scans) != 1 {
		t.Errorf("scans = %d, want 1", len(obs.scans))
	}
	if currentID(c) != "a" {
		t.Errorf("current = %q, want a after rescan", currentID(c))
	}
}

func TestWatcherKeyBeforeRescanUsesCurrentSet(t *testing.T) {
	v := &view{nodes: []*Node{button("a", 0, 0), button("b", 0, 100)}}
	c, _ := newTestController(v)
	c.Init()
	m := sched.NewManual(time.Unix(0, 0))
	w := NewWatcher(c, m, 100*time.Millisecond)

	v.nodes = append(v.nodes, button("c", 0, 200))
	w.ViewChanged()

	c.Navigate(Down)
	c.Navigate(Down)
	if currentID(c) != "b" {
		t.Fatalf("current = %q, want b (c not scanned yet)", currentID(c))
	}

	m.Advance(time.Second)
	c.Navigate(Down)
	if currentID(c) != "c" {
		t.Errorf("current = %q, want c after rescan", currentID(c))
	}
}

func TestWatcherWarmUpAndStop(t *testing.T) {
	obs := &countingObserver{}
	c, _ := newTestController(&view{}, WithObserver(obs))
	m := sched.NewManual(time.Unix(0, 0))
	w := NewWatcher(c, m, 100*time.Millisecond)

	w.WarmUp(3, time.Second)
	m.Advance(2500 * time.Millisecond)
	if len(obs.scans) != 2 {
		t.Fatalf("scans = %d, want 2", len(obs.scans))
	}

	w.ViewChanged()
	w.Stop()
	m.Advance(time.Minute)
	if len(obs.scans) != 2 {
		t.Errorf("scans after Stop = %d, want 2", len(obs.scans))
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d after Stop, want 0", m.Pending())
	}
}
