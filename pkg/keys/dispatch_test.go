package keys

import "testing"

type calls map[string]int

func (c calls) handler(route string) Handler {
	return func(Event) bool {
		c[route]++
		return true
	}
}

func newTestDispatcher(loc *string) (*Dispatcher, calls) {
	return NewDispatcher(func() string { return *loc }, nil), calls{}
}

func TestDispatchRouteIsolation(t *testing.T) {
	loc := "/b"
	d, c := newTestDispatcher(&loc)
	d.Register("/a", c.handler("/a"))

	if d.Dispatch(Event{Code: 13}) {
		t.Error("dispatch on /b should not be handled")
	}
	if c["/a"] != 0 {
		t.Error("/a handler must not run while /b is active")
	}
}

func TestDispatchSubRouteFallback(t *testing.T) {
	loc := "/genre-list/rock"
	d, c := newTestDispatcher(&loc)
	d.Register("/genre-list", c.handler("/genre-list"))

	if !d.Dispatch(Event{Code: 40}) {
		t.Fatal("expected dispatch to fall back to /genre-list")
	}
	if c["/genre-list"] != 1 {
		t.Errorf("calls = %v", c)
	}
}

func TestDispatchPrefersExactRoute(t *testing.T) {
	loc := "/a/b/c"
	d, c := newTestDispatcher(&loc)
	d.Register("/a", c.handler("/a"))
	d.Register("/a/b", c.handler("/a/b"))

	d.Dispatch(Event{})
	if c["/a/b"] != 1 || c["/a"] != 0 {
		t.Errorf("calls = %v, want only /a/b", c)
	}
}

func TestDispatchStripsQueryAndFragment(t *testing.T) {
	loc := "/player?station=42#top"
	d, c := newTestDispatcher(&loc)
	d.Register("/player/", c.handler("/player"))

	if !d.Dispatch(Event{}) || c["/player"] != 1 {
		t.Errorf("calls = %v", c)
	}
}

func TestDispatchReadsLocationAtCallTime(t *testing.T) {
	loc := "/home"
	d, c := newTestDispatcher(&loc)
	d.Register("/home", c.handler("/home"))
	d.Register("/player", c.handler("/player"))

	d.Dispatch(Event{})
	loc = "/player"
	d.Dispatch(Event{})

	if c["/home"] != 1 || c["/player"] != 1 {
		t.Errorf("calls = %v", c)
	}
}

func TestRegisterReplacesAndUnregisterRemoves(t *testing.T) {
	loc := "/home"
	d, c := newTestDispatcher(&loc)
	d.Register("/home", c.handler("old"))
	d.Register("/home", c.handler("new"))

	d.Dispatch(Event{})
	if c["old"] != 0 || c["new"] != 1 {
		t.Errorf("calls = %v, want last registration to win", c)
	}
	if d.Routes() != 1 {
		t.Errorf("Routes() = %d, want 1", d.Routes())
	}

	d.Unregister("/home")
	d.Unregister("/never-registered")
	if d.Dispatch(Event{}) {
		t.Error("dispatch after unregister should be dropped")
	}
}

func TestRootIsNotACatchAll(t *testing.T) {
	loc := "/player"
	d, c := newTestDispatcher(&loc)
	d.Register("/", c.handler("/"))

	if d.Dispatch(Event{}) {
		t.Error("root handler must not serve /player")
	}
	loc = ""
	if !d.Dispatch(Event{}) || c["/"] != 1 {
		t.Errorf("empty location should resolve to /, calls = %v", c)
	}
}

func TestNilHandlerAndLocation(t *testing.T) {
	d := NewDispatcher(nil, nil)
	d.Register("/x", nil)
	if d.Routes() != 0 {
		t.Error("nil handler should be ignored")
	}
	if d.Dispatch(Event{}) {
		t.Error("dispatch without location should be dropped")
	}
}

type dispatchCounter struct{ handled, dropped int }

func (o *dispatchCounter) Dispatched(_ string, handled bool) {
	if handled {
		o.handled++
	} else {
		o.dropped++
	}
}

func TestDispatchObserver(t *testing.T) {
	loc := "/home"
	d, c := newTestDispatcher(&loc)
	obs := &dispatchCounter{}
	d.SetObserver(obs)
	d.Register("/home", c.handler("/home"))

	d.Dispatch(Event{})
	loc = "/elsewhere"
	d.Dispatch(Event{})
	if obs.handled != 1 || obs.dropped != 1 {
		t.Errorf("observer = %+v", obs)
	}
}
