package keys

import (
	"log/slog"
	"strings"
	"time"
)

// Event is a raw key press as delivered by the platform.
type Event struct {
	Code int
	At   time.Time
}

// Handler interprets a key event for a route. It returns whether the
// event was handled.
type Handler func(ev Event) bool

// Observer receives dispatch outcomes, typically for metrics.
type Observer interface {
	Dispatched(route string, handled bool)
}

// Dispatcher routes key events to the single handler registered for the
// current route. The current route is read from the Location function on
// every dispatch, never cached at registration time.
type Dispatcher struct {
	location func() string
	logger   *slog.Logger
	obs      Observer

	handlers map[string]Handler
}

// NewDispatcher returns a Dispatcher that resolves the active route with
// location. A nil logger uses slog.Default().
func NewDispatcher(location func() string, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		location: location,
		logger:   logger,
		handlers: make(map[string]Handler),
	}
}

// SetObserver installs an observer notified after every dispatch.
func (d *Dispatcher) SetObserver(o Observer) {
	d.obs = o
}

// Register installs h for route, replacing any previous handler for the
// same route.
func (d *Dispatcher) Register(route string, h Handler) {
	route = normalize(route)
	if h == nil {
		d.logger.Warn("keys: nil handler ignored", "route", route)
		return
	}
	if _, ok := d.handlers[route]; ok {
		d.logger.Debug("keys: replacing handler", "route", route)
	}
	d.handlers[route] = h
}

// Unregister removes the handler for route. Unknown routes are ignored.
func (d *Dispatcher) Unregister(route string) {
	delete(d.handlers, normalize(route))
}

// Routes returns the number of registered routes.
func (d *Dispatcher) Routes() int {
	return len(d.handlers)
}

// Resolve returns the registered route that serves path: the path itself,
// or the nearest parent path with a handler.
func (d *Dispatcher) Resolve(path string) (string, bool) {
	route := normalize(path)
	for {
		if _, ok := d.handlers[route]; ok {
			return route, true
		}
		i := strings.LastIndex(route, "/")
		if i <= 0 {
			return "", false
		}
		route = route[:i]
	}
}

// Dispatch sends ev to the handler of the current route and reports
// whether the handler handled it. Events for routes without a handler are
// dropped.
func (d *Dispatcher) Dispatch(ev Event) bool {
	path := ""
	if d.location != nil {
		path = d.location()
	}
	route, ok := d.Resolve(path)
	if !ok {
		d.logger.Debug("keys: no handler for route", "path", path, "code", ev.Code)
		if d.obs != nil {
			d.obs.Dispatched(normalize(path), false)
		}
		return false
	}
	handled := d.handlers[route](ev)
	if d.obs != nil {
		d.obs.Dispatched(route, handled)
	}
	return handled
}

// normalize strips the query and fragment and any trailing slash.
func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
