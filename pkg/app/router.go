package app

import "strings"

type entry struct {
	path  string
	focus string // node focused when the entry was left
}

// Router is the location history of the app. It is the single source of
// the current route; the key dispatcher reads Current at dispatch time.
type Router struct {
	stack    []entry
	onChange func(from, to, restore string)
}

// NewRouter returns a Router positioned at start.
func NewRouter(start string) *Router {
	return &Router{stack: []entry{{path: start}}}
}

// Current returns the current location, including any query.
func (r *Router) Current() string {
	return r.stack[len(r.stack)-1].path
}

// Depth returns the number of history entries.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Push navigates to path, remembering focusID as the node to restore when
// the user comes back. Pushing the current location is a no-op.
func (r *Router) Push(path, focusID string) {
	from := r.Current()
	if samePath(from, path) {
		return
	}
	r.stack[len(r.stack)-1].focus = focusID
	r.stack = append(r.stack, entry{path: path})
	r.changed(from, path, "")
}

// Replace swaps the current location without growing history.
func (r *Router) Replace(path string) {
	from := r.Current()
	r.stack[len(r.stack)-1] = entry{path: path}
	if !samePath(from, path) {
		r.changed(from, path, "")
	}
}

// Back returns to the previous location and reports whether there was one.
func (r *Router) Back() bool {
	if len(r.stack) < 2 {
		return false
	}
	from := r.Current()
	r.stack = r.stack[:len(r.stack)-1]
	top := r.stack[len(r.stack)-1]
	r.changed(from, top.path, top.focus)
	return true
}

func (r *Router) changed(from, to, restore string) {
	if r.onChange != nil {
		r.onChange(from, to, restore)
	}
}

// routePath strips the query and fragment and trailing slashes.
func routePath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	for len(p) > 1 && strings.HasSuffix(p, "/") {
		p = p[:len(p)-1]
	}
	if p == "" {
		return "/"
	}
	return p
}

func samePath(a, b string) bool {
	return routePath(a) == routePath(b)
}
