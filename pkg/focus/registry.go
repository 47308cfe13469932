package focus

import (
	"log/slog"
)

// Source supplies the raw nodes of the current view.
type Source interface {
	Nodes() []*Node
}

// SourceFunc adapts a function to a Source.
type SourceFunc func() []*Node

// Nodes implements Source.
func (f SourceFunc) Nodes() []*Node { return f() }

// Observer receives navigation events, typically for metrics.
type Observer interface {
	Scanned(size, delta int)
	Navigated(dir Direction, matched bool)
}

// Registry discovers the focus set of the current view.
type Registry struct {
	source Source
	logger *slog.Logger
	obs    Observer

	set []*Node
}

// NewRegistry returns a Registry reading from source. A nil logger uses
// slog.Default().
func NewRegistry(source Source, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{source: source, logger: logger}
}

// SetObserver installs an observer notified after every scan.
func (r *Registry) SetObserver(o Observer) {
	r.obs = o
}

// Scan rebuilds the focus set wholesale and returns it. Nodes qualify when
// they are interactive and visible. Duplicate IDs keep the first occurrence.
// The returned slice must not be modified by the caller.
func (r *Registry) Scan() []*Node {
	var raw []*Node
	if r.source != nil {
		raw = r.source.Nodes()
	}

	set := make([]*Node, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, n := range raw {
		if n == nil || !n.Interactive() || !n.Visible() {
			continue
		}
		if _, dup := seen[n.ID]; dup {
			r.logger.Debug("focus: duplicate node id ignored", "id", n.ID)
			continue
		}
		seen[n.ID] = struct{}{}
		set = append(set, n)
	}

	delta := len(set) - len(r.set)
	if delta != 0 {
		r.logger.Debug("focus: focus set changed", "size", len(set), "delta", delta)
	}
	r.set = set
	if r.obs != nil {
		r.obs.Scanned(len(set), delta)
	}
	return set
}

// Set returns the focus set produced by the last scan.
func (r *Registry) Set() []*Node {
	return r.set
}

// Lookup returns the node with the given ID from the last scan.
func (r *Registry) Lookup(id string) *Node {
	for _, n := range r.set {
		if n.ID == id {
			return n
		}
	}
	return nil
}
