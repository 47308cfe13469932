package focus

import (
	"fmt"
	"log/slog"
)

// Marker applies and clears the visual focus marker on a node.
type Marker interface {
	Mark(n *Node)
	Unmark(n *Node)
}

// Scroller brings a node into the viewport. Implementations should scroll
// smoothly to the nearest edge and never past the node.
type Scroller interface {
	ScrollIntoView(n *Node)
}

// Controller owns the single focused node of a view.
type Controller struct {
	reg      *Registry
	matcher  Matcher
	marker   Marker
	scroller Scroller
	logger   *slog.Logger
	obs      Observer
	onChange func(prev, next *Node)

	current   *Node
	defaultID string
}

// Option configures a Controller.
type Option func(*Controller)

// WithMatcher overrides DefaultMatcher.
func WithMatcher(m Matcher) Option {
	return func(c *Controller) { c.matcher = m }
}

// WithMarker sets the visual focus marker.
func WithMarker(m Marker) Option {
	return func(c *Controller) { c.marker = m }
}

// WithScroller sets the scroll-into-view behaviour.
func WithScroller(s Scroller) Option {
	return func(c *Controller) { c.scroller = s }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithObserver sets the navigation observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.obs = o }
}

// OnChange registers a callback invoked whenever focus moves to a
// different node. prev is nil on first focus.
func OnChange(fn func(prev, next *Node)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// NewController returns a Controller over reg.
func NewController(reg *Registry, opts ...Option) *Controller {
	c := &Controller{reg: reg, matcher: DefaultMatcher}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.obs != nil {
		reg.SetObserver(c.obs)
	}
	return c
}

// Current returns the focused node, or nil when nothing is focused.
func (c *Controller) Current() *Node {
	return c.current
}

// Set returns the current focus set.
func (c *Controller) Set() []*Node {
	return c.reg.Set()
}

// SetDefault designates the node that receives initial focus in the
// current view, e.g. the primary navigation entry. An empty id clears it.
func (c *Controller) SetDefault(id string) {
	c.defaultID = id
}

// Init scans the view and, when nothing valid is focused, focuses the
// default node or else the first node. It leaves state untouched when the
// view has no focusable nodes.
func (c *Controller) Init() {
	set := c.reg.Scan()
	if len(set) == 0 {
		c.logger.Debug("focus: init with empty focus set")
		return
	}
	c.heal(set)
}

// UpdateFocusableElements rescans the view and revalidates the focused
// node. It must run after any structural change to the view. If the
// focused node vanished, focus moves to the default or first node; focus
// is cleared only when the new set is empty.
func (c *Controller) UpdateFocusableElements() {
	set := c.reg.Scan()
	if len(set) == 0 {
		if c.current != nil {
			c.logger.Debug("focus: focused node gone and view is empty", "id", c.current.ID)
			if c.marker != nil {
				c.marker.Unmark(c.current)
			}
			c.current = nil
		}
		return
	}
	c.heal(set)
}

// heal rebinds the focused node to its counterpart in set, or picks a new
// one when it disappeared.
func (c *Controller) heal(set []*Node) {
	if c.current != nil {
		for _, n := range set {
			if n.ID == c.current.ID && n.Enabled() {
				c.current = n
				c.apply(n)
				return
			}
		}
		c.logger.Debug("focus: focused node vanished", "id", c.current.ID)
	}
	next := c.initial(set)
	if next == nil {
		if c.current != nil && c.marker != nil {
			c.marker.Unmark(c.current)
		}
		c.current = nil
		return
	}
	c.Focus(next)
}

func (c *Controller) initial(set []*Node) *Node {
	if c.defaultID != "" {
		for _, n := range set {
			if n.ID == c.defaultID && n.Enabled() {
				return n
			}
		}
	}
	for _, n := range set {
		if n.Enabled() {
			return n
		}
	}
	return nil
}

// Focus moves focus to n. A nil node or one that is not part of the
// current focus set is logged and ignored. Focusing the focused node again
// re-applies the marker.
func (c *Controller) Focus(n *Node) {
	if n == nil {
		c.logger.Warn("focus: focus called with nil node")
		return
	}
	target := c.reg.Lookup(n.ID)
	if target == nil || !target.Enabled() {
		c.logger.Debug("focus: target not focusable", "id", n.ID)
		return
	}

	prev := c.current
	if prev != nil && prev.ID != target.ID && c.marker != nil {
		c.marker.Unmark(prev)
	}
	c.current = target
	c.apply(target)

	if c.onChange != nil && (prev == nil || prev.ID != target.ID) {
		c.onChange(prev, target)
	}
}

// FocusByID focuses the node with the given ID and reports whether it
// exists in the current focus set.
func (c *Controller) FocusByID(id string) bool {
	n := c.reg.Lookup(id)
	if n == nil {
		c.logger.Debug("focus: no node with id", "id", id)
		return false
	}
	c.Focus(n)
	return c.current != nil && c.current.ID == id
}

// Navigate moves focus one step in dir and reports whether it moved. With
// nothing in that direction the current focus is re-asserted and kept.
func (c *Controller) Navigate(dir Direction) bool {
	if c.current == nil {
		c.Init()
		if c.current == nil {
			c.logger.Debug("focus: navigate with nothing focusable", "dir", dir)
			return false
		}
	}

	match := c.matcher.FindBestMatch(c.current, dir, c.reg.Set())
	if c.obs != nil {
		c.obs.Navigated(dir, match != nil)
	}
	if match == nil {
		c.logger.Debug("focus: no match", "dir", dir, "from", c.current.ID)
		c.apply(c.current)
		return false
	}
	c.Focus(match)
	return true
}

// Select activates the focused node and reports whether an action ran.
// A panicking action is logged rather than propagated into the input path.
func (c *Controller) Select() (ran bool) {
	n := c.current
	if n == nil {
		c.logger.Debug("focus: select with nothing focused")
		return false
	}
	if n.Action == nil {
		c.logger.Debug("focus: focused node has no action", "id", n.ID)
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("focus: action panicked", "id", n.ID, "err", fmt.Sprint(r))
			ran = false
		}
	}()
	n.Action()
	return true
}

func (c *Controller) apply(n *Node) {
	if c.marker != nil {
		c.marker.Mark(n)
	}
	if c.scroller != nil {
		c.scroller.ScrollIntoView(n)
	}
}
