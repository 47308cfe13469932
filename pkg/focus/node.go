// Package focus implements directional spatial navigation for remote-control
// driven user interfaces.
//
// A view publishes its interactive elements as Nodes through a Source. The
// Registry filters them into the current focus set, FindBestMatch picks the
// nearest node in a compass direction, and the Controller owns the single
// focused node, applying the visual marker and scrolling it into view.
//
// Nothing in this package panics or returns an error on a stray key press:
// missing targets degrade to logged no-ops so the UI never freezes and focus
// is never lost while at least one node is focusable.
package focus

import "fmt"

// Kind classifies a node the way a view layer would describe it.
type Kind int

const (
	KindGeneric Kind = iota
	KindButton
	KindLink
	KindInput
	KindCard
)

var kindNames = [...]string{
	KindGeneric: "generic",
	KindButton:  "button",
	KindLink:    "link",
	KindInput:   "input",
	KindCard:    "card",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Box is a viewport-relative bounding box measured after layout.
type Box struct {
	Left, Top, Width, Height float64
}

// Center returns the geometric center of the box.
func (b Box) Center() (x, y float64) {
	return b.Left + b.Width/2, b.Top + b.Height/2
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// Empty reports whether the box has no rendered area.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

func (b Box) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", b.Left, b.Top, b.Width, b.Height)
}

// Node is an opaque handle to an interactive UI element. Nodes are rebuilt
// by the view on every scan; the ID is the only identity that survives a
// rescan.
type Node struct {
	ID   string
	Kind Kind
	Box  Box

	// Disabled marks native controls that cannot be activated.
	Disabled bool
	// Hidden is set when the node or one of its ancestors is not displayed.
	Hidden bool
	// Href is the link target; links without one are not interactive.
	Href string
	// Focusable explicitly flags a node as focusable regardless of Kind.
	Focusable bool
	// TabIndex is only consulted when HasTabIndex is set.
	TabIndex    int
	HasTabIndex bool

	// Action is the node's activation behaviour ("click").
	Action func()
}

// Interactive reports whether the node matches the interactive criteria:
// an enabled button, a link with a target, an explicitly flagged node, or a
// node with a non-negative tab order.
func (n *Node) Interactive() bool {
	switch {
	case n.Kind == KindButton && !n.Disabled:
		return true
	case n.Kind == KindLink && n.Href != "":
		return true
	case n.Focusable:
		return true
	case n.HasTabIndex && n.TabIndex >= 0:
		return true
	}
	return false
}

// Visible reports whether the node has a rendered area and is displayed.
func (n *Node) Visible() bool {
	return !n.Hidden && !n.Box.Empty()
}

// Enabled reports whether the node may receive focus.
func (n *Node) Enabled() bool {
	return n != nil && n.Visible() && !n.Disabled
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.ID + n.Box.String()
}
