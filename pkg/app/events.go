package app

import "gitlab.com/tinyland/lab/tvnav/pkg/player"

// Events are delivered synchronously to subscribers, on the goroutine that
// drove the change. Receivers type-switch on the concrete type.

// RouteChanged is emitted after a page transition.
type RouteChanged struct {
	From, To string
}

// FocusChanged is emitted when the focus marker moves to another node.
type FocusChanged struct {
	From, To string
}

// OverlayChanged is emitted when the screensaver is shown or dismissed.
type OverlayChanged struct {
	Visible bool
}

// PlaybackChanged is emitted after a user-initiated player action.
type PlaybackChanged struct {
	State   player.State
	Station string
}

// ExitRequested is emitted after the platform accepted an exit request.
// Hosts that cannot terminate themselves from inside Exit quit on it.
type ExitRequested struct{}
