package app

import (
	"gitlab.com/tinyland/lab/tvnav/pkg/platform"
)

// Lifecycle is a platform.LifecycleSource fed by the host. The terminal
// host reports focus loss and gain of the terminal window; the script
// runner reports explicit steps.
type Lifecycle struct {
	hooks []platform.LifecycleHooks
}

// Subscribe implements platform.LifecycleSource.
func (l *Lifecycle) Subscribe(h platform.LifecycleHooks) error {
	l.hooks = append(l.hooks, h)
	return nil
}

// Hidden reports that the app went to the background.
func (l *Lifecycle) Hidden() {
	for _, h := range l.hooks {
		if h.OnHidden != nil {
			h.OnHidden()
		}
	}
}

// Visible reports that the app is in the foreground again.
func (l *Lifecycle) Visible() {
	for _, h := range l.hooks {
		if h.OnVisible != nil {
			h.OnVisible()
		}
	}
}
