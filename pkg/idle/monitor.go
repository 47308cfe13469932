// Package idle tracks user presence and drives the screensaver and the
// background-pause behaviour of the player.
//
// The Monitor is a two-state machine. It goes Active -> Idle once the
// configured timeout has elapsed with no tracked input, and Idle -> Active
// on the very next input event, which is reported as consumed so that
// waking the screen does not also trigger a command. Independently,
// backgrounding the app pauses playback and returning does not resume it.
package idle

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/tvnav/pkg/sched"
)

// DefaultTimeout is the production idle timeout.
const DefaultTimeout = 3 * time.Minute

// State is the monitor's presence state.
type State int

const (
	Active State = iota
	Idle
)

func (s State) String() string {
	if s == Idle {
		return "idle"
	}
	return "active"
}

// Input classifies a tracked input event.
type Input string

const (
	InputKey     Input = "key"
	InputPointer Input = "pointer"
	InputTouch   Input = "touch"
	InputClick   Input = "click"
	InputScroll  Input = "scroll"
)

// Policy decides what happens to playback when the screen goes idle.
type Policy string

const (
	// KeepPlaying leaves audio running behind the screensaver.
	KeepPlaying Policy = "keep-playing"
	// PauseOnIdle pauses audio while idle and resumes it on wake if, and
	// only if, the monitor was the one that paused it.
	PauseOnIdle Policy = "pause"
)

// ParsePolicy parses a policy name; the empty string means KeepPlaying.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", KeepPlaying:
		return KeepPlaying, nil
	case PauseOnIdle:
		return PauseOnIdle, nil
	}
	return "", fmt.Errorf("idle: unknown policy %q", s)
}

// Player is the slice of the audio player the monitor needs.
type Player interface {
	Pause()
	Resume()
	IsPlaying() bool
}

// Overlay shows and dismisses the screensaver.
type Overlay interface {
	Show()
	Hide()
}

// Observer receives state transitions, typically for metrics.
type Observer interface {
	Transitioned(to State)
}

// Config configures a Monitor.
type Config struct {
	Timeout time.Duration
	Policy  Policy
	// Disabled turns the idle timer off; lifecycle pausing still applies.
	Disabled bool
}

// Monitor is the idle/lifecycle state machine. All methods must be called
// from the event-loop goroutine.
type Monitor struct {
	cfg     Config
	now     sched.Clock
	sched   sched.Scheduler
	player  Player
	overlay Overlay
	obs     Observer
	logger  *slog.Logger

	state        State
	lastActivity time.Time
	timer        sched.Task
	pausedByIdle bool
	background   bool
	running      bool
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithPlayer sets the audio player collaborator.
func WithPlayer(p Player) Option { return func(m *Monitor) { m.player = p } }

// WithOverlay sets the screensaver overlay.
func WithOverlay(o Overlay) Option { return func(m *Monitor) { m.overlay = o } }

// WithObserver sets the transition observer.
func WithObserver(o Observer) Option { return func(m *Monitor) { m.obs = o } }

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option { return func(m *Monitor) { m.logger = l } }

// NewMonitor returns a stopped Monitor. A non-positive timeout falls back
// to DefaultTimeout.
func NewMonitor(cfg Config, now sched.Clock, s sched.Scheduler, opts ...Option) *Monitor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Policy == "" {
		cfg.Policy = KeepPlaying
	}
	m := &Monitor{cfg: cfg, now: now, sched: s}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// Start begins tracking from now.
func (m *Monitor) Start() {
	m.running = true
	m.lastActivity = m.now()
	m.arm(m.cfg.Timeout)
}

// Stop cancels the pending timer. Call it on app shutdown.
func (m *Monitor) Stop() {
	m.running = false
	if m.timer != nil {
		m.timer.Cancel()
		m.timer = nil
	}
}

// State returns the current state.
func (m *Monitor) State() State { return m.state }

// Timeout returns the effective idle timeout.
func (m *Monitor) Timeout() time.Duration { return m.cfg.Timeout }

// Elapsed returns the time since the last tracked activity.
func (m *Monitor) Elapsed() time.Duration {
	return m.now().Sub(m.lastActivity)
}

// Activity records a tracked input event. It returns true when the event
// woke the monitor from Idle; the caller must then swallow the event.
func (m *Monitor) Activity(in Input) (consumed bool) {
	m.lastActivity = m.now()
	if m.running {
		m.arm(m.cfg.Timeout)
	}
	if m.state != Idle {
		return false
	}
	m.logger.Debug("idle: wake", "input", in)
	m.setState(Active)
	if m.overlay != nil {
		m.overlay.Hide()
	}
	if m.pausedByIdle {
		m.pausedByIdle = false
		if m.player != nil && !m.background {
			m.player.Resume()
		}
	}
	return true
}

// Background handles the app being hidden or suspended by the OS. Playback
// is paused regardless of the idle state.
func (m *Monitor) Background() {
	m.background = true
	m.pausedByIdle = false
	if m.player != nil && m.player.IsPlaying() {
		m.logger.Info("idle: app backgrounded, pausing playback")
		m.player.Pause()
	}
}

// Foreground handles the app becoming visible again. Playback is left
// paused; resuming without user action is deliberately not done.
func (m *Monitor) Foreground() {
	m.background = false
	m.logger.Debug("idle: app foregrounded")
}

func (m *Monitor) arm(d time.Duration) {
	if m.cfg.Disabled {
		return
	}
	if m.timer != nil {
		m.timer.Cancel()
	}
	m.timer = m.sched.After(d, m.check)
}

// check runs when the timer fires. It enters Idle only once the full
// timeout has elapsed and re-arms for the remainder otherwise.
func (m *Monitor) check() {
	m.timer = nil
	if !m.running || m.state == Idle {
		return
	}
	elapsed := m.Elapsed()
	if elapsed < m.cfg.Timeout {
		m.arm(m.cfg.Timeout - elapsed)
		return
	}
	m.logger.Debug("idle: timeout", "elapsed", elapsed)
	m.setState(Idle)
	if m.overlay != nil {
		m.overlay.Show()
	}
	if m.cfg.Policy == PauseOnIdle && m.player != nil && m.player.IsPlaying() {
		m.player.Pause()
		m.pausedByIdle = true
	}
}

func (m *Monitor) setState(s State) {
	if m.state == s {
		return
	}
	m.state = s
	if m.obs != nil {
		m.obs.Transitioned(s)
	}
}
