// Package app wires the navigation core into one service object: the
// platform, key map, focus registry and controller, route-scoped key
// dispatcher, idle monitor, player and router. Hosts (the terminal UI and
// the script runner) feed it input and read its view; all methods must be
// called from a single goroutine.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"gitlab.com/tinyland/lab/tvnav/pkg/config"
	"gitlab.com/tinyland/lab/tvnav/pkg/focus"
	"gitlab.com/tinyland/lab/tvnav/pkg/i18n"
	"gitlab.com/tinyland/lab/tvnav/pkg/idle"
	"gitlab.com/tinyland/lab/tvnav/pkg/keys"
	"gitlab.com/tinyland/lab/tvnav/pkg/metrics"
	"gitlab.com/tinyland/lab/tvnav/pkg/platform"
	"gitlab.com/tinyland/lab/tvnav/pkg/player"
	"gitlab.com/tinyland/lab/tvnav/pkg/sched"
	"gitlab.com/tinyland/lab/tvnav/pkg/stations"
	"gitlab.com/tinyland/lab/tvnav/pkg/theme"
)

// HomeRoute is the start page.
const HomeRoute = "/home"

// App is the running application.
type App struct {
	id     uuid.UUID
	cfg    *config.Config
	logger *slog.Logger
	sched  sched.Scheduler
	now    sched.Clock

	device  platform.Capabilities
	keymap  *keys.Map
	catalog *stations.Catalog
	player  *player.Virtual
	tr      *i18n.Translator
	theme   theme.Theme
	metrics *metrics.Collector

	registry   *focus.Registry
	focus      *focus.Controller
	watcher    *focus.Watcher
	dispatcher *keys.Dispatcher
	idle       *idle.Monitor
	router     *Router

	width, height int
	view          *View
	scroll        int
	marked        string
	overlay       bool

	queue       []stations.Station
	lastStation *stations.Station

	subscribers []func(any)
}

// Option configures an App.
type Option func(*App)

// WithDevice sets the platform. Without it the platform is resolved from
// the configuration.
func WithDevice(d platform.Capabilities) Option {
	return func(a *App) { a.device = d }
}

// WithCatalog sets the station catalog.
func WithCatalog(c *stations.Catalog) Option {
	return func(a *App) { a.catalog = c }
}

// WithPlayer sets the audio player.
func WithPlayer(p *player.Virtual) Option {
	return func(a *App) { a.player = p }
}

// WithMetrics attaches a metrics collector to the focus, key and idle
// components.
func WithMetrics(c *metrics.Collector) Option {
	return func(a *App) { a.metrics = c }
}

// WithLogger sets the logger. Every component logs through it.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// New builds the app from cfg. s and now drive every timer in the app, so
// a sched.Manual makes the whole app deterministic.
func New(cfg *config.Config, s sched.Scheduler, now sched.Clock, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		id:     uuid.New(),
		cfg:    cfg,
		sched:  s,
		now:    now,
		width:  80,
		height: 20,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	a.logger = a.logger.With("instance", a.id.String())

	if a.device == nil {
		kind, err := platform.Resolve(cfg.Platform.Kind, cfg.Platform.UserAgent)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		a.device = platform.NewDevice(kind)
	}
	km, err := loadKeyMap(a.device.KeyMap(), cfg.Platform.KeymapFile)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	a.keymap = km

	if a.catalog == nil {
		if cfg.UI.Catalog != "" {
			c, err := stations.Load(cfg.UI.Catalog)
			if err != nil {
				return nil, fmt.Errorf("app: %w", err)
			}
			a.catalog = c
		} else {
			a.catalog = stations.Demo()
		}
	}
	if a.player == nil {
		a.player = player.NewVirtual(a.logger)
	}
	a.tr = i18n.New(cfg.UI.Locale)
	a.theme = theme.Get(cfg.UI.Theme)

	a.router = NewRouter(HomeRoute)
	a.router.onChange = a.routeChanged

	a.registry = focus.NewRegistry(focus.SourceFunc(a.nodes), a.logger)
	fopts := []focus.Option{
		focus.WithMatcher(focus.Matcher{Epsilon: cfg.Focus.Epsilon, CrossWeight: cfg.Focus.CrossWeight}),
		focus.WithMarker(marker{a}),
		focus.WithScroller(a),
		focus.WithLogger(a.logger),
		focus.OnChange(a.focusChanged),
	}
	if a.metrics != nil {
		fopts = append(fopts, focus.WithObserver(a.metrics))
	}
	a.focus = focus.NewController(a.registry, fopts...)
	a.watcher = focus.NewWatcher(a.focus, s, cfg.Focus.RescanDebounce.Duration)

	a.dispatcher = keys.NewDispatcher(a.router.Current, a.logger)
	if a.metrics != nil {
		a.dispatcher.SetObserver(a.metrics)
	}
	a.registerHandlers()

	enabled, err := cfg.IdleEnabled(a.device.ScreensaverRequired())
	if err != nil {
		return nil, err
	}
	policy, err := idle.ParsePolicy(cfg.Idle.Policy)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	iopts := []idle.Option{
		idle.WithPlayer(a.player),
		idle.WithOverlay(screensaver{a}),
		idle.WithLogger(a.logger),
	}
	if a.metrics != nil {
		iopts = append(iopts, idle.WithObserver(a.metrics))
	}
	a.idle = idle.NewMonitor(idle.Config{
		Timeout:  cfg.Idle.Timeout.Duration,
		Policy:   policy,
		Disabled: !enabled,
	}, now, s, iopts...)

	err = a.device.RegisterLifecycleHooks(platform.LifecycleHooks{
		OnHidden:  a.hidden,
		OnVisible: a.visible,
	})
	switch {
	case errors.Is(err, platform.ErrUnsupported):
		a.logger.Debug("app: platform has no lifecycle notifications")
	case err != nil:
		a.logger.Warn("app: lifecycle hooks unavailable", "err", err)
	}

	a.logger.Info("app: ready",
		"platform", a.device.Kind(),
		"keymap", a.keymap.Name(),
		"routes", a.dispatcher.Routes(),
		"locale", a.tr.Language().String(),
		"screensaver", enabled,
		"idle_policy", policy,
	)
	return a, nil
}

func loadKeyMap(base *keys.Map, overrides string) (*keys.Map, error) {
	if overrides == "" {
		return base, nil
	}
	of, err := keys.LoadOverrides(overrides)
	if err != nil {
		return nil, err
	}
	return of.Apply(base)
}

// Start builds the first page, focuses its default node and starts the
// idle timer and the warm-up rescans.
func (a *App) Start() {
	a.view = a.build(a.router.Current())
	a.focus.SetDefault(a.view.Default)
	a.focus.Init()
	a.watcher.WarmUp(a.cfg.Focus.WarmupScans, a.cfg.Focus.WarmupInterval.Duration)
	a.idle.Start()
}

// Stop cancels every pending timer.
func (a *App) Stop() {
	a.watcher.Stop()
	a.idle.Stop()
}

// Subscribe registers fn for app events.
func (a *App) Subscribe(fn func(any)) {
	a.subscribers = append(a.subscribers, fn)
}

func (a *App) emit(ev any) {
	for _, fn := range a.subscribers {
		fn(ev)
	}
}

// HandleKey feeds a raw remote key code into the app. A key that wakes the
// screensaver is consumed and does nothing else. It reports whether the
// key was handled.
func (a *App) HandleKey(code int) bool {
	if a.wake(idle.InputKey) {
		return true
	}
	return a.dispatcher.Dispatch(keys.Event{Code: code, At: a.now()})
}

// Press feeds a logical key, translated to the platform's primary code.
func (a *App) Press(k keys.Key) bool {
	code, ok := a.keymap.Code(k)
	if !ok {
		a.logger.Debug("app: key not on this remote", "key", k)
		return false
	}
	return a.HandleKey(code)
}

// Activity records non-key input (pointer, touch, scroll, or terminal keys
// with no remote equivalent) and reports whether it was consumed by waking
// the screensaver.
func (a *App) Activity(in idle.Input) bool {
	return a.wake(in)
}

// Click focuses and activates the node with id, the way a pointer tap
// would. A click that wakes the screensaver does nothing else.
func (a *App) Click(id string) bool {
	if a.wake(idle.InputClick) {
		return true
	}
	if !a.focus.FocusByID(id) {
		return false
	}
	return a.focus.Select()
}

// wake records activity. Dismissing the screensaver lays the page out
// again to pick up playback resumed by the idle policy.
func (a *App) wake(in idle.Input) bool {
	if !a.idle.Activity(in) {
		return false
	}
	a.refresh()
	return true
}

// Resize sets the content area in cells. The page is laid out again and
// the focus set is rescanned after the debounce interval.
func (a *App) Resize(width, height int) {
	if width == a.width && height == a.height {
		return
	}
	a.width, a.height = width, height
	a.refresh()
}

// Navigate pushes path, remembering the focused node for Back.
func (a *App) Navigate(path string) {
	a.router.Push(path, a.FocusedID())
}

// Back returns to the previous page and reports whether there was one.
func (a *App) Back() bool {
	if !a.router.Back() {
		a.logger.Debug("app: back at root")
		return false
	}
	return true
}

// routeChanged rebuilds the page and refocuses immediately, so keys that
// follow a page transition never act on the previous page.
func (a *App) routeChanged(from, to, restore string) {
	a.view = a.build(to)
	a.scroll = 0
	target := restore
	if target == "" {
		target = a.view.Default
	}
	a.focus.SetDefault(a.view.Default)
	a.focus.UpdateFocusableElements()
	if target != "" {
		a.focus.FocusByID(target)
	}
	a.watcher.WarmUp(a.cfg.Focus.WarmupScans, a.cfg.Focus.WarmupInterval.Duration)
	a.logger.Debug("app: route changed", "from", from, "to", to, "focus", a.FocusedID(), "depth", a.router.Depth())
	a.emit(RouteChanged{From: from, To: to})
}

// refresh re-lays out the current page and schedules a debounced rescan.
func (a *App) refresh() {
	if a.view == nil {
		return
	}
	a.view = a.build(a.router.Current())
	a.watcher.ViewChanged()
}

func (a *App) nodes() []*focus.Node {
	if a.view == nil {
		return nil
	}
	out := make([]*focus.Node, len(a.view.Items))
	for i, it := range a.view.Items {
		out[i] = it.Node
	}
	return out
}

func (a *App) focusChanged(prev, next *focus.Node) {
	from := ""
	if prev != nil {
		from = prev.ID
	}
	a.emit(FocusChanged{From: from, To: next.ID})
}

// ScrollIntoView implements focus.Scroller: the page scrolls the minimum
// distance that brings the node fully into view.
func (a *App) ScrollIntoView(n *focus.Node) {
	top, bottom := int(n.Box.Top), int(n.Box.Bottom())
	switch {
	case top < a.scroll:
		a.scroll = top
	case bottom > a.scroll+a.height:
		a.scroll = bottom - a.height
	}
	if a.scroll < 0 {
		a.scroll = 0
	}
}

type marker struct{ a *App }

func (m marker) Mark(n *focus.Node) { m.a.marked = n.ID }

func (m marker) Unmark(n *focus.Node) {
	if m.a.marked == n.ID {
		m.a.marked = ""
	}
}

type screensaver struct{ a *App }

func (s screensaver) Show() {
	s.a.overlay = true
	s.a.emit(OverlayChanged{Visible: true})
}

func (s screensaver) Hide() {
	s.a.overlay = false
	s.a.emit(OverlayChanged{Visible: false})
}

func (a *App) hidden() {
	a.idle.Background()
	a.refresh()
}

func (a *App) visible() {
	a.idle.Foreground()
}

// ID returns the instance id attached to every log line.
func (a *App) ID() uuid.UUID { return a.id }

// Route returns the current location.
func (a *App) Route() string { return a.router.Current() }

// View returns the current page. It is nil before Start.
func (a *App) View() *View { return a.view }

// FocusedID returns the ID of the node carrying the focus marker.
func (a *App) FocusedID() string { return a.marked }

// Scroll returns the first visible content row.
func (a *App) Scroll() int { return a.scroll }

// OverlayVisible reports whether the screensaver is up.
func (a *App) OverlayVisible() bool { return a.overlay }

// IdleState returns the idle monitor state.
func (a *App) IdleState() idle.State { return a.idle.State() }

// Player returns the audio player.
func (a *App) Player() *player.Virtual { return a.player }

// Translator returns the active translation catalog.
func (a *App) Translator() *i18n.Translator { return a.tr }

// Theme returns the active palette.
func (a *App) Theme() theme.Theme { return a.theme }

// KeyMap returns the frozen platform key map.
func (a *App) KeyMap() *keys.Map { return a.keymap }

// Platform returns the platform capabilities.
func (a *App) Platform() platform.Capabilities { return a.device }

// Now returns the app clock's current time.
func (a *App) Now() time.Time { return a.now() }
