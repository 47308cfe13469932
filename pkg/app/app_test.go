package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/tvnav/pkg/config"
	"gitlab.com/tinyland/lab/tvnav/pkg/idle"
	"gitlab.com/tinyland/lab/tvnav/pkg/keys"
	"gitlab.com/tinyland/lab/tvnav/pkg/metrics"
	"gitlab.com/tinyland/lab/tvnav/pkg/platform"
	"gitlab.com/tinyland/lab/tvnav/pkg/player"
	"gitlab.com/tinyland/lab/tvnav/pkg/sched"
)

var epoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	*App
	clock  *sched.Manual
	events []any
}

func newHarness(t *testing.T, mut func(*config.Config), opts ...Option) *harness {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Platform.Kind = "web"
	cfg.UI.Locale = "en"
	if mut != nil {
		mut(cfg)
	}
	clock := sched.NewManual(epoch)
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	a, err := New(cfg, clock, clock.Now, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h := &harness{App: a, clock: clock}
	a.Subscribe(func(ev any) { h.events = append(h.events, ev) })
	a.Start()
	t.Cleanup(a.Stop)
	return h
}

func (h *harness) press(t *testing.T, k keys.Key) bool {
	t.Helper()
	return h.Press(k)
}

func (h *harness) wantFocus(t *testing.T, id string) {
	t.Helper()
	if got := h.FocusedID(); got != id {
		t.Fatalf("focused = %q, want %q", got, id)
	}
}

func (h *harness) wantRoute(t *testing.T, route string) {
	t.Helper()
	if got := h.Route(); got != route {
		t.Fatalf("route = %q, want %q", got, route)
	}
}

func TestStartFocusesFirstFeaturedStation(t *testing.T) {
	h := newHarness(t, nil)
	h.wantRoute(t, "/home")
	h.wantFocus(t, "station-groove-salad")
	if h.View().Item("nav-home") == nil || !h.View().Item("nav-home").Current {
		t.Error("nav-home should be marked current on /home")
	}
}

func TestGridNavigation(t *testing.T) {
	h := newHarness(t, nil)

	h.press(t, keys.Right)
	h.wantFocus(t, "station-drone-zone")
	h.press(t, keys.Left)
	h.wantFocus(t, "station-groove-salad")
	h.press(t, keys.Down)
	h.wantFocus(t, "station-kexp")
	h.press(t, keys.Up)
	h.wantFocus(t, "station-groove-salad")
	h.press(t, keys.Up)
	h.wantFocus(t, "nav-home")

	// No wrap-around at the top edge.
	h.press(t, keys.Up)
	h.wantFocus(t, "nav-home")
	h.press(t, keys.Left)
	h.wantFocus(t, "nav-home")
}

func TestSelectStationPlaysAndBackRestoresFocus(t *testing.T) {
	h := newHarness(t, nil)
	h.press(t, keys.Right)
	h.press(t, keys.Enter)

	h.wantRoute(t, "/player")
	h.wantFocus(t, "ctl-toggle")
	if st, ok := h.Player().Station(); !ok || st.ID != "drone-zone" || !h.Player().IsPlaying() {
		t.Fatalf("player = %+v playing=%v", st, h.Player().IsPlaying())
	}
	if h.View().Item("ctl-toggle").Label != "Pause" {
		t.Errorf("toggle label = %q", h.View().Item("ctl-toggle").Label)
	}

	h.press(t, keys.Return)
	h.wantRoute(t, "/home")
	h.wantFocus(t, "station-drone-zone")
	if !h.View().Item("station-drone-zone").Current {
		t.Error("playing station card should be marked current")
	}

	// Back at the root stays put.
	h.press(t, keys.Return)
	h.wantRoute(t, "/home")
}

func TestGenreSubRouteUsesParentHandler(t *testing.T) {
	h := newHarness(t, nil)
	h.press(t, keys.Green)
	h.wantRoute(t, "/genre-list")
	h.wantFocus(t, "genre-rock")
	if got := h.View().Item("genre-rock").Detail; got != "3 stations" {
		t.Errorf("genre detail = %q", got)
	}

	h.press(t, keys.Enter)
	h.wantRoute(t, "/genre-list/rock")
	h.wantFocus(t, "station-indie-pop-rocks")

	if !h.press(t, keys.Right) {
		t.Fatal("key on /genre-list/rock was not handled")
	}
	h.wantFocus(t, "station-kexp")
}

func TestUnknownRouteDropsKeys(t *testing.T) {
	h := newHarness(t, nil)
	h.Navigate("/settings?tab=1")
	if h.View().Message != "Page not found" {
		t.Errorf("message = %q", h.View().Message)
	}
	if h.press(t, keys.Right) {
		t.Error("key on unregistered route should be dropped")
	}
	if h.press(t, keys.Return) {
		t.Error("RETURN on unregistered route should be dropped")
	}
}

func TestQueryAndTrailingSlashResolve(t *testing.T) {
	h := newHarness(t, nil)
	h.Navigate("/genre-list/jazz/?from=home#top")
	if h.View().Route != "/genre-list/jazz" {
		t.Errorf("view route = %q", h.View().Route)
	}
	if !h.press(t, keys.Right) {
		t.Error("key not handled through sub-route fallback")
	}
	h.wantFocus(t, "station-jazz24")
}

func TestUnmappedCodeNotHandled(t *testing.T) {
	h := newHarness(t, nil)
	if h.HandleKey(99999) {
		t.Error("unmapped code handled")
	}
	h.wantFocus(t, "station-groove-salad")
}

func TestTransportKeys(t *testing.T) {
	h := newHarness(t, nil)
	h.press(t, keys.Blue)
	if st, _ := h.Player().Station(); st.ID != "groove-salad" {
		t.Fatalf("BLUE should quick-play the focused station, got %q", st.ID)
	}
	h.wantRoute(t, "/home")

	h.press(t, keys.ChannelUp)
	if st, _ := h.Player().Station(); st.ID != "drone-zone" {
		t.Errorf("CH+ -> %q", st.ID)
	}
	h.press(t, keys.ChannelDown)
	h.press(t, keys.ChannelDown)
	if st, _ := h.Player().Station(); st.ID != "p1" {
		t.Errorf("CH- should wrap to the end of the queue, got %q", st.ID)
	}

	h.press(t, keys.Pause)
	if h.Player().State() != player.Paused {
		t.Errorf("state = %v", h.Player().State())
	}
	h.press(t, keys.PlayPause)
	if !h.Player().IsPlaying() {
		t.Error("PLAY_PAUSE should resume")
	}
	h.press(t, keys.PlayPause)
	if h.Player().State() != player.Paused {
		t.Errorf("PLAY_PAUSE while playing: state = %v", h.Player().State())
	}
	h.press(t, keys.PlayPause)
	if ev, ok := h.events[len(h.events)-1].(PlaybackChanged); !ok || ev.State != player.Playing {
		t.Errorf("last event = %#v, want PlaybackChanged playing", h.events[len(h.events)-1])
	}
	h.press(t, keys.Stop)
	if h.Player().State() != player.Stopped {
		t.Errorf("state = %v", h.Player().State())
	}
	h.press(t, keys.Play)
	if st, _ := h.Player().Station(); !h.Player().IsPlaying() || st.ID != "p1" {
		t.Error("PLAY after STOP should restart the last station")
	}
}

func TestPlayerPageWithNothingLoaded(t *testing.T) {
	h := newHarness(t, nil)
	h.press(t, keys.Yellow)
	h.wantRoute(t, "/player")
	if h.View().Panel[0] != "Nothing is playing" {
		t.Errorf("panel = %v", h.View().Panel)
	}
	// Every control is disabled, so focus falls back to the first nav entry.
	h.wantFocus(t, "nav-home")
	h.press(t, keys.Down)
	h.wantFocus(t, "nav-home")
}

func TestScreensaverConsumesWakingKey(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Idle.Enabled = "on" })

	h.clock.Advance(2 * time.Minute)
	h.press(t, keys.Right)
	h.wantFocus(t, "station-drone-zone")

	h.clock.Advance(3*time.Minute - time.Second)
	if h.OverlayVisible() {
		t.Fatal("screensaver shown before the timeout elapsed since the last key")
	}
	h.clock.Advance(time.Second)
	if !h.OverlayVisible() || h.IdleState() != idle.Idle {
		t.Fatal("screensaver not shown after timeout")
	}

	if !h.press(t, keys.Right) {
		t.Error("waking key should be reported handled")
	}
	if h.OverlayVisible() {
		t.Error("screensaver still visible after key")
	}
	h.wantFocus(t, "station-drone-zone")

	h.press(t, keys.Right)
	h.wantFocus(t, "station-defcon")
}

func TestScreensaverAutoFollowsPlatform(t *testing.T) {
	web := newHarness(t, nil)
	web.clock.Advance(10 * time.Minute)
	if web.OverlayVisible() {
		t.Error("web platform should not show a screensaver by default")
	}

	tv := newHarness(t, func(c *config.Config) { c.Platform.Kind = "samsung" })
	tv.clock.Advance(3 * time.Minute)
	if !tv.OverlayVisible() {
		t.Error("TV platform should show a screensaver by default")
	}
}

func TestIdlePolicies(t *testing.T) {
	keep := newHarness(t, func(c *config.Config) { c.Idle.Enabled = "on" })
	keep.press(t, keys.Blue)
	keep.clock.Advance(3 * time.Minute)
	if !keep.Player().IsPlaying() {
		t.Error("keep-playing policy paused audio")
	}

	pause := newHarness(t, func(c *config.Config) {
		c.Idle.Enabled = "on"
		c.Idle.Policy = "pause"
	})
	pause.press(t, keys.Blue)
	pause.clock.Advance(3 * time.Minute)
	if pause.Player().State() != player.Paused {
		t.Fatalf("pause policy: state = %v", pause.Player().State())
	}
	pause.press(t, keys.Enter)
	if !pause.Player().IsPlaying() {
		t.Error("waking should resume audio paused by the idle policy")
	}
	pause.wantRoute(t, "/home")
}

func TestLifecyclePausesAndDoesNotResume(t *testing.T) {
	lc := &Lifecycle{}
	dev := platform.NewDevice(platform.LG, platform.WithLifecycle(lc))
	h := newHarness(t, nil, WithDevice(dev))

	h.press(t, keys.Blue)
	lc.Hidden()
	if h.Player().State() != player.Paused {
		t.Fatalf("state after hidden = %v", h.Player().State())
	}
	lc.Visible()
	if h.Player().State() != player.Paused {
		t.Error("foreground must not resume playback")
	}
}

func TestExit(t *testing.T) {
	called := false
	dev := platform.NewDevice(platform.Samsung, platform.WithExit(func() error {
		called = true
		return nil
	}))
	h := newHarness(t, nil, WithDevice(dev))
	h.press(t, keys.Exit)
	if !called {
		t.Fatal("platform exit not called")
	}
	if !hasEvent[ExitRequested](h.events) {
		t.Error("ExitRequested not emitted")
	}

	web := newHarness(t, nil)
	web.press(t, keys.Exit)
	if hasEvent[ExitRequested](web.events) {
		t.Error("ExitRequested emitted without exit support")
	}
}

func TestResizeReschedulesScan(t *testing.T) {
	h := newHarness(t, nil)
	h.clock.Advance(time.Second) // drain warm-up scans

	h.Resize(80, 6)
	if h.clock.Pending() != 1 {
		t.Fatal("resize did not schedule a rescan")
	}
	h.press(t, keys.Down)
	h.wantFocus(t, "station-kexp")
	// kexp spans rows 10..14; a 6-row viewport scrolls to show its bottom edge.
	if h.Scroll() != 8 {
		t.Errorf("scroll = %d, want 8", h.Scroll())
	}
	h.press(t, keys.Up)
	if h.Scroll() != 5 {
		t.Errorf("scroll = %d, want 5", h.Scroll())
	}
	h.clock.Advance(150 * time.Millisecond)
	if h.clock.Pending() != 0 {
		t.Error("rescan still pending after debounce")
	}
	h.wantFocus(t, "station-groove-salad")
}

func TestClickFocusesAndSelects(t *testing.T) {
	h := newHarness(t, nil)
	if !h.Click("nav-genres") {
		t.Fatal("click not handled")
	}
	h.wantRoute(t, "/genre-list")
	if h.Click("no-such-node") {
		t.Error("click on unknown node handled")
	}
}

func TestKeymapOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	if err := os.WriteFile(path, []byte("web:\n  EXIT: [81]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := newHarness(t, func(c *config.Config) { c.Platform.KeymapFile = path })
	if !h.KeyMap().Is(81, keys.Exit) {
		t.Error("override not applied")
	}
	if h.KeyMap().Is(27, keys.Exit) {
		t.Error("override should replace the built-in code")
	}
}

func TestMetricsObserveNavigation(t *testing.T) {
	m := metrics.New()
	h := newHarness(t, nil, WithMetrics(m))
	h.press(t, keys.Right)
	h.press(t, keys.Up)
	h.press(t, keys.Up)

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	joined := strings.Join(names, ",")
	for _, want := range []string{"tvnav_navigations_total", "tvnav_key_dispatches_total", "tvnav_focus_scans_total"} {
		if !strings.Contains(joined, want) {
			t.Errorf("metric %s missing from %s", want, joined)
		}
	}
}

func TestLocaleSelectsCatalog(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.UI.Locale = "sv_SE.UTF-8" })
	if got := h.View().Item("nav-home").Label; got != "Hem" {
		t.Errorf("nav-home label = %q", got)
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Idle.Policy = "mute"
	clock := sched.NewManual(epoch)
	if _, err := New(cfg, clock, clock.Now); err == nil {
		t.Error("expected error")
	}
}

func hasEvent[T any](events []any) bool {
	for _, ev := range events {
		if _, ok := ev.(T); ok {
			return true
		}
	}
	return false
}
