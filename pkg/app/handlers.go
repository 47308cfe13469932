package app

import (
	"errors"
	"strings"

	"gitlab.com/tinyland/lab/tvnav/pkg/focus"
	"gitlab.com/tinyland/lab/tvnav/pkg/keys"
	"gitlab.com/tinyland/lab/tvnav/pkg/platform"
	"gitlab.com/tinyland/lab/tvnav/pkg/stations"
)

// registerHandlers installs one key handler per page route. Station lists
// under /genre-list/<slug> are served by the /genre-list handler.
func (a *App) registerHandlers() {
	a.dispatcher.Register(HomeRoute, a.pageHandler(a.listKeys))
	a.dispatcher.Register("/genre-list", a.pageHandler(a.listKeys))
	a.dispatcher.Register("/player", a.pageHandler(a.playerKeys))
}

// pageHandler adapts page-specific key handling to a keys.Handler. Keys
// the page does not claim fall through to the shared remote bindings.
func (a *App) pageHandler(page func(keys.Key) bool) keys.Handler {
	return func(ev keys.Event) bool {
		k, ok := a.keymap.Lookup(ev.Code)
		if !ok {
			a.logger.Debug("app: unmapped key code", "code", ev.Code)
			return false
		}
		if page != nil && page(k) {
			return true
		}
		return a.commonKeys(k)
	}
}

func (a *App) commonKeys(k keys.Key) bool {
	if k.IsNavigation() {
		dir, err := focus.ParseDirection(string(k))
		if err != nil {
			a.logger.Warn("app: arrow key without direction", "key", k)
			return false
		}
		a.focus.Navigate(dir)
		return true
	}
	switch k {
	case keys.Enter:
		a.focus.Select()
	case keys.Return:
		a.Back()
	case keys.Exit:
		a.exit()
	case keys.Red:
		a.Navigate(HomeRoute)
	case keys.Green:
		a.Navigate("/genre-list")
	case keys.Yellow, keys.Info:
		a.Navigate("/player")
	case keys.Play:
		a.resume()
	case keys.Pause:
		a.pause()
	case keys.PlayPause:
		a.toggle()
	case keys.Stop:
		a.stop()
	case keys.ChannelUp, keys.FastForward:
		a.step(1)
	case keys.ChannelDown, keys.Rewind:
		a.step(-1)
	default:
		return false
	}
	return true
}

// listKeys serves the home page and the genre pages. BLUE plays the
// focused station without leaving the list.
func (a *App) listKeys(k keys.Key) bool {
	if k != keys.Blue {
		return false
	}
	id := strings.TrimPrefix(a.FocusedID(), "station-")
	if id == a.FocusedID() {
		return false
	}
	st, ok := a.catalog.Station(id)
	if !ok {
		return false
	}
	a.playFrom(st, a.visibleStations())
	return true
}

// playerKeys serves the now-playing page. BLUE toggles playback from
// anywhere on the page.
func (a *App) playerKeys(k keys.Key) bool {
	if k != keys.Blue {
		return false
	}
	a.toggle()
	return true
}

func (a *App) visibleStations() []stations.Station {
	var out []stations.Station
	for _, it := range a.view.Items {
		if id, ok := strings.CutPrefix(it.Node.ID, "station-"); ok {
			if st, ok := a.catalog.Station(id); ok {
				out = append(out, st)
			}
		}
	}
	return out
}

func (a *App) exit() {
	err := a.device.Exit()
	switch {
	case errors.Is(err, platform.ErrUnsupported):
		a.logger.Info("app: exit not supported on this platform", "platform", a.device.Kind())
		return
	case err != nil:
		a.logger.Error("app: exit failed", "err", err)
		return
	}
	a.emit(ExitRequested{})
}

// playFrom starts st and remembers list as the channel queue.
func (a *App) playFrom(st stations.Station, list []stations.Station) {
	a.queue = append(a.queue[:0], list...)
	a.play(st)
}

func (a *App) play(st stations.Station) {
	a.player.Play(st)
	a.lastStation = &st
	a.playbackChanged()
}

func (a *App) pause() {
	a.player.Pause()
	a.playbackChanged()
}

func (a *App) resume() {
	if _, loaded := a.player.Station(); !loaded && a.lastStation != nil {
		a.play(*a.lastStation)
		return
	}
	a.player.Resume()
	a.playbackChanged()
}

func (a *App) toggle() {
	if _, loaded := a.player.Station(); !loaded {
		a.resume()
		return
	}
	a.player.Toggle()
	a.playbackChanged()
}

func (a *App) stop() {
	a.player.Stop()
	a.playbackChanged()
}

// step moves through the channel queue, wrapping at both ends.
func (a *App) step(delta int) {
	if len(a.queue) < 2 || a.lastStation == nil {
		return
	}
	idx := 0
	for i, s := range a.queue {
		if s.ID == a.lastStation.ID {
			idx = i
			break
		}
	}
	n := len(a.queue)
	a.play(a.queue[((idx+delta)%n+n)%n])
}

func (a *App) playbackChanged() {
	a.refresh()
	id := ""
	if st, ok := a.player.Station(); ok {
		id = st.ID
	}
	a.emit(PlaybackChanged{State: a.player.State(), Station: id})
}
