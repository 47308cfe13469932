package app

import (
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/tvnav/pkg/focus"
	"gitlab.com/tinyland/lab/tvnav/pkg/layout"
	"gitlab.com/tinyland/lab/tvnav/pkg/player"
	"gitlab.com/tinyland/lab/tvnav/pkg/stations"
)

const (
	margin       = 1
	navHeight    = 3
	navWidth     = 16
	cardHeight   = 4
	genreHeight  = 3
	buttonHeight = 3
	buttonWidth  = 14
	panelHeight  = 4
)

// Item is a focusable element of a page together with what to draw in it.
type Item struct {
	Node   *focus.Node
	Rect   layout.Rect
	Label  string
	Detail string
	// Current marks the nav entry of the current page and the card of the
	// station that is loaded in the player.
	Current bool
}

// Section is a heading drawn above a group of items.
type Section struct {
	Title string
	Y     int
}

// View is a laid-out page. Coordinates are content cells; row 0 is the top
// of the page before scrolling.
type View struct {
	Route    string
	Title    string
	Sections []Section
	Items    []*Item
	// Panel holds non-interactive text lines drawn at PanelY.
	Panel    []string
	PanelY   int
	Message  string
	MessageY int
	Height   int
	Default  string
}

// Item returns the item for a node ID.
func (v *View) Item(id string) *Item {
	for _, it := range v.Items {
		if it.Node.ID == id {
			return it
		}
	}
	return nil
}

func (v *View) add(it *Item) {
	it.Node.Box = focus.Box{
		Left:   float64(it.Rect.X),
		Top:    float64(it.Rect.Y),
		Width:  float64(it.Rect.Width),
		Height: float64(it.Rect.Height),
	}
	v.Items = append(v.Items, it)
	if b := it.Rect.Bottom(); b > v.Height {
		v.Height = b
	}
}

func (a *App) contentWidth() int {
	w := a.width - 2*margin
	if w < 10 {
		w = 10
	}
	return w
}

func (a *App) grid(cellHeight int) layout.Grid {
	return layout.Grid{Columns: a.cfg.UI.Columns, CellHeight: cellHeight, GapX: 1, GapY: 1}
}

// build lays out the page for a route.
func (a *App) build(route string) *View {
	path := routePath(route)
	v := &View{Route: path}
	a.navBar(v, path)
	y := navHeight + 1
	v.MessageY = y + 1

	switch {
	case path == HomeRoute:
		a.buildHome(v, y)
	case path == "/genre-list":
		a.buildGenres(v, y)
	case strings.HasPrefix(path, "/genre-list/"):
		a.buildGenre(v, y, strings.TrimPrefix(path, "/genre-list/"))
	case path == "/player":
		a.buildPlayer(v, y)
	default:
		v.Title = path
		v.Message = a.tr.T("page.not_found")
		v.Default = "nav-home"
	}
	return v
}

func (a *App) navBar(v *View, path string) {
	entries := []struct {
		id, label, route string
	}{
		{"nav-home", a.tr.T("nav.home"), HomeRoute},
		{"nav-genres", a.tr.T("nav.genres"), "/genre-list"},
		{"nav-player", a.tr.T("nav.player"), "/player"},
	}
	width := len(entries)*navWidth + (len(entries) - 1)
	if w := a.contentWidth(); width > w {
		width = w
	}
	cells := layout.Grid{Columns: len(entries), CellHeight: navHeight, GapX: 1}.Place(margin, 0, width, len(entries))
	for i, e := range entries {
		route := e.route
		v.add(&Item{
			Node: &focus.Node{
				ID:   e.id,
				Kind: focus.KindLink,
				Href: route,
				Action: func() {
					a.Navigate(route)
				},
			},
			Rect:    cells[i],
			Label:   e.label,
			Current: path == route || strings.HasPrefix(path, route+"/"),
		})
	}
}

func (a *App) buildHome(v *View, y int) {
	v.Title = a.tr.T("app.title")
	featured := a.catalog.Featured(a.cfg.UI.Columns * 2)
	v.Sections = append(v.Sections, Section{Title: a.tr.T("home.featured"), Y: y})
	a.stationCards(v, y+1, featured)
	if len(featured) > 0 {
		v.Default = stationID(featured[0])
	} else {
		v.Default = "nav-genres"
	}
}

func (a *App) buildGenres(v *View, y int) {
	v.Title = a.tr.T("nav.genres")
	v.Sections = append(v.Sections, Section{Title: a.tr.T("home.browse"), Y: y})
	genres := a.catalog.Genres
	cells := a.grid(genreHeight).Place(margin, y+1, a.contentWidth(), len(genres))
	for i, g := range genres {
		slug := g.Slug
		v.add(&Item{
			Node: &focus.Node{
				ID:        "genre-" + slug,
				Kind:      focus.KindCard,
				Focusable: true,
				Action: func() {
					a.Navigate("/genre-list/" + slug)
				},
			},
			Rect:   cells[i],
			Label:  g.Title,
			Detail: a.tr.Tf("genre.count", len(a.catalog.ByGenre(slug))),
		})
	}
	if len(genres) > 0 {
		v.Default = "genre-" + genres[0].Slug
	}
}

func (a *App) buildGenre(v *View, y int, slug string) {
	g, ok := a.catalog.Genre(slug)
	if !ok {
		v.Title = slug
		v.Message = a.tr.T("page.not_found")
		v.Default = "nav-genres"
		return
	}
	v.Title = g.Title
	list := a.catalog.ByGenre(slug)
	v.Sections = append(v.Sections, Section{Title: g.Title + " · " + a.tr.T("genre.stations"), Y: y})
	if len(list) == 0 {
		v.Message = a.tr.T("genre.empty")
		v.Default = "nav-genres"
		return
	}
	a.stationCards(v, y+1, list)
	v.Default = stationID(list[0])
}

func (a *App) stationCards(v *View, y int, list []stations.Station) {
	cells := a.grid(cardHeight).Place(margin, y, a.contentWidth(), len(list))
	loaded, _ := a.player.Station()
	for i, s := range list {
		st := s
		v.add(&Item{
			Node: &focus.Node{
				ID:        stationID(st),
				Kind:      focus.KindCard,
				Focusable: true,
				Action: func() {
					a.playFrom(st, list)
					a.Navigate("/player")
				},
			},
			Rect:    cells[i],
			Label:   st.Name,
			Detail:  fmt.Sprintf("%s · %dk", st.Country, st.Bitrate),
			Current: loaded.ID == st.ID && a.player.State() != player.Stopped,
		})
	}
}

func (a *App) buildPlayer(v *View, y int) {
	v.Title = a.tr.T("nav.player")
	v.Sections = append(v.Sections, Section{Title: a.tr.T("home.now_playing"), Y: y})
	v.PanelY = y + 1

	st, loaded := a.player.Station()
	if !loaded && a.lastStation != nil {
		st = *a.lastStation
	}
	if loaded || a.lastStation != nil {
		v.Panel = []string{
			st.Name,
			fmt.Sprintf("%s · %dk", st.Country, st.Bitrate),
			a.tr.T("player.state") + ": " + a.stateLabel(),
		}
	} else {
		v.Panel = []string{a.tr.T("player.nothing")}
	}

	toggleLabel := a.tr.T("player.play")
	if a.player.IsPlaying() {
		toggleLabel = a.tr.T("player.pause")
	}
	hasStation := loaded || a.lastStation != nil
	controls := []struct {
		id, label string
		disabled  bool
		action    func()
	}{
		{"ctl-prev", a.tr.T("player.prev"), len(a.queue) < 2, func() { a.step(-1) }},
		{"ctl-toggle", toggleLabel, !hasStation, a.toggle},
		{"ctl-stop", a.tr.T("player.stop"), a.player.State() == player.Stopped, a.stop},
		{"ctl-next", a.tr.T("player.next"), len(a.queue) < 2, func() { a.step(1) }},
	}
	width := len(controls)*buttonWidth + len(controls) - 1
	if w := a.contentWidth(); width > w {
		width = w
	}
	top := v.PanelY + panelHeight
	cells := layout.Grid{Columns: len(controls), CellHeight: buttonHeight, GapX: 1}.Place(margin, top, width, len(controls))
	for i, c := range controls {
		v.add(&Item{
			Node: &focus.Node{
				ID:       c.id,
				Kind:     focus.KindButton,
				Disabled: c.disabled,
				Action:   c.action,
			},
			Rect:  cells[i],
			Label: c.label,
		})
	}
	v.Default = "ctl-toggle"
}

func (a *App) stateLabel() string {
	switch a.player.State() {
	case player.Playing:
		return a.tr.T("player.playing")
	case player.Paused:
		return a.tr.T("player.paused")
	}
	return a.tr.T("player.stopped")
}

func stationID(s stations.Station) string {
	return "station-" + s.ID
}
