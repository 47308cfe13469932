// Package tui hosts the app in a terminal. The terminal keyboard plays the
// part of the TV remote, the mouse the part of a pointer remote, and
// terminal focus reporting the part of OS visibility events.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/tvnav/pkg/app"
	"gitlab.com/tinyland/lab/tvnav/pkg/idle"
	"gitlab.com/tinyland/lab/tvnav/pkg/layout"
	"gitlab.com/tinyland/lab/tvnav/pkg/sched"
	"gitlab.com/tinyland/lab/tvnav/pkg/theme"
)

const (
	headerHeight = 2
	footerHeight = 1
)

// Model is the root bubbletea model.
type Model struct {
	app       *app.App
	lifecycle *app.Lifecycle
	zones     *zone.Manager

	keys   keyMap
	help   help.Model
	vp     viewport.Model
	styles theme.Styles

	width, height int
	quitting      bool
	// wakePress is set when a left press dismissed the screensaver; the
	// release that completes the tap is swallowed.
	wakePress bool

	// events is shared with the app subscription; Model is copied by value.
	events *[]any
}

// New returns a Model driving a. lc receives terminal focus changes and
// zones may be nil when mouse support is off.
func New(a *app.App, lc *app.Lifecycle, zones *zone.Manager) Model {
	events := new([]any)
	a.Subscribe(func(ev any) { *events = append(*events, ev) })

	st := a.Theme().Styles()
	h := help.New()
	h.Styles.ShortKey = st.HelpKey
	h.Styles.FullKey = st.HelpKey
	h.Styles.ShortDesc = st.HelpDesc
	h.Styles.FullDesc = st.HelpDesc

	return Model{
		app:       a,
		lifecycle: lc,
		zones:     zones,
		keys:      newKeyMap(a.Translator()),
		help:      h,
		vp:        viewport.New(80, 20),
		styles:    st,
		width:     80,
		height:    headerHeight + 20 + footerHeight,
		events:    events,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(time.Second)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		rows := layout.SplitVertical(layout.Rect{Width: m.width, Height: m.height},
			layout.Length{Value: headerHeight},
			layout.Fill{Weight: 1},
			layout.Length{Value: footerHeight},
		)
		body := max(rows[1].Height, 1)
		m.vp.Width, m.vp.Height = m.width, body
		m.help.Width = m.width
		m.app.Resize(m.width, body)

	case sched.Fire:
		msg.Run()

	case tickMsg:
		return m, tickCmd(time.Second)

	case tea.BlurMsg:
		if m.lifecycle != nil {
			m.lifecycle.Hidden()
		}

	case tea.FocusMsg:
		if m.lifecycle != nil {
			m.lifecycle.Visible()
		}

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, m.drain()
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	if k, ok := m.keys.remote(msg); ok {
		m.app.Press(k)
		return
	}
	// Keys with no remote equivalent still count as activity.
	if m.app.Activity(idle.InputKey) {
		return
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		m.app.Activity(idle.InputScroll)
		return
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.wakePress = m.app.Activity(idle.InputPointer)
		return
	case msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease:
		m.app.Activity(idle.InputPointer)
		return
	}
	if m.wakePress {
		m.wakePress = false
		return
	}
	if m.zones != nil && m.app.View() != nil && !m.app.OverlayVisible() {
		for _, it := range m.app.View().Items {
			if m.zones.Get(it.Node.ID).InBounds(msg) {
				m.app.Click(it.Node.ID)
				return
			}
		}
	}
	m.app.Activity(idle.InputClick)
}

// drain consumes app events and turns an exit request into tea.Quit.
func (m *Model) drain() tea.Cmd {
	evs := *m.events
	*m.events = (*m.events)[:0]
	for _, ev := range evs {
		if _, ok := ev.(app.ExitRequested); ok {
			m.quitting = true
			return tea.Quit
		}
	}
	return nil
}

// Quitting reports whether the model asked the program to quit.
func (m Model) Quitting() bool { return m.quitting }

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var out string
	if m.app.OverlayVisible() {
		out = m.renderScreensaver()
	} else {
		out = m.renderPage()
	}
	if m.zones != nil {
		out = m.zones.Scan(out)
	}
	return out
}
