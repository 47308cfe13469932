package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/tvnav/pkg/i18n"
	"gitlab.com/tinyland/lab/tvnav/pkg/keys"
)

// remoteKey binds terminal keys to one logical remote key.
type remoteKey struct {
	key.Binding
	remote keys.Key
}

// keyMap maps the terminal keyboard onto a TV remote.
type keyMap struct {
	Up, Down, Left, Right remoteKey
	Enter, Return, Exit   remoteKey
	Red, Green, Yellow    remoteKey
	Blue                  remoteKey
	Play, Pause           remoteKey
	PlayPause, Stop       remoteKey
	FastForward, Rewind   remoteKey
	ChannelUp             remoteKey
	ChannelDown           remoteKey
	Info                  remoteKey

	Help key.Binding
	Quit key.Binding
}

func bind(remote keys.Key, help, desc string, terminal ...string) remoteKey {
	return remoteKey{
		Binding: key.NewBinding(key.WithKeys(terminal...), key.WithHelp(help, desc)),
		remote:  remote,
	}
}

func newKeyMap(tr *i18n.Translator) keyMap {
	return keyMap{
		Up:          bind(keys.Up, "↑/k", tr.T("hint.navigate"), "up", "k"),
		Down:        bind(keys.Down, "↓/j", tr.T("hint.navigate"), "down", "j"),
		Left:        bind(keys.Left, "←/h", tr.T("hint.navigate"), "left", "h"),
		Right:       bind(keys.Right, "→/l", tr.T("hint.navigate"), "right", "l"),
		Enter:       bind(keys.Enter, "enter", tr.T("hint.select"), "enter"),
		Return:      bind(keys.Return, "backspace", tr.T("hint.back"), "backspace", "b"),
		Exit:        bind(keys.Exit, "q", tr.T("hint.exit"), "q", "esc"),
		Red:         bind(keys.Red, "1", tr.T("nav.home"), "1", "f1"),
		Green:       bind(keys.Green, "2", tr.T("nav.genres"), "2", "f2"),
		Yellow:      bind(keys.Yellow, "3", tr.T("nav.player"), "3", "f3"),
		Blue:        bind(keys.Blue, "4", tr.T("player.play"), "4", "f4"),
		Play:        bind(keys.Play, "P", tr.T("player.play"), "P"),
		Pause:       bind(keys.Pause, "x", tr.T("player.pause"), "x"),
		PlayPause:   bind(keys.PlayPause, "p/space", tr.T("hint.playpause"), "p", " "),
		Stop:        bind(keys.Stop, "s", tr.T("hint.stop"), "s"),
		FastForward: bind(keys.FastForward, "]", tr.T("player.next"), "]"),
		Rewind:      bind(keys.Rewind, "[", tr.T("player.prev"), "["),
		ChannelUp:   bind(keys.ChannelUp, "pgup/+", tr.T("hint.channel"), "pgup", "+"),
		ChannelDown: bind(keys.ChannelDown, "pgdn/-", tr.T("hint.channel"), "pgdown", "-"),
		Info:        bind(keys.Info, "i", tr.T("nav.player"), "i"),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", tr.T("hint.help")),
		),
		Quit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) remotes() []remoteKey {
	return []remoteKey{
		k.Up, k.Down, k.Left, k.Right,
		k.Enter, k.Return, k.Exit,
		k.Red, k.Green, k.Yellow, k.Blue,
		k.Play, k.Pause, k.PlayPause, k.Stop,
		k.FastForward, k.Rewind, k.ChannelUp, k.ChannelDown, k.Info,
	}
}

// remote resolves a terminal key press to a remote key.
func (k keyMap) remote(msg tea.KeyMsg) (keys.Key, bool) {
	for _, r := range k.remotes() {
		if key.Matches(msg, r.Binding) {
			return r.remote, true
		}
	}
	return "", false
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	nav := key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", k.Up.Help().Desc))
	return []key.Binding{nav, k.Enter.Binding, k.Return.Binding, k.PlayPause.Binding, k.Exit.Binding, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up.Binding, k.Down.Binding, k.Left.Binding, k.Right.Binding},
		{k.Enter.Binding, k.Return.Binding, k.Exit.Binding},
		{k.Red.Binding, k.Green.Binding, k.Yellow.Binding, k.Blue.Binding},
		{k.PlayPause.Binding, k.Play.Binding, k.Pause.Binding, k.Stop.Binding},
		{k.ChannelUp.Binding, k.ChannelDown.Binding, k.FastForward.Binding, k.Rewind.Binding},
		{k.Info.Binding, k.Help},
	}
}
