// Package theme holds the colour palettes used to draw cards, the focus
// marker and the screensaver overlay.
package theme

import (
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a palette. Colours are hex strings, e.g. "#1a1b26".
type Theme struct {
	Name string

	// Base colors
	Background string
	Foreground string
	Dim        string
	Accent     string

	// Cards
	Border    string // unfocused card border
	Focus     string // focus ring
	FocusText string // label text on the focused card
	Disabled  string

	// Overlay (screensaver)
	OverlayBackground string
	OverlayForeground string
	Clock             string

	// Help bar
	HelpKey  string
	HelpDesc string

	Playing string // now-playing indicator
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	registerBuiltins()
}

// Get returns a named theme, falling back to default if not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Lookup is Get without the fallback.
func Lookup(name string) (Theme, bool) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := registry[strings.ToLower(name)]
	return t, ok
}

// Names returns all available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds a theme under its lowercase name, replacing any theme of
// the same name.
func Register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Title    lipgloss.Style
	Dim      lipgloss.Style
	Card     lipgloss.Style
	Focused  lipgloss.Style
	Disabled lipgloss.Style
	Overlay  lipgloss.Style
	Clock    lipgloss.Style
	Playing  lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// Styles builds the lipgloss styles for t. Cards share a rounded border so
// focused and unfocused cards occupy the same cells.
func (t Theme) Styles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Border)).
		Foreground(lipgloss.Color(t.Foreground)).
		Padding(0, 1)
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent)),
		Dim:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim)),
		Card:  card,
		Focused: card.
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(t.Focus)).
			Foreground(lipgloss.Color(t.FocusText)).
			Bold(true),
		Disabled: card.Foreground(lipgloss.Color(t.Disabled)),
		Overlay: lipgloss.NewStyle().
			Background(lipgloss.Color(t.OverlayBackground)).
			Foreground(lipgloss.Color(t.OverlayForeground)),
		Clock: lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color(t.OverlayBackground)).
			Foreground(lipgloss.Color(t.Clock)),
		Playing:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Playing)),
		HelpKey:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.HelpKey)),
		HelpDesc: lipgloss.NewStyle().Foreground(lipgloss.Color(t.HelpDesc)),
	}
}
