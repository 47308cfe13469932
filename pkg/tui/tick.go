package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg refreshes the screensaver clock.
type tickMsg struct {
	Time time.Time
}

// tickCmd returns a Cmd that sends a tickMsg after d.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg{Time: t}
	})
}
