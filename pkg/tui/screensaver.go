package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderScreensaver draws the idle overlay: clock, what is playing and the
// brand. The block drifts horizontally with the minute.
func (m Model) renderScreensaver() string {
	tr := m.app.Translator()
	now := m.app.Now()

	lines := []string{m.styles.Clock.Render(now.Format("15:04")), ""}
	if st, ok := m.app.Player().Station(); ok {
		state := tr.T("idle.paused")
		if m.app.Player().IsPlaying() {
			state = tr.T("idle.playing")
		}
		lines = append(lines, m.styles.Overlay.Render(state+": "+st.Name), "")
	}
	lines = append(lines,
		m.styles.Overlay.Render(tr.T("app.brand")),
		m.styles.Overlay.Faint(true).Render(tr.T("idle.hint")),
	)
	content := lipgloss.JoinVertical(lipgloss.Center, lines...)

	drift := lipgloss.Position(0.3 + 0.1*float64(now.Minute()%5))
	return lipgloss.Place(m.width, m.height, drift, lipgloss.Center, content,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.app.Theme().OverlayBackground)),
	)
}
