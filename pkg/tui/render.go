package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/tvnav/pkg/app"
	"gitlab.com/tinyland/lab/tvnav/pkg/layout"
)

const currentMark = "● "

// renderPage draws header, scrolled page body and help bar.
func (m Model) renderPage() string {
	v := m.app.View()
	if v == nil {
		return ""
	}
	vp := m.vp
	vp.SetContent(m.renderBody(v))
	vp.SetYOffset(m.app.Scroll())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(v),
		vp.View(),
		m.help.View(m.keys),
	)
}

func (m Model) renderHeader(v *app.View) string {
	title := m.styles.Title.Render(" " + v.Title)

	info := string(m.app.Platform().Kind()) + " · " + m.app.Translator().Language().String()
	if st, ok := m.app.Player().Station(); ok && m.app.Player().IsPlaying() {
		info = m.styles.Playing.Render(currentMark+st.Name) + "  " + m.styles.Dim.Render(info)
	} else {
		info = m.styles.Dim.Render(info)
	}
	cols := layout.SplitHorizontal(layout.Rect{Width: m.width, Height: 1},
		layout.Fill{Weight: 1},
		layout.Length{Value: lipgloss.Width(info) + 1},
	)
	slot := cols[0].Width
	if lipgloss.Width(title) > slot-1 {
		title = ansi.Truncate(title, max(slot-1, 0), "…")
	}
	line := title + strings.Repeat(" ", max(slot-lipgloss.Width(title), 1)) + info
	rule := m.styles.Dim.Render(strings.Repeat("─", max(m.width, 0)))
	return line + "\n" + rule
}

// block is a run of lines placed at content row y.
type block struct {
	y     int
	lines string
}

// renderBody draws the page in content coordinates: every item lands on
// the row and column its layout rect names.
func (m Model) renderBody(v *app.View) string {
	var blocks []block
	for _, s := range v.Sections {
		blocks = append(blocks, block{s.Y, " " + m.styles.Title.Render(ansi.Truncate(s.Title, max(m.width-2, 1), "…"))})
	}
	for i, line := range v.Panel {
		blocks = append(blocks, block{v.PanelY + i, " " + ansi.Truncate(line, max(m.width-2, 1), "…")})
	}
	if v.Message != "" {
		blocks = append(blocks, block{v.MessageY, " " + m.styles.Dim.Render(v.Message)})
	}

	rows := map[int][]*app.Item{}
	for _, it := range v.Items {
		rows[it.Rect.Y] = append(rows[it.Rect.Y], it)
	}
	for y, items := range rows {
		blocks = append(blocks, block{y, m.renderRow(items)})
	}
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].y < blocks[j].y })

	var b strings.Builder
	cur := 0
	for _, bl := range blocks {
		for ; cur < bl.y; cur++ {
			b.WriteString("\n")
		}
		b.WriteString(bl.lines)
		b.WriteString("\n")
		cur += strings.Count(bl.lines, "\n") + 1
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderRow(items []*app.Item) string {
	sort.Slice(items, func(i, j int) bool { return items[i].Rect.X < items[j].Rect.X })
	parts := make([]string, 0, 2*len(items))
	x := 0
	for _, it := range items {
		if gap := it.Rect.X - x; gap > 0 {
			parts = append(parts, strings.Repeat(" ", gap))
		}
		parts = append(parts, m.renderCard(it))
		x = it.Rect.Right()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderCard draws one item. The border occupies one cell on each side
// and the padding one more, so labels get Width-4 cells.
func (m Model) renderCard(it *app.Item) string {
	style := m.styles.Card
	switch {
	case it.Node.ID == m.app.FocusedID():
		style = m.styles.Focused
	case it.Node.Disabled:
		style = m.styles.Disabled
	}
	w, h := max(it.Rect.Width-2, 1), max(it.Rect.Height-2, 1)
	inner := max(w-2, 1)

	label := it.Label
	if it.Current {
		label = currentMark + label
	}
	content := ansi.Truncate(label, inner, "…")
	if it.Detail != "" && h >= 2 {
		content += "\n" + m.styles.Dim.Render(ansi.Truncate(it.Detail, inner, "…"))
	}
	card := style.Width(w).Height(h).Render(content)
	if m.zones != nil {
		card = m.zones.Mark(it.Node.ID, card)
	}
	return card
}
