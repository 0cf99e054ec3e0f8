package stock

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalreels/domain"
	"github.com/CrestNiraj12/terminalreels/query"
	"github.com/CrestNiraj12/terminalreels/tui/common"
)

const cellWidth = thumbWidth*2 + 4

// refresh re-renders the grid into the viewport, keeping the scroll offset.
func (m *Model) refresh() {
	offset := m.viewport.YOffset
	m.viewport.SetContent(m.renderGrid())
	m.viewport.SetYOffset(offset)
}

func (m Model) renderGrid() string {
	videos := m.Videos()
	if len(videos) == 0 {
		return ""
	}
	var rows []string
	for i := 0; i < len(videos); i += columns {
		var cells []string
		for _, v := range videos[i:min(i+columns, len(videos))] {
			cells = append(cells, m.renderCell(v))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCell(v domain.StockVideo) string {
	thumb, ok := m.thumbs[v.ID]
	if !ok {
		thumb = "…"
	}
	thumb = lipgloss.Place(thumbWidth*2, thumbHeight, lipgloss.Center, lipgloss.Center, thumb)
	caption := fmt.Sprintf("%s · %s", v.User.Name, durationLabel(v.Duration))
	body := thumb + "\n" + common.MetadataStyle.Render(common.TruncateLines(caption, thumbWidth*2))
	return common.UnselectedStyle.Width(cellWidth).Render(body)
}

// View renders the stock screen.
func (m Model) View() string {
	var b strings.Builder
	title := common.AppTitleStyle.Render("🎬 TerminalReels")
	tagline := common.TaglineStyle.Render("<stock videos via Pexels>")
	b.WriteString(title + tagline + "\n")

	badge := fmt.Sprintf("Stock · %q", m.search)
	if n := len(m.Videos()); n > 0 {
		badge += fmt.Sprintf(" · %d videos", n)
	}
	b.WriteString(common.ScreenBadgeStyle.Render(badge) + "\n")

	videos := m.Videos()
	switch {
	case len(videos) == 0 && m.feed.State() == query.Errored:
		b.WriteString("  " + common.ErrorStyle.Render(msgFailed) + "\n")
		b.WriteString("  " + common.MetadataStyle.Render(m.feed.Err().Error()) + "\n")
	case len(videos) == 0 && (m.feed.State() == query.Pending || m.feed.Fetching()):
		b.WriteString(fmt.Sprintf("  %s %s\n", m.spinner.View(), msgLoading))
	case len(videos) == 0:
		b.WriteString("  " + msgEmpty + "\n")
	default:
		b.WriteString(m.viewport.View() + "\n")
		switch {
		case m.feed.Fetching():
			b.WriteString(fmt.Sprintf("  %s %s\n", m.spinner.View(), msgMore))
		case m.feed.State() == query.Errored:
			b.WriteString("  " + common.ErrorStyle.Render(msgFailed) + "\n")
		}
	}

	b.WriteString(m.help.View(common.StockHelp{KeyMap: m.keys}))
	out := b.String()
	if m.width > 0 {
		out = common.TruncateLines(out, m.width)
	}
	return out
}
