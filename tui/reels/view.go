package reels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalreels/domain"
	"github.com/CrestNiraj12/terminalreels/query"
	"github.com/CrestNiraj12/terminalreels/share"
	"github.com/CrestNiraj12/terminalreels/tui/common"
)

const cardWidth = clipWidth*2 + 4

// View renders the focused reel with its controls.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("🎬 TerminalReels")
	tagline := common.TaglineStyle.Render("<scroll. watch. like.>")
	b.WriteString(title + tagline + "\n")

	reels := m.Reels()
	badge := "Reels"
	if len(reels) > 0 {
		badge = fmt.Sprintf("Reels · %d of %d", m.cursor+1, len(reels))
	}
	b.WriteString(common.ScreenBadgeStyle.Render(badge) + "\n")

	switch {
	case len(reels) == 0 && m.feed.State() == query.Errored:
		b.WriteString(m.renderError())
	case len(reels) == 0 && (m.feed.State() == query.Pending || m.feed.Fetching()):
		b.WriteString(fmt.Sprintf("  %s %s\n", m.spinner.View(), msgLoading))
	case len(reels) == 0:
		b.WriteString("  " + msgEmpty + "\n")
	default:
		b.WriteString(m.renderCard(reels[m.cursor]))
		b.WriteString("\n")
		b.WriteString(m.renderFooter(len(reels)))
	}

	if m.share.IsOpen() {
		b.WriteString("\n" + m.renderShareDialog())
	}
	if m.notice != "" {
		style := common.SuccessStyle
		if m.noticeFailed {
			style = common.ErrorStyle
		}
		b.WriteString("\n" + common.DialogStyle.Render(style.Render(m.notice)+"\n\n"+common.MetadataStyle.Render("enter to dismiss")))
	}

	b.WriteString("\n" + m.helpView())
	out := b.String()
	if m.width > 0 {
		out = common.TruncateLines(out, m.width)
	}
	return out
}

func (m Model) renderError() string {
	var b strings.Builder
	b.WriteString("  " + common.ErrorStyle.Render(msgFailed) + "\n")
	if err := m.feed.Err(); err != nil {
		b.WriteString("  " + common.MetadataStyle.Render(err.Error()) + "\n")
	}
	return b.String()
}

func (m Model) renderCard(r domain.Reel) string {
	var clip string
	var playing, muted bool
	if m.cursor < len(m.clips) {
		c := m.clips[m.cursor]
		playing, muted = c.Playing(), c.Muted()
		switch {
		case c.Loaded():
			clip = c.Frame()
		case c.Err() != nil:
			clip = placeholder("▶ press o to play")
		default:
			clip = placeholder(m.spinner.View() + " loading clip...")
		}
	}

	likeIcon := "♡"
	likeStyle := common.MetadataStyle
	if r.IsLiked {
		likeIcon = "♥"
		likeStyle = common.LikeActiveStyle
	}
	sound := "🔊"
	if muted {
		sound = "🔇"
	}
	state := "⏸"
	if playing {
		state = "▶"
	}
	meta := fmt.Sprintf("%s %s   %s   %s",
		likeStyle.Render(likeIcon), common.FormatCount(r.Likes), sound, state)

	content := clip + "\n\n" + meta + "\n" + common.MetadataStyle.Render(r.VideoURL)
	height := m.viewHeight() - 2 // border
	content = lipgloss.NewStyle().Width(cardWidth).Height(height).MaxHeight(height).Render(content)
	return common.TruncateLines(common.SelectedStyle.Render(content), cardWidth+4)
}

func placeholder(text string) string {
	return lipgloss.Place(clipWidth*2, clipHeight, lipgloss.Center, lipgloss.Center, text)
}

func (m Model) renderFooter(total int) string {
	switch {
	case m.feed.Fetching():
		return fmt.Sprintf("  %s %s", m.spinner.View(), msgLoadingMore)
	case m.feed.State() == query.Errored:
		return "  " + common.ErrorStyle.Render(msgFailed) + " " + common.MetadataStyle.Render(errText(m.feed.Err()))
	case m.feed.State() == query.Exhausted && m.cursor == total-1:
		return "  " + common.MetadataStyle.Render(msgEnd)
	}
	return ""
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (m Model) renderShareDialog() string {
	var items []string
	for _, t := range share.Targets() {
		style := common.ActionInactiveStyle
		if t == m.share.Selected() {
			style = common.ActionActiveStyle
		}
		items = append(items, style.Render(t.String()))
	}
	body := "Share reel\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, items...) +
		"\n\n" + common.MetadataStyle.Render(m.share.URL())
	return common.DialogStyle.Render(body)
}

func (m Model) helpView() string {
	if m.share.IsOpen() {
		return m.help.View(common.ShareHelp{KeyMap: m.keys})
	}
	return m.help.View(common.ReelsHelp{KeyMap: m.keys})
}
