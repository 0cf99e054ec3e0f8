package reels

import (
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalreels/share"
)

func (m Model) likeReel(id string) tea.Cmd {
	ctx := m.ctx
	reels := m.reels
	return func() tea.Msg {
		reel, err := reels.LikeReel(ctx, id)
		return LikeResultMsg{ID: id, Reel: reel, Err: err}
	}
}

func (m Model) copyLink() tea.Cmd {
	surface := m.share
	cb := m.clipboard
	return func() tea.Msg {
		if cb == nil {
			return ShareDoneMsg{Target: share.CopyLink, Err: errNoClipboard}
		}
		return ShareDoneMsg{Target: share.CopyLink, Err: surface.CopyLink(cb)}
	}
}

func shareTo(target share.Target, link string) tea.Cmd {
	shareURL, ok := share.ShareURL(target, link)
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return ShareDoneMsg{Target: target, Err: openURL(shareURL)}
	}
}

func (m Model) playExternally(videoURL string, muted bool) tea.Cmd {
	if m.player == nil {
		return nil
	}
	cmd, err := m.player.Command(videoURL, muted)
	if err != nil {
		return func() tea.Msg { return PlayerExitedMsg{Err: err} }
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return PlayerExitedMsg{Err: err}
	})
}

// openURL hands rawURL to the desktop's default browser.
func openURL(rawURL string) error {
	if !isSafeExternalURL(rawURL) {
		return errUnsafeURL
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}

func isSafeExternalURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
