package reels

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalreels/domain"
	"github.com/CrestNiraj12/terminalreels/share"
)

var (
	errNoClipboard = errors.New("no clipboard available")
	errUnsafeURL   = errors.New("refusing to open non-http(s) URL")
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.notice != "" {
		if key.Matches(msg, m.keys.Enter, m.keys.Back) {
			m.notice = ""
		}
		return m, nil
	}
	if m.share.IsOpen() {
		return m.handleShareKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(1)

	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(-1)

	case key.Matches(msg, m.keys.Like):
		reel, ok := m.SelectedReel()
		if !ok || m.liking[reel.ID] {
			return m, nil
		}
		m.liking[reel.ID] = true
		return m, m.likeReel(reel.ID)

	case key.Matches(msg, m.keys.Mute):
		if muted, ok := m.ctrl.ToggleMute(m.cursor); ok {
			m.log.Debug("mute toggled", "slot", m.cursor, "muted", muted)
		}
		return m, nil

	case key.Matches(msg, m.keys.Share):
		if reel, ok := m.SelectedReel(); ok && reel.VideoURL != "" {
			m.share.Open(reel.VideoURL)
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		reel, ok := m.SelectedReel()
		if !ok || reel.VideoURL == "" {
			return m, nil
		}
		muted := true
		if el := m.ctrl.Ref(m.cursor); el != nil {
			muted = el.Muted()
		}
		return m, m.playExternally(reel.VideoURL, muted)

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.reload()
		return m, cmd

	case key.Matches(msg, m.keys.ToggleHints):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

func (m Model) handleShareKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.share.Close()
	case key.Matches(msg, m.keys.Left):
		m.share.Move(-1)
	case key.Matches(msg, m.keys.Right):
		m.share.Move(1)
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyLink()
	case key.Matches(msg, m.keys.Enter):
		target := m.share.Selected()
		if target == share.CopyLink {
			return m, m.copyLink()
		}
		link := m.share.URL()
		m.share.Close()
		return m, shareTo(target, link)
	}
	return m, nil
}

func (m Model) moveCursor(delta int) (Model, tea.Cmd) {
	next := min(max(m.cursor+delta, 0), max(len(m.clips)-1, 0))
	if next == m.cursor {
		return m, nil
	}
	m.cursor = next
	cmd := tea.Batch(m.syncVisibility(), m.ensureClipFramesCmd())
	return m, cmd
}

func (m Model) handleInteractionMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LikeResultMsg:
		delete(m.liking, msg.ID)
		if msg.Err != nil {
			m.log.Error("like failed", "reel", msg.ID, "err", msg.Err)
			return m, nil
		}
		m.feed.Patch(func(pages []domain.ReelPage) []domain.ReelPage {
			patched, ok := domain.PatchLike(pages, msg.ID, msg.Reel.Likes, msg.Reel.IsLiked)
			if !ok {
				m.log.Warn("liked reel no longer in feed", "reel", msg.ID)
			}
			return patched
		})
		return m, nil

	case ShareDoneMsg:
		if msg.Target != share.CopyLink {
			if msg.Err != nil {
				m.log.Warn("share failed", "target", msg.Target.String(), "err", msg.Err)
			}
			return m, nil
		}
		m.share.Close()
		if msg.Err != nil {
			m.log.Warn("copy link failed", "err", msg.Err)
			m.notice, m.noticeFailed = "Could not copy link: "+msg.Err.Error(), true
			return m, nil
		}
		m.notice, m.noticeFailed = msgCopied, false
		return m, nil

	case PlayerExitedMsg:
		if msg.Err != nil {
			m.log.Warn("external player failed", "err", msg.Err)
			m.notice, m.noticeFailed = "Could not play reel: "+msg.Err.Error(), true
		}
		return m, nil
	}
	return m, nil
}
