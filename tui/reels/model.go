package reels

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalreels/domain"
	"github.com/CrestNiraj12/terminalreels/query"
)

// Init starts the first page load, or remounts pages already cached.
func (m Model) Init() tea.Cmd {
	if len(m.Reels()) > 0 {
		return tea.Batch(m.spinner.Tick, func() tea.Msg { return remountMsg{} })
	}
	return tea.Batch(m.spinner.Tick, m.startNextPage())
}

// Update handles messages for the reels view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cmd = m.syncVisibility()
		return m, cmd

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		m.advanceClips()
		return m, cmd

	case PageLoadedMsg, ClipFramesMsg, remountMsg:
		return m.handleLoadingMsg(msg)

	case LikeResultMsg, ShareDoneMsg, PlayerExitedMsg:
		return m.handleInteractionMsg(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// Suspend pauses every clip and releases the visibility subscriptions
// while another screen is shown.
func (m *Model) Suspend() {
	m.suspended = true
	for _, c := range m.clips {
		c.Pause()
	}
	m.ctrl.UnregisterAll()
}

// Resume re-subscribes the mounted clips and re-evaluates visibility.
func (m *Model) Resume() tea.Cmd {
	m.suspended = false
	m.ctrl.RegisterAll(onEnter, onExit)
	return m.syncVisibility()
}

// Close cancels in-flight work and unmounts every clip.
func (m *Model) Close() {
	m.cancel()
	m.ctrl.Clear()
	m.clips = nil
}

// Modal reports whether a dialog owns the keyboard.
func (m Model) Modal() bool {
	return m.share.IsOpen() || m.notice != ""
}

// Reels returns the flattened feed.
func (m Model) Reels() []domain.Reel {
	return domain.FlattenReels(m.feed.Data().Pages)
}

// State reports the pagination state of the feed.
func (m Model) State() query.State {
	return m.feed.State()
}

// Err returns the last page load error, if any.
func (m Model) Err() error {
	return m.feed.Err()
}

// Cursor returns the focused reel index.
func (m Model) Cursor() int {
	return m.cursor
}

// SelectedReel returns the focused reel, if any.
func (m Model) SelectedReel() (domain.Reel, bool) {
	reels := m.Reels()
	if m.cursor < 0 || m.cursor >= len(reels) {
		return domain.Reel{}, false
	}
	return reels[m.cursor], true
}

// Notice is the blocking notice currently shown, if any.
func (m Model) Notice() string {
	return m.notice
}

// NoticeFailed reports whether the current notice describes a failure.
func (m Model) NoticeFailed() bool {
	return m.noticeFailed
}
