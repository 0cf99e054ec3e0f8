package reels

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalreels/playback"
	"github.com/CrestNiraj12/terminalreels/query"
)

// remountMsg rebuilds clips for pages that were already cached.
type remountMsg struct{}

func onEnter(slot int, el playback.Element) { playback.PlayOnEnter(slot, el) }
func onExit(slot int, el playback.Element)  { playback.PauseOnExit(slot, el) }

func (m Model) handleLoadingMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case remountMsg:
		m.mountClips()
		cmd := tea.Batch(m.syncVisibility(), m.ensureClipFramesCmd())
		return m, cmd

	case PageLoadedMsg:
		if !m.feed.Resolve(msg.Req, msg.Page, msg.Err) {
			return m, nil
		}
		if msg.Err != nil {
			return m, nil
		}
		m.mountClips()
		cmd := tea.Batch(m.syncVisibility(), m.ensureClipFramesCmd())
		return m, cmd

	case ClipFramesMsg:
		if msg.Gen != m.gen || msg.Slot < 0 || msg.Slot >= len(m.clips) {
			return m, nil
		}
		clip := m.clips[msg.Slot]
		if clip.URL != msg.URL {
			return m, nil
		}
		if msg.Err != nil {
			m.log.Debug("clip frames unavailable", "slot", msg.Slot, "url", msg.URL, "err", msg.Err)
			clip.SetErr(msg.Err)
			return m, nil
		}
		clip.SetFrames(msg.Frames)
		return m, nil
	}
	return m, nil
}

// startNextPage asks the cursor manager for the next page. Begin guards
// against re-firing, so this runs on every visibility re-evaluation.
func (m *Model) startNextPage() tea.Cmd {
	req, ok := m.feed.Begin()
	if !ok {
		return nil
	}
	return m.fetchPage(req)
}

func (m Model) fetchPage(req query.Request) tea.Cmd {
	ctx := m.ctx
	feed := m.feed
	reels := m.reels
	return func() tea.Msg {
		page, err := feed.Fetch(ctx, req, reels.FetchReelsPage)
		return PageLoadedMsg{Req: req, Page: page, Err: err}
	}
}

// mountClips creates a clip for every reel that has none yet. Existing
// clips keep their playback and mute state.
func (m *Model) mountClips() {
	reels := m.Reels()
	if len(m.clips) > len(reels) {
		m.ctrl.Clear()
		m.clips = nil
	}
	for slot := len(m.clips); slot < len(reels); slot++ {
		clip := playback.NewClip(reels[slot].VideoURL)
		m.clips = append(m.clips, clip)
		m.ctrl.SetRef(slot, clip)
	}
	if m.cursor >= len(reels) {
		m.cursor = max(len(reels)-1, 0)
	}
	if !m.suspended {
		m.ctrl.RegisterAll(onEnter, onExit)
	}
}

// syncVisibility reports every slot's visible ratio to the playback
// controller, then fires the pagination trigger if the end is in sight.
func (m *Model) syncVisibility() tea.Cmd {
	if m.suspended {
		return nil
	}
	m.ctrl.NotifyAll(m.slotRatios())
	if !m.sentinelVisible() {
		return nil
	}
	return m.startNextPage()
}

// slotRatios lays the reels out as full-height cards snapped to the
// cursor and measures how much of each card is inside the viewport.
func (m Model) slotRatios() []float64 {
	viewHeight := m.viewHeight()
	viewTop := m.cursor * viewHeight
	ratios := make([]float64, len(m.clips))
	for slot := range ratios {
		ratios[slot] = playback.Ratio(slot*viewHeight, viewHeight, viewTop, viewHeight)
	}
	return ratios
}

func (m Model) sentinelVisible() bool {
	n := len(m.clips)
	return n > 0 && m.cursor >= n-prefetchTrigger
}

func (m Model) viewHeight() int {
	h := m.height
	if h <= 0 {
		h = defaultHeight
	}
	return max(h-reservedLines, clipHeight)
}

// ensureClipFramesCmd loads frames for the focused clip and the next few.
func (m *Model) ensureClipFramesCmd() tea.Cmd {
	if len(m.clips) == 0 {
		return nil
	}
	var cmds []tea.Cmd
	last := min(m.cursor+framesAhead, len(m.clips)-1)
	for slot := m.cursor; slot <= last; slot++ {
		clip := m.clips[slot]
		if clip.URL == "" || clip.Loaded() || clip.Err() != nil {
			continue
		}
		key := frameKey(m.gen, slot, clip.URL)
		if m.framesLoaded[key] {
			continue
		}
		m.framesLoaded[key] = true
		cmds = append(cmds, m.fetchClipFrames(slot, clip.URL))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) fetchClipFrames(slot int, url string) tea.Cmd {
	ctx := m.ctx
	gen := m.gen
	load := m.loadFrames
	return func() tea.Msg {
		frames, err := load(ctx, url, clipWidth, clipHeight, clipFrames)
		return ClipFramesMsg{Slot: slot, URL: url, Gen: gen, Frames: frames, Err: err}
	}
}

func frameKey(gen, slot int, url string) string {
	return fmt.Sprintf("%d|%d|%s", gen, slot, url)
}

func (m *Model) advanceClips() {
	for _, c := range m.clips {
		c.Advance()
	}
}

// reload drops every cached page and starts over from the first one.
func (m *Model) reload() tea.Cmd {
	m.feed.Reset()
	m.ctrl.Clear()
	m.clips = nil
	m.cursor = 0
	m.gen++
	clear(m.framesLoaded)
	m.log.Info("reels reloaded")
	return m.startNextPage()
}
