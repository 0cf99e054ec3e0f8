package stock

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalreels/app"
	"github.com/CrestNiraj12/terminalreels/domain"
	"github.com/CrestNiraj12/terminalreels/query"
	"github.com/CrestNiraj12/terminalreels/tui/common"
)

const (
	firstPage     = 1
	thumbWidth    = 14
	thumbHeight   = 7
	rowHeight     = thumbHeight + 3 // caption + border
	columns       = 2
	sentinelLines = 4 // the end sentinel counts as visible within this many lines of the bottom
	reservedLines = 7

	msgLoading = "Loading stock videos..."
	msgMore    = "Loading more videos..."
	msgFailed  = "Failed to load stock videos. Please try again later."
	msgEmpty   = "No stock videos available."
)

// PageLoadedMsg carries the outcome of one stock search page.
type PageLoadedMsg struct {
	Req  query.Request
	Page domain.StockPage
	Err  error
}

// ThumbLoadedMsg delivers a rendered still for a video.
type ThumbLoadedMsg struct {
	ID    int64
	Thumb string
	Err   error
}

// CloseMsg asks the parent to leave the stock screen.
type CloseMsg struct{}

// ThumbLoader renders a remote still image.
type ThumbLoader func(ctx context.Context, url string, w, h int) (string, error)

// Model is the stock video demo screen. It is created when the screen
// opens and closed when it is left; pages survive in the query cache.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	stock   app.StockService
	search  string
	perPage int
	log     *slog.Logger

	feed       *query.Infinite[domain.StockPage]
	thumbs     map[int64]string
	thumbsSeen map[int64]bool
	loadThumb  ThumbLoader

	viewport viewport.Model
	width    int
	height   int
	closed   bool

	keys    common.KeyMap
	spinner spinner.Model
	help    help.Model
}

// QueryKey is the cache key for a stock search.
func QueryKey(search string) string {
	return "pexel:" + search
}

// New creates the stock screen for search.
func New(stock app.StockService, cache *query.Client, search string, perPage int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		ctx:        ctx,
		cancel:     cancel,
		stock:      stock,
		search:     search,
		perPage:    perPage,
		log:        cache.Logger().With("screen", "stock", "query", search),
		feed:       query.NewInfinite(cache, QueryKey(search), firstPage, nextStockPage),
		thumbs:     make(map[int64]string),
		thumbsSeen: make(map[int64]bool),
		loadThumb:  common.LoadThumbnail,
		viewport:   viewport.New(80, 16),
		keys:       common.DefaultKeyMap(),
		spinner:    s,
		help:       help.New(),
	}
}

// nextStockPage keeps paging while the last page had results. An empty
// page ends the feed even if more results exist past it.
func nextStockPage(last domain.StockPage, all []domain.StockPage) (int, bool) {
	if len(last.Videos) == 0 {
		return 0, false
	}
	return len(all) + 1, true
}

// Init loads the first page, or re-renders pages already cached.
func (m Model) Init() tea.Cmd {
	if len(m.Videos()) > 0 {
		return tea.Batch(m.spinner.Tick, func() tea.Msg { return cachedMsg{} })
	}
	return tea.Batch(m.spinner.Tick, m.startNextPage())
}

type cachedMsg struct{}

// Update handles messages for the stock screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = max(msg.Width, 20)
		m.viewport.Height = max(msg.Height-reservedLines, 4)
		m.refresh()
		cmd = m.syncVisibility()
		return m, cmd

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case cachedMsg:
		m.refresh()
		cmd = tea.Batch(m.ensureThumbsCmd(), m.syncVisibility())
		return m, cmd

	case PageLoadedMsg:
		if !m.feed.Resolve(msg.Req, msg.Page, msg.Err) {
			return m, nil
		}
		m.refresh()
		if msg.Err != nil {
			return m, nil
		}
		cmd = tea.Batch(m.ensureThumbsCmd(), m.syncVisibility())
		return m, cmd

	case ThumbLoadedMsg:
		if msg.Err != nil {
			m.log.Debug("thumbnail unavailable", "video", msg.ID, "err", msg.Err)
			return m, nil
		}
		m.thumbs[msg.ID] = msg.Thumb
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	back := key.NewBinding(key.WithKeys("esc", "t"))
	switch {
	case key.Matches(msg, back):
		return m, func() tea.Msg { return CloseMsg{} }
	case key.Matches(msg, m.keys.Down):
		m.viewport.SetYOffset(m.viewport.YOffset + rowHeight)
	case key.Matches(msg, m.keys.Up):
		m.viewport.SetYOffset(m.viewport.YOffset - rowHeight)
	case key.Matches(msg, m.keys.Refresh):
		m.feed.Reset()
		clear(m.thumbs)
		clear(m.thumbsSeen)
		m.viewport.GotoTop()
		m.refresh()
		cmd := m.startNextPage()
		return m, cmd
	case key.Matches(msg, m.keys.ToggleHints):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	default:
		return m, nil
	}
	cmd := m.syncVisibility()
	return m, cmd
}

// Close cancels in-flight requests; later results are dropped.
func (m *Model) Close() {
	m.closed = true
	m.cancel()
}

func (m *Model) startNextPage() tea.Cmd {
	req, ok := m.feed.Begin()
	if !ok {
		return nil
	}
	ctx, feed, stock := m.ctx, m.feed, m.stock
	search, perPage := m.search, m.perPage
	return func() tea.Msg {
		page, err := feed.Fetch(ctx, req, func(ctx context.Context, param int) (domain.StockPage, error) {
			return stock.SearchVideos(ctx, search, param, perPage)
		})
		return PageLoadedMsg{Req: req, Page: page, Err: err}
	}
}

// syncVisibility fires the pagination trigger while the bottom of the
// grid is on screen. Begin makes repeated calls harmless.
func (m *Model) syncVisibility() tea.Cmd {
	if !m.sentinelVisible() {
		return nil
	}
	return m.startNextPage()
}

func (m Model) sentinelVisible() bool {
	if len(m.Videos()) == 0 {
		return false
	}
	total := m.viewport.TotalLineCount()
	return m.viewport.YOffset+m.viewport.Height >= total-sentinelLines
}

func (m *Model) ensureThumbsCmd() tea.Cmd {
	var cmds []tea.Cmd
	ctx, load := m.ctx, m.loadThumb
	for _, v := range m.Videos() {
		if v.Image == "" || m.thumbsSeen[v.ID] {
			continue
		}
		m.thumbsSeen[v.ID] = true
		id, url := v.ID, v.Image
		cmds = append(cmds, func() tea.Msg {
			thumb, err := load(ctx, url, thumbWidth, thumbHeight)
			return ThumbLoadedMsg{ID: id, Thumb: thumb, Err: err}
		})
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Videos returns every video fetched so far, in page order.
func (m Model) Videos() []domain.StockVideo {
	var out []domain.StockVideo
	for _, p := range m.feed.Data().Pages {
		out = append(out, p.Videos...)
	}
	return out
}

// State reports the pagination state.
func (m Model) State() query.State {
	return m.feed.State()
}

func (m Model) pageCount() int {
	return len(m.feed.Data().Pages)
}

func durationLabel(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
