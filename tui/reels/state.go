package reels

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalreels/app"
	"github.com/CrestNiraj12/terminalreels/domain"
	"github.com/CrestNiraj12/terminalreels/playback"
	"github.com/CrestNiraj12/terminalreels/query"
	"github.com/CrestNiraj12/terminalreels/share"
	"github.com/CrestNiraj12/terminalreels/tui/common"
)

const (
	// QueryKey is the cache key of the reels feed.
	QueryKey = "reels"

	firstPage       = 1
	prefetchTrigger = 2 // the end sentinel counts as visible this many reels before the end
	framesAhead     = 2 // reels past the cursor whose frames are preloaded
	clipWidth       = 24
	clipHeight      = 12
	clipFrames      = 8
	defaultHeight   = 24
	reservedLines   = 8 // header + footer + help

	msgLoading     = "Loading reels..."
	msgLoadingMore = "Loading more reels..."
	msgFailed      = "Failed to load reels. Please try again later."
	msgEmpty       = "No reels available. Please check back later!"
	msgEnd         = "You're all caught up."
	msgCopied      = "Link copied to clipboard!"
)

// PageLoadedMsg carries the outcome of one reels page request.
type PageLoadedMsg struct {
	Req  query.Request
	Page domain.ReelPage
	Err  error
}

// LikeResultMsg carries the server's answer to a like.
type LikeResultMsg struct {
	ID   string
	Reel domain.Reel
	Err  error
}

// ClipFramesMsg delivers rendered frames for the clip in Slot.
type ClipFramesMsg struct {
	Slot   int
	URL    string
	Gen    int
	Frames []string
	Err    error
}

// ShareDoneMsg is sent after a share target was handled.
type ShareDoneMsg struct {
	Target share.Target
	Err    error
}

// PlayerExitedMsg is sent when the external player returns the terminal.
type PlayerExitedMsg struct {
	Err error
}

// FrameLoader renders a video URL into ANSI frames.
type FrameLoader func(ctx context.Context, url string, w, h, maxFrames int) ([]string, error)

// Model holds the state for the reels feed view.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	reels     app.ReelService
	clipboard app.Clipboard
	player    app.Player
	log       *slog.Logger

	feed  *query.Infinite[domain.ReelPage]
	ctrl  *playback.Controller
	clips []*playback.Clip
	gen   int // bumped on reload; older clip frames are dropped

	loadFrames   FrameLoader
	framesLoaded map[string]bool
	liking       map[string]bool

	cursor    int
	width     int
	height    int
	suspended bool

	share        share.Surface
	notice       string
	noticeFailed bool

	keys    common.KeyMap
	spinner spinner.Model
	help    help.Model
}

// New creates a reels model with injected dependencies.
func New(reels app.ReelService, cache *query.Client, clipboard app.Clipboard, player app.Player) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		ctx:          ctx,
		cancel:       cancel,
		reels:        reels,
		clipboard:    clipboard,
		player:       player,
		log:          cache.Logger().With("screen", "reels"),
		feed:         query.NewInfinite(cache, QueryKey, firstPage, nextReelsPage),
		ctrl:         playback.NewController(playback.DefaultThreshold),
		loadFrames:   common.LoadClipFrames,
		framesLoaded: make(map[string]bool),
		liking:       make(map[string]bool),
		keys:         common.DefaultKeyMap(),
		spinner:      s,
		help:         help.New(),
	}
}

// nextReelsPage continues while the last page is below the total.
func nextReelsPage(last domain.ReelPage, _ []domain.ReelPage) (int, bool) {
	if !last.HasMore() {
		return 0, false
	}
	return last.Page + 1, true
}
