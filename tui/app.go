package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalreels/app"
	"github.com/CrestNiraj12/terminalreels/query"
	"github.com/CrestNiraj12/terminalreels/tui/common"
	"github.com/CrestNiraj12/terminalreels/tui/reels"
	"github.com/CrestNiraj12/terminalreels/tui/stock"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Reels        app.ReelService
	Stock        app.StockService
	Cache        *query.Client
	Clipboard    app.Clipboard
	Player       app.Player
	StockQuery   string
	StockPerPage int
	StartScreen  string // "reels" or "stock"
}

type activeView int

const (
	reelsView activeView = iota
	stockView
)

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps   Deps
	active activeView
	reels  reels.Model
	stock  *stock.Model
	keys   common.KeyMap
	size   tea.WindowSizeMsg
	status string // Transient status message
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	a := App{
		deps:  deps,
		reels: reels.New(deps.Reels, deps.Cache, deps.Clipboard, deps.Player),
		keys:  common.DefaultKeyMap(),
	}
	if !common.HasFFmpeg() {
		a.status = "ffmpeg not found: clips will not animate (press o to play externally)"
	}
	if deps.StartScreen == "stock" {
		a.reels.Suspend()
		a.openStock()
	}
	return a
}

// Init starts the reels feed, and the stock screen when it opens first.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.reels.Init()}
	if a.stock != nil {
		cmds = append(cmds, a.stock.Init())
	}
	return tea.Batch(cmds...)
}

func (a *App) openStock() {
	m := stock.New(a.deps.Stock, a.deps.Cache, a.deps.StockQuery, a.deps.StockPerPage)
	if a.size.Width > 0 {
		m, _ = m.Update(a.size)
	}
	a.stock = &m
	a.active = stockView
}

func (a *App) closeStock() tea.Cmd {
	if a.stock != nil {
		a.stock.Close()
		a.stock = nil
	}
	a.active = reelsView
	return a.reels.Resume()
}

// Close releases both screens. Call it once the program has exited.
func (a App) Close() {
	if a.stock != nil {
		a.stock.Close()
	}
	a.reels.Close()
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global key bindings: handled regardless of active view.
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		a.status = ""
		if a.active == reelsView && !a.reels.Modal() {
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a, tea.Quit
			case key.Matches(msg, a.keys.Stock):
				a.reels.Suspend()
				a.openStock()
				return a, a.stock.Init()
			}
		}
		if a.active == stockView && key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}

	case tea.WindowSizeMsg:
		a.size = msg
		var cmds []tea.Cmd
		a.reels, cmd = a.reels.Update(msg)
		cmds = append(cmds, cmd)
		if a.stock != nil {
			m, scmd := a.stock.Update(msg)
			a.stock = &m
			cmds = append(cmds, scmd)
		}
		return a, tea.Batch(cmds...)

	case spinner.TickMsg:
		// Each spinner ignores ticks carrying another spinner's id.
		var cmds []tea.Cmd
		a.reels, cmd = a.reels.Update(msg)
		cmds = append(cmds, cmd)
		if a.stock != nil {
			m, scmd := a.stock.Update(msg)
			a.stock = &m
			cmds = append(cmds, scmd)
		}
		return a, tea.Batch(cmds...)

	case stock.CloseMsg:
		cmd = a.closeStock()
		return a, cmd

	case reels.PageLoadedMsg, reels.LikeResultMsg, reels.ClipFramesMsg, reels.ShareDoneMsg, reels.PlayerExitedMsg:
		a.reels, cmd = a.reels.Update(msg)
		return a, cmd

	case stock.PageLoadedMsg, stock.ThumbLoadedMsg:
		if a.stock == nil {
			return a, nil
		}
		m, scmd := a.stock.Update(msg)
		a.stock = &m
		return a, scmd
	}

	// Delegate to the active sub-model.
	switch a.active {
	case reelsView:
		a.reels, cmd = a.reels.Update(msg)
		return a, cmd
	case stockView:
		if a.stock != nil {
			m, scmd := a.stock.Update(msg)
			a.stock = &m
			return a, scmd
		}
	}

	return a, nil
}

// View renders the active sub-model.
func (a App) View() string {
	var s string

	switch a.active {
	case reelsView:
		s = a.reels.View()
	case stockView:
		if a.stock != nil {
			s = a.stock.View()
		}
	}

	// Append transient status if present.
	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render(a.status)
	}

	return s
}
