package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Refresh     key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding // share dialog only
	Right       key.Binding // share dialog only
	Like        key.Binding // l: like the focused reel
	Mute        key.Binding // m: toggle mute on the focused reel
	Share       key.Binding // s: open the share dialog
	Open        key.Binding // o: play in the external player
	Stock       key.Binding // t: switch between reels and stock screens
	Copy        key.Binding // c: copy link (share dialog)
	Enter       key.Binding
	Back        key.Binding
	ToggleHints key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "play"),
		),
		Stock: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "stock videos"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy link"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// ReelsHelp adapts the key map to bubbles/help for the reels screen.
type ReelsHelp struct{ KeyMap }

func (h ReelsHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.Down, h.Up, h.Like, h.Mute, h.Share, h.ToggleHints, h.Quit}
}

func (h ReelsHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.Down, h.Up, h.Refresh},
		{h.Like, h.Mute, h.Share, h.Open},
		{h.Stock, h.ToggleHints, h.Quit, h.ForceQuit},
	}
}

// ShareHelp is the help for the share dialog.
type ShareHelp struct{ KeyMap }

func (h ShareHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.Left, h.Right, h.Enter, h.Copy, h.Back}
}

func (h ShareHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// StockHelp is the help for the stock videos screen.
type StockHelp struct{ KeyMap }

func (h StockHelp) ShortHelp() []key.Binding {
	back := key.NewBinding(key.WithKeys("esc", "t"), key.WithHelp("esc/t", "back"))
	return []key.Binding{h.Down, h.Up, h.Refresh, back, h.Quit}
}

func (h StockHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
