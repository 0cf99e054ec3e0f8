package reels

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalreels/app"
	"github.com/CrestNiraj12/terminalreels/domain"
	"github.com/CrestNiraj12/terminalreels/query"
)

type stubReels struct {
	pages   map[int]domain.ReelPage
	errs    map[int]error
	fetched []int

	likeReel domain.Reel
	likeErr  error
	liked    []string
}

func (s *stubReels) FetchReelsPage(_ context.Context, page int) (domain.ReelPage, error) {
	s.fetched = append(s.fetched, page)
	if err := s.errs[page]; err != nil {
		return domain.ReelPage{}, err
	}
	return s.pages[page], nil
}

func (s *stubReels) LikeReel(_ context.Context, id string) (domain.Reel, error) {
	s.liked = append(s.liked, id)
	if s.likeErr != nil {
		return domain.Reel{}, s.likeErr
	}
	return s.likeReel, nil
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func makePage(prefix string, page, total, n int) domain.ReelPage {
	reels := make([]domain.Reel, n)
	for i := range reels {
		id := fmt.Sprintf("%s-%d", prefix, i)
		reels[i] = domain.Reel{ID: id, VideoURL: "https://cdn.example/" + id + ".mp4", Likes: i}
	}
	return domain.ReelPage{Reels: reels, Page: page, TotalPages: total}
}

func newTestModel(t *testing.T, svc *stubReels, cb *fakeClipboard) Model {
	t.Helper()
	cache, err := query.NewClient(16, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	t.Cleanup(cache.Close)
	var clip app.Clipboard
	if cb != nil {
		clip = cb
	}
	m := New(svc, cache, clip, nil)
	m.height = 30
	m.width = 100
	m.loadFrames = func(_ context.Context, url string, _, _, _ int) ([]string, error) {
		return []string{"frame-a " + url, "frame-b " + url}, nil
	}
	return m
}

// collect runs cmd and flattens batches into the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// drive feeds every message produced by cmd back into the model until the
// model goes quiet. Spinner ticks are dropped.
func drive(m Model, cmd tea.Cmd) Model {
	pending := collect(cmd)
	for len(pending) > 0 {
		msg := pending[0]
		pending = pending[1:]
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		var next tea.Cmd
		m, next = m.Update(msg)
		pending = append(pending, collect(next)...)
	}
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func press(m Model, k tea.KeyMsg) Model {
	m, cmd := m.Update(k)
	return drive(m, cmd)
}

func playingSlots(m Model) []int {
	var out []int
	for i, c := range m.clips {
		if c.Playing() {
			out = append(out, i)
		}
	}
	return out
}

func pageMsgs(msgs []tea.Msg) []PageLoadedMsg {
	var out []PageLoadedMsg
	for _, msg := range msgs {
		if p, ok := msg.(PageLoadedMsg); ok {
			out = append(out, p)
		}
	}
	return out
}
