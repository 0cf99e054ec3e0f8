// Package share holds the share dialog state for a single reel URL.
package share

import (
	"errors"
	"net/url"

	"github.com/CrestNiraj12/terminalreels/app"
)

// Target is a destination offered by the share dialog.
type Target int

const (
	Facebook Target = iota
	Twitter
	WhatsApp
	CopyLink
)

var targetNames = map[Target]string{
	Facebook: "Facebook",
	Twitter:  "Twitter",
	WhatsApp: "WhatsApp",
	CopyLink: "Copy link",
}

func (t Target) String() string { return targetNames[t] }

// Targets lists the dialog entries in display order.
func Targets() []Target {
	return []Target{Facebook, Twitter, WhatsApp, CopyLink}
}

// ErrNotOpen is returned when an action needs an open surface.
var ErrNotOpen = errors.New("share surface is not open")

// Surface is the share dialog state. The zero value is closed.
type Surface struct {
	open   bool
	url    string
	cursor int
}

// Open makes url the active share target and shows the dialog.
func (s *Surface) Open(url string) {
	s.open = true
	s.url = url
	s.cursor = 0
}

// Close hides the dialog. The last URL is kept but unused.
func (s *Surface) Close() {
	s.open = false
}

func (s *Surface) IsOpen() bool { return s.open }

// URL is the active share target.
func (s *Surface) URL() string { return s.url }

// Move shifts the highlighted target, clamped to the list.
func (s *Surface) Move(delta int) {
	s.cursor = min(max(s.cursor+delta, 0), len(Targets())-1)
}

// Selected is the highlighted target.
func (s *Surface) Selected() Target {
	return Targets()[s.cursor]
}

// CopyLink writes the active URL to the clipboard.
func (s *Surface) CopyLink(cb app.Clipboard) error {
	if !s.open {
		return ErrNotOpen
	}
	return cb.WriteAll(s.url)
}

// ShareURL builds the web share intent for target. CopyLink has none.
func ShareURL(target Target, link string) (string, bool) {
	q := url.QueryEscape(link)
	switch target {
	case Facebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + q, true
	case Twitter:
		return "https://twitter.com/intent/tweet?url=" + q, true
	case WhatsApp:
		return "https://api.whatsapp.com/send?text=" + q, true
	default:
		return "", false
	}
}
