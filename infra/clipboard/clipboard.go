package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// System writes to the operating system clipboard.
type System struct{}

// NewSystem creates a System clipboard.
func NewSystem() *System {
	return &System{}
}

// Available reports whether a clipboard backend exists on this machine
// (e.g. xclip/xsel/wl-copy on Linux).
func (System) Available() bool {
	return !clipboard.Unsupported
}

// WriteAll replaces the clipboard contents with text.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard: no backend available")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
