package clipboard

import (
	"testing"

	"github.com/atotto/clipboard"

	"github.com/CrestNiraj12/terminalreels/app"
)

var _ app.Clipboard = (*System)(nil)

func TestSystem_AvailableMatchesBackend(t *testing.T) {
	s := NewSystem()
	if s.Available() == clipboard.Unsupported {
		t.Fatalf("Available must be the inverse of clipboard.Unsupported")
	}
	if clipboard.Unsupported {
		if err := s.WriteAll("x"); err == nil {
			t.Fatalf("expected an error without a clipboard backend")
		}
	}
}
