package app

import "os/exec"

// Clipboard writes text to the system clipboard.
// Implemented by infrastructure (e.g. infra/clipboard).
type Clipboard interface {
	WriteAll(text string) error
}

// Player prepares an external media player for a video URL. Callers run
// the command with tea.ExecProcess so the terminal is handed over cleanly.
type Player interface {
	Command(url string, muted bool) (*exec.Cmd, error)
}
