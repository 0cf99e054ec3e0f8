package player

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"
)

// ExternalPlayer prepares a media player command (default: "mpv"). It does
// NOT run the player itself: callers use tea.ExecProcess with the returned
// *exec.Cmd so Bubble Tea releases the terminal while it runs.
type ExternalPlayer struct {
	command string
	args    []string
}

// NewExternalPlayer creates a player from a command line such as
// "mpv --vo=tct". An empty command falls back to mpv.
func NewExternalPlayer(commandLine string) *ExternalPlayer {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		fields = []string{"mpv"}
	}
	return &ExternalPlayer{command: fields[0], args: fields[1:]}
}

// Name is the player executable.
func (p *ExternalPlayer) Name() string { return p.command }

// Command builds the player invocation for videoURL. Reels loop like they do
// in the feed, and mpv-compatible players get the current mute state.
func (p *ExternalPlayer) Command(videoURL string, muted bool) (*exec.Cmd, error) {
	if !isPlayableURL(videoURL) {
		return nil, fmt.Errorf("refusing to play %q: not an http(s) URL", videoURL)
	}
	path, err := exec.LookPath(p.command)
	if err != nil {
		return nil, fmt.Errorf("player %q not found: %w", p.command, err)
	}

	args := append([]string{}, p.args...)
	if isMPV(p.command) {
		args = append(args, "--loop=inf")
		if muted {
			args = append(args, "--mute=yes")
		}
	}
	args = append(args, "--", videoURL)

	cmd := exec.Command(path, args...)
	return cmd, nil
}

func isMPV(command string) bool {
	return strings.EqualFold(strings.TrimSuffix(filepath.Base(command), ".exe"), "mpv")
}

func isPlayableURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
