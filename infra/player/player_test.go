package player

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/CrestNiraj12/terminalreels/app"
)

var _ app.Player = (*ExternalPlayer)(nil)

// fakeBinary puts an executable named name on PATH for the test.
func fakeBinary(t *testing.T, name string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write fake binary failed: %v", err)
	}
	t.Setenv("PATH", dir)
}

func TestCommand_MPVGetsLoopAndMute(t *testing.T) {
	fakeBinary(t, "mpv")
	p := NewExternalPlayer("")

	cmd, err := p.Command("https://cdn.example/7.mp4", true)
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	args := cmd.Args[1:]
	want := []string{"--loop=inf", "--mute=yes", "--", "https://cdn.example/7.mp4"}
	if !slices.Equal(args, want) {
		t.Fatalf("unexpected args: %v", args)
	}

	cmd, err = p.Command("https://cdn.example/7.mp4", false)
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if slices.Contains(cmd.Args, "--mute=yes") {
		t.Fatalf("unmuted clip must not pass --mute: %v", cmd.Args)
	}
}

func TestCommand_CustomPlayerKeepsArgs(t *testing.T) {
	fakeBinary(t, "vlc")
	p := NewExternalPlayer("vlc --fullscreen")
	if p.Name() != "vlc" {
		t.Fatalf("unexpected name %q", p.Name())
	}

	cmd, err := p.Command("https://cdn.example/a.mp4", true)
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	want := []string{"--fullscreen", "--", "https://cdn.example/a.mp4"}
	if !slices.Equal(cmd.Args[1:], want) {
		t.Fatalf("unexpected args: %v", cmd.Args)
	}
}

func TestCommand_RejectsUnsafeURLAndMissingPlayer(t *testing.T) {
	fakeBinary(t, "mpv")
	p := NewExternalPlayer("mpv")
	if _, err := p.Command("file:///etc/passwd", false); err == nil {
		t.Fatalf("expected non-http url to be rejected")
	}

	missing := NewExternalPlayer("definitely-not-a-player")
	if _, err := missing.Command("https://cdn.example/a.mp4", false); err == nil {
		t.Fatalf("expected missing player error")
	}
}
