package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os/exec"
	"strings"
	"sync"
	"time"

	_ "golang.org/x/image/webp"
)

// ErrNoFFmpeg is returned by LoadClipFrames when ffmpeg is not on PATH.
var ErrNoFFmpeg = errors.New("ffmpeg unavailable")

const (
	clipTimeout      = 12 * time.Second
	thumbnailTimeout = 6 * time.Second
	maxPreviewBytes  = 4 * 1024 * 1024
)

var (
	ffmpegCheckOnce sync.Once
	ffmpegAvailable bool
)

// HasFFmpeg reports whether clip frames can be extracted.
func HasFFmpeg() bool {
	ffmpegCheckOnce.Do(func() {
		_, err := exec.LookPath("ffmpeg")
		ffmpegAvailable = err == nil
	})
	return ffmpegAvailable
}

// LoadClipFrames extracts up to maxFrames frames from a video URL with
// ffmpeg and renders each as a w x h block of ANSI half-cells.
func LoadClipFrames(ctx context.Context, url string, w, h, maxFrames int) ([]string, error) {
	if !HasFFmpeg() {
		return nil, ErrNoFFmpeg
	}
	if maxFrames <= 0 {
		maxFrames = 8
	}
	ctx, cancel := context.WithTimeout(ctx, clipTimeout)
	defer cancel()

	filter := fmt.Sprintf("fps=4,scale=%d:%d:flags=lanczos", max(w*2, 16), max(h*2, 8))
	cmd := exec.CommandContext(
		ctx,
		"ffmpeg",
		"-hide_banner",
		"-loglevel", "error",
		"-i", url,
		"-vf", filter,
		"-frames:v", fmt.Sprintf("%d", maxFrames),
		"-f", "gif",
		"-",
	)
	data, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}
	return RenderGIFFrames(data, w, h, maxFrames)
}

// RenderGIFFrames renders the first maxFrames frames of an animated GIF.
func RenderGIFFrames(data []byte, w, h, maxFrames int) ([]string, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("gif has no frames")
	}
	if maxFrames <= 0 {
		maxFrames = 8
	}
	n := min(len(g.Image), maxFrames)
	frames := make([]string, 0, n)
	for i := range n {
		frames = append(frames, RenderANSIThumbnail(g.Image[i], w, h))
	}
	return frames, nil
}

// LoadThumbnail downloads a still image (JPEG/PNG/GIF/WebP) and renders it.
func LoadThumbnail(ctx context.Context, url string, w, h int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, thumbnailTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("preview status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPreviewBytes))
	if err != nil {
		return "", err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return RenderANSIThumbnail(img, w, h), nil
}

// RenderANSIThumbnail samples img onto a w x h grid of two-column cells
// painted with 24-bit background colors.
func RenderANSIThumbnail(img image.Image, w, h int) string {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ""
	}
	if w < 4 {
		w = 4
	}
	if h < 2 {
		h = 2
	}
	var out strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx := b.Min.X + x*b.Dx()/w
			sy := b.Min.Y + y*b.Dy()/h
			c := color.NRGBAModel.Convert(img.At(sx, sy)).(color.NRGBA)
			fmt.Fprintf(&out, "\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
		}
		if y < h-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
