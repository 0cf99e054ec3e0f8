package common

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderANSIThumbnail_Size(t *testing.T) {
	out := RenderANSIThumbnail(solid(10, 10, color.NRGBA{R: 255, A: 255}), 6, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	if w := ansi.StringWidth(lines[0]); w != 12 {
		t.Fatalf("expected 12 cells per row, got %d", w)
	}
	if !strings.Contains(out, "48;2;255;0;0") {
		t.Fatalf("expected red background escape, got %q", out)
	}
	if RenderANSIThumbnail(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 4, 4) != "" {
		t.Fatalf("empty image should render nothing")
	}
}

func TestRenderGIFFrames_CapsFrames(t *testing.T) {
	anim := &gif.GIF{}
	for _, c := range []color.Color{color.White, color.Black, color.White} {
		frame := image.NewPaletted(image.Rect(0, 0, 4, 4), palette.Plan9)
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				frame.Set(x, y, c)
			}
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 10)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		t.Fatalf("encode gif failed: %v", err)
	}

	frames, err := RenderGIFFrames(buf.Bytes(), 4, 2, 2)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(frames) != 2 || frames[0] == frames[1] {
		t.Fatalf("expected 2 distinct frames, got %d", len(frames))
	}
	if _, err := RenderGIFFrames([]byte("nope"), 4, 2, 2); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadThumbnail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		_ = png.Encode(w, solid(8, 8, color.NRGBA{G: 255, A: 255}))
	}))
	defer srv.Close()

	out, err := LoadThumbnail(context.Background(), srv.URL+"/a.png", 4, 2)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !strings.Contains(out, "48;2;0;255;0") {
		t.Fatalf("expected green thumbnail, got %q", out)
	}
	if _, err := LoadThumbnail(context.Background(), srv.URL+"/missing.png", 4, 2); err == nil {
		t.Fatalf("expected status error")
	}
}
