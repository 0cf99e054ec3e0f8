package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_ParsesEnvAndDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REELS_BACKEND_URL", "https://reels.example/")
	t.Setenv("REELS_STOCK_PER_PAGE", "20")
	t.Setenv("REELS_HTTP_TIMEOUT", "3s")
	t.Setenv("REELS_PEXELS_KEY", "k")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.BackendURL != "https://reels.example" {
		t.Fatalf("backend must be normalized: %q", cfg.BackendURL)
	}
	if cfg.StockPerPage != 20 || cfg.HTTPTimeout != 3*time.Second || cfg.StockKey != "k" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if cfg.StockURL != DefaultStockURL || cfg.StockQuery != "background" || cfg.StartScreen != "reels" || cfg.LogLevel != "info" {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
}

func TestLoad_RejectsNonHTTPS(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REELS_BACKEND_URL", "http://insecure.example")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-https backend")
	}
}

func TestLoad_AllowsLoopbackHTTP(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REELS_BACKEND_URL", "http://127.0.0.1:3000")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("loopback http should be accepted: %v", err)
	}
	if cfg.BackendURL != "http://127.0.0.1:3000" {
		t.Fatalf("unexpected backend: %q", cfg.BackendURL)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"REELS_STOCK_PER_PAGE": "0",
		"REELS_HTTP_TIMEOUT":   "soon",
		"REELS_START_SCREEN":   "settings",
		"REELS_STOCK_URL":      "not a url",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, val)
			}
		})
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("REELS_STOCK_QUERY=ocean\n"), 0o600); err != nil {
		t.Fatalf("write .env failed: %v", err)
	}
	// godotenv never overrides variables that are already set; make sure the
	// key is absent and restored afterwards.
	t.Setenv("REELS_STOCK_QUERY", "")
	os.Unsetenv("REELS_STOCK_QUERY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.StockQuery != "ocean" {
		t.Fatalf("expected .env value, got %q", cfg.StockQuery)
	}
}
