package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBackendURL = "https://feed-backend-server.vercel.app"
	DefaultStockURL   = "https://api.pexels.com"
)

// Config holds application-level configuration.
type Config struct {
	BackendURL   string        // Reels backend, e.g. "https://feed-backend-server.vercel.app"
	StockURL     string        // Stock video search API base
	StockKey     string        // Inline stock API key
	StockKeyPath string        // Path to a file holding the stock API key
	StockQuery   string        // Search query for the stock demo screen
	StockPerPage int           // Page size for stock search
	HTTPTimeout  time.Duration // Per-request timeout for every API call
	CacheSize    int           // Max entries held by the query cache
	Player       string        // External player command
	LogFile      string        // Empty disables logging
	LogLevel     string        // debug, info, warn or error
	StartScreen  string        // "reels" or "stock"
}

// Load reads configuration from environment variables, after merging a
// .env file from the working directory when one exists.
//
//	REELS_BACKEND_URL    : reels backend (default: feed-backend-server.vercel.app)
//	REELS_STOCK_URL      : stock API base (default: https://api.pexels.com)
//	REELS_PEXELS_KEY     : stock API key
//	REELS_PEXELS_KEY_FILE: file holding the stock API key
//	REELS_STOCK_QUERY    : stock search query (default: "background")
//	REELS_STOCK_PER_PAGE : stock page size (default: 15)
//	REELS_HTTP_TIMEOUT   : request timeout (default: 15s)
//	REELS_CACHE_SIZE     : query cache entries (default: 64)
//	REELS_PLAYER         : external player (default: "mpv")
//	REELS_LOG_FILE       : slog output file (default: none)
//	REELS_LOG_LEVEL      : slog level (default: "info")
//	REELS_START_SCREEN   : "reels" or "stock" (default: "reels")
func Load() (Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	backend, err := normalizeBaseURL("REELS_BACKEND_URL", getEnv("REELS_BACKEND_URL", DefaultBackendURL))
	if err != nil {
		return Config{}, err
	}
	stock, err := normalizeBaseURL("REELS_STOCK_URL", getEnv("REELS_STOCK_URL", DefaultStockURL))
	if err != nil {
		return Config{}, err
	}

	perPage := getEnvAsInt("REELS_STOCK_PER_PAGE", 15)
	if perPage < 1 || perPage > 80 {
		return Config{}, fmt.Errorf("invalid REELS_STOCK_PER_PAGE: must be between 1 and 80")
	}

	timeout, err := time.ParseDuration(getEnv("REELS_HTTP_TIMEOUT", "15s"))
	if err != nil || timeout <= 0 {
		return Config{}, fmt.Errorf("invalid REELS_HTTP_TIMEOUT: must be a positive duration")
	}

	screen := strings.ToLower(strings.TrimSpace(getEnv("REELS_START_SCREEN", "reels")))
	if screen != "reels" && screen != "stock" {
		return Config{}, fmt.Errorf("invalid REELS_START_SCREEN: want reels or stock")
	}

	query := strings.TrimSpace(getEnv("REELS_STOCK_QUERY", "background"))
	if query == "" {
		query = "background"
	}

	return Config{
		BackendURL:   backend,
		StockURL:     stock,
		StockKey:     os.Getenv("REELS_PEXELS_KEY"),
		StockKeyPath: os.Getenv("REELS_PEXELS_KEY_FILE"),
		StockQuery:   query,
		StockPerPage: perPage,
		HTTPTimeout:  timeout,
		CacheSize:    max(getEnvAsInt("REELS_CACHE_SIZE", 64), 1),
		Player:       getEnv("REELS_PLAYER", "mpv"),
		LogFile:      os.Getenv("REELS_LOG_FILE"),
		LogLevel:     getEnv("REELS_LOG_LEVEL", "info"),
		StartScreen:  screen,
	}, nil
}

// normalizeBaseURL accepts absolute https URLs, plus plain http for loopback
// hosts so a local backend can be used during development.
func normalizeBaseURL(name, raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid %s: must be an absolute URL", name)
	}
	switch parsed.Scheme {
	case "https":
	case "http":
		if !isLoopback(parsed.Hostname()) {
			return "", fmt.Errorf("invalid %s: only https is allowed for non-local hosts", name)
		}
	default:
		return "", fmt.Errorf("invalid %s: unsupported scheme %q", name, parsed.Scheme)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

func isLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(name string, defaultVal int) int {
	if valStr := getEnv(name, ""); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			return val
		}
	}
	return defaultVal
}
