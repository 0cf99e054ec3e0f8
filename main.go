package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalreels/infra/api"
	"github.com/CrestNiraj12/terminalreels/infra/auth"
	"github.com/CrestNiraj12/terminalreels/infra/clipboard"
	"github.com/CrestNiraj12/terminalreels/infra/config"
	"github.com/CrestNiraj12/terminalreels/infra/logging"
	"github.com/CrestNiraj12/terminalreels/infra/pexels"
	"github.com/CrestNiraj12/terminalreels/infra/player"
	"github.com/CrestNiraj12/terminalreels/infra/reels"
	"github.com/CrestNiraj12/terminalreels/query"
	"github.com/CrestNiraj12/terminalreels/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliVersion
	cliHelp
	cliStock
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	case "--stock":
		return cliStock, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: terminalreels [--version|-version|-v] [--help|-h] [--stock]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("TerminalReels %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	// 1. Load config from environment (.env merged in).
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if mode == cliStock {
		cfg.StartScreen = "stock"
	}

	logger, logCloser, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	// 2. One query cache for the whole session.
	cache, err := query.NewClient(cfg.CacheSize, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query cache: %v\n", err)
		os.Exit(1)
	}
	defer cache.Close()
	logger = cache.Logger()
	logger.Info("terminalreels starting", "version", version, "backend", cfg.BackendURL)

	// 3. Build infrastructure and services (concrete types satisfy app.* interfaces).
	backend := api.NewClient(cfg.BackendURL, nil, cfg.HTTPTimeout, logger.With("api", "reels"))
	stockAPI := api.NewClient(cfg.StockURL, auth.Resolve(cfg.StockKey, cfg.StockKeyPath), cfg.HTTPTimeout, logger.With("api", "pexels"))

	// 4. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Reels:        reels.NewReelService(backend),
		Stock:        pexels.NewStockService(stockAPI),
		Cache:        cache,
		Clipboard:    clipboard.NewSystem(),
		Player:       player.NewExternalPlayer(cfg.Player),
		StockQuery:   cfg.StockQuery,
		StockPerPage: cfg.StockPerPage,
		StartScreen:  cfg.StartScreen,
	})

	// 5. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	final, err := p.Run()
	if app, ok := final.(tui.App); ok {
		app.Close()
	}
	if err != nil {
		logger.Error("program exited with error", "err", err)
		fmt.Fprintf(os.Stderr, "terminalreels: %v\n", err)
		os.Exit(1)
	}
}
