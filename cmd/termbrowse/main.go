package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/v0xg/termbrowse/internal/config"
	"github.com/v0xg/termbrowse/internal/crawler"
	"github.com/v0xg/termbrowse/internal/glyph"
	"github.com/v0xg/termbrowse/internal/logging"
	"github.com/v0xg/termbrowse/internal/screen"
	"github.com/v0xg/termbrowse/internal/search"
	"github.com/v0xg/termbrowse/internal/session"
)

var (
	home      string
	searchURL string
	chrome    string
	profile   string
	timeout   time.Duration
	verbose   bool
	logFile   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "termbrowse [search terms...]",
		Short: "Browse the web as colored glyphs in your terminal",
		Long: `termbrowse drives a headless browser, draws each page as truecolor
half-block glyphs and lists its links and input fields by number.

At the prompt type a number to follow a link or fill a field, a URL starting
with http to go there, anything else to search, or "exit" to quit.

With arguments, the joined arguments are searched once and the program exits:
  termbrowse golang headless browser`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&home, "home", "", "Start page (default: TERMBROWSE_HOME or DuckDuckGo HTML)")
	rootCmd.Flags().StringVar(&searchURL, "search-url", "", "Search URL template containing %s")
	rootCmd.Flags().StringVar(&chrome, "chrome", "", "Chrome/Chromium binary (default: auto-detect)")
	rootCmd.Flags().StringVar(&profile, "profile", "", "Chrome/Chromium profile directory for authenticated sessions (close browser first)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "Page load timeout (default 10s)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := applyFlags(config.Load())

	logOut, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Print("→ Launching browser... ")
	browser, err := crawler.Launch(ctx, crawler.Options{
		Width:          cfg.ViewportWidth,
		Height:         cfg.ViewportHeight(),
		UserAgent:      cfg.UserAgent,
		AcceptLanguage: cfg.AcceptLanguage,
		ChromePath:     cfg.ChromePath,
		ProfileDir:     cfg.ProfileDir,
		NavTimeout:     cfg.NavTimeout,
		SnapTimeout:    cfg.SnapTimeout,
		Log:            logging.New(logOut, "crawler", cfg.Verbose),
	})
	if errors.Is(err, context.Canceled) {
		fmt.Println("cancelled")
		fmt.Println("👋 bye")
		return nil
	}
	if err != nil {
		fmt.Println("failed")
		return fmt.Errorf("browser launch failed: %w", err)
	}
	defer browser.Close()
	fmt.Println("done")

	ctrl := &session.Controller{
		Fetcher: browser,
		Input:   session.NewConsole(os.Stdin, os.Stdout),
		Out:     os.Stdout,
		Search:  search.Engine{Template: cfg.SearchURL},
		Size:    func() glyph.Box { return screen.Size(os.Stdout) },
		Log:     logging.New(logOut, "session", cfg.Verbose),
	}

	if len(args) > 0 {
		err = ctrl.Once(ctx, strings.Join(args, " "))
	} else {
		err = ctrl.Run(ctx, cfg.HomeURL)
	}

	if errors.Is(err, context.Canceled) {
		fmt.Println()
		err = nil
	}
	fmt.Println("👋 bye")
	return err
}

// applyFlags overlays explicitly set flags onto cfg.
func applyFlags(cfg config.Config) config.Config {
	if home != "" {
		cfg.HomeURL = home
	}
	if searchURL != "" {
		cfg.SearchURL = searchURL
	}
	if chrome != "" {
		cfg.ChromePath = chrome
	}
	if profile != "" {
		cfg.ProfileDir = profile
	}
	if timeout > 0 {
		cfg.NavTimeout = timeout
	}
	cfg.Verbose = verbose
	cfg.LogFile = logFile
	return cfg
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
