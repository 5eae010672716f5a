// Package config resolves browser settings from defaults, an optional .env
// file, and TERMBROWSE_* environment variables.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/v0xg/termbrowse/internal/glyph"
)

// Config holds everything needed to start a browsing session.
type Config struct {
	HomeURL        string
	SearchURL      string // query template with a single %s
	UserAgent      string
	AcceptLanguage string
	ChromePath     string // empty = launcher lookup
	ProfileDir     string // Chrome user data dir for authenticated sessions
	ViewportWidth  int
	NavTimeout     time.Duration
	SnapTimeout    time.Duration
	Verbose        bool
	LogFile        string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		HomeURL:        "https://html.duckduckgo.com/html/",
		SearchURL:      "https://html.duckduckgo.com/html/?q=%s",
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		AcceptLanguage: "ja,en-US;q=0.9,en;q=0.8",
		ViewportWidth:  1280,
		NavTimeout:     10 * time.Second,
		SnapTimeout:    8 * time.Second,
	}
}

// Load returns Default overlaid with values from .env (if present) and the
// process environment. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv(Default())
}

// FromEnv overlays TERMBROWSE_* environment variables onto c.
func FromEnv(c Config) Config {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.HomeURL, "TERMBROWSE_HOME")
	set(&c.SearchURL, "TERMBROWSE_SEARCH_URL")
	set(&c.UserAgent, "TERMBROWSE_USER_AGENT")
	set(&c.AcceptLanguage, "TERMBROWSE_LANG")
	set(&c.ChromePath, "TERMBROWSE_CHROME")
	set(&c.ProfileDir, "TERMBROWSE_PROFILE")
	return c
}

// ViewportHeight keeps the browser viewport at the same aspect ratio the
// snapshot is displayed at.
func (c Config) ViewportHeight() int {
	return int(float64(c.ViewportWidth) / glyph.AspectRatio)
}
