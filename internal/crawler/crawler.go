// Package crawler drives a headless Chromium instance: it navigates, reads
// live markup and takes the screenshots the terminal renders.
package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/v0xg/termbrowse/internal/executor"
	"github.com/v0xg/termbrowse/internal/glyph"
	"github.com/v0xg/termbrowse/internal/logging"
)

// Options configures the browser.
type Options struct {
	Width          int
	Height         int
	UserAgent      string
	AcceptLanguage string
	ChromePath     string // empty = launcher lookup
	ProfileDir     string // Chrome/Chromium profile directory for authenticated sessions
	NavTimeout     time.Duration
	SnapTimeout    time.Duration
	Log            *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = int(float64(o.Width) / glyph.AspectRatio)
	}
	if o.NavTimeout <= 0 {
		o.NavTimeout = 10 * time.Second
	}
	if o.SnapTimeout <= 0 {
		o.SnapTimeout = 8 * time.Second
	}
	if o.Log == nil {
		o.Log = logging.Discard()
	}
	return o
}

// idleTimeout bounds how long we wait for the network to go quiet; pages
// with persistent connections never do.
const idleTimeout = 3 * time.Second

// Browser owns the browser process and the single tab a session uses.
// It must be closed on every exit path.
type Browser struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	opts     Options
	log      *slog.Logger
	once     sync.Once
}

// Launch starts a headless browser and opens a tab configured with the
// viewport, user agent and language hints from opts. Cancelling ctx
// aborts a launch in progress, including a browser download.
func Launch(ctx context.Context, opts Options) (*Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	opts = opts.withDefaults()

	path := opts.ChromePath
	if path == "" {
		path, _ = launcher.LookPath()
	}
	l := launcher.New().Context(ctx).Headless(true)
	if path != "" {
		l = l.Bin(path)
	}
	if opts.ProfileDir != "" {
		l = l.UserDataDir(opts.ProfileDir)
	}

	b := &Browser{launcher: l, opts: opts, log: opts.Log}

	u, err := l.Launch()
	if err != nil {
		// No process to clean up; Cleanup would wait for one forever.
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	if err := ctx.Err(); err != nil {
		b.Close()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b.browser = rod.New().ControlURL(u)
	if err := b.browser.Connect(); err != nil {
		b.browser = nil
		b.Close()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	if err := b.openPage(); err != nil {
		b.Close()
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		b.Close()
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	return b, nil
}

func (b *Browser) openPage() error {
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("open tab: %w", err)
	}
	b.page = page

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             b.opts.Width,
		Height:            b.opts.Height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}

	err = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      b.opts.UserAgent,
		AcceptLanguage: b.opts.AcceptLanguage,
	})
	if err != nil {
		return fmt.Errorf("set user agent: %w", err)
	}

	if b.opts.AcceptLanguage != "" {
		if _, err := page.SetExtraHeaders([]string{"Accept-Language", b.opts.AcceptLanguage}); err != nil {
			return fmt.Errorf("set headers: %w", err)
		}
	}
	return nil
}

// Close terminates the browser process. It is safe to call more than once.
func (b *Browser) Close() {
	b.once.Do(func() {
		if b.page != nil {
			_ = b.page.Close()
		}
		if b.browser != nil {
			_ = b.browser.Close()
		}
		if b.launcher != nil {
			b.launcher.Kill()
			// Cleanup deletes the user data dir, which is only ours when
			// no profile was supplied.
			if b.opts.ProfileDir == "" {
				b.launcher.Cleanup()
			}
		}
	})
}

// Navigate loads target and captures its markup and snapshot, sized for box.
func (b *Browser) Navigate(ctx context.Context, target string, box glyph.Box) *Capture {
	b.log.Debug("navigate", "url", target)

	p := b.page.Context(ctx).Timeout(b.opts.NavTimeout)
	err := p.Navigate(target)
	if err == nil {
		err = p.WaitLoad()
	}
	p.CancelTimeout()

	if err != nil {
		return Failed(target, fmt.Errorf("%w: %s: %v", ErrRetrieval, target, err))
	}

	b.settle(ctx)
	return b.capture(ctx, target, box)
}

// Submit fills the live field identified by field (name or id) with value,
// submits it and captures the resulting page.
func (b *Browser) Submit(ctx context.Context, field, value string, box glyph.Box) *Capture {
	b.log.Debug("submit", "field", field)

	current := b.currentURL(ctx)
	p := b.page.Context(ctx).Timeout(b.opts.NavTimeout)
	err := executor.Fill(p, field, value)
	p.CancelTimeout()

	if err != nil {
		if !errors.Is(err, executor.ErrNoField) {
			err = fmt.Errorf("%w: submit %s: %v", ErrRetrieval, field, err)
		}
		return Failed(current, err)
	}

	b.settle(ctx)
	return b.capture(ctx, current, box)
}

// capture reads the loaded page. fallbackURL is used when the browser
// cannot report its location.
func (b *Browser) capture(ctx context.Context, fallbackURL string, box glyph.Box) *Capture {
	c := &Capture{URL: fallbackURL}
	if u := b.currentURL(ctx); u != "" {
		c.URL = u
	}

	p := b.page.Context(ctx).Timeout(b.opts.NavTimeout)
	markup, err := p.HTML()
	p.CancelTimeout()
	if err != nil {
		c.Err = fmt.Errorf("%w: read markup: %v", ErrRetrieval, err)
	} else {
		c.Markup = markup
	}

	c.Snapshot, c.SnapshotErr = b.snapshot(ctx, box)
	return c
}

func (b *Browser) currentURL(ctx context.Context) string {
	info, err := b.page.Context(ctx).Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// snapshot screenshots the viewport and resamples it to box.
func (b *Browser) snapshot(ctx context.Context, box glyph.Box) (image.Image, error) {
	p := b.page.Context(ctx).Timeout(b.opts.SnapTimeout)
	defer p.CancelTimeout()

	data, err := p.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: screenshot: %v", ErrImage, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrImage, err)
	}
	return glyph.Fit(img, box), nil
}

// settle waits, within bounds, for late requests and client-side rendering
// so the markup read afterwards carries the page's interactive elements.
func (b *Browser) settle(ctx context.Context) {
	p := b.page.Context(ctx).Timeout(idleTimeout)
	defer p.CancelTimeout()

	p.WaitRequestIdle(500*time.Millisecond, nil, nil, nil)()

	if detectSPA(p) {
		waitForInteractiveElements(p, idleTimeout)
	}
}
