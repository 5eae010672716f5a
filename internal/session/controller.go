package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/v0xg/termbrowse/internal/crawler"
	"github.com/v0xg/termbrowse/internal/extract"
	"github.com/v0xg/termbrowse/internal/glyph"
	"github.com/v0xg/termbrowse/internal/logging"
	"github.com/v0xg/termbrowse/internal/screen"
	"github.com/v0xg/termbrowse/internal/search"
)

// Prompt is shown before every command.
const Prompt = "\n🔎 number/search/URL (exit to quit): "

// ErrClosed is returned by Step when the user asks to leave.
var ErrClosed = errors.New("session closed")

// Fetcher loads pages. Implementations report failures inside the
// returned Capture rather than as a separate error.
type Fetcher interface {
	Navigate(ctx context.Context, target string, box glyph.Box) *crawler.Capture
	Submit(ctx context.Context, field, value string, box glyph.Box) *crawler.Capture
}

// Controller turns commands into fetches and redraws.
type Controller struct {
	Fetcher Fetcher
	Input   LineReader
	Out     io.Writer
	Search  search.Engine
	Size    func() glyph.Box // queried once per fetch
	Log     *slog.Logger
}

func (c *Controller) log() *slog.Logger {
	if c.Log == nil {
		return logging.Discard()
	}
	return c.Log
}

func (c *Controller) box() glyph.Box {
	if c.Size == nil {
		return glyph.Box{Cols: 80, Rows: 24}
	}
	return c.Size()
}

// Run loads home, then handles commands until exit, end of input or ctx
// cancellation. Only cancellation is reported as an error.
func (c *Controller) Run(ctx context.Context, home string) error {
	s := c.Load(ctx, home)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := c.Input.ReadLine(ctx, Prompt)
		if err != nil {
			return c.finish(ctx, err)
		}
		next, err := c.Step(ctx, s, ParseCommand(line))
		if err != nil {
			return c.finish(ctx, err)
		}
		s = next
	}
}

func (c *Controller) finish(ctx context.Context, err error) error {
	if errors.Is(err, ErrClosed) || errors.Is(err, io.EOF) {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// Once runs a single search for query and draws the result.
func (c *Controller) Once(ctx context.Context, query string) error {
	c.Load(ctx, c.Search.URL(query))
	return ctx.Err()
}

// Step applies cmd to s and returns the next state. Out-of-range element
// numbers and empty lines return s unchanged without fetching.
func (c *Controller) Step(ctx context.Context, s Session, cmd Command) (Session, error) {
	switch cmd.Kind {
	case Exit:
		return s, ErrClosed
	case Empty:
		return s, nil
	case Select:
		el, ok := s.Element(cmd.Index)
		if !ok {
			c.log().Debug("selection out of range", "index", cmd.Index+1, "elements", len(s.Elements))
			return s, nil
		}
		if el.Kind == extract.Input {
			value, err := c.Input.ReadLine(ctx, fmt.Sprintf("📝 value for %s: ", el.Label))
			if err != nil {
				return s, err
			}
			return c.submit(ctx, el, value), nil
		}
		return c.Load(ctx, el.Target), nil
	case Navigate:
		return c.Load(ctx, cmd.Text), nil
	case Search:
		return c.Load(ctx, c.Search.URL(cmd.Text)), nil
	default:
		return s, fmt.Errorf("unknown command kind %v", cmd.Kind)
	}
}

// Load fetches target and draws it.
func (c *Controller) Load(ctx context.Context, target string) Session {
	return c.present(ctx, target, c.Fetcher.Navigate(ctx, target, c.box()))
}

// submit fills the live field; when the page has no such field the value
// is run as a search instead.
func (c *Controller) submit(ctx context.Context, el extract.Element, value string) Session {
	box := c.box()
	capture := c.Fetcher.Submit(ctx, el.Target, value, box)
	if errors.Is(capture.Err, crawler.ErrNoField) {
		c.log().Debug("field not on live page, searching instead", "field", el.Target)
		target := c.Search.URL(value)
		return c.present(ctx, target, c.Fetcher.Navigate(ctx, target, box))
	}
	return c.present(ctx, capture.URL, capture)
}

// present extracts elements and renders the snapshot of capture, degrading
// each independently, then draws the screen.
func (c *Controller) present(ctx context.Context, target string, capture *crawler.Capture) Session {
	next := Session{URL: capture.URL}
	if next.URL == "" {
		next.URL = target
	}

	switch err := capture.Err; {
	case err == nil:
		elements, err := extract.Extract(capture.Markup, next.URL)
		if err != nil {
			c.log().Warn("markup not usable", "url", next.URL, "err", err)
			break
		}
		next.Elements = extract.Visible(elements)
	case errors.Is(err, crawler.ErrRetrieval), errors.Is(err, crawler.ErrNoField):
		c.log().Warn("page unavailable", "url", next.URL, "err", err)
	default:
		c.log().Error("fetch failed", "url", next.URL, "err", err)
	}

	var lines []string
	switch err := capture.SnapshotErr; {
	case err == nil:
		lines = glyph.Render(capture.Snapshot)
	case errors.Is(err, crawler.ErrImage), errors.Is(err, crawler.ErrRetrieval):
		c.log().Warn("snapshot unavailable", "url", next.URL, "err", err)
	default:
		c.log().Error("snapshot failed", "url", next.URL, "err", err)
	}

	if ctx.Err() != nil {
		return next
	}
	if err := screen.Draw(c.Out, screen.Frame{URL: next.URL, Image: lines, Elements: next.Elements}); err != nil {
		c.log().Error("draw", "err", err)
	}
	return next
}
