package session

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/termbrowse/internal/crawler"
	"github.com/v0xg/termbrowse/internal/extract"
	"github.com/v0xg/termbrowse/internal/glyph"
	"github.com/v0xg/termbrowse/internal/screen"
	"github.com/v0xg/termbrowse/internal/search"
)

type call struct {
	op     string
	target string
	value  string
}

// fakeFetcher serves canned markup per URL; unknown URLs fail.
type fakeFetcher struct {
	pages   map[string]string
	noField bool
	calls   []call
}

func (f *fakeFetcher) Navigate(_ context.Context, target string, _ glyph.Box) *crawler.Capture {
	f.calls = append(f.calls, call{op: "navigate", target: target})
	markup, ok := f.pages[target]
	if !ok {
		return crawler.Failed(target, fmt.Errorf("%w: %s: no such host", crawler.ErrRetrieval, target))
	}
	return &crawler.Capture{URL: target, Markup: markup, Snapshot: checker()}
}

func (f *fakeFetcher) Submit(_ context.Context, field, value string, _ glyph.Box) *crawler.Capture {
	f.calls = append(f.calls, call{op: "submit", target: field, value: value})
	if f.noField {
		return crawler.Failed("", fmt.Errorf("%w: %q", crawler.ErrNoField, field))
	}
	u := "https://example.com/search?q=" + value
	return &crawler.Capture{URL: u, Markup: `<a href="/r">Result page</a>`, Snapshot: checker()}
}

func checker() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{B: 255, A: 255})
	return img
}

// script answers prompts from a fixed list, then reports EOF.
type script struct {
	lines   []string
	prompts []string
}

func (s *script) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

const home = "https://example.com/"

const homeMarkup = `<form><input name="q"></form>
<a href="/about">About us</a>
<a href="https://other.example/">Other site</a>`

func newController(f *fakeFetcher, lines ...string) (*Controller, *script, *bytes.Buffer) {
	in := &script{lines: lines}
	out := &bytes.Buffer{}
	return &Controller{
		Fetcher: f,
		Input:   in,
		Out:     out,
		Search:  search.Engine{Template: "https://search.example/?q=%s"},
		Size:    func() glyph.Box { return glyph.Box{Cols: 80, Rows: 40} },
	}, in, out
}

func newFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[string]string{
		home:                           homeMarkup,
		"https://example.com/about":    `<a href="/">Home page</a>`,
		"https://search.example/?q=go": `<a href="https://go.dev/">The Go site</a>`,
	}}
}

func TestLoad(t *testing.T) {
	c, _, out := newController(newFetcher())

	s := c.Load(context.Background(), home)

	assert.Equal(t, home, s.URL)
	assert.Equal(t, []extract.Element{
		{Kind: extract.Input, Label: "q", Target: "q"},
		{Kind: extract.Link, Label: "About us", Target: "https://example.com/about"},
		{Kind: extract.Link, Label: "Other site", Target: "https://other.example/"},
	}, s.Elements)
	assert.True(t, strings.HasPrefix(out.String(), screen.ClearScreen+screen.CursorHome))
	assert.Contains(t, out.String(), "\x1b[38;2;255;0;0m\x1b[48;2;0;0;0m▀")
	assert.Contains(t, out.String(), "[3] Other site")
}

func TestStepSelectLink(t *testing.T) {
	f := newFetcher()
	c, _, _ := newController(f)
	s := c.Load(context.Background(), home)

	next, err := c.Step(context.Background(), s, ParseCommand("2"))

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/about", next.URL)
	assert.Equal(t, []extract.Element{{Kind: extract.Link, Label: "Home page", Target: "https://example.com/"}}, next.Elements)
	assert.Equal(t, call{op: "navigate", target: "https://example.com/about"}, f.calls[len(f.calls)-1])
}

func TestStepOutOfRangeIsNoop(t *testing.T) {
	for _, in := range []string{"0", "4", "12", "99999999999999999999999"} {
		t.Run(in, func(t *testing.T) {
			f := newFetcher()
			c, _, out := newController(f)
			s := c.Load(context.Background(), home)
			calls, drawn := len(f.calls), out.Len()

			next, err := c.Step(context.Background(), s, ParseCommand(in))

			require.NoError(t, err)
			assert.Equal(t, s, next)
			assert.Len(t, f.calls, calls)
			assert.Equal(t, drawn, out.Len())
		})
	}
}

func TestStepNavigateOnHTTPPrefix(t *testing.T) {
	f := newFetcher()
	c, _, _ := newController(f)

	next, err := c.Step(context.Background(), Session{URL: home}, ParseCommand("http tutorial for beginners"))

	require.NoError(t, err)
	assert.Equal(t, []call{{op: "navigate", target: "http tutorial for beginners"}}, f.calls)
	assert.Equal(t, "http tutorial for beginners", next.URL)
	assert.Empty(t, next.Elements)
}

func TestStepSearch(t *testing.T) {
	f := newFetcher()
	c, _, _ := newController(f)

	next, err := c.Step(context.Background(), Session{URL: home}, ParseCommand("go"))

	require.NoError(t, err)
	assert.Equal(t, "https://search.example/?q=go", next.URL)
	require.Len(t, next.Elements, 1)
	assert.Equal(t, "https://go.dev/", next.Elements[0].Target)
}

func TestStepExit(t *testing.T) {
	c, _, _ := newController(newFetcher())
	s := Session{URL: home}

	next, err := c.Step(context.Background(), s, ParseCommand("EXIT"))

	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, s, next)
}

func TestStepSelectInputSubmitsLiveField(t *testing.T) {
	f := newFetcher()
	c, in, _ := newController(f, "kittens")
	s := c.Load(context.Background(), home)

	next, err := c.Step(context.Background(), s, ParseCommand("1"))

	require.NoError(t, err)
	assert.Equal(t, []string{"📝 value for q: "}, in.prompts)
	assert.Equal(t, call{op: "submit", target: "q", value: "kittens"}, f.calls[len(f.calls)-1])
	assert.Equal(t, "https://example.com/search?q=kittens", next.URL)
	assert.Equal(t, "https://example.com/r", next.Elements[0].Target)
}

func TestStepSelectInputFallsBackToSearch(t *testing.T) {
	f := newFetcher()
	f.noField = true
	c, _, _ := newController(f, "go")
	s := c.Load(context.Background(), home)

	next, err := c.Step(context.Background(), s, ParseCommand("1"))

	require.NoError(t, err)
	assert.Equal(t, []call{
		{op: "navigate", target: home},
		{op: "submit", target: "q", value: "go"},
		{op: "navigate", target: "https://search.example/?q=go"},
	}, f.calls)
	assert.Equal(t, "https://search.example/?q=go", next.URL)
}

func TestStepSelectInputEOF(t *testing.T) {
	f := newFetcher()
	c, _, _ := newController(f)
	s := c.Load(context.Background(), home)

	next, err := c.Step(context.Background(), s, ParseCommand("1"))

	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, s, next)
	assert.Len(t, f.calls, 1)
}

func TestFailedFetchDegrades(t *testing.T) {
	f := newFetcher()
	c, _, out := newController(f, "https://down.example/", "go", "exit")

	require.NoError(t, c.Run(context.Background(), home))

	assert.Equal(t, []call{
		{op: "navigate", target: home},
		{op: "navigate", target: "https://down.example/"},
		{op: "navigate", target: "https://search.example/?q=go"},
	}, f.calls)

	frames := strings.Split(out.String(), screen.ClearScreen)
	require.Len(t, frames, 4)
	failed := frames[2]
	assert.Contains(t, failed, screen.Placeholder)
	assert.NotContains(t, failed, "[1]")
	assert.Contains(t, frames[3], "[1] The Go site")
}

func TestEmptySnapshotShowsPlaceholder(t *testing.T) {
	f := &fakeFetcher{}
	c, _, out := newController(f)
	capture := &crawler.Capture{URL: home, Markup: "", Snapshot: image.NewRGBA(image.Rect(0, 0, 0, 0))}

	s := c.present(context.Background(), home, capture)

	assert.Empty(t, s.Elements)
	assert.Contains(t, out.String(), screen.Placeholder)
}

func TestElementsTruncatedToDisplayCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&sb, `<a href="/p/%d">Page %d</a>`, i, i)
	}
	f := &fakeFetcher{pages: map[string]string{home: sb.String()}}
	c, _, _ := newController(f)

	s := c.Load(context.Background(), home)
	require.Len(t, s.Elements, extract.DisplayCap)

	next, err := c.Step(context.Background(), s, ParseCommand("13"))
	require.NoError(t, err)
	assert.Equal(t, s, next)
	assert.Len(t, f.calls, 1)
}

func TestRunEndsOnEOF(t *testing.T) {
	f := newFetcher()
	c, in, _ := newController(f, "", "2")

	require.NoError(t, c.Run(context.Background(), home))

	assert.Len(t, in.prompts, 3)
	assert.Equal(t, []call{
		{op: "navigate", target: home},
		{op: "navigate", target: "https://example.com/about"},
	}, f.calls)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := newFetcher()
	c, _, out := newController(f, "go")

	err := c.Run(ctx, home)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, f.calls, 1)
	assert.Zero(t, out.Len())
}

func TestOnce(t *testing.T) {
	f := newFetcher()
	c, in, out := newController(f)

	require.NoError(t, c.Once(context.Background(), "go"))

	assert.Equal(t, []call{{op: "navigate", target: "https://search.example/?q=go"}}, f.calls)
	assert.Empty(t, in.prompts)
	assert.Contains(t, out.String(), "[1] The Go site")
}
