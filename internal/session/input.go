package session

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

// LineReader prompts for and returns one line of user input.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

type readResult struct {
	line string
	err  error
}

// Console reads lines from r, writing prompts to w. Reads happen on a
// background goroutine so a cancelled context unblocks ReadLine.
type Console struct {
	w     io.Writer
	r     *bufio.Reader
	once  sync.Once
	lines chan readResult
	next  chan struct{}
	err   error // sticky once the reader fails
}

// NewConsole returns a LineReader over r and w.
func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{
		w:     w,
		r:     bufio.NewReader(r),
		lines: make(chan readResult),
		next:  make(chan struct{}, 1),
	}
}

func (c *Console) loop() {
	for range c.next {
		line, err := c.r.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		c.lines <- readResult{line: strings.TrimRight(line, "\r\n"), err: err}
		if err != nil {
			return
		}
	}
}

// ReadLine writes prompt and waits for a line or for ctx to end. A read
// abandoned by cancellation is delivered to the next call.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.once.Do(func() {
		go c.loop()
		c.next <- struct{}{}
	})
	if _, err := io.WriteString(c.w, prompt); err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-c.lines:
		if res.err != nil {
			c.err = res.err
		} else {
			c.next <- struct{}{}
		}
		return res.line, res.err
	}
}
