package screen

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/termbrowse/internal/extract"
)

func TestDrawWithImage(t *testing.T) {
	var buf bytes.Buffer
	err := Draw(&buf, Frame{
		URL:   "https://example.com/",
		Image: []string{"AAA", "BBB"},
		Elements: []extract.Element{
			{Kind: extract.Input, Label: "q", Target: "q"},
			{Kind: extract.Link, Label: "Example link", Target: "https://example.com/x"},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, ClearScreen+CursorHome+"AAA\nBBB\n"))
	assert.Contains(t, out, "--- panel (https://example.com/...) ---")
	assert.Contains(t, out, inputColor+"[1] input: [q]"+Reset)
	assert.Contains(t, out, linkColor+"[2] Example link"+Reset)
	assert.NotContains(t, out, Placeholder)
}

func TestDrawPlaceholderAndEmptyPanel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Draw(&buf, Frame{URL: "https://example.com/"}))

	out := buf.String()
	assert.Contains(t, out, Placeholder)
	assert.NotContains(t, out, "[1]")
}

func TestDrawCapsPanel(t *testing.T) {
	var elements []extract.Element
	for i := 0; i < extract.ScanCap; i++ {
		elements = append(elements, extract.Element{Kind: extract.Link, Label: fmt.Sprintf("link %d", i)})
	}

	var buf bytes.Buffer
	require.NoError(t, Draw(&buf, Frame{URL: "https://example.com/", Elements: elements}))

	out := buf.String()
	assert.Contains(t, out, "[12] link 11")
	assert.NotContains(t, out, "[13]")
}

func TestTruncate(t *testing.T) {
	long := "https://www.example.com/a/very/long/path"
	assert.Equal(t, "https://www.example.com/a/very", truncate(long, urlPreview))
	assert.Equal(t, "short", truncate("short", urlPreview))
	assert.Equal(t, "日本", truncate("日本語", 2))
}

func TestSizeFromEnv(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	t.Setenv("LINES", "50")

	box := Size(nil)

	assert.Equal(t, 132, box.Cols)
	assert.Equal(t, 50, box.Rows)
}
