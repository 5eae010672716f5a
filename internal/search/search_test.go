package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineURL(t *testing.T) {
	e := Engine{Template: "https://html.duckduckgo.com/html/?q=%s"}

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"plain", "golang", "https://html.duckduckgo.com/html/?q=golang"},
		{"spaces", "go rod screenshot", "https://html.duckduckgo.com/html/?q=go%20rod%20screenshot"},
		{"reserved", "a&b=c?", "https://html.duckduckgo.com/html/?q=a%26b%3Dc%3F"},
		{"plus sign", "c++", "https://html.duckduckgo.com/html/?q=c%2B%2B"},
		{"unicode", "東京", "https://html.duckduckgo.com/html/?q=%E6%9D%B1%E4%BA%AC"},
		{"empty", "", "https://html.duckduckgo.com/html/?q="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.URL(tt.query))
		})
	}
}

func TestIsDuckDuckGoResults(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://html.duckduckgo.com/html/?q=go", true},
		{"https://html.duckduckgo.com/html/", true},
		{"https://duckduckgo.com/html?q=go", true},
		{"https://duckduckgo.com/?q=go", false},
		{"https://example.com/html/", false},
		{"::not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuckDuckGoResults(tt.url))
		})
	}
}

func TestUnwrapRedirect(t *testing.T) {
	assert.Equal(t, "https://go.dev/doc/",
		UnwrapRedirect("//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F&rut=abc"))
	assert.Equal(t, "https://go.dev/", UnwrapRedirect("https://go.dev/"))
	assert.Equal(t, "/l/?uddg=", UnwrapRedirect("/l/?uddg="))
}
