// Package search builds search-engine query URLs and recognises result pages.
package search

import (
	"net/url"
	"strings"
)

// Engine is a search engine addressed by a query URL template.
type Engine struct {
	Template string // e.g. https://html.duckduckgo.com/html/?q=%s
}

// URL percent-encodes query into the template. Spaces become %20.
func (e Engine) URL(query string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
	return strings.Replace(e.Template, "%s", escaped, 1)
}

// IsDuckDuckGoResults reports whether rawURL is a DuckDuckGo HTML results
// page, whose organic results carry stable result__a anchors.
func IsDuckDuckGoResults(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host != "html.duckduckgo.com" && host != "duckduckgo.com" && host != "lite.duckduckgo.com" {
		return false
	}
	return strings.HasPrefix(u.Path, "/html") || strings.HasPrefix(u.Path, "/lite")
}

// UnwrapRedirect returns the real target of a DuckDuckGo /l/?uddg= redirect,
// or href unchanged.
func UnwrapRedirect(href string) string {
	if !strings.Contains(href, "uddg=") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	return href
}
