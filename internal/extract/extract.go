package extract

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/v0xg/termbrowse/internal/search"
)

// minLabelRunes is the shortest anchor text accepted as a link label.
const minLabelRunes = 3

// skippedInputTypes are input types that do not take free text.
var skippedInputTypes = map[string]bool{
	"hidden":   true,
	"submit":   true,
	"button":   true,
	"reset":    true,
	"image":    true,
	"file":     true,
	"checkbox": true,
	"radio":    true,
}

// Strategy discovers the links of a parsed page.
type Strategy interface {
	Links(doc *goquery.Document, base *url.URL) []Element
}

// SiteRule pairs a URL predicate with a selector for the title anchors of
// a site's organic results.
type SiteRule struct {
	Name     string
	Match    func(pageURL string) bool
	Selector string
	// Unwrap rewrites raw hrefs before resolution; nil leaves them as is.
	Unwrap func(href string) string
}

// Rules are consulted in order by Select. Result markup drifts, so these
// are heuristics that can be replaced or extended at startup.
var Rules = []SiteRule{
	{
		Name:     "duckduckgo",
		Match:    search.IsDuckDuckGoResults,
		Selector: "div.result:not(.result--ad) a.result__a",
		Unwrap:   search.UnwrapRedirect,
	},
}

// Select returns the site-aware strategy for pageURL when a rule matches,
// and the generic anchor scan otherwise.
func Select(pageURL string) Strategy {
	for _, r := range Rules {
		if r.Match != nil && r.Match(pageURL) {
			return siteAwareExtractor{rule: r, fallback: genericExtractor{}}
		}
	}
	return genericExtractor{}
}

// Extract parses markup and returns its inputs followed by up to ScanCap
// links, both in document order. Relative hrefs resolve against pageURL.
func Extract(markup, pageURL string) ([]Element, error) {
	base, err := parseBase(pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	elements := inputs(doc)
	elements = append(elements, Select(pageURL).Links(doc, base)...)
	return elements, nil
}

func parseBase(pageURL string) (*url.URL, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base url %q: %v", ErrParse, pageURL, err)
	}
	return base, nil
}

func inputs(doc *goquery.Document) []Element {
	var out []Element
	doc.Find("input, textarea").Each(func(_ int, s *goquery.Selection) {
		if _, hidden := s.Attr("hidden"); hidden {
			return
		}
		if goquery.NodeName(s) == "input" {
			typ := strings.ToLower(strings.TrimSpace(s.AttrOr("type", "")))
			if skippedInputTypes[typ] {
				return
			}
		}
		target := strings.TrimSpace(s.AttrOr("name", ""))
		if target == "" {
			target = strings.TrimSpace(s.AttrOr("id", ""))
		}
		label := target
		if label == "" {
			label = "input"
		}
		out = append(out, Element{Kind: Input, Label: label, Target: target})
	})
	return out
}

type genericExtractor struct{}

func (genericExtractor) Links(doc *goquery.Document, base *url.URL) []Element {
	return collectLinks(doc.Find("a[href]"), base, nil)
}

type siteAwareExtractor struct {
	rule     SiteRule
	fallback Strategy
}

func (e siteAwareExtractor) Links(doc *goquery.Document, base *url.URL) []Element {
	links := collectLinks(doc.Find(e.rule.Selector), base, e.rule.Unwrap)
	if len(links) == 0 && e.fallback != nil {
		return e.fallback.Links(doc, base)
	}
	return links
}

// collectLinks applies the label and href filters to sel, stopping at ScanCap.
func collectLinks(sel *goquery.Selection, base *url.URL, unwrap func(string) string) []Element {
	var out []Element
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		label := cleanText(s.Text())
		if utf8.RuneCountInString(label) < minLabelRunes {
			return true
		}
		href = strings.TrimSpace(href)
		if unwrap != nil {
			href = unwrap(href)
		}
		target, ok := resolve(base, href)
		if !ok {
			return true
		}
		out = append(out, Element{Kind: Link, Label: label, Target: target})
		return len(out) < ScanCap
	})
	return out
}

// resolve turns href into an absolute URL, rejecting empty, fragment-only
// and javascript: hrefs.
func resolve(base *url.URL, href string) (string, bool) {
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	if strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}

// cleanText collapses runs of whitespace and trims the result.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
