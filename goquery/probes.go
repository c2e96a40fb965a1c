// Package goquery provides CSS-selector-based implementations of the
// pagelens classifier and extractors. Every probe operates on an explicit
// snapshot and treats missing elements, attributes and malformed markup as
// absent signals, never as errors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
	"golang.org/x/net/html"
)

// NewSnapshot builds a snapshot from a URL and raw HTML, deriving the page
// title from the <title> element.
func NewSnapshot(pageURL, rawHTML string) pagelens.Snapshot {
	snap := pagelens.Snapshot{URL: pageURL, HTML: rawHTML}
	if doc := parseSnapshot(snap); doc != nil {
		snap.Title = collapseSpace(doc.Find("title").First().Text())
	}
	return snap
}

// parseSnapshot parses a snapshot's HTML. Returns nil on parse failure;
// the underlying parser is lenient, so real pages effectively never fail.
func parseSnapshot(snap pagelens.Snapshot) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		return nil
	}
	return doc
}

// hasSelector checks if the document contains at least one element matching
// the selector.
func hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

// firstText returns the first non-empty trimmed text among the selectors,
// tried in order. Selectors that match nothing contribute no signal.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		text := ""
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text = collapseSpace(s.Text())
			return text == ""
		})
		if text != "" {
			return text
		}
	}
	return ""
}

// firstAttr returns the named attribute of the first element matching any
// of the selectors that carries it non-empty.
func firstAttr(doc *goquery.Document, attr string, selectors ...string) string {
	for _, sel := range selectors {
		value := ""
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			value = strings.TrimSpace(s.AttrOr(attr, ""))
			return value == ""
		})
		if value != "" {
			return value
		}
	}
	return ""
}

// metaName returns the content of <meta name="...">.
func metaName(doc *goquery.Document, name string) string {
	return strings.TrimSpace(doc.Find(`meta[name="`+name+`"]`).First().AttrOr("content", ""))
}

// metaProperty returns the content of <meta property="...">.
func metaProperty(doc *goquery.Document, property string) string {
	return strings.TrimSpace(doc.Find(`meta[property="`+property+`"]`).First().AttrOr("content", ""))
}

// domText returns the collapsed text of the first matched element,
// preferring a nested aria-hidden span when present (profile pages
// duplicate visible text in such spans).
func domText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	first := sel.First()
	if span := first.Find(`span[aria-hidden="true"]`).First(); span.Length() > 0 {
		return collapseSpace(span.Text())
	}
	return collapseSpace(first.Text())
}

// collapseSpace trims and collapses runs of whitespace to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// hostname returns the lowercased host of a URL, without port.
func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// resolveURL resolves href against base. Returns "" when href cannot be
// parsed or the result is not absolute http(s).
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := ref
	if base != nil {
		resolved = base.ResolveReference(ref)
	}
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// stripQuery removes the query and fragment from a URL string.
func stripQuery(rawURL string) string {
	if idx := strings.IndexAny(rawURL, "?#"); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}

// visibleText walks the body and concatenates text nodes, skipping
// script, style, noscript and template subtrees.
func visibleText(doc *goquery.Document) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Find("body").Nodes {
		walk(n)
	}
	return collapseSpace(b.String())
}

// stripHTML returns the text content of an HTML fragment. Fragments that
// fail to parse are returned as-is.
func stripHTML(fragment string) string {
	if !strings.ContainsRune(fragment, '<') {
		return collapseSpace(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapseSpace(fragment)
	}
	return collapseSpace(doc.Text())
}

// snapshotTitle returns the snapshot's title, falling back to the parsed
// <title> element.
func snapshotTitle(snap pagelens.Snapshot, doc *goquery.Document) string {
	if snap.Title != "" {
		return snap.Title
	}
	if doc == nil {
		return ""
	}
	return collapseSpace(doc.Find("title").First().Text())
}
