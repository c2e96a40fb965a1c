package goquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// Ensure GeneralExtractor implements pagelens.GeneralExtractor at compile
// time.
var _ pagelens.GeneralExtractor = (*GeneralExtractor)(nil)

// GeneralExtractor performs the single-pass generic page extraction:
// metadata tags, headings, visible text, links, images and tables, each
// subject to the caps defined in the domain package. When a content
// extractor (and optionally a markdown converter) is configured, the text
// content comes from the page's main content with boilerplate removed;
// otherwise it is the raw visible text.
type GeneralExtractor struct {
	content   pagelens.ContentExtractor
	converter pagelens.Converter
}

// GeneralOption configures a GeneralExtractor.
type GeneralOption func(*GeneralExtractor)

// WithContentExtractor uses the extractor for the page's text content,
// falling back to raw visible text when it fails.
func WithContentExtractor(ce pagelens.ContentExtractor) GeneralOption {
	return func(e *GeneralExtractor) {
		e.content = ce
	}
}

// WithMarkdownConverter renders extracted main content as Markdown.
// Only used together with WithContentExtractor.
func WithMarkdownConverter(c pagelens.Converter) GeneralOption {
	return func(e *GeneralExtractor) {
		e.converter = c
	}
}

// NewGeneralExtractor creates a new GeneralExtractor.
func NewGeneralExtractor(opts ...GeneralOption) *GeneralExtractor {
	e := &GeneralExtractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractPage extracts the snapshot into a GeneralPageRecord.
func (e *GeneralExtractor) ExtractPage(snap pagelens.Snapshot) (*pagelens.GeneralPageRecord, error) {
	rec := &pagelens.GeneralPageRecord{
		Headings: []pagelens.Heading{},
		Links:    []pagelens.Link{},
		Images:   []pagelens.Image{},
		Tables:   []pagelens.Table{},
	}

	doc := parseSnapshot(snap)
	if doc == nil {
		rec.Metadata.URL = snap.URL
		return rec, nil
	}

	rec.Metadata = pagelens.PageMetadata{
		Title:         snapshotTitle(snap, doc),
		Description:   metaName(doc, "description"),
		Keywords:      metaName(doc, "keywords"),
		OGTitle:       metaProperty(doc, "og:title"),
		OGDescription: metaProperty(doc, "og:description"),
		Author:        metaName(doc, "author"),
		URL:           snap.URL,
	}

	rec.Headings = extractHeadings(doc)

	base, err := url.Parse(snap.URL)
	if err != nil {
		base = nil
	}
	rec.Links = extractLinks(doc, base)
	rec.Images = extractImages(doc, base)
	rec.Tables = extractTables(doc)

	rec.TextContent = pagelens.Clip(e.textContent(snap, doc), pagelens.MaxTextContent)

	return rec, nil
}

// textContent prefers extracted main content over raw visible text.
func (e *GeneralExtractor) textContent(snap pagelens.Snapshot, doc *goquery.Document) string {
	if e.content == nil {
		return visibleText(doc)
	}
	extract, err := e.content.Extract(snap.HTML)
	if err != nil || extract == nil || extract.ContentHTML == "" {
		return visibleText(doc)
	}
	if e.converter != nil {
		if md, err := e.converter.Convert(extract.ContentHTML); err == nil && strings.TrimSpace(md) != "" {
			return strings.TrimSpace(md)
		}
	}
	return stripHTML(extract.ContentHTML)
}

func extractHeadings(doc *goquery.Document) []pagelens.Heading {
	headings := []pagelens.Heading{}
	doc.Find("h1, h2, h3, h4").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		text := collapseSpace(h.Text())
		if text == "" {
			return true
		}
		level := 1
		if node := h.Get(0); node != nil && len(node.Data) == 2 {
			level = int(node.Data[1] - '0')
		}
		headings = append(headings, pagelens.Heading{
			Level: level,
			Text:  pagelens.Clip(text, pagelens.MaxHeadingText),
		})
		return len(headings) < pagelens.MaxHeadings
	})
	return headings
}

// extractLinks collects absolute http(s) links in document order,
// deduplicated by URL.
func extractLinks(doc *goquery.Document, base *url.URL) []pagelens.Link {
	links := []pagelens.Link{}
	seen := make(map[string]bool)
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		resolved := resolveURL(base, a.AttrOr("href", ""))
		if resolved == "" || seen[resolved] {
			return true
		}
		seen[resolved] = true
		links = append(links, pagelens.Link{
			Text: pagelens.Clip(collapseSpace(a.Text()), pagelens.MaxLinkText),
			URL:  resolved,
		})
		return len(links) < pagelens.MaxLinks
	})
	return links
}

// extractImages collects images with a resolvable absolute source in
// document order, deduplicated by URL.
func extractImages(doc *goquery.Document, base *url.URL) []pagelens.Image {
	images := []pagelens.Image{}
	seen := make(map[string]bool)
	doc.Find("img[src]").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		resolved := resolveURL(base, img.AttrOr("src", ""))
		if resolved == "" || seen[resolved] {
			return true
		}
		seen[resolved] = true
		images = append(images, pagelens.Image{
			Alt:    strings.TrimSpace(img.AttrOr("alt", "")),
			URL:    resolved,
			Width:  attrInt(img, "width"),
			Height: attrInt(img, "height"),
		})
		return len(images) < pagelens.MaxImages
	})
	return images
}

func attrInt(sel *goquery.Selection, attr string) int {
	n, err := strconv.Atoi(strings.TrimSpace(sel.AttrOr(attr, "")))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// extractTables collects up to MaxTables tables. The header row comes from
// <thead> cells or the first row's header cells; body rows keep only rows
// with data cells, capped at MaxTableRows each. Tables with neither
// headers nor rows are skipped, but keep their document index.
func extractTables(doc *goquery.Document) []pagelens.Table {
	tables := []pagelens.Table{}
	doc.Find("table").EachWithBreak(func(i int, t *goquery.Selection) bool {
		if i >= pagelens.MaxTables {
			return false
		}

		headers := []string{}
		t.Find("thead th").Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, collapseSpace(th.Text()))
		})
		if len(headers) == 0 {
			t.Find("tr").First().Find("th").Each(func(_ int, th *goquery.Selection) {
				headers = append(headers, collapseSpace(th.Text()))
			})
		}

		rows := [][]string{}
		t.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
			cells := []string{}
			tr.Find("td").Each(func(_ int, td *goquery.Selection) {
				cells = append(cells, collapseSpace(td.Text()))
			})
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return len(rows) < pagelens.MaxTableRows
		})

		if len(headers) > 0 || len(rows) > 0 {
			tables = append(tables, pagelens.Table{Index: i, Headers: headers, Rows: rows})
		}
		return true
	})
	return tables
}
