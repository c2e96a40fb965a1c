package pagelens

// Hard caps enforced by the general extractor.
const (
	MaxHeadings     = 50
	MaxHeadingText  = 200
	MaxTextContent  = 50000
	MaxLinks        = 500
	MaxLinkText     = 200
	MaxImages       = 200
	MaxTables       = 20
	MaxTableRows    = 100
	MaxHeadingLevel = 4
)

// PageMetadata holds the metadata tags of a generic page.
type PageMetadata struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Keywords      string `json:"keywords"`
	OGTitle       string `json:"ogTitle"`
	OGDescription string `json:"ogDescription"`
	Author        string `json:"author"`
	URL           string `json:"url"`
}

// Heading is a document heading, levels 1 through 4.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link is an absolute http(s) link with its anchor text.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Image is an image with a resolvable absolute source.
type Image struct {
	Alt    string `json:"alt"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Table is an extracted HTML table. The header row comes from <thead> or
// the first row; body rows are capped at MaxTableRows.
type Table struct {
	Index   int        `json:"index"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// GeneralPageRecord is the single-pass extraction result for a generic
// page: metadata, headings, visible text, links, images and tables, each
// subject to the caps above. Links and images are deduplicated by URL in
// document order.
type GeneralPageRecord struct {
	Metadata    PageMetadata `json:"metadata"`
	Headings    []Heading    `json:"headings"`
	TextContent string       `json:"textContent"`
	Links       []Link       `json:"links"`
	Images      []Image      `json:"images"`
	Tables      []Table      `json:"tables"`
}
