// Package export serializes extraction envelopes into tabular and
// document formats: CSV, SpreadsheetML workbooks, Markdown reports and
// PDF renderings of those reports.
package export

import (
	"fmt"
	"time"

	"github.com/pagelens/pagelens"
)

// maxCellContent caps the visible-text cell in the metadata fallback so a
// single cell cannot dominate the sheet.
const maxCellContent = 30000

// Column headers for the tabular payloads.
var (
	productHeaders = []string{"Name", "Price", "Currency", "Description", "Image URL", "Rating", "Reviews", "Availability", "Brand", "SKU"}
	profileHeaders = []string{"Name", "Title", "Company", "Location", "Email", "Phone", "Profile URL", "About", "Connections"}
	linkHeaders    = []string{"Link Text", "URL"}
)

// Flatten converts an envelope's payload into a header row plus data
// rows. Commerce and profile payloads map one record per row. General
// payloads export the first extracted table if one exists, otherwise the
// links, otherwise a property/value listing of the page metadata followed
// by the visible text.
func Flatten(env *pagelens.Envelope) [][]string {
	switch {
	case env.Category == pagelens.CategoryEcommerce && len(env.Products) > 0:
		return flattenProducts(env.Products)
	case env.Category == pagelens.CategoryProfile && len(env.Profiles) > 0:
		return flattenProfiles(env.Profiles)
	case env.Page != nil:
		return flattenPage(env.Page)
	}
	return [][]string{{"Property", "Value"}}
}

func flattenProducts(products []pagelens.ProductRecord) [][]string {
	rows := [][]string{productHeaders}
	for _, p := range products {
		rows = append(rows, []string{
			p.Name, p.Price, p.Currency, p.Description, p.ImageURL,
			p.Rating, p.ReviewCount, p.Availability, p.Brand, p.SKU,
		})
	}
	return rows
}

func flattenProfiles(profiles []pagelens.ProfileRecord) [][]string {
	rows := [][]string{profileHeaders}
	for _, p := range profiles {
		rows = append(rows, []string{
			p.Name, p.Title, p.Company, p.Location, p.Email, p.Phone,
			p.ProfileURL, p.About, p.ConnectionsCount,
		})
	}
	return rows
}

func flattenPage(page *pagelens.GeneralPageRecord) [][]string {
	if len(page.Tables) > 0 {
		t := page.Tables[0]
		if len(t.Headers) > 0 {
			return append([][]string{t.Headers}, t.Rows...)
		}
		return t.Rows
	}

	if len(page.Links) > 0 {
		rows := [][]string{linkHeaders}
		for _, l := range page.Links {
			rows = append(rows, []string{l.Text, l.URL})
		}
		return rows
	}

	rows := [][]string{{"Property", "Value"}}
	meta := []struct{ key, val string }{
		{"title", page.Metadata.Title},
		{"description", page.Metadata.Description},
		{"keywords", page.Metadata.Keywords},
		{"ogTitle", page.Metadata.OGTitle},
		{"ogDescription", page.Metadata.OGDescription},
		{"author", page.Metadata.Author},
		{"url", page.Metadata.URL},
	}
	for _, m := range meta {
		if m.val != "" {
			rows = append(rows, []string{m.key, m.val})
		}
	}
	rows = append(rows, []string{"Content", pagelens.Clip(page.TextContent, maxCellContent)})
	return rows
}

// Filename builds a download-style file name for an envelope export:
// "<category>-<date>-<millis>.<ext>".
func Filename(category pagelens.SiteCategory, ext string, now time.Time) string {
	name := string(category)
	if name == "" {
		name = "scrape"
	}
	return fmt.Sprintf("%s-%s-%d.%s", name, now.Format("2006-01-02"), now.UnixMilli(), ext)
}
