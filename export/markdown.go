package export

import (
	"fmt"
	"strings"

	"github.com/pagelens/pagelens"
)

// Report renders an envelope as a Markdown document. Commerce payloads
// become a product table, profile payloads a card view per contact, and
// general payloads an outline of the page.
func Report(env *pagelens.Envelope) string {
	var b strings.Builder

	title := env.PageTitle
	if title == "" {
		title = env.SourceURL
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- Source: %s\n", env.SourceURL)
	fmt.Fprintf(&b, "- Category: %s\n", env.Category)
	fmt.Fprintf(&b, "- Extracted: %s\n\n", env.ExtractedAt.Format("2006-01-02 15:04 MST"))

	if env.Error != "" {
		fmt.Fprintf(&b, "Extraction failed: %s\n", env.Error)
		return b.String()
	}

	switch {
	case len(env.Products) > 0:
		writeProductTable(&b, env.Products)
	case len(env.Profiles) > 0:
		for _, p := range env.Profiles {
			writeProfileCard(&b, p)
		}
	case env.Page != nil:
		writePageOutline(&b, env.Page)
	}
	return b.String()
}

func writeProductTable(b *strings.Builder, products []pagelens.ProductRecord) {
	fmt.Fprintf(b, "## Products (%d)\n\n", len(products))
	b.WriteString("| Name | Price | Currency | Availability | Brand | SKU |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, p := range products {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s |\n",
			cell(p.Name), cell(p.Price), cell(p.Currency),
			cell(p.Availability), cell(p.Brand), cell(p.SKU))
	}
	b.WriteString("\n")
}

func writeProfileCard(b *strings.Builder, p pagelens.ProfileRecord) {
	fmt.Fprintf(b, "## %s\n\n", p.Name)

	fields := []struct{ label, value string }{
		{"Title", p.Title},
		{"Company", p.Company},
		{"Location", p.Location},
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Profile", p.ProfileURL},
		{"Connections", p.ConnectionsCount},
	}
	for _, f := range fields {
		if f.value != "" {
			fmt.Fprintf(b, "- **%s:** %s\n", f.label, f.value)
		}
	}
	b.WriteString("\n")

	if p.About != "" {
		fmt.Fprintf(b, "%s\n\n", p.About)
	}

	if len(p.Experience) > 0 {
		b.WriteString("### Experience\n\n")
		for _, exp := range p.Experience {
			fmt.Fprintf(b, "- %s, %s (%s – %s)\n", exp.Title, exp.Company, exp.StartDate, exp.EndDate)
		}
		b.WriteString("\n")
	}

	if len(p.Education) > 0 {
		b.WriteString("### Education\n\n")
		for _, edu := range p.Education {
			fmt.Fprintf(b, "- %s, %s %s (%s – %s)\n", edu.School, edu.Degree, edu.Field, edu.StartDate, edu.EndDate)
		}
		b.WriteString("\n")
	}

	if len(p.Skills) > 0 {
		fmt.Fprintf(b, "### Skills\n\n%s\n\n", strings.Join(p.Skills, ", "))
	}
}

func writePageOutline(b *strings.Builder, page *pagelens.GeneralPageRecord) {
	if page.Metadata.Description != "" {
		fmt.Fprintf(b, "%s\n\n", page.Metadata.Description)
	}

	if len(page.Headings) > 0 {
		b.WriteString("## Outline\n\n")
		for _, h := range page.Headings {
			fmt.Fprintf(b, "%s %s\n", strings.Repeat("  ", h.Level-1)+"-", h.Text)
		}
		b.WriteString("\n")
	}

	if page.TextContent != "" {
		fmt.Fprintf(b, "## Content\n\n%s\n\n", page.TextContent)
	}

	if len(page.Links) > 0 {
		fmt.Fprintf(b, "## Links (%d)\n\n", len(page.Links))
		for _, l := range page.Links {
			text := l.Text
			if text == "" {
				text = l.URL
			}
			fmt.Fprintf(b, "- [%s](%s)\n", text, l.URL)
		}
		b.WriteString("\n")
	}
}

// cell escapes pipes so a value cannot break the table layout.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
