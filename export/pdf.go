package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/pagelens/pagelens"
)

// WritePDF renders a Markdown report as a simple PDF: headings become
// bold lines, list markers and emphasis are stripped, paragraphs wrap.
// Full Markdown layout is out of scope.
func WritePDF(w io.Writer, markdown string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	scanner := bufio.NewScanner(strings.NewReader(markdown))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			pdf.Ln(4)
			continue
		}

		if strings.HasPrefix(line, "#") {
			level := 0
			for level < len(line) && line[level] == '#' {
				level++
			}
			text := strings.TrimSpace(line[level:])
			if text == "" {
				continue
			}
			size := 16.0
			if level >= 2 {
				size = 13.0
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			continue
		}

		pdf.MultiCell(0, 5, tr(plainText(line)), "", "L", false)
	}
	if err := scanner.Err(); err != nil {
		return pagelens.Errorf(pagelens.EINTERNAL, "scan report: %v", err)
	}

	if err := pdf.Output(w); err != nil {
		return pagelens.Errorf(pagelens.EINTERNAL, "render pdf: %v", err)
	}
	return nil
}

// plainText strips list markers and bold emphasis from a report line.
func plainText(line string) string {
	line = strings.TrimPrefix(line, "- ")
	return strings.ReplaceAll(line, "**", "")
}
