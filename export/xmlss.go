package export

import (
	"io"

	"github.com/beevik/etree"
	"github.com/pagelens/pagelens"
)

// SpreadsheetML 2003 namespaces.
const (
	xmlnsSpreadsheet = "urn:schemas-microsoft-com:office:spreadsheet"
	xmlnsOffice      = "urn:schemas-microsoft-com:office:office"
	xmlnsExcel       = "urn:schemas-microsoft-com:office:excel"
)

// WriteSpreadsheet writes rows as a single-worksheet SpreadsheetML 2003
// workbook. Every cell is typed as a string; the header row is bolded.
func WriteSpreadsheet(w io.Writer, sheetName string, rows [][]string) error {
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateProcInst("mso-application", `progid="Excel.Sheet"`)

	workbook := doc.CreateElement("Workbook")
	workbook.CreateAttr("xmlns", xmlnsSpreadsheet)
	workbook.CreateAttr("xmlns:o", xmlnsOffice)
	workbook.CreateAttr("xmlns:x", xmlnsExcel)
	workbook.CreateAttr("xmlns:ss", xmlnsSpreadsheet)

	styles := workbook.CreateElement("Styles")
	header := styles.CreateElement("Style")
	header.CreateAttr("ss:ID", "Header")
	font := header.CreateElement("Font")
	font.CreateAttr("ss:Bold", "1")

	worksheet := workbook.CreateElement("Worksheet")
	worksheet.CreateAttr("ss:Name", sheetName)
	table := worksheet.CreateElement("Table")

	for i, row := range rows {
		rowEl := table.CreateElement("Row")
		for _, cell := range row {
			cellEl := rowEl.CreateElement("Cell")
			if i == 0 {
				cellEl.CreateAttr("ss:StyleID", "Header")
			}
			data := cellEl.CreateElement("Data")
			data.CreateAttr("ss:Type", "String")
			data.SetText(cell)
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return pagelens.Errorf(pagelens.EINTERNAL, "write workbook: %v", err)
	}
	return nil
}
