package export

import (
	"encoding/csv"
	"io"

	"github.com/pagelens/pagelens"
)

// utf8BOM prefixes CSV output so Excel detects UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes rows as CSV with CRLF line endings and a UTF-8 BOM.
func WriteCSV(w io.Writer, rows [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return pagelens.Errorf(pagelens.EINTERNAL, "write bom: %v", err)
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return pagelens.Errorf(pagelens.EINTERNAL, "write row: %v", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return pagelens.Errorf(pagelens.EINTERNAL, "flush csv: %v", err)
	}
	return nil
}
