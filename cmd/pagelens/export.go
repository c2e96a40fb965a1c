package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/export"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	s, err := deps.Scrapes.FindScrapeByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	var out io.Writer
	path := c.Output
	switch path {
	case "-":
		out = deps.Stdout
	case "":
		path = export.Filename(s.Category, c.Format, time.Now())
		fallthrough
	default:
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %q: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	if err := writeExport(out, c.Format, &s.Envelope); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	if path != "-" && c.Output != "-" {
		fmt.Fprintf(deps.Stderr, "wrote %s\n", path)
	}
	return nil
}

func writeExport(w io.Writer, format string, env *pagelens.Envelope) error {
	switch format {
	case "csv":
		return export.WriteCSV(w, export.Flatten(env))
	case "xml":
		return export.WriteSpreadsheet(w, string(env.Category), export.Flatten(env))
	case "md":
		_, err := io.WriteString(w, export.Report(env))
		return err
	case "pdf":
		return export.WritePDF(w, export.Report(env))
	}
	return pagelens.Errorf(pagelens.EINVALID, "unknown format %q", format)
}
