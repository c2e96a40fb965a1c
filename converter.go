package pagelens

// Converter transforms HTML content into Markdown. The general extractor
// and the export report renderer use it to turn HTML fragments into
// readable text.
type Converter interface {
	Convert(html string) (markdown string, err error)
}
