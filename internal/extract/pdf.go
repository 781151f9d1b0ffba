package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF extracts text from PDF documents page by page.
type PDF struct{}

// NewPDF creates a PDF extractor.
func NewPDF() *PDF {
	return &PDF{}
}

// Extract reads the document and concatenates every page's text in document
// order, each page followed by a single newline. A page with no extractable
// text (e.g. image-only) still contributes its newline, so a fully scanned
// document yields a string of newlines. An unparsable document is an error.
func (p *PDF) Extract(_ context.Context, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", pageNum, err)
		}
		pages = append(pages, text)
	}
	return joinPages(pages), nil
}

// joinPages appends a newline after each page's text.
func joinPages(pages []string) string {
	var b strings.Builder
	for _, text := range pages {
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String()
}
