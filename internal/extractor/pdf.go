package extractor

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF extracts the plain text of every page of a PDF document.
type PDF struct{}

func (p *PDF) Extensions() []string { return []string{".pdf"} }

func (p *PDF) Extract(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}
	return strings.TrimSpace(text.String()), nil
}
