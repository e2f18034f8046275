package extractor

import (
	"bytes"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// DOCX extracts paragraph text from Word documents. Legacy .doc files
// share the extension mapping; the decoder rejects them with an error.
type DOCX struct{}

func (d *DOCX) Extensions() []string { return []string{".doc", ".docx"} }

func (d *DOCX) Extract(data []byte) (string, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer r.Close()

	content := r.Editable().GetContent()

	// The editable content is WordprocessingML. Text lives in <w:t>
	// runs, one or more per <w:p> paragraph.
	var text strings.Builder
	for _, para := range strings.Split(content, "</w:p>") {
		runs := tagRuns(para, "w:t")
		if len(runs) == 0 {
			continue
		}
		text.WriteString(strings.Join(runs, ""))
		text.WriteString("\n")
	}
	return strings.TrimSpace(text.String()), nil
}

// tagRuns returns the character data of every <tag ...>...</tag> element
// in the given XML fragment.
func tagRuns(xmlContent, tag string) []string {
	var runs []string
	parts := strings.Split(xmlContent, "<"+tag)
	for i, part := range parts {
		if i == 0 {
			continue
		}
		openEnd := strings.Index(part, ">")
		if openEnd < 0 {
			continue
		}
		rest := part[openEnd+1:]
		closeIdx := strings.Index(rest, "</"+tag+">")
		if closeIdx >= 0 {
			runs = append(runs, rest[:closeIdx])
		}
	}
	return runs
}
