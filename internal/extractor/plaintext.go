package extractor

import "strings"

// PlainText decodes bytes as UTF-8, replacing invalid sequences. It is
// both the handler for known text extensions and the fallback for
// anything unrecognized, so it never returns an error.
type PlainText struct{}

func (p *PlainText) Extensions() []string {
	return []string{".txt", ".md", ".py", ".js", ".html", ".css", ".json", ".xml"}
}

func (p *PlainText) Extract(data []byte) (string, error) {
	return strings.ToValidUTF8(string(data), "�"), nil
}
