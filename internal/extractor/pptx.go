package extractor

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
)

// PPTX extracts slide text from PowerPoint files. Slides are plain zip
// entries holding DrawingML, with text in <a:t> runs.
type PPTX struct{}

func (p *PPTX) Extensions() []string { return []string{".pptx"} }

func (p *PPTX) Extract(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, file := range zr.File {
		if !strings.HasPrefix(file.Name, "ppt/slides/slide") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			continue
		}
		slideData, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}
		runs := tagRuns(string(slideData), "a:t")
		if len(runs) == 0 {
			continue
		}
		text.WriteString(strings.Join(runs, " "))
		text.WriteString("\n")
	}
	return strings.TrimSpace(text.String()), nil
}
