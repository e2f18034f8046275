// Package extractor converts uploaded file bytes into plain text.
//
// Each supported format is an Extractor variant registered by file
// extension. Unrecognized extensions fall back to plain text decoding,
// so adding a format means adding a variant, not another switch arm.
package extractor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Extractor decodes one family of file formats into plain text.
type Extractor interface {
	// Extensions lists the lower-case file extensions (with dot) this
	// extractor handles.
	Extensions() []string
	Extract(data []byte) (string, error)
}

// ExtractionError reports that a format-specific decoder rejected the
// file contents.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("error extracting text from %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Registry dispatches extraction by file extension.
type Registry struct {
	byExt    map[string]Extractor
	fallback Extractor
}

// NewRegistry returns a registry with all built-in extractors.
func NewRegistry() *Registry {
	plain := &PlainText{}
	r := &Registry{
		byExt:    make(map[string]Extractor),
		fallback: plain,
	}
	r.Register(plain)
	r.Register(&PDF{})
	r.Register(&DOCX{})
	r.Register(&PPTX{})
	r.Register(&XLSX{})
	r.Register(&ODS{})
	return r
}

// Register adds an extractor for all extensions it reports. Later
// registrations win on conflict.
func (r *Registry) Register(e Extractor) {
	for _, ext := range e.Extensions() {
		r.byExt[ext] = e
	}
}

// Extract converts file bytes to plain text, dispatching on the filename
// extension. Decoder failures are wrapped in an ExtractionError; the
// plain text fallback never fails.
func (r *Registry) Extract(data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	e, ok := r.byExt[ext]
	if !ok {
		e = r.fallback
	}
	text, err := e.Extract(data)
	if err != nil {
		return "", &ExtractionError{Filename: filename, Err: err}
	}
	return text, nil
}
