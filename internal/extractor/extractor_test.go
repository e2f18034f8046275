package extractor

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_PlainTextExtensions(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"a.txt", "b.md", "c.py", "d.js", "e.html", "f.css", "g.json", "h.xml"} {
		text, err := r.Extract([]byte("hello world"), name)
		require.NoError(t, err, name)
		assert.Equal(t, "hello world", text)
	}
}

func TestRegistry_UnknownExtensionFallsBack(t *testing.T) {
	r := NewRegistry()
	text, err := r.Extract([]byte("raw bytes as text"), "dump.weird")
	require.NoError(t, err)
	assert.Equal(t, "raw bytes as text", text)
}

func TestRegistry_ExtensionCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	text, err := r.Extract([]byte("upper"), "README.TXT")
	require.NoError(t, err)
	assert.Equal(t, "upper", text)
}

func TestPlainText_ReplacesInvalidUTF8(t *testing.T) {
	p := &PlainText{}
	text, err := p.Extract([]byte{'o', 'k', 0xff, 0xfe, '!'})
	require.NoError(t, err)
	assert.Contains(t, text, "ok")
	assert.Contains(t, text, "!")
	assert.True(t, bytes.Contains([]byte(text), []byte("�")))
}

func TestRegistry_MalformedPDF(t *testing.T) {
	r := NewRegistry()
	_, err := r.Extract([]byte("definitely not a pdf"), "broken.pdf")
	require.Error(t, err)

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "broken.pdf", extErr.Filename)
	assert.Contains(t, err.Error(), "broken.pdf")
}

func TestRegistry_MalformedDOCX(t *testing.T) {
	r := NewRegistry()
	_, err := r.Extract([]byte("not a zip archive"), "broken.docx")
	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "broken.docx", extErr.Filename)
}

func TestPPTX_ExtractsSlideText(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	slide, err := zw.Create("ppt/slides/slide1.xml")
	require.NoError(t, err)
	_, err = slide.Write([]byte(`<p:sld><a:t>Hello</a:t><a:t>slides</a:t></p:sld>`))
	require.NoError(t, err)
	other, err := zw.Create("ppt/theme/theme1.xml")
	require.NoError(t, err)
	_, err = other.Write([]byte(`<a:t>ignored</a:t>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	p := &PPTX{}
	text, err := p.Extract(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Hello slides", text)
}

func TestTagRuns(t *testing.T) {
	xmlContent := `<w:p><w:t xml:space="preserve">Hello </w:t><w:t>world</w:t></w:p>`
	runs := tagRuns(xmlContent, "w:t")
	assert.Equal(t, []string{"Hello ", "world"}, runs)
}

func TestTagRuns_NoMatches(t *testing.T) {
	assert.Empty(t, tagRuns("<w:p>no text runs</w:p>", "w:t"))
}
