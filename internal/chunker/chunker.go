// Package chunker splits extracted text into overlapping windows sized
// in characters. It is a greedy single-pass splitter: each window is cut
// at the latest sentence boundary in the back half of the window, then
// at the latest whitespace, then hard at the size limit.
package chunker

import (
	"strings"
	"unicode"
)

const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

func New(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = DefaultChunkOverlap
	}
	return &Chunker{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

// Chunk splits text into overlapping chunks. Empty input yields no
// chunks; input shorter than the chunk size yields a single trimmed
// chunk.
func (c *Chunker) Chunk(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	textLen := len(runes)

	var chunks []string
	start := 0
	for start < textLen {
		end := start + c.chunkSize

		// Not the last chunk: seek a boundary backward, but never
		// past the midpoint of the window.
		if end < textLen {
			cut := -1
			for i := end; i > start+c.chunkSize/2; i-- {
				if isSentenceEnd(runes[i]) {
					cut = i + 1
					break
				}
			}
			if cut < 0 {
				for i := end; i > start+c.chunkSize/2; i-- {
					if unicode.IsSpace(runes[i]) {
						cut = i
						break
					}
				}
			}
			if cut >= 0 {
				end = cut
			}
		}

		sliceEnd := end
		if sliceEnd > textLen {
			sliceEnd = textLen
		}
		chunk := strings.TrimSpace(string(runes[start:sliceEnd]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		// Advance with overlap. When the overlap would stall the
		// cursor (overlap too large for the window), skip it.
		start = end - c.chunkOverlap
		if start <= end-c.chunkSize+c.chunkOverlap {
			start = end
		}
	}

	return chunks
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '\n'
}
