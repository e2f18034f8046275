package models

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// number of leading text characters that feed the document id hash
const idContentPrefixLen = 1000

// Document is one ingested file with its chunks and their embeddings.
// Chunks and Embeddings are index-aligned: Embeddings[i] is the vector
// for Chunks[i].
type Document struct {
	ID                string      `json:"id"`
	Filename          string      `json:"filename"`
	Text              string      `json:"text"`
	Chunks            []string    `json:"chunks"`
	Embeddings        [][]float32 `json:"embeddings"`
	UploadTime        time.Time   `json:"upload_time"`
	EmbeddingProvider string      `json:"embedding_provider"`
	EmbeddingModel    string      `json:"embedding_model"`
}

// DocumentSummary is the listing view of a document. Embeddings are
// deliberately left out of listings.
type DocumentSummary struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	ChunkCount int       `json:"chunk_count"`
	UploadTime time.Time `json:"upload_time"`
	Size       int       `json:"size"`
}

// SearchResult is a single retrieved chunk with its similarity score.
type SearchResult struct {
	Chunk      string  `json:"chunk"`
	Similarity float64 `json:"similarity"`
	Document   string  `json:"document"`
	DocID      string  `json:"doc_id"`
	ChunkIndex int     `json:"chunk_index"`
}

// NewDocumentID derives a stable document id from the filename and the
// leading extracted text. Re-uploading an unchanged file yields the same
// id, which makes uploads idempotent.
func NewDocumentID(filename, text string) string {
	prefix := text
	if runes := []rune(text); len(runes) > idContentPrefixLen {
		prefix = string(runes[:idContentPrefixLen])
	}
	sum := md5.Sum([]byte(filename + ":" + prefix))
	return hex.EncodeToString(sum[:])
}
