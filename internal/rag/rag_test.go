package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-rag/internal/chunker"
	"chat-rag/internal/config"
	"chat-rag/internal/extractor"
	"chat-rag/internal/store"
)

// fakeProvider returns deterministic vectors: fixed ones for known
// texts, a byte-histogram vector for everything else.
type fakeProvider struct {
	vectors  map[string][]float32
	mismatch bool
}

func (f *fakeProvider) Name() string  { return "fake" }
func (f *fakeProvider) Model() string { return "fake-model" }

func (f *fakeProvider) vec(text string) []float32 {
	if v, ok := f.vectors[text]; ok {
		return v
	}
	v := make([]float32, 3)
	for i, b := range []byte(text) {
		v[i%3] += float32(b)
	}
	return v
}

func (f *fakeProvider) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	if f.mismatch {
		return [][]float32{{1}}, nil
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vec(t)
	}
	return out, nil
}

func (f *fakeProvider) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return f.vec(text), nil
}

func newTestService(t *testing.T, provider *fakeProvider) *Service {
	t.Helper()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	cfg := &config.Config{
		RAG: config.RAGConfig{ChunkSize: 100, ChunkOverlap: 20, TopK: 3, SimilarityThreshold: 0.0},
	}
	return NewService(st, extractor.NewRegistry(), chunker.New(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap), provider, cfg)
}

func TestUpload_TextFile(t *testing.T) {
	svc := newTestService(t, &fakeProvider{})
	text := strings.Repeat("This is a test document. ", 20)

	result, err := svc.Upload(context.Background(), "chat_a", "notes.txt", []byte(text))
	require.NoError(t, err)
	assert.Greater(t, result.Chunks, 1)
	assert.Equal(t, "notes.txt", result.Filename)

	doc, ok := svc.Store().GetDocument("chat_a", result.DocID)
	require.True(t, ok)
	assert.Len(t, doc.Embeddings, len(doc.Chunks))
	assert.Equal(t, "fake", doc.EmbeddingProvider)
	assert.Equal(t, "fake-model", doc.EmbeddingModel)
}

func TestUpload_EmptyFile(t *testing.T) {
	svc := newTestService(t, &fakeProvider{})
	_, err := svc.Upload(context.Background(), "chat_a", "empty.txt", []byte("   \n  "))
	assert.ErrorIs(t, err, ErrNoText)
}

func TestUpload_IdempotentByContentHash(t *testing.T) {
	svc := newTestService(t, &fakeProvider{})
	data := []byte("Stable content for hashing.")

	r1, err := svc.Upload(context.Background(), "chat_a", "stable.txt", data)
	require.NoError(t, err)
	r2, err := svc.Upload(context.Background(), "chat_a", "stable.txt", data)
	require.NoError(t, err)

	assert.Equal(t, r1.DocID, r2.DocID)
	assert.Len(t, svc.Store().ListDocuments("chat_a"), 1)
}

func TestUpload_ExtractionErrorPropagates(t *testing.T) {
	svc := newTestService(t, &fakeProvider{})
	_, err := svc.Upload(context.Background(), "chat_a", "broken.pdf", []byte("not a pdf"))
	var extErr *extractor.ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "broken.pdf", extErr.Filename)
}

func TestUpload_EmbeddingCountMismatch(t *testing.T) {
	svc := newTestService(t, &fakeProvider{mismatch: true})
	text := strings.Repeat("This is a test document. ", 20)
	_, err := svc.Upload(context.Background(), "chat_a", "notes.txt", []byte(text))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}

func TestSearch_RetrievesMostSimilarChunk(t *testing.T) {
	provider := &fakeProvider{vectors: map[string][]float32{
		"Python programming":   {1, 0, 0},
		"JavaScript coding":    {0, 1, 0},
		"tell me about python": {0.9, 0.1, 0},
	}}
	svc := newTestService(t, provider)

	_, err := svc.Upload(context.Background(), "chat_a", "python.txt", []byte("Python programming"))
	require.NoError(t, err)
	_, err = svc.Upload(context.Background(), "chat_a", "js.txt", []byte("JavaScript coding"))
	require.NoError(t, err)

	results, err := svc.Search(context.Background(), "chat_a", "tell me about python", 2, -1)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Python programming", results[0].Chunk)
	assert.Equal(t, "python.txt", results[0].Document)
}

func TestSearch_UnknownSessionIsEmpty(t *testing.T) {
	svc := newTestService(t, &fakeProvider{})
	results, err := svc.Search(context.Background(), "nonexistent_session", "anything", 3, 0.3)
	require.NoError(t, err)
	assert.Empty(t, results)
}
