package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func languageDocStore(t *testing.T) *Store {
	t.Helper()
	s, _ := newTestStore(t)
	doc := testDocument(
		"languages.txt",
		"Python programming. JavaScript coding. Java development.",
		[]string{"Python programming", "JavaScript coding", "Java development"},
		[][]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	)
	s.AddDocument("chat_a", doc)
	return s
}

func TestSearchChunks_RankedTopK(t *testing.T) {
	s := languageDocStore(t)

	results := s.SearchChunks("chat_a", []float32{0.9, 0.1, 0.0}, 2, 0.0)
	require.Len(t, results, 2)
	assert.Equal(t, "Python programming", results[0].Chunk)
	assert.InDelta(t, 0.994, results[0].Similarity, 0.001)
	assert.Equal(t, "languages.txt", results[0].Document)
	assert.Equal(t, 0, results[0].ChunkIndex)
	assert.GreaterOrEqual(t, results[0].Similarity, results[1].Similarity)
}

func TestSearchChunks_Threshold(t *testing.T) {
	s := languageDocStore(t)

	results := s.SearchChunks("chat_a", []float32{1, 0, 0}, 10, 0.5)
	require.Len(t, results, 1)
	assert.Equal(t, "Python programming", results[0].Chunk)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Similarity, 0.5)
	}
}

func TestSearchChunks_UnknownSession(t *testing.T) {
	s, _ := newTestStore(t)
	results := s.SearchChunks("nonexistent_session", []float32{0.1, 0.2}, 3, 0.3)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchChunks_SortedDescending(t *testing.T) {
	s := languageDocStore(t)

	results := s.SearchChunks("chat_a", []float32{0.7, 0.5, 0.1}, 3, -1)
	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identity", []float32{0.3, 0.4, 0.5}, []float32{0.3, 0.4, 0.5}, 1.0},
		{"zero vector", []float32{1, 2, 3}, []float32{0, 0, 0}, 0.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"length mismatch", []float32{1, 0}, []float32{1, 0, 0}, 0.0},
		{"both empty", nil, nil, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-6)
		})
	}
}
