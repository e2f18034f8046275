package store

import (
	"math"
	"sort"

	"chat-rag/internal/models"
)

// SearchChunks ranks every chunk in the session against the query
// embedding by cosine similarity. Results below the threshold are
// dropped, the rest sorted by similarity descending (stable, no
// secondary key) and truncated to topK. An unknown session yields an
// empty result set.
func (s *Store) SearchChunks(sessionID string, queryEmbedding []float32, topK int, similarityThreshold float64) []models.SearchResult {
	sess := s.getSession(sessionID)
	if sess == nil {
		return []models.SearchResult{}
	}
	sess.mu.RLock()
	defer sess.mu.RUnlock()

	results := []models.SearchResult{}
	for docID, doc := range sess.docs {
		for i, embedding := range doc.Embeddings {
			if i >= len(doc.Chunks) {
				break
			}
			similarity := CosineSimilarity(queryEmbedding, embedding)
			if similarity >= similarityThreshold {
				results = append(results, models.SearchResult{
					Chunk:      doc.Chunks[i],
					Similarity: similarity,
					Document:   doc.Filename,
					DocID:      docID,
					ChunkIndex: i,
				})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if topK >= 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}

// CosineSimilarity returns the normalized dot product of two vectors,
// in [-1, 1]. It is 0 when either vector has zero norm or the lengths
// differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
