// Package rag ties the pipeline together: extract text from an upload,
// chunk it, embed the chunks, store the document, and answer queries
// with retrieved context.
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"chat-rag/internal/chunker"
	"chat-rag/internal/config"
	"chat-rag/internal/embedding"
	"chat-rag/internal/extractor"
	"chat-rag/internal/llmservice"
	"chat-rag/internal/models"
	"chat-rag/internal/store"
)

var (
	ErrNoText   = errors.New("no text could be extracted from the document")
	ErrNoChunks = errors.New("could not create chunks from document")
)

type Service struct {
	store      *store.Store
	extractors *extractor.Registry
	chunker    *chunker.Chunker
	provider   embedding.Provider
	llmConfig  config.LLMConfig

	topK                int
	similarityThreshold float64
}

func NewService(st *store.Store, extractors *extractor.Registry, ch *chunker.Chunker, provider embedding.Provider, cfg *config.Config) *Service {
	return &Service{
		store:               st,
		extractors:          extractors,
		chunker:             ch,
		provider:            provider,
		llmConfig:           cfg.LLM,
		topK:                cfg.RAG.TopK,
		similarityThreshold: cfg.RAG.SimilarityThreshold,
	}
}

// Store exposes the underlying document store to the serving layer.
func (s *Service) Store() *store.Store { return s.store }

type UploadResult struct {
	DocID    string `json:"doc_id"`
	Filename string `json:"filename"`
	Chunks   int    `json:"chunks"`
}

// Upload runs the ingestion pipeline for one file and stores the
// resulting document under the session. The document id is derived from
// filename and leading content, so re-uploading an unchanged file
// overwrites in place.
func (s *Service) Upload(ctx context.Context, sessionID, filename string, data []byte) (*UploadResult, error) {
	text, err := s.extractors.Extract(data, filename)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	chunks := s.chunker.Chunk(text)
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}

	vectors, err := s.provider.EmbedTexts(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, errors.New("embedding count mismatch")
	}

	doc := models.Document{
		ID:                models.NewDocumentID(filename, text),
		Filename:          filename,
		Text:              text,
		Chunks:            chunks,
		Embeddings:        vectors,
		UploadTime:        time.Now(),
		EmbeddingProvider: s.provider.Name(),
		EmbeddingModel:    s.provider.Model(),
	}
	s.store.AddDocument(sessionID, doc)

	log.Info().
		Str("session", sessionID).
		Str("doc_id", doc.ID).
		Str("filename", filename).
		Int("chunks", len(chunks)).
		Msg("document ingested")

	return &UploadResult{DocID: doc.ID, Filename: filename, Chunks: len(chunks)}, nil
}

// Search embeds the query and returns the session's most similar
// chunks. topK <= 0 and threshold < 0 select the configured defaults.
func (s *Service) Search(ctx context.Context, sessionID, query string, topK int, threshold float64) ([]models.SearchResult, error) {
	queryEmbedding, err := s.provider.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if topK <= 0 {
		topK = s.topK
	}
	if threshold < 0 {
		threshold = s.similarityThreshold
	}
	return s.store.SearchChunks(sessionID, queryEmbedding, topK, threshold), nil
}

type AnswerResult struct {
	Answer     string   `json:"answer"`
	ChunksUsed int      `json:"chunks_used"`
	Sources    []string `json:"sources"`
}

// Answer retrieves context for the question and asks the chat model.
// When retrieval finds nothing (or fails), the question goes to the
// model unaugmented; retrieval problems never fail the chat.
func (s *Service) Answer(ctx context.Context, sessionID, question string, topK int) (*AnswerResult, error) {
	results, err := s.Search(ctx, sessionID, question, topK, -1)
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("retrieval failed, answering without context")
		results = nil
	}

	prompt := question
	var sources []string
	if len(results) > 0 {
		parts := make([]string, len(results))
		for i, r := range results {
			parts[i] = fmt.Sprintf("[From %s]\n%s", r.Document, r.Chunk)
			sources = append(sources, r.Document)
		}
		contextText := strings.Join(parts, models.ContextSeparator)
		prompt = fmt.Sprintf(models.AnswerPromptTemplate, contextText, question)
	}

	answer, err := llmservice.GenerateAnswer(ctx, &s.llmConfig, prompt)
	if err != nil {
		return nil, err
	}
	return &AnswerResult{
		Answer:     answer,
		ChunksUsed: len(results),
		Sources:    sources,
	}, nil
}
