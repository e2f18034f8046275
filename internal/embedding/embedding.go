// Package embedding wraps the external embedding providers. The core
// only depends on the Provider interface; vectors for a document's
// chunks and for queries must come from the same provider so their
// dimensions agree.
package embedding

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"chat-rag/internal/config"
)

// Provider produces embedding vectors for chunks and queries.
type Provider interface {
	Name() string
	Model() string
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

type langchainProvider struct {
	name     string
	model    string
	embedder *embeddings.EmbedderImpl
}

// New builds the provider selected by the config.
func New(cfg config.EmbeddingConfig) (Provider, error) {
	if cfg.Provider == "ollama" {
		return NewOllama(cfg)
	}
	return NewOpenAI(cfg)
}

// NewOpenAI creates a provider backed by an OpenAI-compatible
// embeddings endpoint.
func NewOpenAI(cfg config.EmbeddingConfig) (Provider, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.APIKey, "Bearer ")),
		openai.WithEmbeddingModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, err
	}
	return &langchainProvider{name: "openai", model: cfg.Model, embedder: embedder}, nil
}

// NewOllama creates a provider backed by a local ollama server.
func NewOllama(cfg config.EmbeddingConfig) (Provider, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, err
	}
	return &langchainProvider{name: "ollama", model: cfg.Model, embedder: embedder}, nil
}

func (p *langchainProvider) Name() string  { return p.name }
func (p *langchainProvider) Model() string { return p.model }

func (p *langchainProvider) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	return p.embedder.EmbedDocuments(ctx, texts)
}

func (p *langchainProvider) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return p.embedder.EmbedQuery(ctx, text)
}
