package llmservice

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"chat-rag/internal/config"
)

// GenerateAnswer sends the prompt to the configured chat model and
// returns the completion text.
func GenerateAnswer(ctx context.Context, llmConfig *config.LLMConfig, prompt string) (string, error) {
	llm, err := openai.New(
		openai.WithBaseURL(llmConfig.BaseURL),
		openai.WithToken(strings.TrimPrefix(llmConfig.APIKey, "Bearer ")),
		openai.WithModel(llmConfig.Model),
	)
	if err != nil {
		return "", err
	}

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}
	res, err := llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return strings.TrimSpace(res.Choices[0].Content), nil
}
