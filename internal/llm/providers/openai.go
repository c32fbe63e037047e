// File path: internal/llm/providers/openai.go
package providers

import (
	"context"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/cjhueck/ga-suche/internal/common"
)

const defaultOpenAIModel = "gpt-4o"

// OpenAIProvider generates text through any OpenAI-compatible chat endpoint
// via langchaingo.
type OpenAIProvider struct {
	model llms.Model
	name  string
}

// NewOpenAIProvider builds a provider from OPENAI_API_KEY plus the optional
// OPENAI_CHAT_MODEL and OPENAI_ENDPOINT overrides.
func NewOpenAIProvider(apiKey string) (*OpenAIProvider, error) {
	logger := common.Logger()
	model := os.Getenv("OPENAI_CHAT_MODEL")
	if model == "" {
		model = defaultOpenAIModel
	}
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
		logger.Info("llm: using custom OpenAI endpoint", "endpoint", endpoint)
		opts = append(opts, openai.WithBaseURL(endpoint))
	}
	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	logger.Info("llm: openai provider configured", "model", model)
	return &OpenAIProvider{model: client, name: "openai"}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	logger := common.Logger()
	logger.Debug("llm: openai generate", "prompt_len", len(prompt), "max_tokens", maxTokens)
	text, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt,
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(0.2),
	)
	if err != nil {
		logger.Error("llm: openai generate failed", "error", err)
		return "", err
	}
	return text, nil
}

func (p *OpenAIProvider) Name() string { return p.name }
