// File path: internal/llm/providers/anthropic.go
package providers

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/cjhueck/ga-suche/internal/common"
)

const defaultAnthropicModel = "claude-sonnet-4-20250514"

// AnthropicProvider generates text through the Anthropic messages API via
// langchaingo.
type AnthropicProvider struct {
	model llms.Model
	name  string
}

// NewAnthropicProvider builds a provider from ANTHROPIC_API_KEY and the
// optional ANTHROPIC_MODEL override.
func NewAnthropicProvider(apiKey string) (*AnthropicProvider, error) {
	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = defaultAnthropicModel
	}
	client, err := anthropic.New(
		anthropic.WithToken(apiKey),
		anthropic.WithModel(model),
	)
	if err != nil {
		return nil, err
	}
	common.Logger().Info("llm: anthropic provider configured", "model", model)
	return &AnthropicProvider{model: client, name: "anthropic"}, nil
}

func (p *AnthropicProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	logger := common.Logger()
	logger.Debug("llm: anthropic generate", "prompt_len", len(prompt), "max_tokens", maxTokens)
	text, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt,
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(0.2),
	)
	if err != nil {
		logger.Error("llm: anthropic generate failed", "error", err)
		return "", err
	}
	return text, nil
}

func (p *AnthropicProvider) Name() string { return p.name }
