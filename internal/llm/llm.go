// File path: internal/llm/llm.go
package llm

import (
	"os"
	"strings"

	"github.com/cjhueck/ga-suche/internal/common"
	"github.com/cjhueck/ga-suche/internal/llm/providers"
)

type Provider = providers.Provider

// NewProvider selects a text-generation backend from the environment:
// ANTHROPIC_API_KEY first, then OPENAI_API_KEY. With neither set it returns
// nil and callers use their deterministic fallbacks.
func NewProvider() Provider {
	logger := common.Logger()
	if apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")); apiKey != "" {
		provider, err := providers.NewAnthropicProvider(apiKey)
		if err != nil {
			logger.Error("llm: anthropic provider init failed", "error", err)
		} else {
			logger.Info("llm: anthropic provider selected")
			return provider
		}
	}
	if apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); apiKey != "" {
		provider, err := providers.NewOpenAIProvider(apiKey)
		if err != nil {
			logger.Error("llm: openai provider init failed", "error", err)
		} else {
			logger.Info("llm: openai provider selected")
			return provider
		}
	}
	logger.Warn("llm: no API key configured; analyses and summaries use local fallbacks")
	return nil
}
