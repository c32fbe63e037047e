// File path: internal/llm/providers/provider.go
package providers

import "context"

// Provider is the text-generation collaborator. Implementations may fail
// (transport errors, non-success responses); callers must recover with a
// deterministic local fallback and never surface the failure as a request
// error.
type Provider interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
	Name() string
}
