package driven

import "context"

// LLMService provides language model operations for document understanding.
//
// Implementations may include:
//   - DashScope (qwen family)
//   - OpenAI-compatible inference servers
//   - Ollama (local models)
type LLMService interface {
	// Generate produces a text completion from a single prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Summarise creates a concise summary of document content.
	// The raw completion is returned verbatim as the summary text.
	Summarise(ctx context.Context, content string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}
