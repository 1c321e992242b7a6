package driven

import "context"

// AnswerGenerator turns a fully built prompt into natural-language text.
//
// Implementations may include:
//   - Ollama (local models)
//   - OpenAI-compatible inference servers
type AnswerGenerator interface {
	// Complete produces a text completion for the prompt. Called exactly
	// once per question; no retries, no streaming.
	Complete(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
