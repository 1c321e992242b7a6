package driven

// Tokenizer encodes text into model-specific tokens and back.
// Implementations carry a vocabulary loaded once at process start;
// construction is the heavyweight step, Encode and Decode are cheap.
type Tokenizer interface {
	// Encode converts text into a token sequence.
	Encode(text string) []int

	// Decode converts a token sequence back into text.
	Decode(tokens []int) string

	// Close releases the loaded vocabulary. No-op for most implementations.
	Close() error
}
