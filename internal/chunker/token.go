package chunker

import (
	"context"

	"github.com/corvid-labs/quarry-cli/internal/core/ports/driven"
)

// DefaultTokenChunkSize is the default number of tokens per chunk.
const DefaultTokenChunkSize = 200

// DefaultTokenOverlap is the default number of overlapping tokens.
const DefaultTokenOverlap = 50

// Ensure Token implements the interface.
var _ driven.Chunker = (*Token)(nil)

// Token slides a fixed-size window over the tokenised form of the text,
// decoding each window back into text for storage. Sizes are measured in
// tokens of the injected tokenizer's vocabulary, never characters.
type Token struct {
	tokenizer driven.Tokenizer
	chunkSize int
	overlap   int
}

// TokenOption configures the token chunker.
type TokenOption func(*Token)

// WithTokenChunkSize sets the window size in tokens.
func WithTokenChunkSize(size int) TokenOption {
	return func(c *Token) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithTokenOverlap sets the overlap between windows in tokens.
func WithTokenOverlap(overlap int) TokenOption {
	return func(c *Token) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// NewToken creates a token chunker using the given tokenizer.
func NewToken(tokenizer driven.Tokenizer, opts ...TokenOption) *Token {
	c := &Token{
		tokenizer: tokenizer,
		chunkSize: DefaultTokenChunkSize,
		overlap:   DefaultTokenOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Name returns the strategy name.
func (c *Token) Name() string {
	return StrategyToken
}

// Chunk encodes the full text once, then emits one decoded segment per
// window position. The window advances chunkSize-overlap tokens per
// iteration; the final window may hold fewer than chunkSize tokens and
// is still emitted.
func (c *Token) Chunk(_ context.Context, text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	tokens := c.tokenizer.Encode(text)
	total := len(tokens)
	if total == 0 {
		return nil, nil
	}

	step := c.chunkSize - c.overlap
	segments := make([]string, 0, (total/step)+1)

	for start := 0; start < total; start += step {
		end := start + c.chunkSize
		if end > total {
			end = total
		}

		segments = append(segments, c.tokenizer.Decode(tokens[start:end]))

		if end == total {
			break
		}
	}

	return segments, nil
}
