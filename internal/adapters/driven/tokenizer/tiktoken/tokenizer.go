// Package tiktoken provides a Tokenizer adapter backed by tiktoken-go.
package tiktoken

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/corvid-labs/quarry-cli/internal/core/ports/driven"
)

// DefaultEncoding is used when no model-specific encoding is found.
const DefaultEncoding = "cl100k_base"

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// Tokenizer wraps a tiktoken encoding. Construction loads the vocabulary
// and is the expensive step; build one at process start and share it.
type Tokenizer struct {
	encoding string
	tke      *tiktoken.Tiktoken
}

// New creates a tokenizer for the given model or encoding name.
// A known encoding name is used directly; otherwise the name is tried as
// a model name; otherwise the default encoding applies.
func New(modelOrEncoding string) (*Tokenizer, error) {
	if modelOrEncoding == "" {
		modelOrEncoding = DefaultEncoding
	}

	encoding := modelOrEncoding
	tke, err := tiktoken.GetEncoding(modelOrEncoding)
	if err != nil {
		tke, err = tiktoken.EncodingForModel(modelOrEncoding)
		if err != nil {
			encoding = DefaultEncoding
			tke, err = tiktoken.GetEncoding(DefaultEncoding)
			if err != nil {
				return nil, fmt.Errorf("loading default encoding %q: %w", DefaultEncoding, err)
			}
		}
	}

	return &Tokenizer{
		encoding: encoding,
		tke:      tke,
	}, nil
}

// Encode converts text into a token sequence.
func (t *Tokenizer) Encode(text string) []int {
	return t.tke.Encode(text, nil, nil)
}

// Decode converts a token sequence back into text.
func (t *Tokenizer) Decode(tokens []int) string {
	return t.tke.Decode(tokens)
}

// Encoding returns the name of the encoding in use.
func (t *Tokenizer) Encoding() string {
	return t.encoding
}

// Close releases resources. The vocabulary is plain memory; nothing to do.
func (t *Tokenizer) Close() error {
	return nil
}
