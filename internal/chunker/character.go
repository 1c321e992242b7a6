package chunker

import (
	"context"

	"github.com/corvid-labs/quarry-cli/internal/core/ports/driven"
)

// DefaultCharChunkSize is the default number of characters per chunk.
const DefaultCharChunkSize = 1000

// DefaultCharOverlap is the default number of overlapping characters.
const DefaultCharOverlap = 100

// Ensure Character implements the interface.
var _ driven.Chunker = (*Character)(nil)

// Character splits text on a character budget, preferring paragraph,
// line, sentence, and word boundaries over hard cuts. Sizes are measured
// in characters (runes), never tokens.
type Character struct {
	chunkSize int
	overlap   int
}

// CharOption configures the character chunker.
type CharOption func(*Character)

// WithCharChunkSize sets the chunk size in characters.
func WithCharChunkSize(size int) CharOption {
	return func(c *Character) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithCharOverlap sets the overlap between chunks in characters.
func WithCharOverlap(overlap int) CharOption {
	return func(c *Character) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// NewCharacter creates a character chunker with the given options.
func NewCharacter(opts ...CharOption) *Character {
	c := &Character{
		chunkSize: DefaultCharChunkSize,
		overlap:   DefaultCharOverlap,
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
func (c *Character) Name() string {
	return StrategyCharacter
}

// Chunk splits text into ordered, overlapping segments. Each segment is
// at most chunkSize characters; the next segment starts overlap
// characters before the previous segment's end, so adjacent segments
// intentionally share content. Boundary snapping can shorten a segment
// below the budget.
func (c *Character) Chunk(_ context.Context, text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	total := len(runes)

	estimated := (total / (c.chunkSize - c.overlap)) + 1
	segments := make([]string, 0, estimated)

	start := 0
	for start < total {
		end := start + c.chunkSize
		if end >= total {
			segments = append(segments, string(runes[start:total]))
			break
		}

		// Prefer a natural boundary inside the window over a hard cut.
		end = snapToBoundary(runes, start, end)
		segments = append(segments, string(runes[start:end]))

		next := end - c.overlap
		if next <= start {
			// Overlap would stall the window on a short segment.
			next = end
		}
		start = next
	}

	return segments, nil
}

// boundary scan order: paragraph break, line break, sentence end, word gap.
type boundaryFunc func(runes []rune, i int) (cutAfter int, ok bool)

var boundaries = []boundaryFunc{
	func(r []rune, i int) (int, bool) { // paragraph
		if i > 0 && r[i] == '\n' && r[i-1] == '\n' {
			return i + 1, true
		}
		return 0, false
	},
	func(r []rune, i int) (int, bool) { // line
		if r[i] == '\n' {
			return i + 1, true
		}
		return 0, false
	},
	func(r []rune, i int) (int, bool) { // sentence
		if r[i] == '.' && i+1 < len(r) && r[i+1] == ' ' {
			return i + 2, true
		}
		return 0, false
	},
	func(r []rune, i int) (int, bool) { // word
		if r[i] == ' ' {
			return i + 1, true
		}
		return 0, false
	},
}

// snapToBoundary moves end backwards to the nearest boundary within the
// window, trying boundary kinds in preference order. When no boundary
// exists past the window's start, the hard cut at end stands.
func snapToBoundary(runes []rune, start, end int) int {
	for _, boundary := range boundaries {
		for i := end - 1; i > start; i-- {
			if cut, ok := boundary(runes, i); ok && cut > start && cut <= end {
				return cut
			}
		}
	}
	return end
}
