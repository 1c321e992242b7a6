// Package chunker splits extracted text into overlapping chunks.
//
// Two strategies implement the driven.Chunker port: Character splits on
// a character budget with boundary snapping, Token slides a fixed window
// over a tokenised form of the text. Both emit chunks in document order
// with adjacent chunks sharing overlapping content.
package chunker

// Strategy names as used in configuration.
const (
	StrategyCharacter = "character"
	StrategyToken     = "token"
)
