package driving

import "context"

// Answerer answers a question from retrieved context. Each call is
// independent; no conversation state is kept between questions.
type Answerer interface {
	// Answer retrieves the chunks nearest to the question, builds the
	// prompt, and returns the generator's text verbatim.
	Answer(ctx context.Context, question string) (string, error)
}
