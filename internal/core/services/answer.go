package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/corvid-labs/quarry-cli/internal/core/domain"
	"github.com/corvid-labs/quarry-cli/internal/core/ports/driven"
	"github.com/corvid-labs/quarry-cli/internal/core/ports/driving"
	"github.com/corvid-labs/quarry-cli/internal/logger"
)

var _ driving.Answerer = (*AnswerService)(nil)

const (
	// answerTopK is the number of chunks retrieved per question.
	answerTopK = 3

	// noContextSentinel stands in for the context block when retrieval
	// returns nothing, so the model knows the corpus had no match.
	noContextSentinel = "No relevant documents found."

	promptTemplate = "Context:\n%s\n\nUser Question: %s\n\nAnswer:"
)

// AnswerService answers questions from a collection: retrieve the
// closest chunks, assemble a prompt, and run a single completion.
type AnswerService struct {
	store      driven.CollectionStore
	generator  driven.AnswerGenerator
	collection string
}

// NewAnswerService creates an answerer over the named collection.
func NewAnswerService(
	store driven.CollectionStore,
	generator driven.AnswerGenerator,
	collection string,
) *AnswerService {
	if collection == "" {
		collection = domain.DefaultCollection
	}
	return &AnswerService{
		store:      store,
		generator:  generator,
		collection: collection,
	}
}

// Answer retrieves context for the question and generates a response.
func (s *AnswerService) Answer(ctx context.Context, question string) (string, error) {
	if s.generator == nil {
		return "", domain.ErrGeneratorUnavailable
	}

	results, err := s.store.QueryByText(ctx, s.collection, question, answerTopK)
	if err != nil {
		return "", fmt.Errorf("querying collection %s: %w", s.collection, err)
	}

	contextBlock := noContextSentinel
	if len(results) > 0 {
		texts := make([]string, len(results))
		for i, r := range results {
			texts[i] = r.Record.Text
		}
		contextBlock = strings.Join(texts, "\n")
	}

	prompt := fmt.Sprintf(promptTemplate, contextBlock, question)
	logger.Debug("Prompting %s with %d context chunks", s.generator.ModelName(), len(results))

	answer, err := s.generator.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}
	return answer, nil
}
