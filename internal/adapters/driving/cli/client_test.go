package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCmd_AnswersUntilExit(t *testing.T) {
	answerer := &fakeAnswerer{answer: "42"}
	withServices(t, &Services{Answerer: answerer})

	in := strings.NewReader("What is the answer?\nexit\n")
	out, err := execute(t, in, "client")
	require.NoError(t, err)

	assert.Equal(t, []string{"What is the answer?"}, answerer.questions)
	assert.Contains(t, out, "Ask a question (or type 'exit' to quit): ")
	assert.Contains(t, out, "Response:\n42")
}

func TestClientCmd_SkipsBlankLines(t *testing.T) {
	answerer := &fakeAnswerer{answer: "ok"}
	withServices(t, &Services{Answerer: answerer})

	in := strings.NewReader("\n   \nreal question\nexit\n")
	_, err := execute(t, in, "client")
	require.NoError(t, err)

	assert.Equal(t, []string{"real question"}, answerer.questions)
}

func TestClientCmd_StopsOnEOF(t *testing.T) {
	answerer := &fakeAnswerer{answer: "ok"}
	withServices(t, &Services{Answerer: answerer})

	in := strings.NewReader("only question\n")
	_, err := execute(t, in, "client")
	require.NoError(t, err)

	assert.Equal(t, []string{"only question"}, answerer.questions)
}

func TestClientCmd_PropagatesError(t *testing.T) {
	answerer := &fakeAnswerer{err: errors.New("model offline")}
	withServices(t, &Services{Answerer: answerer})

	in := strings.NewReader("q\n")
	_, err := execute(t, in, "client")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model offline")
}
