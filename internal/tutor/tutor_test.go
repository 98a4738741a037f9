package tutor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/mentor/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsk_RecordsExchange(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("Force equals mass times acceleration."))
	tut := New(mock)
	tut.Focus("Physics", "9")

	got, err := tut.Ask(context.Background(), "  What is Newton's second law?  ")
	require.NoError(t, err)
	assert.Equal(t, "Force equals mass times acceleration.", got)

	req, ok := mock.LastCall()
	require.True(t, ok)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "What is Newton's second law?", req.Messages[0].Content)
	assert.Contains(t, req.System, "Class 9")
	assert.Contains(t, req.System, "Physics")
	assert.Nil(t, req.Schema)

	recent := tut.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, "What is Newton's second law?", recent[0].Question)
}

func TestAsk_EmptyQuestion(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := New(mock).Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Equal(t, 0, mock.CallCount())
}

func TestAsk_KeepsLastThreeNewestFirst(t *testing.T) {
	mock := llm.NewMockProvider()
	for i := 1; i <= 5; i++ {
		mock.AddResponse(llm.TextResponse(fmt.Sprintf("answer %d", i)))
	}
	tut := New(mock)
	for i := 1; i <= 5; i++ {
		_, err := tut.Ask(context.Background(), fmt.Sprintf("question %d", i))
		require.NoError(t, err)
	}

	recent := tut.Recent()
	require.Len(t, recent, HistorySize)
	assert.Equal(t, "question 5", recent[0].Question)
	assert.Equal(t, "answer 3", recent[2].Answer)
}

func TestAsk_FailureLeavesHistory(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.TextResponse("first"),
		llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("slow down")}},
		llm.MockResponse{Err: errors.New("boom")},
	)
	tut := New(mock)
	_, err := tut.Ask(context.Background(), "one")
	require.NoError(t, err)

	_, err = tut.Ask(context.Background(), "two")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "try again")
	var rl *llm.ErrRateLimit
	assert.ErrorAs(t, err, &rl)

	_, err = tut.Ask(context.Background(), "three")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "try again")

	assert.Len(t, tut.Recent(), 1)
}

func TestClear(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("a"), llm.TextResponse("b"))
	tut := New(mock)
	tut.Focus("Maths", "10")
	_, err := tut.Ask(context.Background(), "q")
	require.NoError(t, err)

	tut.Clear()
	assert.Empty(t, tut.Recent())

	_, err = tut.Ask(context.Background(), "q2")
	require.NoError(t, err)
	req, _ := mock.LastCall()
	assert.NotContains(t, req.System, "Maths")
}
