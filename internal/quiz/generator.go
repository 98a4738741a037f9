package quiz

import (
	"context"
	"errors"
)

// ErrNoValidQuestions is returned when generation produced nothing usable.
var ErrNoValidQuestions = errors.New("no valid questions generated")

// Request describes the quiz to generate.
type Request struct {
	Subject string
	// Topic narrows the quiz to one study plan topic. Empty for
	// subject-wide quizzes.
	Topic string
	// Class is the school class (9-12) the questions are pitched at.
	Class string
	Count int
	Kind  Kind
}

// Generator produces multiple-choice questions.
type Generator interface {
	// Generate returns up to req.Count validated questions. It may return
	// fewer than requested; it returns an error when none are usable.
	Generate(ctx context.Context, req Request) ([]Question, error)
}
