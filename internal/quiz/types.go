package quiz

import (
	"errors"
	"fmt"
	"slices"
)

// Kind labels what an attempt is used for.
type Kind string

const (
	KindDiagnostic Kind = "diagnostic"
	KindDaily      Kind = "daily"
	KindFinal      Kind = "final"
)

// Question is a single multiple-choice question. Answer holds the text of
// the correct option.
type Question struct {
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
}

var (
	// ErrAnswerCount is returned when the number of answers submitted does
	// not match the number of questions.
	ErrAnswerCount = errors.New("answer count does not match question count")

	// ErrAlreadySubmitted is returned when an attempt is submitted twice.
	ErrAlreadySubmitted = errors.New("attempt already submitted")
)

// Attempt is one sitting of a quiz. Its score is frozen once submitted.
type Attempt struct {
	Kind      Kind       `json:"kind"`
	Day       int        `json:"day,omitempty"`
	Topic     string     `json:"topic,omitempty"`
	Questions []Question `json:"questions"`
	Answers   []string   `json:"answers,omitempty"`
	Score     int        `json:"score"`
	Submitted bool       `json:"submitted"`
}

// NewAttempt starts an unsubmitted attempt over the given questions.
func NewAttempt(kind Kind, questions []Question) Attempt {
	return Attempt{Kind: kind, Questions: cloneQuestions(questions)}
}

// Submit scores the answers and returns the submitted attempt. An attempt
// with no questions accepts an empty answer list and scores 0.
func (a Attempt) Submit(answers []string) (Attempt, error) {
	if a.Submitted {
		return a, ErrAlreadySubmitted
	}
	if len(answers) != len(a.Questions) {
		return a, fmt.Errorf("%w: got %d, want %d", ErrAnswerCount, len(answers), len(a.Questions))
	}
	out := a.Clone()
	out.Answers = slices.Clone(answers)
	out.Score = Score(out.Questions, out.Answers)
	out.Submitted = true
	return out, nil
}

// Total returns the maximum possible score.
func (a Attempt) Total() int {
	return len(a.Questions)
}

// Percent returns the score as a percentage of the total, or 0 for an
// attempt without questions.
func (a Attempt) Percent() float64 {
	if len(a.Questions) == 0 {
		return 0
	}
	return float64(a.Score) / float64(len(a.Questions)) * 100
}

// Clone returns a deep copy of the attempt.
func (a Attempt) Clone() Attempt {
	out := a
	out.Questions = cloneQuestions(a.Questions)
	out.Answers = slices.Clone(a.Answers)
	return out
}

func cloneQuestions(qs []Question) []Question {
	if qs == nil {
		return nil
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = Question{
			Prompt:  q.Prompt,
			Options: slices.Clone(q.Options),
			Answer:  q.Answer,
		}
	}
	return out
}
