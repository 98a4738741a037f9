package quiz

import (
	"fmt"
	"strings"
)

// Validator checks a generated question before it is shown to a learner.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in errors and logs.
	Name() string

	// Validate returns nil if q passes.
	Validate(q Question) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const (
	maxPromptLen = 500
	maxOptionLen = 200
	minOptions   = 2
	maxOptions   = 6
)

// StructuralValidator checks that required fields are present and within
// length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q Question) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}

	switch {
	case strings.TrimSpace(q.Prompt) == "":
		return fail("question is empty")
	case len(q.Prompt) > maxPromptLen:
		return fail(fmt.Sprintf("question exceeds %d characters", maxPromptLen))
	case len(q.Options) < minOptions:
		return fail(fmt.Sprintf("need at least %d options, got %d", minOptions, len(q.Options)))
	case len(q.Options) > maxOptions:
		return fail(fmt.Sprintf("at most %d options allowed, got %d", maxOptions, len(q.Options)))
	case strings.TrimSpace(q.Answer) == "":
		return fail("answer is empty")
	}

	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fail(fmt.Sprintf("option %s is empty", OptionLabel(i)))
		}
		if len(opt) > maxOptionLen {
			return fail(fmt.Sprintf("option %s exceeds %d characters", OptionLabel(i), maxOptionLen))
		}
	}
	return nil
}

// DistinctOptionsValidator rejects questions whose options repeat.
type DistinctOptionsValidator struct{}

func (v *DistinctOptionsValidator) Name() string { return "distinct-options" }

func (v *DistinctOptionsValidator) Validate(q Question) *ValidationError {
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if seen[key] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option %q appears more than once", opt),
			}
		}
		seen[key] = true
	}
	return nil
}

// AnswerMatchValidator requires the answer to be exactly one of the options.
type AnswerMatchValidator struct{}

func (v *AnswerMatchValidator) Name() string { return "answer-match" }

func (v *AnswerMatchValidator) Validate(q Question) *ValidationError {
	matches := 0
	for _, opt := range q.Options {
		if CheckAnswer(opt, q) {
			matches++
		}
	}
	if matches != 1 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %q matches %d options, want exactly 1", q.Answer, matches),
		}
	}
	return nil
}
