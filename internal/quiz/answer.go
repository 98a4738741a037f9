package quiz

import (
	"strconv"
	"strings"
)

// CheckAnswer reports whether answer matches the question's correct option.
// Comparison ignores surrounding whitespace and case. An empty answer never
// matches.
func CheckAnswer(answer string, q Question) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	return strings.EqualFold(answer, strings.TrimSpace(q.Answer))
}

// Score counts the answers that match their question. Missing answers count
// as wrong and extra answers are ignored, so the result is always within
// 0..len(questions).
func Score(questions []Question, answers []string) int {
	score := 0
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		if CheckAnswer(answers[i], q) {
			score++
		}
	}
	return score
}

// ResolveAnswer maps a learner's selection onto option text. The input may
// be the option text itself, a 1-based option number, or an option letter
// (A, B, ...). Anything else is returned trimmed and unchanged.
func ResolveAnswer(q Question, input string) string {
	input = strings.TrimSpace(input)
	for _, opt := range q.Options {
		if strings.EqualFold(strings.TrimSpace(opt), input) {
			return opt
		}
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1]
	}
	if len(input) == 1 {
		idx := int(strings.ToUpper(input)[0]) - 'A'
		if idx >= 0 && idx < len(q.Options) {
			return q.Options[idx]
		}
	}
	return input
}

// ResolveAnswers applies ResolveAnswer pairwise. Answers beyond the number
// of questions are passed through unchanged.
func ResolveAnswers(questions []Question, answers []string) []string {
	out := make([]string, len(answers))
	for i, a := range answers {
		if i < len(questions) {
			out[i] = ResolveAnswer(questions[i], a)
			continue
		}
		out[i] = a
	}
	return out
}

// OptionLabel returns the letter label for the option at index i.
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}
