// Package tutor answers free-form study questions through the LLM.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/mentor/internal/llm"
)

// HistorySize is the number of exchanges kept.
const HistorySize = 3

// ErrEmptyQuestion is returned by Ask for a blank question.
var ErrEmptyQuestion = errors.New("question is empty")

// Exchange is one answered question.
type Exchange struct {
	Question string
	Answer   string
	At       time.Time
}

// Tutor holds a short rolling history. Each question is sent on its own;
// the history is for display only.
type Tutor struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
	now         func() time.Time

	mu      sync.Mutex
	subject string
	class   string
	history []Exchange
}

// New creates a Tutor backed by provider.
func New(provider llm.Provider) *Tutor {
	return &Tutor{
		provider:    provider,
		maxTokens:   800,
		temperature: 0.3,
		now:         time.Now,
	}
}

// Focus sets the subject and class used to frame answers. Either may be
// empty.
func (t *Tutor) Focus(subject, class string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subject, t.class = subject, class
}

// Ask sends question to the model and records the exchange. A failed call
// leaves the history unchanged.
func (t *Tutor) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	t.mu.Lock()
	system := t.systemPrompt()
	t.mu.Unlock()

	resp, err := t.provider.Generate(llm.WithPurpose(ctx, "tutor"), llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: question}},
		MaxTokens:   t.maxTokens,
		Temperature: t.temperature,
	})
	if err != nil {
		if llm.IsTransient(err) {
			return "", fmt.Errorf("tutor is busy, try again shortly: %w", err)
		}
		return "", fmt.Errorf("ask tutor: %w", err)
	}

	answer := resp.Text()
	if answer == "" {
		return "", errors.New("ask tutor: empty reply")
	}

	t.mu.Lock()
	t.history = append(t.history, Exchange{Question: question, Answer: answer, At: t.now()})
	if len(t.history) > HistorySize {
		t.history = t.history[len(t.history)-HistorySize:]
	}
	t.mu.Unlock()
	return answer, nil
}

// Recent returns the kept exchanges, newest first.
func (t *Tutor) Recent() []Exchange {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Exchange, len(t.history))
	for i, ex := range t.history {
		out[len(t.history)-1-i] = ex
	}
	return out
}

// Clear drops the history and the focus.
func (t *Tutor) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history = nil
	t.subject, t.class = "", ""
}

func (t *Tutor) systemPrompt() string {
	var b strings.Builder
	b.WriteString("You are a patient tutor for CBSE school students. Answer in plain text, briefly and accurately. Use short worked examples where they help.")
	if t.class != "" {
		fmt.Fprintf(&b, " The student is in Class %s.", t.class)
	}
	if t.subject != "" {
		fmt.Fprintf(&b, " They are currently revising %s.", t.subject)
	}
	return b.String()
}
