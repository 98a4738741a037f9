package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/abhisek/mentor/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// setOutput is the raw LLM response before validation.
type setOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Generate produces up to req.Count validated questions.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) ([]Question, error) {
	if req.Count <= 0 {
		return nil, nil
	}
	ctx = llm.WithPurpose(ctx, "quiz-"+string(req.Kind))

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw setOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	questions := make([]Question, 0, req.Count)
	seen := make(map[string]bool)
	for i, out := range raw.Questions {
		q := normalize(out)
		if verr := g.validate(q); verr != nil {
			slog.Debug("dropping generated question", "index", i, "kind", req.Kind, "error", verr)
			continue
		}
		key := strings.ToLower(q.Prompt)
		if seen[key] {
			continue
		}
		seen[key] = true
		questions = append(questions, q)
		if len(questions) == req.Count {
			break
		}
	}

	if len(questions) == 0 {
		return nil, ErrNoValidQuestions
	}
	if len(questions) < req.Count {
		slog.Warn("quiz generated short", "kind", req.Kind, "want", req.Count, "got", len(questions))
	}
	return questions, nil
}

func (g *LLMGenerator) validate(q Question) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}

var optionPrefix = regexp.MustCompile(`^\(?[A-Da-d][\).:]\s+`)

// normalize strips letter prefixes from options and resolves an answer given
// as a letter or number to the option text.
func normalize(out questionOutput) Question {
	q := Question{
		Prompt:  strings.TrimSpace(out.Question),
		Options: make([]string, len(out.Options)),
		Answer:  strings.TrimSpace(out.Answer),
	}
	for i, opt := range out.Options {
		q.Options[i] = strings.TrimSpace(optionPrefix.ReplaceAllString(strings.TrimSpace(opt), ""))
	}
	q.Answer = ResolveAnswer(q, optionPrefix.ReplaceAllString(q.Answer, ""))
	return q
}
