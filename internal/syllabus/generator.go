package syllabus

import (
	"context"
	"fmt"

	"github.com/abhisek/mentor/internal/llm"
)

// Generator produces the study plan topics for a subject.
type Generator interface {
	// Generate always returns exactly Days topics. A non-nil error reports
	// that the topics are filler rather than generated.
	Generate(ctx context.Context, subject, class string) ([]string, error)
}

// LLMGenerator asks an LLM for syllabus sub-topics.
type LLMGenerator struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

// New creates a topic generator backed by provider.
func New(provider llm.Provider) *LLMGenerator {
	return &LLMGenerator{provider: provider, maxTokens: 1024, temperature: 0.4}
}

const systemPrompt = `You plan revision schedules for CBSE school students. Answer with a plain list, one topic name per line, no commentary.`

// Generate requests Days sub-topics and cleans up the list. On provider
// failure it returns the numbered concept fallback together with the error.
func (g *LLMGenerator) Generate(ctx context.Context, subject, class string) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "study-plan")
	if class == "" {
		class = "10"
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{{
			Role: llm.RoleUser,
			Content: fmt.Sprintf(
				"List exactly %d unique sub-topics from the CBSE Class %s %s syllabus. Format: Topic name only, one per line.",
				Days, class, subject),
		}},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return Fallback(subject), fmt.Errorf("generate topics: %w", err)
	}

	return Fit(ParseTopics(resp.Text()), subject), nil
}
