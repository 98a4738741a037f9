package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/abhisek/mentor/internal/llm"
	"github.com/abhisek/mentor/internal/quiz"
	"github.com/abhisek/mentor/internal/store"
	"github.com/abhisek/mentor/internal/syllabus"
	"github.com/abhisek/mentor/internal/tutor"
	"github.com/abhisek/mentor/internal/workflow"
)

// llmConfig builds the provider configuration. Explicit settings win over
// the providers' conventional API key variables.
func llmConfig(v *viper.Viper) llm.Config {
	cfg, ok := llm.DiscoverConfig()
	if !ok {
		cfg = llm.DefaultConfig()
	}
	if p := v.GetString("llm-provider"); p != "" {
		cfg.Provider = p
	}

	override := func(dst *string, key string) {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
	override(&cfg.Groq.APIKey, "groq-api-key")
	override(&cfg.Groq.Model, "groq-model")
	override(&cfg.Anthropic.APIKey, "anthropic-api-key")
	override(&cfg.Anthropic.Model, "anthropic-model")
	override(&cfg.OpenAI.APIKey, "openai-api-key")
	override(&cfg.OpenAI.Model, "openai-model")
	override(&cfg.OpenAI.BaseURL, "openai-base-url")
	override(&cfg.Gemini.APIKey, "gemini-api-key")
	override(&cfg.Gemini.Model, "gemini-model")
	override(&cfg.OpenRouter.APIKey, "openrouter-api-key")
	override(&cfg.OpenRouter.Model, "openrouter-model")

	if d := v.GetDuration("llm-timeout"); d > 0 {
		cfg.Timeout = d
	}
	if n := v.GetInt("llm-retries"); n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	return cfg
}

// workflowConfig reads the quiz sizes and the starting class.
func workflowConfig(v *viper.Viper) (workflow.Config, error) {
	cfg := workflow.DefaultConfig()
	if n := v.GetInt("diagnostic-count"); n > 0 {
		cfg.DiagnosticCount = n
	}
	if n := v.GetInt("daily-count"); n > 0 {
		cfg.DailyCount = n
	}
	if n := v.GetInt("final-count"); n > 0 {
		cfg.FinalCount = n
	}
	if c := v.GetString("class"); c != "" {
		if !workflow.ValidClass(c) {
			return cfg, fmt.Errorf("invalid class %q: must be 9-12", c)
		}
		cfg.Class = c
	}
	return cfg, nil
}

// services are the collaborators shared by the TUI, the API and the
// one-shot commands.
type services struct {
	provider llm.Provider // nil when no LLM is configured
	machine  *workflow.Machine
	tutor    *tutor.Tutor // nil when no LLM is configured
}

// buildServices wires the generators. Without a usable LLM the machine
// still runs on the offline fallbacks. rec may be nil. Only invalid
// workflow settings are an error.
func buildServices(ctx context.Context, v *viper.Viper, rec store.LLMRecorder) (services, error) {
	wcfg, err := workflowConfig(v)
	if err != nil {
		return services{}, err
	}

	provider, err := llm.NewProvider(ctx, llmConfig(v), rec)
	if err != nil {
		slog.Warn("LLM provider not configured, AI features are unavailable", "error", err)
		m := workflow.NewMachine(nil, nil)
		m.Config = wcfg
		return services{machine: m}, nil
	}

	m := workflow.NewMachine(quiz.New(provider, quiz.DefaultConfig()), syllabus.New(provider))
	m.Config = wcfg
	return services{provider: provider, machine: m, tutor: tutor.New(provider)}, nil
}

// requireProvider is for commands that are useless without an LLM.
func (s services) requireProvider() error {
	if s.provider == nil {
		return fmt.Errorf("no LLM provider configured: set MENTOR_LLM_PROVIDER and its API key, or one of GROQ_API_KEY, GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY")
	}
	return nil
}
