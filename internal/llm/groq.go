package llm

import "fmt"

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama-3.3-70b-versatile"
)

var groqModels = map[string]string{
	"llama-70b": defaultGroqModel,
	"llama-8b":  "llama-3.1-8b-instant",
}

// GroqProvider targets Groq's OpenAI-compatible endpoint. Groq's Llama
// models do not accept strict json_schema output, so structured requests
// use JSON object mode with the schema described in the system prompt and
// are validated locally.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider for Groq.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	model := resolveModel(cfg.Model, groqModels)
	if model == "" {
		model = defaultGroqModel
	}
	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   model,
		BaseURL: baseURL,
	})
	if err != nil {
		return nil, err
	}
	inner.mode = modeJSONObject
	return &GroqProvider{OpenAIProvider: inner}, nil
}
