package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider generates a completion for a Request. Question sets and study
// plans come from the same interface; only the Schema differs.
type Provider interface {
	// Generate sends the request and returns the completion. With a Schema
	// the Content is validated JSON; without one it is the reply text
	// encoded as a JSON string.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider sends requests to.
	ModelID() string
}

// Request describes one completion call.
type Request struct {
	System   string
	Messages []Message

	// Schema requests structured output. Nil means free text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is one turn of a conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name is kebab-case, e.g. "mcq-set".
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a completed generation.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Text returns the reply as plain text. Free-text replies are stored as a
// JSON string and are unquoted; anything else is returned verbatim.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Content, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(r.Content))
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// encodeContent returns raw model output as Response content: untouched
// when a schema was requested, otherwise quoted as a JSON string.
func encodeContent(text string, schema *Schema) json.RawMessage {
	if schema != nil {
		return json.RawMessage(text)
	}
	b, _ := json.Marshal(text)
	return b
}
